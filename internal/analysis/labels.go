// Package analysis implements message classification: normalizing raw
// classifier replies into a fixed label set, calling the external
// classification endpoint, and orchestrating batch analysis runs.
package analysis

// Sentiment is the classifier's judgment of a message's tone.
type Sentiment string

// Problem is the classifier's categorical judgment about a message.
type Problem string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"

	ProblemOK             Problem = "ok"
	ProblemAggressiveTone Problem = "aggressive_tone"
	ProblemToxic          Problem = "toxic"
	ProblemImpolite       Problem = "impolite"
	ProblemUnclear        Problem = "unclear"
	ProblemOffTopic       Problem = "off_topic"
)

// DefaultSentiment and DefaultProblem are the fallback pair used whenever
// classification fails or produces anything outside the fixed enumerations.
const (
	DefaultSentiment = SentimentNeutral
	DefaultProblem   = ProblemOK
)

var validSentiments = map[Sentiment]bool{
	SentimentPositive: true,
	SentimentNeutral:  true,
	SentimentNegative: true,
}

var validProblems = map[Problem]bool{
	ProblemOK:             true,
	ProblemAggressiveTone: true,
	ProblemToxic:          true,
	ProblemImpolite:       true,
	ProblemUnclear:        true,
	ProblemOffTopic:       true,
}

// Valid reports whether the sentiment belongs to the fixed enumeration.
func (s Sentiment) Valid() bool { return validSentiments[s] }

// Valid reports whether the problem belongs to the fixed enumeration.
func (p Problem) Valid() bool { return validProblems[p] }
