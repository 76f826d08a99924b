package analysis

import (
	"encoding/json"
	"strings"
)

// labelSynonyms maps known localized label words to their canonical values.
// The classifier occasionally answers in Russian when the analyzed text is
// Russian; unmapped values pass through unchanged and hit enum validation.
var labelSynonyms = map[string]string{
	"положительная": "positive",
	"позитивная":    "positive",
	"положительный": "positive",
	"нейтральная":   "neutral",
	"нейтральный":   "neutral",
	"негативная":    "negative",
	"отрицательная": "negative",
	"негативный":    "negative",

	"нет нарушений":     "ok",
	"нет проблем":       "ok",
	"агрессивный тон":   "aggressive_tone",
	"агрессия":          "aggressive_tone",
	"токсичность":       "toxic",
	"токсичный":         "toxic",
	"невежливость":      "impolite",
	"невежливый":        "impolite",
	"неясное сообщение": "unclear",
	"неясно":            "unclear",
	"не по теме":        "off_topic",
	"оффтоп":            "off_topic",
}

type rawAnalysis struct {
	Sentiment string `json:"sentiment"`
	Problem   string `json:"problem"`
}

// Normalize converts a raw classifier reply into a validated (sentiment,
// problem) pair. The reply is presumed to be a JSON object, possibly wrapped
// in a fenced code block and possibly using localized label words.
//
// Normalize is total: parse failures, missing keys, and out-of-enum values
// all coerce to the default pair. Canonical input maps to itself.
func Normalize(raw string) (Sentiment, Problem) {
	body := stripCodeFence(raw)

	parsed := rawAnalysis{}
	_ = json.Unmarshal([]byte(body), &parsed)

	sentiment := canonicalize(parsed.Sentiment, string(DefaultSentiment))
	problem := canonicalize(parsed.Problem, string(DefaultProblem))

	s := Sentiment(sentiment)
	if !s.Valid() {
		s = DefaultSentiment
	}
	p := Problem(problem)
	if !p.Valid() {
		p = DefaultProblem
	}

	return s, p
}

// canonicalize lowercases and trims a label, translates known localized
// synonyms, and substitutes the fallback for empty values.
func canonicalize(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	if canonical, ok := labelSynonyms[value]; ok {
		return canonical
	}
	return value
}

// stripCodeFence removes a surrounding Markdown code fence, including an
// optional language tag on the opening line (e.g. ```json).
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		firstLine := strings.TrimSpace(s[:idx])
		// A bare fence or a language tag occupies the first line by itself.
		if firstLine == "" || !strings.ContainsAny(firstLine, "{}") {
			s = s[idx+1:]
		}
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
