package reporting

import (
	"sort"

	"github.com/saneek/qualitybot/internal/database"
)

// ResponseStats describes how quickly chat participants answer each other.
// Seconds values are meaningful only when Responded is true.
type ResponseStats struct {
	Responded     bool
	Pairs         int
	MeanSeconds   float64
	MedianSeconds float64
}

// pairDeltas walks turns in chronological order and, for each turn, finds the
// nearest later turn by a different author. The gap between the two is one
// response delta, in seconds. Turns never answered by someone else produce no
// delta.
func pairDeltas(turns []database.Turn) []float64 {
	var deltas []float64
	for i, turn := range turns {
		for _, next := range turns[i+1:] {
			if next.UserID == turn.UserID {
				continue
			}
			deltas = append(deltas, next.CreatedAt.Sub(turn.CreatedAt).Seconds())
			break
		}
	}
	return deltas
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median returns the middle value, averaging the two central elements for
// even-length input. The input slice is not modified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
