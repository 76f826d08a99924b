package reporting

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/saneek/qualitybot/internal/database"
)

func turn(userID int64, offsetSec int) database.Turn {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return database.Turn{UserID: userID, CreatedAt: base.Add(time.Duration(offsetSec) * time.Second)}
}

func TestPairDeltas(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		turns []database.Turn
		want  []float64
	}{
		{
			name: "Simple exchange",
			// A asks, B answers 30s later; B's message is never answered.
			turns: []database.Turn{turn(1, 0), turn(2, 30)},
			want:  []float64{30},
		},
		{
			name: "Consecutive same-author messages share the response",
			// Both of A's messages are answered by B's single reply.
			turns: []database.Turn{turn(1, 0), turn(1, 10), turn(2, 40)},
			want:  []float64{40, 30},
		},
		{
			name:  "Monologue has no responses",
			turns: []database.Turn{turn(1, 0), turn(1, 60), turn(1, 120)},
			want:  nil,
		},
		{
			name:  "Empty input",
			turns: nil,
			want:  nil,
		},
		{
			name: "Back and forth",
			turns: []database.Turn{
				turn(1, 0), turn(2, 10), turn(1, 25), turn(2, 85),
			},
			want: []float64{10, 15, 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := pairDeltas(tt.turns)
			if len(got) != len(tt.want) {
				t.Fatalf("pairDeltas() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("pairDeltas()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMedian(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"Empty", nil, 0},
		{"Single", []float64{5}, 5},
		{"Odd count", []float64{9, 1, 5}, 5},
		{"Even count", []float64{1, 9, 3, 7}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := median(tt.values); got != tt.want {
				t.Errorf("median(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	values := []float64{9, 1, 5}
	_ = median(values)
	if values[0] != 9 || values[1] != 1 || values[2] != 5 {
		t.Errorf("median mutated its input: %v", values)
	}
}

func TestMean(t *testing.T) {
	t.Parallel()

	if got := mean(nil); got != 0 {
		t.Errorf("mean(nil) = %v, want 0", got)
	}
	if got := mean([]float64{10, 20, 60}); got != 30 {
		t.Errorf("mean = %v, want 30", got)
	}
}

func TestRenderReport(t *testing.T) {
	t.Parallel()

	report := Report{
		Totals: database.Totals{TotalAnalyzed: 10, Problems: 3, Negative: 2, Neutral: 6, Positive: 2},
		TopProblems: []database.ProblemCount{
			{Problem: "toxic", Count: 2},
			{Problem: "unclear", Count: 1},
		},
	}
	stats := ResponseStats{Responded: true, Pairs: 4, MeanSeconds: 42.4, MedianSeconds: 30}

	lines := RenderReport("2026-03-01", "2026-03-07", report, stats)
	if len(lines) == 0 {
		t.Fatal("RenderReport returned no lines")
	}
	if lines[0] != "Report 2026-03-01 — 2026-03-07" {
		t.Errorf("header = %q", lines[0])
	}

	joined := strings.Join(lines, "\n")
	for _, want := range []string{
		"Analyzed messages: 10",
		"Problems detected: 3",
		"1. toxic: 2",
		"2. unclear: 1",
		"mean 42s, median 30s",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("report missing %q in:\n%s", want, joined)
		}
	}
}

func TestRenderReportNoResponses(t *testing.T) {
	t.Parallel()

	lines := RenderReport("2026-03-01", "2026-03-01", Report{}, ResponseStats{})
	if !containsLine(lines, "Response time: no responses in this period") {
		t.Errorf("expected no-responses line, got %v", lines)
	}
}

func containsLine(lines []string, want string) bool {
	for _, l := range lines {
		if l == want {
			return true
		}
	}
	return false
}
