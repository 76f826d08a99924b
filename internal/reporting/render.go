package reporting

import "fmt"

// RenderReport formats a report and its response-time stats into reply lines.
// Labels stay in their stored snake_case form so replies match what /issues
// shows.
func RenderReport(fromDay, toDay string, report Report, stats ResponseStats) []string {
	lines := []string{
		fmt.Sprintf("Report %s — %s", fromDay, toDay),
		fmt.Sprintf("Analyzed messages: %d", report.Totals.TotalAnalyzed),
		fmt.Sprintf("Problems detected: %d", report.Totals.Problems),
		fmt.Sprintf("Sentiment: %d negative / %d neutral / %d positive",
			report.Totals.Negative, report.Totals.Neutral, report.Totals.Positive),
	}

	if len(report.TopProblems) > 0 {
		lines = append(lines, "Top problems:")
		for i, pc := range report.TopProblems {
			lines = append(lines, fmt.Sprintf("%d. %s: %d", i+1, pc.Problem, pc.Count))
		}
	}

	if stats.Responded {
		lines = append(lines,
			fmt.Sprintf("Response time (n=%d): mean %.0fs, median %.0fs",
				stats.Pairs, stats.MeanSeconds, stats.MedianSeconds))
	} else {
		lines = append(lines, "Response time: no responses in this period")
	}

	return lines
}
