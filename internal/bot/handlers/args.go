package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Default row limits for the data commands.
const (
	DefaultHistoryLimit = 30
	DefaultAnalyzeLimit = 200
	DefaultIssuesLimit  = 20
)

const dateLayout = "2006-01-02"

// ErrBadArgs indicates a command was invoked with missing or malformed
// arguments; handlers answer it with the command's usage text.
var ErrBadArgs = errors.New("bad command arguments")

// commandArgs splits a command message into its arguments, dropping the
// command word itself.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

// parseDateRange parses two YYYY-MM-DD arguments into a half-open UTC range
// [start of day one, start of the day after day two). Both days are
// inclusive on the calendar; the exclusive end bound makes single-day ranges
// (d d) cover exactly that day.
func parseDateRange(args []string) (time.Time, time.Time, error) {
	if len(args) < 2 {
		return time.Time{}, time.Time{}, ErrBadArgs
	}

	start, err := time.ParseInLocation(dateLayout, args[0], time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadArgs
	}
	endDay, err := time.ParseInLocation(dateLayout, args[1], time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrBadArgs
	}

	return start, endDay.AddDate(0, 0, 1), nil
}

// parseLimit reads an optional positive limit from args[idx], falling back to
// def when absent or malformed.
func parseLimit(args []string, idx, def int) int {
	if idx >= len(args) {
		return def
	}
	n, err := strconv.Atoi(args[idx])
	if err != nil || n <= 0 {
		return def
	}
	return n
}
