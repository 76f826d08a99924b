package handlers

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "Multi-day range",
			args:      []string{"2026-03-01", "2026-03-07"},
			wantStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Single day covers the whole day",
			args:      []string{"2026-03-01", "2026-03-01"},
			wantStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Month boundary",
			args:      []string{"2026-01-31", "2026-01-31"},
			wantStart: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Extra limit argument ignored here",
			args:      []string{"2026-03-01", "2026-03-02", "50"},
			wantStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{name: "Missing second date", args: []string{"2026-03-01"}, wantErr: true},
		{name: "No arguments", args: nil, wantErr: true},
		{name: "Malformed first date", args: []string{"01.03.2026", "2026-03-02"}, wantErr: true},
		{name: "Malformed second date", args: []string{"2026-03-01", "tomorrow"}, wantErr: true},
		{name: "Out-of-range day", args: []string{"2026-02-30", "2026-03-01"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end, err := parseDateRange(tt.args)
			if tt.wantErr {
				if !errors.Is(err, ErrBadArgs) {
					t.Fatalf("parseDateRange(%v) err = %v, want ErrBadArgs", tt.args, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDateRange(%v) unexpected error: %v", tt.args, err)
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestCommandArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"Command with args", "/history 2026-03-01 2026-03-07 50", []string{"2026-03-01", "2026-03-07", "50"}},
		{"Bare command", "/report", []string{}},
		{"Extra whitespace", "  /issues   2026-03-01    2026-03-02  ", []string{"2026-03-01", "2026-03-02"}},
		{"Empty text", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := commandArgs(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("commandArgs(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("commandArgs(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		idx  int
		def  int
		want int
	}{
		{"Present and valid", []string{"a", "b", "50"}, 2, 30, 50},
		{"Absent falls back", []string{"a", "b"}, 2, 30, 30},
		{"Zero falls back", []string{"a", "b", "0"}, 2, 30, 30},
		{"Negative falls back", []string{"a", "b", "-5"}, 2, 30, 30},
		{"Garbage falls back", []string{"a", "b", "many"}, 2, 30, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := parseLimit(tt.args, tt.idx, tt.def); got != tt.want {
				t.Errorf("parseLimit(%v, %d, %d) = %d, want %d", tt.args, tt.idx, tt.def, got, tt.want)
			}
		})
	}
}
