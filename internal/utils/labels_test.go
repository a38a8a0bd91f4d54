package utils

import "testing"

func TestParseDurationFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Thesis draft 2h", 120},
		{"Inbox sweep 90m", 90},
		{"Gym 1.5h", 90},
		{"Reading 45M", 45},
		{"No duration here", 0},
		{"Meet at 3pm", 0},
	}

	for _, tt := range tests {
		if got := ParseDurationFromLabel(tt.label); got != tt.want {
			t.Errorf("ParseDurationFromLabel(%q): expected %d, got %d", tt.label, tt.want, got)
		}
	}
}

func TestTaskTitleFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Thesis draft: results section 2h", "Thesis draft"},
		{"Inbox sweep 20m", "Inbox sweep"},
		{"Gym", "Gym"},
		{"  Deep work 1h ", "Deep work"},
	}

	for _, tt := range tests {
		if got := TaskTitleFromLabel(tt.label); got != tt.want {
			t.Errorf("TaskTitleFromLabel(%q): expected %q, got %q", tt.label, tt.want, got)
		}
	}
}

func TestMatchTaskTitle(t *testing.T) {
	tests := []struct {
		label string
		title string
		want  bool
	}{
		{"Write paper 2h", "Write paper", true},
		{"write PAPER 2h", "Write paper", true},
		{"Write paper: intro 1h", "Write paper", true},
		{"Write", "Write paper", true}, // prefix either way
		{"Gym 45m", "Write paper", false},
		{"", "Write paper", false},
	}

	for _, tt := range tests {
		if got := MatchTaskTitle(tt.label, tt.title); got != tt.want {
			t.Errorf("MatchTaskTitle(%q, %q): expected %v, got %v", tt.label, tt.title, tt.want, got)
		}
	}
}
