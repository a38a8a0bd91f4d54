package finalize

import (
	"strings"
	"testing"

	"github.com/julianstephens/dayweave/internal/models"
)

func TestComputeRating(t *testing.T) {
	longReflection := strings.Repeat("Thought about focus today. ", 3)

	tests := []struct {
		name       string
		done       int
		total      int
		reflection string
		anyTimed   bool
		want       models.Rating
	}{
		{"half done is good", 2, 4, "", false, models.RatingGood},
		{"two done is good regardless of total", 2, 10, "", false, models.RatingGood},
		{"one timed done is good", 1, 5, "", true, models.RatingGood},
		{"one untimed done is fair", 1, 5, "", false, models.RatingFair},
		{"long reflection alone is fair", 0, 3, longReflection, false, models.RatingFair},
		{"short reflection alone is bad", 0, 3, "meh", false, models.RatingBad},
		{"nothing is bad", 0, 0, "", false, models.RatingBad},
		{"whitespace reflection does not count", 0, 2, strings.Repeat(" ", 40), false, models.RatingBad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRating(tt.done, tt.total, tt.reflection, tt.anyTimed)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestApplyRecoveryUpgrade(t *testing.T) {
	long := strings.Repeat("Recovering slowly but surely. ", 2)

	tests := []struct {
		name       string
		rating     models.Rating
		mode       models.CheckinMode
		done       int
		reflection string
		want       models.Rating
	}{
		{"bad with one done upgrades", models.RatingBad, models.ModeRecovery, 1, "", models.RatingFair},
		{"bad with long reflection upgrades", models.RatingBad, models.ModeRecovery, 0, long, models.RatingFair},
		{"bad with short reflection stays bad", models.RatingBad, models.ModeRecovery, 0, "tired", models.RatingBad},
		{"boundary: 29 chars stays bad", models.RatingBad, models.ModeRecovery, 0, strings.Repeat("a", 29), models.RatingBad},
		{"boundary: 30 chars upgrades", models.RatingBad, models.ModeRecovery, 0, strings.Repeat("a", 30), models.RatingFair},
		{"commit mode never upgrades", models.RatingBad, models.ModeCommit, 1, long, models.RatingBad},
		{"fair is untouched", models.RatingFair, models.ModeRecovery, 1, long, models.RatingFair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyRecoveryUpgrade(tt.rating, tt.mode, tt.done, tt.reflection)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCountsForStreak(t *testing.T) {
	long := strings.Repeat("Wrote down what went wrong. ", 2)

	if !CountsForStreak(1, "", false) {
		t.Error("one done item should count")
	}
	if !CountsForStreak(0, long, false) {
		t.Error("meaningful reflection should count")
	}
	if !CountsForStreak(0, "", true) {
		t.Error("an edited plan should count")
	}
	if CountsForStreak(0, "ok", false) {
		t.Error("nothing notable should not count")
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize("2026-08-26", models.RatingGood,
		[]string{"Write paper 2h", "Gym 45m", "Inbox", "Reading"}, 165, "Solid day.")

	if !strings.HasPrefix(got, "[Good] 2026-08-26: ") {
		t.Errorf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, "(+1 more)") {
		t.Errorf("expected done-item truncation marker, got %q", got)
	}
	if !strings.Contains(got, "logged ~165 min") {
		t.Errorf("expected logged minutes, got %q", got)
	}
	if !strings.Contains(got, "reflection recorded") {
		t.Errorf("expected reflection note, got %q", got)
	}
}

func TestSummarize_EmptyDay(t *testing.T) {
	got := Summarize("2026-08-26", models.RatingBad, nil, 0, "")
	if !strings.Contains(got, "no notable progress logged") {
		t.Errorf("expected empty-day body, got %q", got)
	}
}
