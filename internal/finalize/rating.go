package finalize

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/models"
)

// ComputeRating grades a day.
//
// Good: meaningful progress — at least half the items done, or two or
// more items, or any done item with a recorded duration.
// Fair: some progress (one item) or a solid reflection.
// Bad: nothing notable.
func ComputeRating(doneCount, total int, reflection string, anyTimed bool) models.Rating {
	refl := strings.TrimSpace(reflection)
	if (total > 0 && doneCount > 0 && float64(doneCount)/float64(total) >= 0.5) ||
		doneCount >= 2 ||
		(anyTimed && doneCount >= 1) {
		return models.RatingGood
	}
	if doneCount >= 1 || len(refl) >= constants.ReflectionMinChars {
		return models.RatingFair
	}
	return models.RatingBad
}

// ApplyRecoveryUpgrade lifts a bad rating to fair in recovery mode when
// there was any real engagement: an item done, or a reflection meeting
// the minimum length. A shorter reflection does not fire the upgrade.
func ApplyRecoveryUpgrade(rating models.Rating, mode models.CheckinMode, doneCount int, reflection string) models.Rating {
	if mode != models.ModeRecovery || rating != models.RatingBad {
		return rating
	}
	if doneCount >= 1 || len(strings.TrimSpace(reflection)) >= constants.ReflectionMinChars {
		return models.RatingFair
	}
	return rating
}

// CountsForStreak reports whether the day meets the minimal-engagement
// bar: an item done, a meaningful reflection, or an actively edited plan.
func CountsForStreak(doneCount int, reflection string, planEdited bool) bool {
	return doneCount >= 1 ||
		len(strings.TrimSpace(reflection)) >= constants.ReflectionMinChars ||
		planEdited
}

// Summarize builds the one-paragraph auto-summary stored on state and in
// the reflection entry.
func Summarize(day string, rating models.Rating, doneItems []string, minutesTotal int, reflection string) string {
	lead := map[models.Rating]string{
		models.RatingGood: "Good",
		models.RatingFair: "Fair",
		models.RatingBad:  "Bad",
	}[rating]

	var parts []string
	if len(doneItems) > 0 {
		top := doneItems
		more := ""
		if len(top) > 3 {
			more = fmt.Sprintf(" (+%d more)", len(top)-3)
			top = top[:3]
		}
		parts = append(parts, fmt.Sprintf("done: %s%s", strings.Join(top, ", "), more))
	}
	if minutesTotal > 0 {
		parts = append(parts, fmt.Sprintf("logged ~%d min", minutesTotal))
	}
	if strings.TrimSpace(reflection) != "" {
		parts = append(parts, "reflection recorded")
	}

	body := "no notable progress logged"
	if len(parts) > 0 {
		body = strings.Join(parts, "; ")
	}

	advice := map[models.Rating]string{
		models.RatingGood: "Keep the momentum; protect one deep block early tomorrow.",
		models.RatingFair: "Aim for one deeper block next; reduce context switching.",
		models.RatingBad:  "Reset: pick one small win + one deep block tomorrow.",
	}[rating]

	return fmt.Sprintf("[%s] %s: %s. %s", lead, day, body, advice)
}
