package scheduler

import (
	"sort"

	apperrors "github.com/julianstephens/dayweave/internal/errors"
	"github.com/julianstephens/dayweave/internal/models"
)

// span is a half-open interval in minutes from midnight.
type span struct {
	start int
	end   int
}

func (s span) minutes() int { return s.end - s.start }

// ComputeSlots derives the free slots for one day: the union of the work
// blocks minus every event window (widened by its commute buffer) and
// routine window. Gaps shorter than minGap are dropped. A blocked interval
// entirely outside the work blocks is fine and simply produces no slot; a
// ConstraintError is returned only for malformed windows.
func ComputeSlots(cs models.ConstraintSet, minGap int) ([]models.Slot, error) {
	if minGap <= 0 {
		minGap = 10
	}

	var work []span
	for _, b := range cs.Blocks {
		if err := b.Window.Validate(); err != nil {
			return nil, &apperrors.ConstraintError{Detail: "work block " + err.Error()}
		}
		work = append(work, span{b.Window.StartMinutes(), b.Window.EndMinutes()})
	}
	work = mergeSpans(work)

	var blocked []span
	for _, r := range cs.Routines {
		if err := r.Window.Validate(); err != nil {
			return nil, &apperrors.ConstraintError{Detail: "routine " + r.Label + ": " + err.Error()}
		}
		blocked = append(blocked, span{r.Window.StartMinutes(), r.Window.EndMinutes()})
	}
	for _, e := range cs.Events {
		if err := e.Window.Validate(); err != nil {
			return nil, &apperrors.ConstraintError{Detail: "event " + e.Label + ": " + err.Error()}
		}
		w := e.BlockedWindow()
		blocked = append(blocked, span{w.StartMinutes(), w.EndMinutes()})
	}
	blocked = mergeSpans(blocked)

	free := subtractSpans(work, blocked)

	var slots []models.Slot
	for _, s := range free {
		if s.minutes() < minGap {
			continue
		}
		slots = append(slots, models.Slot{
			Day: cs.Day,
			Window: models.TimeRange{
				Start: models.FormatMinutes(s.start),
				End:   models.FormatMinutes(s.end),
			},
		})
	}
	return slots, nil
}

// mergeSpans sorts spans and coalesces overlapping or touching ones.
func mergeSpans(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}
	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})

	merged := []span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// subtractSpans removes every blocked interval from the work intervals.
// Both inputs must be merged and sorted.
func subtractSpans(work, blocked []span) []span {
	var out []span
	for _, w := range work {
		remaining := []span{w}
		for _, b := range blocked {
			var next []span
			for _, r := range remaining {
				if b.end <= r.start || b.start >= r.end {
					next = append(next, r)
					continue
				}
				if b.start > r.start {
					next = append(next, span{r.start, b.start})
				}
				if b.end < r.end {
					next = append(next, span{b.end, r.end})
				}
			}
			remaining = next
		}
		out = append(out, remaining...)
	}
	return out
}
