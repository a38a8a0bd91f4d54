package scheduler

import (
	"sort"

	"github.com/julianstephens/dayweave/internal/constants"
	"github.com/julianstephens/dayweave/internal/models"
	"github.com/julianstephens/dayweave/internal/utils"
)

// candidate is a scored task with its remaining need for the day, in
// minutes. Scores are computed once and never revised mid-day.
type candidate struct {
	task   models.Task
	score  float64
	need   int
	placed int
	offDay bool
}

// neededMinutes determines how much time a task wants today.
func neededMinutes(t models.Task) int {
	switch t.Type {
	case models.TaskDeadlineProject:
		if t.RemainingHours == nil {
			return 0
		}
		return int(*t.RemainingHours * 60)
	case models.TaskWeeklyBudget:
		// Spread the remaining budget over roughly three sittings, within
		// the task's chunk bounds.
		need := int(t.WeeklyGapHours() * 60 / 3)
		if need < t.MinChunkMinutes {
			need = t.MinChunkMinutes
		}
		if need > t.MaxChunkMinutes {
			need = t.MaxChunkMinutes
		}
		if t.WeeklyGapHours() == 0 {
			return 0
		}
		return need
	case models.TaskDailyRitual:
		if t.EstimatedMinutesPerDay > 0 {
			return t.EstimatedMinutesPerDay
		}
		return constants.DefaultRitualMinutes
	default:
		return t.MaxChunkMinutes
	}
}

// rankCandidates orders candidates by placement tier, then descending
// score, then ascending task ID. Within a tier, tasks whose preferred day
// (if any) is some other weekday sort after on-day tasks.
func rankCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		ti, tj := tier(cands[i].task.Type), tier(cands[j].task.Type)
		if ti != tj {
			return ti < tj
		}
		if cands[i].offDay != cands[j].offDay {
			return !cands[i].offDay
		}
		if cands[i].score != cands[j].score {
			return cands[i].score > cands[j].score
		}
		return cands[i].task.ID < cands[j].task.ID
	})
}

// allocate walks the slots chronologically, placing the highest-ranked
// candidate that fits into each slot's remaining capacity, consuming a
// fixed buffer between chunks. Capacity shortfall is never an error; it
// degrades to carryover.
func allocate(slots []models.Slot, cands []candidate) (entries []models.ScheduleEntry, carryover []string) {
	rankCandidates(cands)

	for _, slot := range slots {
		cursor := slot.Window.StartMinutes()
		slotEnd := slot.Window.EndMinutes()

		for cursor < slotEnd {
			idx := pickCandidate(cands, slotEnd-cursor)
			if idx < 0 {
				break
			}
			c := &cands[idx]

			chunk := slotEnd - cursor
			if c.need < chunk {
				chunk = c.need
			}
			if c.task.MaxChunkMinutes < chunk {
				chunk = c.task.MaxChunkMinutes
			}

			entries = append(entries, models.ScheduleEntry{
				Kind:   models.EntryTask,
				TaskID: c.task.ID,
				Label:  c.task.Title,
				Window: models.TimeRange{
					Start: models.FormatMinutes(cursor),
					End:   models.FormatMinutes(cursor + chunk),
				},
				Minutes: chunk,
			})

			c.need -= chunk
			c.placed += chunk
			cursor += chunk + constants.BufferMinutes
		}
	}

	for _, c := range cands {
		if c.placed == 0 {
			carryover = append(carryover, c.task.ID)
		}
	}
	sort.Strings(carryover)
	return entries, carryover
}

// pickCandidate returns the index of the highest-ranked candidate that can
// take a chunk out of the given capacity, or -1. A task whose remaining
// need is below its minimum chunk is placed in full when capacity allows:
// a final short chunk beats no completion.
func pickCandidate(cands []candidate, capacity int) int {
	for i := range cands {
		c := &cands[i]
		if c.need <= 0 {
			continue
		}
		if c.need < c.task.MinChunkMinutes {
			if c.need <= capacity {
				return i
			}
			continue
		}
		if c.task.MinChunkMinutes <= capacity {
			return i
		}
	}
	return -1
}

// buildChecklist aggregates the placed chunks into one entry per task so
// the evening check-in can round-trip task identity and minutes exactly.
func buildChecklist(entries []models.ScheduleEntry, cands []candidate) []models.ChecklistItem {
	minutes := make(map[string]int)
	var order []string
	for _, e := range entries {
		if e.Kind != models.EntryTask {
			continue
		}
		if _, seen := minutes[e.TaskID]; !seen {
			order = append(order, e.TaskID)
		}
		minutes[e.TaskID] += e.Minutes
	}

	titles := make(map[string]string, len(cands))
	for _, c := range cands {
		titles[c.task.ID] = c.task.Title
	}

	items := make([]models.ChecklistItem, 0, len(order))
	for _, id := range order {
		items = append(items, models.ChecklistItem{
			TaskID:  id,
			Label:   titles[id] + " " + utils.FormatDuration(minutes[id]),
			Minutes: minutes[id],
		})
	}
	return items
}

// topPriorities returns up to n placed task IDs ordered by raw score,
// ties broken by ascending ID.
func topPriorities(cands []candidate, n int) []string {
	var placed []candidate
	for _, c := range cands {
		if c.placed > 0 {
			placed = append(placed, c)
		}
	}
	sort.SliceStable(placed, func(i, j int) bool {
		if placed[i].score != placed[j].score {
			return placed[i].score > placed[j].score
		}
		return placed[i].task.ID < placed[j].task.ID
	})
	if len(placed) > n {
		placed = placed[:n]
	}
	ids := make([]string, 0, len(placed))
	for _, c := range placed {
		ids = append(ids, c.task.ID)
	}
	return ids
}
