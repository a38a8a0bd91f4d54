package models

// WorkBlock is a recurring interval available for focused work. An empty
// Days list means the block applies every day.
type WorkBlock struct {
	Days   []Weekday `json:"days,omitempty" yaml:"days,omitempty"`
	Window TimeRange `json:"window" yaml:"window"`
}

// AppliesOn reports whether the block is in effect on the given day.
func (b WorkBlock) AppliesOn(day Weekday) bool {
	if len(b.Days) == 0 {
		return true
	}
	for _, d := range b.Days {
		if d == day {
			return true
		}
	}
	return false
}

// FixedEvent is a mandatory, non-movable appointment on one weekday.
// Commute minutes are subtracted from availability on both sides.
type FixedEvent struct {
	Label      string    `json:"label" yaml:"name"`
	Day        Weekday   `json:"day" yaml:"day"`
	Window     TimeRange `json:"window" yaml:"time"`
	Location   string    `json:"location,omitempty" yaml:"location,omitempty"`
	CommuteMin int       `json:"commute_min_each_way,omitempty" yaml:"commute_min_each_way,omitempty"`
}

// BlockedWindow is the event window widened by the commute buffer on each
// side, clamped to the day.
func (e FixedEvent) BlockedWindow() TimeRange {
	return TimeRange{
		Start: FormatMinutes(e.Window.StartMinutes() - e.CommuteMin),
		End:   FormatMinutes(e.Window.EndMinutes() + e.CommuteMin),
	}
}

// RecurringRoutine is a mandatory personal block (meals, exercise). An
// empty Days list means every day.
type RecurringRoutine struct {
	Label  string    `json:"label" yaml:"-"`
	Days   []Weekday `json:"days,omitempty" yaml:"days,omitempty"`
	Window TimeRange `json:"window" yaml:"window"`
}

// AppliesOn reports whether the routine is in effect on the given day.
func (r RecurringRoutine) AppliesOn(day Weekday) bool {
	if len(r.Days) == 0 {
		return true
	}
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

// ConstraintSet is the normalized availability picture for one weekday:
// the work blocks in effect plus every interval that must be subtracted
// from them. Derived from the profile, never persisted on its own.
type ConstraintSet struct {
	Day      Weekday
	Blocks   []WorkBlock
	Events   []FixedEvent
	Routines []RecurringRoutine
}
