package models

// Profile holds the user's standing availability constraints and
// preferences, loaded from planner/profile.yaml.
type Profile struct {
	Timezone      string                      `yaml:"timezone"`
	WeekStart     Weekday                     `yaml:"week_start"`
	MinSlotMin    int                         `yaml:"min_slot_minutes"`
	WorkBlocks    []WorkBlock                 `yaml:"work_blocks"`
	FixedRoutines map[string]RecurringRoutine `yaml:"fixed_routines"`
	WeeklyEvents  []FixedEvent                `yaml:"weekly_fixed_events"`
}

// ApplyDefaults fills unset profile fields.
func (p *Profile) ApplyDefaults() {
	if p.Timezone == "" {
		p.Timezone = "UTC"
	}
	if p.WeekStart == "" {
		p.WeekStart = Monday
	}
	if p.MinSlotMin == 0 {
		p.MinSlotMin = 10
	}
}

// ConstraintsFor assembles the constraint set for one weekday. Routine
// labels come from their map keys.
func (p *Profile) ConstraintsFor(day Weekday) ConstraintSet {
	cs := ConstraintSet{Day: day}
	for _, b := range p.WorkBlocks {
		if b.AppliesOn(day) {
			cs.Blocks = append(cs.Blocks, b)
		}
	}
	for name, r := range p.FixedRoutines {
		if r.AppliesOn(day) {
			r.Label = name
			cs.Routines = append(cs.Routines, r)
		}
	}
	for _, e := range p.WeeklyEvents {
		if e.Day == day {
			cs.Events = append(cs.Events, e)
		}
	}
	return cs
}
