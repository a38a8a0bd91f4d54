package storage

import "github.com/julianstephens/dayweave/internal/models"

// Provider is the persistence contract. The default backend is the plain
// workspace directory (YAML + JSON files); a SQLite backend serves users
// who want the whole planner in one portable file.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile
	GetProfile() (models.Profile, error)
	SaveProfile(models.Profile) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	ListActiveTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	// ArchiveCompleted moves complete tasks out of the active list and
	// returns the ones it moved.
	ArchiveCompleted() ([]models.Task, error)
	// CreditProgress applies minutes of completed work to the task per its
	// type and returns the updated task.
	CreditProgress(taskID string, minutes int) (models.Task, error)
	WeekStart() (models.Weekday, error)
	ResetWeeklyHours() error

	// State
	LoadState() (models.PlannerState, error)
	SaveState(models.PlannerState) error

	// Plans. SavePlan snapshots the current plan to the previous-plan slot
	// before overwriting, so change detection can diff the two.
	SavePlan(models.Plan) error
	LoadPlan() (models.Plan, error)
	LoadPreviousPlan() (models.Plan, error)

	// Check-in drafts
	LoadDraft() (models.CheckinDraft, error)
	SaveDraft(models.CheckinDraft) error
	ClearDraft(day string) error

	// Utils
	Root() string
}
