package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dayweave/internal/models"
)

// Workspace-relative paths. The planner directory holds machine-managed
// files; reflections live beside it as user-facing markdown.
const (
	plannerDir     = "planner"
	latestDir      = "planner/latest"
	reflectionsDir = "reflections"

	profileFile   = "planner/profile.yaml"
	tasksFile     = "planner/tasks.yaml"
	stateFile     = "planner/state.json"
	planFile      = "planner/latest/plan.json"
	planPrevFile  = "planner/latest/plan_prev.json"
	draftFile     = "planner/latest/checkin_draft.json"
	analyticsFile = "planner/analytics.json"
	agentCtxFile  = "planner/agent_context.json"
	hooksFile     = "planner/hooks.yaml"
	reflectFile   = "reflections/reflections.md"
)

// FileStore keeps each concern in its own file under the workspace root.
// Profile and tasks are held in memory after Load; state, plans, and
// drafts are small enough to read on demand.
type FileStore struct {
	root    string
	profile *models.Profile
	tasks   *models.TasksFile
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Init() error {
	for _, dir := range []string{plannerDir, latestDir, reflectionsDir} {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0755); err != nil {
			return fmt.Errorf("failed to create workspace directory: %w", err)
		}
	}

	profilePath := filepath.Join(s.root, profileFile)
	if _, err := os.Stat(profilePath); err == nil {
		return fmt.Errorf("workspace already initialized at %s", s.root)
	}

	profile := models.Profile{}
	profile.ApplyDefaults()
	if err := s.writeYAML(profileFile, profile); err != nil {
		return err
	}

	tasks := models.TasksFile{WeekStart: profile.WeekStart}
	if err := s.writeYAML(tasksFile, tasks); err != nil {
		return err
	}

	if err := s.writeJSON(stateFile, models.PlannerState{}); err != nil {
		return err
	}

	s.profile = &profile
	s.tasks = &tasks
	return nil
}

func (s *FileStore) Load() error {
	var profile models.Profile
	if err := s.readYAML(profileFile, &profile); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("workspace not initialized, run 'dayweave init' first")
		}
		return fmt.Errorf("failed to read profile: %w", err)
	}
	profile.ApplyDefaults()

	var tasks models.TasksFile
	if err := s.readYAML(tasksFile, &tasks); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read tasks: %w", err)
	}
	if tasks.WeekStart == "" {
		tasks.WeekStart = profile.WeekStart
	}

	s.profile = &profile
	s.tasks = &tasks
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) GetProfile() (models.Profile, error) {
	if s.profile == nil {
		return models.Profile{}, fmt.Errorf("workspace not loaded")
	}
	return *s.profile, nil
}

func (s *FileStore) SaveProfile(profile models.Profile) error {
	profile.ApplyDefaults()
	if err := s.writeYAML(profileFile, profile); err != nil {
		return err
	}
	s.profile = &profile
	return nil
}

func (s *FileStore) AddTask(task models.Task) error {
	if s.tasks == nil {
		return fmt.Errorf("workspace not loaded")
	}
	if s.tasks.FindTask(task.ID) != nil {
		return fmt.Errorf("task already exists: %s", task.ID)
	}
	s.tasks.Tasks = append(s.tasks.Tasks, task)
	return s.saveTasks()
}

func (s *FileStore) GetTask(id string) (models.Task, error) {
	if s.tasks == nil {
		return models.Task{}, fmt.Errorf("workspace not loaded")
	}
	if t := s.tasks.FindTask(id); t != nil {
		return *t, nil
	}
	return models.Task{}, fmt.Errorf("task not found: %s", id)
}

func (s *FileStore) GetAllTasks() ([]models.Task, error) {
	if s.tasks == nil {
		return nil, fmt.Errorf("workspace not loaded")
	}
	out := make([]models.Task, len(s.tasks.Tasks))
	copy(out, s.tasks.Tasks)
	return out, nil
}

func (s *FileStore) ListActiveTasks() ([]models.Task, error) {
	if s.tasks == nil {
		return nil, fmt.Errorf("workspace not loaded")
	}
	var out []models.Task
	for _, t := range s.tasks.Tasks {
		if t.Status == models.StatusActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *FileStore) UpdateTask(task models.Task) error {
	if s.tasks == nil {
		return fmt.Errorf("workspace not loaded")
	}
	existing := s.tasks.FindTask(task.ID)
	if existing == nil {
		return fmt.Errorf("task not found: %s", task.ID)
	}
	*existing = task
	return s.saveTasks()
}

func (s *FileStore) DeleteTask(id string) error {
	if s.tasks == nil {
		return fmt.Errorf("workspace not loaded")
	}
	for i, t := range s.tasks.Tasks {
		if t.ID == id {
			s.tasks.Tasks = append(s.tasks.Tasks[:i], s.tasks.Tasks[i+1:]...)
			return s.saveTasks()
		}
	}
	return fmt.Errorf("task not found: %s", id)
}

func (s *FileStore) ArchiveCompleted() ([]models.Task, error) {
	if s.tasks == nil {
		return nil, fmt.Errorf("workspace not loaded")
	}
	var kept, moved []models.Task
	for _, t := range s.tasks.Tasks {
		if t.Status == models.StatusComplete {
			moved = append(moved, t)
		} else {
			kept = append(kept, t)
		}
	}
	if len(moved) == 0 {
		return nil, nil
	}
	s.tasks.Tasks = kept
	s.tasks.Archived = append(s.tasks.Archived, moved...)
	if err := s.saveTasks(); err != nil {
		return nil, err
	}
	return moved, nil
}

func (s *FileStore) CreditProgress(taskID string, minutes int) (models.Task, error) {
	if s.tasks == nil {
		return models.Task{}, fmt.Errorf("workspace not loaded")
	}
	task := s.tasks.FindTask(taskID)
	if task == nil {
		return models.Task{}, fmt.Errorf("task not found: %s", taskID)
	}
	task.ApplyProgress(minutes)
	if err := s.saveTasks(); err != nil {
		return models.Task{}, err
	}
	return *task, nil
}

func (s *FileStore) WeekStart() (models.Weekday, error) {
	if s.tasks == nil {
		return "", fmt.Errorf("workspace not loaded")
	}
	if s.tasks.WeekStart != "" {
		return s.tasks.WeekStart, nil
	}
	return models.Monday, nil
}

func (s *FileStore) ResetWeeklyHours() error {
	if s.tasks == nil {
		return fmt.Errorf("workspace not loaded")
	}
	changed := false
	for i := range s.tasks.Tasks {
		if s.tasks.Tasks[i].Type == models.TaskWeeklyBudget && s.tasks.Tasks[i].HoursThisWeek != 0 {
			s.tasks.Tasks[i].HoursThisWeek = 0
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.saveTasks()
}

func (s *FileStore) LoadState() (models.PlannerState, error) {
	var state models.PlannerState
	if err := s.readJSON(stateFile, &state); err != nil {
		if os.IsNotExist(err) {
			return models.PlannerState{}, nil
		}
		return models.PlannerState{}, fmt.Errorf("failed to read state: %w", err)
	}
	return state, nil
}

func (s *FileStore) SaveState(state models.PlannerState) error {
	return s.writeJSON(stateFile, state)
}

func (s *FileStore) SavePlan(plan models.Plan) error {
	// Snapshot the outgoing plan so regeneration can be diffed against it.
	if data, err := os.ReadFile(filepath.Join(s.root, planFile)); err == nil {
		if err := writeFileAtomic(filepath.Join(s.root, planPrevFile), data); err != nil {
			return fmt.Errorf("failed to snapshot previous plan: %w", err)
		}
	}
	return s.writeJSON(planFile, plan)
}

func (s *FileStore) LoadPlan() (models.Plan, error) {
	var plan models.Plan
	if err := s.readJSON(planFile, &plan); err != nil {
		if os.IsNotExist(err) {
			return models.Plan{}, fmt.Errorf("no plan found, run 'dayweave plan' first")
		}
		return models.Plan{}, fmt.Errorf("failed to read plan: %w", err)
	}
	return plan, nil
}

func (s *FileStore) LoadPreviousPlan() (models.Plan, error) {
	var plan models.Plan
	if err := s.readJSON(planPrevFile, &plan); err != nil {
		if os.IsNotExist(err) {
			return models.Plan{}, fmt.Errorf("no previous plan found")
		}
		return models.Plan{}, fmt.Errorf("failed to read previous plan: %w", err)
	}
	return plan, nil
}

func (s *FileStore) LoadDraft() (models.CheckinDraft, error) {
	var draft models.CheckinDraft
	if err := s.readJSON(draftFile, &draft); err != nil {
		if os.IsNotExist(err) {
			return models.CheckinDraft{}, nil
		}
		return models.CheckinDraft{}, fmt.Errorf("failed to read check-in draft: %w", err)
	}
	return draft, nil
}

func (s *FileStore) SaveDraft(draft models.CheckinDraft) error {
	return s.writeJSON(draftFile, draft)
}

func (s *FileStore) ClearDraft(day string) error {
	err := os.Remove(filepath.Join(s.root, draftFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear check-in draft: %w", err)
	}
	return nil
}

func (s *FileStore) Root() string {
	return s.root
}

// HooksPath and friends locate workspace files whose formats belong to
// other packages (hooks config, reflection log, analytics). They apply to
// any backend, since these files always live in the workspace directory.
func HooksPath(root string) string        { return filepath.Join(root, hooksFile) }
func ReflectionsPath(root string) string  { return filepath.Join(root, reflectFile) }
func AnalyticsPath(root string) string    { return filepath.Join(root, analyticsFile) }
func AgentContextPath(root string) string { return filepath.Join(root, agentCtxFile) }

func (s *FileStore) saveTasks() error {
	return s.writeYAML(tasksFile, s.tasks)
}

func (s *FileStore) readYAML(rel string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.root, rel))
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func (s *FileStore) writeYAML(rel string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", rel, err)
	}
	return writeFileAtomic(filepath.Join(s.root, rel), data)
}

func (s *FileStore) readJSON(rel string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.root, rel))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *FileStore) writeJSON(rel string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", rel, err)
	}
	return writeFileAtomic(filepath.Join(s.root, rel), append(data, '\n'))
}

// writeFileAtomic writes via a temp file and rename so a crash mid-write
// never leaves a truncated file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".dayweave-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
