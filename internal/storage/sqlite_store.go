package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/dayweave/internal/models"
)

// Singleton document names in the documents table.
const (
	docProfile  = "profile"
	docState    = "state"
	docPlan     = "plan"
	docPlanPrev = "plan_prev"
	docDraft    = "checkin_draft"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	name TEXT PRIMARY KEY,
	body TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	id       TEXT PRIMARY KEY,
	archived INTEGER NOT NULL DEFAULT 0,
	body     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLiteStore packs the whole workspace into a single database file.
// Profile, state, plans, and drafts are stored as JSON documents; tasks
// get their own table so they can be listed and updated individually.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// NewMemory opens an in-memory store, used by tests.
func NewMemory() (*SQLiteStore, error) {
	s := &SQLiteStore{path: ":memory:"}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, err
	}
	// One connection, or every pooled conn would get its own empty
	// in-memory database.
	db.SetMaxOpenConns(1)
	s.db = db
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.seedDefaults(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("workspace already initialized at %s", s.path)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return s.seedDefaults()
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("workspace not initialized, run 'dayweave init' first")
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return s.migrate()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// migrate applies the schema and bumps user_version. Versions are forward
// only; a database newer than this binary is rejected.
func (s *SQLiteStore) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}
	if version == schemaVersion {
		return nil
	}
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

func (s *SQLiteStore) seedDefaults() error {
	profile := models.Profile{}
	profile.ApplyDefaults()
	if err := s.putDocument(docProfile, profile); err != nil {
		return err
	}
	if err := s.putDocument(docState, models.PlannerState{}); err != nil {
		return err
	}
	return s.setMeta("week_start", string(profile.WeekStart))
}

func (s *SQLiteStore) GetProfile() (models.Profile, error) {
	var profile models.Profile
	if err := s.getDocument(docProfile, &profile); err != nil {
		if err == sql.ErrNoRows {
			profile.ApplyDefaults()
			return profile, nil
		}
		return models.Profile{}, err
	}
	profile.ApplyDefaults()
	return profile, nil
}

func (s *SQLiteStore) SaveProfile(profile models.Profile) error {
	profile.ApplyDefaults()
	if err := s.putDocument(docProfile, profile); err != nil {
		return err
	}
	return s.setMeta("week_start", string(profile.WeekStart))
}

func (s *SQLiteStore) AddTask(task models.Task) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to serialize task: %w", err)
	}
	_, err = s.db.Exec("INSERT INTO tasks (id, archived, body) VALUES (?, 0, ?)", task.ID, string(body))
	if err != nil {
		return fmt.Errorf("failed to add task %s: %w", task.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	var body string
	err := s.db.QueryRow("SELECT body FROM tasks WHERE id = ? AND archived = 0", id).Scan(&body)
	if err == sql.ErrNoRows {
		return models.Task{}, fmt.Errorf("task not found: %s", id)
	}
	if err != nil {
		return models.Task{}, err
	}
	var task models.Task
	if err := json.Unmarshal([]byte(body), &task); err != nil {
		return models.Task{}, fmt.Errorf("failed to parse task %s: %w", id, err)
	}
	return task, nil
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	return s.queryTasks("SELECT body FROM tasks WHERE archived = 0 ORDER BY id")
}

func (s *SQLiteStore) ListActiveTasks() ([]models.Task, error) {
	tasks, err := s.GetAllTasks()
	if err != nil {
		return nil, err
	}
	var out []models.Task
	for _, t := range tasks {
		if t.Status == models.StatusActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *SQLiteStore) UpdateTask(task models.Task) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to serialize task: %w", err)
	}
	res, err := s.db.Exec("UPDATE tasks SET body = ? WHERE id = ? AND archived = 0", string(body), task.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task not found: %s", task.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteTask(id string) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ? AND archived = 0", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) ArchiveCompleted() ([]models.Task, error) {
	tasks, err := s.GetAllTasks()
	if err != nil {
		return nil, err
	}
	var moved []models.Task
	for _, t := range tasks {
		if t.Status != models.StatusComplete {
			continue
		}
		if _, err := s.db.Exec("UPDATE tasks SET archived = 1 WHERE id = ?", t.ID); err != nil {
			return moved, err
		}
		moved = append(moved, t)
	}
	return moved, nil
}

func (s *SQLiteStore) CreditProgress(taskID string, minutes int) (models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return models.Task{}, err
	}
	task.ApplyProgress(minutes)
	if err := s.UpdateTask(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *SQLiteStore) WeekStart() (models.Weekday, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = 'week_start'").Scan(&value)
	if err == sql.ErrNoRows || value == "" {
		return models.Monday, nil
	}
	if err != nil {
		return "", err
	}
	return models.Weekday(value), nil
}

func (s *SQLiteStore) ResetWeeklyHours() error {
	tasks, err := s.GetAllTasks()
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.Type != models.TaskWeeklyBudget || t.HoursThisWeek == 0 {
			continue
		}
		t.HoursThisWeek = 0
		if err := s.UpdateTask(t); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) LoadState() (models.PlannerState, error) {
	var state models.PlannerState
	if err := s.getDocument(docState, &state); err != nil {
		if err == sql.ErrNoRows {
			return models.PlannerState{}, nil
		}
		return models.PlannerState{}, err
	}
	return state, nil
}

func (s *SQLiteStore) SaveState(state models.PlannerState) error {
	return s.putDocument(docState, state)
}

func (s *SQLiteStore) SavePlan(plan models.Plan) error {
	var body string
	err := s.db.QueryRow("SELECT body FROM documents WHERE name = ?", docPlan).Scan(&body)
	if err == nil {
		if _, err := s.db.Exec(
			"INSERT INTO documents (name, body) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET body = excluded.body",
			docPlanPrev, body,
		); err != nil {
			return fmt.Errorf("failed to snapshot previous plan: %w", err)
		}
	} else if err != sql.ErrNoRows {
		return err
	}
	return s.putDocument(docPlan, plan)
}

func (s *SQLiteStore) LoadPlan() (models.Plan, error) {
	var plan models.Plan
	if err := s.getDocument(docPlan, &plan); err != nil {
		if err == sql.ErrNoRows {
			return models.Plan{}, fmt.Errorf("no plan found, run 'dayweave plan' first")
		}
		return models.Plan{}, err
	}
	return plan, nil
}

func (s *SQLiteStore) LoadPreviousPlan() (models.Plan, error) {
	var plan models.Plan
	if err := s.getDocument(docPlanPrev, &plan); err != nil {
		if err == sql.ErrNoRows {
			return models.Plan{}, fmt.Errorf("no previous plan found")
		}
		return models.Plan{}, err
	}
	return plan, nil
}

func (s *SQLiteStore) LoadDraft() (models.CheckinDraft, error) {
	var draft models.CheckinDraft
	if err := s.getDocument(docDraft, &draft); err != nil {
		if err == sql.ErrNoRows {
			return models.CheckinDraft{}, nil
		}
		return models.CheckinDraft{}, err
	}
	return draft, nil
}

func (s *SQLiteStore) SaveDraft(draft models.CheckinDraft) error {
	return s.putDocument(docDraft, draft)
}

func (s *SQLiteStore) ClearDraft(day string) error {
	_, err := s.db.Exec("DELETE FROM documents WHERE name = ?", docDraft)
	return err
}

func (s *SQLiteStore) Root() string {
	return filepath.Dir(s.path)
}

func (s *SQLiteStore) queryTasks(query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var task models.Task
		if err := json.Unmarshal([]byte(body), &task); err != nil {
			return nil, fmt.Errorf("failed to parse task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) getDocument(name string, v any) error {
	var body string
	if err := s.db.QueryRow("SELECT body FROM documents WHERE name = ?", name).Scan(&body); err != nil {
		return err
	}
	return json.Unmarshal([]byte(body), v)
}

func (s *SQLiteStore) putDocument(name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}
	_, err = s.db.Exec(
		"INSERT INTO documents (name, body) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET body = excluded.body",
		name, string(body),
	)
	return err
}

func (s *SQLiteStore) setMeta(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}
