package analytics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/dayweave/internal/models"
)

func TestLoadSuggestions_MissingFileIsEmpty(t *testing.T) {
	s, err := LoadSuggestions(filepath.Join(t.TempDir(), "analytics.json"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if got := s.BoostFor("anything"); got != 0 {
		t.Errorf("expected zero boost, got %v", got)
	}
	if _, ok := s.PreferredDayFor("anything"); ok {
		t.Error("expected no preferred day")
	}
}

func TestLoadSuggestions_ReadsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.json")
	content := `{
  "rolling7dayAvg": 0.42,
  "taskBoosts": {"paper": 1.5},
  "preferredDays": {"gym": "friday", "paper": "not-a-day"}
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSuggestions(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := s.BoostFor("paper"); got != 1.5 {
		t.Errorf("expected boost 1.5, got %v", got)
	}
	if got := s.BoostFor("gym"); got != 0 {
		t.Errorf("expected zero boost for unlisted task, got %v", got)
	}

	day, ok := s.PreferredDayFor("gym")
	if !ok || day != models.Friday {
		t.Errorf("expected friday, got %s ok=%v", day, ok)
	}
	if _, ok := s.PreferredDayFor("paper"); ok {
		t.Error("unparseable day names must be ignored")
	}

	if got := s.Snapshot().Rolling7DayAvg; got != 0.42 {
		t.Errorf("expected rolling average preserved, got %v", got)
	}
}

func TestLoadSuggestions_MalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSuggestions(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestNilSuggestionsAreSafe(t *testing.T) {
	var s *Suggestions
	if s.BoostFor("x") != 0 {
		t.Error("nil source must yield zero boost")
	}
	if _, ok := s.PreferredDayFor("x"); ok {
		t.Error("nil source must yield no preference")
	}
	if snap := s.Snapshot(); snap.TotalDaysTracked != 0 {
		t.Error("nil source must yield empty snapshot")
	}
}
