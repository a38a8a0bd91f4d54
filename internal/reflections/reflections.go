package reflections

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/julianstephens/dayweave/internal/models"
)

// Entry is the structured record the finalizer hands to the log. The
// on-disk rendering belongs here, not to the finalizer.
type Entry struct {
	Day        string
	Time       string
	Rating     models.Rating
	Mode       models.CheckinMode
	DoneItems  []string
	Skipped    []string
	Notes      map[string]string // label -> comment
	Reflection string
	Summary    string
}

const logHeader = "# Reflections (rolling)\n\nAppend newest entries at the top.\n\n---\n\n"

// Log prepends entries to a rolling markdown file, newest first.
type Log struct {
	Path string
}

func NewLog(path string) *Log {
	return &Log{Path: path}
}

// Prepend renders the entry and inserts it right after the header marker.
func (l *Log) Prepend(entry Entry) error {
	existing := ""
	if data, err := os.ReadFile(l.Path); err == nil {
		existing = string(data)
	}
	if strings.TrimSpace(existing) == "" {
		existing = logHeader
	}

	rendered := Render(entry)
	marker := "---\n\n"
	var updated string
	if idx := strings.Index(existing, marker); idx != -1 {
		head := existing[:idx+len(marker)]
		tail := existing[idx+len(marker):]
		updated = head + "\n" + strings.TrimSpace(rendered) + "\n\n" + strings.TrimLeft(tail, "\n")
	} else {
		updated = strings.TrimSpace(rendered) + "\n\n" + existing
	}

	return writeAtomic(l.Path, []byte(updated))
}

// Render produces the markdown text for a single entry.
func Render(e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", e.Day)
	fmt.Fprintf(&b, "- Time: %s\n\n", e.Time)
	fmt.Fprintf(&b, "**Rating:** %s\n\n", strings.ToUpper(string(e.Rating)))
	fmt.Fprintf(&b, "**Mode:** %s\n\n", strings.ToUpper(string(e.Mode)))

	b.WriteString("**Done**\n")
	if len(e.DoneItems) == 0 {
		b.WriteString("- (none)\n")
	}
	for _, it := range e.DoneItems {
		fmt.Fprintf(&b, "- %s\n", it)
	}

	b.WriteString("\n**Skipped**\n")
	if len(e.Skipped) == 0 {
		b.WriteString("- (none)\n")
	}
	for _, it := range e.Skipped {
		fmt.Fprintf(&b, "- %s\n", it)
	}

	b.WriteString("\n**Notes**\n")
	if len(e.Notes) == 0 {
		b.WriteString("- (none)\n")
	}
	for _, label := range sortedKeys(e.Notes) {
		fmt.Fprintf(&b, "- %s: %s\n", label, e.Notes[label])
	}

	b.WriteString("\n**Reflection**\n")
	if strings.TrimSpace(e.Reflection) == "" {
		b.WriteString("- (none)\n")
	} else {
		b.WriteString(strings.TrimSpace(e.Reflection) + "\n")
	}

	b.WriteString("\n**Auto-summary**\n")
	fmt.Fprintf(&b, "- %s\n", e.Summary)

	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".reflections-*")
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
