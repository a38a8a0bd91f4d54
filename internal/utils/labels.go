package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var durationSuffix = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*([hm])\s*$`)

// ParseDurationFromLabel extracts a duration in minutes from a checklist
// label like "Thesis draft 2h" or "Inbox sweep 90m". Returns 0 when no
// duration suffix is present.
func ParseDurationFromLabel(label string) int {
	m := durationSuffix.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	if strings.EqualFold(m[2], "h") {
		return int(val * 60)
	}
	return int(val)
}

// TaskTitleFromLabel extracts the task-title prefix from a checklist
// label: the trailing duration is stripped, and anything after a colon is
// treated as a sub-description.
//
//	"Thesis draft: results section 2h" -> "Thesis draft"
//	"Inbox sweep 20m"                  -> "Inbox sweep"
func TaskTitleFromLabel(label string) string {
	cleaned := strings.TrimSpace(durationSuffix.ReplaceAllString(label, ""))
	if idx := strings.Index(cleaned, ":"); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	return strings.TrimSpace(cleaned)
}

// MatchTaskTitle reports whether a checklist label's title prefix refers
// to the given task title, case-insensitively and tolerating either side
// being a prefix of the other.
func MatchTaskTitle(label, title string) bool {
	prefix := strings.ToLower(TaskTitleFromLabel(label))
	t := strings.ToLower(strings.TrimSpace(title))
	if prefix == "" || t == "" {
		return false
	}
	return prefix == t || strings.HasPrefix(prefix, t) || strings.HasPrefix(t, prefix)
}
