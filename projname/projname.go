package projname

import (
	"strings"
	"unicode"
)

// User-facing validation messages shown inline next to the project name field.
const (
	MsgEmpty   = "Please enter a project name"
	MsgInvalid = "Project name should only contain letters, numbers, - and _"
)

// Check returns "" when name is an acceptable project name, otherwise a
// user-facing message describing the problem. Hyphens and underscores are
// allowed anywhere; after stripping them the rest must be letters and digits
// only (and non-empty, so a name of nothing but separators is rejected).
func Check(name string) string {
	if name == "" {
		return MsgEmpty
	}
	stripped := strings.NewReplacer("-", "", "_", "").Replace(name)
	if stripped == "" {
		return MsgInvalid
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return MsgInvalid
		}
	}
	return ""
}

// Valid reports whether name passes Check.
func Valid(name string) bool {
	return Check(name) == ""
}

// DBName derives a PostgreSQL-friendly database name suggestion from a
// project name: lowercased, hyphens folded to underscores. It performs no
// validation; feed it a name that already passed Check.
func DBName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}
