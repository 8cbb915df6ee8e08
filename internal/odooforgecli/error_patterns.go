package odooforgecli

import (
	"regexp"
	"strings"
)

// ErrorPattern represents a known failure signature in gh CLI output.
type ErrorPattern struct {
	Regex       *regexp.Regexp // Compiled regex to match against captured output.
	Hint        string         // Actionable advice appended to the status message.
	Description string         // Human-readable description of the failure.
}

// ErrorPatternRegistry holds a collection of failure patterns for matching
// against captured gh output.
type ErrorPatternRegistry struct {
	patterns []ErrorPattern
}

// NewErrorPatternRegistry creates a registry with the default built-in patterns.
func NewErrorPatternRegistry() *ErrorPatternRegistry {
	return &ErrorPatternRegistry{patterns: DefaultPatterns()}
}

// Match scans the output against all registered patterns. Returns the first
// matching pattern, or nil if no match is found. Order matters: more specific
// signatures are registered before generic ones.
func (r *ErrorPatternRegistry) Match(output string) *ErrorPattern {
	for i := range r.patterns {
		p := &r.patterns[i]
		if p.Regex.MatchString(output) {
			return p
		}
	}
	return nil
}

// AddPattern adds a custom pattern to the registry.
func (r *ErrorPatternRegistry) AddPattern(p ErrorPattern) {
	r.patterns = append(r.patterns, p)
}

// lastNLines returns the last n non-empty lines of s, preserving order.
// Tool output usually ends with the interesting part; the head is noise.
func lastNLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	kept := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		kept = append(kept, lines[i])
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return strings.Join(kept, "\n")
}

// truncateLog caps s at max bytes for a single log line.
func truncateLog(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// DefaultPatterns returns the built-in gh failure patterns.
func DefaultPatterns() []ErrorPattern {
	return []ErrorPattern{
		{
			Regex:       regexp.MustCompile(`gh auth login|GH_TOKEN`),
			Hint:        "Run 'gh auth login' to authenticate.",
			Description: "gh not authenticated",
		},
		{
			Regex:       regexp.MustCompile(`(?i)HTTP 401|bad credentials`),
			Hint:        "GitHub credentials are invalid or expired. Run 'gh auth login' again.",
			Description: "gh credentials rejected",
		},
		{
			Regex:       regexp.MustCompile(`(?i)rate limit exceeded|HTTP 403`),
			Hint:        "GitHub API rate limit hit. Wait a few minutes and retry.",
			Description: "GitHub rate limit",
		},
		{
			Regex:       regexp.MustCompile(`(?i)could not resolve to an Organization|HTTP 404`),
			Hint:        "The configured organization was not found. Check 'organization' in config.yaml.",
			Description: "organization not found",
		},
		{
			Regex:       regexp.MustCompile(`(?i)no such host|dial tcp|connection refused|\bETIMEDOUT\b|timed?\s*out`),
			Hint:        "Network problem reaching GitHub. Check your connection and retry.",
			Description: "network failure",
		},
	}
}
