/*
 * Copyright (c) 2026. AXIOM STUDIO AI Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package odooforgecli

import (
	"regexp"
	"strings"
	"testing"
)

func TestNewErrorPatternRegistry(t *testing.T) {
	r := NewErrorPatternRegistry()
	if r == nil {
		t.Fatal("NewErrorPatternRegistry() returned nil")
	}
	if len(r.patterns) == 0 {
		t.Error("registry has no default patterns")
	}
}

func TestDefaultPatterns(t *testing.T) {
	patterns := DefaultPatterns()
	if len(patterns) < 5 {
		t.Errorf("DefaultPatterns() returned %d patterns, want at least 5", len(patterns))
	}
	for i, p := range patterns {
		if p.Regex == nil {
			t.Errorf("pattern %d has nil regex", i)
		}
		if p.Hint == "" {
			t.Errorf("pattern %d has empty hint", i)
		}
		if p.Description == "" {
			t.Errorf("pattern %d has empty description", i)
		}
	}
}

func TestErrorPatternRegistry_Match_AuthRequired(t *testing.T) {
	r := NewErrorPatternRegistry()
	output := "To get started with GitHub CLI, please run:  gh auth login"
	p := r.Match(output)
	if p == nil {
		t.Fatal("expected a match for unauthenticated gh output")
	}
	if p.Description != "gh not authenticated" {
		t.Errorf("matched %q, want %q", p.Description, "gh not authenticated")
	}
}

func TestErrorPatternRegistry_Match_TokenEnv(t *testing.T) {
	r := NewErrorPatternRegistry()
	output := "Alternatively, populate the GH_TOKEN environment variable"
	p := r.Match(output)
	if p == nil {
		t.Fatal("expected a match for GH_TOKEN output")
	}
	if p.Description != "gh not authenticated" {
		t.Errorf("matched %q, want %q", p.Description, "gh not authenticated")
	}
}

func TestErrorPatternRegistry_Match_BadCredentials(t *testing.T) {
	r := NewErrorPatternRegistry()
	output := "HTTP 401: Bad credentials (https://api.github.com/graphql)"
	p := r.Match(output)
	if p == nil {
		t.Fatal("expected a match for 401 output")
	}
	if p.Description != "gh credentials rejected" {
		t.Errorf("matched %q, want %q", p.Description, "gh credentials rejected")
	}
}

func TestErrorPatternRegistry_Match_RateLimit(t *testing.T) {
	r := NewErrorPatternRegistry()

	tests := []struct {
		name   string
		output string
	}{
		{"explicit message", "API rate limit exceeded for user ID 12345"},
		{"status code", "HTTP 403: was submitted too quickly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := r.Match(tt.output)
			if p == nil {
				t.Fatal("expected a match for rate limit output")
			}
			if p.Description != "GitHub rate limit" {
				t.Errorf("matched %q, want %q", p.Description, "GitHub rate limit")
			}
		})
	}
}

func TestErrorPatternRegistry_Match_OrganizationNotFound(t *testing.T) {
	r := NewErrorPatternRegistry()
	output := "GraphQL: Could not resolve to an Organization with the login of 'no-such-org'."
	p := r.Match(output)
	if p == nil {
		t.Fatal("expected a match for missing organization output")
	}
	if p.Description != "organization not found" {
		t.Errorf("matched %q, want %q", p.Description, "organization not found")
	}
}

func TestErrorPatternRegistry_Match_NetworkFailure(t *testing.T) {
	r := NewErrorPatternRegistry()

	tests := []struct {
		name   string
		output string
	}{
		{"dns", "dial tcp: lookup api.github.com: no such host"},
		{"refused", "dial tcp 140.82.121.6:443: connection refused"},
		{"etimedout", "request failed: ETIMEDOUT"},
		{"timed out", "net/http: request timed out awaiting headers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := r.Match(tt.output)
			if p == nil {
				t.Fatal("expected a match for network failure output")
			}
			if p.Description != "network failure" {
				t.Errorf("matched %q, want %q", p.Description, "network failure")
			}
		})
	}
}

// The auth pattern is registered before the 403 pattern. Output mentioning
// both must resolve to the more specific auth hint.
func TestErrorPatternRegistry_Match_SpecificityOrder(t *testing.T) {
	r := NewErrorPatternRegistry()
	output := "HTTP 403: Forbidden\nTo get started with GitHub CLI, please run:  gh auth login"
	p := r.Match(output)
	if p == nil {
		t.Fatal("expected a match")
	}
	if p.Description != "gh not authenticated" {
		t.Errorf("matched %q, want auth pattern to win over 403", p.Description)
	}
}

func TestErrorPatternRegistry_Match_NoMatch(t *testing.T) {
	r := NewErrorPatternRegistry()
	output := "everything is perfectly fine here"
	if p := r.Match(output); p != nil {
		t.Errorf("expected no match, got %q", p.Description)
	}
}

func TestErrorPatternRegistry_Match_EmptyOutput(t *testing.T) {
	r := NewErrorPatternRegistry()
	if p := r.Match(""); p != nil {
		t.Errorf("expected no match for empty output, got %q", p.Description)
	}
}

func TestErrorPatternRegistry_AddPattern(t *testing.T) {
	r := NewErrorPatternRegistry()
	before := len(r.patterns)

	r.AddPattern(ErrorPattern{
		Regex:       regexp.MustCompile(`custom failure marker`),
		Hint:        "Do the custom thing.",
		Description: "custom failure",
	})

	if len(r.patterns) != before+1 {
		t.Errorf("pattern count = %d, want %d", len(r.patterns), before+1)
	}

	p := r.Match("output with custom failure marker inside")
	if p == nil {
		t.Fatal("expected custom pattern to match")
	}
	if p.Description != "custom failure" {
		t.Errorf("matched %q, want %q", p.Description, "custom failure")
	}
}

func TestLastNLines(t *testing.T) {
	tests := []struct {
		name string
		s    string
		n    int
		want string
	}{
		{"fewer lines than n", "one\ntwo", 5, "one\ntwo"},
		{"exact n", "one\ntwo\nthree", 3, "one\ntwo\nthree"},
		{"more lines than n", "one\ntwo\nthree\nfour", 2, "three\nfour"},
		{"trailing newline ignored", "one\ntwo\nthree\n", 2, "two\nthree"},
		{"blank lines skipped", "one\n\ntwo\n\n\nthree", 2, "two\nthree"},
		{"zero n", "one\ntwo", 0, ""},
		{"empty input", "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lastNLines(tt.s, tt.n)
			if got != tt.want {
				t.Errorf("lastNLines(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
			}
		})
	}
}

func TestTruncateLog(t *testing.T) {
	tests := []struct {
		name string
		s    string
		max  int
		want string
	}{
		{"shorter than max", "short", 10, "short"},
		{"equal to max", "exact", 5, "exact"},
		{"longer than max", "this is a long line", 10, "this is..."},
		{"tiny max", "abcdef", 2, "ab"},
		{"zero max", "abcdef", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateLog(tt.s, tt.max)
			if got != tt.want {
				t.Errorf("truncateLog(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
			}
			if tt.max > 0 && len(got) > tt.max {
				t.Errorf("result %q exceeds max %d", got, tt.max)
			}
		})
	}
}

func TestTruncateLog_LongOutputStaysSingleLine(t *testing.T) {
	long := strings.Repeat("x", 5000)
	got := truncateLog(long, 300)
	if len(got) != 300 {
		t.Errorf("len = %d, want 300", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated output should end with ellipsis")
	}
}
