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
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ghBinary is the GitHub CLI executable looked up on PATH.
const ghBinary = "gh"

// Repo is one repository candidate offered to the operator. URL doubles as
// the identity key when merging listings, and as the value handed to the
// provisioning script for cloning.
type Repo struct {
	NameWithOwner string `json:"nameWithOwner"`
	URL           string `json:"url"`
}

// ToolMissingError indicates an external binary the operation needs is not
// installed at all, as opposed to installed but failing.
type ToolMissingError struct {
	Tool string
	Hint string
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("%s not found. %s", e.Tool, e.Hint)
}

// ToolFailedError indicates an external binary ran but did not succeed.
// Output carries the tail of its stderr; Hint is actionable advice from the
// pattern registry and may be empty for unrecognized failures.
type ToolFailedError struct {
	Tool   string
	Output string
	Hint   string
	Err    error
}

func (e *ToolFailedError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Tool)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ToolFailedError) Unwrap() error {
	return e.Err
}

// RepoLister fetches repository candidates through the gh CLI: the
// authenticated user's own repositories plus the configured organization's.
// It caches binary availability so the TUI can cheaply re-ask.
type RepoLister struct {
	binary string
	org    string
	limit  int

	logger   *Logger
	patterns *ErrorPatternRegistry

	mu        sync.Mutex
	checked   bool
	available bool
}

// NewRepoLister creates a lister from config. The gh binary is not probed
// until the first Available call.
func NewRepoLister(cfg *Config, logger *Logger) *RepoLister {
	return &RepoLister{
		binary:   ghBinary,
		org:      cfg.Organization,
		limit:    cfg.ListLimit,
		logger:   logger,
		patterns: NewErrorPatternRegistry(),
	}
}

// Available reports whether the gh binary is on PATH. The result is cached;
// call Refresh after the operator installs gh mid-session.
func (l *RepoLister) Available() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.checked {
		_, err := exec.LookPath(l.binary)
		l.available = err == nil
		l.checked = true
	}
	return l.available
}

// Refresh drops the cached availability so the next Available call probes
// PATH again.
func (l *RepoLister) Refresh() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checked = false
}

// FetchAll lists the authenticated user's repositories and the configured
// organization's, merges them by URL, and sorts case-insensitively by name.
// Either listing may fail on its own; the other still contributes. FetchAll
// returns an error when both fail, or when the merge comes back empty, so
// the caller can leave its cache unloaded and retry later.
func (l *RepoLister) FetchAll() ([]Repo, error) {
	if !l.Available() {
		return nil, &ToolMissingError{
			Tool: "gh CLI",
			Hint: "Install it from https://cli.github.com",
		}
	}

	mine, errMine := l.ListMine()
	if errMine != nil {
		l.logger.Warn("listing own repos failed: %v", errMine)
	}

	org, errOrg := l.ListOrg()
	if errOrg != nil {
		l.logger.Warn("listing %s repos failed: %v", l.org, errOrg)
	}

	if errMine != nil && errOrg != nil {
		return nil, errMine
	}

	merged := mergeRepos(mine, org)
	if len(merged) == 0 {
		// Zero repos across both listings is what an unauthenticated gh
		// looks like. Surface it as a failure so the cache stays retryable
		// instead of freezing on an empty candidate set.
		l.logger.Warn("gh returned no repositories from either listing")
		if errMine != nil {
			return nil, errMine
		}
		if errOrg != nil {
			return nil, errOrg
		}
		return nil, &ToolFailedError{Tool: "gh", Output: "no repositories returned"}
	}
	sortRepos(merged)
	l.logger.Info("fetched %d repos (%d own, %d org)", len(merged), len(mine), len(org))
	return merged, nil
}

// ListMine lists repositories of the authenticated gh identity.
func (l *RepoLister) ListMine() ([]Repo, error) {
	return l.runList("repo", "list", "--limit", strconv.Itoa(l.limit), "--json", "nameWithOwner,url")
}

// ListOrg lists repositories of the configured organization.
func (l *RepoLister) ListOrg() ([]Repo, error) {
	return l.runList("repo", "list", l.org, "--limit", strconv.Itoa(l.limit), "--json", "nameWithOwner,url")
}

// runList executes one gh invocation and decodes its JSON output. On
// failure the stderr tail is matched against the pattern registry to attach
// an actionable hint.
func (l *RepoLister) runList(args ...string) ([]Repo, error) {
	cmd := exec.Command(l.binary, args...)
	out, err := cmd.Output()
	if err != nil {
		output := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output = strings.TrimSpace(string(exitErr.Stderr))
		}
		l.logger.Error("gh %s: %s", strings.Join(args, " "), truncateLog(lastNLines(output, 5), 500))

		failure := &ToolFailedError{
			Tool:   "gh",
			Output: lastNLines(output, 3),
			Err:    err,
		}
		if p := l.patterns.Match(output); p != nil {
			failure.Hint = p.Hint
			l.logger.Warn("gh failure classified: %s", p.Description)
		}
		return nil, failure
	}

	repos, err := parseRepoList(out)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("gh %s: %d repos", strings.Join(args, " "), len(repos))
	return repos, nil
}

// parseRepoList decodes the JSON array emitted by gh --json.
func parseRepoList(data []byte) ([]Repo, error) {
	var repos []Repo
	if err := json.Unmarshal(data, &repos); err != nil {
		return nil, fmt.Errorf("parse gh output: %w", err)
	}
	return repos, nil
}

// mergeRepos concatenates two listings, keeping the first entry seen for
// each URL. A repository returned by both the user and the organization
// listing appears once.
func mergeRepos(a, b []Repo) []Repo {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]Repo, 0, len(a)+len(b))
	for _, r := range a {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		out = append(out, r)
	}
	for _, r := range b {
		if seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		out = append(out, r)
	}
	return out
}

// sortRepos orders repos alphabetically by name, ignoring case so that
// "Zebra" does not sort before "apple".
func sortRepos(repos []Repo) {
	sort.Slice(repos, func(i, j int) bool {
		return strings.ToLower(repos[i].NameWithOwner) < strings.ToLower(repos[j].NameWithOwner)
	})
}
