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

import "errors"

// cacheState tracks the lifecycle of the repository cache.
type cacheState int

const (
	// cacheUnloaded means no fetch has been attempted yet.
	cacheUnloaded cacheState = iota
	// cacheLoading means a fetch is in flight.
	cacheLoading
	// cacheReady means a fetch succeeded. The cache never refetches after
	// this; the candidate set is fixed for the rest of the process.
	cacheReady
	// cacheFailed means the last fetch failed entirely. The cache stays
	// empty so the next picker open retries.
	cacheFailed
)

// String returns a human-readable label for a cacheState.
func (s cacheState) String() string {
	switch s {
	case cacheUnloaded:
		return "unloaded"
	case cacheLoading:
		return "loading"
	case cacheReady:
		return "ready"
	case cacheFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// repoCache holds the repository candidates for the lifetime of the process.
// It is owned by the TUI model and mutated only from its Update loop, so it
// needs no locking.
type repoCache struct {
	state   cacheState
	repos   []Repo
	lastErr string // operator-facing message from the most recent failure
}

// NeedsLoad reports whether opening the repository picker should trigger a
// fetch. True when nothing was ever loaded or the last attempt failed.
func (c *repoCache) NeedsLoad() bool {
	return c.state == cacheUnloaded || c.state == cacheFailed
}

// Loading reports whether a fetch is currently in flight.
func (c *repoCache) Loading() bool {
	return c.state == cacheLoading
}

// Ready reports whether candidates are available.
func (c *repoCache) Ready() bool {
	return c.state == cacheReady
}

// SetLoading marks a fetch as started.
func (c *repoCache) SetLoading() {
	c.state = cacheLoading
	c.lastErr = ""
}

// SetLoaded stores the fetched candidates. From here on Repos serves every
// picker open without another fetch.
func (c *repoCache) SetLoaded(repos []Repo) {
	c.state = cacheReady
	c.repos = repos
	c.lastErr = ""
}

// SetFailed records a failed fetch. The candidate set stays empty and the
// message is kept for display.
func (c *repoCache) SetFailed(msg string) {
	c.state = cacheFailed
	c.repos = nil
	c.lastErr = msg
}

// Repos returns the cached candidates. Empty unless Ready.
func (c *repoCache) Repos() []Repo {
	return c.repos
}

// LastError returns the message from the most recent failed fetch.
func (c *repoCache) LastError() string {
	return c.lastErr
}

// loadFailureMessage turns a FetchAll error into the message shown in the
// repository picker. A missing binary gets install advice; a classified
// failure gets its hint; anything else gets the generic auth question.
func loadFailureMessage(err error) string {
	var missing *ToolMissingError
	if errors.As(err, &missing) {
		return missing.Error()
	}
	var failed *ToolFailedError
	if errors.As(err, &failed) && failed.Hint != "" {
		return "Failed to load repos. " + failed.Hint
	}
	return "Failed to load repos. Is gh authenticated?"
}
