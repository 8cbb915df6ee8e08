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

import "fmt"

// CheckStatus grades a single doctor check.
type CheckStatus int

const (
	// CheckOK means the requirement is satisfied.
	CheckOK CheckStatus = iota
	// CheckWarn means a feature is degraded but provisioning still works.
	CheckWarn
	// CheckFail means provisioning cannot run until this is fixed.
	CheckFail
)

// String returns a human-readable label for a CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckOK:
		return "ok"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// CheckResult is the outcome of one environment check.
type CheckResult struct {
	Name   string
	Status CheckStatus
	Detail string
}

// Doctor runs one-shot environment checks: the external tools and paths the
// TUI depends on. Checks run once when asked, never in the background.
type Doctor struct {
	cfg    *Config
	lister *RepoLister
	runner *ScriptRunner
	logger *Logger
}

// NewDoctor creates a doctor wired to the given dependencies.
func NewDoctor(cfg *Config, lister *RepoLister, runner *ScriptRunner, logger *Logger) *Doctor {
	return &Doctor{cfg: cfg, lister: lister, runner: runner, logger: logger}
}

// Run executes all checks and returns their results in display order.
func (d *Doctor) Run() []CheckResult {
	results := []CheckResult{
		d.checkInterpreter(),
		d.checkScript(),
		d.checkTargetDir(),
		d.checkGh(),
	}
	for _, r := range results {
		if r.Status != CheckOK && d.logger != nil {
			d.logger.Warn("doctor: %s %s: %s", r.Name, r.Status, r.Detail)
		}
	}
	return results
}

// Healthy reports whether no check failed outright. Warnings are fine.
func Healthy(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == CheckFail {
			return false
		}
	}
	return true
}

// Failures returns only the non-OK results, for compact display in the TUI.
func Failures(results []CheckResult) []CheckResult {
	var out []CheckResult
	for _, r := range results {
		if r.Status != CheckOK {
			out = append(out, r)
		}
	}
	return out
}

func (d *Doctor) checkInterpreter() CheckResult {
	name := "interpreter"
	if d.runner.InterpreterAvailable() {
		return CheckResult{Name: name, Status: CheckOK, Detail: d.runner.Interpreter() + " found"}
	}
	return CheckResult{
		Name:   name,
		Status: CheckFail,
		Detail: fmt.Sprintf("%s not found; provisioning cannot run", d.runner.Interpreter()),
	}
}

func (d *Doctor) checkScript() CheckResult {
	name := "script"
	path, err := d.runner.ResolveScript()
	if err != nil {
		return CheckResult{Name: name, Status: CheckFail, Detail: err.Error()}
	}
	return CheckResult{Name: name, Status: CheckOK, Detail: path}
}

func (d *Doctor) checkTargetDir() CheckResult {
	name := "target dir"
	if dirExists(d.cfg.TargetDir) {
		return CheckResult{Name: name, Status: CheckOK, Detail: d.cfg.TargetDir}
	}
	return CheckResult{
		Name:   name,
		Status: CheckWarn,
		Detail: fmt.Sprintf("%s does not exist yet; it is created on first use", d.cfg.TargetDir),
	}
}

func (d *Doctor) checkGh() CheckResult {
	name := "gh"
	if d.lister.Available() {
		return CheckResult{Name: name, Status: CheckOK, Detail: "gh found on PATH"}
	}
	return CheckResult{
		Name:   name,
		Status: CheckWarn,
		Detail: "gh CLI not found. Install it from https://cli.github.com (repository picker unavailable)",
	}
}
