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
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// repoPickOutcome is how the repository picker was resolved. Cancel keeps
// the form's previous choice; clear removes it; chosen replaces it.
type repoPickOutcome int

const (
	repoPickPending repoPickOutcome = iota
	repoPickChosen
	repoPickCleared
	repoPickCancelled
)

// RepoPickerModel is a Bubble Tea sub-model for choosing a repository from
// the cached candidates, narrowed by a live search query.
type RepoPickerModel struct {
	repos []Repo

	query    string
	filtered []int // indices into repos, rebuilt from scratch on each edit
	cursor   int

	outcome repoPickOutcome
	chosen  Repo

	width  int
	height int
}

// NewRepoPickerModel creates a picker over the full candidate set.
func NewRepoPickerModel(repos []Repo) RepoPickerModel {
	rp := RepoPickerModel{repos: repos}
	rp.rebuildFilter()
	return rp
}

// Done returns true when the operator chose a repository.
func (rp RepoPickerModel) Done() bool { return rp.outcome == repoPickChosen }

// Cleared returns true when the operator explicitly cleared the current
// repository choice.
func (rp RepoPickerModel) Cleared() bool { return rp.outcome == repoPickCleared }

// Cancelled returns true when the picker was dismissed without a decision.
func (rp RepoPickerModel) Cancelled() bool { return rp.outcome == repoPickCancelled }

// URL returns the chosen repository's clone URL.
func (rp RepoPickerModel) URL() string { return rp.chosen.URL }

// Name returns the chosen repository's name-with-owner.
func (rp RepoPickerModel) Name() string { return rp.chosen.NameWithOwner }

// Update handles input for the repository picker.
func (rp RepoPickerModel) Update(msg tea.Msg) (RepoPickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rp.width = msg.Width
		rp.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			if rp.cursor > 0 {
				rp.cursor--
			}
		case "down":
			if rp.cursor < len(rp.filtered)-1 {
				rp.cursor++
			}
		case "enter":
			// With no visible candidates there is nothing to choose; the
			// picker stays open so clear and cancel remain reachable.
			if rp.cursor >= 0 && rp.cursor < len(rp.filtered) {
				rp.chosen = rp.repos[rp.filtered[rp.cursor]]
				rp.outcome = repoPickChosen
			}
		case "ctrl+x":
			rp.outcome = repoPickCleared
		case "esc":
			rp.outcome = repoPickCancelled
		case "backspace":
			if len(rp.query) > 0 {
				rp.query = rp.query[:len(rp.query)-1]
				rp.rebuildFilter()
			}
		default:
			ch := msg.String()
			if len(ch) == 1 && ch[0] >= ' ' {
				rp.query += ch
				rp.rebuildFilter()
			}
		}
	}
	return rp, nil
}

// rebuildFilter recomputes the visible subset from the full candidate set.
// Always from scratch, never from the previous subset, so widening edits
// (backspace) bring entries back. The cursor snaps to the first match.
func (rp *RepoPickerModel) rebuildFilter() {
	rp.filtered = rp.filtered[:0]
	query := strings.ToLower(rp.query)
	for i, r := range rp.repos {
		if query == "" || strings.Contains(strings.ToLower(r.NameWithOwner), query) {
			rp.filtered = append(rp.filtered, i)
		}
	}
	rp.cursor = 0
}

// View renders the repository picker as a centered popup.
func (rp RepoPickerModel) View() string {
	width := rp.width
	if width < 40 {
		width = 80
	}
	height := rp.height
	if height < 10 {
		height = 24
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	inputStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(dimColor)

	maxRows := height - 12
	if maxRows < 5 {
		maxRows = 5
	}
	offset := 0
	if rp.cursor >= maxRows {
		offset = rp.cursor - maxRows + 1
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Select Repository to Clone"))
	b.WriteString("\n\n")

	b.WriteString("Search: ")
	b.WriteString(inputStyle.Render(rp.query))
	b.WriteString(lipgloss.NewStyle().Foreground(accentColor).Render("█"))
	b.WriteString("\n\n")

	if len(rp.filtered) == 0 {
		b.WriteString(dimStyle.Render("No repositories match."))
		b.WriteString("\n")
	}
	end := offset + maxRows
	if end > len(rp.filtered) {
		end = len(rp.filtered)
	}
	for i := offset; i < end; i++ {
		r := rp.repos[rp.filtered[i]]
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == rp.cursor {
			cursor = "> "
			style = selectedStyle
		}
		b.WriteString(style.Render(cursor + truncate(r.NameWithOwner, 48)))
		b.WriteString("\n")
	}
	if end < len(rp.filtered) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(rp.filtered)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d repos", len(rp.filtered), len(rp.repos))))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type: search  ↑/↓: navigate  enter: select  ctrl+x: clear choice  esc: cancel"))

	popupStyle := lipgloss.NewStyle().
		Width(56).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popupStyle.Render(b.String()))
}
