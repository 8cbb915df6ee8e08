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
	"path/filepath"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dirPickerRow is one visible line of the directory tree.
type dirPickerRow struct {
	path  string
	name  string
	depth int
}

// DirPickerModel is a Bubble Tea sub-model for browsing the directory tree
// under a start path and picking an install location. Folders can be created
// in place; hidden directories never show up.
type DirPickerModel struct {
	start  string
	rows   []dirPickerRow
	cursor int

	expanded map[string]bool
	children map[string][]string // loaded subdirectory names per path

	creating   bool // new-folder text input active
	folderName string
	inputErr   string

	errMsg string // inline error from the last listing failure

	done      bool
	cancelled bool
	selected  string

	width  int
	height int
}

// NewDirPickerModel creates a picker rooted at start. The root is expanded
// up front; deeper levels load when the operator expands them.
func NewDirPickerModel(start string) DirPickerModel {
	dp := DirPickerModel{
		start:    start,
		expanded: map[string]bool{start: true},
		children: make(map[string][]string),
	}
	if err := dp.loadChildren(start); err != nil {
		dp.errMsg = err.Error()
	}
	dp.rebuildRows()
	return dp
}

// Done returns true when the operator confirmed a directory.
func (dp DirPickerModel) Done() bool { return dp.done }

// Cancelled returns true when the operator dismissed the picker. The field
// being edited keeps its previous value in that case.
func (dp DirPickerModel) Cancelled() bool { return dp.cancelled }

// Path returns the confirmed directory.
func (dp DirPickerModel) Path() string { return dp.selected }

// Update handles input for the directory picker.
func (dp DirPickerModel) Update(msg tea.Msg) (DirPickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		dp.width = msg.Width
		dp.height = msg.Height

	case tea.KeyMsg:
		// Text input mode for the new folder name.
		if dp.creating {
			switch msg.String() {
			case "enter":
				return dp.createUnderCursor(), nil
			case "esc":
				dp.creating = false
				dp.folderName = ""
				dp.inputErr = ""
			case "backspace":
				if len(dp.folderName) > 0 {
					dp.folderName = dp.folderName[:len(dp.folderName)-1]
				}
				dp.inputErr = ""
			default:
				if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
					for _, r := range msg.Runes {
						if isFolderNameRune(r) {
							dp.folderName += string(r)
						}
					}
					dp.inputErr = ""
				}
			}
			return dp, nil
		}

		switch msg.String() {
		case "up", "k":
			if dp.cursor > 0 {
				dp.cursor--
			}
		case "down", "j":
			if dp.cursor < len(dp.rows)-1 {
				dp.cursor++
			}
		case "enter":
			return dp.toggleCursor(), nil
		case "n":
			dp.creating = true
			dp.folderName = ""
			dp.inputErr = ""
		case "s":
			dp.selected = dp.highlightedPath()
			dp.done = true
		case "esc":
			dp.cancelled = true
		}
	}
	return dp, nil
}

// highlightedPath returns the directory under the cursor, falling back to
// the start path when no row is highlighted.
func (dp DirPickerModel) highlightedPath() string {
	if dp.cursor >= 0 && dp.cursor < len(dp.rows) {
		return dp.rows[dp.cursor].path
	}
	return dp.start
}

// toggleCursor expands or collapses the directory under the cursor. The
// first expansion lists it from disk; a failure shows up inline and leaves
// the tree as it was.
func (dp DirPickerModel) toggleCursor() DirPickerModel {
	if dp.cursor < 0 || dp.cursor >= len(dp.rows) {
		return dp
	}
	path := dp.rows[dp.cursor].path
	if dp.expanded[path] {
		delete(dp.expanded, path)
	} else {
		if err := dp.loadChildren(path); err != nil {
			dp.errMsg = err.Error()
			return dp
		}
		dp.expanded[path] = true
	}
	dp.errMsg = ""
	dp.rebuildRows()
	if dp.cursor >= len(dp.rows) {
		dp.cursor = len(dp.rows) - 1
	}
	return dp
}

// createUnderCursor creates the typed folder inside the highlighted
// directory, then expands it and moves the cursor onto the new entry.
// A nested name like "a/b" creates every intermediate directory; creating
// a folder that already exists is fine.
func (dp DirPickerModel) createUnderCursor() DirPickerModel {
	parent := dp.highlightedPath()
	created, err := createFolder(parent, dp.folderName)
	if err != nil {
		dp.inputErr = err.Error()
		return dp
	}

	dp.creating = false
	dp.folderName = ""
	dp.inputErr = ""

	// Re-list every directory along the new path and expand it, so the
	// leaf of a nested create is visible, not just the first level.
	for _, dir := range ancestorsWithin(parent, created) {
		delete(dp.children, dir)
		if err := dp.loadChildren(dir); err != nil {
			dp.errMsg = err.Error()
			return dp
		}
		dp.expanded[dir] = true
	}
	dp.errMsg = ""
	dp.rebuildRows()

	for i, row := range dp.rows {
		if row.path == created {
			dp.cursor = i
			break
		}
	}
	return dp
}

// ancestorsWithin returns base and each intermediate directory on the way
// down to path, excluding path itself. When path is directly under base,
// that is just base.
func ancestorsWithin(base, path string) []string {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." {
		return []string{base}
	}
	segs := strings.Split(rel, string(filepath.Separator))
	out := []string{base}
	dir := base
	for _, seg := range segs[:len(segs)-1] {
		dir = filepath.Join(dir, seg)
		out = append(out, dir)
	}
	return out
}

// loadChildren lists the visible subdirectories of path once and caches
// them. Already loaded paths are left alone.
func (dp *DirPickerModel) loadChildren(path string) error {
	if _, ok := dp.children[path]; ok {
		return nil
	}
	names, err := listDirs(path)
	if err != nil {
		return err
	}
	dp.children[path] = names
	return nil
}

// rebuildRows flattens the expanded tree into display rows, depth-first.
func (dp *DirPickerModel) rebuildRows() {
	dp.rows = dp.rows[:0]
	dp.appendRows(dp.start, dp.start, 0)
}

func (dp *DirPickerModel) appendRows(path, name string, depth int) {
	dp.rows = append(dp.rows, dirPickerRow{path: path, name: name, depth: depth})
	if !dp.expanded[path] {
		return
	}
	for _, child := range dp.children[path] {
		dp.appendRows(filepath.Join(path, child), child, depth+1)
	}
}

// isFolderNameRune returns true for runes allowed in a typed folder name.
// Any printable rune is fine, including the path separator: nested names
// like "a/b" are created recursively, and createFolder clamps the result
// under the parent.
func isFolderNameRune(r rune) bool {
	return unicode.IsPrint(r)
}

// View renders the directory picker as a centered popup.
func (dp DirPickerModel) View() string {
	width := dp.width
	if width < 40 {
		width = 80
	}
	height := dp.height
	if height < 10 {
		height = 24
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	dimStyle := lipgloss.NewStyle().Foreground(dimColor)
	errStyle := lipgloss.NewStyle().Foreground(errorColor)
	inputStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Select Target Directory"))
	b.WriteString("\n\n")

	for i, row := range dp.rows {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == dp.cursor {
			cursor = "> "
			style = selectedStyle
		}
		arrow := "▸"
		if dp.expanded[row.path] {
			arrow = "▾"
		}
		indent := strings.Repeat("  ", row.depth)
		label := truncate(row.name, 44-len(indent))
		b.WriteString(style.Render(fmt.Sprintf("%s%s%s %s", cursor, indent, arrow, label)))
		b.WriteString("\n")
	}

	if dp.creating {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("New folder in %s:\n", truncate(dp.highlightedPath(), 44)))
		b.WriteString("  " + inputStyle.Render(dp.folderName))
		b.WriteString(lipgloss.NewStyle().Foreground(accentColor).Render("█"))
		if dp.inputErr != "" {
			b.WriteString("\n")
			b.WriteString(errStyle.Render("  " + dp.inputErr))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: create  esc: cancel"))
	} else {
		if dp.errMsg != "" {
			b.WriteString("\n")
			b.WriteString(errStyle.Render(truncate(dp.errMsg, 50)))
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(truncate(dp.highlightedPath(), 50)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("j/k: navigate  enter: expand  n: new folder  s: select  esc: cancel"))
	}

	popupStyle := lipgloss.NewStyle().
		Width(56).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popupStyle.Render(b.String()))
}
