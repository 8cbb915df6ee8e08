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

	"odooforge-cli/projname"
)

// formField identifies a focusable element of the setup form, in tab order.
type formField int

const (
	fieldName formField = iota
	fieldVersion
	fieldTargetDir
	fieldDBName
	fieldHooks
	fieldRepo
	fieldCreate
	fieldQuit
	fieldCount
)

// textField reports whether typed runes land in the focused field. Used to
// keep j/k navigation off the text inputs.
func (f formField) textField() bool {
	return f == fieldName || f == fieldDBName
}

// updateForm handles input while the main form has the terminal.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % fieldCount
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m, nil
	case "enter":
		return m.activateField()
	case "left":
		if m.focus == fieldVersion && m.versionIdx > 0 {
			m.versionIdx--
		}
		return m, nil
	case "right":
		if m.focus == fieldVersion && m.versionIdx < len(m.cfg.Versions)-1 {
			m.versionIdx++
		}
		return m, nil
	case " ":
		if m.focus == fieldHooks {
			m.installHooks = !m.installHooks
			return m, nil
		}
	case "backspace":
		switch m.focus {
		case fieldName:
			if len(m.projectName) > 0 {
				m.projectName = m.projectName[:len(m.projectName)-1]
			}
		case fieldDBName:
			if len(m.dbName) > 0 {
				m.dbName = m.dbName[:len(m.dbName)-1]
			}
		}
		return m, nil
	case "esc", "q":
		if keyMsg.String() == "q" && m.focus.textField() {
			break // "q" is a letter when a text input has focus
		}
		m.quitting = true
		return m, tea.Quit
	}

	// Printable input for the text fields.
	ch := keyMsg.String()
	if len(ch) == 1 && ch[0] >= ' ' {
		switch m.focus {
		case fieldName:
			m.projectName += ch
		case fieldDBName:
			m.dbName += ch
		}
	}
	return m, nil
}

// activateField runs the enter action for the focused field.
func (m Model) activateField() (tea.Model, tea.Cmd) {
	switch m.focus {
	case fieldTargetDir:
		m.dirPicker = NewDirPickerModel(m.targetDir)
		m.activeView = ViewDirPicker
		return m, nil
	case fieldRepo:
		return m.openRepoPicker()
	case fieldCreate:
		return m.submit()
	case fieldQuit:
		m.quitting = true
		return m, tea.Quit
	default:
		// Enter moves on from the text fields, like tab.
		m.focus = (m.focus + 1) % fieldCount
		return m, nil
	}
}

// submit validates the form, assembles the provisioning request, and either
// runs it or asks for confirmation when the project directory already exists.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.running {
		m.setStatus("A setup run is already in progress", statusBad)
		return m, nil
	}

	name := strings.TrimSpace(m.projectName)
	if msg := projname.Check(name); msg != "" {
		m.setStatus(msg, statusBad)
		m.focus = fieldName
		return m, nil
	}

	scriptPath, err := m.runner.ResolveScript()
	if err != nil {
		m.setStatus("Setup script not found! "+err.Error(), statusBad)
		m.logger.Error("resolve script: %v", err)
		return m, nil
	}
	if !m.runner.InterpreterAvailable() {
		m.setStatus(fmt.Sprintf("%s not found. Install it to run the setup script.", m.runner.Interpreter()), statusBad)
		return m, nil
	}

	m.pendingScript = scriptPath
	m.pendingReq = ProvisionRequest{
		Project:      name,
		Version:      m.cfg.Versions[m.versionIdx],
		TargetDir:    m.targetDir,
		DBName:       strings.TrimSpace(m.dbName),
		InstallHooks: m.installHooks,
		CloneRepo:    m.repoURL,
	}
	m.running = true

	if pathExists(m.projectPath()) {
		m.confirm = NewConfirmModal(
			fmt.Sprintf("%s already exists.", m.projectPath()),
			"Run the setup script anyway?",
		)
		m.activeView = ViewConfirm
		return m, nil
	}
	return m.startRun()
}

// renderForm renders the main setup form.
func (m Model) renderForm() string {
	width := m.width
	if width < 40 {
		width = 80
	}

	bannerStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#aaaaaa")).Width(18)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
	focusMark := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	cursorStyle := lipgloss.NewStyle().Foreground(accentColor)

	var b strings.Builder
	b.WriteString(bannerStyle.Render(bannerText))
	b.WriteString("\n")
	b.WriteString(copyrightStyle.Render("  " + copyrightText))
	b.WriteString("\n\n")

	row := func(f formField, label, value string) {
		mark := "  "
		if m.focus == f {
			mark = focusMark.Render("> ")
		}
		b.WriteString(mark)
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		if m.focus == f && f.textField() {
			b.WriteString(cursorStyle.Render("█"))
		}
		b.WriteString("\n")
	}

	nameValue := valueStyle.Render(m.projectName)
	if m.projectName == "" && m.focus != fieldName {
		nameValue = helpStyle.Render("e.g., houtland-18")
	}
	row(fieldName, "Project Name:", nameValue)

	version := m.cfg.Versions[m.versionIdx]
	row(fieldVersion, "Odoo Version:", valueStyle.Render("◂ "+version+" ▸"))

	row(fieldTargetDir, "Target Directory:", valueStyle.Render(truncate(m.targetDir, width-24)))

	dbValue := valueStyle.Render(m.dbName)
	if m.dbName == "" && m.focus != fieldDBName {
		hint := "(optional)"
		if projname.Valid(strings.TrimSpace(m.projectName)) {
			hint = fmt.Sprintf("e.g., %s (optional)", projname.DBName(strings.TrimSpace(m.projectName)))
		}
		dbValue = helpStyle.Render(hint)
	}
	row(fieldDBName, "Database Name:", dbValue)

	hooks := "[ ]"
	if m.installHooks {
		hooks = "[x]"
	}
	row(fieldHooks, "Pre-commit Hooks:", valueStyle.Render(hooks+" install"))

	repo := "(none)"
	if m.repoName != "" {
		repo = m.repoName
	}
	row(fieldRepo, "Clone Git Repo:", valueStyle.Render(truncate(repo, width-24)))

	b.WriteString("\n")
	create := "[ Create Environment ]"
	quit := "[ Quit ]"
	if m.focus == fieldCreate {
		create = selectedStyle.Render(create)
	}
	if m.focus == fieldQuit {
		quit = selectedStyle.Render(quit)
	}
	b.WriteString("  " + create + "  " + quit + "\n\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Output Log"))
	b.WriteString("\n")
	b.WriteString(m.renderActivityLog(width-2, 6))
	b.WriteString("\n\n")

	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: next field  enter: open/activate  space: toggle  ←/→: version  esc: quit"))

	return b.String()
}
