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
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModal is a small yes/no popup shown before a run that would touch
// an already existing project directory.
type ConfirmModal struct {
	warning  string
	question string
	cursor   int // 0 = proceed, 1 = cancel
	done     bool
	proceed  bool

	width  int
	height int
}

// NewConfirmModal creates a confirm popup with the cursor on cancel, so a
// reflexive enter is the safe choice.
func NewConfirmModal(warning, question string) ConfirmModal {
	return ConfirmModal{warning: warning, question: question, cursor: 1}
}

// Done returns true when the operator answered.
func (cm ConfirmModal) Done() bool { return cm.done }

// Proceed returns true when the operator confirmed.
func (cm ConfirmModal) Proceed() bool { return cm.proceed }

// Update handles input for the confirm popup.
func (cm ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cm.width = msg.Width
		cm.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "down", "j", "left", "right", "tab":
			cm.cursor = 1 - cm.cursor
		case "enter":
			cm.proceed = cm.cursor == 0
			cm.done = true
		case "y":
			cm.proceed = true
			cm.done = true
		case "n", "esc":
			cm.proceed = false
			cm.done = true
		}
	}
	return cm, nil
}

// View renders the confirm popup centered on screen.
func (cm ConfirmModal) View() string {
	width := cm.width
	if width < 40 {
		width = 80
	}
	height := cm.height
	if height < 10 {
		height = 24
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(warningColor)

	var b strings.Builder
	b.WriteString(titleStyle.Render(cm.warning))
	b.WriteString("\n\n")
	b.WriteString(cm.question)
	b.WriteString("\n\n")

	options := []string{"[y] Run anyway", "[n] Cancel"}
	for i, opt := range options {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == cm.cursor {
			cursor = "> "
			style = selectedStyle
		}
		b.WriteString(style.Render(cursor + opt))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k: navigate  enter: select  esc: cancel"))

	popupStyle := lipgloss.NewStyle().
		Width(52).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(warningColor).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popupStyle.Render(b.String()))
}
