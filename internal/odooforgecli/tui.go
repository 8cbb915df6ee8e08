package odooforgecli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kballard/go-shellquote"
)

// Colors for the odooforge theme.
var (
	accentColor  = lipgloss.Color("#714b67") // Odoo plum
	dimColor     = lipgloss.Color("#555555")
	errorColor   = lipgloss.Color("#ff5555")
	warningColor = lipgloss.Color("#ffaa00")
	successColor = lipgloss.Color("#00d75f")

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#333333"))

	statusInfo    = lipgloss.NewStyle().Bold(true)
	statusSuccess = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	statusFailure = lipgloss.NewStyle().Bold(true).Foreground(errorColor)

	helpStyle = lipgloss.NewStyle().Foreground(dimColor)

	copyrightStyle = lipgloss.NewStyle().Foreground(dimColor)
)

// bannerText is the ASCII art shown at the top of the form.
const bannerText = `
  ___      _              _____
 / _ \  __| |  ___   ___ |  ___|__  _ __  __ _  ___
| | | |/ _` + "`" + ` | / _ \ / _ \| |_ / _ \| '__|/ _` + "`" + ` |/ _ \
| |_| | (_| || (_) | (_) |  _| (_) | |  | (_| |  __/
 \___/ \__,_| \___/ \___/|_|  \___/|_|   \__, |\___|
                                         |___/`

const copyrightText = "by axiomstudio.ai | Copyright 2026"

// ViewState controls which sub-view is active.
type ViewState int

const (
	ViewForm ViewState = iota
	ViewDirPicker
	ViewRepoPicker
	ViewConfirm
)

// Model is the Bubble Tea model for odooforge-cli. It hosts the setup form
// and hands off to the modal pickers and the script run.
type Model struct {
	cfg    *Config
	lister *RepoLister
	runner *ScriptRunner
	logger *Logger

	width  int
	height int

	activeView ViewState
	dirPicker  DirPickerModel
	repoPicker RepoPickerModel
	confirm    ConfirmModal

	// Form state (see tui_form.go).
	focus        formField
	projectName  string
	versionIdx   int
	targetDir    string
	dbName       string
	installHooks bool
	repoURL      string
	repoName     string

	cache repoCache

	// One provisioning run at a time. While true, Create is refused and the
	// pending fields below describe the run in flight or awaiting confirm.
	running       bool
	pendingScript string
	pendingReq    ProvisionRequest

	status     string
	statusKind statusKind
	activity   []string

	quitting bool
}

type statusKind int

const (
	statusNeutral statusKind = iota
	statusOK
	statusBad
)

// reposLoadedMsg carries the outcome of the gh listing fetch.
type reposLoadedMsg struct {
	repos []Repo
	err   error
}

// scriptExitMsg is sent when the provisioning script run resolves, after the
// operator acknowledged the output and the TUI took the terminal back.
type scriptExitMsg struct{ err error }

// NewModel creates the TUI model. Doctor results seed the status line so a
// broken environment is visible before the first submit.
func NewModel(cfg *Config, lister *RepoLister, runner *ScriptRunner, logger *Logger) Model {
	m := Model{
		cfg:        cfg,
		lister:     lister,
		runner:     runner,
		logger:     logger,
		targetDir:  cfg.TargetDir,
		versionIdx: defaultVersionIndex(cfg),
		status:     "Ready",
	}

	doctor := NewDoctor(cfg, lister, runner, logger)
	if failures := Failures(doctor.Run()); len(failures) > 0 {
		f := failures[0]
		m.status = f.Detail
		if f.Status == CheckFail {
			m.statusKind = statusBad
		}
		for _, r := range failures {
			m.logActivity(fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	return m
}

func defaultVersionIndex(cfg *Config) int {
	for i, v := range cfg.Versions {
		if v == cfg.DefaultVersion {
			return i
		}
	}
	return 0
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global handlers run regardless of the active view.
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.activeView == ViewDirPicker {
			dp, cmd := m.dirPicker.Update(msg)
			m.dirPicker = dp
			return m, cmd
		}
		if m.activeView == ViewRepoPicker {
			rp, cmd := m.repoPicker.Update(msg)
			m.repoPicker = rp
			return m, cmd
		}
		if m.activeView == ViewConfirm {
			cm, cmd := m.confirm.Update(msg)
			m.confirm = cm
			return m, cmd
		}
		return m, nil

	case reposLoadedMsg:
		return m.handleReposLoaded(msg)

	case scriptExitMsg:
		return m.handleScriptExit(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.activeView {
	case ViewDirPicker:
		return m.updateDirPicker(msg)
	case ViewRepoPicker:
		return m.updateRepoPicker(msg)
	case ViewConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateForm(msg)
}

// handleReposLoaded moves the repo cache out of the loading state and opens
// the picker on success. Failure leaves the cache empty so the next attempt
// refetches.
func (m Model) handleReposLoaded(msg reposLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		failMsg := loadFailureMessage(msg.err)
		m.cache.SetFailed(failMsg)
		m.lister.Refresh()
		m.setStatus(failMsg, statusBad)
		m.logger.Error("repo load: %v", msg.err)
		return m, nil
	}
	m.cache.SetLoaded(msg.repos)
	m.setStatus(fmt.Sprintf("Loaded %d repos", len(msg.repos)), statusNeutral)
	if m.activeView == ViewForm && m.focus == fieldRepo {
		m.repoPicker = NewRepoPickerModel(m.cache.Repos())
		m.activeView = ViewRepoPicker
	}
	return m, nil
}

// handleScriptExit reports the run outcome on the status line and the log.
// The exit code comes through verbatim; -1 means the process never started.
func (m Model) handleScriptExit(msg scriptExitMsg) (tea.Model, tea.Cmd) {
	m.running = false
	code := exitCodeFrom(msg.err)
	switch {
	case msg.err == nil:
		m.logActivity(fmt.Sprintf("Setup completed for %s", m.pendingReq.Project))
		m.setStatus("Environment created successfully!", statusOK)
		m.logger.Info("provision succeeded: %s", m.pendingReq.Project)
	case code >= 0:
		m.logActivity(fmt.Sprintf("Setup failed with exit code %d", code))
		m.setStatus(fmt.Sprintf("Setup failed (exit code %d)", code), statusBad)
		m.logger.Error("provision failed: %s exit=%d", m.pendingReq.Project, code)
	default:
		m.logActivity(fmt.Sprintf("Failed to run script: %v", msg.err))
		m.setStatus(fmt.Sprintf("Failed to run script: %v", msg.err), statusBad)
		m.logger.Error("provision start failed: %v", msg.err)
	}
	return m, nil
}

// updateDirPicker delegates to the directory picker and handles its result.
func (m Model) updateDirPicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	dp, cmd := m.dirPicker.Update(msg)
	m.dirPicker = dp

	if m.dirPicker.Cancelled() {
		m.activeView = ViewForm
		return m, nil
	}
	if m.dirPicker.Done() {
		m.targetDir = m.dirPicker.Path()
		m.activeView = ViewForm
		return m, nil
	}
	return m, cmd
}

// updateRepoPicker delegates to the repository picker and handles its three
// outcomes: a chosen repo, an explicit clear, or a cancel that keeps the
// previous choice.
func (m Model) updateRepoPicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	rp, cmd := m.repoPicker.Update(msg)
	m.repoPicker = rp

	switch {
	case m.repoPicker.Cancelled():
		m.activeView = ViewForm
	case m.repoPicker.Cleared():
		m.repoURL = ""
		m.repoName = ""
		m.activeView = ViewForm
	case m.repoPicker.Done():
		m.repoURL = m.repoPicker.URL()
		m.repoName = m.repoPicker.Name()
		m.activeView = ViewForm
	}
	return m, cmd
}

// updateConfirm delegates to the overwrite-confirm popup.
func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cm, cmd := m.confirm.Update(msg)
	m.confirm = cm

	if !m.confirm.Done() {
		return m, cmd
	}
	m.activeView = ViewForm
	if m.confirm.Proceed() {
		return m.startRun()
	}
	m.running = false
	m.setStatus("Cancelled", statusNeutral)
	return m, nil
}

// openRepoPicker opens the picker over the cached candidates, fetching them
// first if this is the first invocation (or the previous fetch failed).
func (m Model) openRepoPicker() (tea.Model, tea.Cmd) {
	if m.cache.Ready() {
		m.repoPicker = NewRepoPickerModel(m.cache.Repos())
		m.activeView = ViewRepoPicker
		return m, nil
	}
	if m.cache.Loading() {
		return m, nil
	}
	m.cache.SetLoading()
	m.setStatus("Loading GitHub repos...", statusNeutral)
	lister := m.lister
	return m, func() tea.Msg {
		repos, err := lister.FetchAll()
		return reposLoadedMsg{repos: repos, err: err}
	}
}

// startRun performs the terminal handoff for the pending request. The TUI
// suspends, the script runs in the foreground, and scriptExitMsg arrives
// once the operator acknowledges the output.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	cmd := m.runner.Command(m.pendingScript, m.pendingReq)
	m.logActivity("Running " + shellquote.Join(cmd.Args...))
	m.setStatus(fmt.Sprintf("Setting up %s with Odoo %s...", m.pendingReq.Project, m.pendingReq.Version), statusNeutral)
	return m, tea.Exec(newScriptExec(cmd), func(err error) tea.Msg {
		return scriptExitMsg{err: err}
	})
}

func (m *Model) setStatus(msg string, kind statusKind) {
	m.status = msg
	m.statusKind = kind
}

// logActivity appends a line to the scrolling activity log, keeping the most
// recent entries.
func (m *Model) logActivity(line string) {
	const keep = 50
	m.activity = append(m.activity, line)
	if len(m.activity) > keep {
		m.activity = m.activity[len(m.activity)-keep:]
	}
}

// View renders the active view.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.activeView {
	case ViewDirPicker:
		return m.dirPicker.View()
	case ViewRepoPicker:
		return m.repoPicker.View()
	case ViewConfirm:
		return m.confirm.View()
	}
	return m.renderForm()
}

// renderStatusLine renders the status bar under the form.
func (m Model) renderStatusLine() string {
	switch m.statusKind {
	case statusOK:
		return statusSuccess.Render(m.status)
	case statusBad:
		return statusFailure.Render(m.status)
	default:
		return statusInfo.Render(m.status)
	}
}

// renderActivityLog renders the last few activity lines, oldest first.
func (m Model) renderActivityLog(width, maxLines int) string {
	if len(m.activity) == 0 {
		return helpStyle.Render("(no output yet)")
	}
	lines := m.activity
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	logStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#aaaaaa"))
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(logStyle.Render(truncate(line, width)))
	}
	return b.String()
}

// projectPath is where the provisioning script will create the project.
func (m Model) projectPath() string {
	return filepath.Join(m.targetDir, strings.TrimSpace(m.projectName))
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
