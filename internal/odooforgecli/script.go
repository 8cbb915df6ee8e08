package odooforgecli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
)

// scriptName is the provisioning script expected next to the executable
// when config does not point somewhere else.
const scriptName = "create.sh"

// ScriptNotFoundError indicates the provisioning script is not on disk at
// the resolved location. This is a pre-flight failure: the terminal is never
// handed over when it occurs.
type ScriptNotFoundError struct {
	Path string
}

func (e *ScriptNotFoundError) Error() string {
	return fmt.Sprintf("%s not found at %s", filepath.Base(e.Path), e.Path)
}

// ProvisionRequest carries everything the provisioning script needs for one
// run: the positional arguments and the optional env-var inputs.
type ProvisionRequest struct {
	Project      string
	Version      string
	TargetDir    string
	DBName       string
	InstallHooks bool
	CloneRepo    string
}

// ScriptRunner resolves and launches the provisioning script.
type ScriptRunner struct {
	interpreter string
	scriptPath  string // explicit path from config; empty means next to the executable
	logger      *Logger
}

// NewScriptRunner creates a runner from config.
func NewScriptRunner(cfg *Config, logger *Logger) *ScriptRunner {
	return &ScriptRunner{
		interpreter: cfg.Script.Interpreter,
		scriptPath:  cfg.Script.Path,
		logger:      logger,
	}
}

// ResolveScript returns the provisioning script path, checking that it
// exists. Config takes precedence; otherwise the script is expected beside
// the running executable.
func (sr *ScriptRunner) ResolveScript() (string, error) {
	path := sr.scriptPath
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("locate executable: %w", err)
		}
		path = filepath.Join(filepath.Dir(exe), scriptName)
	}
	if _, err := os.Stat(path); err != nil {
		return "", &ScriptNotFoundError{Path: path}
	}
	return path, nil
}

// InterpreterAvailable reports whether the configured interpreter exists as
// an absolute path or can be found on PATH.
func (sr *ScriptRunner) InterpreterAvailable() bool {
	return checkBinaryAvailable(sr.interpreter)
}

// Interpreter returns the configured interpreter binary.
func (sr *ScriptRunner) Interpreter() string {
	return sr.interpreter
}

// Command builds the provisioning invocation:
//
//	<interpreter> <script> <project> <version>
//
// run from the script's own directory with the request's variables layered
// on top of the inherited environment. The target location travels in
// BASE_PATH, not as the working directory, so the script's relative paths
// keep resolving next to the script itself.
func (sr *ScriptRunner) Command(scriptPath string, req ProvisionRequest) *exec.Cmd {
	cmd := exec.Command(sr.interpreter, scriptPath, req.Project, req.Version)
	cmd.Dir = filepath.Dir(scriptPath)
	cmd.Env = append(os.Environ(), scriptEnv(req)...)

	if sr.logger != nil {
		sr.logger.Info("provision %q version=%s dir=%s db=%q hooks=%v clone=%q",
			req.Project, req.Version, req.TargetDir, req.DBName, req.InstallHooks, req.CloneRepo)
	}
	return cmd
}

// scriptEnv builds the variables layered over the inherited environment.
// BASE_PATH is always present; the others appear only when the operator
// supplied them, so the script can tell "unset" apart from "empty".
func scriptEnv(req ProvisionRequest) []string {
	env := []string{"BASE_PATH=" + req.TargetDir}
	if req.DBName != "" {
		env = append(env, "DB_NAME="+req.DBName)
	}
	if req.InstallHooks {
		env = append(env, "INSTALL_PRECOMMIT=1")
	}
	if req.CloneRepo != "" {
		env = append(env, "CLONE_REPO="+req.CloneRepo)
	}
	return env
}

// scriptExec adapts a provisioning command to tea.Exec. Run executes while
// the TUI is suspended: it prints the command banner, streams the script in
// the foreground, reports the exit status, and blocks until the operator
// presses Enter. Only then does the TUI take the terminal back.
type scriptExec struct {
	cmd     *exec.Cmd
	display string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// newScriptExec wraps cmd for the terminal handoff. The displayed command
// line is shell-quoted so it can be copied and re-run by hand.
func newScriptExec(cmd *exec.Cmd) *scriptExec {
	return &scriptExec{
		cmd:     cmd,
		display: shellquote.Join(cmd.Args...),
	}
}

func (s *scriptExec) SetStdin(r io.Reader)  { s.stdin = r }
func (s *scriptExec) SetStdout(w io.Writer) { s.stdout = w }
func (s *scriptExec) SetStderr(w io.Writer) { s.stderr = w }

// Run implements tea.ExecCommand. The returned error is the script's own
// outcome (nil on exit 0), delivered unchanged to the exec callback.
func (s *scriptExec) Run() error {
	banner := strings.Repeat("=", 60)

	fmt.Fprintln(s.stdout, banner)
	fmt.Fprintf(s.stdout, "Running: %s\n", s.display)
	fmt.Fprintln(s.stdout, banner)

	s.cmd.Stdin = s.stdin
	s.cmd.Stdout = s.stdout
	s.cmd.Stderr = s.stderr
	err := s.cmd.Run()

	fmt.Fprintln(s.stdout, banner)
	code := exitCodeFrom(err)
	switch {
	case err == nil:
		fmt.Fprintln(s.stdout, "Script finished successfully.")
	case code >= 0:
		fmt.Fprintf(s.stdout, "Script exited with code %d.\n", code)
	default:
		fmt.Fprintf(s.stdout, "Failed to run script: %v\n", err)
	}
	fmt.Fprintln(s.stdout, banner)

	fmt.Fprint(s.stdout, "Press Enter to return to the TUI...")
	waitForEnter(s.stdin)
	return err
}

// exitCodeFrom maps a command error to its exit code: 0 for nil, the
// script's own code for a normal nonzero exit, and -1 when the process
// could not be started at all.
func exitCodeFrom(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// waitForEnter consumes input until a newline or EOF.
func waitForEnter(r io.Reader) {
	if r == nil {
		return
	}
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 && (buf[0] == '\n' || buf[0] == '\r') {
			return
		}
		if err != nil {
			return
		}
	}
}

// checkBinaryAvailable returns true if the binary exists as an absolute
// path (and is executable) or can be found on PATH via exec.LookPath.
func checkBinaryAvailable(binary string) bool {
	if filepath.IsAbs(binary) {
		return isExecutable(binary)
	}
	_, err := exec.LookPath(binary)
	return err == nil
}

// isExecutable reports whether the file at path exists and has at least one
// execute bit set.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&0111 != 0
}
