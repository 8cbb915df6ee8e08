package odooforgecli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PIDLockPath returns the default PID lock file path (~/.odooforge-cli/odooforge.pid).
func PIDLockPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, configDirName, "odooforge.pid")
}

// AcquirePIDLock checks for an existing odooforge process and writes the
// current PID if no other instance is running. Returns an error naming the
// running PID if another instance is alive.
func AcquirePIDLock() error {
	path := PIDLockPath()

	// Ensure directory exists.
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create pid dir: %w", err)
	}

	// Check existing lock.
	if pid, alive := readPIDLock(path); alive {
		return fmt.Errorf("odooforge is already running (PID: %d)", pid)
	}

	// Write current PID.
	data := []byte(strconv.Itoa(os.Getpid()))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write pid lock: %w", err)
	}
	return nil
}

// ReleasePIDLock removes the PID lock file. Safe to call even if the file
// does not exist.
func ReleasePIDLock() {
	_ = os.Remove(PIDLockPath())
}

// IsOdooforgeRunning reports whether another odooforge process holds the
// PID lock. Returns the PID if alive, 0 otherwise.
func IsOdooforgeRunning() (int, bool) {
	return readPIDLock(PIDLockPath())
}

// readPIDLock reads the PID from the lock file and checks if the process is
// alive. Returns (pid, true) if alive, (0, false) otherwise. A dead PID means
// a stale lock file, which callers are free to overwrite.
func readPIDLock(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	if !processAlive(pid) {
		return 0, false
	}
	return pid, true
}
