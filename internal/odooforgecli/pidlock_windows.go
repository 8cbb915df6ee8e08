//go:build windows

package odooforgecli

// processAlive is a stub on Windows. odooforge drives a bash provisioning
// script, which is not available natively on Windows, so PID liveness
// checking is not meaningful there.
func processAlive(pid int) bool {
	return false
}
