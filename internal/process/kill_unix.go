//go:build !windows

// Package process terminates the headless browser started for PDF export.
package process

import "syscall"

// KillProcessGroup kills the browser and its helper processes by sending
// SIGKILL to the process group (negative PID).
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
