//go:build windows

// Package process terminates the headless browser started for PDF export.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills the browser and its helper processes with
// taskkill. /F forces, /T includes the child tree.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill runs afterwards.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an int
}
