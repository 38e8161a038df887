// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2resume/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for headless browser launch errors.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "run 'md2resume doctor' to check the setup")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the PDF timeout.
func ForTimeout() string {
	return format("increase the PDF timeout with --timeout or MD2RESUME_TIMEOUT")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(userConfigDir string) string {
	hint := "use --config /path/to/md2resume.yaml"
	if userConfigDir != "" {
		hint += " or create " + userConfigDir + "/go-md2resume/md2resume.yaml"
	}
	return format(hint)
}

// ForStyleNotFound lists the built-in styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForAddrInUse returns a hint for a preview address already taken.
func ForAddrInUse() string {
	return format("pick another address with --addr or MD2RESUME_ADDR")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
