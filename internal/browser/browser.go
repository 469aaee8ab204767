// Package browser implements best-effort browser auto-launch for the dev
// and preview commands.
//
// The launch is fire-and-forget: the command is spawned detached, its exit
// status is never inspected, and a failure to launch a browser never fails
// the parent command. The operator asked for a convenience, not a guarantee.
package browser

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher resolves and fires the platform-appropriate "open URL" command.
//
// Both the OS identifier and the kernel-release reader are injectable so the
// resolution table can be tested on any platform.
type Launcher struct {
	// GOOS is the platform identifier. Defaults to runtime.GOOS.
	GOOS string

	// KernelRelease returns the kernel release string, used to detect a
	// Windows-interop layer (WSL) on Linux. Defaults to reading
	// /proc/sys/kernel/osrelease.
	KernelRelease func() string
}

// New creates a Launcher for the running platform.
func New() *Launcher {
	return &Launcher{
		GOOS:          runtime.GOOS,
		KernelRelease: systemKernelRelease,
	}
}

// Command resolves the shell invocation that opens url in the default
// browser:
//
//   - windows:               cmd /c start <url>
//   - linux under WSL:       cmd.exe /c start <url>  (opens on the Windows side)
//   - other linux:           xdg-open <url>
//   - anything else (macOS): open <url>
//
// WSL is detected by a case-insensitive "microsoft" substring in the kernel
// release string, the convention both WSL1 and WSL2 follow.
func (l *Launcher) Command(url string) (name string, args []string) {
	switch l.GOOS {
	case "windows":
		// `start` is a cmd.exe builtin, not an executable, so it has to
		// run through the shell.
		return "cmd", []string{"/c", "start", url}
	case "linux":
		if strings.Contains(strings.ToLower(l.KernelRelease()), "microsoft") {
			return "cmd.exe", []string{"/c", "start", url}
		}
		return "xdg-open", []string{url}
	default:
		return "open", []string{url}
	}
}

// Open fires the resolved command against url without awaiting completion
// and without surfacing its exit status. The spawned process is released so
// it may outlive the parent; that race is intentional — the launch outcome
// is not part of any command's success contract.
//
// The returned error reports only a failure to spawn, and callers are
// expected to ignore it or log it at debug level.
func (l *Launcher) Open(url string) error {
	name, args := l.Command(url)

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// systemKernelRelease reads the kernel release string on Linux. An empty
// string on failure simply means "not WSL", which is the safe default.
func systemKernelRelease() string {
	data, err := os.ReadFile("/proc/sys/kernel/osrelease")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
