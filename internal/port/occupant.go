package port

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/fathomweb/fathom/internal/model"
)

// Occupant identifies the process currently holding a port.
type Occupant struct {
	// Name is the process executable name (e.g., "node").
	Name string

	// PID is the operating-system process id.
	PID int
}

// ssUsersPattern extracts the process name and pid from the users:(...)
// column of `ss -ltnp` output, e.g. users:(("node",pid=1234,fd=23)).
var ssUsersPattern = regexp.MustCompile(`\("([^"]+)",pid=(\d+)`)

// FindOccupant makes a best-effort attempt to identify the process listening
// on the given TCP port.
//
// We shell out rather than parsing /proc/net/tcp ourselves because mapping a
// socket inode back to a pid requires scanning every /proc/<pid>/fd, which
// lsof and ss already do correctly across platforms. lsof is tried first
// (present on macOS and most Linux installs), then ss as a Linux fallback.
//
// Identification can legitimately fail — missing tools, insufficient
// permissions to see other users' processes — so callers must treat an error
// as "unknown occupant", not as a reason to abort differently.
func FindOccupant(port int) (*Occupant, error) {
	if occ, err := occupantFromLsof(port); err == nil {
		return occ, nil
	}
	return occupantFromSS(port)
}

// occupantFromLsof runs lsof in field-output mode (-F) restricted to
// listening TCP sockets on the port. Field output emits one field per line
// prefixed by a type character: "p<pid>" and "c<command>".
func occupantFromLsof(port int) (*Occupant, error) {
	out, err := exec.Command("lsof", "-nP", fmt.Sprintf("-iTCP:%d", port), "-sTCP:LISTEN", "-Fcp").Output()
	if err != nil {
		return nil, fmt.Errorf("lsof failed: %w", err)
	}

	occ := &Occupant{}
	for _, line := range strings.Split(string(out), "\n") {
		if len(line) < 2 {
			continue
		}
		switch line[0] {
		case 'p':
			if pid, err := strconv.Atoi(line[1:]); err == nil {
				occ.PID = pid
			}
		case 'c':
			occ.Name = line[1:]
		}
		if occ.PID != 0 && occ.Name != "" {
			return occ, nil
		}
	}
	return nil, fmt.Errorf("no listener on port %d in lsof output", port)
}

// occupantFromSS parses `ss -ltnp` output, matching the local-address column
// against the port and extracting the process from the users:(...) column.
func occupantFromSS(port int) (*Occupant, error) {
	out, err := exec.Command("ss", "-ltnp").Output()
	if err != nil {
		return nil, fmt.Errorf("ss failed: %w", err)
	}

	suffix := fmt.Sprintf(":%d", port)
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		// Columns: State Recv-Q Send-Q Local-Address:Port Peer-Address:Port Process
		if len(fields) < 6 || !strings.HasSuffix(fields[3], suffix) {
			continue
		}
		if m := ssUsersPattern.FindStringSubmatch(fields[5]); m != nil {
			pid, _ := strconv.Atoi(m[2])
			return &Occupant{Name: m[1], PID: pid}, nil
		}
	}
	return nil, fmt.Errorf("no listener on port %d in ss output", port)
}

// Preflight verifies that a port is free before the preview server attempts
// to bind it. It returns nil immediately for a free port.
//
// For an occupied port it returns an operational CLIError whose message
// names the blocking process when identification succeeds, and falls back
// to a generic variant of the same message when it does not. Either way the
// message points the operator at --port.
func Preflight(port int) error {
	scanner := NewScanner()
	if scanner.IsPortAvailable(port) {
		return nil
	}

	if occ, err := FindOccupant(port); err == nil {
		return model.NewCLIError(model.ExitGeneralError, fmt.Sprintf(
			"Port %d is occupied. Terminate process %s (pid %d) or specify a different port with --port",
			port, occ.Name, occ.PID))
	}

	return model.NewCLIError(model.ExitGeneralError, fmt.Sprintf(
		"Port %d is occupied. Terminate the process occupying it or specify a different port with --port",
		port))
}
