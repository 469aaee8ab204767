package port

import (
	"fmt"
	"net"
)

// Scanner checks whether specific TCP ports are available on the host machine.
//
// It uses the operating system's network stack (net.Listen) to determine if a
// port is free. This is the most reliable method because it asks the OS
// directly, rather than parsing /proc/net/* or relying on external commands
// like `lsof` or `ss` which may require elevated permissions. Only TCP is
// probed: the dev and preview servers are HTTP servers and never bind UDP.
//
// The struct is currently stateless, but is defined as a struct (rather than
// bare functions) so that future options (e.g., bind address, timeout) can be
// added without breaking the API. It also makes the Scanner injectable as a
// dependency, which improves testability of the preview pre-flight.
type Scanner struct{}

// NewScanner creates a new Scanner instance.
// Currently no configuration is needed, but this constructor follows Go
// convention and allows future expansion (e.g., custom bind address).
func NewScanner() *Scanner {
	return &Scanner{}
}

// IsPortAvailable checks whether a single TCP port is free on the host.
//
// It attempts net.Listen("tcp", ":port"). If the listen succeeds, the port
// is available — the listener is immediately closed. We bind to all
// interfaces (":port" rather than "127.0.0.1:port") because servers started
// with --host publish on 0.0.0.0, so we need to check the same address space
// to avoid false positives.
//
// Returns true if the port is free, false if it is already in use.
func (s *Scanner) IsPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	// We close immediately because we only needed to test availability,
	// not actually accept connections.
	defer func() { _ = listener.Close() }()
	return true
}

// FindAvailablePort scans a port range [startPort, endPort] (inclusive) and
// returns the first TCP port that is available.
//
// The search is sequential from startPort upward. This deterministic ordering
// means the same free port will be selected consistently, which helps with
// reproducibility in testing and debugging.
//
// Returns an error if no available port is found in the entire range.
func (s *Scanner) FindAvailablePort(startPort, endPort int) (int, error) {
	for port := startPort; port <= endPort; port++ {
		if s.IsPortAvailable(port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available port found in range %d-%d", startPort, endPort)
}
