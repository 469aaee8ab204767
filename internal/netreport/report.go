package netreport

import (
	"fmt"
	"io"
	"net"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// zeroHardwareAddr is a known sentinel for non-physical or disabled adapters
// on some platforms. External interfaces reporting it are skipped entirely.
const zeroHardwareAddr = "00:00:00:00:00:00"

// InterfaceRecord is one network interface address entry: a read-only
// snapshot obtained once per report, never cached across invocations.
type InterfaceRecord struct {
	// Family is "IPv4" or "IPv6". Only IPv4 entries appear in the report.
	Family string

	// Address is the interface address without prefix length.
	Address string

	// Internal marks loopback-class interfaces that are not reachable
	// from other machines.
	Internal bool

	// HardwareAddr is the interface MAC address in colon notation.
	HardwareAddr string
}

// Options carries the effective server state the report describes.
type Options struct {
	// Version is the toolchain version shown in the banner.
	Version string

	// Port is the effective bound port.
	Port int

	// Host is the effective bind host. Empty means the server kept its
	// loopback default.
	Host string

	// HTTPS selects the scheme of printed URLs.
	HTTPS bool

	// LooseFS indicates the dev server is serving with filesystem
	// restrictions relaxed. Preview never sets it.
	LooseFS bool

	// AllowList is the dev server's filesystem allow-list, if any.
	// Rendered relative to BaseDir.
	AllowList []string

	// BaseDir is the directory allow-list entries are made relative to,
	// typically the working directory.
	BaseDir string
}

// Reporter prints the connectivity report. The interface source and output
// writer are injectable so tests can exercise classification without real
// NICs or a terminal.
type Reporter struct {
	// Out receives the report. Defaults to the writer passed to New.
	Out io.Writer

	// Interfaces returns the interface snapshot. Defaults to the live
	// OS enumeration (SystemInterfaces).
	Interfaces func() ([]InterfaceRecord, error)
}

// New creates a Reporter writing to out using the live OS interface snapshot.
func New(out io.Writer) *Reporter {
	return &Reporter{Out: out, Interfaces: SystemInterfaces}
}

// Exposed reports whether a host value makes the server reachable from other
// devices: defined and neither "localhost" nor the IPv4 loopback address.
func Exposed(host string) bool {
	return host != "" && host != "localhost" && host != "127.0.0.1"
}

// Print writes the connectivity report.
//
// For every IPv4 interface entry: internal entries produce a "local:" line
// that always uses localhost, never the real address. External entries are
// skipped when their hardware address is the all-zero placeholder; otherwise
// they produce a "network:" line with the interface address when the server
// is exposed (plus any filesystem warning), or a "network: not exposed"
// line when it is not. IPv6 entries are ignored entirely.
//
// Enumeration failures degrade to a bare localhost line: the report is a
// diagnostic, and its own failure must never fail the command.
func (r *Reporter) Print(opts Options) {
	scheme := "http"
	if opts.HTTPS {
		scheme = "https"
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Fprintf(r.Out, "\n  fathom v%s\n\n", opts.Version)

	records, err := r.Interfaces()
	if err != nil {
		fmt.Fprintf(r.Out, "  local:   %s://localhost:%d\n", scheme, opts.Port)
		return
	}

	exposed := Exposed(opts.Host)

	for _, rec := range records {
		if rec.Family != "IPv4" {
			continue
		}

		if rec.Internal {
			fmt.Fprintf(r.Out, "  local:   %s://localhost:%d\n", scheme, opts.Port)
			continue
		}

		if rec.HardwareAddr == zeroHardwareAddr {
			continue
		}

		if !exposed {
			faint.Fprintln(r.Out, "  network: not exposed")
			continue
		}

		fmt.Fprintf(r.Out, "  network: %s://%s:%d\n", scheme, rec.Address, opts.Port)
		r.printFSWarning(opts)
	}

	if !exposed {
		faint.Fprintln(r.Out, "\n  Use --host to expose the server to other devices on this network")
	}
	fmt.Fprintln(r.Out)
}

// printFSWarning prints the filesystem-exposure warning that accompanies a
// network line. Loose mode warns about the whole machine; an allow-list
// warns about the listed directories, rendered relative to the working
// directory so the operator recognizes them.
func (r *Reporter) printFSWarning(opts Options) {
	warn := color.New(color.FgYellow, color.Bold)

	if opts.LooseFS {
		warn.Fprintln(r.Out, "  WARNING: loose filesystem mode — every file on this machine is reachable from the local network")
		return
	}

	if len(opts.AllowList) == 0 {
		return
	}

	rendered := make([]string, 0, len(opts.AllowList))
	for _, p := range opts.AllowList {
		if rel, err := filepath.Rel(opts.BaseDir, p); err == nil {
			rendered = append(rendered, rel)
		} else {
			rendered = append(rendered, p)
		}
	}
	warn.Fprintf(r.Out, "  WARNING: these directories are reachable from the local network: %s\n",
		strings.Join(rendered, ", "))
}

// SystemInterfaces takes a live snapshot of the machine's network interfaces
// via the OS. Each address of each interface becomes one record; addresses
// that are not IP networks are skipped.
func SystemInterfaces() ([]InterfaceRecord, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate network interfaces: %w", err)
	}

	var records []InterfaceRecord
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			// A single unreadable interface should not sink the report.
			continue
		}

		hw := iface.HardwareAddr.String()
		if hw == "" {
			// Loopback and virtual adapters report no MAC at all; use the
			// all-zero placeholder only where the platform does.
			hw = zeroHardwareAddr
		}
		internal := iface.Flags&net.FlagLoopback != 0

		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}

			family := "IPv6"
			if ipNet.IP.To4() != nil {
				family = "IPv4"
			}

			records = append(records, InterfaceRecord{
				Family:       family,
				Address:      ipNet.IP.String(),
				Internal:     internal || ipNet.IP.IsLoopback(),
				HardwareAddr: hw,
			})
		}
	}
	return records, nil
}
