package netreport

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain disables ANSI styling so assertions can match plain text.
func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

// fixedInterfaces returns a Reporter whose interface snapshot is the given
// records and whose output is captured in the returned buffer.
func fixedInterfaces(records []InterfaceRecord) (*Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Reporter{
		Out:        &buf,
		Interfaces: func() ([]InterfaceRecord, error) { return records, nil },
	}, &buf
}

// TestExposed verifies the exposure classification rule: localhost and the
// IPv4 loopback address never count as exposed, any other defined host does,
// and an undefined host does not.
func TestExposed(t *testing.T) {
	assert.False(t, Exposed(""))
	assert.False(t, Exposed("localhost"))
	assert.False(t, Exposed("127.0.0.1"))
	assert.True(t, Exposed("0.0.0.0"))
	assert.True(t, Exposed("192.168.1.5"))
	assert.True(t, Exposed("example.internal"))
}

// TestPrint_InternalInterfaceUsesLocalhost verifies that an internal
// interface always produces a "local:" line using localhost, never its
// real address.
func TestPrint_InternalInterfaceUsesLocalhost(t *testing.T) {
	r, buf := fixedInterfaces([]InterfaceRecord{
		{Family: "IPv4", Address: "127.0.0.1", Internal: true, HardwareAddr: "00:00:00:00:00:00"},
	})

	r.Print(Options{Version: "1.0.0", Port: 5173})

	out := buf.String()
	assert.Contains(t, out, "fathom v1.0.0")
	assert.Contains(t, out, "local:   http://localhost:5173")
	assert.NotContains(t, out, "127.0.0.1")
}

// TestPrint_ExposedExternalInterface covers the end-to-end exposure case:
// --host 0.0.0.0 with one external IPv4 interface must print a network line
// with that interface's address and, with loose mode off and no allow-list,
// no filesystem warning.
func TestPrint_ExposedExternalInterface(t *testing.T) {
	r, buf := fixedInterfaces([]InterfaceRecord{
		{Family: "IPv4", Address: "192.168.1.5", Internal: false, HardwareAddr: "aa:bb:cc:dd:ee:ff"},
	})

	r.Print(Options{Version: "1.0.0", Port: 5173, Host: "0.0.0.0"})

	out := buf.String()
	assert.Contains(t, out, "network: http://192.168.1.5:5173")
	assert.NotContains(t, out, "WARNING")
	assert.NotContains(t, out, "Use --host")
}

// TestPrint_NotExposedExternalInterface verifies that without --host the
// external interface produces "network: not exposed" plus the --host hint,
// and never leaks the interface address.
func TestPrint_NotExposedExternalInterface(t *testing.T) {
	r, buf := fixedInterfaces([]InterfaceRecord{
		{Family: "IPv4", Address: "192.168.1.5", Internal: false, HardwareAddr: "aa:bb:cc:dd:ee:ff"},
	})

	r.Print(Options{Version: "1.0.0", Port: 3000, Host: "localhost"})

	out := buf.String()
	assert.Contains(t, out, "network: not exposed")
	assert.Contains(t, out, "Use --host")
	assert.NotContains(t, out, "192.168.1.5")
}

// TestPrint_SkipsIPv6AndZeroMAC verifies the two skip rules: IPv6 entries
// never produce output, and external interfaces with the all-zero hardware
// address are skipped entirely.
func TestPrint_SkipsIPv6AndZeroMAC(t *testing.T) {
	r, buf := fixedInterfaces([]InterfaceRecord{
		{Family: "IPv6", Address: "fe80::1", Internal: false, HardwareAddr: "aa:bb:cc:dd:ee:ff"},
		{Family: "IPv4", Address: "169.254.0.9", Internal: false, HardwareAddr: "00:00:00:00:00:00"},
	})

	r.Print(Options{Version: "1.0.0", Port: 5173, Host: "0.0.0.0"})

	out := buf.String()
	assert.NotContains(t, out, "fe80::1")
	assert.NotContains(t, out, "169.254.0.9")
	assert.NotContains(t, out, "network:")
}

// TestPrint_LooseFSWarning verifies that loose filesystem mode prints the
// strong whole-machine warning on an exposed network line.
func TestPrint_LooseFSWarning(t *testing.T) {
	r, buf := fixedInterfaces([]InterfaceRecord{
		{Family: "IPv4", Address: "10.0.0.2", Internal: false, HardwareAddr: "aa:bb:cc:dd:ee:ff"},
	})

	r.Print(Options{Version: "1.0.0", Port: 5173, Host: "0.0.0.0", LooseFS: true})

	assert.Contains(t, buf.String(), "every file on this machine")
}

// TestPrint_AllowListWarning verifies that an allow-list (with loose mode
// off) prints the directory warning with paths rendered relative to the
// base directory.
func TestPrint_AllowListWarning(t *testing.T) {
	r, buf := fixedInterfaces([]InterfaceRecord{
		{Family: "IPv4", Address: "10.0.0.2", Internal: false, HardwareAddr: "aa:bb:cc:dd:ee:ff"},
	})

	r.Print(Options{
		Version:   "1.0.0",
		Port:      5173,
		Host:      "0.0.0.0",
		AllowList: []string{"/project/shared", "/project/app/vendor"},
		BaseDir:   "/project/app",
	})

	out := buf.String()
	assert.Contains(t, out, "reachable from the local network")
	assert.Contains(t, out, "../shared")
	assert.Contains(t, out, "vendor")
	assert.NotContains(t, out, "every file on this machine")
}

// TestPrint_EnumerationFailureDegrades verifies that a snapshot failure
// still yields a localhost line — the report must never fail the command.
func TestPrint_EnumerationFailureDegrades(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{
		Out:        &buf,
		Interfaces: func() ([]InterfaceRecord, error) { return nil, errors.New("no netlink") },
	}

	r.Print(Options{Version: "1.0.0", Port: 5173, HTTPS: true})

	assert.Contains(t, buf.String(), "https://localhost:5173")
}

// TestSystemInterfaces_Snapshot sanity-checks the live enumeration: it must
// not error and every record must carry a family and an address. The exact
// interface set is machine-dependent, so nothing more is asserted.
func TestSystemInterfaces_Snapshot(t *testing.T) {
	records, err := SystemInterfaces()
	require.NoError(t, err)
	for _, rec := range records {
		assert.Contains(t, []string{"IPv4", "IPv6"}, rec.Family)
		assert.NotEmpty(t, rec.Address)
	}
}
