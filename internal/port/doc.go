// Package port implements the pre-flight port checks for the fathom CLI.
//
// The preview command refuses to start on a port that is already bound:
// binding a known-occupied port would otherwise fail deeper in the server
// stack with a far less actionable error. The Scanner probes availability
// by asking the OS directly (net.Listen), and the occupant lookup makes a
// best-effort attempt to name the process holding the port so the operator
// knows what to terminate.
package port
