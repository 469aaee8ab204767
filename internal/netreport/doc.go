// Package netreport prints the post-start connectivity report for the dev
// and preview servers.
//
// Dev servers bound to all interfaces are a common source of inadvertent LAN
// exposure of source code — and, in loose filesystem mode, of the entire
// local disk. The report enumerates the machine's network interfaces,
// classifies each address, and prints reachability lines plus
// filesystem-exposure warnings. It is a deliberate, unskippable security
// nudge, not cosmetic output.
package netreport
