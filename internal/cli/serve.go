// serve.go holds the pieces shared by the dev and preview commands: the
// removed -H flag handling, the interrupt-bound context, and the post-start
// follow-up (browser launch + exposure report).
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fathomweb/fathom/internal/browser"
	"github.com/fathomweb/fathom/internal/model"
	"github.com/fathomweb/fathom/internal/netreport"
)

// removedHTTPSFlag is the long name backing the removed -H shorthand.
// The flag stays declared so scripts still using -H get an actionable
// message instead of a generic parse failure; it is hidden from help.
const removedHTTPSFlag = "https-legacy"

// declareRemovedFlags registers the removed -H shorthand on a serve command.
// Removed options remain declared long enough that invoking them yields a
// pointed migration message rather than "unknown option".
func declareRemovedFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP(removedHTTPSFlag, "H", false, "")
	_ = cmd.Flags().MarkHidden(removedHTTPSFlag)
}

// checkRemovedFlags fails fast when a removed flag was supplied. It runs
// before any configuration load, so the operator's fix is one message away
// regardless of what else is wrong with the invocation.
func checkRemovedFlags(cmd *cobra.Command) error {
	if cmd.Flags().Changed(removedHTTPSFlag) {
		return model.NewCLIError(model.ExitGeneralError,
			"-H is no longer supported — use --https instead")
	}
	return nil
}

// interruptContext derives a context cancelled on SIGINT/SIGTERM. The serve
// commands block on it after a successful start: the server runs until the
// operator interrupts or the parent context is cancelled.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// afterServe performs the verb-agnostic follow-up once a server is up:
// fire-and-forget browser launch when requested, then the network exposure
// report.
//
// The launch error is deliberately discarded — opening a browser is a
// convenience whose failure must never fail the command.
func afterServe(cmd *cobra.Command, binding *model.ServerBinding, open bool) {
	if open {
		_ = browser.New().Open(binding.URL())
	}

	cwd, _ := os.Getwd()
	reporter := netreport.New(cmd.OutOrStdout())
	reporter.Print(netreport.Options{
		Version:   Version,
		Port:      binding.Port,
		Host:      binding.Host,
		HTTPS:     binding.HTTPS,
		LooseFS:   binding.LooseFS,
		AllowList: binding.AllowList,
		BaseDir:   cwd,
	})
}
