// errors.go implements the error normalizer: the single funnel through which
// every command failure flows before being reported to the operator.
//
// The normalizer accepts any value, not just errors, because failures can
// surface as recovered panic values from collaborator code. Whatever comes
// in, a displayable NormalizedError comes out — Normalize itself never fails.
package model

import (
	"errors"
	"fmt"
)

// NormalizedError is a displayable error produced by Normalize.
//
// Exactly one terminal action happens per process run for a NormalizedError:
// the CLI layer either prints it and exits non-zero, or (for config syntax
// errors, which never reach Normalize) lets the parser's own rendering
// through. The two paths are mutually exclusive.
type NormalizedError struct {
	// Message is the primary human-readable description, printed in
	// bold red on its own line.
	Message string

	// Trace lists the chain of underlying causes, outermost first.
	// The first entry duplicates Message and is skipped when printing;
	// the rest are printed in a muted style.
	Trace []string
}

// Error satisfies the error interface.
func (e *NormalizedError) Error() string {
	return e.Message
}

// TrimmedTrace returns the cause chain without its first entry, which
// duplicates Message. This is what the CLI prints under the message line.
func (e *NormalizedError) TrimmedTrace() []string {
	if len(e.Trace) <= 1 {
		return nil
	}
	return e.Trace[1:]
}

// Normalize converts any thrown value into a NormalizedError.
//
// Coercion rules:
//   - nil becomes a stable "unknown error" message, so a buggy caller that
//     reports a nil failure still produces something actionable.
//   - errors keep their message and contribute their full unwrap chain
//     as the trace.
//   - any other value is formatted with %v and wrapped in a stable message,
//     mirroring how non-Error throwables are coerced in other toolchains.
//
// Normalize never panics and never returns nil.
func Normalize(v any) *NormalizedError {
	switch val := v.(type) {
	case nil:
		return &NormalizedError{Message: "unknown error"}
	case *NormalizedError:
		return val
	case error:
		return &NormalizedError{
			Message: val.Error(),
			Trace:   causeChain(val),
		}
	default:
		msg := fmt.Sprintf("unexpected failure: %v", val)
		return &NormalizedError{Message: msg, Trace: []string{msg}}
	}
}

// causeChain renders an error and each of its unwrapped causes as strings,
// outermost first. Cycles are bounded by a fixed depth limit because a
// misbehaving Unwrap that returns its receiver would otherwise loop forever.
func causeChain(err error) []string {
	const maxDepth = 32

	var chain []string
	for i := 0; err != nil && i < maxDepth; i++ {
		chain = append(chain, err.Error())
		next := errors.Unwrap(err)
		if next == err {
			break
		}
		err = next
	}
	return chain
}
