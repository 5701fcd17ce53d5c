// Package fault defines the typed failure taxonomy returned by every
// public query. Callers branch on the Kind rather than matching error
// strings.
package fault

import (
	"context"
	"errors"
	"fmt"
)

// Kind labels a failure class.
type Kind string

const (
	// InvalidRequest marks a caller-supplied parameter that failed local
	// validation before any network call.
	InvalidRequest Kind = "invalid_request"
	// Unreachable marks a source that could not be contacted.
	Unreachable Kind = "unreachable"
	// Timeout marks a source that did not answer within its own deadline.
	Timeout Kind = "timeout"
	// RateLimited marks a source that rejected the call due to quota.
	RateLimited Kind = "rate_limited"
	// MalformedResponse marks a payload the normalizer cannot map.
	MalformedResponse Kind = "malformed_response"
	// Cancelled marks a caller deadline or explicit cancellation.
	Cancelled Kind = "cancelled"
)

// Fault carries a failure kind together with the source it originated
// from ("bitcoind", "coingecko", "binance" or empty for local checks).
type Fault struct {
	Kind   Kind
	Source string
	err    error
}

// New wraps err with a kind and source.
func New(kind Kind, source string, err error) *Fault {
	return &Fault{Kind: kind, Source: source, err: err}
}

// Newf builds a fault from a formatted message.
func Newf(kind Kind, source, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Source: source, err: fmt.Errorf(format, args...)}
}

func (f *Fault) Error() string {
	if f.Source == "" {
		return fmt.Sprintf("%s: %v", f.Kind, f.err)
	}
	return fmt.Sprintf("%s: %s: %v", f.Source, f.Kind, f.err)
}

func (f *Fault) Unwrap() error {
	return f.err
}

// KindOf extracts the fault kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// FromContext converts a context error into a Cancelled fault. Both an
// exceeded caller deadline and an explicit cancel map to Cancelled;
// per-source timeouts are classified by the adapters instead.
func FromContext(ctx context.Context, source string) *Fault {
	err := ctx.Err()
	if err == nil {
		err = context.Canceled
	}
	return New(Cancelled, source, err)
}

// IsContextError reports whether err is a raw context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
