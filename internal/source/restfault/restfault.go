// Package restfault classifies REST transport outcomes into the fault
// taxonomy, shared by the price adapters.
package restfault

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/goodnatureofminers/btcquery/fault"
)

// Transport maps a request error into a typed failure.
func Transport(ctx context.Context, source string, err error) error {
	if ctx.Err() != nil || fault.IsContextError(err) {
		return fault.New(fault.Cancelled, source, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fault.New(fault.Timeout, source, err)
	}
	return fault.New(fault.Unreachable, source, err)
}

// Status maps a non-2xx HTTP status into a typed failure. A 2xx status
// returns nil.
func Status(source string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusTooManyRequests:
		return fault.Newf(fault.RateLimited, source, "http status %d", status)
	case status >= 500:
		return fault.Newf(fault.Unreachable, source, "http status %d", status)
	default:
		return fault.Newf(fault.MalformedResponse, source, "http status %d", status)
	}
}
