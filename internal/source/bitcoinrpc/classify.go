package bitcoinrpc

import (
	"context"
	"errors"
	"net"

	"github.com/btcsuite/btcd/btcjson"

	"github.com/goodnatureofminers/btcquery/fault"
)

// classify maps a transport or protocol error into the fault taxonomy
// so the aggregator can apply per-source policy.
func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil || fault.IsContextError(err) {
		return fault.New(fault.Cancelled, Source, err)
	}

	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case btcjson.ErrRPCInvalidParameter,
			btcjson.ErrRPCInvalidAddressOrKey,
			btcjson.ErrRPCOutOfRange:
			return fault.New(fault.InvalidRequest, Source, err)
		default:
			// The node answered but with something the query cannot use;
			// treated as a source failure, never surfaced raw.
			return fault.New(fault.MalformedResponse, Source, err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fault.New(fault.Timeout, Source, err)
	}

	return fault.New(fault.Unreachable, Source, err)
}
