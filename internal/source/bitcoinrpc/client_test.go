package bitcoinrpc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goodnatureofminers/btcquery/fault"
)

// timeoutError satisfies net.Error for classification tests.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func newTestClient(t *testing.T, cfg Config) (*Client, *MockNodeClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	node := NewMockNodeClient(ctrl)
	metrics := NewMockRPCMetrics(ctrl)
	metrics.EXPECT().Observe(gomock.Any(), gomock.Any(), gomock.AssignableToTypeOf(time.Time{})).AnyTimes()

	return NewClient(node, metrics, cfg), node
}

func TestClient_BlockCount(t *testing.T) {
	c, node := newTestClient(t, Config{})
	node.EXPECT().GetBlockCount().Return(int64(840000), nil)

	count, err := c.BlockCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(840000), count)
}

func TestClient_CancelledBeforeNetworkCall(t *testing.T) {
	// A dead context must yield Cancelled without touching the node:
	// no expectations are registered on the mock.
	c, _ := newTestClient(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.BlockCount(ctx)
	assert.True(t, fault.Is(err, fault.Cancelled), "got %v", err)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	c, node := newTestClient(t, Config{MaxRetries: 2})
	gomock.InOrder(
		node.EXPECT().GetBlockCount().Return(int64(0), errors.New("connection refused")),
		node.EXPECT().GetBlockCount().Return(int64(0), timeoutError{}),
		node.EXPECT().GetBlockCount().Return(int64(101), nil),
	)

	count, err := c.BlockCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(101), count)
}

func TestClient_DoesNotRetryInvalidRequests(t *testing.T) {
	c, node := newTestClient(t, Config{MaxRetries: 3})
	node.EXPECT().GetBlockHash(int64(99)).Return(nil, &btcjson.RPCError{
		Code:    btcjson.ErrRPCOutOfRange,
		Message: "Block number out of range",
	})

	_, err := c.BlockHash(context.Background(), 99)
	assert.True(t, fault.Is(err, fault.InvalidRequest), "got %v", err)
}

func TestClient_TimeoutClassification(t *testing.T) {
	c, node := newTestClient(t, Config{})
	node.EXPECT().GetBlockCount().Return(int64(0), timeoutError{})

	_, err := c.BlockCount(context.Background())
	assert.True(t, fault.Is(err, fault.Timeout), "got %v", err)
}

func TestClient_HeightValidation(t *testing.T) {
	c, _ := newTestClient(t, Config{})

	_, err := c.BlockHash(context.Background(), -1)
	assert.True(t, fault.Is(err, fault.InvalidRequest), "got %v", err)
}

func TestClient_HashValidation(t *testing.T) {
	c, _ := newTestClient(t, Config{})

	tests := []struct {
		name string
		hash string
	}{
		{name: "too short", hash: "abc123"},
		{name: "bad characters", hash: "zz" + hex62()},
		{name: "empty", hash: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.RawTransaction(context.Background(), tt.hash)
			assert.True(t, fault.Is(err, fault.InvalidRequest), "got %v", err)
		})
	}
}

func TestClient_ConfTargetValidation(t *testing.T) {
	c, _ := newTestClient(t, Config{})

	for _, target := range []int64{0, -2, maxConfTarget + 1} {
		_, err := c.EstimateSmartFee(context.Background(), target)
		assert.True(t, fault.Is(err, fault.InvalidRequest), "target %d: got %v", target, err)
	}
}

func TestClient_MempoolInfo(t *testing.T) {
	t.Run("decodes a complete payload", func(t *testing.T) {
		c, node := newTestClient(t, Config{})
		node.EXPECT().RawRequest("getmempoolinfo", gomock.Nil()).
			Return(json.RawMessage(`{"size":1200,"bytes":540000,"usage":910000,"total_fee":0.015,"mempoolminfee":0.00001}`), nil)

		info, err := c.MempoolInfo(context.Background())
		require.NoError(t, err)
		require.NotNil(t, info.Size)
		assert.Equal(t, int64(1200), *info.Size)
		require.NotNil(t, info.TotalFee)
		assert.InDelta(t, 0.015, *info.TotalFee, 1e-12)
	})

	t.Run("malformed payload", func(t *testing.T) {
		c, node := newTestClient(t, Config{})
		node.EXPECT().RawRequest("getmempoolinfo", gomock.Nil()).
			Return(json.RawMessage(`{"size":"not-a-number"}`), nil)

		_, err := c.MempoolInfo(context.Background())
		assert.True(t, fault.Is(err, fault.MalformedResponse), "got %v", err)
	})
}

func TestClient_MempoolTxIDs(t *testing.T) {
	c, node := newTestClient(t, Config{})
	h1, err := chainhash.NewHashFromStr("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")
	require.NoError(t, err)
	node.EXPECT().GetRawMempool().Return([]*chainhash.Hash{h1}, nil)

	ids, err := c.MempoolTxIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"}, ids)
}

// hex62 pads a valid 62-character hex tail for malformed-hash cases.
func hex62() string {
	s := make([]byte, 62)
	for i := range s {
		s[i] = 'a'
	}
	return string(s)
}
