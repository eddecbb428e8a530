package node

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/mr-tron/base58"

	"startex/chain"
	"startex/errors"
	"startex/logx"
)

// Config selects the entry point endpoint
type Config struct {
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"token"`
}

// Client talks JSON-RPC over HTTP to a ledger node
type Client struct {
	cfg Config
	ch  *jhttp.Channel
	rpc *jrpc2.Client
}

// NewClient creates a ledger client for the configured endpoint
func NewClient(cfg Config) *Client {
	ch := jhttp.NewChannel(cfg.Endpoint, nil)
	return &Client{
		cfg: cfg,
		ch:  ch,
		rpc: jrpc2.NewClient(ch, nil),
	}
}

type sendRawParams struct {
	Payloads []string `json:"payloads"`
}

type sendRawResponse struct {
	TxID string `json:"tx_id"`
}

type pendingTxParams struct {
	TxID string `json:"tx_id"`
}

type accountParams struct {
	Address string `json:"address"`
}

type lastRoundResponse struct {
	Round uint64 `json:"round"`
}

// SuggestedParams fetches the current fee and validity window
func (c *Client) SuggestedParams(ctx context.Context) (chain.SuggestedParams, error) {
	var params chain.SuggestedParams
	if err := c.rpc.CallResult(ctx, "ledger.getsuggestedparams", nil, &params); err != nil {
		return chain.SuggestedParams{}, err
	}
	return params, nil
}

// SendRawTransaction broadcasts signed payloads. An application-level
// rejection from the node surfaces as SubmissionRejected with the node's
// verbatim reason; the payload was not accepted, so rebuilding it is safe.
func (c *Client) SendRawTransaction(ctx context.Context, payloads [][]byte) (string, error) {
	encoded := make([]string, len(payloads))
	for i, p := range payloads {
		encoded[i] = base58.Encode(p)
	}

	var res sendRawResponse
	err := c.rpc.CallResult(ctx, "tx.sendraw", &sendRawParams{Payloads: encoded}, &res)
	if err != nil {
		if rpcErr, ok := err.(*jrpc2.Error); ok {
			logx.Warn("NODE", "submission rejected: ", rpcErr.Message)
			return "", errors.NewSubmissionRejected(rpcErr.Message)
		}
		return "", err
	}
	return res.TxID, nil
}

// PendingTransaction reports the confirmation state of a broadcast
// transaction
func (c *Client) PendingTransaction(ctx context.Context, txID string) (chain.PendingTxInfo, error) {
	var info chain.PendingTxInfo
	if err := c.rpc.CallResult(ctx, "tx.getpending", &pendingTxParams{TxID: txID}, &info); err != nil {
		return chain.PendingTxInfo{}, err
	}
	return info, nil
}

// AccountInfo fetches balances for an address
func (c *Client) AccountInfo(ctx context.Context, address string) (chain.AccountInfo, error) {
	var info chain.AccountInfo
	if err := c.rpc.CallResult(ctx, "account.getaccount", &accountParams{Address: address}, &info); err != nil {
		return chain.AccountInfo{}, err
	}
	return info, nil
}

// LastRound reports the latest finalized round
func (c *Client) LastRound(ctx context.Context) (uint64, error) {
	var res lastRoundResponse
	if err := c.rpc.CallResult(ctx, "ledger.lastround", nil, &res); err != nil {
		return 0, err
	}
	return res.Round, nil
}

// Close releases the underlying connection
func (c *Client) Close() error {
	return c.rpc.Close()
}
