package wallet

import (
	"context"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/jhttp"
	"github.com/mr-tron/base58"

	"startex/errors"
	"startex/logx"
)

// Error codes the wallet daemon reports for approval outcomes
const (
	walletdCodeUserRejected = 4001
	walletdCodeNoSession    = 4100
)

// WalletdProvider reaches an externally-owned wallet daemon over JSON-RPC.
// The daemon holds the private keys and presents the approval UI; this
// process never sees key material. Calls suspend until the human approves
// or rejects on the daemon side.
type WalletdProvider struct {
	rpc *jrpc2.Client

	onDisconnect func()
}

// NewWalletdProvider creates a provider for the daemon at the given URL
func NewWalletdProvider(url string) *WalletdProvider {
	ch := jhttp.NewChannel(url, nil)
	return &WalletdProvider{rpc: jrpc2.NewClient(ch, nil)}
}

type walletdAccounts struct {
	Accounts []string `json:"accounts"`
}

type walletdSignParams struct {
	Payloads []string `json:"payloads"`
}

type walletdSignResponse struct {
	Signed []string `json:"signed"`
}

// mapError translates daemon error codes into the flow taxonomy. A
// transport failure means the daemon itself is unreachable.
func (p *WalletdProvider) mapError(err error) error {
	rpcErr, ok := err.(*jrpc2.Error)
	if !ok {
		return errors.NewError(errors.ErrCodeProviderUnavailable, errors.ErrMsgProviderUnavailable)
	}
	switch int(rpcErr.Code) {
	case walletdCodeUserRejected:
		return errors.NewError(errors.ErrCodeUserRejected, errors.ErrMsgUserRejected)
	case walletdCodeNoSession:
		// the daemon dropped the session on its own side
		if p.onDisconnect != nil {
			p.onDisconnect()
		}
		return errors.NewError(errors.ErrCodeNoActiveSession, errors.ErrMsgNoActiveSession)
	default:
		logx.Warn("WALLETD", "daemon error: ", rpcErr.Message)
		return errors.NewError(errors.ErrCodeProviderUnavailable, errors.ErrMsgProviderUnavailable)
	}
}

// Connect asks the daemon to run its approval flow
func (p *WalletdProvider) Connect(ctx context.Context) ([]string, error) {
	var res walletdAccounts
	if err := p.rpc.CallResult(ctx, "wallet.connect", nil, &res); err != nil {
		return nil, p.mapError(err)
	}
	return res.Accounts, nil
}

// Reconnect resumes the daemon session without prompting
func (p *WalletdProvider) Reconnect(ctx context.Context) ([]string, error) {
	var res walletdAccounts
	err := p.rpc.CallResult(ctx, "wallet.reconnect", nil, &res)
	if err != nil {
		if rpcErr, ok := err.(*jrpc2.Error); ok && int(rpcErr.Code) == walletdCodeNoSession {
			return nil, nil
		}
		return nil, p.mapError(err)
	}
	return res.Accounts, nil
}

// Disconnect tears down the daemon-side session
func (p *WalletdProvider) Disconnect(ctx context.Context) error {
	if err := p.rpc.CallResult(ctx, "wallet.disconnect", nil, nil); err != nil {
		return p.mapError(err)
	}
	return nil
}

// SignTransactions forwards the whole group for one approval and decodes
// the signed payloads in the order the daemon returned them
func (p *WalletdProvider) SignTransactions(ctx context.Context, group [][]byte) ([][]byte, error) {
	params := &walletdSignParams{Payloads: make([]string, len(group))}
	for i, payload := range group {
		params.Payloads[i] = base58.Encode(payload)
	}

	var res walletdSignResponse
	if err := p.rpc.CallResult(ctx, "wallet.signtxns", params, &res); err != nil {
		return nil, p.mapError(err)
	}

	signed := make([][]byte, len(res.Signed))
	for i, s := range res.Signed {
		decoded, err := base58.Decode(s)
		if err != nil {
			return nil, errors.NewError(errors.ErrCodeProviderUnavailable, errors.ErrMsgProviderUnavailable)
		}
		signed[i] = decoded
	}
	return signed, nil
}

// OnDisconnect registers the session-loss handler
func (p *WalletdProvider) OnDisconnect(handler func()) {
	p.onDisconnect = handler
}
