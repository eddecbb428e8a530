package node

import (
	"context"

	"startex/chain"
)

// Ledger is the capability interface for the remote network entry point.
// All calls can fail with connectivity errors, which are distinct from
// application-level rejections carried inside the responses.
type Ledger interface {
	// SuggestedParams fetches the current fee and validity window
	SuggestedParams(ctx context.Context) (chain.SuggestedParams, error)

	// SendRawTransaction broadcasts one or more signed payloads (a whole
	// atomic group in one call) and returns the id of the first transaction
	SendRawTransaction(ctx context.Context, payloads [][]byte) (string, error)

	// PendingTransaction reports the confirmation state of a broadcast
	// transaction
	PendingTransaction(ctx context.Context, txID string) (chain.PendingTxInfo, error)

	// AccountInfo fetches balances for an address
	AccountInfo(ctx context.Context, address string) (chain.AccountInfo, error)

	// LastRound reports the latest finalized round
	LastRound(ctx context.Context) (uint64, error)

	// Close releases the underlying connection
	Close() error
}
