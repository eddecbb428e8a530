package chain

import "github.com/holiman/uint256"

// SuggestedParams are the freshly fetched network parameters a builder
// stamps into every transaction
type SuggestedParams struct {
	Fee         uint64 `json:"fee"`
	FirstValid  uint64 `json:"first_valid"`
	LastValid   uint64 `json:"last_valid"`
	GenesisID   string `json:"genesis_id"`
	GenesisHash string `json:"genesis_hash"`
}

// AssetHolding is one asset balance inside an account
type AssetHolding struct {
	AssetID uint64       `json:"asset_id"`
	Amount  *uint256.Int `json:"amount"`
}

// AccountInfo is the entry point's view of an account
type AccountInfo struct {
	Address string         `json:"address"`
	Balance *uint256.Int   `json:"balance"`
	Round   uint64         `json:"round"`
	Assets  []AssetHolding `json:"assets,omitempty"`
}

// InnerTxn is a transaction spawned by a contract while executing an
// application call. Asset creations performed by a contract surface their
// new id here.
type InnerTxn struct {
	Type       TxnType `json:"type"`
	AssetIndex uint64  `json:"asset_index,omitempty"`
}

// PendingTxInfo is the entry point's view of a broadcast transaction.
// ConfirmedRound is zero until the transaction is included in a finalized
// round; PoolError carries the verbatim rejection reason when the network
// drops the transaction instead.
type PendingTxInfo struct {
	TxID           string     `json:"tx_id"`
	ConfirmedRound uint64     `json:"confirmed_round"`
	PoolError      string     `json:"pool_error,omitempty"`
	Logs           []string   `json:"logs,omitempty"`
	InnerTxns      []InnerTxn `json:"inner_txns,omitempty"`
	AssetIndex     uint64     `json:"asset_index,omitempty"`
	AppIndex       uint64     `json:"app_index,omitempty"`
}
