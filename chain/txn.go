package chain

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/mr-tron/base58"

	"startex/jsonx"
)

// TxnType discriminates the network-native transaction kinds
type TxnType string

const (
	TxnPayment       TxnType = "pay"
	TxnAssetTransfer TxnType = "axfer"
	TxnAssetCreate   TxnType = "acfg"
	TxnAppCall       TxnType = "appl"
)

const (
	// BaseUnitScale is the number of base units per whole unit of the
	// native token
	BaseUnitScale = 1_000_000

	// MaxAssetDecimals is the largest decimal precision the ledger accepts
	// for a created asset
	MaxAssetDecimals = 19

	// MaxTxGroupSize is the largest atomic group the ledger accepts
	MaxTxGroupSize = 16
)

// Txn is an unsigned network-native transaction. All kinds share the header
// fields; the kind-specific fields are populated per Type and omitted from
// the wire form otherwise.
type Txn struct {
	Type        TxnType `json:"type"`
	Sender      string  `json:"sender"`
	Fee         uint64  `json:"fee"`
	FirstValid  uint64  `json:"first_valid"`
	LastValid   uint64  `json:"last_valid"`
	GenesisID   string  `json:"genesis_id"`
	GenesisHash string  `json:"genesis_hash"`
	Group       string  `json:"group,omitempty"`
	Note        string  `json:"note,omitempty"`

	// Payment and AssetTransfer
	Receiver string       `json:"receiver,omitempty"`
	Amount   *uint256.Int `json:"amount,omitempty"`
	AssetID  uint64       `json:"asset_id,omitempty"`

	// AssetCreate
	AssetName string       `json:"asset_name,omitempty"`
	UnitName  string       `json:"unit_name,omitempty"`
	Total     *uint256.Int `json:"total,omitempty"`
	Decimals  uint32       `json:"decimals,omitempty"`

	// AppCall
	AppID   uint64   `json:"app_id,omitempty"`
	AppArgs []string `json:"app_args,omitempty"`
}

// txnJSON carries big amounts as decimal strings so no precision is lost on
// the wire
type txnJSON struct {
	Type        TxnType `json:"type"`
	Sender      string  `json:"sender"`
	Fee         uint64  `json:"fee"`
	FirstValid  uint64  `json:"first_valid"`
	LastValid   uint64  `json:"last_valid"`
	GenesisID   string  `json:"genesis_id"`
	GenesisHash string  `json:"genesis_hash"`
	Group       string  `json:"group,omitempty"`
	Note        string  `json:"note,omitempty"`

	Receiver string `json:"receiver,omitempty"`
	Amount   string `json:"amount,omitempty"`
	AssetID  uint64 `json:"asset_id,omitempty"`

	AssetName string `json:"asset_name,omitempty"`
	UnitName  string `json:"unit_name,omitempty"`
	Total     string `json:"total,omitempty"`
	Decimals  uint32 `json:"decimals,omitempty"`

	AppID   uint64   `json:"app_id,omitempty"`
	AppArgs []string `json:"app_args,omitempty"`
}

func uint256ToString(v *uint256.Int) string {
	if v == nil {
		return ""
	}
	return v.Dec()
}

func uint256FromString(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, nil
	}
	return uint256.FromDecimal(s)
}

func (tx *Txn) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal(&txnJSON{
		Type:        tx.Type,
		Sender:      tx.Sender,
		Fee:         tx.Fee,
		FirstValid:  tx.FirstValid,
		LastValid:   tx.LastValid,
		GenesisID:   tx.GenesisID,
		GenesisHash: tx.GenesisHash,
		Group:       tx.Group,
		Note:        tx.Note,
		Receiver:    tx.Receiver,
		Amount:      uint256ToString(tx.Amount),
		AssetID:     tx.AssetID,
		AssetName:   tx.AssetName,
		UnitName:    tx.UnitName,
		Total:       uint256ToString(tx.Total),
		Decimals:    tx.Decimals,
		AppID:       tx.AppID,
		AppArgs:     tx.AppArgs,
	})
}

func (tx *Txn) UnmarshalJSON(data []byte) error {
	var aux txnJSON
	if err := jsonx.Unmarshal(data, &aux); err != nil {
		return err
	}

	amount, err := uint256FromString(aux.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount format: %w", err)
	}
	total, err := uint256FromString(aux.Total)
	if err != nil {
		return fmt.Errorf("invalid total format: %w", err)
	}

	tx.Type = aux.Type
	tx.Sender = aux.Sender
	tx.Fee = aux.Fee
	tx.FirstValid = aux.FirstValid
	tx.LastValid = aux.LastValid
	tx.GenesisID = aux.GenesisID
	tx.GenesisHash = aux.GenesisHash
	tx.Group = aux.Group
	tx.Note = aux.Note
	tx.Receiver = aux.Receiver
	tx.Amount = amount
	tx.AssetID = aux.AssetID
	tx.AssetName = aux.AssetName
	tx.UnitName = aux.UnitName
	tx.Total = total
	tx.Decimals = aux.Decimals
	tx.AppID = aux.AppID
	tx.AppArgs = aux.AppArgs
	return nil
}

// EncodeUnsigned produces the canonical byte form of the transaction. The
// same bytes are hashed for the id, signed by the wallet provider, and
// broadcast to the entry point.
func (tx *Txn) EncodeUnsigned() ([]byte, error) {
	return jsonx.Marshal(tx)
}

// ID computes the network transaction id over the canonical bytes
func (tx *Txn) ID() (string, error) {
	payload, err := tx.EncodeUnsigned()
	if err != nil {
		return "", err
	}
	sum256 := sha256.Sum256(payload)
	return hex.EncodeToString(sum256[:]), nil
}

// ValidateAddress checks that addr is a base58-encoded ed25519 public key
func ValidateAddress(addr string) error {
	decoded, err := base58.Decode(addr)
	if err != nil {
		return fmt.Errorf("invalid address encoding: %w", err)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid address length: expected %d bytes, got %d", ed25519.PublicKeySize, len(decoded))
	}
	return nil
}
