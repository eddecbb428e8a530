package txbuilder

import "github.com/holiman/uint256"

// Kind discriminates the high-level transaction intents
type Kind string

const (
	KindPayment       Kind = "payment"
	KindAssetTransfer Kind = "asset_transfer"
	KindAssetCreate   Kind = "asset_create"
	KindAppCall       Kind = "app_call"
)

// Intent is a high-level description of one transaction. Intents are
// immutable once constructed: building from one never mutates it, so the
// same intent value can be rebuilt after a rejection with fresh params.
type Intent interface {
	Kind() Kind
	IntentSender() string
}

// PaymentIntent moves native tokens. Amount is a whole-unit decimal string
// ("1.5"); conversion to base units truncates, never rounds up.
type PaymentIntent struct {
	Sender   string
	Receiver string
	Amount   string
	Note     string
}

func (PaymentIntent) Kind() Kind             { return KindPayment }
func (i PaymentIntent) IntentSender() string { return i.Sender }

// AssetTransferIntent moves a created asset. Amount is in the asset's base
// units.
type AssetTransferIntent struct {
	Sender   string
	Receiver string
	AssetID  uint64
	Amount   *uint256.Int
	Note     string
}

func (AssetTransferIntent) Kind() Kind             { return KindAssetTransfer }
func (i AssetTransferIntent) IntentSender() string { return i.Sender }

// AssetCreateIntent mints a new fungible asset with fixed supply
type AssetCreateIntent struct {
	Sender   string
	Name     string
	UnitName string
	Total    *uint256.Int
	Decimals uint32
	Note     string
}

func (AssetCreateIntent) Kind() Kind             { return KindAssetCreate }
func (i AssetCreateIntent) IntentSender() string { return i.Sender }

// AppCallIntent invokes a deployed contract with raw argument bytes
type AppCallIntent struct {
	Sender string
	AppID  uint64
	Args   [][]byte
	Note   string
}

func (AppCallIntent) Kind() Kind             { return KindAppCall }
func (i AppCallIntent) IntentSender() string { return i.Sender }
