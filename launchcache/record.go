package launchcache

import (
	"github.com/holiman/uint256"

	"startex/jsonx"
)

// LaunchedRecord is one completed launch as the projection cache stores it.
// It is a local convenience projection of on-chain facts: losing it loses
// no funds and no on-chain state, only a cached view.
type LaunchedRecord struct {
	StartupID   uint64
	Name        string
	Description string
	AssetID     uint64
	UnitName    string
	Supply      *uint256.Int
	Decimals    uint32

	// LaunchPrice is the whole-unit fee paid to the treasury at launch
	LaunchPrice string

	Creator      string
	RegisterTxID string
	TokenizeTxID string
	RecordedAt   int64
}

type recordJSON struct {
	StartupID    uint64 `json:"startup_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	AssetID      uint64 `json:"asset_id"`
	UnitName     string `json:"unit_name,omitempty"`
	Supply       string `json:"supply"`
	Decimals     uint32 `json:"decimals,omitempty"`
	LaunchPrice  string `json:"launch_price,omitempty"`
	Creator      string `json:"creator"`
	RegisterTxID string `json:"register_tx_id,omitempty"`
	TokenizeTxID string `json:"tokenize_tx_id"`
	RecordedAt   int64  `json:"recorded_at"`
}

// MarshalJSON renders the supply as a decimal string so stored records
// survive readers that parse numbers into float64
func (r *LaunchedRecord) MarshalJSON() ([]byte, error) {
	supply := "0"
	if r.Supply != nil {
		supply = r.Supply.Dec()
	}
	return jsonx.Marshal(recordJSON{
		StartupID:    r.StartupID,
		Name:         r.Name,
		Description:  r.Description,
		AssetID:      r.AssetID,
		UnitName:     r.UnitName,
		Supply:       supply,
		Decimals:     r.Decimals,
		LaunchPrice:  r.LaunchPrice,
		Creator:      r.Creator,
		RegisterTxID: r.RegisterTxID,
		TokenizeTxID: r.TokenizeTxID,
		RecordedAt:   r.RecordedAt,
	})
}

// UnmarshalJSON parses the decimal supply back into a big amount
func (r *LaunchedRecord) UnmarshalJSON(data []byte) error {
	var aux recordJSON
	if err := jsonx.Unmarshal(data, &aux); err != nil {
		return err
	}
	supply := new(uint256.Int)
	if aux.Supply != "" {
		parsed, err := uint256.FromDecimal(aux.Supply)
		if err != nil {
			return err
		}
		supply = parsed
	}
	r.StartupID = aux.StartupID
	r.Name = aux.Name
	r.Description = aux.Description
	r.AssetID = aux.AssetID
	r.UnitName = aux.UnitName
	r.Supply = supply
	r.Decimals = aux.Decimals
	r.LaunchPrice = aux.LaunchPrice
	r.Creator = aux.Creator
	r.RegisterTxID = aux.RegisterTxID
	r.TokenizeTxID = aux.TokenizeTxID
	r.RecordedAt = aux.RecordedAt
	return nil
}
