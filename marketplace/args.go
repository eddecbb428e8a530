package marketplace

import (
	"encoding/binary"

	"github.com/mr-tron/base58"

	"startex/chain"
)

// Contract method selectors. These match the deployed marketplace programs
// and are passed as the first application argument.
const (
	methodRegister      = "register"
	methodTokenize      = "tokenize"
	methodJoin          = "join"
	methodUpdateMetrics = "update_metrics"
)

// registryLogTag prefixes the registry's startup-id log entry
var registryLogTag = []byte("sreg")

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// parseStartupID extracts the registry-assigned startup id from the
// confirmed transaction's logs. The newest matching entry wins. The id read
// here is authoritative; anything shown to the user before confirmation is
// a provisional guess.
func parseStartupID(info chain.PendingTxInfo) (uint64, bool) {
	for i := len(info.Logs) - 1; i >= 0; i-- {
		raw, err := base58.Decode(info.Logs[i])
		if err != nil {
			continue
		}
		if len(raw) != len(registryLogTag)+8 {
			continue
		}
		if string(raw[:len(registryLogTag)]) != string(registryLogTag) {
			continue
		}
		return binary.BigEndian.Uint64(raw[len(registryLogTag):]), true
	}
	return 0, false
}

// parseAssetID extracts the id of the asset minted by the token factory
// while executing the tokenize call
func parseAssetID(info chain.PendingTxInfo) (uint64, bool) {
	for _, inner := range info.InnerTxns {
		if inner.Type == chain.TxnAssetCreate && inner.AssetIndex != 0 {
			return inner.AssetIndex, true
		}
	}
	if info.AssetIndex != 0 {
		return info.AssetIndex, true
	}
	return 0, false
}
