package chain

import (
	"crypto/sha256"
	"fmt"

	"github.com/mr-tron/base58"
)

// AssignGroup binds the transactions into one atomic group by stamping each
// with a shared group id derived from the ids of all members. The ledger
// guarantees all-or-nothing execution of a stamped group; this function's
// only job is correct stamping.
//
// The input order is preserved: members must be signed and submitted in the
// order they were grouped.
func AssignGroup(txns []*Txn) error {
	if len(txns) == 0 {
		return fmt.Errorf("empty transaction group")
	}
	if len(txns) > MaxTxGroupSize {
		return fmt.Errorf("group of %d exceeds maximum size %d", len(txns), MaxTxGroupSize)
	}
	if len(txns) == 1 {
		// a single transaction stands alone, no group id
		return nil
	}

	hasher := sha256.New()
	for _, tx := range txns {
		if tx.Group != "" {
			return fmt.Errorf("transaction already belongs to a group")
		}
		id, err := tx.ID()
		if err != nil {
			return err
		}
		hasher.Write([]byte(id))
	}

	groupID := base58.Encode(hasher.Sum(nil))
	for _, tx := range txns {
		tx.Group = groupID
	}
	return nil
}
