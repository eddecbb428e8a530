package signing

import (
	"context"
	"fmt"

	"startex/chain"
	"startex/errors"
	"startex/txbuilder"
	"startex/wallet"
)

// Bridge obtains signatures from the connected wallet provider. The
// application never holds the private key; the bridge only ferries payloads
// across and checks what comes back. Signed payloads are returned to the
// caller and retained nowhere.
type Bridge struct {
	session *wallet.Session
}

// NewBridge creates a bridge over the wallet session
func NewBridge(session *wallet.Session) *Bridge {
	return &Bridge{session: session}
}

// Sign forwards the built group to the active provider as one approval and
// returns the signed payloads in input order. The session is checked before
// the provider is invoked, never after. The call suspends until the user
// decides; the provider owns that UX.
func (b *Bridge) Sign(ctx context.Context, group []txbuilder.Unsigned) ([][]byte, error) {
	if len(group) == 0 {
		return nil, errors.NewInvalidParameter("nothing to sign")
	}

	provider, err := b.session.ActiveProvider()
	if err != nil {
		return nil, err
	}

	payloads := make([][]byte, len(group))
	for i, u := range group {
		payloads[i] = u.Payload
	}

	signed, err := provider.SignTransactions(ctx, payloads)
	if err != nil {
		return nil, err
	}
	if len(signed) != len(payloads) {
		return nil, errors.NewError(errors.ErrCodeInternal,
			fmt.Sprintf("provider returned %d signed payloads for %d inputs", len(signed), len(payloads)))
	}

	// the provider must hand back the same transactions, same order,
	// carrying valid signatures
	for i, raw := range signed {
		stxn, err := chain.DecodeSignedTxn(raw)
		if err != nil {
			return nil, errors.NewError(errors.ErrCodeInternal, "provider returned an undecodable payload")
		}
		id, err := stxn.Txn.ID()
		if err != nil {
			return nil, err
		}
		if id != group[i].TxID {
			return nil, errors.NewError(errors.ErrCodeInternal, "provider reordered or replaced a transaction")
		}
		if !stxn.Verify() {
			return nil, errors.NewError(errors.ErrCodeInternal, "provider returned an invalid signature")
		}
	}

	return signed, nil
}
