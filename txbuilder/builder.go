package txbuilder

import (
	"context"
	"fmt"

	"github.com/mr-tron/base58"

	"startex/chain"
	"startex/errors"
	"startex/logx"
	"startex/node"
	"startex/wallet"
)

// Unsigned is one built transaction ready for the signing bridge
type Unsigned struct {
	Txn     *chain.Txn
	Payload []byte
	TxID    string
}

// Builder turns intents into unsigned network transactions stamped with
// freshly fetched suggested params
type Builder struct {
	ledger  node.Ledger
	session *wallet.Session
}

// NewBuilder creates a builder bound to the ledger and the wallet session
func NewBuilder(ledger node.Ledger, session *wallet.Session) *Builder {
	return &Builder{ledger: ledger, session: session}
}

// Build constructs one unsigned transaction per intent, in input order.
// Multiple intents are bound into a single atomic group sharing one group
// id; the ledger guarantees all-or-nothing execution of the group.
func (b *Builder) Build(ctx context.Context, intents ...Intent) ([]Unsigned, error) {
	if len(intents) == 0 {
		return nil, errors.NewInvalidParameter("no intents given")
	}
	if len(intents) > chain.MaxTxGroupSize {
		return nil, errors.NewInvalidParameter(fmt.Sprintf("group of %d exceeds maximum size %d", len(intents), chain.MaxTxGroupSize))
	}

	sender := b.session.Address()
	if sender == "" {
		return nil, errors.NewError(errors.ErrCodeNoActiveSession, errors.ErrMsgNoActiveSession)
	}
	for _, intent := range intents {
		if intent.IntentSender() != sender {
			return nil, errors.NewInvalidParameter("intent sender does not match the connected account")
		}
	}

	params, err := b.ledger.SuggestedParams(ctx)
	if err != nil {
		return nil, err
	}

	txns := make([]*chain.Txn, len(intents))
	for i, intent := range intents {
		txn, err := buildTxn(intent, params)
		if err != nil {
			return nil, err
		}
		txns[i] = txn
	}

	if len(txns) > 1 {
		if err := chain.AssignGroup(txns); err != nil {
			return nil, err
		}
	}

	// encode after grouping: the group stamp is part of the signed bytes
	out := make([]Unsigned, len(txns))
	for i, txn := range txns {
		payload, err := txn.EncodeUnsigned()
		if err != nil {
			return nil, err
		}
		id, err := txn.ID()
		if err != nil {
			return nil, err
		}
		out[i] = Unsigned{Txn: txn, Payload: payload, TxID: id}
	}

	logx.Debug("BUILDER", fmt.Sprintf("Built %d transaction(s) | first_valid=%d last_valid=%d", len(out), params.FirstValid, params.LastValid))
	return out, nil
}

// buildTxn maps one intent onto the wire transaction for its kind
func buildTxn(intent Intent, params chain.SuggestedParams) (*chain.Txn, error) {
	header := chain.Txn{
		Sender:      intent.IntentSender(),
		Fee:         params.Fee,
		FirstValid:  params.FirstValid,
		LastValid:   params.LastValid,
		GenesisID:   params.GenesisID,
		GenesisHash: params.GenesisHash,
	}

	switch it := intent.(type) {
	case PaymentIntent:
		if err := chain.ValidateAddress(it.Receiver); err != nil {
			return nil, errors.NewInvalidParameter("recipient: " + err.Error())
		}
		amount, err := ToBaseUnits(it.Amount)
		if err != nil {
			return nil, err
		}
		txn := header
		txn.Type = chain.TxnPayment
		txn.Receiver = it.Receiver
		txn.Amount = amount
		txn.Note = it.Note
		return &txn, nil

	case AssetTransferIntent:
		if err := chain.ValidateAddress(it.Receiver); err != nil {
			return nil, errors.NewInvalidParameter("recipient: " + err.Error())
		}
		if it.AssetID == 0 {
			return nil, errors.NewInvalidParameter("asset id is required")
		}
		if it.Amount == nil {
			return nil, errors.NewInvalidParameter("amount is required")
		}
		txn := header
		txn.Type = chain.TxnAssetTransfer
		txn.Receiver = it.Receiver
		txn.AssetID = it.AssetID
		txn.Amount = it.Amount.Clone()
		txn.Note = it.Note
		return &txn, nil

	case AssetCreateIntent:
		if it.Total == nil || it.Total.IsZero() {
			return nil, errors.NewInvalidParameter("total supply must be positive")
		}
		if it.Decimals > chain.MaxAssetDecimals {
			return nil, errors.NewInvalidParameter(fmt.Sprintf("decimals must be at most %d", chain.MaxAssetDecimals))
		}
		if it.Name == "" {
			return nil, errors.NewInvalidParameter("asset name is required")
		}
		txn := header
		txn.Type = chain.TxnAssetCreate
		txn.AssetName = it.Name
		txn.UnitName = it.UnitName
		txn.Total = it.Total.Clone()
		txn.Decimals = it.Decimals
		txn.Note = it.Note
		return &txn, nil

	case AppCallIntent:
		if it.AppID == 0 {
			return nil, errors.NewInvalidParameter("application id is required")
		}
		txn := header
		txn.Type = chain.TxnAppCall
		txn.AppID = it.AppID
		txn.AppArgs = make([]string, len(it.Args))
		for i, arg := range it.Args {
			txn.AppArgs[i] = base58.Encode(arg)
		}
		txn.Note = it.Note
		return &txn, nil

	default:
		return nil, errors.NewInvalidParameter(fmt.Sprintf("unsupported intent kind %q", intent.Kind()))
	}
}
