package wallet

import (
	"context"
	"crypto/ed25519"
	stderrors "errors"
	"fmt"

	"github.com/mr-tron/base58"

	"startex/chain"
	"startex/errors"
)

// ErrKeyNotFound is returned by keystores when no key material exists yet
var ErrKeyNotFound = stderrors.New("wallet: key not found")

// Keystore abstracts where the custody provider keeps its ed25519 seed
type Keystore interface {
	// Load returns the stored address and seed, ErrKeyNotFound when absent
	Load() (addr string, seed []byte, err error)

	// Create generates and stores a fresh keypair
	Create() (addr string, seed []byte, err error)
}

// CustodyProvider holds the private key locally and signs without an
// external approval step. It backs development setups and custodial
// deployments where the operator is the approver.
type CustodyProvider struct {
	keystore Keystore

	address      string
	seed         []byte
	onDisconnect func()
}

// NewCustodyProvider creates a custody provider over the given keystore
func NewCustodyProvider(keystore Keystore) *CustodyProvider {
	return &CustodyProvider{keystore: keystore}
}

// Connect loads the stored key, creating one on first use
func (p *CustodyProvider) Connect(ctx context.Context) ([]string, error) {
	addr, seed, err := p.keystore.Load()
	if stderrors.Is(err, ErrKeyNotFound) {
		addr, seed, err = p.keystore.Create()
	}
	if err != nil {
		return nil, errors.NewError(errors.ErrCodeProviderUnavailable, errors.ErrMsgProviderUnavailable)
	}

	p.address = addr
	p.seed = seed
	return []string{addr}, nil
}

// Reconnect resumes only if key material already exists; it never creates
// a key, mirroring the "no prompt" contract
func (p *CustodyProvider) Reconnect(ctx context.Context) ([]string, error) {
	addr, seed, err := p.keystore.Load()
	if stderrors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.address = addr
	p.seed = seed
	return []string{addr}, nil
}

// Disconnect drops the in-memory key material
func (p *CustodyProvider) Disconnect(ctx context.Context) error {
	p.address = ""
	p.seed = nil
	return nil
}

// SignTransactions signs each payload in the group with the stored key.
// Output order matches input order.
func (p *CustodyProvider) SignTransactions(ctx context.Context, group [][]byte) ([][]byte, error) {
	if len(p.seed) != ed25519.SeedSize {
		return nil, errors.NewError(errors.ErrCodeNoActiveSession, errors.ErrMsgNoActiveSession)
	}
	priv := ed25519.NewKeyFromSeed(p.seed)

	signed := make([][]byte, len(group))
	for i, payload := range group {
		var txn chain.Txn
		if err := txn.UnmarshalJSON(payload); err != nil {
			return nil, fmt.Errorf("undecodable payload at index %d: %w", i, err)
		}
		if txn.Sender != p.address {
			return nil, errors.NewError(errors.ErrCodeUserRejected, errors.ErrMsgUserRejected)
		}

		sig := ed25519.Sign(priv, payload)
		stxn := chain.SignedTxn{Txn: txn, Sig: base58.Encode(sig)}
		out, err := stxn.Encode()
		if err != nil {
			return nil, err
		}
		signed[i] = out
	}
	return signed, nil
}

// OnDisconnect registers the session-loss handler. A custody provider never
// loses its session on its own, so the handler is held but never fired.
func (p *CustodyProvider) OnDisconnect(handler func()) {
	p.onDisconnect = handler
}
