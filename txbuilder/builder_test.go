package txbuilder

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/holiman/uint256"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"startex/chain"
	"startex/db"
	"startex/errors"
	"startex/events"
	"startex/node"
	"startex/wallet"
)

type stubLedger struct {
	params      chain.SuggestedParams
	paramsCalls int
}

func (s *stubLedger) SuggestedParams(ctx context.Context) (chain.SuggestedParams, error) {
	s.paramsCalls++
	return s.params, nil
}

func (s *stubLedger) SendRawTransaction(ctx context.Context, payloads [][]byte) (string, error) {
	return "", nil
}

func (s *stubLedger) PendingTransaction(ctx context.Context, txID string) (chain.PendingTxInfo, error) {
	return chain.PendingTxInfo{}, nil
}

func (s *stubLedger) AccountInfo(ctx context.Context, address string) (chain.AccountInfo, error) {
	return chain.AccountInfo{}, nil
}

func (s *stubLedger) LastRound(ctx context.Context) (uint64, error) { return 0, nil }
func (s *stubLedger) Close() error                                  { return nil }

var _ node.Ledger = (*stubLedger)(nil)

type stubProvider struct {
	address string
}

func newStubProvider(seedByte byte) *stubProvider {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = seedByte
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &stubProvider{address: base58.Encode(priv.Public().(ed25519.PublicKey))}
}

func (p *stubProvider) Connect(ctx context.Context) ([]string, error) {
	return []string{p.address}, nil
}
func (p *stubProvider) Reconnect(ctx context.Context) ([]string, error) { return nil, nil }
func (p *stubProvider) Disconnect(ctx context.Context) error            { return nil }
func (p *stubProvider) SignTransactions(ctx context.Context, group [][]byte) ([][]byte, error) {
	return group, nil
}
func (p *stubProvider) OnDisconnect(handler func()) {}

func newBuilderFixture(t *testing.T) (*Builder, *stubLedger, string) {
	t.Helper()
	provider := newStubProvider(0x11)
	session := wallet.NewSession(map[string]wallet.Provider{"stub": provider}, db.NewMemoryProvider(), events.NewBus())
	_, err := session.Connect(context.Background(), "stub")
	require.NoError(t, err)

	ledger := &stubLedger{params: chain.SuggestedParams{
		Fee: 1000, FirstValid: 500, LastValid: 1500, GenesisID: "test", GenesisHash: "hash",
	}}
	return NewBuilder(ledger, session), ledger, provider.address
}

func TestBuildSingleIntent(t *testing.T) {
	builder, ledger, sender := newBuilderFixture(t)
	receiver := newStubProvider(0x22).address

	out, err := builder.Build(context.Background(), PaymentIntent{
		Sender:   sender,
		Receiver: receiver,
		Amount:   "1.5",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	txn := out[0].Txn
	require.Equal(t, chain.TxnPayment, txn.Type)
	require.Equal(t, "1500000", txn.Amount.Dec())
	require.Equal(t, uint64(500), txn.FirstValid)
	require.Empty(t, txn.Group, "a single transaction must not carry a group id")
	require.Equal(t, 1, ledger.paramsCalls, "params fetched once per build")

	id, err := txn.ID()
	require.NoError(t, err)
	require.Equal(t, id, out[0].TxID)
}

func TestBuildGroupSharesOneID(t *testing.T) {
	builder, ledger, sender := newBuilderFixture(t)
	receiver := newStubProvider(0x22).address

	out, err := builder.Build(context.Background(),
		PaymentIntent{Sender: sender, Receiver: receiver, Amount: "1"},
		AppCallIntent{Sender: sender, AppID: 7, Args: [][]byte{[]byte("join")}},
	)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, 1, ledger.paramsCalls, "one params fetch covers the whole group")

	require.NotEmpty(t, out[0].Txn.Group)
	require.Equal(t, out[0].Txn.Group, out[1].Txn.Group)

	// payloads must carry the group stamp
	for _, u := range out {
		var decoded chain.Txn
		require.NoError(t, decoded.UnmarshalJSON(u.Payload))
		require.Equal(t, out[0].Txn.Group, decoded.Group)
	}

	// input order preserved
	require.Equal(t, chain.TxnPayment, out[0].Txn.Type)
	require.Equal(t, chain.TxnAppCall, out[1].Txn.Type)
}

func TestBuildRequiresSession(t *testing.T) {
	provider := newStubProvider(0x11)
	session := wallet.NewSession(map[string]wallet.Provider{"stub": provider}, db.NewMemoryProvider(), events.NewBus())
	ledger := &stubLedger{}
	builder := NewBuilder(ledger, session)

	_, err := builder.Build(context.Background(), PaymentIntent{Sender: provider.address, Receiver: provider.address, Amount: "1"})
	require.True(t, errors.HasCode(err, errors.ErrCodeNoActiveSession))
	require.Zero(t, ledger.paramsCalls, "network must not be consulted without a session")
}

func TestBuildRejectsForeignSender(t *testing.T) {
	builder, _, _ := newBuilderFixture(t)
	stranger := newStubProvider(0x33).address

	_, err := builder.Build(context.Background(), PaymentIntent{Sender: stranger, Receiver: stranger, Amount: "1"})
	require.True(t, errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func TestBuildRejectsOversizeGroup(t *testing.T) {
	builder, _, sender := newBuilderFixture(t)
	receiver := newStubProvider(0x22).address

	intents := make([]Intent, chain.MaxTxGroupSize+1)
	for i := range intents {
		intents[i] = PaymentIntent{Sender: sender, Receiver: receiver, Amount: "1"}
	}
	_, err := builder.Build(context.Background(), intents...)
	require.True(t, errors.HasCode(err, errors.ErrCodeInvalidParameter))

	_, err = builder.Build(context.Background())
	require.True(t, errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func TestBuildValidatesIntentFields(t *testing.T) {
	builder, _, sender := newBuilderFixture(t)
	receiver := newStubProvider(0x22).address

	cases := []Intent{
		PaymentIntent{Sender: sender, Receiver: "bad-address", Amount: "1"},
		AssetTransferIntent{Sender: sender, Receiver: receiver, AssetID: 0, Amount: uint256.NewInt(1)},
		AssetTransferIntent{Sender: sender, Receiver: receiver, AssetID: 5, Amount: nil},
		AssetCreateIntent{Sender: sender, Name: "", Total: uint256.NewInt(1)},
		AssetCreateIntent{Sender: sender, Name: "Acme", Total: uint256.NewInt(0)},
		AssetCreateIntent{Sender: sender, Name: "Acme", Total: uint256.NewInt(1), Decimals: chain.MaxAssetDecimals + 1},
		AppCallIntent{Sender: sender, AppID: 0},
	}
	for i, intent := range cases {
		_, err := builder.Build(context.Background(), intent)
		require.Truef(t, errors.HasCode(err, errors.ErrCodeInvalidParameter), "case %d: got %v", i, err)
	}
}

func TestBuildDoesNotMutateIntents(t *testing.T) {
	builder, _, sender := newBuilderFixture(t)
	receiver := newStubProvider(0x22).address

	amount := uint256.NewInt(77)
	intent := AssetTransferIntent{Sender: sender, Receiver: receiver, AssetID: 5, Amount: amount}

	out, err := builder.Build(context.Background(), intent)
	require.NoError(t, err)

	out[0].Txn.Amount.SetUint64(1)
	require.Equal(t, uint64(77), amount.Uint64(), "building must clone amounts, not alias them")
}
