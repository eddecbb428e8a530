package wallet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"

	"startex/chain"
	"startex/errors"
)

func TestFileKeystoreCreateThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.key")
	ks := NewFileKeystore(path)

	if _, _, err := ks.Load(); err != ErrKeyNotFound {
		t.Fatalf("expected ErrKeyNotFound on fresh keystore, got %v", err)
	}

	addr, seed, err := ks.Create()
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := chain.ValidateAddress(addr); err != nil {
		t.Errorf("created address invalid: %v", err)
	}

	addr2, seed2, err := ks.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if addr2 != addr || string(seed2) != string(seed) {
		t.Errorf("load does not match create")
	}
}

func TestCustodyConnectCreatesOnFirstUse(t *testing.T) {
	ks := NewFileKeystore(filepath.Join(t.TempDir(), "wallet.key"))
	provider := NewCustodyProvider(ks)

	accounts, err := provider.Connect(context.Background())
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("expected one account, got %d", len(accounts))
	}
}

func TestCustodyReconnectNeverCreates(t *testing.T) {
	ks := NewFileKeystore(filepath.Join(t.TempDir(), "wallet.key"))
	provider := NewCustodyProvider(ks)

	accounts, err := provider.Reconnect(context.Background())
	if err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("reconnect created a key: %v", accounts)
	}
	if _, _, err := ks.Load(); err != ErrKeyNotFound {
		t.Errorf("reconnect wrote key material")
	}
}

func TestCustodySignsOwnTransactions(t *testing.T) {
	provider := NewCustodyProvider(NewFileKeystore(filepath.Join(t.TempDir(), "wallet.key")))
	accounts, err := provider.Connect(context.Background())
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	txn := &chain.Txn{
		Type:     chain.TxnPayment,
		Sender:   accounts[0],
		Receiver: accounts[0],
		Amount:   uint256.NewInt(5),
	}
	payload, err := txn.EncodeUnsigned()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	signed, err := provider.SignTransactions(context.Background(), [][]byte{payload})
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	stxn, err := chain.DecodeSignedTxn(signed[0])
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !stxn.Verify() {
		t.Error("signature does not verify")
	}
}

func TestCustodyRejectsForeignSender(t *testing.T) {
	provider := NewCustodyProvider(NewFileKeystore(filepath.Join(t.TempDir(), "wallet.key")))
	if _, err := provider.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	other := NewCustodyProvider(NewFileKeystore(filepath.Join(t.TempDir(), "other.key")))
	otherAccounts, err := other.Connect(context.Background())
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	txn := &chain.Txn{
		Type:     chain.TxnPayment,
		Sender:   otherAccounts[0],
		Receiver: otherAccounts[0],
		Amount:   uint256.NewInt(5),
	}
	payload, _ := txn.EncodeUnsigned()

	_, err = provider.SignTransactions(context.Background(), [][]byte{payload})
	if !errors.HasCode(err, errors.ErrCodeUserRejected) {
		t.Errorf("expected user_rejected for a foreign sender, got %v", err)
	}
}
