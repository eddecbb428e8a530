package watcher

import (
	"context"
	"sync"
	"testing"
	"time"

	"startex/chain"
	"startex/errors"
	"startex/events"
)

// fakeLedger scripts pending-transaction responses and advances rounds on
// every query
type fakeLedger struct {
	mu sync.Mutex

	round        uint64
	roundStep    uint64
	confirmAfter int
	confirmRound uint64
	poolError    string
	pendingCalls int

	sendTxID string
	sendErr  error
}

func (f *fakeLedger) SuggestedParams(ctx context.Context) (chain.SuggestedParams, error) {
	return chain.SuggestedParams{Fee: 1000, FirstValid: 1, LastValid: 1001}, nil
}

func (f *fakeLedger) SendRawTransaction(ctx context.Context, payloads [][]byte) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return f.sendTxID, nil
}

func (f *fakeLedger) PendingTransaction(ctx context.Context, txID string) (chain.PendingTxInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pendingCalls++

	if f.poolError != "" {
		return chain.PendingTxInfo{TxID: txID, PoolError: f.poolError}, nil
	}
	if f.confirmAfter > 0 && f.pendingCalls >= f.confirmAfter {
		return chain.PendingTxInfo{TxID: txID, ConfirmedRound: f.confirmRound}, nil
	}
	return chain.PendingTxInfo{TxID: txID}, nil
}

func (f *fakeLedger) AccountInfo(ctx context.Context, address string) (chain.AccountInfo, error) {
	return chain.AccountInfo{Address: address}, nil
}

func (f *fakeLedger) LastRound(ctx context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.round += f.roundStep
	return f.round, nil
}

func (f *fakeLedger) Close() error { return nil }

func newTestWatcher(ledger *fakeLedger) *Watcher {
	return NewWatcher(ledger, events.NewBus(), time.Millisecond)
}

func TestSubmitPublishesEvent(t *testing.T) {
	ledger := &fakeLedger{sendTxID: "tx-1"}
	bus := events.NewBus()
	w := NewWatcher(ledger, bus, time.Millisecond)
	_, ch := bus.Subscribe()

	result, err := w.Submit(context.Background(), [][]byte{[]byte("payload")})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.TxID != "tx-1" {
		t.Errorf("expected tx-1, got %s", result.TxID)
	}

	select {
	case ev := <-ch:
		if ev.Type() != events.EventTransactionSubmitted {
			t.Errorf("expected TransactionSubmitted, got %s", ev.Type())
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for TransactionSubmitted")
	}
}

func TestSubmitRejectionSurfacesVerbatim(t *testing.T) {
	ledger := &fakeLedger{sendErr: errors.NewSubmissionRejected("fee too low")}
	w := newTestWatcher(ledger)

	_, err := w.Submit(context.Background(), [][]byte{[]byte("payload")})
	if !errors.HasCode(err, errors.ErrCodeSubmissionRejected) {
		t.Fatalf("expected submission_rejected, got %v", err)
	}
	if errors.WasBroadcast(err) {
		t.Error("a rejected submission must not read as broadcast")
	}
}

func TestAwaitConfirmationSucceeds(t *testing.T) {
	ledger := &fakeLedger{round: 10, confirmAfter: 3, confirmRound: 12}
	w := newTestWatcher(ledger)

	result := &SubmissionResult{TxID: "tx-1"}
	if err := w.AwaitConfirmation(context.Background(), result, 100); err != nil {
		t.Fatalf("await failed: %v", err)
	}
	if !result.Confirmed || result.ConfirmedRound != 12 {
		t.Errorf("expected confirmation at round 12, got %+v", result)
	}
}

func TestAwaitConfirmationTimesOutOnRounds(t *testing.T) {
	// rounds advance on every check, the tx never confirms
	ledger := &fakeLedger{round: 10, roundStep: 5}
	w := newTestWatcher(ledger)

	result := &SubmissionResult{TxID: "tx-1"}
	err := w.AwaitConfirmation(context.Background(), result, 10)
	if !errors.HasCode(err, errors.ErrCodeConfirmationTimeout) {
		t.Fatalf("expected confirmation_timeout, got %v", err)
	}
	if !errors.WasBroadcast(err) {
		t.Error("a timed-out confirmation must read as broadcast")
	}
	if result.Confirmed {
		t.Error("timed-out result marked confirmed")
	}
}

func TestAwaitConfirmationPoolError(t *testing.T) {
	ledger := &fakeLedger{round: 10, poolError: "overspend"}
	bus := events.NewBus()
	w := NewWatcher(ledger, bus, time.Millisecond)
	_, ch := bus.Subscribe()

	err := w.AwaitConfirmation(context.Background(), &SubmissionResult{TxID: "tx-1"}, 100)
	if !errors.HasCode(err, errors.ErrCodeSubmissionRejected) {
		t.Fatalf("expected submission_rejected, got %v", err)
	}

	select {
	case ev := <-ch:
		if ev.Type() != events.EventTransactionFailed {
			t.Errorf("expected TransactionFailed, got %s", ev.Type())
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for TransactionFailed")
	}
}

func TestAwaitConfirmationHonorsCancel(t *testing.T) {
	ledger := &fakeLedger{round: 10}
	w := newTestWatcher(ledger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.AwaitConfirmation(ctx, &SubmissionResult{TxID: "tx-1"}, 1000)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Error("await did not return after cancel")
	}
}

func TestAwaitConfirmationValidatesInput(t *testing.T) {
	w := newTestWatcher(&fakeLedger{})
	if err := w.AwaitConfirmation(context.Background(), nil, 10); err == nil {
		t.Error("nil result accepted")
	}
	if err := w.AwaitConfirmation(context.Background(), &SubmissionResult{TxID: "tx"}, 0); err == nil {
		t.Error("zero round bound accepted")
	}
}
