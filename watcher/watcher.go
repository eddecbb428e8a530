package watcher

import (
	"context"
	"fmt"
	"time"

	"startex/chain"
	"startex/errors"
	"startex/events"
	"startex/logx"
	"startex/node"
)

// DefaultPollInterval paces confirmation polling between round checks
const DefaultPollInterval = 500 * time.Millisecond

// SubmissionResult tracks one broadcast transaction. It is created by
// Submit, advanced only by AwaitConfirmation, and terminal once Confirmed
// is set or the watcher gave up; it is never reused for another intent.
type SubmissionResult struct {
	TxID           string
	Confirmed      bool
	ConfirmedRound uint64
	Info           chain.PendingTxInfo
}

// Watcher broadcasts signed payloads and observes finality. It is the only
// component allowed to block a flow on polling, and every poll loop is
// cancellable through the context: cancelling stops the polling, not the
// transaction, which may still confirm later.
type Watcher struct {
	ledger       node.Ledger
	bus          *events.Bus
	pollInterval time.Duration
}

// NewWatcher creates a watcher over the ledger entry point
func NewWatcher(ledger node.Ledger, bus *events.Bus, pollInterval time.Duration) *Watcher {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Watcher{ledger: ledger, bus: bus, pollInterval: pollInterval}
}

// Submit broadcasts the signed payloads (a whole group in one call) and
// returns the network-assigned transaction id immediately. A network
// rejection surfaces verbatim as submission_rejected and is never retried
// here: the validity window may already have moved, so the caller must
// rebuild before trying again.
func (w *Watcher) Submit(ctx context.Context, payloads [][]byte) (*SubmissionResult, error) {
	if len(payloads) == 0 {
		return nil, errors.NewInvalidParameter("nothing to submit")
	}

	txID, err := w.ledger.SendRawTransaction(ctx, payloads)
	if err != nil {
		return nil, err
	}

	logx.Info("WATCHER", "Broadcast | tx_id=", txID)
	w.bus.Publish(events.NewTransactionSubmitted(txID))
	return &SubmissionResult{TxID: txID}, nil
}

// AwaitConfirmation polls until the transaction is reported included or
// maxRounds network rounds have passed since the call began. The bound
// counts rounds, not wall-clock time, because block production time varies.
//
// Three outcomes are possible: confirmed; dropped by the network with a
// definitive reason (safe to rebuild from scratch); or confirmation_timeout,
// the ambiguous case where the caller must re-query network state rather
// than assume failure.
func (w *Watcher) AwaitConfirmation(ctx context.Context, result *SubmissionResult, maxRounds uint64) error {
	if result == nil || result.TxID == "" {
		return errors.NewInvalidParameter("no submission to await")
	}
	if maxRounds == 0 {
		return errors.NewInvalidParameter("max rounds must be positive")
	}

	startRound, err := w.ledger.LastRound(ctx)
	if err != nil {
		return err
	}
	deadline := startRound + maxRounds

	for {
		info, err := w.ledger.PendingTransaction(ctx, result.TxID)
		if err == nil {
			if info.PoolError != "" {
				// definitively dropped, it will never confirm
				logx.Warn("WATCHER", fmt.Sprintf("Dropped | tx_id=%s reason=%s", result.TxID, info.PoolError))
				w.bus.Publish(events.NewTransactionFailed(result.TxID, info.PoolError))
				return errors.NewSubmissionRejected(info.PoolError)
			}
			if info.ConfirmedRound > 0 {
				result.Confirmed = true
				result.ConfirmedRound = info.ConfirmedRound
				result.Info = info
				logx.Info("WATCHER", fmt.Sprintf("Confirmed | tx_id=%s round=%d", result.TxID, info.ConfirmedRound))
				w.bus.Publish(events.NewTransactionConfirmed(result.TxID, info.ConfirmedRound))
				return nil
			}
		} else {
			// transient entry point errors do not shorten the round bound
			logx.Warn("WATCHER", "pending query failed: ", err)
		}

		round, err := w.ledger.LastRound(ctx)
		if err == nil && round >= deadline {
			logx.Warn("WATCHER", fmt.Sprintf("Timeout | tx_id=%s waited_rounds=%d", result.TxID, maxRounds))
			return errors.NewConfirmationTimeout(result.TxID)
		}

		select {
		case <-ctx.Done():
			// cancellation stops the polling, not the transaction
			return ctx.Err()
		case <-time.After(w.pollInterval):
		}
	}
}
