package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestFlowErrorIsJSON(t *testing.T) {
	err := NewError(ErrCodeUserRejected, ErrMsgUserRejected)
	msg := err.Error()
	if !strings.Contains(msg, `"code":"user_rejected"`) {
		t.Errorf("error string is not the expected JSON: %s", msg)
	}
}

func TestHasCode(t *testing.T) {
	err := NewError(ErrCodeNoActiveSession, ErrMsgNoActiveSession)
	if !HasCode(err, ErrCodeNoActiveSession) {
		t.Error("HasCode missed a direct match")
	}
	if HasCode(err, ErrCodeUserRejected) {
		t.Error("HasCode matched the wrong code")
	}

	wrapped := fmt.Errorf("while signing: %w", err)
	if !HasCode(wrapped, ErrCodeNoActiveSession) {
		t.Error("HasCode missed a wrapped match")
	}

	if HasCode(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("HasCode matched a non-flow error")
	}
}

func TestSubmissionRejectedCarriesVerbatimReason(t *testing.T) {
	err := NewSubmissionRejected("txn below min fee, got 500")

	var fe *FlowError
	if !stderrors.As(err, &fe) {
		t.Fatal("not a FlowError")
	}
	if fe.Reason != "txn below min fee, got 500" {
		t.Errorf("reason altered: %s", fe.Reason)
	}
	if WasBroadcast(err) {
		t.Error("rejected submission must not read as broadcast")
	}
}

func TestConfirmationTimeoutMarksBroadcast(t *testing.T) {
	err := NewConfirmationTimeout("tx-abc")
	if !WasBroadcast(err) {
		t.Error("timeout must read as broadcast")
	}
	if !HasCode(err, ErrCodeConfirmationTimeout) {
		t.Error("wrong code on timeout")
	}

	var fe *FlowError
	stderrors.As(err, &fe)
	if fe.Reason != "tx-abc" {
		t.Errorf("timeout must carry the tx id, got %s", fe.Reason)
	}
}
