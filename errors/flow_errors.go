package errors

import (
	"errors"

	"startex/jsonx"
)

// FlowErrorCode represents standardized error codes for wallet and
// submission flows
type FlowErrorCode string

const (
	// General errors
	ErrCodeInternal FlowErrorCode = "internal_error"

	// Wallet/session errors
	ErrCodeUserRejected        FlowErrorCode = "user_rejected"
	ErrCodeProviderUnavailable FlowErrorCode = "provider_unavailable"
	ErrCodeNoActiveSession     FlowErrorCode = "no_active_session"

	// Intent validation errors
	ErrCodeInvalidParameter FlowErrorCode = "invalid_parameter"

	// Network errors
	ErrCodeSubmissionRejected  FlowErrorCode = "submission_rejected"
	ErrCodeConfirmationTimeout FlowErrorCode = "confirmation_timeout"
)

// FlowError represents a standardized flow error. Broadcast records whether
// the payload reached the network entry point before the error occurred:
// a rejected submission is safe to rebuild from scratch, a timed-out
// confirmation is not (the transaction may still confirm later).
type FlowError struct {
	Code      FlowErrorCode `json:"code"`
	Message   string        `json:"message"`
	Reason    string        `json:"reason,omitempty"`
	Broadcast bool          `json:"broadcast,omitempty"`
}

// Error implements the error interface
func (e *FlowError) Error() string {
	out, _ := jsonx.Marshal(e)
	return string(out)
}

// Error message constants - user-friendly and concise. Each suspension
// point's failure maps to a distinct user action, so a blanket message is
// not enough.
const (
	ErrMsgUserRejected        = "Request was declined in the wallet, retry when ready"
	ErrMsgProviderUnavailable = "Wallet is not reachable, unlock or install it and retry"
	ErrMsgNoActiveSession     = "No wallet is connected"
	ErrMsgInvalidParameter    = "A transaction field is invalid, correct it and retry"
	ErrMsgSubmissionRejected  = "The network rejected the transaction"
	ErrMsgConfirmationTimeout = "Confirmation is still pending, recheck the network before retrying"
	ErrMsgInternal            = "Internal error, please try again"
)

// NewError creates a new FlowError and returns it as error interface
func NewError(code FlowErrorCode, message string) error {
	return &FlowError{
		Code:    code,
		Message: message,
	}
}

// NewInvalidParameter names the field or rule the caller got wrong so the
// surface can point at it
func NewInvalidParameter(reason string) error {
	return &FlowError{
		Code:    ErrCodeInvalidParameter,
		Message: ErrMsgInvalidParameter,
		Reason:  reason,
	}
}

// NewSubmissionRejected attaches the entry point's verbatim reason string.
// The payload was never accepted, so Broadcast stays false.
func NewSubmissionRejected(reason string) error {
	return &FlowError{
		Code:    ErrCodeSubmissionRejected,
		Message: ErrMsgSubmissionRejected,
		Reason:  reason,
	}
}

// NewConfirmationTimeout marks the ambiguous outcome: the payload was
// broadcast but confirmation was not observed within the round bound.
func NewConfirmationTimeout(txID string) error {
	return &FlowError{
		Code:      ErrCodeConfirmationTimeout,
		Message:   ErrMsgConfirmationTimeout,
		Reason:    txID,
		Broadcast: true,
	}
}

// HasCode reports whether err is a FlowError carrying the given code.
func HasCode(err error, code FlowErrorCode) bool {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}

// WasBroadcast reports whether err relates to a payload that reached the
// network. Callers must re-query network state for those instead of
// rebuilding and resubmitting.
func WasBroadcast(err error) bool {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Broadcast
	}
	return false
}
