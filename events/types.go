package events

import "time"

// EventType is an enum-like string type for adapter events
type EventType string

const (
	EventSessionConnected    EventType = "SessionConnected"
	EventSessionDisconnected EventType = "SessionDisconnected"

	EventTransactionSubmitted EventType = "TransactionSubmitted"
	EventTransactionConfirmed EventType = "TransactionConfirmed"
	EventTransactionFailed    EventType = "TransactionFailed"

	EventLaunchRecorded EventType = "LaunchRecorded"
)

// Event represents anything the adapter announces to observers
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// SessionConnected fires when a wallet session reaches Connected
type SessionConnected struct {
	providerID string
	address    string
	timestamp  time.Time
}

func NewSessionConnected(providerID, address string) *SessionConnected {
	return &SessionConnected{providerID: providerID, address: address, timestamp: time.Now()}
}

func (e *SessionConnected) Type() EventType      { return EventSessionConnected }
func (e *SessionConnected) Timestamp() time.Time { return e.timestamp }
func (e *SessionConnected) ProviderID() string   { return e.providerID }
func (e *SessionConnected) Address() string      { return e.address }

// SessionDisconnected fires on explicit disconnect and on provider-side
// session loss
type SessionDisconnected struct {
	providerID string
	timestamp  time.Time
}

func NewSessionDisconnected(providerID string) *SessionDisconnected {
	return &SessionDisconnected{providerID: providerID, timestamp: time.Now()}
}

func (e *SessionDisconnected) Type() EventType      { return EventSessionDisconnected }
func (e *SessionDisconnected) Timestamp() time.Time { return e.timestamp }
func (e *SessionDisconnected) ProviderID() string   { return e.providerID }

// TransactionSubmitted fires after a successful broadcast, before
// confirmation. Observers must treat any derived state as tentative until
// the matching TransactionConfirmed arrives.
type TransactionSubmitted struct {
	txID      string
	timestamp time.Time
}

func NewTransactionSubmitted(txID string) *TransactionSubmitted {
	return &TransactionSubmitted{txID: txID, timestamp: time.Now()}
}

func (e *TransactionSubmitted) Type() EventType      { return EventTransactionSubmitted }
func (e *TransactionSubmitted) Timestamp() time.Time { return e.timestamp }
func (e *TransactionSubmitted) TxID() string         { return e.txID }

// TransactionConfirmed fires when the watcher observes inclusion in a
// finalized round
type TransactionConfirmed struct {
	txID           string
	confirmedRound uint64
	timestamp      time.Time
}

func NewTransactionConfirmed(txID string, confirmedRound uint64) *TransactionConfirmed {
	return &TransactionConfirmed{txID: txID, confirmedRound: confirmedRound, timestamp: time.Now()}
}

func (e *TransactionConfirmed) Type() EventType        { return EventTransactionConfirmed }
func (e *TransactionConfirmed) Timestamp() time.Time   { return e.timestamp }
func (e *TransactionConfirmed) TxID() string           { return e.txID }
func (e *TransactionConfirmed) ConfirmedRound() uint64 { return e.confirmedRound }

// TransactionFailed fires when the network rejects a transaction
type TransactionFailed struct {
	txID         string
	errorMessage string
	timestamp    time.Time
}

func NewTransactionFailed(txID string, errorMessage string) *TransactionFailed {
	return &TransactionFailed{txID: txID, errorMessage: errorMessage, timestamp: time.Now()}
}

func (e *TransactionFailed) Type() EventType      { return EventTransactionFailed }
func (e *TransactionFailed) Timestamp() time.Time { return e.timestamp }
func (e *TransactionFailed) TxID() string         { return e.txID }
func (e *TransactionFailed) ErrorMessage() string { return e.errorMessage }

// LaunchRecorded fires when the projection cache appends a launched record,
// whether the write happened in this process or was picked up from a
// concurrent writer sharing the store
type LaunchRecorded struct {
	startupID uint64
	assetID   uint64
	timestamp time.Time
}

func NewLaunchRecorded(startupID, assetID uint64) *LaunchRecorded {
	return &LaunchRecorded{startupID: startupID, assetID: assetID, timestamp: time.Now()}
}

func (e *LaunchRecorded) Type() EventType      { return EventLaunchRecorded }
func (e *LaunchRecorded) Timestamp() time.Time { return e.timestamp }
func (e *LaunchRecorded) StartupID() uint64    { return e.startupID }
func (e *LaunchRecorded) AssetID() uint64      { return e.assetID }
