package wallet

import "context"

// Provider is the capability interface every concrete wallet integration
// implements. The session store and signing bridge are written against this
// interface only; selecting a provider happens once at connect time, never
// per call.
type Provider interface {
	// Connect presents the provider's approval flow to the user and returns
	// the approved account addresses. Fails with user_rejected or
	// provider_unavailable.
	Connect(ctx context.Context) ([]string, error)

	// Reconnect resumes a previously approved session without prompting.
	// Returns an empty slice and no error when the provider holds no active
	// session.
	Reconnect(ctx context.Context) ([]string, error)

	// Disconnect tears down the provider-side session
	Disconnect(ctx context.Context) error

	// SignTransactions signs a whole atomic group in input order. The group
	// is presented to the user as one approval; the call suspends until the
	// user approves or rejects, the provider owns that UX and any timeout.
	SignTransactions(ctx context.Context, group [][]byte) ([][]byte, error)

	// OnDisconnect registers a handler invoked when the provider drops the
	// session on its own side
	OnDisconnect(handler func())
}
