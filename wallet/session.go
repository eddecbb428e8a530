package wallet

import (
	"context"
	"fmt"
	"sync"

	"startex/db"
	"startex/errors"
	"startex/events"
	"startex/logx"
)

// Status is the wallet session lifecycle state
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "Connecting"
	case StatusConnected:
		return "Connected"
	default:
		return "Disconnected"
	}
}

// lastProviderKey remembers the approved provider so a restart can attempt
// silent reconnection
const lastProviderKey = "wallet:last_provider"

// Session is the single source of truth for the acting account. It is the
// only shared mutable state in the adapter: any component may read it, but
// only Connect, Disconnect and ReconnectSilently write it.
//
// Construct one per application and pass it down; providers and the backing
// store are injected so tests can run against fakes.
type Session struct {
	mu        sync.Mutex
	providers map[string]Provider
	store     db.Provider
	bus       *events.Bus

	status     Status
	address    string
	providerID string
	active     Provider

	// pending coalesces re-entrant Connect calls into the in-flight attempt
	// so the user never sees a second approval popup
	pending        chan struct{}
	lastConnectErr error
}

// NewSession creates a disconnected session over the given provider set
func NewSession(providers map[string]Provider, store db.Provider, bus *events.Bus) *Session {
	return &Session{
		providers: providers,
		store:     store,
		bus:       bus,
		status:    StatusDisconnected,
	}
}

// Connect asks the named provider for approval and transitions the session
// to Connected. A call made while another connect is in flight waits for
// that attempt instead of starting a second one. Failures are reported to
// the caller and never retried automatically: approval is a one-shot
// human-in-the-loop action.
func (s *Session) Connect(ctx context.Context, providerID string) (string, error) {
	s.mu.Lock()

	if s.status == StatusConnected {
		addr := s.address
		s.mu.Unlock()
		return addr, nil
	}

	if s.status == StatusConnecting {
		waitCh := s.pending
		s.mu.Unlock()
		select {
		case <-waitCh:
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.status == StatusConnected {
				return s.address, nil
			}
			return "", s.lastConnectErr
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	provider, ok := s.providers[providerID]
	if !ok {
		s.mu.Unlock()
		return "", errors.NewError(errors.ErrCodeProviderUnavailable, errors.ErrMsgProviderUnavailable)
	}

	s.status = StatusConnecting
	s.pending = make(chan struct{})
	s.mu.Unlock()

	accounts, err := provider.Connect(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer close(s.pending)

	if err == nil && len(accounts) == 0 {
		err = errors.NewError(errors.ErrCodeProviderUnavailable, errors.ErrMsgProviderUnavailable)
	}
	if err != nil {
		s.status = StatusDisconnected
		s.lastConnectErr = err
		return "", err
	}

	s.becomeConnected(providerID, provider, accounts[0])
	return s.address, nil
}

// becomeConnected finalizes a successful connect or reconnect. Caller holds
// the lock.
func (s *Session) becomeConnected(providerID string, provider Provider, address string) {
	s.status = StatusConnected
	s.address = address
	s.providerID = providerID
	s.active = provider
	provider.OnDisconnect(s.handleProviderDisconnect)

	if err := s.store.Put([]byte(lastProviderKey), []byte(providerID)); err != nil {
		logx.Warn("SESSION", "failed to persist provider id: ", err)
	}

	logx.Info("SESSION", fmt.Sprintf("Connected | provider=%s | address=%s", providerID, address))
	s.bus.Publish(events.NewSessionConnected(providerID, address))
}

// Disconnect tears down the provider-side session and resets local state.
// It always succeeds from the caller's perspective: provider teardown
// errors are swallowed and logged because the local state must always end
// up Disconnected.
func (s *Session) Disconnect(ctx context.Context) {
	s.mu.Lock()
	active := s.active
	providerID := s.providerID
	s.mu.Unlock()

	if active != nil {
		if err := active.Disconnect(ctx); err != nil {
			logx.Warn("SESSION", "provider teardown failed: ", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete([]byte(lastProviderKey)); err != nil {
		logx.Warn("SESSION", "failed to clear provider id: ", err)
	}

	wasConnected := s.status == StatusConnected
	s.reset()
	if wasConnected {
		logx.Info("SESSION", "Disconnected | provider=", providerID)
		s.bus.Publish(events.NewSessionDisconnected(providerID))
	}
}

// ReconnectSilently resumes the previously approved provider session
// without prompting the user. When no provider id is stored, or the
// provider reports no active session, the session stays Disconnected
// without error.
func (s *Session) ReconnectSilently(ctx context.Context) error {
	stored, err := s.store.Get([]byte(lastProviderKey))
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		return nil
	}

	providerID := string(stored)
	provider, ok := s.providers[providerID]
	if !ok {
		logx.Warn("SESSION", "stored provider is not configured: ", providerID)
		return nil
	}

	accounts, err := provider.Reconnect(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusDisconnected {
		return nil
	}
	s.becomeConnected(providerID, provider, accounts[0])
	return nil
}

// handleProviderDisconnect reacts to the provider dropping the session on
// its own side. The stored provider id is kept so the next start can still
// attempt a silent reconnect.
func (s *Session) handleProviderDisconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusConnected {
		return
	}
	providerID := s.providerID
	s.reset()
	logx.Info("SESSION", "Provider-side disconnect | provider=", providerID)
	s.bus.Publish(events.NewSessionDisconnected(providerID))
}

// reset clears connection state. Caller holds the lock.
func (s *Session) reset() {
	s.status = StatusDisconnected
	s.address = ""
	s.providerID = ""
	s.active = nil
}

// Status reports the current lifecycle state
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Address returns the connected account address, empty when disconnected
func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// ProviderID returns the id of the active provider, empty when disconnected
func (s *Session) ProviderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.providerID
}

// ActiveProvider returns the provider backing the connected session, or
// no_active_session when disconnected
func (s *Session) ActiveProvider() (Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusConnected || s.active == nil {
		return nil, errors.NewError(errors.ErrCodeNoActiveSession, errors.ErrMsgNoActiveSession)
	}
	return s.active, nil
}
