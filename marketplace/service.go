package marketplace

import (
	"context"

	"github.com/holiman/uint256"

	"startex/config"
	"startex/errors"
	"startex/launchcache"
	"startex/node"
	"startex/signing"
	"startex/txbuilder"
	"startex/wallet"
	"startex/watcher"
)

// Service drives the marketplace flows end to end: intent, build, sign,
// submit, await, project. Every flow runs the same pipeline; the flows
// differ only in which intents they feed it and what they read out of the
// confirmed result.
type Service struct {
	session *wallet.Session
	builder *txbuilder.Builder
	bridge  *signing.Bridge
	watcher *watcher.Watcher
	ledger  node.Ledger
	cache   *launchcache.Cache

	apps          config.AppIDs
	treasury      string
	maxWaitRounds uint64
}

// NewService wires the pipeline over an already constructed session, ledger
// and cache
func NewService(
	session *wallet.Session,
	builder *txbuilder.Builder,
	bridge *signing.Bridge,
	w *watcher.Watcher,
	ledger node.Ledger,
	cache *launchcache.Cache,
	network config.NetworkConfig,
	maxWaitRounds uint64,
) *Service {
	if maxWaitRounds == 0 {
		maxWaitRounds = 10
	}
	return &Service{
		session:       session,
		builder:       builder,
		bridge:        bridge,
		watcher:       w,
		ledger:        ledger,
		cache:         cache,
		apps:          network.Apps,
		treasury:      network.Treasury,
		maxWaitRounds: maxWaitRounds,
	}
}

// run executes one flow through the pipeline and blocks until the group is
// confirmed or definitively failed. The returned group mirrors the intent
// order, so callers can locate a specific member's transaction id.
func (s *Service) run(ctx context.Context, intents ...txbuilder.Intent) (*watcher.SubmissionResult, []txbuilder.Unsigned, error) {
	group, err := s.builder.Build(ctx, intents...)
	if err != nil {
		return nil, nil, err
	}
	signed, err := s.bridge.Sign(ctx, group)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.watcher.Submit(ctx, signed)
	if err != nil {
		return nil, nil, err
	}
	if err := s.watcher.AwaitConfirmation(ctx, result, s.maxWaitRounds); err != nil {
		// the result is returned even on timeout: the group was broadcast
		// and the caller may keep watching it
		return result, group, err
	}
	return result, group, nil
}

// sender returns the connected account or no_active_session. Flows call it
// first so a disconnected wallet fails before any intent is constructed.
func (s *Service) sender() (string, error) {
	addr := s.session.Address()
	if addr == "" {
		return "", errors.NewError(errors.ErrCodeNoActiveSession, errors.ErrMsgNoActiveSession)
	}
	return addr, nil
}

// AssetBalance reports the connected or given account's holding of one
// asset. A missing holding reads as zero.
func (s *Service) AssetBalance(ctx context.Context, address string, assetID uint64) (*uint256.Int, error) {
	if address == "" {
		var err error
		address, err = s.sender()
		if err != nil {
			return nil, err
		}
	}
	info, err := s.ledger.AccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	for _, holding := range info.Assets {
		if holding.AssetID == assetID && holding.Amount != nil {
			return holding.Amount.Clone(), nil
		}
	}
	return new(uint256.Int), nil
}
