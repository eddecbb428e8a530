package marketplace

import (
	"context"

	"github.com/holiman/uint256"

	"startex/errors"
	"startex/txbuilder"
	"startex/watcher"
)

// Donate sends native tokens to a startup's creator account. Amount is a
// whole-unit decimal string.
func (s *Service) Donate(ctx context.Context, receiver, amount, note string) (*watcher.SubmissionResult, error) {
	sender, err := s.sender()
	if err != nil {
		return nil, err
	}
	result, _, err := s.run(ctx, txbuilder.PaymentIntent{
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
		Note:     note,
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

// TransferTokens moves startup tokens to another account. Amount is in the
// asset's base units.
func (s *Service) TransferTokens(ctx context.Context, receiver string, assetID uint64, amount *uint256.Int) (*watcher.SubmissionResult, error) {
	sender, err := s.sender()
	if err != nil {
		return nil, err
	}
	if amount == nil || amount.IsZero() {
		return nil, errors.NewInvalidParameter("transfer amount must be positive")
	}
	result, _, err := s.run(ctx, txbuilder.AssetTransferIntent{
		Sender:   sender,
		Receiver: receiver,
		AssetID:  assetID,
		Amount:   amount,
	})
	if err != nil {
		return result, err
	}
	return result, nil
}

// JoinCompetition enters a registered startup into the current competition.
// A non-empty entry fee travels with the call as one atomic group.
func (s *Service) JoinCompetition(ctx context.Context, startupID uint64, entryFee string) (*watcher.SubmissionResult, error) {
	if startupID == 0 {
		return nil, errors.NewInvalidParameter("startup id is required")
	}
	sender, err := s.sender()
	if err != nil {
		return nil, err
	}

	call := txbuilder.AppCallIntent{
		Sender: sender,
		AppID:  s.apps.Competition,
		Args:   [][]byte{[]byte(methodJoin), itob(startupID)},
	}
	intents := []txbuilder.Intent{}
	if entryFee != "" {
		intents = append(intents, txbuilder.PaymentIntent{
			Sender:   sender,
			Receiver: s.treasury,
			Amount:   entryFee,
		})
	}
	intents = append(intents, call)

	result, _, err := s.run(ctx, intents...)
	if err != nil {
		return result, err
	}
	return result, nil
}

// UpdateGithubMetrics pushes refreshed repository metrics into the registry
// record for a startup
func (s *Service) UpdateGithubMetrics(ctx context.Context, startupID, commits, stars uint64) (*watcher.SubmissionResult, error) {
	if startupID == 0 {
		return nil, errors.NewInvalidParameter("startup id is required")
	}
	sender, err := s.sender()
	if err != nil {
		return nil, err
	}
	result, _, err := s.run(ctx, txbuilder.AppCallIntent{
		Sender: sender,
		AppID:  s.apps.Registry,
		Args:   [][]byte{[]byte(methodUpdateMetrics), itob(startupID), itob(commits), itob(stars)},
	})
	if err != nil {
		return result, err
	}
	return result, nil
}
