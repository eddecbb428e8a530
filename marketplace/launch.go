package marketplace

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/holiman/uint256"

	"startex/errors"
	"startex/launchcache"
	"startex/logx"
	"startex/txbuilder"
)

// Registration is the outcome of a confirmed startup registration.
// StartupID comes from the registry's confirmed logs; ProvisionalID is a
// display-only guess derived from the transaction id before confirmation
// and must never be used to key on-chain actions.
type Registration struct {
	TxID           string
	StartupID      uint64
	ProvisionalID  uint64
	ConfirmedRound uint64
}

// RegisterStartup records a new startup in the registry contract and blocks
// until the registration is confirmed, because the registry-assigned id
// only exists once the call has executed on chain.
func (s *Service) RegisterStartup(ctx context.Context, name, githubRepo string) (*Registration, error) {
	if name == "" {
		return nil, errors.NewInvalidParameter("startup name is required")
	}
	sender, err := s.sender()
	if err != nil {
		return nil, err
	}

	intent := txbuilder.AppCallIntent{
		Sender: sender,
		AppID:  s.apps.Registry,
		Args:   [][]byte{[]byte(methodRegister), []byte(name), []byte(githubRepo)},
	}

	group, err := s.builder.Build(ctx, intent)
	if err != nil {
		return nil, err
	}
	reg := &Registration{
		TxID:          group[0].TxID,
		ProvisionalID: provisionalID(group[0].TxID),
	}

	signed, err := s.bridge.Sign(ctx, group)
	if err != nil {
		return nil, err
	}
	result, err := s.watcher.Submit(ctx, signed)
	if err != nil {
		return nil, err
	}
	logx.Info("MARKETPLACE", "Registering startup | name=", name, " provisional_id=", reg.ProvisionalID)
	if err := s.watcher.AwaitConfirmation(ctx, result, s.maxWaitRounds); err != nil {
		return nil, err
	}

	id, ok := parseStartupID(result.Info)
	if !ok {
		return nil, errors.NewError(errors.ErrCodeInternal, "registry confirmed without a startup id log")
	}
	reg.StartupID = id
	reg.ConfirmedRound = result.ConfirmedRound
	return reg, nil
}

// provisionalID derives a stable display id from the transaction id so the
// surface has something to show while the registration is pending
func provisionalID(txID string) uint64 {
	raw, err := hex.DecodeString(txID)
	if err != nil || len(raw) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw[:8])
}

// TokenizeParams describes the asset minted for a registered startup
type TokenizeParams struct {
	StartupID uint64
	Name      string
	UnitName  string
	Supply    *uint256.Int
	Decimals  uint32

	// Fee is the whole-unit launch fee paid to the treasury alongside the
	// factory call. The payment and the call travel as one atomic group.
	Fee string
}

// Tokenization is the outcome of a confirmed tokenize call
type Tokenization struct {
	TxID           string
	AssetID        uint64
	ConfirmedRound uint64
}

// TokenizeStartup pays the launch fee and asks the token factory to mint
// the startup's asset, atomically. The asset id is read from the confirmed
// call's inner transactions.
func (s *Service) TokenizeStartup(ctx context.Context, params TokenizeParams) (*Tokenization, error) {
	if params.StartupID == 0 {
		return nil, errors.NewInvalidParameter("startup id is required")
	}
	if params.Supply == nil || params.Supply.IsZero() {
		return nil, errors.NewInvalidParameter("supply must be positive")
	}
	sender, err := s.sender()
	if err != nil {
		return nil, err
	}

	call := txbuilder.AppCallIntent{
		Sender: sender,
		AppID:  s.apps.TokenFactory,
		Args: [][]byte{
			[]byte(methodTokenize),
			itob(params.StartupID),
			params.Supply.Bytes(),
			itob(uint64(params.Decimals)),
			[]byte(params.Name),
			[]byte(params.UnitName),
		},
	}

	intents := []txbuilder.Intent{}
	if params.Fee != "" {
		intents = append(intents, txbuilder.PaymentIntent{
			Sender:   sender,
			Receiver: s.treasury,
			Amount:   params.Fee,
		})
	}
	intents = append(intents, call)

	result, group, err := s.run(ctx, intents...)
	if err != nil {
		return nil, err
	}

	// the asset creation lives in the factory call's record, which is the
	// last member of the group
	callTxID := group[len(group)-1].TxID
	info := result.Info
	if result.TxID != callTxID {
		info, err = s.ledger.PendingTransaction(ctx, callTxID)
		if err != nil {
			return nil, err
		}
	}
	assetID, ok := parseAssetID(info)
	if !ok {
		return nil, errors.NewError(errors.ErrCodeInternal, "factory confirmed without creating an asset")
	}

	logx.Info("MARKETPLACE", "Tokenized startup | startup_id=", params.StartupID, " asset_id=", assetID)
	return &Tokenization{TxID: callTxID, AssetID: assetID, ConfirmedRound: result.ConfirmedRound}, nil
}

// LaunchParams describes a full launch: registration plus tokenization
type LaunchParams struct {
	Name        string
	Description string
	GithubRepo  string
	UnitName    string
	Supply      *uint256.Int
	Decimals    uint32
	Fee         string
}

// LaunchStartup runs the two-step launch flow strictly in sequence:
// register, wait for the confirmed startup id, then tokenize under that id.
// If the registration times out or fails, tokenization never starts; a
// tokenize keyed on a guessed id could bind the asset to the wrong startup.
// The completed launch is appended to the projection cache.
func (s *Service) LaunchStartup(ctx context.Context, params LaunchParams) (*launchcache.LaunchedRecord, error) {
	reg, err := s.RegisterStartup(ctx, params.Name, params.GithubRepo)
	if err != nil {
		return nil, err
	}

	tok, err := s.TokenizeStartup(ctx, TokenizeParams{
		StartupID: reg.StartupID,
		Name:      params.Name,
		UnitName:  params.UnitName,
		Supply:    params.Supply,
		Decimals:  params.Decimals,
		Fee:       params.Fee,
	})
	if err != nil {
		return nil, err
	}

	record := launchcache.LaunchedRecord{
		StartupID:    reg.StartupID,
		Name:         params.Name,
		Description:  params.Description,
		AssetID:      tok.AssetID,
		UnitName:     params.UnitName,
		Supply:       params.Supply.Clone(),
		Decimals:     params.Decimals,
		LaunchPrice:  params.Fee,
		Creator:      s.session.Address(),
		RegisterTxID: reg.TxID,
		TokenizeTxID: tok.TxID,
		RecordedAt:   time.Now().Unix(),
	}
	if err := s.cache.Append(record); err != nil {
		// the launch itself succeeded; a projection failure must not make
		// the caller believe it did not
		logx.Warn("MARKETPLACE", "failed to record launch: ", err)
	}
	return &record, nil
}
