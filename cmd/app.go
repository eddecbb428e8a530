package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"startex/config"
	"startex/db"
	"startex/events"
	"startex/launchcache"
	"startex/marketplace"
	"startex/node"
	"startex/signing"
	"startex/txbuilder"
	"startex/wallet"
	"startex/watcher"
)

// app bundles everything a command needs: the wired pipeline plus the
// resources it has to release when done
type app struct {
	network config.NetworkConfig
	tuning  *config.TuningConfig

	store   db.Provider
	ledger  node.Ledger
	bus     *events.Bus
	session *wallet.Session
	cache   *launchcache.Cache
	service *marketplace.Service
}

// newApp wires the adapter from the global flags. A silent reconnect runs
// on every start so commands issued after a restart keep the previously
// approved session without prompting again.
func newApp(ctx context.Context) (*app, error) {
	var networksCfg *config.NetworksConfig
	if globalConfig.NetworksFile != "" {
		loaded, err := config.LoadNetworksConfig(globalConfig.NetworksFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load networks file: %w", err)
		}
		networksCfg = loaded
	}
	network, err := config.SelectNetwork(networksCfg, globalConfig.Network)
	if err != nil {
		return nil, err
	}

	tuning := config.DefaultTuning()
	if globalConfig.TuningFile != "" {
		loaded, err := config.LoadTuningConfig(globalConfig.TuningFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load tuning file: %w", err)
		}
		tuning = loaded
	}

	store, err := db.NewBoltProvider(globalConfig.DBPath)
	if err != nil {
		return nil, err
	}

	walletdURL := network.WalletdURL
	if globalConfig.WalletdURL != "" {
		walletdURL = globalConfig.WalletdURL
	}
	keystore, err := newKeystore()
	if err != nil {
		store.Close()
		return nil, err
	}
	providers := map[string]wallet.Provider{
		"custody": wallet.NewCustodyProvider(keystore),
		"walletd": wallet.NewWalletdProvider(walletdURL),
	}

	bus := events.NewBus()
	session := wallet.NewSession(providers, store, bus)
	if err := session.ReconnectSilently(ctx); err != nil {
		// a failed silent reconnect leaves the session disconnected, which
		// every command already handles
		_ = err
	}

	ledger := node.NewClient(node.Config{Endpoint: network.NodeEndpoint, Token: network.NodeToken})
	builder := txbuilder.NewBuilder(ledger, session)
	bridge := signing.NewBridge(session)
	w := watcher.NewWatcher(ledger, bus, time.Duration(tuning.PollIntervalMs)*time.Millisecond)
	cache := launchcache.NewCache(store, bus)
	service := marketplace.NewService(session, builder, bridge, w, ledger, cache, network, tuning.MaxWaitRounds)

	return &app{
		network: network,
		tuning:  tuning,
		store:   store,
		ledger:  ledger,
		bus:     bus,
		session: session,
		cache:   cache,
		service: service,
	}, nil
}

// newKeystore picks the custody key backend from the flags. The postgres
// keystore expects its master key in STARTEX_KEYSTORE_MASTER_KEY.
func newKeystore() (wallet.Keystore, error) {
	if globalConfig.PgDSN == "" {
		return wallet.NewFileKeystore(globalConfig.KeyFile), nil
	}
	pg, err := sql.Open("postgres", globalConfig.PgDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres keystore: %w", err)
	}
	masterKey := os.Getenv("STARTEX_KEYSTORE_MASTER_KEY")
	return wallet.NewPgKeystore(pg, masterKey, globalConfig.WalletID)
}

func (a *app) Close() {
	a.ledger.Close()
	a.store.Close()
}
