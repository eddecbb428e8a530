package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadNetworksConfig reads and parses the networks.yml file
func LoadNetworksConfig(path string) (*NetworksConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		return nil, err
	}
	return &cfgFile.Config, nil
}

// SelectNetwork resolves a named network, falling back to the file's default
// and then to the built-in presets
func SelectNetwork(cfg *NetworksConfig, name string) (NetworkConfig, error) {
	if cfg != nil {
		if name == "" {
			name = cfg.Default
		}
		if net, ok := cfg.Networks[name]; ok {
			return net, nil
		}
	}
	if name == "" {
		name = "testnet"
	}
	if net, ok := builtinNetworks[name]; ok {
		return net, nil
	}
	return NetworkConfig{}, fmt.Errorf("unknown network %q", name)
}

// builtinNetworks are the presets used when no networks.yml is given
var builtinNetworks = map[string]NetworkConfig{
	"localnet": {
		Name:         "localnet",
		NodeEndpoint: "http://127.0.0.1:8545/rpc",
		WalletdURL:   "http://127.0.0.1:7833/rpc",
		Treasury:     "35ANa6TbeiGjmwyadnMUFY1ZaB19hRJCerXV19kXqFZd",
		Apps:         AppIDs{Registry: 1002, TokenFactory: 1003, Competition: 1004},
	},
	"testnet": {
		Name:         "testnet",
		NodeEndpoint: "https://testnet.startex.io/rpc",
		WalletdURL:   "http://127.0.0.1:7833/rpc",
		Treasury:     "A7WmzVC7a6JBgk22i4K6i6nVGJojGLSDAJKApvDJHoGk",
		Apps:         AppIDs{Registry: 733126914, TokenFactory: 733126955, Competition: 733127004},
	},
	"mainnet": {
		Name:         "mainnet",
		NodeEndpoint: "https://mainnet.startex.io/rpc",
		WalletdURL:   "http://127.0.0.1:7833/rpc",
		Treasury:     "2hBx5uSggWQeEhCeBATJDuycPcSP5aDLHRyrbqgBe3Yk",
		Apps:         AppIDs{Registry: 1442087461, TokenFactory: 1442087502, Competition: 1442087533},
	},
}

// TuningConfig paces the confirmation watcher and the cache poller
type TuningConfig struct {
	PollIntervalMs      int    `ini:"poll_interval_ms"`
	MaxWaitRounds       uint64 `ini:"max_wait_rounds"`
	CacheWatchIntervalS int    `ini:"cache_watch_interval_s"`
}

// DefaultTuning returns the values used when no tuning.ini is given
func DefaultTuning() *TuningConfig {
	return &TuningConfig{
		PollIntervalMs:      500,
		MaxWaitRounds:       10,
		CacheWatchIntervalS: 2,
	}
}

// LoadTuningConfig reads watcher tuning from an .ini file
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	section := cfg.Section("watcher")
	tuning := DefaultTuning()
	if err := section.MapTo(tuning); err != nil {
		return nil, err
	}
	return tuning, nil
}
