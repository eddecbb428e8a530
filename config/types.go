package config

// AppIDs holds the deployed marketplace contract ids for one network
type AppIDs struct {
	Registry     uint64 `yaml:"registry"`
	TokenFactory uint64 `yaml:"token_factory"`
	Competition  uint64 `yaml:"competition"`
}

// NetworkConfig represents one network's endpoints and contracts
type NetworkConfig struct {
	Name         string `yaml:"name"`
	NodeEndpoint string `yaml:"node_endpoint"`
	NodeToken    string `yaml:"node_token"`
	WalletdURL   string `yaml:"walletd_url"`
	Treasury     string `yaml:"treasury"`
	Apps         AppIDs `yaml:"apps"`
}

// NetworksConfig holds the configuration from networks.yml
type NetworksConfig struct {
	Default  string                   `yaml:"default"`
	Networks map[string]NetworkConfig `yaml:"networks"`
}

// ConfigFile is the top-level structure for networks.yml
type ConfigFile struct {
	Config NetworksConfig `yaml:"config"`
}
