package config

import (
	"log"
	"strings"
	"time"

	"github.com/ignite/cli/ignite/pkg/cosmosaccount"
	"github.com/ignite/cli/ignite/pkg/cosmosclient"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config struct {
	ChainID         string `mapstructure:"chain_id"`
	NodeAddress     string `mapstructure:"node_address"`
	RestEndpoint    string `mapstructure:"rest_endpoint"`
	AddressPrefix   string `mapstructure:"address_prefix"`
	Denom           string `mapstructure:"denom"`
	MultisigCodeID  uint64 `mapstructure:"multisig_code_id"`
	DefaultMultisig string `mapstructure:"default_multisig"`

	Site   SiteConfig   `mapstructure:"site"`
	Gas    GasConfig    `mapstructure:"gas"`
	Wallet WalletConfig `mapstructure:"wallet"`
	Tx     TxConfig     `mapstructure:"tx"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Server ServerConfig `mapstructure:"server"`
	Watch  WatchConfig  `mapstructure:"watch"`

	LogLevel string `mapstructure:"log_level"`
}

type SiteConfig struct {
	Title   string `mapstructure:"title"`
	IconURL string `mapstructure:"icon_url"`
}

type GasConfig struct {
	Prices     string  `mapstructure:"prices"`
	Fees       string  `mapstructure:"fees"`
	Adjustment float64 `mapstructure:"adjustment"`
}

type WalletConfig struct {
	AccountName    string                       `mapstructure:"account_name"`
	KeyringBackend cosmosaccount.KeyringBackend `mapstructure:"keyring_backend"`
	KeyringDir     string                       `mapstructure:"keyring_dir"`
}

type TxConfig struct {
	ConfirmTimeout      time.Duration `mapstructure:"confirm_timeout"`
	PollInterval        time.Duration `mapstructure:"poll_interval"`
	ContractErrorMarker string        `mapstructure:"contract_error_marker"`
}

type CacheConfig struct {
	DBPath string `mapstructure:"db_path"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type WatchConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	Subscribe     bool          `mapstructure:"subscribe"`
	ProposalLimit int           `mapstructure:"proposal_limit"`
}

const (
	defaultChainID         = "injective-1"
	TestnetChainID         = "injective-888"
	defaultNodeAddress     = "https://sentry.tm.injective.network:443"
	defaultRestEndpoint    = "https://sentry.lcd.injective.network"
	defaultAddressPrefix   = "inj"
	defaultDenom           = "inj"
	defaultMultisigCodeID  = 1
	defaultLogLevel        = "info"
	defaultGasPrices       = "500000000" + defaultDenom
	defaultGasAdjustment   = 1.5
	defaultAccountName     = "wallet"
	defaultConfirmTimeout  = 20 * time.Second
	defaultPollInterval    = time.Second
	defaultWatchInterval   = 30 * time.Second
	defaultProposalLimit   = 30
	defaultServerAddress   = ":8000"
	defaultSiteTitle       = "Injective Multisig"
	defaultContractMarker  = "Neptune"
	testKeyringBackend     = "test"
	envPrefix              = "MULTISIG"
	homeDirName            = "/.multisig-client"
	defaultDBFileName      = "/multisig.db"
	defaultConfigFileName  = "config"
	defaultConfigExtension = ".yaml"
)

// DisplayExponent is the number of decimals of the chain's base denom.
const DisplayExponent = 18

type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

// NetworkForChain returns the network tier for a chain id.
func NetworkForChain(chainID string) Network {
	if chainID == TestnetChainID {
		return NetworkTestnet
	}
	return NetworkMainnet
}

var CfgFile string

func InitConfig() {
	// Find home directory.
	home, err := homedir.Dir()
	if err != nil {
		log.Fatalf("failed to get home directory: %v", err)
	}
	defaultHomeDir := home + homeDirName

	SetDefaults(defaultHomeDir)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigType("yaml")
	if CfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(CfgFile)
	} else {
		CfgFile = defaultHomeDir + "/" + defaultConfigFileName + defaultConfigExtension
		viper.AddConfigPath(defaultHomeDir)
		viper.AddConfigPath(".")
		viper.SetConfigName(defaultConfigFileName)
	}
}

// SetDefaults registers the default value of every key, with homeDir as the
// base of the keyring and cache paths.
func SetDefaults(homeDir string) {
	viper.SetDefault("chain_id", defaultChainID)
	viper.SetDefault("node_address", defaultNodeAddress)
	viper.SetDefault("rest_endpoint", defaultRestEndpoint)
	viper.SetDefault("address_prefix", defaultAddressPrefix)
	viper.SetDefault("denom", defaultDenom)
	viper.SetDefault("multisig_code_id", defaultMultisigCodeID)
	viper.SetDefault("default_multisig", "")
	viper.SetDefault("log_level", defaultLogLevel)

	viper.SetDefault("site.title", defaultSiteTitle)
	viper.SetDefault("site.icon_url", "")

	viper.SetDefault("gas.prices", defaultGasPrices)
	viper.SetDefault("gas.fees", "")
	viper.SetDefault("gas.adjustment", defaultGasAdjustment)

	viper.SetDefault("wallet.account_name", defaultAccountName)
	viper.SetDefault("wallet.keyring_backend", testKeyringBackend)
	viper.SetDefault("wallet.keyring_dir", homeDir)

	viper.SetDefault("tx.confirm_timeout", defaultConfirmTimeout)
	viper.SetDefault("tx.poll_interval", defaultPollInterval)
	viper.SetDefault("tx.contract_error_marker", defaultContractMarker)

	viper.SetDefault("cache.db_path", homeDir+defaultDBFileName)
	viper.SetDefault("server.address", defaultServerAddress)

	viper.SetDefault("watch.interval", defaultWatchInterval)
	viper.SetDefault("watch.subscribe", false)
	viper.SetDefault("watch.proposal_limit", defaultProposalLimit)
}

// Load reads the config file if there is one and unmarshals the settings.
func Load() (Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Network() Network {
	return NetworkForChain(c.ChainID)
}

type ClientConfig struct {
	HomeDir        string
	NodeAddress    string
	AddressPrefix  string
	GasFees        string
	GasPrices      string
	GasAdjustment  float64
	KeyringBackend cosmosaccount.KeyringBackend
}

func (c Config) ClientConfig() ClientConfig {
	return ClientConfig{
		HomeDir:        c.Wallet.KeyringDir,
		NodeAddress:    c.NodeAddress,
		AddressPrefix:  c.AddressPrefix,
		GasFees:        c.Gas.Fees,
		GasPrices:      c.Gas.Prices,
		GasAdjustment:  c.Gas.Adjustment,
		KeyringBackend: c.Wallet.KeyringBackend,
	}
}

func GetCosmosClientOptions(config ClientConfig) []cosmosclient.Option {
	options := []cosmosclient.Option{
		cosmosclient.WithAddressPrefix(config.AddressPrefix),
		cosmosclient.WithHome(config.HomeDir),
		cosmosclient.WithNodeAddress(config.NodeAddress),
		cosmosclient.WithGas(cosmosclient.GasAuto),
		cosmosclient.WithKeyringBackend(config.KeyringBackend),
		cosmosclient.WithKeyringDir(config.HomeDir),
	}
	if config.GasFees != "" {
		options = append(options, cosmosclient.WithFees(config.GasFees))
	} else {
		options = append(options, cosmosclient.WithGasPrices(config.GasPrices))
	}
	if config.GasAdjustment > 0 {
		options = append(options, cosmosclient.WithGasAdjustment(config.GasAdjustment))
	}
	return options
}
