package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dymensionxyz/multisig-client/api"
	"github.com/dymensionxyz/multisig-client/api/handlers"
	"github.com/dymensionxyz/multisig-client/cmd/version"
	"github.com/dymensionxyz/multisig-client/config"
	"github.com/dymensionxyz/multisig-client/multisig"
	"github.com/dymensionxyz/multisig-client/store"
)

var RootCmd = &cobra.Command{
	Use:   "multisig-client",
	Short: "CW3 multisig client for Injective",
	Long:  `Client for creating CW3 multisig contracts on Injective and proposing, voting on and executing their proposals.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no arguments are provided, print usage information
		if len(args) == 0 {
			if err := cmd.Usage(); err != nil {
				log.Fatalf("Error printing usage: %v", err)
			}
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the multisig client",
	Long:  `Initialize the multisig client by generating a config file with default values.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Config{}
		if err := viper.Unmarshal(&cfg); err != nil {
			log.Fatalf("failed to unmarshal config: %v", err)
		}

		// if the keyring dir doesn't exist, create it
		if _, err := os.Stat(cfg.Wallet.KeyringDir); os.IsNotExist(err) {
			if err := os.MkdirAll(cfg.Wallet.KeyringDir, 0o755); err != nil {
				log.Fatalf("failed to create keyring directory: %v", err)
			}
		}

		if err := viper.WriteConfigAs(config.CfgFile); err != nil {
			log.Fatalf("failed to write config file: %v", err)
		}

		fmt.Printf("Config file created: %s\n", config.CfgFile)
		fmt.Println()
		fmt.Println("Edit the config file to set the correct values for your environment.")
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the multisig API server",
	Long:  `Connect the configured wallet and serve the multisig HTTP API.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup()
		defer logger.Sync() // nolint: errcheck

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		provider, session := connect(ctx, cfg, logger)
		defer provider.Disconnect()

		cache, err := store.Open(cfg.Cache.DBPath)
		if err != nil {
			log.Fatalf("failed to open cache: %v", err)
		}
		defer cache.Close()

		queries := multisig.NewQueryClient(session.Context())
		book := multisig.NewAddressBook(cache, queries, logger)

		server := api.NewServer(
			handlers.NewWalletHandler(provider, cfg.ChainID),
			handlers.NewMultisigHandler(book, queries, provider, cfg.Denom, config.DisplayExponent),
			handlers.NewCodecHandler(),
			cfg.Server.Address,
			logger,
		)

		if err := server.Start(ctx); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	},
}

func buildLogger(logLevel string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.Set(logLevel); err != nil {
		return nil, fmt.Errorf("failed to set log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(os.Stdout),
		level,
	))

	return logger, nil
}

// setup loads the config, builds the logger and sets the bech32 prefix used
// to validate addresses.
func setup() (config.Config, *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	setBech32Prefix(cfg.AddressPrefix)
	return cfg, logger
}

func setBech32Prefix(prefix string) {
	sdkcfg := sdk.GetConfig()
	sdkcfg.SetBech32PrefixForAccount(prefix, prefix+sdk.PrefixPublic)
	sdkcfg.SetBech32PrefixForValidator(prefix+sdk.PrefixValidator+sdk.PrefixOperator, prefix+sdk.PrefixValidator+sdk.PrefixOperator+sdk.PrefixPublic)
	sdkcfg.SetBech32PrefixForConsensusNode(prefix+sdk.PrefixValidator+sdk.PrefixConsensus, prefix+sdk.PrefixValidator+sdk.PrefixConsensus+sdk.PrefixPublic)
}

func connect(ctx context.Context, cfg config.Config, logger *zap.Logger) (*multisig.Provider, *multisig.Session) {
	provider := multisig.NewProvider(cfg, logger)
	session, err := provider.Connect(ctx)
	if err != nil {
		log.Fatalf("failed to connect wallet: %v", err)
	}
	return provider, session
}

func init() {
	RootCmd.CompletionOptions.DisableDefaultCmd = true
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(startCmd)
	RootCmd.AddCommand(walletCmd)

	RootCmd.AddCommand(createCmd)
	RootCmd.AddCommand(proposeCmd)
	RootCmd.AddCommand(voteCmd)
	RootCmd.AddCommand(executeCmd)
	RootCmd.AddCommand(closeCmd)

	RootCmd.AddCommand(proposalsCmd)
	RootCmd.AddCommand(proposalCmd)
	RootCmd.AddCommand(votesCmd)
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(recentCmd)
	RootCmd.AddCommand(useCmd)

	RootCmd.AddCommand(codecCmd)
	RootCmd.AddCommand(version.Cmd())

	cobra.OnInitialize(config.InitConfig)

	RootCmd.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file")
}
