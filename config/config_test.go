package config

import (
	"testing"
	"time"

	"github.com/ignite/cli/ignite/pkg/cosmosaccount"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults("/home/test/.multisig-client")

	cfg := Config{}
	require.NoError(t, viper.Unmarshal(&cfg))

	assert.Equal(t, "injective-1", cfg.ChainID)
	assert.Equal(t, "inj", cfg.AddressPrefix)
	assert.Equal(t, "inj", cfg.Denom)
	assert.Equal(t, uint64(1), cfg.MultisigCodeID)
	assert.Equal(t, "500000000inj", cfg.Gas.Prices)
	assert.Equal(t, 1.5, cfg.Gas.Adjustment)
	assert.Equal(t, cosmosaccount.KeyringBackend("test"), cfg.Wallet.KeyringBackend)
	assert.Equal(t, "/home/test/.multisig-client", cfg.Wallet.KeyringDir)
	assert.Equal(t, 20*time.Second, cfg.Tx.ConfirmTimeout)
	assert.Equal(t, time.Second, cfg.Tx.PollInterval)
	assert.Equal(t, "Neptune", cfg.Tx.ContractErrorMarker)
	assert.Equal(t, "/home/test/.multisig-client/multisig.db", cfg.Cache.DBPath)
	assert.Equal(t, 30*time.Second, cfg.Watch.Interval)
	assert.Equal(t, NetworkMainnet, cfg.Network())
}

func TestNetworkForChain(t *testing.T) {
	tests := []struct {
		chainID string
		want    Network
	}{
		{chainID: "injective-1", want: NetworkMainnet},
		{chainID: "injective-888", want: NetworkTestnet},
		{chainID: "", want: NetworkMainnet},
	}
	for _, tt := range tests {
		t.Run(tt.chainID, func(t *testing.T) {
			assert.Equal(t, tt.want, NetworkForChain(tt.chainID))
		})
	}
}

func TestGetCosmosClientOptions(t *testing.T) {
	tests := []struct {
		name   string
		config ClientConfig
		want   int
	}{
		{
			name:   "gas prices",
			config: ClientConfig{GasPrices: "500000000inj"},
			want:   7,
		}, {
			name:   "fixed fees with adjustment",
			config: ClientConfig{GasFees: "100inj", GasAdjustment: 1.5},
			want:   8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, GetCosmosClientOptions(tt.config), tt.want)
		})
	}
}
