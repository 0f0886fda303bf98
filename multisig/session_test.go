package multisig

import (
	"context"
	"errors"
	"testing"

	"github.com/ignite/cli/ignite/pkg/cosmosaccount"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dymensionxyz/multisig-client/config"
	"github.com/dymensionxyz/multisig-client/types"
)

func newTestProvider(t *testing.T, chainID string) (*Provider, string) {
	t.Helper()

	registry, err := cosmosaccount.NewInMemory()
	require.NoError(t, err)
	acc, _, err := registry.Create("wallet")
	require.NoError(t, err)
	address, err := acc.Address("inj")
	require.NoError(t, err)

	cfg := config.Config{
		ChainID:       "injective-1",
		AddressPrefix: "inj",
		Wallet:        config.WalletConfig{AccountName: "wallet"},
	}
	p := NewProvider(cfg, zap.NewNop())
	p.dial = func(context.Context, config.ClientConfig) (chainClient, error) {
		return &mockChainClient{registry: registry, chainID: chainID, prefix: "inj"}, nil
	}
	return p, address
}

func TestProvider_Connect(t *testing.T) {
	ctx := context.Background()

	t.Run("disconnected by default", func(t *testing.T) {
		p, _ := newTestProvider(t, "injective-1")
		assert.Equal(t, "", p.Address())

		_, err := p.Session()
		assert.ErrorIs(t, err, types.ErrNoWallet)
	})

	t.Run("connect and disconnect", func(t *testing.T) {
		p, address := newTestProvider(t, "injective-1")

		session, err := p.Connect(ctx)
		require.NoError(t, err)
		assert.Equal(t, address, session.Address())
		assert.Equal(t, "injective-1", session.ChainID())
		assert.Equal(t, config.NetworkMainnet, session.Network())
		assert.Equal(t, address, p.Address())

		got, err := p.Session()
		require.NoError(t, err)
		assert.Same(t, session, got)

		p.Disconnect()
		assert.Equal(t, "", p.Address())
		_, err = p.Session()
		assert.ErrorIs(t, err, types.ErrNoWallet)
	})

	t.Run("wrong network", func(t *testing.T) {
		p, _ := newTestProvider(t, "injective-888")

		_, err := p.Connect(ctx)
		assert.ErrorIs(t, err, types.ErrWrongNetwork)
		assert.Equal(t, "", p.Address())
	})

	t.Run("unknown account", func(t *testing.T) {
		p, _ := newTestProvider(t, "injective-1")
		p.cfg.Wallet.AccountName = "missing"

		_, err := p.Connect(ctx)
		assert.Error(t, err)
	})

	t.Run("dial failure", func(t *testing.T) {
		p, _ := newTestProvider(t, "injective-1")
		p.dial = func(context.Context, config.ClientConfig) (chainClient, error) {
			return nil, errors.New("connection refused")
		}

		_, err := p.Connect(ctx)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestSession_Broadcast_SenderMismatch(t *testing.T) {
	client := &mockCosmosClient{}
	s := &Session{address: "inj1wallet", client: client}

	_, err := s.Broadcast(context.Background(), "inj1other")
	assert.ErrorIs(t, err, types.ErrSenderMismatch)
	assert.Equal(t, 0, client.calls())
}

func TestNetworkForChain(t *testing.T) {
	assert.Equal(t, config.NetworkTestnet, config.NetworkForChain("injective-888"))
	assert.Equal(t, config.NetworkMainnet, config.NetworkForChain("injective-1"))
	assert.Equal(t, config.NetworkMainnet, config.NetworkForChain("other-1"))
}
