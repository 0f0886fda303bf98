package multisig

import (
	"context"
	"fmt"
	"sync"

	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ignite/cli/ignite/pkg/cosmosaccount"
	"github.com/ignite/cli/ignite/pkg/cosmosclient"
	"go.uber.org/zap"

	"github.com/dymensionxyz/multisig-client/config"
	"github.com/dymensionxyz/multisig-client/types"
)

type cosmosClient interface {
	BroadcastTx(ctx context.Context, account cosmosaccount.Account, msgs ...sdk.Msg) (cosmosclient.Response, error)
	Context() client.Context
}

// chainClient is a connected node client with access to the local keyring.
type chainClient interface {
	cosmosClient
	Account(name string) (cosmosaccount.Account, error)
	NodeChainID(ctx context.Context) (string, error)
	AddressPrefix() string
}

type dialFn func(ctx context.Context, cfg config.ClientConfig) (chainClient, error)

// Session is a connected wallet bound to a single chain. A zero Session is
// not usable; obtain one from Provider.
type Session struct {
	address string
	chainID string
	network config.Network
	account cosmosaccount.Account
	client  cosmosClient
}

func (s *Session) Address() string {
	return s.address
}

func (s *Session) ChainID() string {
	return s.chainID
}

func (s *Session) Network() config.Network {
	return s.network
}

func (s *Session) Context() client.Context {
	return s.client.Context()
}

// Broadcast signs msgs with the session account and sends them. The keyring
// does the signing; sender must be the session address.
func (s *Session) Broadcast(ctx context.Context, sender string, msgs ...sdk.Msg) (cosmosclient.Response, error) {
	if sender != s.address {
		return cosmosclient.Response{}, types.ErrSenderMismatch.Wrapf("sender %s, wallet %s", sender, s.address)
	}
	return s.client.BroadcastTx(ctx, s.account, msgs...)
}

// Provider owns the wallet session. It is safe for concurrent use.
type Provider struct {
	cfg    config.Config
	logger *zap.Logger
	dial   dialFn

	mu      sync.RWMutex
	session *Session
}

func NewProvider(cfg config.Config, logger *zap.Logger) *Provider {
	return &Provider{
		cfg:    cfg,
		logger: logger.With(zap.String("module", "wallet")),
		dial:   dialIgnite,
	}
}

// Connect dials the node, resolves the configured keyring account and checks
// that the node serves the configured chain. An existing session is replaced.
func (p *Provider) Connect(ctx context.Context) (*Session, error) {
	c, err := p.dial(ctx, p.cfg.ClientConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create cosmos client: %w", err)
	}

	chainID, err := c.NodeChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get node status: %w", err)
	}
	if p.cfg.ChainID != "" && chainID != p.cfg.ChainID {
		return nil, types.ErrWrongNetwork.Wrapf("node serves %s, expected %s", chainID, p.cfg.ChainID)
	}

	acc, err := c.Account(p.cfg.Wallet.AccountName)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", p.cfg.Wallet.AccountName, err)
	}

	address, err := acc.Address(c.AddressPrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to get account address: %w", err)
	}

	session := &Session{
		address: address,
		chainID: chainID,
		network: config.NetworkForChain(chainID),
		account: acc,
		client:  c,
	}

	p.mu.Lock()
	p.session = session
	p.mu.Unlock()

	p.logger.Info("wallet connected",
		zap.String("address", address),
		zap.String("chain_id", chainID),
		zap.String("network", string(session.network)))

	return session, nil
}

func (p *Provider) Disconnect() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session != nil {
		p.logger.Info("wallet disconnected", zap.String("address", p.session.address))
	}
	p.session = nil
}

// Address returns the connected wallet address, or "" when disconnected.
func (p *Provider) Address() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.session == nil {
		return ""
	}
	return p.session.address
}

func (p *Provider) Session() (*Session, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.session == nil {
		return nil, types.ErrNoWallet
	}
	return p.session, nil
}

type igniteClient struct {
	cosmosclient.Client
	prefix string
}

func dialIgnite(ctx context.Context, cfg config.ClientConfig) (chainClient, error) {
	c, err := cosmosclient.New(ctx, config.GetCosmosClientOptions(cfg)...)
	if err != nil {
		return nil, err
	}
	return igniteClient{Client: c, prefix: cfg.AddressPrefix}, nil
}

func (c igniteClient) Account(name string) (cosmosaccount.Account, error) {
	return c.AccountRegistry.GetByName(name)
}

func (c igniteClient) NodeChainID(ctx context.Context) (string, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return "", err
	}
	return status.NodeInfo.Network, nil
}

func (c igniteClient) AddressPrefix() string {
	return c.prefix
}
