package multisig

import (
	"context"
	"sync"

	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ignite/cli/ignite/pkg/cosmosaccount"
	"github.com/ignite/cli/ignite/pkg/cosmosclient"
)

type mockCosmosClient struct {
	sync.Mutex
	broadcast func(msgs ...sdk.Msg) (cosmosclient.Response, error)
	sent      [][]sdk.Msg
}

func (m *mockCosmosClient) BroadcastTx(_ context.Context, _ cosmosaccount.Account, msgs ...sdk.Msg) (cosmosclient.Response, error) {
	m.Lock()
	m.sent = append(m.sent, msgs)
	m.Unlock()
	if m.broadcast == nil {
		return cosmosclient.Response{TxResponse: &sdk.TxResponse{}}, nil
	}
	return m.broadcast(msgs...)
}

func (m *mockCosmosClient) Context() client.Context {
	return client.Context{}
}

func (m *mockCosmosClient) calls() int {
	m.Lock()
	defer m.Unlock()
	return len(m.sent)
}

type mockChainClient struct {
	mockCosmosClient
	registry cosmosaccount.Registry
	chainID  string
	prefix   string
}

func (m *mockChainClient) Account(name string) (cosmosaccount.Account, error) {
	return m.registry.GetByName(name)
}

func (m *mockChainClient) NodeChainID(context.Context) (string, error) {
	return m.chainID, nil
}

func (m *mockChainClient) AddressPrefix() string {
	return m.prefix
}

// testAddress returns a valid bech32 address under the default sdk prefix.
func testAddress(seed string) string {
	bz := make([]byte, 20)
	copy(bz, seed)
	return sdk.AccAddress(bz).String()
}
