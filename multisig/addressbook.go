package multisig

import (
	"context"
	"errors"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"go.uber.org/zap"

	"github.com/dymensionxyz/multisig-client/store"
	"github.com/dymensionxyz/multisig-client/types"
)

type multisigStore interface {
	SaveMultisig(ctx context.Context, ms *store.Multisig) error
	GetMultisig(ctx context.Context, address string) (*store.Multisig, error)
	GetMultisigs(ctx context.Context, opts ...store.MultisigOption) ([]*store.Multisig, error)
}

type contractInfoReader interface {
	ContractInfo(ctx context.Context, contract string) (*wasmtypes.ContractInfo, error)
}

// AddressBook resolves multisig labels. Chain data wins; the local cache is
// only used when the chain can't be reached.
type AddressBook struct {
	store  multisigStore
	chain  contractInfoReader
	logger *zap.Logger
}

func NewAddressBook(store multisigStore, chain contractInfoReader, logger *zap.Logger) *AddressBook {
	return &AddressBook{
		store:  store,
		chain:  chain,
		logger: logger.With(zap.String("module", "address-book")),
	}
}

// Lookup returns the multisig at address and records it as recently used.
// Cached is set when the result comes from the local cache.
func (b *AddressBook) Lookup(ctx context.Context, address string) (ms *store.Multisig, cached bool, err error) {
	info, err := b.chain.ContractInfo(ctx, address)
	if err == nil {
		ms = &store.Multisig{Address: address, Label: info.Label}
		if err := b.store.SaveMultisig(ctx, ms); err != nil {
			b.logger.Warn("failed to cache multisig", zap.String("address", address), zap.Error(err))
		}
		return ms, false, nil
	}

	// a contract the chain doesn't know is not served from the cache
	if errors.Is(err, types.ErrNotFound) {
		return nil, false, err
	}

	b.logger.Warn("chain lookup failed, falling back to cache", zap.String("address", address), zap.Error(err))

	ms, cacheErr := b.store.GetMultisig(ctx, address)
	if cacheErr != nil {
		return nil, false, cacheErr
	}
	if ms == nil {
		return nil, false, err
	}
	return ms, true, nil
}

// Recent lists recently used multisigs, most recent first.
func (b *AddressBook) Recent(ctx context.Context, limit int) ([]*store.Multisig, error) {
	return b.store.GetMultisigs(ctx, store.WithLimit(limit))
}
