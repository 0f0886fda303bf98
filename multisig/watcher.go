package multisig

import (
	"context"
	"fmt"
	"sync"
	"time"

	ctypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dymensionxyz/multisig-client/config"
	"github.com/dymensionxyz/multisig-client/types"
	"github.com/dymensionxyz/multisig-client/types/cw3"
)

const defaultWatchInterval = 30 * time.Second

// EventsClient subscribes to node events.
type EventsClient interface {
	Start() error
	Subscribe(ctx context.Context, subscriber, query string, outCapacity ...int) (<-chan ctypes.ResultEvent, error)
}

// EventsClientFrom returns the websocket events client behind clientCtx, if
// the node client supports subscriptions.
func EventsClientFrom(clientCtx client.Context) (EventsClient, bool) {
	ec, ok := clientCtx.Client.(EventsClient)
	return ec, ok
}

// ProposalUpdate is a proposal that appeared or changed status. Previous is
// empty for new proposals.
type ProposalUpdate struct {
	Proposal cw3.ProposalResponse
	Previous cw3.Status
}

func (u ProposalUpdate) IsNew() bool {
	return u.Previous == ""
}

// Watcher follows the proposals of a multisig contract by polling and, when
// an events client is set, by reacting to contract events.
type Watcher struct {
	contract     string
	interval     time.Duration
	limit        int
	events       EventsClient
	subscriberID string
	logger       *zap.Logger
	onUpdate     func(ProposalUpdate)

	listProposals func(ctx context.Context) ([]cw3.ProposalResponse, error)

	// mu is held for a whole refresh, from the fetch to the last
	// notification, so a slow fetch never lands after a newer one.
	mu    sync.Mutex
	known map[uint64]cw3.Status
}

func NewWatcher(
	queries *QueryClient,
	events EventsClient,
	contract string,
	cfg config.WatchConfig,
	logger *zap.Logger,
	onUpdate func(ProposalUpdate),
) *Watcher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	w := &Watcher{
		contract:     contract,
		interval:     interval,
		limit:        cfg.ProposalLimit,
		events:       events,
		subscriberID: fmt.Sprintf("multisig-client-%s", uuid.New().String()[:8]),
		logger:       logger.With(zap.String("module", "watcher"), zap.String("contract", contract)),
		onUpdate:     onUpdate,
		known:        make(map[uint64]cw3.Status),
	}
	w.listProposals = func(ctx context.Context) ([]cw3.ProposalResponse, error) {
		return NewProposalPager(queries, contract, DefaultPageSize).All(ctx, w.limit)
	}
	return w
}

// Start records the current proposals and keeps watching in the background
// until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	if _, err := w.refresh(ctx, false); err != nil {
		return fmt.Errorf("failed to load proposals: %w", err)
	}

	if w.events != nil {
		if err := w.subscribe(ctx); err != nil {
			return fmt.Errorf("failed to subscribe to contract events: %w", err)
		}
	}

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := w.refresh(ctx, true); err != nil {
					w.logger.Error("failed to refresh proposals", zap.Error(err))
				}
			}
		}
	}()

	return nil
}

// refresh fetches the proposals and reports the differences with the last
// known state when notify is set. Concurrent refreshes from the ticker and
// the event subscription run one at a time.
func (w *Watcher) refresh(ctx context.Context, notify bool) ([]ProposalUpdate, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	proposals, err := w.listProposals(ctx)
	if err != nil {
		return nil, err
	}

	var updates []ProposalUpdate
	for _, prop := range proposals {
		previous, ok := w.known[prop.ID]
		w.known[prop.ID] = prop.Status
		if ok && previous == prop.Status {
			continue
		}
		updates = append(updates, ProposalUpdate{Proposal: prop, Previous: previous})
	}

	if !notify {
		w.logger.Debug("proposals loaded", zap.Int("count", len(proposals)))
		return nil, nil
	}

	for _, u := range updates {
		if u.IsNew() {
			w.logger.Info("new proposal",
				zap.Uint64("id", u.Proposal.ID),
				zap.String("title", u.Proposal.Title),
				zap.String("status", string(u.Proposal.Status)))
		} else {
			w.logger.Info("proposal status changed",
				zap.Uint64("id", u.Proposal.ID),
				zap.String("from", string(u.Previous)),
				zap.String("to", string(u.Proposal.Status)))
		}
		if w.onUpdate != nil {
			w.onUpdate(u)
		}
	}

	if len(updates) == 0 {
		w.logger.Debug("no proposal updates")
	}

	return updates, nil
}

func (w *Watcher) subscribe(ctx context.Context) error {
	if err := w.events.Start(); err != nil {
		return fmt.Errorf("start rpc client: %w", err)
	}

	query := fmt.Sprintf("%s.%s='%s'", types.EventTypeWasm, types.AttributeKeyContractAddress, w.contract)
	resCh, err := w.events.Subscribe(ctx, w.subscriberID, query)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case res, ok := <-resCh:
				if !ok {
					return
				}
				w.handleEvent(ctx, res)
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (w *Watcher) handleEvent(ctx context.Context, res ctypes.ResultEvent) {
	actions := res.Events[types.EventTypeWasm+"."+types.AttributeKeyAction]
	ids := res.Events[types.EventTypeWasm+"."+types.AttributeKeyProposalID]
	w.logger.Debug("contract event", zap.Strings("actions", actions), zap.Strings("proposal_ids", ids))

	if _, err := w.refresh(ctx, true); err != nil {
		w.logger.Error("failed to refresh proposals after event", zap.Error(err))
	}
}
