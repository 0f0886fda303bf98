package multisig

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cosmossdk.io/math"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dymensionxyz/multisig-client/types"
	"github.com/dymensionxyz/multisig-client/types/cw3"
)

// DefaultPageSize is the number of proposals fetched per page.
const DefaultPageSize uint32 = 10

type (
	smartQueryFn   func(ctx context.Context, contract string, query []byte) ([]byte, error)
	contractInfoFn func(ctx context.Context, contract string) (*wasmtypes.ContractInfo, error)
	balanceFn      func(ctx context.Context, address, denom string) (sdk.Coin, error)
)

// QueryClient reads multisig contract state.
type QueryClient struct {
	smartQuery   smartQueryFn
	contractInfo contractInfoFn
	balance      balanceFn
}

func NewQueryClient(clientCtx client.Context) *QueryClient {
	wasmClient := wasmtypes.NewQueryClient(clientCtx)
	bankClient := banktypes.NewQueryClient(clientCtx)

	return &QueryClient{
		smartQuery: func(ctx context.Context, contract string, query []byte) ([]byte, error) {
			resp, err := wasmClient.SmartContractState(ctx, &wasmtypes.QuerySmartContractStateRequest{
				Address:   contract,
				QueryData: query,
			})
			if err != nil {
				return nil, err
			}
			return resp.Data, nil
		},
		contractInfo: func(ctx context.Context, contract string) (*wasmtypes.ContractInfo, error) {
			resp, err := wasmClient.ContractInfo(ctx, &wasmtypes.QueryContractInfoRequest{Address: contract})
			if err != nil {
				return nil, err
			}
			return &resp.ContractInfo, nil
		},
		balance: func(ctx context.Context, address, denom string) (sdk.Coin, error) {
			resp, err := bankClient.Balance(ctx, &banktypes.QueryBalanceRequest{Address: address, Denom: denom})
			if err != nil {
				return sdk.Coin{}, err
			}
			if resp.Balance == nil {
				return sdk.NewCoin(denom, math.ZeroInt()), nil
			}
			return *resp.Balance, nil
		},
	}
}

// Query runs a smart query against contract and decodes the JSON response.
func Query[Response any](ctx context.Context, q *QueryClient, contract string, msg any) (Response, error) {
	var result Response

	queryBytes, err := json.Marshal(msg)
	if err != nil {
		return result, fmt.Errorf("failed to marshal query: %w", err)
	}

	data, err := q.smartQuery(ctx, contract, queryBytes)
	if err != nil {
		return result, wrapQueryError(err, contract)
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return result, types.ErrDecode.Wrapf("query response of %s: %v", contract, err)
	}
	return result, nil
}

func (q *QueryClient) Proposal(ctx context.Context, contract string, proposalID uint64) (cw3.ProposalResponse, error) {
	return Query[cw3.ProposalResponse](ctx, q, contract, cw3.QueryMsg{
		Proposal: &cw3.ProposalQuery{ProposalID: proposalID},
	})
}

// ReverseProposals lists proposals from the newest down, starting below
// startBefore when it is set.
func (q *QueryClient) ReverseProposals(ctx context.Context, contract string, startBefore *uint64, limit uint32) (cw3.ProposalListResponse, error) {
	return Query[cw3.ProposalListResponse](ctx, q, contract, cw3.QueryMsg{
		ReverseProposals: &cw3.ReverseProposals{Limit: &limit, StartBefore: startBefore},
	})
}

func (q *QueryClient) ListVotes(ctx context.Context, contract string, proposalID uint64) (cw3.VoteListResponse, error) {
	return Query[cw3.VoteListResponse](ctx, q, contract, cw3.QueryMsg{
		ListVotes: &cw3.ListVotes{ProposalID: proposalID},
	})
}

func (q *QueryClient) Threshold(ctx context.Context, contract string) (cw3.ThresholdResponse, error) {
	return Query[cw3.ThresholdResponse](ctx, q, contract, cw3.QueryMsg{
		Threshold: &struct{}{},
	})
}

func (q *QueryClient) ListVoters(ctx context.Context, contract string) (cw3.VoterListResponse, error) {
	return Query[cw3.VoterListResponse](ctx, q, contract, cw3.QueryMsg{
		ListVoters: &cw3.ListVoters{},
	})
}

func (q *QueryClient) ContractInfo(ctx context.Context, contract string) (*wasmtypes.ContractInfo, error) {
	info, err := q.contractInfo(ctx, contract)
	if err != nil {
		return nil, wrapQueryError(err, contract)
	}
	return info, nil
}

func (q *QueryClient) Balance(ctx context.Context, address, denom string) (sdk.Coin, error) {
	coin, err := q.balance(ctx, address, denom)
	if err != nil {
		return sdk.Coin{}, fmt.Errorf("failed to get balance of %s: %w", address, err)
	}
	return coin, nil
}

// ProposalDetail is a proposal together with its votes.
type ProposalDetail struct {
	Proposal cw3.ProposalResponse `json:"proposal"`
	Votes    []cw3.VoteInfo       `json:"votes"`
}

// ProposalWithVotes fetches a proposal and its votes.
func (q *QueryClient) ProposalWithVotes(ctx context.Context, contract string, proposalID uint64) (ProposalDetail, error) {
	proposal, err := q.Proposal(ctx, contract, proposalID)
	if err != nil {
		return ProposalDetail{}, err
	}
	votes, err := q.ListVotes(ctx, contract, proposalID)
	if err != nil {
		return ProposalDetail{}, err
	}
	return ProposalDetail{Proposal: proposal, Votes: votes.Votes}, nil
}

func wrapQueryError(err error, contract string) error {
	if status.Code(err) == codes.NotFound || strings.Contains(strings.ToLower(err.Error()), "not found") {
		return types.ErrNotFound.Wrapf("%s: %v", contract, err)
	}
	return fmt.Errorf("failed to query contract %s: %w", contract, err)
}

// ProposalPager walks the proposals of a contract from the newest down. A
// proposal is returned at most once across pages.
type ProposalPager struct {
	client   *QueryClient
	contract string
	limit    uint32

	cursor *uint64
	seen   map[uint64]struct{}
	done   bool
}

func NewProposalPager(client *QueryClient, contract string, limit uint32) *ProposalPager {
	if limit == 0 {
		limit = DefaultPageSize
	}
	return &ProposalPager{
		client:   client,
		contract: contract,
		limit:    limit,
		seen:     make(map[uint64]struct{}),
	}
}

// Done reports whether the last page has been fetched.
func (p *ProposalPager) Done() bool {
	return p.done
}

// Next fetches the next page. It returns no proposals once Done.
func (p *ProposalPager) Next(ctx context.Context) ([]cw3.ProposalResponse, error) {
	if p.done {
		return nil, nil
	}

	page, err := p.client.ReverseProposals(ctx, p.contract, p.cursor, p.limit)
	if err != nil {
		return nil, err
	}

	if uint32(len(page.Proposals)) < p.limit {
		p.done = true
	}

	proposals := make([]cw3.ProposalResponse, 0, len(page.Proposals))
	for _, prop := range page.Proposals {
		if _, ok := p.seen[prop.ID]; ok {
			continue
		}
		p.seen[prop.ID] = struct{}{}
		proposals = append(proposals, prop)

		if p.cursor == nil || prop.ID < *p.cursor {
			id := prop.ID
			p.cursor = &id
		}
	}

	// a full page that brought nothing new would repeat forever
	if len(proposals) == 0 {
		p.done = true
	}

	return proposals, nil
}

// All fetches pages until Done or until max proposals were collected. A max
// of zero means no limit.
func (p *ProposalPager) All(ctx context.Context, max int) ([]cw3.ProposalResponse, error) {
	var all []cw3.ProposalResponse
	for !p.Done() {
		page, err := p.Next(ctx)
		if err != nil {
			return all, err
		}
		all = append(all, page...)
		if max > 0 && len(all) >= max {
			return all[:max], nil
		}
	}
	return all, nil
}
