package multisig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dymensionxyz/multisig-client/types"
	"github.com/dymensionxyz/multisig-client/types/cw3"
)

// proposalContract serves reverse_proposals over ids 1..count.
type proposalContract struct {
	count   uint64
	queries []cw3.QueryMsg
	// overlap makes every page after the first repeat its predecessor's last id
	overlap bool
}

func (c *proposalContract) smartQuery(_ context.Context, _ string, query []byte) ([]byte, error) {
	var msg cw3.QueryMsg
	if err := json.Unmarshal(query, &msg); err != nil {
		return nil, err
	}
	c.queries = append(c.queries, msg)

	switch {
	case msg.ReverseProposals != nil:
		start := c.count + 1
		if msg.ReverseProposals.StartBefore != nil {
			start = *msg.ReverseProposals.StartBefore
			if c.overlap {
				start++
			}
		}
		var out cw3.ProposalListResponse
		for id := start - 1; id >= 1 && uint32(len(out.Proposals)) < *msg.ReverseProposals.Limit; id-- {
			out.Proposals = append(out.Proposals, cw3.ProposalResponse{ID: id, Title: fmt.Sprintf("proposal %d", id), Status: cw3.StatusOpen})
		}
		return json.Marshal(out)
	case msg.Proposal != nil:
		if msg.Proposal.ProposalID > c.count {
			return nil, status.Error(codes.NotFound, "cw3_fixed_multisig::state::Proposal not found")
		}
		return json.Marshal(cw3.ProposalResponse{ID: msg.Proposal.ProposalID, Status: cw3.StatusPassed})
	case msg.ListVotes != nil:
		return json.Marshal(cw3.VoteListResponse{Votes: []cw3.VoteInfo{
			{ProposalID: msg.ListVotes.ProposalID, Voter: "inj1alice", Vote: cw3.VoteYes, Weight: 1},
			{ProposalID: msg.ListVotes.ProposalID, Voter: "inj1bob", Vote: cw3.VoteNo, Weight: 1},
		}})
	}
	return nil, errors.New("unsupported query")
}

func TestProposalPager(t *testing.T) {
	tests := []struct {
		name      string
		count     uint64
		overlap   bool
		wantPages []int
	}{
		{"no proposals", 0, false, []int{0}},
		{"single short page", 4, false, []int{4}},
		{"several pages", 23, false, []int{10, 10, 3}},
		{"exact multiple", 20, false, []int{10, 10, 0}},
		{"overlapping pages are deduplicated", 23, true, []int{10, 9, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contract := &proposalContract{count: tt.count, overlap: tt.overlap}
			q := &QueryClient{smartQuery: contract.smartQuery}
			pager := NewProposalPager(q, "inj1multisig", 0)

			seen := make(map[uint64]bool)
			var pages []int
			for !pager.Done() {
				page, err := pager.Next(context.Background())
				require.NoError(t, err)
				pages = append(pages, len(page))
				for _, p := range page {
					assert.False(t, seen[p.ID], "proposal %d returned twice", p.ID)
					seen[p.ID] = true
				}
			}
			assert.Equal(t, tt.wantPages, pages)
			assert.Len(t, seen, int(tt.count))

			page, err := pager.Next(context.Background())
			require.NoError(t, err)
			assert.Empty(t, page)
		})
	}
}

func TestProposalPager_All(t *testing.T) {
	contract := &proposalContract{count: 35}
	q := &QueryClient{smartQuery: contract.smartQuery}

	all, err := NewProposalPager(q, "inj1multisig", 10).All(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, all, 15)
	assert.Equal(t, uint64(35), all[0].ID)
	assert.Equal(t, uint64(21), all[14].ID)

	// first page has no cursor, the next starts before the lowest id seen
	require.Len(t, contract.queries, 2)
	assert.Nil(t, contract.queries[0].ReverseProposals.StartBefore)
	assert.Equal(t, uint64(26), *contract.queries[1].ReverseProposals.StartBefore)
	assert.Equal(t, uint32(10), *contract.queries[1].ReverseProposals.Limit)
}

func TestQueryClient_ProposalWithVotes(t *testing.T) {
	contract := &proposalContract{count: 3}
	q := &QueryClient{smartQuery: contract.smartQuery}
	ctx := context.Background()

	detail, err := q.ProposalWithVotes(ctx, "inj1multisig", 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), detail.Proposal.ID)
	assert.True(t, detail.Proposal.Status.CanExecute())
	require.Len(t, detail.Votes, 2)

	vote, ok := cw3.VoteListResponse{Votes: detail.Votes}.VoteOf("inj1bob")
	require.True(t, ok)
	assert.Equal(t, cw3.VoteNo, vote.Vote)

	_, err = q.Proposal(ctx, "inj1multisig", 9)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestQuery_DecodeError(t *testing.T) {
	q := &QueryClient{smartQuery: func(context.Context, string, []byte) ([]byte, error) {
		return []byte("not json"), nil
	}}

	_, err := q.Threshold(context.Background(), "inj1multisig")
	assert.ErrorIs(t, err, types.ErrDecode)
}

func TestQuery_TransportError(t *testing.T) {
	q := &QueryClient{smartQuery: func(context.Context, string, []byte) ([]byte, error) {
		return nil, status.Error(codes.Unavailable, "connection refused")
	}}

	_, err := q.ListVoters(context.Background(), "inj1multisig")
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, codes.Unavailable, status.Code(errors.Unwrap(err)))
}
