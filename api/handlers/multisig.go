package handlers

import (
	"context"
	"net/http"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gorilla/mux"

	"github.com/dymensionxyz/multisig-client/codec"
	"github.com/dymensionxyz/multisig-client/multisig"
	"github.com/dymensionxyz/multisig-client/store"
	"github.com/dymensionxyz/multisig-client/types"
	"github.com/dymensionxyz/multisig-client/types/cw3"
)

const (
	defaultRecentLimit = 20
	maxPageLimit       = 100
)

type MultisigHandler struct {
	book     addressBook
	queries  multisigQueries
	wallet   walletProvider
	denom    string
	exponent int
}

type addressBook interface {
	Lookup(ctx context.Context, address string) (*store.Multisig, bool, error)
	Recent(ctx context.Context, limit int) ([]*store.Multisig, error)
}

type multisigQueries interface {
	ReverseProposals(ctx context.Context, contract string, startBefore *uint64, limit uint32) (cw3.ProposalListResponse, error)
	ProposalWithVotes(ctx context.Context, contract string, proposalID uint64) (multisig.ProposalDetail, error)
	Threshold(ctx context.Context, contract string) (cw3.ThresholdResponse, error)
	ListVoters(ctx context.Context, contract string) (cw3.VoterListResponse, error)
	Balance(ctx context.Context, address, denom string) (sdk.Coin, error)
}

func NewMultisigHandler(book addressBook, queries multisigQueries, wallet walletProvider, denom string, exponent int) MultisigHandler {
	return MultisigHandler{
		book:     book,
		queries:  queries,
		wallet:   wallet,
		denom:    denom,
		exponent: exponent,
	}
}

func (h MultisigHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultRecentLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	recent, err := h.book.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if recent == nil {
		recent = []*store.Multisig{}
	}
	writeJSON(w, http.StatusOK, recent)
}

type multisigResponse struct {
	Address   string                `json:"address"`
	Label     string                `json:"label"`
	Cached    bool                  `json:"cached"`
	Balance   string                `json:"balance"`
	Denom     string                `json:"denom"`
	Threshold cw3.ThresholdResponse `json:"threshold"`
	Voters    []cw3.VoterDetail     `json:"voters"`
}

func (h MultisigHandler) GetMultisig(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	if address == "" {
		http.Error(w, "missing multisig address", http.StatusBadRequest)
		return
	}

	ms, cached, err := h.book.Lookup(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := multisigResponse{
		Address: ms.Address,
		Label:   ms.Label,
		Cached:  cached,
		Denom:   h.denom,
	}

	// the cached entry has the label only
	if !cached {
		balance, err := h.queries.Balance(r.Context(), address, h.denom)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Balance = multisig.FormatBalance(balance, h.exponent)

		if resp.Threshold, err = h.queries.Threshold(r.Context(), address); err != nil {
			writeError(w, err)
			return
		}
		voters, err := h.queries.ListVoters(r.Context(), address)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Voters = voters.Voters
	}

	writeJSON(w, http.StatusOK, resp)
}

type proposalPageResponse struct {
	Proposals   []cw3.ProposalResponse `json:"proposals"`
	StartBefore *uint64                `json:"next_start_before,omitempty"`
}

func (h MultisigHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	limit, err := queryInt(r, "limit", int(multisig.DefaultPageSize))
	if err != nil {
		writeError(w, err)
		return
	}
	limit = min(limit, maxPageLimit)

	var startBefore *uint64
	if raw := r.URL.Query().Get("start_before"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, types.ErrInvalidInput.Wrapf("invalid start_before %q", raw))
			return
		}
		startBefore = &v
	}

	page, err := h.queries.ReverseProposals(r.Context(), address, startBefore, uint32(limit))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := proposalPageResponse{Proposals: page.Proposals}
	if resp.Proposals == nil {
		resp.Proposals = []cw3.ProposalResponse{}
	}
	if len(page.Proposals) == limit {
		last := page.Proposals[len(page.Proposals)-1].ID
		resp.StartBefore = &last
	}
	writeJSON(w, http.StatusOK, resp)
}

type proposalResponse struct {
	multisig.ProposalDetail
	Messages   []codec.DecodedMessage `json:"messages"`
	WalletVote *cw3.VoteInfo          `json:"wallet_vote,omitempty"`
	CanVote    bool                   `json:"can_vote"`
	CanExecute bool                   `json:"can_execute"`
	CanClose   bool                   `json:"can_close"`
}

func (h MultisigHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["address"]

	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		writeError(w, types.ErrInvalidInput.Wrapf("invalid proposal id %q", vars["id"]))
		return
	}

	detail, err := h.queries.ProposalWithVotes(r.Context(), address, id)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := proposalResponse{
		ProposalDetail: detail,
		Messages:       codec.DecodeEmbeddedPayloads(detail.Proposal.Msgs),
		CanExecute:     detail.Proposal.Status.CanExecute(),
		CanClose:       detail.Proposal.Status.CanClose(),
	}

	if wallet := h.wallet.Address(); wallet != "" {
		if vote, ok := (cw3.VoteListResponse{Votes: detail.Votes}).VoteOf(wallet); ok {
			resp.WalletVote = &vote
		}
		resp.CanVote = detail.Proposal.Status.CanVote() && resp.WalletVote == nil
	}

	writeJSON(w, http.StatusOK, resp)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, types.ErrInvalidInput.Wrapf("invalid %s %q", key, raw)
	}
	return v, nil
}
