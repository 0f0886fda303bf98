// Package cw3 holds the JSON message shapes of the cw3 multisig contract.
package cw3

import (
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
)

type InstantiateMsg struct {
	MaxVotingPeriod Duration  `json:"max_voting_period"`
	Threshold       Threshold `json:"threshold"`
	Voters          []Voter   `json:"voters"`
}

type Voter struct {
	Addr   string `json:"addr"`
	Weight uint64 `json:"weight"`
}

// Duration is a delta of time or blocks. Exactly one field is set.
type Duration struct {
	Height *uint64 `json:"height,omitempty"`
	Time   *uint64 `json:"time,omitempty"`
}

// Threshold defines how tallies happen. Exactly one field is set.
type Threshold struct {
	AbsoluteCount      *AbsoluteCount      `json:"absolute_count,omitempty"`
	AbsolutePercentage *AbsolutePercentage `json:"absolute_percentage,omitempty"`
	ThresholdQuorum    *ThresholdQuorum    `json:"threshold_quorum,omitempty"`
}

type AbsoluteCount struct {
	Weight uint64 `json:"weight"`
}

type AbsolutePercentage struct {
	// Decimal string with 18 fractional digits
	Percentage string `json:"percentage"`
}

type ThresholdQuorum struct {
	Threshold string `json:"threshold"`
	Quorum    string `json:"quorum"`
}

type ExecuteMsg struct {
	Propose *Propose `json:"propose,omitempty"`
	Vote    *VoteMsg `json:"vote,omitempty"`
	Execute *Execute `json:"execute,omitempty"`
	Close   *Close   `json:"close,omitempty"`
}

type Propose struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Msgs        []wasmvmtypes.CosmosMsg `json:"msgs"`
	Latest      *Expiration             `json:"latest,omitempty"`
}

type VoteMsg struct {
	ProposalID uint64 `json:"proposal_id"`
	Vote       Vote   `json:"vote"`
}

type Execute struct {
	ProposalID uint64 `json:"proposal_id"`
}

type Close struct {
	ProposalID uint64 `json:"proposal_id"`
}

type QueryMsg struct {
	Threshold        *struct{}         `json:"threshold,omitempty"`
	Proposal         *ProposalQuery    `json:"proposal,omitempty"`
	ListProposals    *ListProposals    `json:"list_proposals,omitempty"`
	ReverseProposals *ReverseProposals `json:"reverse_proposals,omitempty"`
	Vote             *VoteQuery        `json:"vote,omitempty"`
	ListVotes        *ListVotes        `json:"list_votes,omitempty"`
	Voter            *VoterQuery       `json:"voter,omitempty"`
	ListVoters       *ListVoters       `json:"list_voters,omitempty"`
}

type ProposalQuery struct {
	ProposalID uint64 `json:"proposal_id"`
}

type ListProposals struct {
	Limit      *uint32 `json:"limit,omitempty"`
	StartAfter *uint64 `json:"start_after,omitempty"`
}

type ReverseProposals struct {
	Limit       *uint32 `json:"limit,omitempty"`
	StartBefore *uint64 `json:"start_before,omitempty"`
}

type VoteQuery struct {
	ProposalID uint64 `json:"proposal_id"`
	Voter      string `json:"voter"`
}

type ListVotes struct {
	ProposalID uint64  `json:"proposal_id"`
	Limit      *uint32 `json:"limit,omitempty"`
	StartAfter *string `json:"start_after,omitempty"`
}

type VoterQuery struct {
	Address string `json:"address"`
}

type ListVoters struct {
	Limit      *uint32 `json:"limit,omitempty"`
	StartAfter *string `json:"start_after,omitempty"`
}
