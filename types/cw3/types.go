package cw3

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type Vote string

const (
	VoteYes     Vote = "yes"
	VoteNo      Vote = "no"
	VoteAbstain Vote = "abstain"
	VoteVeto    Vote = "veto"
)

func (v Vote) Validate() bool {
	return v == VoteYes || v == VoteNo || v == VoteAbstain || v == VoteVeto
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusOpen     Status = "open"
	StatusPassed   Status = "passed"
	StatusRejected Status = "rejected"
	StatusExecuted Status = "executed"
)

// CanExecute reports whether an execute call is meaningful for the status.
func (s Status) CanExecute() bool {
	return s == StatusPassed
}

// CanClose reports whether a close call is meaningful for the status.
func (s Status) CanClose() bool {
	return s == StatusRejected
}

// CanVote reports whether the proposal still accepts votes.
func (s Status) CanVote() bool {
	return s == StatusOpen
}

// Expiration represents the point a proposal stops accepting votes.
// Exactly one field is set.
type Expiration struct {
	AtHeight *uint64   `json:"at_height,omitempty"`
	AtTime   *string   `json:"at_time,omitempty"` // nanoseconds since epoch, as a Uint64 string
	Never    *struct{} `json:"never,omitempty"`
}

func ExpireAtHeight(height uint64) *Expiration {
	return &Expiration{AtHeight: &height}
}

func ExpireAtTime(t time.Time) *Expiration {
	nanos := strconv.FormatInt(t.UnixNano(), 10)
	return &Expiration{AtTime: &nanos}
}

func ExpireNever() *Expiration {
	return &Expiration{Never: &struct{}{}}
}

// Time returns the expiration time for time based expirations.
func (e Expiration) Time() (time.Time, bool) {
	if e.AtTime == nil {
		return time.Time{}, false
	}
	nanos, err := strconv.ParseInt(*e.AtTime, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(0, nanos).UTC(), true
}

func (e Expiration) String() string {
	switch {
	case e.AtHeight != nil:
		return fmt.Sprintf("at height %d", *e.AtHeight)
	case e.AtTime != nil:
		if t, ok := e.Time(); ok {
			return "at " + t.Format(time.RFC3339)
		}
		return "at time " + *e.AtTime
	case e.Never != nil:
		return "never"
	}
	return "unknown"
}

type ProposalResponse struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Msgs        []json.RawMessage `json:"msgs"`
	Status      Status            `json:"status"`
	Expires     Expiration        `json:"expires"`
	Threshold   ThresholdResponse `json:"threshold"`
	Proposer    string            `json:"proposer,omitempty"`
	Deposit     json.RawMessage   `json:"deposit,omitempty"`
}

type ProposalListResponse struct {
	Proposals []ProposalResponse `json:"proposals"`
}

type ThresholdResponse struct {
	AbsoluteCount *struct {
		Weight      uint64 `json:"weight"`
		TotalWeight uint64 `json:"total_weight"`
	} `json:"absolute_count,omitempty"`
	AbsolutePercentage *struct {
		Percentage  string `json:"percentage"`
		TotalWeight uint64 `json:"total_weight"`
	} `json:"absolute_percentage,omitempty"`
	ThresholdQuorum *struct {
		Threshold   string `json:"threshold"`
		Quorum      string `json:"quorum"`
		TotalWeight uint64 `json:"total_weight"`
	} `json:"threshold_quorum,omitempty"`
}

type VoteInfo struct {
	ProposalID uint64 `json:"proposal_id"`
	Voter      string `json:"voter"`
	Vote       Vote   `json:"vote"`
	Weight     uint64 `json:"weight"`
}

type VoteListResponse struct {
	Votes []VoteInfo `json:"votes"`
}

type VoteResponse struct {
	Vote *VoteInfo `json:"vote"`
}

type VoterDetail struct {
	Addr   string `json:"addr"`
	Weight uint64 `json:"weight"`
}

type VoterListResponse struct {
	Voters []VoterDetail `json:"voters"`
}

// VoteOf returns the vote cast by voter, if any.
func (r VoteListResponse) VoteOf(voter string) (VoteInfo, bool) {
	for _, v := range r.Votes {
		if v.Voter == voter {
			return v, true
		}
	}
	return VoteInfo{}, false
}
