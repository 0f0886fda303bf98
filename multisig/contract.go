package multisig

import (
	"context"
	"strconv"
	"strings"

	wasmvmtypes "github.com/CosmWasm/wasmvm/types"

	"github.com/dymensionxyz/multisig-client/codec"
	"github.com/dymensionxyz/multisig-client/types"
	"github.com/dymensionxyz/multisig-client/types/cw3"
)

const errAllFieldsRequired = "All fields are required."

// ValidateInstantiate checks a multisig instantiation before it is built.
func ValidateInstantiate(label string, msg cw3.InstantiateMsg) error {
	if strings.TrimSpace(label) == "" {
		return types.ErrInvalidInput.Wrapf("%s label is empty", errAllFieldsRequired)
	}
	if msg.Threshold.AbsoluteCount == nil || msg.Threshold.AbsoluteCount.Weight == 0 {
		return types.ErrInvalidInput.Wrapf("%s threshold weight must be positive", errAllFieldsRequired)
	}
	if msg.MaxVotingPeriod.Time == nil && msg.MaxVotingPeriod.Height == nil ||
		msg.MaxVotingPeriod.Time != nil && *msg.MaxVotingPeriod.Time == 0 ||
		msg.MaxVotingPeriod.Height != nil && *msg.MaxVotingPeriod.Height == 0 {
		return types.ErrInvalidInput.Wrapf("%s voting period must be positive", errAllFieldsRequired)
	}
	if len(msg.Voters) == 0 {
		return types.ErrInvalidInput.Wrapf("%s at least one voter is required", errAllFieldsRequired)
	}

	var total uint64
	seen := make(map[string]struct{}, len(msg.Voters))
	for i, v := range msg.Voters {
		if strings.TrimSpace(v.Addr) == "" || v.Weight == 0 {
			return types.ErrInvalidInput.Wrapf("%s voter %d needs an address and a positive weight", errAllFieldsRequired, i)
		}
		if _, ok := seen[v.Addr]; ok {
			return types.ErrInvalidInput.Wrapf("duplicate voter %s", v.Addr)
		}
		seen[v.Addr] = struct{}{}
		total += v.Weight
	}
	if msg.Threshold.AbsoluteCount.Weight > total {
		return types.ErrInvalidInput.Wrapf("threshold %d exceeds total voter weight %d", msg.Threshold.AbsoluteCount.Weight, total)
	}
	return nil
}

// CreateMultisig instantiates a new multisig and returns its address. The
// address is empty when the result is still pending.
func (d *Dispatcher) CreateMultisig(ctx context.Context, sender string, codeID uint64, label string, msg cw3.InstantiateMsg) (string, *TxResult, error) {
	if err := ValidateInstantiate(label, msg); err != nil {
		return "", nil, err
	}

	res, err := d.SubmitInstantiate(ctx, sender, codeID, label, msg)
	if err != nil {
		return "", nil, err
	}
	if res.Pending {
		return "", res, nil
	}

	addr, ok := res.Attribute(types.AttributeKeyContractAddress)
	if !ok {
		addr, ok = InstantiatedAddress(res.Response)
	}
	if !ok {
		return "", res, types.ErrNotFound.Wrapf("contract address not found in tx %s", res.TxHash)
	}
	return addr, res, nil
}

// Propose submits a proposal and returns its id. The id is zero when the
// result is still pending.
func (d *Dispatcher) Propose(
	ctx context.Context,
	sender, contract, title, description string,
	msgs []wasmvmtypes.CosmosMsg,
	latest *cw3.Expiration,
) (uint64, *TxResult, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" || len(msgs) == 0 {
		return 0, nil, types.ErrInvalidInput.Wrap(errAllFieldsRequired)
	}
	for i, m := range msgs {
		for _, coin := range bankCoins(m) {
			if err := codec.ValidateCoin(coin); err != nil {
				return 0, nil, types.ErrInvalidInput.Wrapf("message %d: %v", i, err)
			}
		}
	}

	execMsg := cw3.ExecuteMsg{Propose: &cw3.Propose{
		Title:       title,
		Description: description,
		Msgs:        msgs,
		Latest:      latest,
	}}

	res, err := d.SubmitExecute(ctx, sender, contract, execMsg, nil)
	if err != nil {
		return 0, nil, err
	}
	if res.Pending {
		return 0, res, nil
	}

	raw, ok := res.Attribute(types.AttributeKeyProposalID)
	if !ok {
		return 0, res, types.ErrNotFound.Wrapf("proposal id not found in tx %s", res.TxHash)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, res, types.ErrDecode.Wrapf("invalid proposal id %q", raw)
	}
	return id, res, nil
}

func (d *Dispatcher) Vote(ctx context.Context, sender, contract string, proposalID uint64, vote cw3.Vote) (*TxResult, error) {
	if !vote.Validate() {
		return nil, types.ErrInvalidInput.Wrapf("invalid vote %q", vote)
	}
	return d.SubmitExecute(ctx, sender, contract, cw3.ExecuteMsg{
		Vote: &cw3.VoteMsg{ProposalID: proposalID, Vote: vote},
	}, nil)
}

func (d *Dispatcher) Execute(ctx context.Context, sender, contract string, proposalID uint64) (*TxResult, error) {
	return d.SubmitExecute(ctx, sender, contract, cw3.ExecuteMsg{
		Execute: &cw3.Execute{ProposalID: proposalID},
	}, nil)
}

func (d *Dispatcher) Close(ctx context.Context, sender, contract string, proposalID uint64) (*TxResult, error) {
	return d.SubmitExecute(ctx, sender, contract, cw3.ExecuteMsg{
		Close: &cw3.Close{ProposalID: proposalID},
	}, nil)
}

func bankCoins(msg wasmvmtypes.CosmosMsg) []wasmvmtypes.Coin {
	switch {
	case msg.Bank != nil && msg.Bank.Send != nil:
		return msg.Bank.Send.Amount
	case msg.Bank != nil && msg.Bank.Burn != nil:
		return msg.Bank.Burn.Amount
	case msg.Wasm != nil && msg.Wasm.Execute != nil:
		return msg.Wasm.Execute.Funds
	}
	return nil
}
