package multisig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.uber.org/zap"

	"github.com/dymensionxyz/multisig-client/config"
	"github.com/dymensionxyz/multisig-client/types"
)

type sessionSource interface {
	Session() (*Session, error)
}

// BroadcastError is a submission that failed at or after broadcast. Err is
// the classified error. It matches types.ErrBroadcast with errors.Is.
type BroadcastError struct {
	TxHash string
	Code   uint32
	Err    error
}

func (e *BroadcastError) Error() string {
	return e.Err.Error()
}

func (e *BroadcastError) Unwrap() error {
	return e.Err
}

func (e *BroadcastError) Is(target error) bool {
	return target == types.ErrBroadcast
}

// TxResult is the outcome of a submission. When Pending is set the tx was
// broadcast but its inclusion could not be confirmed in time, and Response
// holds the broadcast response only.
type TxResult struct {
	SubmissionID string
	TxHash       string
	Height       int64
	Pending      bool
	Response     *sdk.TxResponse
}

// Attribute returns the first contract event attribute named key.
func (r *TxResult) Attribute(key string) (string, bool) {
	return ExtractAttribute(r.Response, key)
}

// Dispatcher submits contract transactions for the connected wallet. Each
// submission is attempted exactly once.
type Dispatcher struct {
	sessions   sessionSource
	tracker    *submissionTracker
	classifier *ErrorClassifier
	logger     *zap.Logger

	getTx          getTxFn
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

func NewDispatcher(sessions sessionSource, cfg config.Config, logger *zap.Logger) *Dispatcher {
	confirmTimeout := cfg.Tx.ConfirmTimeout
	if confirmTimeout <= 0 {
		confirmTimeout = defaultConfirmTimeout
	}
	pollInterval := cfg.Tx.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Dispatcher{
		sessions:       sessions,
		tracker:        newSubmissionTracker(),
		classifier:     NewErrorClassifier(cfg.ChainID, cfg.Tx.ContractErrorMarker),
		logger:         logger.With(zap.String("module", "dispatcher")),
		getTx:          getTxFromService,
		confirmTimeout: confirmTimeout,
		pollInterval:   pollInterval,
	}
}

// SubmitInstantiate instantiates a contract from codeID with the sender as
// admin.
func (d *Dispatcher) SubmitInstantiate(ctx context.Context, sender string, codeID uint64, label string, initMsg any) (*TxResult, error) {
	bz, err := json.Marshal(initMsg)
	if err != nil {
		return nil, types.ErrInvalidInput.Wrapf("failed to marshal instantiate msg: %v", err)
	}

	msg := &wasmtypes.MsgInstantiateContract{
		Sender: sender,
		Admin:  sender,
		CodeID: codeID,
		Label:  label,
		Msg:    bz,
		Funds:  sdk.NewCoins(),
	}

	d.logger.Debug("instantiate msg", zap.Uint64("code_id", codeID), zap.String("label", label), zap.ByteString("msg", bz))

	return d.submit(ctx, sender, msg)
}

// SubmitExecute executes executeMsg on contract, attaching funds.
func (d *Dispatcher) SubmitExecute(ctx context.Context, sender, contract string, executeMsg any, funds sdk.Coins) (*TxResult, error) {
	bz, err := json.Marshal(executeMsg)
	if err != nil {
		return nil, types.ErrInvalidInput.Wrapf("failed to marshal execute msg: %v", err)
	}

	msg := &wasmtypes.MsgExecuteContract{
		Sender:   sender,
		Contract: contract,
		Msg:      bz,
		Funds:    funds,
	}

	d.logger.Debug("execute msg", zap.String("contract", contract), zap.ByteString("msg", bz))

	return d.submit(ctx, sender, msg)
}

// LastSubmission reports the state of the latest submission for sender.
func (d *Dispatcher) LastSubmission(sender string) Submission {
	return d.tracker.state(sender)
}

func (d *Dispatcher) submit(ctx context.Context, sender string, msg sdk.Msg) (*TxResult, error) {
	session, err := d.sessions.Session()
	if err != nil {
		return nil, err
	}

	if err := msg.ValidateBasic(); err != nil {
		return nil, types.ErrInvalidInput.Wrap(err.Error())
	}

	sub, err := d.tracker.begin(sender)
	if err != nil {
		return nil, err
	}

	logger := d.logger.With(zap.String("submission", sub.ID), zap.String("sender", sender))

	rsp, err := session.Broadcast(ctx, sender, msg)
	if err != nil {
		if errors.Is(err, types.ErrSenderMismatch) {
			d.tracker.fail(sub, "", err)
			return nil, err
		}
		berr := &BroadcastError{Err: d.classifier.Classify(err)}
		d.tracker.fail(sub, "", berr)
		logger.Error("failed to broadcast tx", zap.Error(err))
		return nil, berr
	}

	if rsp.TxResponse == nil {
		berr := &BroadcastError{Err: fmt.Errorf("empty broadcast response")}
		d.tracker.fail(sub, "", berr)
		return nil, berr
	}

	txHash := rsp.TxHash
	if rsp.Code != 0 {
		berr := &BroadcastError{
			TxHash: txHash,
			Code:   rsp.Code,
			Err:    d.classifier.Classify(fmt.Errorf("tx failed with code %d: %s", rsp.Code, rsp.RawLog)),
		}
		d.tracker.fail(sub, txHash, berr)
		logger.Error("tx rejected", zap.String("tx_hash", txHash), zap.Uint32("code", rsp.Code), zap.String("log", rsp.RawLog))
		return nil, berr
	}

	logger.Info("tx broadcast", zap.String("tx_hash", txHash))

	txResp, err := waitForTx(ctx, d.getTx, session.Context(), txHash, d.confirmTimeout, d.pollInterval)
	if err != nil {
		if errors.Is(err, errConfirmTimeout) {
			d.tracker.pending(sub, txHash)
			logger.Warn("tx not confirmed yet", zap.String("tx_hash", txHash), zap.Error(err))
			return &TxResult{
				SubmissionID: sub.ID,
				TxHash:       txHash,
				Pending:      true,
				Response:     rsp.TxResponse,
			}, nil
		}

		berr := &BroadcastError{TxHash: txHash, Err: d.classifier.Classify(err)}
		if txResp != nil {
			berr.Code = txResp.Code
		}
		d.tracker.fail(sub, txHash, berr)
		logger.Error("tx failed", zap.String("tx_hash", txHash), zap.Error(err))
		return nil, berr
	}

	d.tracker.settle(sub, txHash)
	logger.Info("tx confirmed", zap.String("tx_hash", txHash), zap.Int64("height", txResp.Height))

	return &TxResult{
		SubmissionID: sub.ID,
		TxHash:       txHash,
		Height:       txResp.Height,
		Response:     txResp,
	}, nil
}
