package multisig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cosmos/cosmos-sdk/client"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/tx"
)

// errConfirmTimeout means polling stopped before the tx was found, either
// because the confirmation budget ran out or the caller went away. The tx
// may still be included later.
var errConfirmTimeout = errors.New("stopped waiting for tx")

const (
	defaultConfirmTimeout = 20 * time.Second
	defaultPollInterval   = time.Second
)

type getTxFn func(ctx context.Context, clientCtx client.Context, txHash string) (*tx.GetTxResponse, error)

func getTxFromService(ctx context.Context, clientCtx client.Context, txHash string) (*tx.GetTxResponse, error) {
	return tx.NewServiceClient(clientCtx).GetTx(ctx, &tx.GetTxRequest{Hash: txHash})
}

// waitForTx polls the tx service until txHash is found, timeout expires or
// ctx is done. A tx included with a non zero code is returned together with
// an error. Non positive durations fall back to the defaults.
func waitForTx(
	ctx context.Context,
	getTx getTxFn,
	clientCtx client.Context,
	txHash string,
	timeout, interval time.Duration,
) (*sdk.TxResponse, error) {
	if timeout <= 0 {
		timeout = defaultConfirmTimeout
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	ticker := time.NewTicker(interval)

	defer func() {
		cancel()
		ticker.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w %s: %w", errConfirmTimeout, txHash, ctx.Err())
		case <-ticker.C:
			resp, err := getTx(ctx, clientCtx, txHash)
			if err != nil || resp == nil || resp.TxResponse == nil {
				continue
			}
			if resp.TxResponse.Code == 0 {
				return resp.TxResponse, nil
			}
			return resp.TxResponse, fmt.Errorf("tx failed with code %d: %s", resp.TxResponse.Code, resp.TxResponse.RawLog)
		}
	}
}
