package multisig

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassifier_Classify(t *testing.T) {
	tests := []struct {
		name         string
		marker       string
		err          error
		wantMessage  string
		wantCategory ErrorCategory
	}{
		{
			name:         "insufficient funds",
			err:          errors.New("rpc error: code = Unknown desc = 10inj is smaller than 20inj: insufficient funds"),
			wantMessage:  msgInsufficientFunds,
			wantCategory: CategoryFunds,
		}, {
			name:         "one tx per block",
			err:          errors.New("broadcast failed: only one tx is allowed per block"),
			wantMessage:  msgOneTxPerBlock,
			wantCategory: CategorySequence,
		}, {
			name:         "sequence mismatch",
			err:          errors.New("account sequence mismatch, expected 5, got 4: incorrect account sequence"),
			wantMessage:  msgOneTxPerBlock,
			wantCategory: CategorySequence,
		}, {
			name:         "wrong chain id",
			err:          errors.New(`Provided chainId "5" does not match the currently active chain`),
			wantMessage:  "Wrong network, switch your wallet to chain injective-1",
			wantCategory: CategoryNetwork,
		}, {
			name:         "contract error",
			err:          errors.New("failed to execute message; message index: 0: Neptune Error - Unauthorized: execute wasm contract failed"),
			wantMessage:  "Unauthorized",
			wantCategory: CategoryContract,
		}, {
			name:         "custom marker",
			marker:       "Helix",
			err:          errors.New("Helix Error - Proposal is not open: execute wasm contract failed"),
			wantMessage:  "Proposal is not open",
			wantCategory: CategoryContract,
		}, {
			name:         "marker without prefix",
			err:          errors.New("Neptune failure"),
			wantMessage:  "Neptune failure",
			wantCategory: CategoryContract,
		}, {
			name:         "contract marker wins over chain id text",
			err:          errors.New("Neptune Error - wrong chain: execute wasm contract failed"),
			wantMessage:  "wrong chain",
			wantCategory: CategoryContract,
		}, {
			name:         "funds rule wins over contract marker",
			err:          errors.New("Neptune Error - insufficient funds: fail"),
			wantMessage:  msgInsufficientFunds,
			wantCategory: CategoryFunds,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewErrorClassifier("injective-1", tt.marker)
			got := c.Classify(tt.err)

			var uerr *UserError
			require.True(t, errors.As(got, &uerr), "expected a UserError, got %v", got)
			assert.Equal(t, tt.wantMessage, uerr.Message)
			assert.Equal(t, tt.wantCategory, uerr.Category)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestErrorClassifier_Passthrough(t *testing.T) {
	c := NewErrorClassifier("injective-1", "")

	raw := fmt.Errorf("connection refused")
	assert.Same(t, raw, c.Classify(raw))
	assert.Nil(t, c.Classify(nil))

	// already classified errors are not classified again
	classified := c.Classify(errors.New("insufficient funds"))
	assert.Same(t, classified, c.Classify(classified))
}
