package multisig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory groups failures by what the user can do about them.
type ErrorCategory string

const (
	CategoryFunds    ErrorCategory = "insufficient_funds"
	CategorySequence ErrorCategory = "sequence"
	CategoryNetwork  ErrorCategory = "wrong_network"
	CategoryContract ErrorCategory = "contract"
)

const (
	msgInsufficientFunds = "Insufficient funds, check that you have enough to pay for gas fees"
	msgOneTxPerBlock     = "Only one transaction is allowed per block, please try again in a few seconds"

	defaultContractErrorMarker = "Neptune"
	contractErrorPrefix        = "Error - "
	contractErrorSuffix        = ": "
)

// UserError is a chain failure rewritten into a message for the user. The
// original error is kept for errors.Is/As.
type UserError struct {
	Category ErrorCategory
	Message  string
	err      error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.err
}

type classifyRule struct {
	category ErrorCategory
	matches  func(text string) bool
	message  func(text string) string
}

// ErrorClassifier maps raw broadcast failures to user facing messages. Rules
// are evaluated in order and the first match wins; an error matching no rule
// is returned unchanged.
type ErrorClassifier struct {
	chainID string
	rules   []classifyRule
}

func NewErrorClassifier(chainID, contractMarker string) *ErrorClassifier {
	if contractMarker == "" {
		contractMarker = defaultContractErrorMarker
	}
	c := &ErrorClassifier{chainID: chainID}
	c.rules = []classifyRule{
		{
			category: CategoryFunds,
			matches:  containsAny("insufficient funds", "insufficient fee"),
			message:  constant(msgInsufficientFunds),
		},
		{
			category: CategorySequence,
			matches:  containsAny("one tx is allowed per block", "account sequence mismatch", "incorrect account sequence"),
			message:  constant(msgOneTxPerBlock),
		},
		{
			category: CategoryContract,
			matches: func(text string) bool {
				return strings.Contains(text, contractMarker)
			},
			message: contractMessage,
		},
		{
			category: CategoryNetwork,
			matches:  isWrongNetwork,
			message:  c.wrongNetworkMessage,
		},
	}
	return c
}

func (c *ErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}
	var uerr *UserError
	if errors.As(err, &uerr) {
		return err
	}

	text := err.Error()
	for _, rule := range c.rules {
		if rule.matches(text) {
			return &UserError{
				Category: rule.category,
				Message:  rule.message(text),
				err:      err,
			}
		}
	}
	return err
}

func isWrongNetwork(text string) bool {
	return containsAny("provided chainid", "invalid chain-id", "chain-id mismatch", "wrong chain")(text)
}

func (c *ErrorClassifier) wrongNetworkMessage(string) string {
	if c.chainID == "" {
		return "Wrong network, switch your wallet to the configured chain"
	}
	return fmt.Sprintf("Wrong network, switch your wallet to chain %s", c.chainID)
}

// contractMessage extracts the text between the contract error prefix and
// the next separator. The whole text is used when the prefix is missing.
func contractMessage(text string) string {
	_, after, found := strings.Cut(text, contractErrorPrefix)
	if !found {
		return text
	}
	msg, _, _ := strings.Cut(after, contractErrorSuffix)
	return strings.TrimSpace(msg)
}

func containsAny(needles ...string) func(string) bool {
	return func(text string) bool {
		lower := strings.ToLower(text)
		for _, n := range needles {
			if strings.Contains(lower, n) {
				return true
			}
		}
		return false
	}
}

func constant(msg string) func(string) string {
	return func(string) string { return msg }
}
