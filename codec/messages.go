package codec

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	wasmvmtypes "github.com/CosmWasm/wasmvm/types"

	"github.com/dymensionxyz/multisig-client/types"
)

// ErrInvalidJSONMessage is the message shown when proposal messages can't be parsed.
const ErrInvalidJSONMessage = "Error in JSON message."

var amountPattern = regexp.MustCompile(`^[0-9]+$`)

// binaryPayloadKinds are the wasm message variants carrying a Binary msg field.
var binaryPayloadKinds = []string{"execute", "instantiate", "instantiate2", "migrate"}

// ParseMessages turns user authored text into proposal messages. The text may
// be a JSON array, a single JSON object, or base64 of either. Embedded wasm
// payloads written as JSON documents are canonicalized to binary.
func ParseMessages(input string) ([]wasmvmtypes.CosmosMsg, error) {
	body, err := messageArray(input)
	if err != nil {
		return nil, err
	}

	var tree []any
	if err := unmarshalStrict(body, &tree); err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidInput, ErrInvalidJSONMessage)
	}
	if len(tree) == 0 {
		return nil, errorsmod.Wrap(types.ErrInvalidInput, "at least one message is required")
	}

	for _, msg := range tree {
		if err := canonicalizePayloads(msg); err != nil {
			return nil, err
		}
	}

	canonical, err := marshalCompact(tree)
	if err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidInput, err.Error())
	}

	var msgs []wasmvmtypes.CosmosMsg
	if err := unmarshalStrict(canonical, &msgs); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidInput, "%s %v", ErrInvalidJSONMessage, err)
	}

	for i, msg := range msgs {
		if err := validateMessage(msg); err != nil {
			return nil, errorsmod.Wrapf(types.ErrInvalidInput, "message %d: %v", i, err)
		}
	}

	return msgs, nil
}

func messageArray(input string) ([]byte, error) {
	trimmed := strings.TrimSpace(input)

	switch DetectEncoding(trimmed) {
	case EncodingJSONArray:
		return []byte(trimmed), nil
	case EncodingJSON:
		if !strings.HasPrefix(trimmed, "{") {
			return nil, errorsmod.Wrap(types.ErrInvalidInput, "messages must be a JSON array or object")
		}
		return []byte("[" + trimmed + "]"), nil
	case EncodingBase64:
		decoded, err := DecodeFromBase64(trimmed)
		if err != nil {
			return nil, errorsmod.Wrap(types.ErrInvalidInput, err.Error())
		}
		// a base64 payload must hold JSON, not another layer of base64
		if enc := DetectEncoding(decoded); enc != EncodingJSON && enc != EncodingJSONArray {
			return nil, errorsmod.Wrap(types.ErrInvalidInput, ErrInvalidJSONMessage)
		}
		return messageArray(decoded)
	}

	return nil, errorsmod.Wrap(types.ErrInvalidInput, ErrInvalidJSONMessage)
}

// canonicalizePayloads replaces embedded wasm payloads given as JSON objects
// or arrays with their base64 encoding, in place.
func canonicalizePayloads(msg any) error {
	obj, ok := msg.(map[string]any)
	if !ok {
		return errorsmod.Wrap(types.ErrInvalidInput, "each message must be a JSON object")
	}
	wasm, ok := obj["wasm"].(map[string]any)
	if !ok {
		return nil
	}

	for _, kind := range binaryPayloadKinds {
		holder, ok := wasm[kind].(map[string]any)
		if !ok {
			continue
		}
		switch payload := holder["msg"].(type) {
		case map[string]any, []any:
			bz, err := marshalCompact(payload)
			if err != nil {
				return errorsmod.Wrapf(types.ErrInvalidInput, "wasm %s msg: %v", kind, err)
			}
			holder["msg"] = base64.StdEncoding.EncodeToString(bz)
		case string:
			if _, err := DecodeJSONFromBase64(payload); err != nil {
				return errorsmod.Wrapf(types.ErrInvalidInput, "wasm %s msg: %v", kind, err)
			}
		}
	}
	return nil
}

func validateMessage(msg wasmvmtypes.CosmosMsg) error {
	variants := 0
	for _, set := range []bool{
		msg.Bank != nil,
		len(msg.Custom) > 0,
		msg.Distribution != nil,
		msg.Gov != nil,
		msg.IBC != nil,
		msg.Staking != nil,
		msg.Stargate != nil,
		msg.Wasm != nil,
	} {
		if set {
			variants++
		}
	}
	if variants != 1 {
		return fmt.Errorf("expected exactly one message variant, got %d", variants)
	}

	var coins []wasmvmtypes.Coin
	switch {
	case msg.Bank != nil && msg.Bank.Send != nil:
		if msg.Bank.Send.ToAddress == "" {
			return fmt.Errorf("bank send requires to_address")
		}
		coins = msg.Bank.Send.Amount
	case msg.Bank != nil && msg.Bank.Burn != nil:
		coins = msg.Bank.Burn.Amount
	case msg.Wasm != nil && msg.Wasm.Execute != nil:
		if msg.Wasm.Execute.ContractAddr == "" {
			return fmt.Errorf("wasm execute requires contract_addr")
		}
		coins = msg.Wasm.Execute.Funds
	case msg.Wasm != nil && msg.Wasm.Instantiate != nil:
		coins = msg.Wasm.Instantiate.Funds
	case msg.Staking != nil && msg.Staking.Delegate != nil:
		coins = []wasmvmtypes.Coin{msg.Staking.Delegate.Amount}
	case msg.Staking != nil && msg.Staking.Undelegate != nil:
		coins = []wasmvmtypes.Coin{msg.Staking.Undelegate.Amount}
	case msg.Staking != nil && msg.Staking.Redelegate != nil:
		coins = []wasmvmtypes.Coin{msg.Staking.Redelegate.Amount}
	}

	for _, coin := range coins {
		if err := ValidateCoin(coin); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCoin checks that amount is a non-negative integer string that fits
// the chain's integer range.
func ValidateCoin(coin wasmvmtypes.Coin) error {
	if coin.Denom == "" {
		return fmt.Errorf("coin denom is required")
	}
	if !amountPattern.MatchString(coin.Amount) {
		return fmt.Errorf("invalid amount %q for %s", coin.Amount, coin.Denom)
	}
	if _, ok := math.NewIntFromString(coin.Amount); !ok {
		return fmt.Errorf("amount %s%s is out of range", coin.Amount, coin.Denom)
	}
	return nil
}
