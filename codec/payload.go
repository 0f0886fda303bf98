package codec

import (
	"encoding/json"

	wasmvmtypes "github.com/CosmWasm/wasmvm/types"
)

// embeddedPayloadKinds are the wasm message variants whose msg field is
// itself base64 encoded JSON.
var embeddedPayloadKinds = []string{"execute", "instantiate"}

// DecodedMessage is a proposal message with its embedded contract payload
// decoded for display. Error is set when the payload could not be decoded, in
// which case Message holds the envelope as it was received.
type DecodedMessage struct {
	Message any    `json:"message"`
	Error   string `json:"error,omitempty"`
}

// DecodeEmbeddedPayloads decodes the inner msg of every wasm execute and
// instantiate message. The input is never modified and a message that fails
// to decode does not stop the others from being decoded.
func DecodeEmbeddedPayloads(msgs []json.RawMessage) []DecodedMessage {
	decoded := make([]DecodedMessage, len(msgs))
	for i, raw := range msgs {
		decoded[i] = decodeEmbeddedPayload(raw)
	}
	return decoded
}

func decodeEmbeddedPayload(raw json.RawMessage) DecodedMessage {
	var envelope any
	if err := unmarshalStrict(raw, &envelope); err != nil {
		derr := &DecodeError{Input: string(raw), Reason: "message is not valid JSON", Err: err}
		return DecodedMessage{Message: string(raw), Error: derr.Error()}
	}

	inner := wasmPayloadHolders(envelope)
	if len(inner) == 0 {
		return DecodedMessage{Message: envelope}
	}

	// decode into a fresh tree so the envelope survives a failure
	var result any
	_ = unmarshalStrict(raw, &result)

	for _, holder := range wasmPayloadHolders(result) {
		encoded, ok := holder["msg"].(string)
		if !ok {
			continue
		}
		value, err := DecodeJSONFromBase64(encoded)
		if err != nil {
			return DecodedMessage{Message: envelope, Error: err.Error()}
		}
		holder["msg"] = value
	}

	return DecodedMessage{Message: result}
}

// wasmPayloadHolders returns the wasm.execute / wasm.instantiate objects of a
// decoded message envelope.
func wasmPayloadHolders(envelope any) []map[string]any {
	obj, ok := envelope.(map[string]any)
	if !ok {
		return nil
	}
	wasm, ok := obj["wasm"].(map[string]any)
	if !ok {
		return nil
	}

	var holders []map[string]any
	for _, kind := range embeddedPayloadKinds {
		if holder, ok := wasm[kind].(map[string]any); ok {
			holders = append(holders, holder)
		}
	}
	return holders
}

// RawMessages encodes typed messages back to their JSON form.
func RawMessages(msgs []wasmvmtypes.CosmosMsg) ([]json.RawMessage, error) {
	raws := make([]json.RawMessage, 0, len(msgs))
	for _, msg := range msgs {
		bz, err := marshalCompact(msg)
		if err != nil {
			return nil, err
		}
		raws = append(raws, bz)
	}
	return raws, nil
}
