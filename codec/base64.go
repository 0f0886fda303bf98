package codec

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dymensionxyz/multisig-client/types"
)

// DecodeError reports a payload that could not be decoded for display.
// It matches types.ErrDecode with errors.Is.
type DecodeError struct {
	Input  string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to decode payload: %s", e.Reason)
	}
	return fmt.Sprintf("failed to decode payload: %s: %v", e.Reason, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == types.ErrDecode
}

// EncodeToBase64 encodes the bytes of text with the standard alphabet. Only
// valid UTF-8 text round-trips through DecodeFromBase64, which rejects any
// other payload.
func EncodeToBase64(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// DecodeFromBase64 is the inverse of EncodeToBase64. The decoded bytes must be
// valid UTF-8.
func DecodeFromBase64(text string) (string, error) {
	bz, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return "", &DecodeError{Input: text, Reason: "invalid base64", Err: err}
	}
	if !utf8.Valid(bz) {
		return "", &DecodeError{Input: text, Reason: "payload is not valid UTF-8"}
	}
	return string(bz), nil
}

// DecodeJSONFromBase64 decodes a base64 payload holding a JSON document.
func DecodeJSONFromBase64(text string) (any, error) {
	decoded, err := DecodeFromBase64(text)
	if err != nil {
		return nil, err
	}

	var value any
	if err := unmarshalStrict([]byte(decoded), &value); err != nil {
		return nil, &DecodeError{Input: text, Reason: "payload is not valid JSON", Err: err}
	}
	return value, nil
}
