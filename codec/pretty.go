package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const indent = "  "

// PrettyPrint renders value as JSON with two space indentation and sorted
// object keys. Strings and byte slices holding a JSON document are treated as
// that document, so printing the output again yields the same text. This
// includes scalar documents: PrettyPrint("5") returns 5 and PrettyPrint("true")
// returns true, while a string that is not JSON, like "hello", is quoted.
func PrettyPrint(value any) (string, error) {
	bz, err := toJSON(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode value: %w", err)
	}

	var normalized any
	if err := unmarshalStrict(bz, &normalized); err != nil {
		return "", fmt.Errorf("failed to normalize value: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(normalized); err != nil {
		return "", fmt.Errorf("failed to indent value: %w", err)
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func toJSON(value any) ([]byte, error) {
	switch v := value.(type) {
	case json.RawMessage:
		return documentOrString(v)
	case []byte:
		return documentOrString(v)
	case string:
		return documentOrString([]byte(v))
	}
	return marshalCompact(value)
}

func documentOrString(bz []byte) ([]byte, error) {
	var probe any
	if err := unmarshalStrict(bz, &probe); err == nil {
		return bz, nil
	}
	return marshalCompact(string(bz))
}
