package codec

import (
	"encoding/json"
	"strings"
)

// Payload is the same message content in every form the user can inspect.
// It is presentational only.
type Payload struct {
	Raw      string           `json:"raw"`
	Encoding Encoding         `json:"encoding"`
	Base64   string           `json:"base64,omitempty"`
	Pretty   string           `json:"pretty,omitempty"`
	Messages []DecodedMessage `json:"messages,omitempty"`
	Error    string           `json:"error,omitempty"`
}

func Inspect(input string) Payload {
	trimmed := strings.TrimSpace(input)
	p := Payload{
		Raw:      input,
		Encoding: DetectEncoding(trimmed),
	}

	var document string
	switch p.Encoding {
	case EncodingJSON, EncodingJSONArray:
		document = trimmed
	case EncodingBase64:
		decoded, err := DecodeFromBase64(trimmed)
		if err != nil {
			p.Error = err.Error()
			return p
		}
		if enc := DetectEncoding(decoded); enc != EncodingJSON && enc != EncodingJSONArray {
			p.Pretty = decoded
			return p
		}
		document = decoded
	default:
		p.Error = (&DecodeError{Input: input, Reason: "unrecognized encoding"}).Error()
		return p
	}

	pretty, err := PrettyPrint(document)
	if err != nil {
		p.Error = err.Error()
		return p
	}
	p.Pretty = pretty

	compact, err := marshalCompactDocument(document)
	if err != nil {
		p.Error = err.Error()
		return p
	}
	p.Base64 = EncodeToBase64(string(compact))

	var msgs []json.RawMessage
	if err := json.Unmarshal([]byte(document), &msgs); err == nil {
		p.Messages = DecodeEmbeddedPayloads(msgs)
	}

	return p
}

func marshalCompactDocument(document string) ([]byte, error) {
	var value any
	if err := unmarshalStrict([]byte(document), &value); err != nil {
		return nil, err
	}
	return marshalCompact(value)
}
