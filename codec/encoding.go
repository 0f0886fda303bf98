// Package codec converts proposal message text between the forms a user
// authors (JSON, JSON arrays, base64) and the binary payloads the chain expects.
package codec

import (
	"encoding/base64"
	"regexp"
	"strings"
)

type Encoding string

const (
	EncodingJSON      Encoding = "json"
	EncodingJSONArray Encoding = "jsonArray"
	EncodingBase64    Encoding = "base64"
	EncodingUnknown   Encoding = "unknown"
)

var base64Alphabet = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// DetectEncoding classifies input. Strict JSON is tried before base64 so a
// document that parses as JSON is never reinterpreted as base64.
func DetectEncoding(input string) Encoding {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return EncodingUnknown
	}

	var value any
	if err := unmarshalStrict([]byte(trimmed), &value); err == nil {
		if _, ok := value.([]any); ok {
			return EncodingJSONArray
		}
		return EncodingJSON
	}

	if isBase64(trimmed) {
		return EncodingBase64
	}

	return EncodingUnknown
}

func isBase64(s string) bool {
	if len(s)%4 != 0 || !base64Alphabet.MatchString(s) {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}
