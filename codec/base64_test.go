package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dymensionxyz/multisig-client/types"
)

func TestBase64RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		`{"propose":{"title":"t","description":"d","msgs":[]}}`,
		"ünïcödé",
		"日本語のテキスト",
		"emoji 🚀🔥 mixed with ascii",
		"\u0000 control \u001f chars",
	}
	for _, input := range inputs {
		got, err := DecodeFromBase64(EncodeToBase64(input))
		require.NoError(t, err)
		assert.Equal(t, input, got)
	}
}

func TestDecodeFromBase64_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "invalid base64",
			input:   "not base64!",
			wantErr: assert.Error,
		}, {
			name:    "invalid utf-8",
			input:   "/w==", // 0xff
			wantErr: assert.Error,
		}, {
			name:    "valid",
			input:   "aGVsbG8=",
			wantErr: assert.NoError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFromBase64(tt.input)
			if !tt.wantErr(t, err) || err == nil {
				return
			}
			assert.True(t, errors.Is(err, types.ErrDecode))
			var derr *DecodeError
			assert.True(t, errors.As(err, &derr))
			assert.Equal(t, tt.input, derr.Input)
		})
	}
}

func TestDecodeJSONFromBase64(t *testing.T) {
	value, err := DecodeJSONFromBase64(EncodeToBase64(`{"amount":"340282366920938463463374607431768211455","n":18446744073709551615}`))
	require.NoError(t, err)

	obj, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "340282366920938463463374607431768211455", obj["amount"])
	assert.Equal(t, "18446744073709551615", obj["n"].(interface{ String() string }).String())

	_, err = DecodeJSONFromBase64(EncodeToBase64("plain text"))
	assert.ErrorIs(t, err, types.ErrDecode)
}

func TestBase64RoundTrip_InvalidUTF8(t *testing.T) {
	encoded := EncodeToBase64("a\xffb")
	assert.Equal(t, "Yf9i", encoded)

	_, err := DecodeFromBase64(encoded)
	var derr *DecodeError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "payload is not valid UTF-8", derr.Reason)
}
