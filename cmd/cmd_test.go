package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dymensionxyz/multisig-client/config"
	"github.com/dymensionxyz/multisig-client/types"
	"github.com/dymensionxyz/multisig-client/types/cw3"
)

func TestParseVoters(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []cw3.Voter
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "no voters",
			want:    []cw3.Voter{},
			wantErr: assert.NoError,
		}, {
			name: "several voters",
			args: []string{"inj1alice:1", " inj1bob :2"},
			want: []cw3.Voter{
				{Addr: "inj1alice", Weight: 1},
				{Addr: "inj1bob", Weight: 2},
			},
			wantErr: assert.NoError,
		}, {
			name: "missing weight",
			args: []string{"inj1alice"},
			wantErr: func(t assert.TestingT, err error, _ ...interface{}) bool {
				return assert.ErrorIs(t, err, types.ErrInvalidInput)
			},
		}, {
			name: "invalid weight",
			args: []string{"inj1alice:one"},
			wantErr: func(t assert.TestingT, err error, _ ...interface{}) bool {
				return assert.ErrorIs(t, err, types.ErrInvalidInput)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVoters(tt.args)
			if !tt.wantErr(t, err) {
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMultisigArg(t *testing.T) {
	cfg := config.Config{DefaultMultisig: "inj1default"}
	assert.Equal(t, "inj1given", multisigArg([]string{"inj1given"}, cfg))
	assert.Equal(t, "inj1default", multisigArg(nil, cfg))
	assert.Equal(t, "inj1default", multisigArg([]string{""}, cfg))
}

func TestBuildLogger(t *testing.T) {
	logger, err := buildLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = buildLogger("loud")
	assert.Error(t, err)
}
