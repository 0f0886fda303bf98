package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestUpdateViperConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("chain_id", "injective-888")
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, UpdateViperConfig("default_multisig", "inj1multisig", path))

	bz, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(bz, &got))
	assert.Equal(t, "inj1multisig", got["default_multisig"])
	assert.Equal(t, "injective-888", got["chain_id"])
}

func TestUpdateViperConfig_Errors(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Error(t, UpdateViperConfig("default_multisig", "inj1multisig", ""))
	assert.Error(t, UpdateViperConfig("default_multisig", "inj1multisig", filepath.Join(t.TempDir(), "missing", "config.yaml")))
}
