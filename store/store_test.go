package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMultisigStore(t *testing.T) {
	ctx := context.Background()

	s, err := Open(filepath.Join(t.TempDir(), "cache", "multisig.db"))
	require.NoError(t, err)
	defer s.Close()

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	t.Run("missing multisig", func(t *testing.T) {
		ms, err := s.GetMultisig(ctx, "inj1missing")
		require.NoError(t, err)
		require.Nil(t, ms)
	})

	t.Run("save and get", func(t *testing.T) {
		ms := &Multisig{Address: "inj1first", Label: "treasury"}
		require.NoError(t, s.SaveMultisig(ctx, ms))

		got, err := s.GetMultisig(ctx, "inj1first")
		require.NoError(t, err)
		require.Equal(t, "treasury", got.Label)
		require.True(t, got.LastUsedAt.Equal(ms.LastUsedAt))
	})

	t.Run("empty label keeps known label", func(t *testing.T) {
		require.NoError(t, s.SaveMultisig(ctx, &Multisig{Address: "inj1first"}))

		got, err := s.GetMultisig(ctx, "inj1first")
		require.NoError(t, err)
		require.Equal(t, "treasury", got.Label)
	})

	t.Run("empty address", func(t *testing.T) {
		require.Error(t, s.SaveMultisig(ctx, &Multisig{}))
	})

	t.Run("most recently used first", func(t *testing.T) {
		require.NoError(t, s.SaveMultisig(ctx, &Multisig{Address: "inj1second", Label: "ops"}))
		require.NoError(t, s.SaveMultisig(ctx, &Multisig{Address: "inj1third", Label: "grants"}))
		require.NoError(t, s.SaveMultisig(ctx, &Multisig{Address: "inj1first"}))

		all, err := s.GetMultisigs(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		require.Equal(t, "inj1first", all[0].Address)
		require.Equal(t, "inj1third", all[1].Address)
		require.Equal(t, "inj1second", all[2].Address)

		limited, err := s.GetMultisigs(ctx, WithLimit(2))
		require.NoError(t, err)
		require.Len(t, limited, 2)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.DeleteMultisig(ctx, "inj1second"))

		got, err := s.GetMultisig(ctx, "inj1second")
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "multisig.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveMultisig(ctx, &Multisig{Address: "inj1kept", Label: "kept"}))
	s.Close()

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetMultisig(ctx, "inj1kept")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "kept", got.Label)
}
