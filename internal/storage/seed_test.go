package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habits/internal/core"
	"habits/internal/storage"
	"habits/internal/storage/memory"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSeedDefaultsIfEmpty(t *testing.T) {
	ctx := context.Background()
	path := writeSeed(t, "defaults:\n  - name: Walk\n    color: \"#abc\"\n")

	s := memory.New()
	require.NoError(t, storage.SeedDefaultsIfEmpty(ctx, s, path))

	got, err := s.GetDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.DefaultHabitEntry{{Name: "Walk", Color: "#abc"}}, got)
}

func TestSeedDefaultsKeepsExistingTemplates(t *testing.T) {
	ctx := context.Background()
	path := writeSeed(t, "defaults:\n  - name: Walk\n")

	s := memory.New()
	require.NoError(t, s.SetDefaults(ctx, []core.DefaultHabitEntry{{Name: "Read", Color: "#111"}}))
	require.NoError(t, storage.SeedDefaultsIfEmpty(ctx, s, path))

	got, err := s.GetDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, []core.DefaultHabitEntry{{Name: "Read", Color: "#111"}}, got)
}

func TestSeedDefaultsWithoutPathIsNoop(t *testing.T) {
	s := memory.New()
	assert.NoError(t, storage.SeedDefaultsIfEmpty(context.Background(), s, ""))
}

func TestLoadDefaultsSeedRejectsBadYAML(t *testing.T) {
	path := writeSeed(t, "defaults: [unclosed")
	_, err := storage.LoadDefaultsSeed(path)
	assert.Error(t, err)
}
