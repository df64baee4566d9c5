package memory

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habits/internal/storage"
	"habits/internal/storage/storagetest"
)

func TestMemoryStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) (storage.Store, storagetest.RawWriter) {
		s := New()
		return s, func(_ *testing.T, key string, body []byte) { s.PutRaw(key, body) }
	})
}

func TestNewFromFilesSeedsDefaults(t *testing.T) {
	dir := t.TempDir()

	s := NewFromFiles(dir)
	got, err := s.GetDefaults(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got, "no seed file means no templates")

	seed := "defaults:\n  - name: Walk\n    color: \"#abc\"\n  - name: \"  \"\n  - name: Read\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defaults.yaml"), []byte(seed), 0o644))

	s = NewFromFiles(dir)
	got, err = s.GetDefaults(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Walk", got[0].Name)
	assert.Equal(t, "#abc", got[0].Color)
	assert.Equal(t, "Read", got[1].Name)
	assert.NotEmpty(t, got[1].Color)
}

func TestNewFromFilesLogsInvalidSeed(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defaults.yaml"), []byte("defaults: [unterminated"), 0o644))

	s := NewFromFiles(dir)
	got, err := s.GetDefaults(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "Ignoring invalid defaults seed file")
	assert.Contains(t, buf.String(), "defaults.yaml")
}

func TestNewFromFilesMissingSeedIsSilent(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	NewFromFiles(t.TempDir())
	assert.Empty(t, buf.String())
}
