package google

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habits/internal/core"
)

func TestNew_MissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Config{ServiceAccountJSON: "{}"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_SPREADSHEET_ID")
}

func TestResolveCredentials(t *testing.T) {
	ctx := context.Background()
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	t.Run("inline wins", func(t *testing.T) {
		got, err := resolveCredentials(ctx, Config{ServiceAccountJSON: `{"a":1}`, ServiceAccountFile: "/nope"})
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(got))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sa.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"b":2}`), 0o600))

		got, err := resolveCredentials(ctx, Config{ServiceAccountFile: path})
		require.NoError(t, err)
		assert.Equal(t, `{"b":2}`, string(got))
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, err := resolveCredentials(ctx, Config{ServiceAccountFile: filepath.Join(t.TempDir(), "missing.json")})
		assert.Error(t, err)
	})

	t.Run("application default path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "adc.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"c":3}`), 0o600))
		t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", path)

		got, err := resolveCredentials(ctx, Config{})
		require.NoError(t, err)
		assert.Equal(t, `{"c":3}`, string(got))
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := resolveCredentials(ctx, Config{})
		assert.ErrorContains(t, err, "missing service account credentials")
	})
}

func TestExportMonth_Uninitialized(t *testing.T) {
	c := &Client{spreadsheetID: "sheet"}
	_, err := c.ExportMonth(context.Background(), core.NewMonthRecord("2024-05"))
	assert.ErrorContains(t, err, "not initialized")
}
