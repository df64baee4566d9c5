//go:build integration

package google

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habits/internal/core"
)

// Integration tests require real Google Sheets credentials
// Run with: go test -tags=integration ./internal/sheets/google

func TestIntegration_ExportMonth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	spreadsheetID := os.Getenv("GOOGLE_SPREADSHEET_ID")
	if spreadsheetID == "" {
		t.Skip("GOOGLE_SPREADSHEET_ID not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := New(ctx, Config{
		SpreadsheetID:      spreadsheetID,
		ServiceAccountJSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		ServiceAccountFile: os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"),
	})
	require.NoError(t, err)

	r := core.NewMonthRecord("1999-01")
	h := core.NewHabit("Integration", "#aecbfa", time.Now())
	r.AddHabit(h)
	_, err = r.ToggleHabit(3, h.ID)
	require.NoError(t, err)

	ref, err := client.ExportMonth(ctx, r)
	require.NoError(t, err)
	assert.Contains(t, ref, "1999-01")

	// Exporting again overwrites the same tab
	_, err = client.ExportMonth(ctx, r)
	require.NoError(t, err)
}
