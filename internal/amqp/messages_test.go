package amqp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habits/internal/core"
)

func TestNewMonthSavedMessage(t *testing.T) {
	msg := NewMonthSavedMessage("2024-05")

	assert.Equal(t, core.MonthID("2024-05"), msg.MonthID)
	assert.WithinDuration(t, time.Now(), msg.Timestamp, time.Second)
}

func TestMonthSavedMessage_JSON(t *testing.T) {
	msg := &MonthSavedMessage{MonthID: "2023-12", Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}

	data, err := msg.ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"monthId":"2023-12","timestamp":"2024-01-01T12:00:00Z"}`, string(data))

	parsed, err := MonthSavedMessageFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, msg.MonthID, parsed.MonthID)
	assert.True(t, parsed.Timestamp.Equal(msg.Timestamp))
}

func TestMonthSavedMessage_Invalid(t *testing.T) {
	for _, body := range []string{`{"monthId": 5}`, `{"monthId": "2024-13"}`, `not json`} {
		_, err := MonthSavedMessageFromJSON([]byte(body))
		assert.Error(t, err, body)
	}
}
