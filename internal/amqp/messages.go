package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"habits/internal/core"
)

// MonthSavedMessage announces that a month document was written.
// It carries only the month id; consumers reload the record from storage.
type MonthSavedMessage struct {
	MonthID   core.MonthID `json:"monthId"`
	Timestamp time.Time    `json:"timestamp"`
}

func NewMonthSavedMessage(id core.MonthID) *MonthSavedMessage {
	return &MonthSavedMessage{
		MonthID:   id,
		Timestamp: time.Now().UTC(),
	}
}

func (m *MonthSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MonthSavedMessageFromJSON decodes a message and validates its month id.
func MonthSavedMessageFromJSON(data []byte) (*MonthSavedMessage, error) {
	var msg MonthSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if _, err := core.ParseMonthID(string(msg.MonthID)); err != nil {
		return nil, fmt.Errorf("month saved message: %w", err)
	}
	return &msg, nil
}
