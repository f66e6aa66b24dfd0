package amqp

import (
	"encoding/json"
	"time"
)

// Event actions carried by expense messages.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// ExpenseEventMessage announces that an expense changed. It carries only the
// ID, action and version; the worker fetches the full record from the
// database, so a stale message never overwrites newer state.
type ExpenseEventMessage struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseEventMessage(id int64, action string, version int64) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		ID:        id,
		Action:    action,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
