package amqp

import (
	"testing"
	"time"
)

func TestExpenseEventMessageRoundTrip(t *testing.T) {
	msg := NewExpenseEventMessage(42, ActionDeleted, 3)
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := ExpenseEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.ID != 42 || got.Action != ActionDeleted || got.Version != 3 {
		t.Errorf("decoded = %+v", got)
	}
	if !got.Timestamp.Truncate(time.Millisecond).Equal(msg.Timestamp.Truncate(time.Millisecond)) {
		t.Errorf("timestamp drifted: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestExpenseEventMessageFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseEventMessageFromJSON([]byte("{broken")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
