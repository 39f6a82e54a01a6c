package ws

import (
	"encoding/json"
	"testing"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(MessageTypeMove, MovePayload{Move: "e2e4"})
	if err != nil {
		t.Fatalf("NewMessage error: %v", err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"type":"move","payload":{"move":"e2e4"}}` {
		t.Errorf("encoded = %s", got)
	}
}

func TestErrorMessage(t *testing.T) {
	msg := ErrorMessage("illegal move")
	if msg.Type != MessageTypeError {
		t.Errorf("Type = %q, want error", msg.Type)
	}
	var p ErrorPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if p.Error != "illegal move" {
		t.Errorf("Error = %q", p.Error)
	}
}

func TestMessage_OmitsEmptyPayload(t *testing.T) {
	data, err := json.Marshal(Message{Type: MessageTypeUndo})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"type":"undo"}` {
		t.Errorf("encoded = %s", got)
	}
}
