package amqp

import (
	"encoding/json"
	"time"
)

// Change kinds carried by ledger change messages.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// LedgerChangedMessage signals that the expense set changed and derived
// views (balances, settlements) are stale. It carries only the expense ID
// and the kind of change; consumers re-read the store for current state.
type LedgerChangedMessage struct {
	ID        int64     `json:"id"`
	Change    string    `json:"change"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerChangedMessage(id int64, change string) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		ID:        id,
		Change:    change,
		Timestamp: time.Now(),
	}
}

func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
