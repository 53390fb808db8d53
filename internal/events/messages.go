package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Operations carried by change messages.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// Entity kinds carried by change messages.
const (
	EntityProject     = "project"
	EntityIncome      = "income"
	EntityExpense     = "expense"
	EntitySavingsGoal = "savings_goal"
)

// ChangeMessage describes one mutation of a collection.
type ChangeMessage struct {
	Entity    string    `json:"entity"`
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeMessage builds a message stamped with the current time.
func NewChangeMessage(entity, op, id string) ChangeMessage {
	return ChangeMessage{
		Entity:    entity,
		Op:        op,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

func (m ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (ChangeMessage, error) {
	var m ChangeMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return ChangeMessage{}, fmt.Errorf("unmarshal change message: %w", err)
	}
	if m.Entity == "" || m.Op == "" || m.ID == "" {
		return ChangeMessage{}, fmt.Errorf("change message missing fields: %s", data)
	}
	return m, nil
}
