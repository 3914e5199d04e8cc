package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// TaskType names a background job.
type TaskType string

const (
	TaskDeliverOtp   TaskType = "notification.otp"
	TaskDeliverAlert TaskType = "notification.alert"
)

// Task is an envelope for at-least-once background work.
type Task struct {
	ID         string          `json:"task_id"`
	Type       TaskType        `json:"type"`
	Attempt    int             `json:"attempt"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewTask builds a task with a sortable unique ID.
func NewTask(taskType TaskType, payload interface{}) (*Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Task{
		ID:         ulid.Make().String(),
		Type:       taskType,
		EnqueuedAt: time.Now().UTC(),
		Payload:    data,
	}, nil
}

// Decode unmarshals the payload into v.
func (t *Task) Decode(v interface{}) error {
	return json.Unmarshal(t.Payload, v)
}

// Notification is a message for the external delivery gateway.
type Notification struct {
	RecipientID uuid.UUID         `json:"recipient_id"`
	Channel     string            `json:"channel"` // sms, email
	Template    string            `json:"template"`
	Params      map[string]string `json:"params,omitempty"`
	// Sealed lists the Params keys whose values are encrypted in transit.
	Sealed []string `json:"sealed,omitempty"`
}
