package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

// OutboxTask is written in the same transaction as the state change it
// announces and drained into Kafka by the publisher.
type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// LoadEventPayload is the message body published for load lifecycle events.
type LoadEventPayload struct {
	Timestamp   time.Time `json:"timestamp"`
	Action      string    `json:"action"`
	LoadID      string    `json:"load_id"`
	LoadRawID   int64     `json:"load_raw_id"`
	Status      string    `json:"status"`
	ConfirmedBy string    `json:"confirmed_by,omitempty"`
}
