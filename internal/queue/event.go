// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// ActivityQueueName is the durable queue carrying task activity events.
const ActivityQueueName = "task.activity"

// Actions recorded in TaskActivityEvent.
const (
	ActionCreated   = "created"
	ActionCompleted = "completed"
	ActionReopened  = "reopened"
	ActionDeleted   = "deleted"
)

// TaskActivityEvent is published whenever a task is created, completed,
// reopened or deleted. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type TaskActivityEvent struct {
	TaskID     string `json:"task_id"`
	UserID     string `json:"user_id"`
	Action     string `json:"action"`
	Title      string `json:"title"`
	OccurredAt string `json:"occurred_at"`
}
