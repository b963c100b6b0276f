package queue

import (
	"context"
	"time"

	"backend-triage/internal/models"
)

const (
	EventSubmit   = "submit"
	EventServe    = "serve"
	EventDemote   = "demote"
	EventComplete = "complete"
	EventReset    = "reset"
)

// Event describes one committed lifecycle change. Seq increases by one per
// event in commit order; a queue reset does not restart it.
type Event struct {
	Seq       uint64        `json:"seq"`
	Type      string        `json:"type"`
	PatientID string        `json:"patient_id,omitempty"`
	Token     string        `json:"token,omitempty"`
	Status    models.Status `json:"status,omitempty"`
	Actor     string        `json:"actor,omitempty"`
	At        time.Time     `json:"at"`
}

// Notifier receives events after the store has committed them, one call at a
// time and in Seq order. Errors are logged by the service and never undo the change.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

type NotifierFunc func(ctx context.Context, ev Event) error

func (f NotifierFunc) Notify(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}
