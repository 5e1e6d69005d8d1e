package events

import (
	"context"
	"encoding/json"
	"time"

	"coopcycle-service/internal/models"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event announces a successful write on one entity.
type Event struct {
	Entity  string    `json:"entity"`
	Action  Action    `json:"action"`
	ID      models.ID `json:"id"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

func New(entity string, action Action, id models.ID, payload any) Event {
	return Event{
		Entity:  entity,
		Action:  action,
		ID:      id,
		Payload: payload,
		At:      time.Now().UTC(),
	}
}

func (e Event) encode() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
