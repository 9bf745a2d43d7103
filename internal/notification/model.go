package notification

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// Event is the payload handed to Notify. RelatedType/RelatedID point back at
// the offer or order the event is about.
type Event struct {
	Type        string
	Title       string
	Body        string
	RelatedType string
	RelatedID   uuid.UUID
}

type Notification struct {
	ID          uuid.UUID
	UserID      uint
	EventType   string
	Title       string
	Body        string
	RelatedType string
	RelatedID   uuid.UUID
	Status      Status
	CreatedAt   time.Time
}
