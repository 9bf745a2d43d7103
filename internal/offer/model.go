package offer

import (
	"time"

	"pasarloka-be/internal/apperr"
	"pasarloka-be/internal/listing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status only ever advances created -> accepted|rejected|canceled.
// The three result statuses are terminal.
type Status string

const (
	StatusCreated  Status = "created"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusCanceled Status = "canceled"
)

type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionCancel Action = "cancel"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionAccept, ActionReject, ActionCancel:
		return Action(s), nil
	default:
		return "", apperr.New(apperr.KindValidation, "unknown action")
	}
}

type Offer struct {
	ID         uuid.UUID
	TargetType listing.TargetType
	TargetID   uuid.UUID
	OffererID  uint
	Amount     decimal.Decimal
	Message    *string
	Status     Status
	CreatedAt  time.Time
}
