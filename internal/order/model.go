package order

import (
	"time"

	"pasarloka-be/internal/apperr"
	"pasarloka-be/internal/listing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status lifecycle: created -> paid -> completed, with created -> canceled as
// the only abort path. A paid order cannot be canceled through this engine;
// refunds are a product decision outside it.
type Status string

const (
	StatusCreated   Status = "created"
	StatusPaid      Status = "paid"
	StatusCanceled  Status = "canceled"
	StatusCompleted Status = "completed"
)

type Action string

const (
	ActionPay      Action = "pay"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionPay, ActionCancel, ActionComplete:
		return Action(s), nil
	default:
		return "", apperr.New(apperr.KindValidation, "unknown action")
	}
}

type Order struct {
	ID              uuid.UUID
	BuyerID         uint
	SellerID        uint
	OfferID         uuid.UUID
	TotalAmount     decimal.Decimal
	Status          Status
	ShippingName    string
	ShippingPhone   string
	ShippingAddress string
	PaymentMethod   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItem
}

// OrderItem is created atomically with its order and never mutated after.
// Quantity is fixed at 1: one listing, one line.
type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	TargetType listing.TargetType
	TargetID   uuid.UUID
	Quantity   int
	Price      decimal.Decimal
}

// Parties returns the buyer/seller pair resolved at creation time.
func (o *Order) Parties() listing.Parties {
	return listing.Parties{BuyerID: o.BuyerID, SellerID: o.SellerID}
}
