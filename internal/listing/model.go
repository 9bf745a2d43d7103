package listing

import (
	"pasarloka-be/internal/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TargetType is the kind of listing an offer points at. An item is sold by
// its owner; a demand is a request to buy posted by its owner.
type TargetType string

const (
	TargetItem   TargetType = "item"
	TargetDemand TargetType = "demand"
)

func ParseTargetType(s string) (TargetType, error) {
	switch TargetType(s) {
	case TargetItem:
		return TargetItem, nil
	case TargetDemand:
		return TargetDemand, nil
	default:
		return "", apperr.New(apperr.KindValidation, "invalid targetType")
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusSold     Status = "sold"
)

// Summary is the slice of a listing the transaction engines need:
// who owns it and whether it can still take offers.
type Summary struct {
	ID      uuid.UUID
	Type    TargetType
	OwnerID uint
	Status  Status
	Title   string
	Price   decimal.Decimal
}
