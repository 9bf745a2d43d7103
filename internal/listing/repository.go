package listing

import (
	"context"
	"database/sql"
	"fmt"

	"pasarloka-be/internal/apperr"

	"github.com/google/uuid"
)

// Lookup resolves a listing's owner and activity status. Listing CRUD lives
// elsewhere; the transaction engines only ever read through this interface.
type Lookup interface {
	OwnerAndStatus(ctx context.Context, targetType TargetType, targetID uuid.UUID) (*Summary, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Lookup {
	return &repository{db: db}
}

func (r *repository) OwnerAndStatus(
	ctx context.Context,
	targetType TargetType,
	targetID uuid.UUID,
) (*Summary, error) {

	var query string
	switch targetType {
	case TargetItem:
		query = `SELECT id, seller_id, status, title, price FROM items WHERE id = $1`
	case TargetDemand:
		query = `SELECT id, buyer_id, status, title, price FROM demands WHERE id = $1`
	default:
		return nil, apperr.New(apperr.KindValidation, "invalid targetType")
	}

	s := Summary{Type: targetType}
	err := r.db.QueryRowContext(ctx, query, targetID).
		Scan(&s.ID, &s.OwnerID, &s.Status, &s.Title, &s.Price)

	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.KindTargetNotFound, fmt.Sprintf("%s not found", targetType))
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}
