package offer

import (
	"context"
	"database/sql"

	"pasarloka-be/internal/apperr"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, o *Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Offer, error)

	// UpdateStatusFrom advances the offer only when its current status still
	// matches `from`. The conditional UPDATE is what serializes concurrent
	// transition attempts: the loser matches zero rows and gets ConflictState.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Offer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO offers (
			id, target_type, target_id, offerer_id,
			amount, message, status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		o.ID,
		o.TargetType,
		o.TargetID,
		o.OffererID,
		o.Amount,
		o.Message,
		o.Status,
		o.CreatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Offer, error) {
	var o Offer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, target_type, target_id, offerer_id, amount, message, status, created_at
		FROM offers
		WHERE id = $1
	`, id).Scan(
		&o.ID, &o.TargetType, &o.TargetID, &o.OffererID,
		&o.Amount, &o.Message, &o.Status, &o.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.KindTargetNotFound, "offer not found")
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE offers SET status = $1 WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.KindConflictState, "offer is not available for this transition")
	}

	return nil
}
