package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pasarloka-be/internal/apperr"
	"pasarloka-be/internal/offer"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	// CreateFromOfferTx inserts the order and its single line item and
	// advances the source offer to accepted, all in one transaction. The
	// UNIQUE constraint on orders.offer_id is the authoritative at-most-once
	// guard: a concurrent duplicate surfaces as ConflictState.
	CreateFromOfferTx(ctx context.Context, o *Order, item *OrderItem) error

	ExistsByOfferID(ctx context.Context, offerID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to Status) error
	ListByParticipant(ctx context.Context, userID uint, role string, limit, offset int32) ([]*Order, int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFromOfferTx(ctx context.Context, o *Order, item *OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, buyer_id, seller_id, offer_id, total_amount, status,
			shipping_name, shipping_phone, shipping_address, payment_method,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		o.ID,
		o.BuyerID,
		o.SellerID,
		o.OfferID,
		o.TotalAmount,
		o.Status,
		o.ShippingName,
		o.ShippingPhone,
		o.ShippingAddress,
		o.PaymentMethod,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Wrap(apperr.KindConflictState, "order already exists for this offer", err)
		}
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_items (id, order_id, target_type, target_id, quantity, price)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		item.ID,
		item.OrderID,
		item.TargetType,
		item.TargetID,
		item.Quantity,
		item.Price,
	)
	if err != nil {
		return err
	}

	// Terminal promotion: the offer lands on accepted regardless of whether
	// the owner had responded yet. The status predicate keeps the guard atomic
	// with the write: a cancel or reject committed after the service's
	// pre-read matches zero rows and the whole transaction rolls back.
	res, err := tx.ExecContext(ctx, `
		UPDATE offers SET status = $1
		WHERE id = $2 AND status IN ('created', 'accepted')
	`, offer.StatusAccepted, o.OfferID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.KindConflictState, "offer is not available for order")
	}

	return tx.Commit()
}

func (r *repository) ExistsByOfferID(ctx context.Context, offerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM orders WHERE offer_id = $1)
	`, offerID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, buyer_id, seller_id, offer_id, total_amount, status,
		       shipping_name, shipping_phone, shipping_address, payment_method,
		       created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&o.ID, &o.BuyerID, &o.SellerID, &o.OfferID, &o.TotalAmount, &o.Status,
		&o.ShippingName, &o.ShippingPhone, &o.ShippingAddress, &o.PaymentMethod,
		&o.CreatedAt, &o.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.KindTargetNotFound, "order not found")
	}
	if err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *repository) fetchItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, target_type, target_id, quantity, price
		FROM order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		err := rows.Scan(&it.ID, &it.OrderID, &it.TargetType, &it.TargetID, &it.Quantity, &it.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4
	`, to, time.Now(), id, from)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.KindConflictState, "order is not available for this transition")
	}

	return nil
}

func (r *repository) ListByParticipant(
	ctx context.Context,
	userID uint,
	role string,
	limit, offset int32,
) ([]*Order, int64, error) {

	column := "buyer_id"
	if role == "seller" {
		column = "seller_id"
	}

	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE `+column+` = $1`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, buyer_id, seller_id, offer_id, total_amount, status,
		       shipping_name, shipping_phone, shipping_address, payment_method,
		       created_at, updated_at
		FROM orders
		WHERE `+column+` = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Order
	for rows.Next() {
		var o Order
		err := rows.Scan(
			&o.ID, &o.BuyerID, &o.SellerID, &o.OfferID, &o.TotalAmount, &o.Status,
			&o.ShippingName, &o.ShippingPhone, &o.ShippingAddress, &o.PaymentMethod,
			&o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, o := range out {
		items, err := r.fetchItems(ctx, o.ID)
		if err != nil {
			return nil, 0, err
		}
		o.Items = items
	}

	return out, total, nil
}

// isUniqueViolation reports whether err is a postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
