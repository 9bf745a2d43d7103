package notification

import (
	"context"
	"database/sql"
)

type Repository interface {
	Insert(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uint, limit, offset int32) ([]*Notification, int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, n *Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, user_id, event_type, title, body,
			related_type, related_id, status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		n.ID,
		n.UserID,
		n.EventType,
		n.Title,
		n.Body,
		n.RelatedType,
		n.RelatedID,
		n.Status,
		n.CreatedAt,
	)
	return err
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uint,
	limit, offset int32,
) ([]*Notification, int64, error) {

	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications
		WHERE user_id = $1 AND status = $2
	`, userID, StatusActive).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, event_type, title, body, related_type, related_id, status, created_at
		FROM notifications
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, userID, StatusActive, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Notification
	for rows.Next() {
		var n Notification
		err := rows.Scan(
			&n.ID, &n.UserID, &n.EventType, &n.Title, &n.Body,
			&n.RelatedType, &n.RelatedID, &n.Status, &n.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}
