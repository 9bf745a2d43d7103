package audit

import (
	"context"
	"database/sql"
	"time"

	"pasarloka-be/internal/logger"
	"pasarloka-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder writes an audit fact for a successful transition. Like the
// notifier it is best-effort: a failed audit write never fails the operation.
type Recorder interface {
	Record(ctx context.Context, actorID uint, action, entityType string, entityID uuid.UUID, detail string)
}

type Entry struct {
	ID         uuid.UUID
	ActorID    uint
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Detail     string
	CreatedAt  time.Time
}

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, e *Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, actor_id, action, entity_type, entity_id, detail, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, e.ID, e.ActorID, e.Action, e.EntityType, e.EntityID, e.Detail, e.CreatedAt)
	return err
}

type recorder struct {
	repo     Repository
	failures *metrics.Counter
}

func NewRecorder(repo Repository) Recorder {
	return &recorder{repo: repo, failures: &metrics.Counter{}}
}

func (r *recorder) Record(
	ctx context.Context,
	actorID uint,
	action, entityType string,
	entityID uuid.UUID,
	detail string,
) {
	e := &Entry{
		ID:         uuid.New(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
		CreatedAt:  time.Now(),
	}

	if err := r.repo.Insert(ctx, e); err != nil {
		r.failures.Inc()
		logger.FromCtx(ctx).Warn("audit write failed",
			zap.Uint("actor_id", actorID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
