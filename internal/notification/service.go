package notification

import (
	"context"
	"time"

	"pasarloka-be/internal/logger"
	"pasarloka-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier delivers an event to a user. Delivery is best-effort: failures are
// logged and counted, never returned, so a failed notification can never turn
// a committed transition into an error.
type Notifier interface {
	Notify(ctx context.Context, userID uint, event Event)
}

type Service interface {
	Notifier
	ListMine(ctx context.Context, userID uint, page, size int32) ([]*Notification, int64, error)
}

type service struct {
	repo     Repository
	failures *metrics.Counter
}

func NewService(repo Repository) Service {
	return &service{repo: repo, failures: &metrics.Counter{}}
}

func (s *service) Notify(ctx context.Context, userID uint, event Event) {
	n := &Notification{
		ID:          uuid.New(),
		UserID:      userID,
		EventType:   event.Type,
		Title:       event.Title,
		Body:        event.Body,
		RelatedType: event.RelatedType,
		RelatedID:   event.RelatedID,
		Status:      StatusActive,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Insert(ctx, n); err != nil {
		s.failures.Inc()
		logger.FromCtx(ctx).Warn("notification delivery failed",
			zap.Uint("user_id", userID),
			zap.String("event_type", event.Type),
			zap.Error(err),
		)
	}
}

// DeliveryFailures reports how many notifications were dropped since start.
func (s *service) DeliveryFailures() uint64 {
	return s.failures.Load()
}

func (s *service) ListMine(
	ctx context.Context,
	userID uint,
	page, size int32,
) ([]*Notification, int64, error) {

	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	offset := (page - 1) * size
	return s.repo.ListByUser(ctx, userID, size, offset)
}
