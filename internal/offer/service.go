package offer

import (
	"context"
	"time"

	"pasarloka-be/internal/apperr"
	"pasarloka-be/internal/audit"
	"pasarloka-be/internal/listing"
	"pasarloka-be/internal/logger"
	"pasarloka-be/internal/notification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateInput struct {
	TargetType string
	TargetID   uuid.UUID
	Amount     decimal.Decimal
	Message    *string
}

type Service interface {
	Create(ctx context.Context, actorID uint, input CreateInput) (*Offer, error)
	Transition(ctx context.Context, actorID uint, offerID uuid.UUID, action Action) (*Offer, error)
}

type service struct {
	repo     Repository
	listings listing.Lookup
	notifier notification.Notifier
	audit    audit.Recorder
}

func NewService(
	repo Repository,
	listings listing.Lookup,
	notifier notification.Notifier,
	recorder audit.Recorder,
) Service {
	return &service{
		repo:     repo,
		listings: listings,
		notifier: notifier,
		audit:    recorder,
	}
}

func (s *service) Create(ctx context.Context, actorID uint, input CreateInput) (*Offer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOffer"),
		zap.Uint("actor_id", actorID),
		zap.String("target_type", input.TargetType),
		zap.String("target_id", input.TargetID.String()),
	)

	if actorID == 0 {
		log.Warn("unauthenticated")
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	if !input.Amount.IsPositive() {
		log.Warn("invalid amount", zap.String("amount", input.Amount.String()))
		return nil, apperr.New(apperr.KindInvalidAmount, "amount must be greater than 0")
	}

	targetType, err := listing.ParseTargetType(input.TargetType)
	if err != nil {
		log.Warn("invalid target type")
		return nil, err
	}

	target, err := s.listings.OwnerAndStatus(ctx, targetType, input.TargetID)
	if err != nil {
		log.Warn("target lookup failed", zap.Error(err))
		return nil, err
	}

	if target.Status != listing.StatusActive {
		log.Warn("target not active", zap.String("status", string(target.Status)))
		return nil, apperr.New(apperr.KindTargetNotActive, "target is not active")
	}

	if target.OwnerID == actorID {
		log.Warn("self offer rejected")
		return nil, apperr.New(apperr.KindSelfOffer, "cannot offer on own listing")
	}

	o := &Offer{
		ID:         uuid.New(),
		TargetType: targetType,
		TargetID:   input.TargetID,
		OffererID:  actorID,
		Amount:     input.Amount.Round(2),
		Message:    input.Message,
		Status:     StatusCreated,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to persist offer", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actorID, "OFFER_CREATE", "OFFER", o.ID, "Offer created")
	s.notifier.Notify(ctx, target.OwnerID, notification.Event{
		Type:        "OFFER_CREATED",
		Title:       "New offer",
		Body:        "You have received a new offer",
		RelatedType: "offer",
		RelatedID:   o.ID,
	})

	log.Info("offer created", zap.String("offer_id", o.ID.String()))
	return o, nil
}

func (s *service) Transition(
	ctx context.Context,
	actorID uint,
	offerID uuid.UUID,
	action Action,
) (*Offer, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "TransitionOffer"),
		zap.Uint("actor_id", actorID),
		zap.String("offer_id", offerID.String()),
		zap.String("action", string(action)),
	)

	if actorID == 0 {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	o, err := s.repo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	target, err := s.listings.OwnerAndStatus(ctx, o.TargetType, o.TargetID)
	if err != nil {
		return nil, err
	}

	var next Status
	var notifyUser uint
	var event notification.Event
	var auditAction string

	switch action {
	case ActionAccept:
		if actorID != target.OwnerID {
			log.Warn("accept by non-owner")
			return nil, apperr.New(apperr.KindForbiddenOwner, "only the listing owner can accept")
		}
		next = StatusAccepted
		notifyUser = o.OffererID
		auditAction = "OFFER_ACCEPT"
		event = notification.Event{
			Type:        "OFFER_ACCEPTED",
			Title:       "Offer accepted",
			Body:        "Your offer has been accepted",
			RelatedType: "offer",
			RelatedID:   o.ID,
		}

	case ActionReject:
		if actorID != target.OwnerID {
			log.Warn("reject by non-owner")
			return nil, apperr.New(apperr.KindForbiddenOwner, "only the listing owner can reject")
		}
		next = StatusRejected
		notifyUser = o.OffererID
		auditAction = "OFFER_REJECT"
		event = notification.Event{
			Type:        "OFFER_REJECTED",
			Title:       "Offer rejected",
			Body:        "Your offer has been rejected",
			RelatedType: "offer",
			RelatedID:   o.ID,
		}

	case ActionCancel:
		if actorID != o.OffererID {
			log.Warn("cancel by non-offerer")
			return nil, apperr.New(apperr.KindForbiddenOwner, "only the offerer can cancel")
		}
		next = StatusCanceled
		notifyUser = target.OwnerID
		auditAction = "OFFER_CANCEL"
		event = notification.Event{
			Type:        "OFFER_CANCELED",
			Title:       "Offer canceled",
			Body:        "An offer on your listing has been canceled",
			RelatedType: "offer",
			RelatedID:   o.ID,
		}

	default:
		return nil, apperr.New(apperr.KindValidation, "unknown action")
	}

	if o.Status != StatusCreated {
		log.Warn("transition outside created state", zap.String("status", string(o.Status)))
		return nil, apperr.New(apperr.KindConflictState, "offer is not available for this transition")
	}

	// The conditional update is the authoritative guard; the check above only
	// produces a precise error without a round trip for the common case.
	if err := s.repo.UpdateStatusFrom(ctx, o.ID, StatusCreated, next); err != nil {
		log.Warn("offer transition lost", zap.Error(err))
		return nil, err
	}
	o.Status = next

	s.audit.Record(ctx, actorID, auditAction, "OFFER", o.ID, "Offer "+string(next))
	s.notifier.Notify(ctx, notifyUser, event)

	log.Info("offer transitioned", zap.String("status", string(next)))
	return o, nil
}
