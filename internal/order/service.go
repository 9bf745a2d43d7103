package order

import (
	"context"
	"time"

	"pasarloka-be/internal/apperr"
	"pasarloka-be/internal/audit"
	"pasarloka-be/internal/listing"
	"pasarloka-be/internal/logger"
	"pasarloka-be/internal/notification"
	"pasarloka-be/internal/offer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateFromOfferInput struct {
	OfferID         uuid.UUID
	ShippingName    string
	ShippingPhone   string
	ShippingAddress string
	PaymentMethod   *string
}

type Service interface {
	CreateFromOffer(ctx context.Context, actorID uint, input CreateFromOfferInput) (*Order, error)
	Transition(ctx context.Context, actorID uint, orderID uuid.UUID, action Action) (*Order, error)
	GetDetail(ctx context.Context, actorID uint, orderID uuid.UUID) (*Order, error)
	ListMine(ctx context.Context, actorID uint, role string, page, size int32) ([]*Order, int64, error)
}

type service struct {
	repo     Repository
	offers   offer.Repository
	listings listing.Lookup
	notifier notification.Notifier
	audit    audit.Recorder
}

func NewService(
	repo Repository,
	offers offer.Repository,
	listings listing.Lookup,
	notifier notification.Notifier,
	recorder audit.Recorder,
) Service {
	return &service{
		repo:     repo,
		offers:   offers,
		listings: listings,
		notifier: notifier,
		audit:    recorder,
	}
}

func (s *service) CreateFromOffer(
	ctx context.Context,
	actorID uint,
	input CreateFromOfferInput,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrderFromOffer"),
		zap.Uint("actor_id", actorID),
		zap.String("offer_id", input.OfferID.String()),
	)

	if actorID == 0 {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	src, err := s.offers.GetByID(ctx, input.OfferID)
	if err != nil {
		return nil, err
	}

	// Pre-check only; the unique index on orders.offer_id is what actually
	// guarantees at-most-once under concurrency.
	exists, err := s.repo.ExistsByOfferID(ctx, src.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Warn("duplicate promotion attempt")
		return nil, apperr.New(apperr.KindConflictState, "order already exists for this offer")
	}

	switch src.Status {
	case offer.StatusCreated, offer.StatusAccepted:
		// eligible for promotion
	case offer.StatusRejected, offer.StatusCanceled:
		return nil, apperr.New(apperr.KindConflictState, "offer is not available for order")
	default:
		return nil, apperr.New(apperr.KindConflictState, "offer is in invalid state")
	}

	target, err := s.listings.OwnerAndStatus(ctx, src.TargetType, src.TargetID)
	if err != nil {
		return nil, err
	}
	if target.Status != listing.StatusActive {
		log.Warn("target not active", zap.String("status", string(target.Status)))
		return nil, apperr.New(apperr.KindTargetNotActive, "target is not active")
	}

	parties := listing.ResolveParties(src.TargetType, target.OwnerID, src.OffererID)
	if !parties.Includes(actorID) {
		log.Warn("promotion by non-participant")
		return nil, apperr.New(apperr.KindForbiddenOwner, "not participant of this offer")
	}

	if !src.Amount.IsPositive() {
		return nil, apperr.New(apperr.KindInvalidAmount, "invalid offer amount")
	}

	now := time.Now()
	o := &Order{
		ID:              uuid.New(),
		BuyerID:         parties.BuyerID,
		SellerID:        parties.SellerID,
		OfferID:         src.ID,
		TotalAmount:     src.Amount,
		Status:          StatusCreated,
		ShippingName:    input.ShippingName,
		ShippingPhone:   input.ShippingPhone,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	item := &OrderItem{
		ID:         uuid.New(),
		OrderID:    o.ID,
		TargetType: src.TargetType,
		TargetID:   src.TargetID,
		Quantity:   1,
		Price:      src.Amount,
	}

	if err := s.repo.CreateFromOfferTx(ctx, o, item); err != nil {
		log.Warn("order creation failed", zap.Error(err))
		return nil, err
	}
	o.Items = []OrderItem{*item}

	s.audit.Record(ctx, actorID, "ORDER_CREATE", "ORDER", o.ID, "Order created from offer")
	s.notifier.Notify(ctx, parties.BuyerID, notification.Event{
		Type:        "ORDER_CREATED",
		Title:       "Order created",
		Body:        "Order created from offer",
		RelatedType: "order",
		RelatedID:   o.ID,
	})
	s.notifier.Notify(ctx, parties.SellerID, notification.Event{
		Type:        "ORDER_CREATED",
		Title:       "New order",
		Body:        "You have a new order",
		RelatedType: "order",
		RelatedID:   o.ID,
	})

	log.Info("order created", zap.String("order_id", o.ID.String()))
	return o, nil
}

func (s *service) Transition(
	ctx context.Context,
	actorID uint,
	orderID uuid.UUID,
	action Action,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "TransitionOrder"),
		zap.Uint("actor_id", actorID),
		zap.String("order_id", orderID.String()),
		zap.String("action", string(action)),
	)

	if actorID == 0 {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	parties := o.Parties()
	if !parties.Includes(actorID) {
		log.Warn("transition by non-participant")
		return nil, apperr.New(apperr.KindForbiddenOwner, "not participant of this order")
	}

	switch action {
	case ActionPay:
		if actorID != o.BuyerID {
			log.Warn("pay by non-buyer")
			return nil, apperr.New(apperr.KindForbiddenOwner, "only buyer can pay")
		}
		if o.Status != StatusCreated {
			return nil, apperr.New(apperr.KindConflictState, "order cannot be paid in current status")
		}
		if err := s.repo.UpdateStatusFrom(ctx, o.ID, StatusCreated, StatusPaid); err != nil {
			return nil, err
		}
		o.Status = StatusPaid

		s.audit.Record(ctx, actorID, "ORDER_PAY", "ORDER", o.ID, "Order paid")
		s.notifier.Notify(ctx, o.SellerID, notification.Event{
			Type:        "ORDER_PAID",
			Title:       "Order paid",
			Body:        "Buyer has paid the order",
			RelatedType: "order",
			RelatedID:   o.ID,
		})

	case ActionCancel:
		// cancel is only legal before payment; a paid order has no abort
		// path through this engine.
		if o.Status != StatusCreated {
			return nil, apperr.New(apperr.KindConflictState, "order cannot be canceled in current status")
		}
		if err := s.repo.UpdateStatusFrom(ctx, o.ID, StatusCreated, StatusCanceled); err != nil {
			return nil, err
		}
		o.Status = StatusCanceled

		s.audit.Record(ctx, actorID, "ORDER_CANCEL", "ORDER", o.ID, "Order canceled")
		s.notifier.Notify(ctx, parties.Counterparty(actorID), notification.Event{
			Type:        "ORDER_CANCELED",
			Title:       "Order canceled",
			Body:        "The order has been canceled",
			RelatedType: "order",
			RelatedID:   o.ID,
		})

	case ActionComplete:
		if o.Status != StatusPaid {
			return nil, apperr.New(apperr.KindConflictState, "order cannot be completed in current status")
		}
		if err := s.repo.UpdateStatusFrom(ctx, o.ID, StatusPaid, StatusCompleted); err != nil {
			return nil, err
		}
		o.Status = StatusCompleted

		s.audit.Record(ctx, actorID, "ORDER_COMPLETE", "ORDER", o.ID, "Order completed")
		done := notification.Event{
			Type:        "ORDER_COMPLETED",
			Title:       "Order completed",
			Body:        "Order has been completed",
			RelatedType: "order",
			RelatedID:   o.ID,
		}
		s.notifier.Notify(ctx, o.BuyerID, done)
		s.notifier.Notify(ctx, o.SellerID, done)

	default:
		return nil, apperr.New(apperr.KindValidation, "unknown action")
	}

	log.Info("order transitioned", zap.String("status", string(o.Status)))
	return o, nil
}

func (s *service) GetDetail(ctx context.Context, actorID uint, orderID uuid.UUID) (*Order, error) {
	if actorID == 0 {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.Parties().Includes(actorID) {
		return nil, apperr.New(apperr.KindForbiddenOwner, "not participant of this order")
	}

	return o, nil
}

func (s *service) ListMine(
	ctx context.Context,
	actorID uint,
	role string,
	page, size int32,
) ([]*Order, int64, error) {

	if actorID == 0 {
		return nil, 0, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	switch role {
	case "":
		role = "buyer"
	case "buyer", "seller":
	default:
		return nil, 0, apperr.New(apperr.KindValidation, "unknown role")
	}
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
	return s.repo.ListByParticipant(ctx, actorID, role, size, offset)
}
