package order

import (
	"context"
	"testing"

	"pasarloka-be/internal/apperr"
	"pasarloka-be/internal/listing"
	"pasarloka-be/internal/notification"
	"pasarloka-be/internal/offer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateFromOfferTx(ctx context.Context, o *Order, item *OrderItem) error {
	args := m.Called(ctx, o, item)
	return args.Error(0)
}

func (m *MockRepository) ExistsByOfferID(ctx context.Context, offerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, offerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

func (m *MockRepository) ListByParticipant(ctx context.Context, userID uint, role string, limit, offset int32) ([]*Order, int64, error) {
	args := m.Called(ctx, userID, role, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Order), args.Get(1).(int64), args.Error(2)
}

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) Create(ctx context.Context, o *offer.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to offer.Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}

type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) OwnerAndStatus(ctx context.Context, targetType listing.TargetType, targetID uuid.UUID) (*listing.Summary, error) {
	args := m.Called(ctx, targetType, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Summary), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID uint, event notification.Event) {
	m.Called(ctx, userID, event)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, actorID uint, action, entityType string, entityID uuid.UUID, detail string) {
	m.Called(ctx, actorID, action, entityType, entityID, detail)
}

type testDeps struct {
	repo     *MockRepository
	offers   *MockOfferRepository
	lookup   *MockLookup
	notifier *MockNotifier
	recorder *MockRecorder
	svc      Service
}

func newTestService() testDeps {
	d := testDeps{
		repo:     new(MockRepository),
		offers:   new(MockOfferRepository),
		lookup:   new(MockLookup),
		notifier: new(MockNotifier),
		recorder: new(MockRecorder),
	}
	d.svc = NewService(d.repo, d.offers, d.lookup, d.notifier, d.recorder)
	return d
}

func pendingOffer(targetType listing.TargetType, offererID uint, amount string) *offer.Offer {
	return &offer.Offer{
		ID:         uuid.New(),
		TargetType: targetType,
		TargetID:   uuid.New(),
		OffererID:  offererID,
		Amount:     decimal.RequireFromString(amount),
		Status:     offer.StatusCreated,
	}
}

// --- CreateOrderFromOffer ---

func TestCreateOrderFromOffer_ItemTarget(t *testing.T) {
	d := newTestService()

	src := pendingOffer(listing.TargetItem, 20, "80.00")
	src.Status = offer.StatusAccepted
	ownerID := uint(10)

	d.offers.On("GetByID", mock.Anything, src.ID).Return(src, nil)
	d.repo.On("ExistsByOfferID", mock.Anything, src.ID).Return(false, nil)
	d.lookup.On("OwnerAndStatus", mock.Anything, src.TargetType, src.TargetID).
		Return(&listing.Summary{OwnerID: ownerID, Status: listing.StatusActive}, nil)
	d.repo.On("CreateFromOfferTx", mock.Anything, mock.AnythingOfType("*order.Order"), mock.AnythingOfType("*order.OrderItem")).Return(nil)
	d.recorder.On("Record", mock.Anything, uint(20), "ORDER_CREATE", "ORDER", mock.Anything, mock.Anything).Return()
	d.notifier.On("Notify", mock.Anything, uint(20), mock.MatchedBy(func(e notification.Event) bool {
		return e.Type == "ORDER_CREATED"
	})).Return()
	d.notifier.On("Notify", mock.Anything, ownerID, mock.MatchedBy(func(e notification.Event) bool {
		return e.Type == "ORDER_CREATED"
	})).Return()

	o, err := d.svc.CreateFromOffer(context.Background(), 20, CreateFromOfferInput{
		OfferID:         src.ID,
		ShippingName:    "Budi",
		ShippingPhone:   "0812",
		ShippingAddress: "Jl. Merdeka 1",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusCreated, o.Status)
	assert.Equal(t, uint(20), o.BuyerID, "offerer buys an item")
	assert.Equal(t, ownerID, o.SellerID, "item owner sells")
	assert.True(t, o.TotalAmount.Equal(src.Amount))
	assert.Len(t, o.Items, 1)
	assert.Equal(t, 1, o.Items[0].Quantity)
	assert.True(t, o.Items[0].Price.Equal(src.Amount))
	assert.Equal(t, src.TargetID, o.Items[0].TargetID)

	d.repo.AssertExpectations(t)
	d.notifier.AssertExpectations(t)
}

func TestCreateOrderFromOffer_DemandTargetSwapsParties(t *testing.T) {
	d := newTestService()

	src := pendingOffer(listing.TargetDemand, 20, "50.00")
	ownerID := uint(10)

	d.offers.On("GetByID", mock.Anything, src.ID).Return(src, nil)
	d.repo.On("ExistsByOfferID", mock.Anything, src.ID).Return(false, nil)
	d.lookup.On("OwnerAndStatus", mock.Anything, src.TargetType, src.TargetID).
		Return(&listing.Summary{OwnerID: ownerID, Status: listing.StatusActive}, nil)
	d.repo.On("CreateFromOfferTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	d.recorder.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	d.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return()

	o, err := d.svc.CreateFromOffer(context.Background(), ownerID, CreateFromOfferInput{OfferID: src.ID})

	assert.NoError(t, err)
	assert.Equal(t, ownerID, o.BuyerID, "demand owner buys")
	assert.Equal(t, uint(20), o.SellerID, "offerer sells into a demand")
}

func TestCreateOrderFromOffer_DuplicateConflicts(t *testing.T) {
	d := newTestService()

	src := pendingOffer(listing.TargetItem, 20, "80.00")

	d.offers.On("GetByID", mock.Anything, src.ID).Return(src, nil)
	d.repo.On("ExistsByOfferID", mock.Anything, src.ID).Return(true, nil)

	_, err := d.svc.CreateFromOffer(context.Background(), 20, CreateFromOfferInput{OfferID: src.ID})

	assert.True(t, apperr.IsKind(err, apperr.KindConflictState))
	d.repo.AssertNotCalled(t, "CreateFromOfferTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderFromOffer_ConcurrentLoserGetsConflict(t *testing.T) {
	d := newTestService()

	src := pendingOffer(listing.TargetItem, 20, "80.00")
	ownerID := uint(10)

	d.offers.On("GetByID", mock.Anything, src.ID).Return(src, nil)
	// Pre-check saw nothing, but the unique index catches the race.
	d.repo.On("ExistsByOfferID", mock.Anything, src.ID).Return(false, nil)
	d.lookup.On("OwnerAndStatus", mock.Anything, src.TargetType, src.TargetID).
		Return(&listing.Summary{OwnerID: ownerID, Status: listing.StatusActive}, nil)
	d.repo.On("CreateFromOfferTx", mock.Anything, mock.Anything, mock.Anything).
		Return(apperr.New(apperr.KindConflictState, "order already exists for this offer"))

	_, err := d.svc.CreateFromOffer(context.Background(), 20, CreateFromOfferInput{OfferID: src.ID})

	assert.True(t, apperr.IsKind(err, apperr.KindConflictState))
}

func TestCreateOrderFromOffer_RejectedOfferConflicts(t *testing.T) {
	d := newTestService()

	for _, status := range []offer.Status{offer.StatusRejected, offer.StatusCanceled} {
		src := pendingOffer(listing.TargetItem, 20, "80.00")
		src.Status = status

		d.offers.On("GetByID", mock.Anything, src.ID).Return(src, nil)
		d.repo.On("ExistsByOfferID", mock.Anything, src.ID).Return(false, nil)

		_, err := d.svc.CreateFromOffer(context.Background(), 20, CreateFromOfferInput{OfferID: src.ID})
		assert.True(t, apperr.IsKind(err, apperr.KindConflictState), "status %s", status)
	}
}

func TestCreateOrderFromOffer_TargetNotActive(t *testing.T) {
	d := newTestService()

	src := pendingOffer(listing.TargetItem, 20, "80.00")

	d.offers.On("GetByID", mock.Anything, src.ID).Return(src, nil)
	d.repo.On("ExistsByOfferID", mock.Anything, src.ID).Return(false, nil)
	d.lookup.On("OwnerAndStatus", mock.Anything, src.TargetType, src.TargetID).
		Return(&listing.Summary{OwnerID: 10, Status: listing.StatusSold}, nil)

	_, err := d.svc.CreateFromOffer(context.Background(), 20, CreateFromOfferInput{OfferID: src.ID})

	assert.True(t, apperr.IsKind(err, apperr.KindTargetNotActive))
}

func TestCreateOrderFromOffer_ThirdPartyForbidden(t *testing.T) {
	d := newTestService()

	src := pendingOffer(listing.TargetItem, 20, "80.00")

	d.offers.On("GetByID", mock.Anything, src.ID).Return(src, nil)
	d.repo.On("ExistsByOfferID", mock.Anything, src.ID).Return(false, nil)
	d.lookup.On("OwnerAndStatus", mock.Anything, src.TargetType, src.TargetID).
		Return(&listing.Summary{OwnerID: 10, Status: listing.StatusActive}, nil)

	_, err := d.svc.CreateFromOffer(context.Background(), 99, CreateFromOfferInput{OfferID: src.ID})

	assert.True(t, apperr.IsKind(err, apperr.KindForbiddenOwner))
}

func TestCreateOrderFromOffer_OfferNotFound(t *testing.T) {
	d := newTestService()

	id := uuid.New()
	d.offers.On("GetByID", mock.Anything, id).
		Return(nil, apperr.New(apperr.KindTargetNotFound, "offer not found"))

	_, err := d.svc.CreateFromOffer(context.Background(), 20, CreateFromOfferInput{OfferID: id})

	assert.True(t, apperr.IsKind(err, apperr.KindTargetNotFound))
}

// --- TransitionOrder ---

func testOrder(status Status) *Order {
	return &Order{
		ID:          uuid.New(),
		BuyerID:     20,
		SellerID:    10,
		OfferID:     uuid.New(),
		TotalAmount: decimal.RequireFromString("80.00"),
		Status:      status,
	}
}

func TestTransitionOrder_PayByBuyer(t *testing.T) {
	d := newTestService()

	o := testOrder(StatusCreated)

	d.repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)
	d.repo.On("UpdateStatusFrom", mock.Anything, o.ID, StatusCreated, StatusPaid).Return(nil)
	d.recorder.On("Record", mock.Anything, o.BuyerID, "ORDER_PAY", "ORDER", o.ID, mock.Anything).Return()
	d.notifier.On("Notify", mock.Anything, o.SellerID, mock.MatchedBy(func(e notification.Event) bool {
		return e.Type == "ORDER_PAID"
	})).Return()

	got, err := d.svc.Transition(context.Background(), o.BuyerID, o.ID, ActionPay)

	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, got.Status)
	d.notifier.AssertExpectations(t)
}

func TestTransitionOrder_PayBySellerForbidden(t *testing.T) {
	d := newTestService()

	o := testOrder(StatusCreated)
	d.repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)

	_, err := d.svc.Transition(context.Background(), o.SellerID, o.ID, ActionPay)

	assert.True(t, apperr.IsKind(err, apperr.KindForbiddenOwner))
	d.repo.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionOrder_PayTwiceConflicts(t *testing.T) {
	d := newTestService()

	o := testOrder(StatusPaid)
	d.repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)

	_, err := d.svc.Transition(context.Background(), o.BuyerID, o.ID, ActionPay)

	assert.True(t, apperr.IsKind(err, apperr.KindConflictState))
}

func TestTransitionOrder_CancelBySellerNotifiesBuyer(t *testing.T) {
	d := newTestService()

	o := testOrder(StatusCreated)

	d.repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)
	d.repo.On("UpdateStatusFrom", mock.Anything, o.ID, StatusCreated, StatusCanceled).Return(nil)
	d.recorder.On("Record", mock.Anything, o.SellerID, "ORDER_CANCEL", "ORDER", o.ID, mock.Anything).Return()
	d.notifier.On("Notify", mock.Anything, o.BuyerID, mock.MatchedBy(func(e notification.Event) bool {
		return e.Type == "ORDER_CANCELED"
	})).Return()

	got, err := d.svc.Transition(context.Background(), o.SellerID, o.ID, ActionCancel)

	assert.NoError(t, err)
	assert.Equal(t, StatusCanceled, got.Status)
	d.notifier.AssertExpectations(t)
}

func TestTransitionOrder_CancelPaidOrderConflicts(t *testing.T) {
	d := newTestService()

	o := testOrder(StatusPaid)
	d.repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)

	_, err := d.svc.Transition(context.Background(), o.BuyerID, o.ID, ActionCancel)

	assert.True(t, apperr.IsKind(err, apperr.KindConflictState))
}

func TestTransitionOrder_CompleteNotifiesBothParties(t *testing.T) {
	d := newTestService()

	o := testOrder(StatusPaid)

	d.repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)
	d.repo.On("UpdateStatusFrom", mock.Anything, o.ID, StatusPaid, StatusCompleted).Return(nil)
	d.recorder.On("Record", mock.Anything, o.SellerID, "ORDER_COMPLETE", "ORDER", o.ID, mock.Anything).Return()
	d.notifier.On("Notify", mock.Anything, o.BuyerID, mock.MatchedBy(func(e notification.Event) bool {
		return e.Type == "ORDER_COMPLETED"
	})).Return()
	d.notifier.On("Notify", mock.Anything, o.SellerID, mock.MatchedBy(func(e notification.Event) bool {
		return e.Type == "ORDER_COMPLETED"
	})).Return()

	got, err := d.svc.Transition(context.Background(), o.SellerID, o.ID, ActionComplete)

	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	d.notifier.AssertExpectations(t)
}

func TestTransitionOrder_CompleteUnpaidConflicts(t *testing.T) {
	d := newTestService()

	o := testOrder(StatusCreated)
	d.repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)

	_, err := d.svc.Transition(context.Background(), o.BuyerID, o.ID, ActionComplete)

	assert.True(t, apperr.IsKind(err, apperr.KindConflictState))
}

func TestTransitionOrder_ThirdPartyForbidden(t *testing.T) {
	d := newTestService()

	o := testOrder(StatusCreated)
	d.repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)

	for _, action := range []Action{ActionPay, ActionCancel, ActionComplete} {
		_, err := d.svc.Transition(context.Background(), 99, o.ID, action)
		assert.True(t, apperr.IsKind(err, apperr.KindForbiddenOwner), "action %s", action)
	}
}

func TestTransitionOrder_UnknownAction(t *testing.T) {
	d := newTestService()

	o := testOrder(StatusCreated)
	d.repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)

	_, err := d.svc.Transition(context.Background(), o.BuyerID, o.ID, Action("refund"))

	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

// --- ListMine ---

func TestListMyOrders_RoleHandling(t *testing.T) {
	d := newTestService()

	d.repo.On("ListByParticipant", mock.Anything, uint(20), "buyer", int32(20), int32(0)).
		Return([]*Order{}, int64(0), nil)

	_, _, err := d.svc.ListMine(context.Background(), 20, "", 1, 20)
	assert.NoError(t, err, "empty role defaults to buyer")

	_, _, err = d.svc.ListMine(context.Background(), 20, "admin", 1, 20)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "unknown role must not silently list someone's orders")
	d.repo.AssertNumberOfCalls(t, "ListByParticipant", 1)
}

// Full happy path: offer accepted, promoted, paid, completed.
func TestOrderLifecycle(t *testing.T) {
	d := newTestService()

	src := pendingOffer(listing.TargetItem, 20, "80.00")
	src.Status = offer.StatusAccepted
	seller := uint(10)
	buyer := uint(20)

	d.offers.On("GetByID", mock.Anything, src.ID).Return(src, nil)
	d.repo.On("ExistsByOfferID", mock.Anything, src.ID).Return(false, nil)
	d.lookup.On("OwnerAndStatus", mock.Anything, src.TargetType, src.TargetID).
		Return(&listing.Summary{OwnerID: seller, Status: listing.StatusActive}, nil)
	d.repo.On("CreateFromOfferTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	d.recorder.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	d.notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return()

	o, err := d.svc.CreateFromOffer(context.Background(), buyer, CreateFromOfferInput{OfferID: src.ID})
	assert.NoError(t, err)
	assert.Equal(t, StatusCreated, o.Status)

	d.repo.On("GetByID", mock.Anything, o.ID).Return(o, nil)
	d.repo.On("UpdateStatusFrom", mock.Anything, o.ID, StatusCreated, StatusPaid).Return(nil)

	paid, err := d.svc.Transition(context.Background(), buyer, o.ID, ActionPay)
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)

	d.repo.On("UpdateStatusFrom", mock.Anything, o.ID, StatusPaid, StatusCompleted).Return(nil)

	done, err := d.svc.Transition(context.Background(), seller, o.ID, ActionComplete)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)

	assert.True(t, done.TotalAmount.Equal(src.Amount), "total never drifts from the offer amount")
}
