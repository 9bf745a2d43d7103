package transport

import (
	"net/http"
	"time"

	"pasarloka-be/internal/apperr"
	"pasarloka-be/internal/middleware"
	"pasarloka-be/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type createOrderRequest struct {
	OfferID         uuid.UUID `json:"offerId"`
	ShippingName    string    `json:"shippingName"`
	ShippingPhone   string    `json:"shippingPhone"`
	ShippingAddress string    `json:"shippingAddress"`
	PaymentMethod   *string   `json:"paymentMethod,omitempty"`
}

type orderStatusResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type orderItemDTO struct {
	OrderItemID string          `json:"orderItemId"`
	TargetType  string          `json:"targetType"`
	TargetID    string          `json:"targetId"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type orderDetailDTO struct {
	OrderID         string          `json:"orderId"`
	BuyerID         uint            `json:"buyerId"`
	SellerID        uint            `json:"sellerId"`
	OfferID         string          `json:"offerId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	ShippingName    string          `json:"shippingName"`
	ShippingPhone   string          `json:"shippingPhone"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   *string         `json:"paymentMethod,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Items           []orderItemDTO  `json:"items"`
}

type orderListResponse struct {
	Total  int64            `json:"total"`
	Orders []orderDetailDTO `json:"orders"`
}

func toOrderDetailDTO(o *order.Order) orderDetailDTO {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDTO{
			OrderItemID: it.ID.String(),
			TargetType:  string(it.TargetType),
			TargetID:    it.TargetID.String(),
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}

	return orderDetailDTO{
		OrderID:         o.ID.String(),
		BuyerID:         o.BuyerID,
		SellerID:        o.SellerID,
		OfferID:         o.OfferID.String(),
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		ShippingName:    o.ShippingName,
		ShippingPhone:   o.ShippingPhone,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           items,
	}
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := middleware.ActorFrom(ctx)
	if !ok {
		writeError(ctx, w, apperr.New(apperr.KindAuthRequired, "authentication required"))
		return
	}

	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	o, err := h.Orders.CreateFromOffer(ctx, actorID, order.CreateFromOfferInput{
		OfferID:         req.OfferID,
		ShippingName:    req.ShippingName,
		ShippingPhone:   req.ShippingPhone,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, orderStatusResponse{
		OrderID: o.ID.String(),
		Status:  string(o.Status),
	})
}

func (h *Handler) transitionOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := middleware.ActorFrom(ctx)
	if !ok {
		writeError(ctx, w, apperr.New(apperr.KindAuthRequired, "authentication required"))
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(ctx, w, apperr.New(apperr.KindValidation, "invalid order id"))
		return
	}

	action, err := order.ParseAction(r.URL.Query().Get("action"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	o, err := h.Orders.Transition(ctx, actorID, orderID, action)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, orderStatusResponse{
		OrderID: o.ID.String(),
		Status:  string(o.Status),
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := middleware.ActorFrom(ctx)
	if !ok {
		writeError(ctx, w, apperr.New(apperr.KindAuthRequired, "authentication required"))
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(ctx, w, apperr.New(apperr.KindValidation, "invalid order id"))
		return
	}

	o, err := h.Orders.GetDetail(ctx, actorID, orderID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderDetailDTO(o))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := middleware.ActorFrom(ctx)
	if !ok {
		writeError(ctx, w, apperr.New(apperr.KindAuthRequired, "authentication required"))
		return
	}

	role := r.URL.Query().Get("role")
	page := queryInt32(r, "page", 1)
	size := queryInt32(r, "size", 20)

	orders, total, err := h.Orders.ListMine(ctx, actorID, role, page, size)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := orderListResponse{Total: total, Orders: make([]orderDetailDTO, 0, len(orders))}
	for _, o := range orders {
		out.Orders = append(out.Orders, toOrderDetailDTO(o))
	}

	writeJSON(w, http.StatusOK, out)
}
