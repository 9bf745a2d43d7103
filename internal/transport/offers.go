package transport

import (
	"net/http"

	"pasarloka-be/internal/apperr"
	"pasarloka-be/internal/middleware"
	"pasarloka-be/internal/offer"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type createOfferRequest struct {
	TargetType string          `json:"targetType"`
	TargetID   uuid.UUID       `json:"targetId"`
	Amount     decimal.Decimal `json:"amount"`
	Message    *string         `json:"message,omitempty"`
}

type offerResponse struct {
	OfferID string `json:"offerId"`
	Status  string `json:"status"`
}

func (h *Handler) createOffer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := middleware.ActorFrom(ctx)
	if !ok {
		writeError(ctx, w, apperr.New(apperr.KindAuthRequired, "authentication required"))
		return
	}

	var req createOfferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	o, err := h.Offers.Create(ctx, actorID, offer.CreateInput{
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Amount:     req.Amount,
		Message:    req.Message,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, offerResponse{
		OfferID: o.ID.String(),
		Status:  string(o.Status),
	})
}

func (h *Handler) transitionOffer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := middleware.ActorFrom(ctx)
	if !ok {
		writeError(ctx, w, apperr.New(apperr.KindAuthRequired, "authentication required"))
		return
	}

	offerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(ctx, w, apperr.New(apperr.KindValidation, "invalid offer id"))
		return
	}

	action, err := offer.ParseAction(r.URL.Query().Get("action"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	o, err := h.Offers.Transition(ctx, actorID, offerID, action)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, offerResponse{
		OfferID: o.ID.String(),
		Status:  string(o.Status),
	})
}
