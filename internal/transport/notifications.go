package transport

import (
	"net/http"
	"time"

	"pasarloka-be/internal/apperr"
	"pasarloka-be/internal/middleware"
)

type notificationDTO struct {
	NotificationID string    `json:"notificationId"`
	EventType      string    `json:"eventType"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	RelatedType    string    `json:"relatedType"`
	RelatedID      string    `json:"relatedId"`
	CreatedAt      time.Time `json:"createdAt"`
}

type notificationListResponse struct {
	Total         int64             `json:"total"`
	Notifications []notificationDTO `json:"notifications"`
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actorID, ok := middleware.ActorFrom(ctx)
	if !ok {
		writeError(ctx, w, apperr.New(apperr.KindAuthRequired, "authentication required"))
		return
	}

	page := queryInt32(r, "page", 1)
	size := queryInt32(r, "size", 20)

	notifs, total, err := h.Notifications.ListMine(ctx, actorID, page, size)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := notificationListResponse{Total: total, Notifications: make([]notificationDTO, 0, len(notifs))}
	for _, n := range notifs {
		out.Notifications = append(out.Notifications, notificationDTO{
			NotificationID: n.ID.String(),
			EventType:      n.EventType,
			Title:          n.Title,
			Body:           n.Body,
			RelatedType:    n.RelatedType,
			RelatedID:      n.RelatedID.String(),
			CreatedAt:      n.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}
