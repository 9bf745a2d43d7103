package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"pasarloka-be/internal/apperr"
	"pasarloka-be/internal/logger"

	"go.uber.org/zap"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps business error kinds onto HTTP statuses. Status codes are
// purely a presentation concern; the engines only know kinds.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		logger.FromCtx(ctx).Error("internal error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error: errorDetail{Code: "INTERNAL_ERROR", Message: "internal server error"},
		})
		return
	}

	writeJSON(w, statusForKind(appErr.Kind), errorBody{
		Error: errorDetail{Code: string(appErr.Kind), Message: appErr.Message},
	})
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindAuthRequired:
		return http.StatusUnauthorized
	case apperr.KindForbiddenOwner:
		return http.StatusForbidden
	case apperr.KindTargetNotFound:
		return http.StatusNotFound
	case apperr.KindConflictState, apperr.KindTargetNotActive, apperr.KindSelfOffer:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
