package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentmart-backend/internal/domain"
	"rentmart-backend/internal/logger"
)

// errorStatus maps domain error codes to transport status codes. The services
// never see these; the mapping lives at the boundary only.
var errorStatus = map[string]int{
	domain.CodeProductNotFound:  http.StatusNotFound,
	domain.CodeProductDeleted:   http.StatusNotFound,
	domain.CodeOrderNotFound:    http.StatusNotFound,
	domain.CodeDeliveryNotFound: http.StatusNotFound,
	domain.CodePartnerNotFound:  http.StatusNotFound,

	domain.CodeProductAlreadyExists:       http.StatusConflict,
	domain.CodeOrderAlreadyExists:         http.StatusConflict,
	domain.CodeInsufficientStock:          http.StatusConflict,
	domain.CodeInsufficientQuantity:       http.StatusConflict,
	domain.CodeInsufficientPayment:        http.StatusConflict,
	domain.CodeInvalidOrderStatus:         http.StatusConflict,
	domain.CodeInvalidPaymentStatus:       http.StatusConflict,
	domain.CodeOrderNotCancellable:        http.StatusConflict,
	domain.CodeDeliveryServiceUnavailable: http.StatusConflict,

	domain.CodeInvalidRentalUnit:         http.StatusUnprocessableEntity,
	domain.CodeInvalidPriceConfiguration: http.StatusUnprocessableEntity,
	domain.CodeInvalidRentDates:          http.StatusUnprocessableEntity,
	domain.CodeInvalidDeliveryDates:      http.StatusUnprocessableEntity,
	domain.CodeInvalidRating:             http.StatusUnprocessableEntity,
	domain.CodeInvalidQuantity:           http.StatusUnprocessableEntity,
	domain.CodeInvalidPagination:         http.StatusUnprocessableEntity,
}

type errorPayload struct {
	Code       string         `json:"code"`
	Title      string         `json:"title"`
	StatusCode int            `json:"status_code"`
	Detail     string         `json:"detail"`
	Context    map[string]any `json:"context,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError translates an error into the transport payload. Domain errors
// keep their code, title, detail and context; anything else becomes a 500.
func writeError(w http.ResponseWriter, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		status, ok := errorStatus[de.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errorPayload{
			Code:       de.Code,
			Title:      de.Title,
			StatusCode: status,
			Detail:     de.Detail,
			Context:    de.Context,
		})
		return
	}

	logger.Error("Unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorPayload{
		Code:       "INTERNAL_SERVER_ERROR",
		Title:      "Internal Server Error",
		StatusCode: http.StatusInternalServerError,
		Detail:     "An unexpected error occurred",
	})
}

func badRequest(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusBadRequest, errorPayload{
		Code:       "BAD_REQUEST",
		Title:      "Bad Request",
		StatusCode: http.StatusBadRequest,
		Detail:     detail,
	})
}
