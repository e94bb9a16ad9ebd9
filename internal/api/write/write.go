package write

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/portfoliopro/folio/internal/apierrors"
	"github.com/portfoliopro/folio/internal/log"
	foliocontext "github.com/portfoliopro/folio/utils/context"
)

// JSONResponse writes the payload with the given status code.
func JSONResponse(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)

	err := enc.Encode(payload)
	if err != nil {
		log.Error(ctx, "Failed to encode response", err)
	}
}

// ErrorResponse writes an error response to the client and tags it with the
// request ID so the failure can be correlated with the logs.
func ErrorResponse(ctx context.Context, w http.ResponseWriter, errorResponse apierrors.ErrorMessage) {
	requestID, _ := foliocontext.GetRequestID(ctx)

	errorResponse.Error.RequestID = &requestID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errorResponse.Error.Status)

	enc := json.NewEncoder(w)

	err := enc.Encode(&errorResponse)
	if err != nil {
		log.Error(ctx, "Failed to encode error response", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)

		return
	}
}
