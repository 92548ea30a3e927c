package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/bibbank/guestrisk/internal/domain/model"
)

// maxBodyBytes bounds request bodies. A full batch fits comfortably.
const maxBodyBytes = 4 << 20

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// writeUseCaseError maps a use case error to its status code. Client input
// errors become 422 and everything else a logged 500.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error) {
	if errors.Is(err, model.ErrMalformedInput) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	logger.ErrorContext(r.Context(), msg, slog.String("error", err.Error()))
	writeError(w, http.StatusInternalServerError, "Prediction error: internal error")
}
