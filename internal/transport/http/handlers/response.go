package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vedran77/roster/internal/apperr"
	"github.com/vedran77/roster/internal/logctx"
	"github.com/vedran77/roster/pkg/validator"
)

const maxBodyBytes = 1 << 20

// Envelope is the shape of every API response.
type Envelope struct {
	Success bool                   `json:"success"`
	Data    any                    `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Message string                 `json:"message,omitempty"`
	Details []validator.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, Envelope{
		Error:   "Validation failed",
		Details: errs,
	})
}

// writeAppError maps the error kind to a status. Internal errors are logged
// and replaced by fallback so storage details never reach the client.
func writeAppError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	e, ok := apperr.As(err)
	if !ok || e.Kind == apperr.KindInternal {
		logctx.From(r.Context()).Error(fallback, "err", err)
		writeJSON(w, http.StatusInternalServerError, Envelope{Error: fallback})
		return
	}

	status := http.StatusBadRequest
	if e.Kind == apperr.KindNotFound {
		status = http.StatusNotFound
	}

	writeJSON(w, status, Envelope{Error: e.Message, Details: e.Details})
}

// decodeBody reads a JSON object into dst. An empty body decodes as {}.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}

func bodyError() validator.ValidationErrors {
	var errs validator.ValidationErrors
	errs.Add("body", "Invalid JSON body")
	return errs
}
