package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kronibola/internal/auth"
	"kronibola/internal/booking"
	"kronibola/internal/registry"
	"kronibola/internal/rowstore"
	"kronibola/internal/validate"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("write response: %v", err)
	}
}

func errorJSON(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, jsonResponse{"error": err.Error()})
}

// serviceError maps core error kinds onto HTTP statuses. Connection
// failures abort the operation with a gateway error; validation and
// lookup failures report back to the caller and nothing else.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, validate.ErrMissingField),
		errors.Is(err, validate.ErrInvalidPhoneFormat),
		errors.Is(err, validate.ErrInvalidPhoneLength),
		errors.Is(err, validate.ErrDuplicateName):
		errorJSON(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, registry.ErrSessionNotFound),
		errors.Is(err, booking.ErrRegistrationNotFound):
		errorJSON(w, http.StatusNotFound, err)
	case errors.Is(err, booking.ErrNoOpenSessions),
		errors.Is(err, booking.ErrSessionClosed):
		errorJSON(w, http.StatusConflict, err)
	case errors.Is(err, booking.ErrInvalidStatus),
		errors.Is(err, booking.ErrInvalidTransition):
		errorJSON(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		errorJSON(w, http.StatusUnauthorized, err)
	case errors.Is(err, rowstore.ErrConnection):
		log.Printf("row store: %v", err)
		errorJSON(w, http.StatusBadGateway, err)
	default:
		log.Printf("internal: %v", err)
		errorJSON(w, http.StatusInternalServerError, err)
	}
}
