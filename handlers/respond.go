package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"hrms/apperror"

	"github.com/go-chi/chi/v5"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// respondError renders validation failures as a field-keyed error list and
// maps apperror codes onto HTTP statuses. Nothing here is fatal to the
// process; internal errors are logged and answered generically.
func respondError(w http.ResponseWriter, err error) {
	if fieldErrs, ok := apperror.AsFieldErrors(err); ok {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"errors":  fieldErrs.ByField(),
		})
		return
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Code {
		case apperror.CodeValidation:
			status = http.StatusBadRequest
		case apperror.CodeNotFound:
			status = http.StatusNotFound
		case apperror.CodeConflict:
			status = http.StatusConflict
		}
		respondJSON(w, status, map[string]interface{}{"error": appErr.Message})
		return
	}

	log.Printf("internal error: %v", err)
	respondJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "internal server error"})
}

func parseIDParam(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, apperror.New(apperror.CodeValidation, "invalid id")
	}
	return uint(id), nil
}

// parseDateQuery reads an optional 2006-01-02 query parameter.
func parseDateQuery(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperror.New(apperror.CodeValidation, name+" must be a date in YYYY-MM-DD format")
	}
	return &parsed, nil
}
