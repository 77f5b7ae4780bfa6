package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"cinelog/internal/apperror"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

// writeError renders any error as the {"error": {...}} envelope. Internal
// faults are logged with their cause and surfaced as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	appErr := apperror.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	writeJSON(w, appErr.Status, map[string]any{"error": appErr})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.BadRequest("VALIDATION_ERROR", "Invalid request body")
	}
	return nil
}

// pageParams reads ?page= and ?limit= with sane bounds.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return page, limit
}
