// Package handlers exposes the back-office services over JSON HTTP.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/diagnosis/hotel-backoffice/internal/domain"
	"github.com/diagnosis/hotel-backoffice/internal/http/response"
	"github.com/diagnosis/hotel-backoffice/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.WarnContext(r.Context(), "Invalid request body", "error", err, "path", r.URL.Path)
		response.BadRequest(w, "invalid json")
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}

func invalidQuery(w http.ResponseWriter, message string) {
	response.WriteError(w, http.StatusBadRequest, message, domain.CodeInvalidQuery)
}

// parsePage reads page and pageSize. Out of range values are clamped,
// non-numeric ones rejected.
func parsePage(w http.ResponseWriter, r *http.Request) (domain.Page, bool) {
	q := r.URL.Query()
	number, size := 1, domain.DefaultPageSize
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			invalidQuery(w, "page must be an integer")
			return domain.Page{}, false
		}
		number = n
	}
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			invalidQuery(w, "pageSize must be an integer")
			return domain.Page{}, false
		}
		size = n
	}
	return domain.NewPage(number, size), true
}

func optionalInt(w http.ResponseWriter, r *http.Request, name string) (*int, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		invalidQuery(w, name+" must be an integer")
		return nil, false
	}
	return &n, true
}

func optionalID(w http.ResponseWriter, r *http.Request, name string) (*int64, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		invalidQuery(w, name+" must be an integer")
		return nil, false
	}
	return &n, true
}

func optionalBool(w http.ResponseWriter, r *http.Request, name string) (bool, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return false, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		invalidQuery(w, name+" must be true or false")
		return false, false
	}
	return b, true
}

// queryDate parses a required YYYY-MM-DD query parameter.
func queryDate(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		invalidQuery(w, name+" is required")
		return time.Time{}, false
	}
	d, err := domain.ParseDate(v)
	if err != nil {
		invalidQuery(w, name+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

func setTotal(w http.ResponseWriter, total int) {
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
}
