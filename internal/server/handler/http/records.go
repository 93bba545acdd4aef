package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vietsport/eprofile/internal/repository"
	"github.com/vietsport/eprofile/internal/service"
)

// RecordsService defines the collection operations required by the
// CRUD handlers.
type RecordsService interface {
	List(ctx context.Context, collection string, filters map[string]string, order *repository.OrderBy) ([]map[string]any, error)
	Get(ctx context.Context, collection string, id int64) (map[string]any, error)
	Create(ctx context.Context, collection string, data map[string]any) (map[string]any, error)
	Update(ctx context.Context, collection string, id int64, data map[string]any) (map[string]any, error)
	Delete(ctx context.Context, collection string, id int64) error
}

// RecordsHandler serves /api/{collection} CRUD for the allowlisted
// collections.
type RecordsHandler struct {
	RecordsService RecordsService
}

// List handles GET /api/{collection}. Query parameters are equality
// filters, except orderby=<field>-<asc|desc>.
func (h *RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	filters := make(map[string]string)
	var order *repository.OrderBy
	for key, values := range r.URL.Query() {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		if key == "orderby" {
			order = parseOrderBy(values[0])
			continue
		}
		filters[key] = values[0]
	}

	rows, err := h.RecordsService.List(r.Context(), collection, filters, order)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	writeData(w, http.StatusOK, rows)
}

// Get handles GET /api/{collection}/{id}.
func (h *RecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	collection, id, ok := recordTarget(w, r)
	if !ok {
		return
	}

	rec, err := h.RecordsService.Get(r.Context(), collection, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, rec)
}

// Create handles POST /api/{collection} and returns the stored object
// with its assigned id.
func (h *RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Yêu cầu không hợp lệ")
		return
	}

	rec, err := h.RecordsService.Create(r.Context(), collection, body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, rec)
}

// Update handles PUT /api/{collection}/{id}, merging the body into the
// stored object.
func (h *RecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	collection, id, ok := recordTarget(w, r)
	if !ok {
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Yêu cầu không hợp lệ")
		return
	}

	rec, err := h.RecordsService.Update(r.Context(), collection, id, body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, rec)
}

// Delete handles DELETE /api/{collection}/{id}.
func (h *RecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	collection, id, ok := recordTarget(w, r)
	if !ok {
		return
	}

	if err := h.RecordsService.Delete(r.Context(), collection, id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Đã xoá", nil)
}

func recordTarget(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	collection := chi.URLParam(r, "collection")
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Mã bản ghi không hợp lệ")
		return "", 0, false
	}
	return collection, id, true
}

// parseOrderBy splits "<field>-<asc|desc>" on the last dash so field
// names containing dashes survive.
func parseOrderBy(raw string) *repository.OrderBy {
	i := strings.LastIndex(raw, "-")
	if i < 0 {
		return &repository.OrderBy{Field: raw}
	}
	return &repository.OrderBy{
		Field: raw[:i],
		Desc:  strings.EqualFold(raw[i+1:], "desc"),
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownCollection), errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUseRegistry):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
