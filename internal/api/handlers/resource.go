package handlers

import (
	"context"
	"errors"
	"log"
	"mime"
	"net/http"
	"strconv"

	"coopcycle-service/internal/models"
	"coopcycle-service/internal/repository"
	"coopcycle-service/internal/service"

	"github.com/go-chi/chi/v5"
)

// EntityService is what a resource needs from the service layer.
type EntityService[D any] interface {
	Name() string
	ID(d *D) models.ID
	Create(ctx context.Context, d *D) (*D, error)
	Update(ctx context.Context, id models.ID, d *D) (*D, error)
	PartialUpdate(ctx context.Context, id models.ID, d *D) (*D, error)
	FindAll(ctx context.Context, page *repository.Pageable, filter repository.Filter) (*service.Page[D], error)
	FindOne(ctx context.Context, id models.ID) (*D, error)
	Delete(ctx context.Context, id models.ID) error
}

// Resource serves /api/<path> for one entity.
type Resource[D any] struct {
	path   string
	svc    EntityService[D]
	alerts Alerts
	paging Paging
}

func NewResource[D any](path string, svc EntityService[D], alerts Alerts, paging Paging) *Resource[D] {
	return &Resource[D]{path: path, svc: svc, alerts: alerts, paging: paging}
}

func (h *Resource[D]) Mount(r chi.Router) {
	r.Route("/"+h.path, func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}", h.Patch)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Resource[D]) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("REST request to save %s", h.svc.Name())

	var d D
	if ok := decodeJSON(w, r, &d); !ok {
		return
	}

	out, err := h.svc.Create(r.Context(), &d)
	if err != nil {
		h.fail(w, err, "failed to create "+h.svc.Name())
		return
	}

	id := h.svc.ID(out).String()
	w.Header().Set("Location", "/api/"+h.path+"/"+id)
	h.alerts.Created(w, h.svc.Name(), id)
	writeJSON(w, http.StatusCreated, out)
}

func (h *Resource[D]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	log.Printf("REST request to update %s: id=%d", h.svc.Name(), id)

	var d D
	if ok := decodeJSON(w, r, &d); !ok {
		return
	}

	out, err := h.svc.Update(r.Context(), id, &d)
	if err != nil {
		h.fail(w, err, "failed to update "+h.svc.Name())
		return
	}

	h.alerts.Updated(w, h.svc.Name(), id.String())
	writeJSON(w, http.StatusOK, out)
}

func (h *Resource[D]) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	log.Printf("REST request to partially update %s: id=%d", h.svc.Name(), id)

	if !mergePatchType(r.Header.Get("Content-Type")) {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type",
			"expected application/merge-patch+json or application/json", nil)
		return
	}

	var d D
	if ok := decodeJSON(w, r, &d); !ok {
		return
	}

	out, err := h.svc.PartialUpdate(r.Context(), id, &d)
	if err != nil {
		h.fail(w, err, "failed to update "+h.svc.Name())
		return
	}

	h.alerts.Updated(w, h.svc.Name(), id.String())
	writeJSON(w, http.StatusOK, out)
}

func (h *Resource[D]) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := h.paging.parsePageable(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		return
	}
	filter, err := parseFilter(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		return
	}

	result, err := h.svc.FindAll(r.Context(), page, filter)
	if err != nil {
		h.fail(w, err, "failed to list "+h.svc.Name())
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(result.Total, 10))
	if link := linkHeader(r.URL, page, result.Total); link != "" {
		w.Header().Set("Link", link)
	}
	items := result.Items
	if items == nil {
		items = []*D{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Resource[D]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	out, err := h.svc.FindOne(r.Context(), id)
	if err != nil {
		h.fail(w, err, "failed to get "+h.svc.Name())
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Resource[D]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	log.Printf("REST request to delete %s: id=%d", h.svc.Name(), id)

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "failed to delete "+h.svc.Name())
		return
	}

	h.alerts.Deleted(w, h.svc.Name(), id.String())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Resource[D]) pathID(w http.ResponseWriter, r *http.Request) (models.ID, bool) {
	idStr := chi.URLParam(r, "id")

	id, err := models.ParseID(idStr)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid "+h.svc.Name()+" id", nil)
		return 0, false
	}
	return id, true
}

// fail maps service errors to responses: alerts and invalid input are 400,
// missing rows 404, anything else 500 with message.
func (h *Resource[D]) fail(w http.ResponseWriter, err error, message string) {
	var alert *service.AlertError
	switch {
	case errors.As(err, &alert):
		h.alerts.Failure(w, alert)
		status := http.StatusBadRequest
		if errors.Is(err, repository.ErrNotFound) {
			status = http.StatusNotFound
		}
		var details any
		if len(alert.Fields) > 0 {
			details = alert.Fields
		}
		writeError(w, status, alert.Key, alert.Message, details)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", h.svc.Name()+" not found", nil)
	case errors.Is(err, repository.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	default:
		log.Printf("Error: %s: %v", message, err)
		writeError(w, http.StatusInternalServerError, "internal_error", message, nil)
	}
}

func mergePatchType(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/merge-patch+json" || mt == "application/json"
}
