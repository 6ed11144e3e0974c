package vacation

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListVacations(ctx context.Context) ([]*Vacation, error)
	ListUserVacations(ctx context.Context, userID string) ([]*Vacation, error)
	GetVacation(ctx context.Context, id int64) (*Vacation, error)
	CreateVacation(ctx context.Context, dto CreateVacationDTO) (*Vacation, error)
	UpdateVacation(ctx context.Context, id int64, dto UpdateVacationDTO) (*Vacation, error)
	DeleteVacation(ctx context.Context, id int64) ([]*Vacation, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ListVacations handles GET /vacations, optionally filtered by ?user_id=
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	var (
		vacations []*Vacation
		err       error
	)
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		vacations, err = h.Service.ListUserVacations(r.Context(), userID)
	} else {
		vacations, err = h.Service.ListVacations(r.Context())
	}
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, VacationsResponse{Vacations: vacations})
}

// GetVacation handles GET /vacations/{id}
func (h *Handler) GetVacation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.vacationID(w, r)
	if !ok {
		return
	}

	v, err := h.Service.GetVacation(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

// CreateVacation handles POST /vacations
func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	var dto CreateVacationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	v, err := h.Service.CreateVacation(r.Context(), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, v)
}

// UpdateVacation handles PUT /vacations/{id}
func (h *Handler) UpdateVacation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.vacationID(w, r)
	if !ok {
		return
	}

	var dto UpdateVacationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	v, err := h.Service.UpdateVacation(r.Context(), id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

// DeleteVacation handles DELETE /vacations/{id}
func (h *Handler) DeleteVacation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.vacationID(w, r)
	if !ok {
		return
	}

	deleted, err := h.Service.DeleteVacation(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, DeletedResponse{Deleted: deleted})
}

func (h *Handler) vacationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.WriteAppError(w, internal.NewValidationFieldError("id", "vacation id must be a positive integer", internal.ErrCodeValidationFailed))
		return 0, false
	}
	return id, true
}
