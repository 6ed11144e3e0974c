package profile

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/reference"
	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/frahmantamala/vacation-management/internal/user"
	"github.com/frahmantamala/vacation-management/internal/vacation"
	"github.com/frahmantamala/vacation-management/internal/web"
	"github.com/go-chi/chi"
)

type UserAPI interface {
	FindByIdentifier(ctx context.Context, identifier string) (*user.User, error)
	UpdateProfile(ctx context.Context, id string, dto user.UpdateProfileDTO) (*user.User, error)
}

type VacationAPI interface {
	ListUserVacations(ctx context.Context, userID string) ([]*vacation.Vacation, error)
	GetVacation(ctx context.Context, id int64) (*vacation.Vacation, error)
	CreateVacation(ctx context.Context, dto vacation.CreateVacationDTO) (*vacation.Vacation, error)
	DeleteVacation(ctx context.Context, id int64) ([]*vacation.Vacation, error)
}

type ReferenceAPI interface {
	ListRoles(ctx context.Context) ([]*reference.Entry, error)
	ListEmploymentTypes(ctx context.Context) ([]*reference.Entry, error)
	ListVacationStatuses(ctx context.Context) ([]*reference.Entry, error)
	ListVacationTypes(ctx context.Context) ([]*reference.Entry, error)
}

type Handler struct {
	*transport.BaseHandler
	Users     UserAPI
	Vacations VacationAPI
	Reference ReferenceAPI
	Stores    *Stores
	Renderer  *web.Renderer
}

func NewHandler(baseHandler *transport.BaseHandler, users UserAPI, vacations VacationAPI, ref ReferenceAPI, stores *Stores, renderer *web.Renderer) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Users:       users,
		Vacations:   vacations,
		Reference:   ref,
		Stores:      stores,
		Renderer:    renderer,
	}
}

// Redirect handles GET /profile
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, RedirectTarget(internal.SessionFromContext(r.Context())), http.StatusSeeOther)
}

// Show handles GET /profile/{identifier}
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return
	}
	h.render(w, r, u, http.StatusOK, "")
}

// Update handles POST /profile/{identifier}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadOwnedUser(w, r)
	if !ok {
		return
	}

	dto := user.UpdateProfileDTO{
		Name:     r.PostFormValue("name"),
		Position: r.PostFormValue("position"),
		Phone:    r.PostFormValue("phone"),
	}
	updated, err := h.Users.UpdateProfile(r.Context(), u.ID, dto)
	if err != nil {
		h.renderActionError(w, r, u, err)
		return
	}

	h.storeFor(r).Set(updated)
	http.Redirect(w, r, web.ProfilePath(updated.ID), http.StatusSeeOther)
}

// CreateVacation handles POST /profile/{identifier}/vacations
func (h *Handler) CreateVacation(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadOwnedUser(w, r)
	if !ok {
		return
	}

	typeID, _ := strconv.ParseInt(r.PostFormValue("vacation_type_id"), 10, 64)
	_, err := h.Vacations.CreateVacation(r.Context(), vacation.CreateVacationDTO{
		UserID:         u.ID,
		VacationTypeID: typeID,
		StartDate:      r.PostFormValue("start_date"),
		EndDate:        r.PostFormValue("end_date"),
		Comment:        r.PostFormValue("comment"),
	})
	if err != nil {
		h.renderActionError(w, r, u, err)
		return
	}

	http.Redirect(w, r, web.ProfilePath(u.ID), http.StatusSeeOther)
}

// DeleteVacation handles POST /profile/{identifier}/vacations/{id}/delete
func (h *Handler) DeleteVacation(w http.ResponseWriter, r *http.Request) {
	u, ok := h.loadOwnedUser(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.Renderer.RenderError(w, r, internal.ErrVacationNotFound)
		return
	}

	v, err := h.Vacations.GetVacation(r.Context(), id)
	if err != nil {
		h.Renderer.RenderError(w, r, err)
		return
	}
	if v.UserID != u.ID {
		h.Renderer.RenderError(w, r, internal.ErrVacationNotFound)
		return
	}

	if _, err := h.Vacations.DeleteVacation(r.Context(), id); err != nil {
		h.Renderer.RenderError(w, r, err)
		return
	}

	http.Redirect(w, r, web.ProfilePath(u.ID), http.StatusSeeOther)
}

// Me handles GET /api/v1/me, answering from the session's profile store when it is
// already filled.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session := internal.SessionFromContext(r.Context())
	if session == nil {
		h.WriteAppError(w, internal.ErrSessionRequired)
		return
	}

	store := h.storeFor(r)
	if cached := store.Get(); cached != nil {
		h.WriteJSON(w, http.StatusOK, cached)
		return
	}

	u, err := h.Users.FindByIdentifier(r.Context(), session.Identifier())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if u == nil {
		h.WriteAppError(w, internal.ErrUserNotFound)
		return
	}

	store.Set(u)
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) loadUser(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	identifier := chi.URLParam(r, "identifier")
	if r.URL.RawPath != "" {
		decoded, err := url.PathUnescape(identifier)
		if err != nil {
			h.Renderer.RenderError(w, r, internal.ErrUserNotFound)
			return nil, false
		}
		identifier = decoded
	}

	u, err := h.Users.FindByIdentifier(r.Context(), identifier)
	if err != nil {
		h.Renderer.RenderError(w, r, err)
		return nil, false
	}
	if u == nil {
		h.Renderer.RenderError(w, r, internal.ErrUserNotFound)
		return nil, false
	}
	return u, true
}

func (h *Handler) loadOwnedUser(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	u, ok := h.loadUser(w, r)
	if !ok {
		return nil, false
	}
	if !IsOwner(internal.SessionFromContext(r.Context()), u) {
		h.Renderer.RenderError(w, r, internal.ErrNotProfileOwner)
		return nil, false
	}
	return u, true
}

func (h *Handler) renderActionError(w http.ResponseWriter, r *http.Request, u *user.User, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok || appErr.Type != internal.ErrorTypeValidation {
		h.Renderer.RenderError(w, r, err)
		return
	}
	h.render(w, r, u, appErr.StatusCode, appErr.GetDetailedMessage())
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, u *user.User, status int, errMsg string) {
	view, err := h.buildView(r.Context(), u)
	if err != nil {
		h.Renderer.RenderError(w, r, err)
		return
	}

	session := internal.SessionFromContext(r.Context())
	view.IsOwner = IsOwner(session, u)
	if view.IsOwner {
		h.storeFor(r).Set(u)
	}

	h.Renderer.Render(w, status, web.PageProfile, web.Page{
		Title:   u.DisplayName(),
		Session: session,
		Error:   errMsg,
		Data:    view,
	})
}

func (h *Handler) buildView(ctx context.Context, u *user.User) (*View, error) {
	roles, err := h.Reference.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	employmentTypes, err := h.Reference.ListEmploymentTypes(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := h.Reference.ListVacationStatuses(ctx)
	if err != nil {
		return nil, err
	}
	types, err := h.Reference.ListVacationTypes(ctx)
	if err != nil {
		return nil, err
	}
	vacations, err := h.Vacations.ListUserVacations(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	statusNames := reference.NewLookup(statuses)
	typeNames := reference.NewLookup(types)

	rows := make([]VacationRow, 0, len(vacations))
	for _, v := range vacations {
		rows = append(rows, VacationRow{
			Vacation: v,
			Type:     typeNames.Name(&v.VacationTypeID),
			Status:   statusNames.Name(&v.VacationStatusID),
		})
	}

	return &View{
		User:           u,
		Role:           reference.NewLookup(roles).Name(u.RoleID),
		EmploymentType: reference.NewLookup(employmentTypes).Name(u.EmploymentTypeID),
		Vacations:      rows,
		VacationTypes:  types,
	}, nil
}

// storeFor returns a throwaway store when there is nothing to retain, so callers
// never need a nil check.
func (h *Handler) storeFor(r *http.Request) *Store {
	if h.Stores == nil {
		return &Store{}
	}
	return h.Stores.For(internal.SessionFromContext(r.Context()))
}
