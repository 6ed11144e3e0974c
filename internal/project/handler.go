package project

import (
	"context"
	"net/http"
	"net/url"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListProjects(ctx context.Context) ([]*Project, error)
	GetProjectByName(ctx context.Context, encodedName string) (*Project, error)
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

// ListProjects handles GET /projects
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.ListProjects(r.Context())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ProjectsResponse{Projects: projects})
}

// GetProject handles GET /projects/{name}
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetProjectByName(r.Context(), EncodedNameParam(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if p == nil {
		h.WriteAppError(w, internal.ErrProjectNotFound)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

// EncodedNameParam returns the {name} path segment in its URL-encoded form. chi
// matches on the decoded path unless the request carried escapes that do not
// round-trip, in which case the segment is still encoded.
func EncodedNameParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		name = url.PathEscape(name)
	}
	return name
}
