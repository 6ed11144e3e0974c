package web

import (
	"context"
	"net/http"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/project"
	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/frahmantamala/vacation-management/internal/user"
)

var signInErrors = map[string]string{
	"CredentialsSignin": "Invalid email or password.",
	"Configuration":     "That sign-in method is not available.",
}

type UserLister interface {
	ListUsers(ctx context.Context) ([]*user.User, error)
}

type ProjectFinder interface {
	ListProjects(ctx context.Context) ([]*project.Project, error)
	GetProjectByName(ctx context.Context, encodedName string) (*project.Project, error)
}

// Handler serves the public pages.
type Handler struct {
	*transport.BaseHandler
	Renderer *Renderer
	Users    UserLister
	Projects ProjectFinder
}

func NewHandler(baseHandler *transport.BaseHandler, renderer *Renderer, users UserLister, projects ProjectFinder) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Renderer:    renderer,
		Users:       users,
		Projects:    projects,
	}
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.ListProjects(r.Context())
	if err != nil {
		h.Renderer.RenderError(w, r, err)
		return
	}

	h.Renderer.Render(w, http.StatusOK, PageHome, Page{
		Session: internal.SessionFromContext(r.Context()),
		Data:    projects,
	})
}

// SignIn handles GET /signin
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.Renderer.Render(w, http.StatusOK, PageSignIn, Page{
		Title:   "Sign in",
		Session: internal.SessionFromContext(r.Context()),
		Error:   signInErrors[q.Get("error")],
		Data:    q.Get("callbackUrl"),
	})
}

// Employees handles GET /employees
func (h *Handler) Employees(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		h.Renderer.RenderError(w, r, err)
		return
	}

	h.Renderer.Render(w, http.StatusOK, PageEmployees, Page{
		Title:   "Employees",
		Session: internal.SessionFromContext(r.Context()),
		Data:    users,
	})
}

// Project handles GET /projects/{name}
func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	p, err := h.Projects.GetProjectByName(r.Context(), project.EncodedNameParam(r))
	if err != nil {
		h.Renderer.RenderError(w, r, err)
		return
	}
	if p == nil {
		h.Renderer.RenderError(w, r, internal.ErrProjectNotFound)
		return
	}

	h.Renderer.Render(w, http.StatusOK, PageProject, Page{
		Title:   p.Name,
		Session: internal.SessionFromContext(r.Context()),
		Data:    p,
	})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Renderer.RenderError(w, r, internal.NewNotFoundError("Page not found", "PAGE_NOT_FOUND"))
}
