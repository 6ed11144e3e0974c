package auth

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/go-chi/chi"
)

const (
	SignInPage      = "/signin"
	DefaultCallback = "/profile"

	errorCredentials   = "CredentialsSignin"
	errorConfiguration = "Configuration"
)

type ServiceAPI interface {
	SignIn(ctx context.Context, provider string, creds Credentials) (*Identity, error)
	Providers(baseURL string) map[string]Provider
}

// SessionAPI is the cookie side of the provider; SessionManager implements it.
type SessionAPI interface {
	Issue(w http.ResponseWriter, id Identity) (*internal.Session, error)
	Resolve(r *http.Request) *internal.Session
	Clear(w http.ResponseWriter)
}

// Handler serves the catch-all /api/auth/* route.
type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Sessions SessionAPI
	BaseURL  *url.URL

	// OnSignOut runs after the cookie is cleared, with the id of the ended session.
	OnSignOut func(sessionID string)
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, sessions SessionAPI, baseURL *url.URL) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Sessions:    sessions,
		BaseURL:     baseURL,
	}
}

type signInResponse struct {
	URL     string            `json:"url"`
	Session *internal.Session `json:"session,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := strings.Trim(chi.URLParam(r, "*"), "/")

	switch r.Method {
	case http.MethodGet:
		switch action {
		case "session":
			h.GetSession(w, r)
		case "providers":
			h.WriteJSON(w, http.StatusOK, h.Service.Providers(strings.TrimRight(h.BaseURL.String(), "/")))
		case "signin", "signin/" + ProviderCredentials:
			h.redirectToSignInPage(w, r, r.URL.Query().Get("callbackUrl"), "")
		default:
			h.WriteError(w, http.StatusNotFound, "unknown auth action")
		}
	case http.MethodPost:
		switch action {
		case "signin", "signin/" + ProviderCredentials, "callback/" + ProviderCredentials:
			h.SignIn(w, r)
		case "signout":
			h.SignOut(w, r)
		default:
			h.WriteError(w, http.StatusNotFound, "unknown auth action")
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		h.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// GetSession returns the current session, or null when signed out.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := internal.SessionFromContext(r.Context())
	if session == nil {
		session = h.Sessions.Resolve(r)
	}
	h.WriteJSON(w, http.StatusOK, session)
}

// SignIn accepts a form post or a JSON body with email, password and callbackUrl.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	asJSON := isJSONRequest(r)

	var body struct {
		Credentials
		CallbackURL string `json:"callbackUrl"`
	}
	if asJSON {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.WriteAppError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed).WithCause(err))
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.redirectToSignInPage(w, r, "", errorCredentials)
			return
		}
		body.Email = r.PostFormValue("email")
		body.Password = r.PostFormValue("password")
		body.CallbackURL = r.PostFormValue("callbackUrl")
	}

	callback := SafeCallback(h.BaseURL, body.CallbackURL, DefaultCallback)

	provider := ProviderCredentials
	if p := r.URL.Query().Get("provider"); p != "" {
		provider = p
	}

	identity, err := h.Service.SignIn(r.Context(), provider, body.Credentials)
	if err != nil {
		if asJSON {
			h.WriteAppError(w, err)
			return
		}
		code := errorCredentials
		if errors.Is(err, internal.ErrUnsupportedProvider) {
			code = errorConfiguration
		}
		h.redirectToSignInPage(w, r, callback, code)
		return
	}

	session, err := h.Sessions.Issue(w, *identity)
	if err != nil {
		if asJSON {
			h.WriteAppError(w, internal.NewInternalError("failed to establish session", err))
			return
		}
		h.Logger.Error("failed to establish session", "user_id", identity.UserID, "error", err)
		h.redirectToSignInPage(w, r, callback, errorConfiguration)
		return
	}

	if asJSON {
		h.WriteJSON(w, http.StatusOK, signInResponse{URL: callback, Session: session})
		return
	}
	http.Redirect(w, r, callback, http.StatusSeeOther)
}

// SignOut clears the session cookie and sends the browser home.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	session := internal.SessionFromContext(r.Context())
	if session == nil {
		session = h.Sessions.Resolve(r)
	}

	h.Sessions.Clear(w)
	if session != nil {
		h.Logger.Info("user signed out", "user_id", session.UserID)
		if h.OnSignOut != nil {
			h.OnSignOut(session.ID)
		}
	}

	if isJSONRequest(r) {
		h.WriteJSON(w, http.StatusOK, signInResponse{URL: "/"})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) redirectToSignInPage(w http.ResponseWriter, r *http.Request, callback, errCode string) {
	q := url.Values{}
	if errCode != "" {
		q.Set("error", errCode)
	}
	if callback != "" {
		q.Set("callbackUrl", SafeCallback(h.BaseURL, callback, DefaultCallback))
	}

	target := SignInPage
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// SafeCallback returns raw as a same-origin path, or fallback when raw is empty or
// points somewhere else.
func SafeCallback(base *url.URL, raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, `\`) {
		return fallback
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fallback
	}

	if u.IsAbs() || u.Host != "" {
		if base == nil || u.Scheme != base.Scheme || u.Host != base.Host {
			return fallback
		}
	} else if !strings.HasPrefix(raw, "/") {
		return fallback
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if strings.HasPrefix(path, "//") {
		return fallback
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
