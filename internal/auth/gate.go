package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/frahmantamala/vacation-management/pkg/logger"
)

const gatedPrefix = "/profile"

// RequiresSession reports whether path is under /profile.
func RequiresSession(path string) bool {
	return path == gatedPrefix || strings.HasPrefix(path, gatedPrefix+"/")
}

type Decision struct {
	Allow      bool
	RedirectTo string
}

// Gate decides a request from its session and path alone. Signed-out requests for a
// gated path are sent to the sign-in page with the original URL as callback.
func Gate(session *internal.Session, path, rawQuery string) Decision {
	if !RequiresSession(path) || session != nil {
		return Decision{Allow: true}
	}

	callback := path
	if rawQuery != "" {
		callback += "?" + rawQuery
	}
	return Decision{
		RedirectTo: SignInPage + "?" + url.Values{"callbackUrl": {callback}}.Encode(),
	}
}

// SessionMiddleware resolves the session cookie once per request and puts the result,
// possibly nil, on the request context.
func SessionMiddleware(sessions *SessionManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			session := sessions.Resolve(r)
			if session != nil {
				ctx = logger.With(ctx, "user_id", session.UserID)
			}
			ctx = internal.ContextWithSession(ctx, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GateMiddleware applies Gate to every request. Mount it after SessionMiddleware.
func GateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := internal.SessionFromContext(r.Context())
		d := Gate(session, r.URL.EscapedPath(), r.URL.RawQuery)
		if !d.Allow {
			logger.From(r.Context()).Info("session required", "path", r.URL.Path)
			http.Redirect(w, r, d.RedirectTo, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSessionJSON rejects signed-out API calls with 401.
func RequireSessionJSON(base *transport.BaseHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if internal.SessionFromContext(r.Context()) == nil {
				base.WriteAppError(w, internal.ErrSessionRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
