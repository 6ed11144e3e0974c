package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/frahmantamala/vacation-management/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// failingSessions resolves and clears like the real manager but never issues.
type failingSessions struct {
	*SessionManager
}

func (failingSessions) Issue(http.ResponseWriter, Identity) (*internal.Session, error) {
	return nil, errors.New("signing key unavailable")
}

var _ = ginkgo.Describe("Handler", func() {
	var (
		router     *chi.Mux
		handler    *Handler
		manager    *SessionManager
		signedOut  []string
		baseURL, _ = url.Parse("http://localhost:3000")
	)

	ginkgo.BeforeEach(func() {
		signedOut = nil
		manager = NewSessionManager("test-session-secret", "authjs.session-token", time.Hour, false)
		service := NewService(newMockUserLookup(), logger.Discard())
		handler = NewHandler(transport.NewBaseHandler(logger.Discard()), service, manager, baseURL)
		handler.OnSignOut = func(sessionID string) { signedOut = append(signedOut, sessionID) }

		router = chi.NewRouter()
		router.Use(SessionMiddleware(manager))
		router.Handle("/api/auth/*", handler)
	})

	postForm := func(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	ginkgo.Describe("POST /api/auth/signin/credentials", func() {
		ginkgo.It("should set the session cookie and redirect to the callback", func() {
			rec := postForm("/api/auth/signin/credentials", url.Values{
				"email":       {"jane@example.com"},
				"password":    {"correct_password"},
				"callbackUrl": {"/profile/u-1"},
			})

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusSeeOther))
			gomega.Expect(rec.Header().Get("Location")).To(gomega.Equal("/profile/u-1"))
			gomega.Expect(rec.Result().Cookies()).To(gomega.HaveLen(1))
		})

		ginkgo.It("should default the callback to /profile", func() {
			rec := postForm("/api/auth/signin", url.Values{
				"email":    {"jane@example.com"},
				"password": {"correct_password"},
			})

			gomega.Expect(rec.Header().Get("Location")).To(gomega.Equal("/profile"))
		})

		ginkgo.It("should ignore an off-site callback", func() {
			rec := postForm("/api/auth/signin", url.Values{
				"email":       {"jane@example.com"},
				"password":    {"correct_password"},
				"callbackUrl": {"https://evil.example.com/steal"},
			})

			gomega.Expect(rec.Header().Get("Location")).To(gomega.Equal("/profile"))
		})

		ginkgo.It("should send a failed sign-in back to the sign-in page", func() {
			rec := postForm("/api/auth/signin/credentials", url.Values{
				"email":       {"jane@example.com"},
				"password":    {"wrong_password"},
				"callbackUrl": {"/profile/u-1"},
			})

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusSeeOther))
			location, err := url.Parse(rec.Header().Get("Location"))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(location.Path).To(gomega.Equal("/signin"))
			gomega.Expect(location.Query().Get("error")).To(gomega.Equal("CredentialsSignin"))
			gomega.Expect(location.Query().Get("callbackUrl")).To(gomega.Equal("/profile/u-1"))
			gomega.Expect(rec.Result().Cookies()).To(gomega.BeEmpty())
		})

		ginkgo.It("should answer JSON clients with 401 on bad credentials", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signin",
				strings.NewReader(`{"email":"jane@example.com","password":"nope"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("INVALID_CREDENTIALS"))
		})
	})

	ginkgo.Describe("when the session cannot be signed", func() {
		ginkgo.BeforeEach(func() {
			handler.Sessions = failingSessions{SessionManager: manager}
		})

		ginkgo.It("should send a form post back to the sign-in page with a configuration error", func() {
			rec := postForm("/api/auth/signin/credentials", url.Values{
				"email":       {"jane@example.com"},
				"password":    {"correct_password"},
				"callbackUrl": {"/profile/u-1"},
			})

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusSeeOther))
			location, err := url.Parse(rec.Header().Get("Location"))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(location.Path).To(gomega.Equal("/signin"))
			gomega.Expect(location.Query().Get("error")).To(gomega.Equal("Configuration"))
			gomega.Expect(location.Query().Get("callbackUrl")).To(gomega.Equal("/profile/u-1"))
			gomega.Expect(rec.Result().Cookies()).To(gomega.BeEmpty())
		})

		ginkgo.It("should answer JSON clients with a 500", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signin",
				strings.NewReader(`{"email":"jane@example.com","password":"correct_password"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusInternalServerError))
			gomega.Expect(rec.Body.String()).ToNot(gomega.ContainSubstring("signing key"))
		})
	})

	ginkgo.Describe("GET /api/auth/session", func() {
		ginkgo.It("should return null when signed out", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(strings.TrimSpace(rec.Body.String())).To(gomega.Equal("null"))
		})

		ginkgo.It("should return the session when signed in", func() {
			signIn := postForm("/api/auth/signin", url.Values{
				"email":    {"jane@example.com"},
				"password": {"correct_password"},
			})

			req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
			for _, c := range signIn.Result().Cookies() {
				req.AddCookie(c)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			var body map[string]any
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body["id"]).To(gomega.Equal("u-1"))
			gomega.Expect(body["email"]).To(gomega.Equal("jane@example.com"))
		})
	})

	ginkgo.Describe("POST /api/auth/signout", func() {
		ginkgo.It("should clear the cookie, report the ended session and redirect home", func() {
			signIn := postForm("/api/auth/signin", url.Values{
				"email":    {"jane@example.com"},
				"password": {"correct_password"},
			})

			rec := postForm("/api/auth/signout", url.Values{}, signIn.Result().Cookies()...)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusSeeOther))
			gomega.Expect(rec.Header().Get("Location")).To(gomega.Equal("/"))
			gomega.Expect(rec.Result().Cookies()[0].MaxAge).To(gomega.BeNumerically("<", 0))
			gomega.Expect(signedOut).To(gomega.HaveLen(1))
		})

		ginkgo.It("should still redirect home without a session", func() {
			rec := postForm("/api/auth/signout", url.Values{})

			gomega.Expect(rec.Header().Get("Location")).To(gomega.Equal("/"))
			gomega.Expect(signedOut).To(gomega.BeEmpty())
		})
	})

	ginkgo.It("should 404 unknown actions", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/whatever", nil))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
	})
})

var _ = ginkgo.DescribeTable("SafeCallback",
	func(raw, expected string) {
		base, _ := url.Parse("http://localhost:3000")
		gomega.Expect(SafeCallback(base, raw, "/profile")).To(gomega.Equal(expected))
	},
	ginkgo.Entry("empty falls back", "", "/profile"),
	ginkgo.Entry("relative path is kept", "/profile/u-1", "/profile/u-1"),
	ginkgo.Entry("query is kept", "/profile/u-1?tab=vacations", "/profile/u-1?tab=vacations"),
	ginkgo.Entry("same-origin absolute url is reduced to its path", "http://localhost:3000/projects/Apollo", "/projects/Apollo"),
	ginkgo.Entry("other host falls back", "http://evil.example.com/", "/profile"),
	ginkgo.Entry("protocol-relative falls back", "//evil.example.com/x", "/profile"),
	ginkgo.Entry("backslash trick falls back", `/\evil.example.com`, "/profile"),
	ginkgo.Entry("bare word falls back", "profile", "/profile"),
	ginkgo.Entry("escaped email is kept", "/profile/jane%40example.com", "/profile/jane%40example.com"),
)
