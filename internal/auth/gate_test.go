package auth

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/frahmantamala/vacation-management/pkg/logger"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Gate", func() {
	session := &internal.Session{UserID: "u-1"}

	ginkgo.DescribeTable("RequiresSession",
		func(path string, expected bool) {
			gomega.Expect(RequiresSession(path)).To(gomega.Equal(expected))
		},
		ginkgo.Entry("profile root", "/profile", true),
		ginkgo.Entry("profile page", "/profile/u-1", true),
		ginkgo.Entry("nested profile action", "/profile/u-1/vacations/3/delete", true),
		ginkgo.Entry("similar prefix", "/profiles", false),
		ginkgo.Entry("home", "/", false),
		ginkgo.Entry("project page", "/projects/Apollo", false),
		ginkgo.Entry("auth route", "/api/auth/session", false),
	)

	ginkgo.It("should allow any request outside /profile", func() {
		gomega.Expect(Gate(nil, "/employees", "").Allow).To(gomega.BeTrue())
	})

	ginkgo.It("should allow signed-in requests to /profile", func() {
		gomega.Expect(Gate(session, "/profile/u-1", "").Allow).To(gomega.BeTrue())
	})

	ginkgo.It("should send signed-out requests to the sign-in page with a callback", func() {
		d := Gate(nil, "/profile/u-1", "tab=vacations")

		gomega.Expect(d.Allow).To(gomega.BeFalse())
		gomega.Expect(d.RedirectTo).To(gomega.Equal("/signin?callbackUrl=%2Fprofile%2Fu-1%3Ftab%3Dvacations"))
	})

	ginkgo.Describe("middleware", func() {
		var (
			manager *SessionManager
			reached bool
			handler http.Handler
		)

		ginkgo.BeforeEach(func() {
			reached = false
			manager = NewSessionManager("test-session-secret", "authjs.session-token", time.Hour, false)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			})
			handler = SessionMiddleware(manager)(GateMiddleware(next))
		})

		ginkgo.It("should redirect a signed-out profile request", func() {
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))

			gomega.Expect(reached).To(gomega.BeFalse())
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusSeeOther))
			gomega.Expect(rec.Header().Get("Location")).To(gomega.Equal("/signin?callbackUrl=%2Fprofile"))
		})

		ginkgo.It("should pass a signed-in profile request through with the session on the context", func() {
			issued := httptest.NewRecorder()
			_, err := manager.Issue(issued, Identity{UserID: "u-1", Email: "jane@example.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			var seen *internal.Session
			handler = SessionMiddleware(manager)(GateMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = internal.SessionFromContext(r.Context())
			})))

			req := httptest.NewRequest(http.MethodGet, "/profile/u-1", nil)
			for _, c := range issued.Result().Cookies() {
				req.AddCookie(c)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			gomega.Expect(seen).ToNot(gomega.BeNil())
			gomega.Expect(seen.UserID).To(gomega.Equal("u-1"))
		})

		ginkgo.It("should let signed-out requests reach public pages", func() {
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			gomega.Expect(reached).To(gomega.BeTrue())
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should answer 401 for signed-out API calls", func() {
			rec := httptest.NewRecorder()
			api := RequireSessionJSON(transport.NewBaseHandler(logger.Discard()))(http.NotFoundHandler())

			api.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("SESSION_REQUIRED"))
		})
	})
})
