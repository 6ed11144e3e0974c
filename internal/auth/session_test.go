package auth

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("SessionManager", func() {
	var (
		manager *SessionManager
		now     time.Time
		id      Identity
	)

	ginkgo.BeforeEach(func() {
		now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		manager = NewSessionManager("test-session-secret", "authjs.session-token", time.Hour, false).
			WithClock(func() time.Time { return now })
		id = Identity{UserID: "u-1", Email: "jane@example.com", Name: "Jane Doe"}
	})

	requestWith := func(cookies []*http.Cookie) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		return req
	}

	ginkgo.Describe("Issue", func() {
		ginkgo.It("should set an http-only lax cookie that resolves back to the session", func() {
			// Given
			rec := httptest.NewRecorder()

			// When
			session, err := manager.Issue(rec, id)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session.ID).ToNot(gomega.BeEmpty())
			gomega.Expect(session.ExpiresAt).To(gomega.BeTemporally("==", now.Add(time.Hour)))

			cookies := rec.Result().Cookies()
			gomega.Expect(cookies).To(gomega.HaveLen(1))
			gomega.Expect(cookies[0].Name).To(gomega.Equal("authjs.session-token"))
			gomega.Expect(cookies[0].HttpOnly).To(gomega.BeTrue())
			gomega.Expect(cookies[0].SameSite).To(gomega.Equal(http.SameSiteLaxMode))

			resolved := manager.Resolve(requestWith(cookies))
			gomega.Expect(resolved).ToNot(gomega.BeNil())
			gomega.Expect(resolved.ID).To(gomega.Equal(session.ID))
			gomega.Expect(resolved.UserID).To(gomega.Equal("u-1"))
			gomega.Expect(resolved.Email).To(gomega.Equal("jane@example.com"))
			gomega.Expect(resolved.Name).To(gomega.Equal("Jane Doe"))
		})

		ginkgo.It("should give every session a distinct id", func() {
			first, err := manager.Issue(httptest.NewRecorder(), id)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			second, err := manager.Issue(httptest.NewRecorder(), id)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(first.ID).ToNot(gomega.Equal(second.ID))
		})
	})

	ginkgo.Describe("Resolve", func() {
		ginkgo.It("should return nil without a cookie", func() {
			gomega.Expect(manager.Resolve(requestWith(nil))).To(gomega.BeNil())
		})

		ginkgo.It("should return nil for a token signed with another secret", func() {
			other := NewSessionManager("another-secret", "authjs.session-token", time.Hour, false).
				WithClock(func() time.Time { return now })
			rec := httptest.NewRecorder()
			_, err := other.Issue(rec, id)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(manager.Resolve(requestWith(rec.Result().Cookies()))).To(gomega.BeNil())
		})

		ginkgo.It("should return nil for a garbage token", func() {
			req := requestWith([]*http.Cookie{{Name: "authjs.session-token", Value: "not.a.jwt"}})

			gomega.Expect(manager.Resolve(req)).To(gomega.BeNil())
		})

		ginkgo.It("should return nil once the session has expired", func() {
			rec := httptest.NewRecorder()
			_, err := manager.Issue(rec, id)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			now = now.Add(2 * time.Hour)

			gomega.Expect(manager.Resolve(requestWith(rec.Result().Cookies()))).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("Clear", func() {
		ginkgo.It("should expire the cookie", func() {
			rec := httptest.NewRecorder()

			manager.Clear(rec)

			cookies := rec.Result().Cookies()
			gomega.Expect(cookies).To(gomega.HaveLen(1))
			gomega.Expect(cookies[0].MaxAge).To(gomega.BeNumerically("<", 0))
			gomega.Expect(cookies[0].Value).To(gomega.BeEmpty())
		})
	})
})
