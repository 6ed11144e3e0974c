package user_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/frahmantamala/vacation-management/internal/user"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubService struct {
	users []*user.User
}

func (s *stubService) ListUsers(ctx context.Context) ([]*user.User, error) {
	return s.users, nil
}

func (s *stubService) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

var _ = Describe("User Handler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		h := user.NewHandler(
			transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil))),
			&stubService{users: []*user.User{{ID: "u-1", Name: "Jane", Email: "jane@example.com"}}},
		)
		router = chi.NewRouter()
		router.Get("/users", h.ListUsers)
		router.Get("/users/{id}", h.GetUser)
	})

	It("lists users", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		var body user.UsersResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Users).To(HaveLen(1))
		Expect(body.Users[0].Email).To(Equal("jane@example.com"))
	})

	It("answers 404 for an unknown user", func() {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/ghost", nil))

		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(ContainSubstring("USER_NOT_FOUND"))
	})
})
