package profile_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/profile"
	"github.com/frahmantamala/vacation-management/internal/reference"
	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/frahmantamala/vacation-management/internal/user"
	"github.com/frahmantamala/vacation-management/internal/vacation"
	"github.com/frahmantamala/vacation-management/internal/web"
	"github.com/frahmantamala/vacation-management/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) FindByIdentifier(ctx context.Context, identifier string) (*user.User, error) {
	if u, ok := f.users[identifier]; ok {
		return u, nil
	}
	for _, u := range f.users {
		if u.Email == identifier {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id string, dto user.UpdateProfileDTO) (*user.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	updated := *u
	updated.Name, updated.Position, updated.Phone = dto.Name, dto.Position, dto.Phone
	f.users[id] = &updated
	return &updated, nil
}

type fakeVacations struct {
	byID   map[int64]*vacation.Vacation
	nextID int64
}

func (f *fakeVacations) ListUserVacations(ctx context.Context, userID string) ([]*vacation.Vacation, error) {
	var out []*vacation.Vacation
	for _, v := range f.byID {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVacations) GetVacation(ctx context.Context, id int64) (*vacation.Vacation, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, internal.ErrVacationNotFound
	}
	return v, nil
}

func (f *fakeVacations) CreateVacation(ctx context.Context, dto vacation.CreateVacationDTO) (*vacation.Vacation, error) {
	start, end, err := dto.Validate()
	if err != nil {
		return nil, err
	}
	f.nextID++
	v := &vacation.Vacation{
		ID:               f.nextID,
		UserID:           dto.UserID,
		VacationTypeID:   dto.VacationTypeID,
		VacationStatusID: vacation.DefaultStatusID,
		StartDate:        start,
		EndDate:          end,
		Comment:          dto.Comment,
	}
	f.byID[v.ID] = v
	return v, nil
}

func (f *fakeVacations) DeleteVacation(ctx context.Context, id int64) ([]*vacation.Vacation, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, internal.ErrVacationNotFound
	}
	delete(f.byID, id)
	return []*vacation.Vacation{v}, nil
}

type fakeReference struct{}

func (fakeReference) ListRoles(ctx context.Context) ([]*reference.Entry, error) {
	return []*reference.Entry{{ID: 1, Name: "Engineer"}}, nil
}

func (fakeReference) ListEmploymentTypes(ctx context.Context) ([]*reference.Entry, error) {
	return []*reference.Entry{{ID: 1, Name: "Full-time"}}, nil
}

func (fakeReference) ListVacationStatuses(ctx context.Context) ([]*reference.Entry, error) {
	return []*reference.Entry{{ID: 1, Name: "Pending"}, {ID: 2, Name: "Approved"}}, nil
}

func (fakeReference) ListVacationTypes(ctx context.Context) ([]*reference.Entry, error) {
	return []*reference.Entry{{ID: 1, Name: "Annual leave"}}, nil
}

var _ = Describe("Handler", func() {
	var (
		router    *chi.Mux
		users     *fakeUsers
		vacations *fakeVacations
		stores    *profile.Stores
		session   *internal.Session
	)

	roleID := int64(1)

	BeforeEach(func() {
		users = &fakeUsers{users: map[string]*user.User{
			"u-1": {ID: "u-1", Name: "Jane Doe", Email: "jane@example.com", RoleID: &roleID},
			"u-2": {ID: "u-2", Name: "John Roe", Email: "john@example.com"},
		}}
		vacations = &fakeVacations{byID: map[int64]*vacation.Vacation{
			7: {
				ID: 7, UserID: "u-1", VacationTypeID: 1, VacationStatusID: 2,
				StartDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
			},
		}, nextID: 7}
		stores = profile.NewStores()
		session = &internal.Session{ID: "sess-1", UserID: "u-1", Email: "jane@example.com", ExpiresAt: time.Now().Add(time.Hour)}

		renderer, err := web.NewRenderer(logger.Discard())
		Expect(err).NotTo(HaveOccurred())

		h := profile.NewHandler(transport.NewBaseHandler(logger.Discard()), users, vacations, fakeReference{}, stores, renderer)

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithSession(r.Context(), session)))
			})
		})
		router.Get("/profile", h.Redirect)
		router.Get("/profile/{identifier}", h.Show)
		router.Post("/profile/{identifier}", h.Update)
		router.Post("/profile/{identifier}/vacations", h.CreateVacation)
		router.Post("/profile/{identifier}/vacations/{id}/delete", h.DeleteVacation)
		router.Get("/api/v1/me", h.Me)
	})

	serve := func(method, target string, form url.Values) *httptest.ResponseRecorder {
		var req *http.Request
		if form != nil {
			req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("redirects /profile to the signed-in user's page", func() {
		rec := serve(http.MethodGet, "/profile", nil)

		Expect(rec.Code).To(Equal(http.StatusSeeOther))
		Expect(rec.Header().Get("Location")).To(Equal("/profile/u-1"))
	})

	It("renders the profile with role, vacations and lookups", func() {
		rec := serve(http.MethodGet, "/profile/u-1", nil)

		Expect(rec.Code).To(Equal(http.StatusOK))
		body := rec.Body.String()
		Expect(body).To(ContainSubstring("Jane Doe"))
		Expect(body).To(ContainSubstring("Engineer"))
		Expect(body).To(ContainSubstring("Annual leave"))
		Expect(body).To(ContainSubstring("Approved"))
		Expect(body).To(ContainSubstring("2024-07-05"))
		Expect(stores.For(session).Get().ID).To(Equal("u-1"))
	})

	It("finds a profile by url-encoded email", func() {
		rec := serve(http.MethodGet, "/profile/jane%40example.com", nil)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("Jane Doe"))
	})

	It("renders a 404 page for an unknown identifier", func() {
		rec := serve(http.MethodGet, "/profile/nobody", nil)

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("hides edit forms on someone else's profile", func() {
		rec := serve(http.MethodGet, "/profile/u-2", nil)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).NotTo(ContainSubstring("Edit profile"))
	})

	It("updates the owner's profile and refreshes the store", func() {
		rec := serve(http.MethodPost, "/profile/u-1", url.Values{"name": {"Jane Q. Doe"}, "position": {"Lead"}})

		Expect(rec.Code).To(Equal(http.StatusSeeOther))
		Expect(rec.Header().Get("Location")).To(Equal("/profile/u-1"))
		Expect(users.users["u-1"].Name).To(Equal("Jane Q. Doe"))
		Expect(stores.For(session).Get().Position).To(Equal("Lead"))
	})

	It("re-renders the form with a 400 when the update is invalid", func() {
		rec := serve(http.MethodPost, "/profile/u-1", url.Values{"name": {"  "}})

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("name is required"))
	})

	It("forbids changing someone else's profile", func() {
		rec := serve(http.MethodPost, "/profile/u-2", url.Values{"name": {"Hacked"}})

		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(users.users["u-2"].Name).To(Equal("John Roe"))
	})

	It("books a vacation for the owner", func() {
		rec := serve(http.MethodPost, "/profile/u-1/vacations", url.Values{
			"vacation_type_id": {"1"},
			"start_date":       {"2024-08-01"},
			"end_date":         {"2024-08-02"},
		})

		Expect(rec.Code).To(Equal(http.StatusSeeOther))
		Expect(vacations.byID).To(HaveKey(int64(8)))
		Expect(vacations.byID[8].VacationStatusID).To(Equal(vacation.DefaultStatusID))
	})

	It("rejects a vacation that ends before it starts", func() {
		rec := serve(http.MethodPost, "/profile/u-1/vacations", url.Values{
			"vacation_type_id": {"1"},
			"start_date":       {"2024-08-05"},
			"end_date":         {"2024-08-01"},
		})

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(vacations.byID).To(HaveLen(1))
	})

	It("deletes the owner's vacation", func() {
		rec := serve(http.MethodPost, "/profile/u-1/vacations/7/delete", url.Values{})

		Expect(rec.Code).To(Equal(http.StatusSeeOther))
		Expect(vacations.byID).NotTo(HaveKey(int64(7)))
	})

	It("does not delete a vacation through another user's profile", func() {
		session = &internal.Session{ID: "sess-2", UserID: "u-2"}

		rec := serve(http.MethodPost, "/profile/u-2/vacations/7/delete", url.Values{})

		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(vacations.byID).To(HaveKey(int64(7)))
	})

	Describe("Me", func() {
		It("answers from the session store once filled", func() {
			cached := &user.User{ID: "u-1", Name: "Cached Jane"}
			stores.For(session).Set(cached)

			rec := serve(http.MethodGet, "/api/v1/me", nil)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Cached Jane"))
		})

		It("loads and caches the profile on first use", func() {
			rec := serve(http.MethodGet, "/api/v1/me", nil)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(stores.For(session).Get().Name).To(Equal("Jane Doe"))
		})

		It("requires a session", func() {
			session = nil

			rec := serve(http.MethodGet, "/api/v1/me", nil)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
