package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"neoverse-be/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, params user.RegisterParams, hashedPassword string, role user.Role) (user.User, error) {
	args := m.Called(ctx, params, hashedPassword, role)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (user.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepo) EmailTaken(ctx context.Context, email string, excludeID int) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, params user.UpdateProfileParams) (user.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id int, role user.Role) (user.User, error) {
	args := m.Called(ctx, id, role)
	return args.Get(0).(user.User), args.Error(1)
}

func okHandler(hit *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hit = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	t.Run("MissingToken", func(t *testing.T) {
		var hit bool
		req := httptest.NewRequest("GET", "/api/user/profile", nil)
		rec := httptest.NewRecorder()

		Authenticate(okHandler(&hit)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, hit)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Missing authorization token", body["message"])
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		var hit bool
		req := httptest.NewRequest("GET", "/api/user/profile", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		Authenticate(okHandler(&hit)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, hit)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		var hit bool
		req := httptest.NewRequest("GET", "/api/user/profile", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()

		Authenticate(okHandler(&hit)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, hit)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := user.GenerateJWT(42, "john", "user")
		require.NoError(t, err)

		var gotID int
		var gotUsername, gotRole string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, _ = UserIDFromContext(r.Context())
			gotUsername = UsernameFromContext(r.Context())
			gotRole = RoleFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/api/user/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 42, gotID)
		assert.Equal(t, "john", gotUsername)
		assert.Equal(t, "user", gotRole)
	})
}

func TestAdminRequired(t *testing.T) {
	t.Run("AdminPasses", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByID", mock.Anything, 1).Return(user.User{ID: 1, Role: user.RoleAdmin}, nil)

		var hit bool
		req := httptest.NewRequest("GET", "/api/admin/orders", nil)
		req = req.WithContext(SetUserContext(req.Context(), 1, "root", "admin"))
		rec := httptest.NewRecorder()

		AdminRequired(repo)(okHandler(&hit)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, hit)
	})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByID", mock.Anything, 2).Return(user.User{ID: 2, Role: user.RoleUser}, nil)

		var hit bool
		req := httptest.NewRequest("GET", "/api/admin/orders", nil)
		req = req.WithContext(SetUserContext(req.Context(), 2, "john", "user"))
		rec := httptest.NewRecorder()

		AdminRequired(repo)(okHandler(&hit)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, hit)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Admin access required", body["msg"])
	})

	t.Run("DemotedAdminForbidden", func(t *testing.T) {
		// Token still says admin, the row no longer does.
		repo := new(mockUserRepo)
		repo.On("FindByID", mock.Anything, 3).Return(user.User{ID: 3, Role: user.RoleUser}, nil)

		var hit bool
		req := httptest.NewRequest("GET", "/api/admin/orders", nil)
		req = req.WithContext(SetUserContext(req.Context(), 3, "jane", "admin"))
		rec := httptest.NewRecorder()

		AdminRequired(repo)(okHandler(&hit)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, hit)
	})

	t.Run("LookupError", func(t *testing.T) {
		repo := new(mockUserRepo)
		repo.On("FindByID", mock.Anything, 4).Return(user.User{}, errors.New("db error"))

		var hit bool
		req := httptest.NewRequest("GET", "/api/admin/orders", nil)
		req = req.WithContext(SetUserContext(req.Context(), 4, "ghost", "admin"))
		rec := httptest.NewRecorder()

		AdminRequired(repo)(okHandler(&hit)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, hit)
	})

	t.Run("NoIdentity", func(t *testing.T) {
		var hit bool
		req := httptest.NewRequest("GET", "/api/admin/orders", nil)
		rec := httptest.NewRecorder()

		AdminRequired(new(mockUserRepo))(okHandler(&hit)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, hit)
	})
}

func TestRateLimitTiers(t *testing.T) {
	strictLimit, strictBurst, strictTier := resolveRateTier(httptest.NewRequest("POST", "/api/auth/login", nil))
	assert.Equal(t, limitStrict, strictLimit)
	assert.Equal(t, burstStrict, strictBurst)
	assert.Equal(t, "strict", strictTier)

	_, _, tier := resolveRateTier(httptest.NewRequest("POST", "/api/checkout/create-payment-intent", nil))
	assert.Equal(t, "strict", tier)

	generalLimit, _, generalTier := resolveRateTier(httptest.NewRequest("GET", "/api/products", nil))
	assert.Equal(t, limitGeneral, generalLimit)
	assert.Equal(t, "general", generalTier)
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// The strict tier allows a burst of burstStrict requests, then throttles.
	var lastCode int
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "10.9.8.7:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)

	// A different identity is unaffected.
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "10.9.8.8:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
