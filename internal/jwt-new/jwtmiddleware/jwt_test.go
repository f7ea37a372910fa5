package jwtmiddleware_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linemk/shop-online-api/internal/domain/models"
	security "github.com/linemk/shop-online-api/internal/jwt-new"
	"github.com/linemk/shop-online-api/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/shop-online-api/internal/storage"
)

const testSecret = "testsecret"

type fakeUsers struct {
	users map[int64]*models.User
	err   error
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return u, nil
}

type fakeShops struct {
	shops map[int64]*models.Shop
}

func (f *fakeShops) GetShopByUserID(ctx context.Context, userID int64) (*models.Shop, error) {
	s, ok := f.shops[userID]
	if !ok {
		return nil, storage.ErrShopNotFound
	}
	return s, nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func bearer(t *testing.T, userID int64, ttl time.Duration) string {
	t.Helper()
	token, err := security.NewToken(strconv.FormatInt(userID, 10), security.AudienceAccess, ttl, testSecret)
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func activeUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]*models.User{
		1: {ID: 1, Email: "a@example.com", IsActive: true, Role: models.RoleBuyer},
		2: {ID: 2, Email: "b@example.com", IsActive: false, Role: models.RoleBuyer},
	}}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	h := jwtmiddleware.Authenticate(newLogger(), testSecret, activeUsers())(okHandler())

	rr := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"detail":"Could not validate credentials."}`, rr.Body.String())
}

func TestAuthenticate_ValidToken(t *testing.T) {
	var got *models.User
	h := jwtmiddleware.Authenticate(newLogger(), testSecret, activeUsers())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = jwtmiddleware.UserFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	rr := serve(h, bearer(t, 1, time.Minute))
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
}

func TestAuthenticate_ExpiredOrMalformedRejectedRegardlessOfUser(t *testing.T) {
	users := activeUsers()
	h := jwtmiddleware.Authenticate(newLogger(), testSecret, users)(okHandler())

	cases := map[string]string{
		"expired existing user":   bearer(t, 1, -time.Minute),
		"expired missing user":    bearer(t, 99, -time.Minute),
		"malformed":               "Bearer invalid.token.value",
		"wrong scheme":            "Basic abc",
		"valid but missing user":  bearer(t, 99, time.Minute),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rr := serve(h, header)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.JSONEq(t, `{"detail":"Could not validate credentials."}`, rr.Body.String())
		})
	}
}

func TestAuthenticate_NonNumericSubject(t *testing.T) {
	token, err := security.NewToken("a@example.com", security.AudienceAccess, time.Minute, testSecret)
	require.NoError(t, err)

	h := jwtmiddleware.Authenticate(newLogger(), testSecret, activeUsers())(okHandler())
	rr := serve(h, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticate_RejectsMailTokens(t *testing.T) {
	h := jwtmiddleware.Authenticate(newLogger(), testSecret, activeUsers())(okHandler())

	for _, aud := range []string{security.AudiencePasswordReset, security.AudienceActivation} {
		t.Run(aud, func(t *testing.T) {
			token, err := security.NewToken("1", aud, 12*time.Hour, testSecret)
			require.NoError(t, err)

			rr := serve(h, "Bearer "+token)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestAuthenticate_NoneAlgorithmRejected(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	h := jwtmiddleware.Authenticate(newLogger(), testSecret, activeUsers())(okHandler())
	rr := serve(h, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	h := jwtmiddleware.Authenticate(newLogger(), testSecret, activeUsers())(okHandler())

	rr := serve(h, bearer(t, 2, time.Minute))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"detail":"Please activate your account."}`, rr.Body.String())
}

func TestAuthenticate_StorageFailure(t *testing.T) {
	users := &fakeUsers{err: errors.New("db down")}
	h := jwtmiddleware.Authenticate(newLogger(), testSecret, users)(okHandler())

	rr := serve(h, bearer(t, 1, time.Minute))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func requestAs(user *models.User) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(jwtmiddleware.WithUser(req.Context(), user))
}

func TestRequireShop(t *testing.T) {
	shops := &fakeShops{shops: map[int64]*models.Shop{
		10: {ID: 1, UserID: 10, ShopName: "Approved", IsApproved: true},
		11: {ID: 2, UserID: 11, ShopName: "Pending", IsApproved: false},
	}}

	tests := []struct {
		name   string
		user   *models.User
		status int
		detail string
	}{
		{"buyer role", &models.User{ID: 1, Role: models.RoleBuyer}, http.StatusForbidden, "Forbidden."},
		{"not approved", &models.User{ID: 11, Role: models.RoleShop}, http.StatusForbidden, "Your shop is not approved."},
		{"no shop", &models.User{ID: 12, Role: models.RoleShop}, http.StatusForbidden, "Your shop is not approved."},
		{"approved", &models.User{ID: 10, Role: models.RoleShop}, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var shop *models.Shop
			h := jwtmiddleware.RequireShop(newLogger(), shops)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				shop, _ = jwtmiddleware.ShopFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, requestAs(tt.user))

			assert.Equal(t, tt.status, rr.Code)
			if tt.detail != "" {
				assert.JSONEq(t, `{"detail":"`+tt.detail+`"}`, rr.Body.String())
			} else {
				require.NotNil(t, shop)
				assert.Equal(t, int64(1), shop.ID)
			}
		})
	}
}

func TestRequireSuperuser(t *testing.T) {
	h := jwtmiddleware.RequireSuperuser()(okHandler())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestAs(&models.User{ID: 1, IsSuperuser: false}))
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"detail":"Only Site Administrator can access this page."}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, requestAs(&models.User{ID: 1, IsSuperuser: true}))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireSuperuser_NoUser(t *testing.T) {
	h := jwtmiddleware.RequireSuperuser()(okHandler())
	rr := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
