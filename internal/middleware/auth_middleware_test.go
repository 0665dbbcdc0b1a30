package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/services"
)

func protectedHandler(t *testing.T, wantUserID uuid.UUID, wantRole models.RoleType) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, ok := UserIDFrom(r.Context())
		require.True(t, ok)
		require.Equal(t, wantUserID, gotID)

		gotRole, ok := RoleFrom(r.Context())
		require.True(t, ok)
		require.Equal(t, wantRole, gotRole)

		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticatePassesValidToken(t *testing.T) {
	jwtSvc := services.NewJWTService([]byte("access"), []byte("refresh"))
	user := &models.User{ID: uuid.New(), PhoneNumber: "+254700000030", Role: models.RoleLandlord}
	access, _, err := jwtSvc.GenerateTokenPair(user)
	require.NoError(t, err)

	handler := Authenticate(jwtSvc)(protectedHandler(t, user.ID, models.RoleLandlord))

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	jwtSvc := services.NewJWTService([]byte("access"), []byte("refresh"))
	handler := Authenticate(jwtSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for _, header := range []string{"", "Bearer ", "Basic abc", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticateRejectsForgedToken(t *testing.T) {
	jwtSvc := services.NewJWTService([]byte("access"), []byte("refresh"))
	forger := services.NewJWTService([]byte("other"), []byte("other-refresh"))

	user := &models.User{ID: uuid.New(), Role: models.RoleTenant}
	forged, _, err := forger.GenerateTokenPair(user)
	require.NoError(t, err)

	handler := Authenticate(jwtSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	userID := uuid.New()

	gate := RequireRole(models.RoleLandlord)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// Landlord passes.
	req := httptest.NewRequest(http.MethodGet, "/api/users/tenants", nil)
	req = req.WithContext(WithIdentity(req.Context(), userID, models.RoleLandlord))
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Tenant is rejected.
	req = httptest.NewRequest(http.MethodGet, "/api/users/tenants", nil)
	req = req.WithContext(WithIdentity(req.Context(), userID, models.RoleTenant))
	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// No identity at all is rejected.
	req = httptest.NewRequest(http.MethodGet, "/api/users/tenants", nil)
	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}
