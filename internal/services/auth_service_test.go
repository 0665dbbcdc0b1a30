package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/utils"
)

func newAuthFixture() (AuthService, *fakeUserRepo) {
	users := newFakeUserRepo()
	jwtSvc := NewJWTService([]byte("access-secret"), []byte("refresh-secret"))
	return NewAuthService(users, jwtSvc), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	res, err := svc.Register(ctx, "Wanjiku", "Kamau", "+254700000010", "s3cret-pass", models.RoleLandlord)
	require.NoError(t, err)
	require.Equal(t, models.RoleLandlord, res.User.Role)
	require.NotEmpty(t, res.Token)
	require.NotEmpty(t, res.RefreshToken)
	require.NotEqual(t, "s3cret-pass", res.User.PasswordHash, "password must be hashed")

	logged, err := svc.Login(ctx, "+254700000010", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, res.User.ID, logged.User.ID)
}

func TestRegisterDefaultsToTenantRole(t *testing.T) {
	svc, _ := newAuthFixture()

	res, err := svc.Register(context.Background(), "Akinyi", "Odhiambo", "+254700000011", "s3cret-pass", "")
	require.NoError(t, err)
	require.Equal(t, models.RoleTenant, res.User.Role)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "A", "B", "+254700000012", "s3cret-pass", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "C", "D", "+254700000012", "other-pass", "")
	status, code := appErrCode(t, err)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, utils.ErrCodePhoneExists, code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "A", "B", "+254700000013", "s3cret-pass", "")
	require.NoError(t, err)

	_, wrongPass := svc.Login(ctx, "+254700000013", "bad-pass")
	_, unknownPhone := svc.Login(ctx, "+254799999999", "whatever")

	for _, err := range []error{wrongPass, unknownPhone} {
		status, code := appErrCode(t, err)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, utils.ErrCodeInvalidCredentials, code)
	}
}

func TestRefreshReissuesTokens(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	res, err := svc.Register(ctx, "A", "B", "+254700000014", "s3cret-pass", "")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, refreshed.User.ID)
	require.NotEmpty(t, refreshed.Token)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	res, err := svc.Register(ctx, "A", "B", "+254700000015", "s3cret-pass", "")
	require.NoError(t, err)

	// Access and refresh tokens are signed with different secrets.
	_, err = svc.Refresh(ctx, res.Token)
	status, _ := appErrCode(t, err)
	require.Equal(t, http.StatusUnauthorized, status)
}
