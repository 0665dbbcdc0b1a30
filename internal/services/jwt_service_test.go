package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kodipay/kodipay-server/internal/models"
)

func TestTokenPairRoundTrip(t *testing.T) {
	svc := NewJWTService([]byte("access-secret"), []byte("refresh-secret"))
	user := &models.User{
		ID:          uuid.New(),
		PhoneNumber: "+254700000020",
		Role:        models.RoleLandlord,
	}

	access, refresh, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	claims, err := svc.VerifyAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, user.PhoneNumber, claims.PhoneNumber)
	require.Equal(t, models.RoleLandlord, claims.Role)

	rClaims, err := svc.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, user.ID, rClaims.UserID)
}

func TestVerifyAccessTokenRejectsRefreshToken(t *testing.T) {
	svc := NewJWTService([]byte("access-secret"), []byte("refresh-secret"))
	user := &models.User{ID: uuid.New(), Role: models.RoleTenant}

	_, refresh, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(refresh)
	require.Error(t, err)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService([]byte("secret-a"), []byte("refresh-a"))
	verifier := NewJWTService([]byte("secret-b"), []byte("refresh-b"))
	user := &models.User{ID: uuid.New(), Role: models.RoleTenant}

	access, _, err := issuer.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(access)
	require.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewJWTService([]byte("access-secret"), []byte("refresh-secret"))

	_, err := svc.VerifyAccessToken("not.a.token")
	require.Error(t, err)

	_, err = svc.VerifyAccessToken("")
	require.Error(t, err)
}
