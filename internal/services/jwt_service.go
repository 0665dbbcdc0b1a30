package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/models"
)

// TokenIssuer identifies this service in every token it signs.
const TokenIssuer = "KodiPay"

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID      uuid.UUID
	PhoneNumber string
	Role        models.RoleType
}

// ---------------------------------------------------------------------
// JWTService interface
// ---------------------------------------------------------------------

type JWTService interface {
	// GenerateTokenPair signs a short-lived access token and a long-lived
	// refresh token for the user.
	GenerateTokenPair(u *models.User) (accessToken string, refreshToken string, err error)

	VerifyAccessToken(tokenString string) (*Claims, error)
	VerifyRefreshToken(tokenString string) (*Claims, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewJWTService(accessSecret, refreshSecret []byte) JWTService {
	return &jwtService{accessSecret: accessSecret, refreshSecret: refreshSecret}
}

func (j *jwtService) GenerateTokenPair(u *models.User) (string, string, error) {
	access, err := j.sign(u, j.accessSecret, AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := j.sign(u, j.refreshSecret, RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (j *jwtService) sign(u *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   TokenIssuer,
		"sub":   u.ID.String(),
		"phone": u.PhoneNumber,
		"role":  string(u.Role),
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
		"jti":   uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (j *jwtService) VerifyAccessToken(tokenString string) (*Claims, error) {
	return verify(tokenString, j.accessSecret)
}

func (j *jwtService) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return verify(tokenString, j.refreshSecret)
}

func verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	iss, _ := claims["iss"].(string)
	if iss != TokenIssuer {
		return nil, errors.New("invalid token issuer")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("missing or malformed subject claim")
	}

	role, _ := claims["role"].(string)
	if !models.RoleType(role).Valid() {
		return nil, errors.New("missing or malformed role claim")
	}

	phone, _ := claims["phone"].(string)

	return &Claims{
		UserID:      userID,
		PhoneNumber: phone,
		Role:        models.RoleType(role),
	}, nil
}
