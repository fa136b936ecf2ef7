package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/chasecee/cut-calc/config"
	"github.com/chasecee/cut-calc/internal/domain/model"
)

var (
	// ErrInvalidCredentials is returned when the username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned when a token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// jwtClaims extends the model claims with JWT RegisteredClaims for token
// generation.
type jwtClaims struct {
	model.Claims
	jwt.RegisteredClaims
}

// AuthService authenticates the configured admin credential and issues JWT
// tokens for stock profile mutations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, expiresIn int64, err error)
	ValidateToken(ctx context.Context, tokenString string) (*model.Claims, error)
}

// AuthServiceImpl implements AuthService against the admin credential from
// configuration. There is no user store; the service is single-tenant.
type AuthServiceImpl struct {
	adminUsername     string
	adminPasswordHash string
	secretKey         []byte
	tokenTTL          time.Duration
}

// NewAuthService creates a new authentication service.
func NewAuthService(authConfig config.AuthConfig) AuthService {
	return &AuthServiceImpl{
		adminUsername:     authConfig.AdminUsername,
		adminPasswordHash: authConfig.AdminPasswordHash,
		secretKey:         []byte(authConfig.JWTSecretKey),
		tokenTTL:          authConfig.TokenTTL,
	}
}

// Login verifies the admin credential and returns a signed token.
func (s *AuthServiceImpl) Login(_ context.Context, username, password string) (string, int64, error) {
	if s.adminUsername == "" || s.adminPasswordHash == "" {
		return "", 0, ErrInvalidCredentials
	}
	if username != s.adminUsername {
		// Keep timing uniform across failure paths.
		_ = bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password))
		return "", 0, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return "", 0, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwtClaims{
		Claims: model.Claims{Subject: username},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, int64(s.tokenTTL.Seconds()), nil
}

// ValidateToken parses and validates a token and returns its claims.
func (s *AuthServiceImpl) ValidateToken(_ context.Context, tokenString string) (*model.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &claims.Claims, nil
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
