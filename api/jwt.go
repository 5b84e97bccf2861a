package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ladderleague/ladder-bot/app/shared"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// Claims carries the authenticated caller's identity. The Discord
// gateway mints these tokens when it proxies a slash command.
type Claims struct {
	UserID    shared.UserID
	ExpiresAt time.Time
	IssuedAt  time.Time
}

type botClaims struct {
	jwt.RegisteredClaims
}

// JWTProvider signs and validates the bearer tokens on API requests.
type JWTProvider interface {
	GenerateToken(userID shared.UserID, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type jwtProvider struct {
	secret []byte
}

// NewJWTProvider creates an HMAC-signed JWT provider.
func NewJWTProvider(secret string) JWTProvider {
	return &jwtProvider{secret: []byte(secret)}
}

func (p *jwtProvider) GenerateToken(userID shared.UserID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &botClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   string(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (p *jwtProvider) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &botClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return p.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*botClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	out := &Claims{UserID: shared.UserID(claims.Subject)}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
