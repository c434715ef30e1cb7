package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/hossein-sa/twitter-clone-api/internal/models"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrInvalidToken is returned when a token fails parsing, signature
	// verification, or carries the wrong type claim.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenBlacklisted is returned for refresh tokens revoked by logout.
	ErrTokenBlacklisted = errors.New("token has been blacklisted")
)

const blacklistKeyPrefix = "blacklist:refresh:"

// TokenPair holds an access/refresh token pair as returned by login
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenManager issues and validates HMAC-signed access/refresh tokens and
// keeps revoked refresh token ids in Redis until they expire on their own.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	redis      *redis.Client
}

// NewTokenManager creates a TokenManager backed by the given Redis client
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration, redisClient *redis.Client) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		redis:      redisClient,
	}
}

// IssuePair issues a fresh access/refresh token pair for the user
func (m *TokenManager) IssuePair(user *models.User) (*TokenPair, error) {
	access, err := m.sign(user, models.TokenTypeAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(user, models.TokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess issues a standalone access token for the user
func (m *TokenManager) IssueAccess(user *models.User) (string, error) {
	return m.sign(user, models.TokenTypeAccess, m.accessTTL)
}

func (m *TokenManager) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a token's signature and expiry and checks it carries the
// expected type claim
func (m *TokenManager) Parse(tokenString, expectedType string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expectedType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateRefresh parses a refresh token and rejects blacklisted ones
func (m *TokenManager) ValidateRefresh(ctx context.Context, tokenString string) (*models.JwtCustomClaims, error) {
	claims, err := m.Parse(tokenString, models.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	_, err = m.redis.Get(ctx, blacklistKeyPrefix+claims.ID).Result()
	if err == nil {
		return nil, ErrTokenBlacklisted
	}
	if err != redis.Nil {
		return nil, err
	}
	return claims, nil
}

// BlacklistRefresh revokes a refresh token. The blacklist entry lives only
// until the token would have expired anyway.
func (m *TokenManager) BlacklistRefresh(ctx context.Context, tokenString string) error {
	claims, err := m.Parse(tokenString, models.TokenTypeRefresh)
	if err != nil {
		return err
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return m.redis.Set(ctx, blacklistKeyPrefix+claims.ID, "revoked", ttl).Err()
}
