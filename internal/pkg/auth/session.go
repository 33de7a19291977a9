package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying a client's registration session.
const SessionCookieName = "reg_session"

const sessionIssuer = "edurecords"

// Session token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// SessionConfig defines session token settings
type SessionConfig struct {
	SecretKey string
	TTL       time.Duration
}

// SessionClaims is the content of a registration session token.
type SessionClaims struct {
	RegNo string `json:"regNo"`
	jwt.RegisteredClaims
}

// SessionManager signs and verifies registration session tokens. Each token
// belongs to the client holding it, so one caller's submission never leaks
// into another caller's results.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager creates a session manager. An empty secret is replaced
// by a random one, which invalidates sessions on restart.
func NewSessionManager(cfg SessionConfig) (*SessionManager, error) {
	secret := []byte(cfg.SecretKey)
	if len(secret) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		secret = []byte(hex.EncodeToString(buf))
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionManager{secret: secret, ttl: ttl, now: time.Now}, nil
}

// TTL returns the lifetime of issued tokens.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue signs a token binding regNo to the caller.
func (m *SessionManager) Issue(regNo string) (string, error) {
	now := m.now()
	claims := &SessionClaims{
		RegNo: regNo,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns its claims.
func (m *SessionManager) Parse(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.RegNo == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
