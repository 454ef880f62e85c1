// Package auth issues and verifies the JWTs presented at websocket
// connection time.
package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated user attached to a live connection.
type Identity struct {
	UserID    string
	UserName  string
	UserImage string
}

var ErrInvalidToken = errors.New("invalid or expired token")

// Service signs and verifies session tokens with a shared HS256 secret.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewService(secret string) *Service {
	return &Service{
		secret: []byte(secret),
		issuer: "meetgogo-service",
		ttl:    72 * time.Hour,
	}
}

// Token mints a signed session token for the given identity.
func (s *Service) Token(id Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":  id.UserID,
		"name": id.UserName,
		"exp":  time.Now().Add(s.ttl).Unix(),
		"iss":  s.issuer,
	}
	if id.UserImage != "" {
		claims["img"] = id.UserImage
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a session token and returns the identity it
// carries. Any parse, signature or expiry problem comes back as
// ErrInvalidToken.
func (s *Service) Verify(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, ErrInvalidToken
	}
	name, _ := claims["name"].(string)
	img, _ := claims["img"].(string)

	return Identity{UserID: sub, UserName: name, UserImage: img}, nil
}
