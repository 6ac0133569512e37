package auth

import (
	"errors"
	"fmt"
	"time"

	"library-cms/internal/domain/user"

	"github.com/benbjohnson/clock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carry the session identity. LibraryID is absent for actors without a library.
type Claims struct {
	UserID    uuid.UUID  `json:"user_id"`
	Role      user.Role  `json:"role"`
	LibraryID *uuid.UUID `json:"library_id,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into the identity services authorize against.
func (c *Claims) Actor() *user.Actor {
	a := &user.Actor{ID: c.UserID, Role: c.Role}
	if c.LibraryID != nil {
		a.LibraryID = *c.LibraryID
	}
	return a
}

type JWTService struct {
	secret []byte
	expiry time.Duration
	clock  clock.Clock
}

func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return NewJWTServiceWithClock(secret, expiry, clock.New())
}

func NewJWTServiceWithClock(secret string, expiry time.Duration, clk clock.Clock) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
		clock:  clk,
	}
}

func (s *JWTService) Generate(actor *user.Actor) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		UserID: actor.ID,
		Role:   actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if actor.HasLibrary() {
		id := actor.LibraryID
		claims.LibraryID = &id
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf(msgUnexpectedSigningMethod, token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)

	if err != nil {
		return nil, fmt.Errorf(msgTokenParseFailed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New(msgInvalidTokenClaims)
	}
	if err := claims.Role.Validate(); err != nil {
		return nil, fmt.Errorf(msgInvalidRoleClaim, err)
	}

	return claims, nil
}
