package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinCost is the minimum bcrypt cost (4)
	MinCost = bcrypt.MinCost
	// DefaultCost is the recommended bcrypt cost (12)
	DefaultCost = 12
	// MaxCost is the maximum bcrypt cost (31)
	MaxCost = bcrypt.MaxCost
	// MinLength is the shortest password accepted for new accounts
	MinLength = 8
	// MaxLength is bcrypt's input limit in bytes
	MaxLength = 72

	errPasswordTooShortFmt = "password must be at least %d characters"
	errPasswordTooLongFmt  = "password must be at most %d bytes"
	errHashPasswordFmt     = "failed to hash password: %w"
	errGetHashCostFmt      = "failed to get hash cost: %w"
)

var ErrMismatch = errors.New("password does not match")

// Hasher hashes and verifies passwords with bcrypt at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher; costs outside bcrypt's range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < MinCost || cost > MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash generates a bcrypt hash of the password
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) < MinLength {
		return "", fmt.Errorf(errPasswordTooShortFmt, MinLength)
	}
	if len(password) > MaxLength {
		return "", fmt.Errorf(errPasswordTooLongFmt, MaxLength)
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf(errHashPasswordFmt, err)
	}

	return string(bytes), nil
}

// Verify checks if the password matches the hash
func (h *Hasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}

// NeedsRehash checks if the hash was produced with a lower cost than the Hasher's
func (h *Hasher) NeedsRehash(hash string) (bool, error) {
	hashCost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false, fmt.Errorf(errGetHashCostFmt, err)
	}

	return hashCost < h.cost, nil
}
