package service

import (
	"context"
	"strings"

	"library-cms/internal/domain/user"
	apperrors "library-cms/pkg/errors"

	"github.com/google/uuid"
)

// AuthService issues session tokens and provisions accounts.
type AuthService struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
	deps
}

func NewAuthService(users UserRepository, hasher PasswordHasher, tokens TokenGenerator, opts Options) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, deps: newDeps(opts)}
}

// Login verifies credentials and returns a signed token for the user.
// Unknown emails and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load user for login")
		return "", nil, apperrors.Upstream(msgFetchUserFail)
	}
	if u == nil {
		return "", nil, apperrors.InvalidCredentials()
	}
	if err := s.hasher.Verify(password, u.PasswordHash); err != nil {
		s.log.Info().Str("user_id", u.ID.String()).Msg("login rejected")
		return "", nil, apperrors.InvalidCredentials()
	}

	token, err := s.tokens.Generate(u.Actor())
	if err != nil {
		s.log.Error().Err(err).Str("user_id", u.ID.String()).Msg("failed to issue token")
		return "", nil, apperrors.Upstream(msgIssueTokenFail)
	}
	s.log.Info().Str("user_id", u.ID.String()).Str("role", string(u.Role)).Msg("user logged in")
	return token, u, nil
}

// Me returns the account behind actor.
func (s *AuthService) Me(ctx context.Context, actor *user.Actor) (*user.User, error) {
	if actor == nil {
		return nil, apperrors.Unauthorized("Unauthorized")
	}
	u, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", actor.ID.String()).Msg("failed to load user")
		return nil, apperrors.Upstream(msgFetchUserFail)
	}
	if u == nil {
		return nil, apperrors.Unauthorized("Unauthorized")
	}
	return u, nil
}

// CreateUser provisions an account. Library admins must be bound to a library.
func (s *AuthService) CreateUser(ctx context.Context, email, password string, role user.Role, libraryID uuid.UUID) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := role.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if role == user.RoleLibraryAdmin && libraryID == uuid.Nil {
		return nil, apperrors.Validation(msgLibraryIDRequired)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to check existing user")
		return nil, apperrors.Upstream(msgFetchUserFail)
	}
	if existing != nil {
		return nil, apperrors.Conflict(msgUserAlreadyExists)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	u, err := s.users.Create(ctx, user.CreateUserInput{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		LibraryID:    idPtr(libraryID),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create user")
		return nil, apperrors.Upstream(msgCreateUserFail)
	}
	s.log.Info().Str("user_id", u.ID.String()).Str("role", string(role)).Msg("user created")
	return u, nil
}
