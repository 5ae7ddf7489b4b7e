package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/elandref93/WiseBond-sub004/internal/domain"
)

// AuthService handles identity resolution for both HTTP middleware and
// WebSocket upgrades.
type AuthService struct {
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// ResolveAuth0User maps an Auth0 subject to a local user, provisioning the
// account on first login. Satisfies middleware.UserProvider.
func (s *AuthService) ResolveAuth0User(ctx context.Context, auth0ID, email, name string) (uuid.UUID, domain.Role, error) {
	user, err := s.userRepo.CreateOrGetByAuth0ID(auth0ID, email)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create or get user")
		return uuid.Nil, "", err
	}
	return user.ID, user.Role, nil
}

// GetAgentByAuth0ID resolves an Auth0 subject to an agent's user ID,
// rejecting customers. Satisfies websocket.AgentLookup.
func (s *AuthService) GetAgentByAuth0ID(ctx context.Context, auth0ID string) (uuid.UUID, error) {
	user, err := s.userRepo.GetByAuth0ID(auth0ID)
	if err != nil {
		return uuid.Nil, err
	}
	if user.Role != domain.RoleAgent {
		return uuid.Nil, domain.ErrForbidden
	}
	return user.ID, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// RequireVerifiedUser returns the user only if their email has been
// verified, for flows that send documents by email.
func (s *AuthService) RequireVerifiedUser(id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}
	return user, nil
}

// IsNotFound reports whether the error is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrCalculationNotFound) ||
		errors.Is(err, domain.ErrEnquiryNotFound) ||
		errors.Is(err, domain.ErrApplicationNotFound) ||
		errors.Is(err, domain.ErrDocumentNotFound)
}
