package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/jobify-service/internal/auth"
	"github.com/spec-kit/jobify-service/internal/domain"
	"github.com/spec-kit/jobify-service/internal/repository"
	apperrors "github.com/spec-kit/jobify-service/pkg/util/errorutil"
)

// AuthService issues credentials and answers role queries.
type AuthService struct {
	tokens *auth.TokenManager
	users  repository.UserRepository
}

// NewAuthService builds the service.
func NewAuthService(tokens *auth.TokenManager, users repository.UserRepository) *AuthService {
	return &AuthService{tokens: tokens, users: users}
}

// IssueToken mints a credential for an identity the login step already vouched for.
func (s *AuthService) IssueToken(email string) (string, time.Time, error) {
	token, exp, err := s.tokens.Issue(email)
	if errors.Is(err, auth.ErrEmptyIdentity) {
		return "", time.Time{}, apperrors.NewValidationError("email required", nil)
	}
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}

// CheckRole reports whether the stored role for email is exactly role.
// The answer is informational and never grants access on its own.
func (s *AuthService) CheckRole(ctx context.Context, email string, role domain.Role) (domain.Role, bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.RoleNone, false, nil
	}
	if err != nil {
		return domain.RoleNone, false, err
	}
	if user.Role != role {
		return user.Role, false, nil
	}
	return user.Role, true, nil
}
