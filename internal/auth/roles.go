package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/jobify-service/internal/domain"
	"github.com/spec-kit/jobify-service/internal/repository"
	apperrors "github.com/spec-kit/jobify-service/pkg/util/errorutil"
)

// DefaultResolverTimeout bounds a single role lookup.
const DefaultResolverTimeout = 3 * time.Second

// IdentityResolver looks up the stored user for a verified identity.
type IdentityResolver struct {
	users   repository.UserRepository
	timeout time.Duration
}

// NewIdentityResolver builds a resolver. A non-positive timeout selects DefaultResolverTimeout.
func NewIdentityResolver(users repository.UserRepository, timeout time.Duration) *IdentityResolver {
	if timeout <= 0 {
		timeout = DefaultResolverTimeout
	}
	return &IdentityResolver{users: users, timeout: timeout}
}

// Resolve returns the user for identity, or nil when none is stored.
func (r *IdentityResolver) Resolve(ctx context.Context, identity string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	user, err := r.users.GetByEmail(ctx, identity)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return user, nil
}

// RoleAuthorizer admits callers holding an admin-tier role.
type RoleAuthorizer struct {
	resolver *IdentityResolver
	logger   *zap.Logger
	recorder DecisionRecorder
}

// NewRoleAuthorizer constructs the role gate. logger and recorder may be nil.
func NewRoleAuthorizer(resolver *IdentityResolver, logger *zap.Logger, recorder DecisionRecorder) *RoleAuthorizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &RoleAuthorizer{resolver: resolver, logger: logger, recorder: recorder}
}

// Authorize returns nil when claim's user is admin or superAdmin, ErrForbidden
// otherwise. Storage failures come back as internal errors.
func (a *RoleAuthorizer) Authorize(ctx context.Context, claim *Claim) error {
	if claim == nil {
		return ErrUnauthenticated
	}

	user, err := a.resolver.Resolve(ctx, claim.Identity)
	if err != nil {
		a.recorder.RecordGateDecision(stageAuthorize, outcomeError)
		return apperrors.NewInternalError(err)
	}
	if user == nil || !user.Role.Privileged() {
		a.logger.Debug("role check denied")
		a.recorder.RecordGateDecision(stageAuthorize, outcomeDeny)
		return ErrForbidden
	}

	a.recorder.RecordGateDecision(stageAuthorize, outcomeAdmit)
	return nil
}

// RequirePrivileged is the role gate. It must run after Verifier.Authenticate.
func (a *RoleAuthorizer) RequirePrivileged(c *fiber.Ctx) error {
	claim, ok := ClaimFromContext(c)
	if !ok {
		return ErrUnauthenticated
	}
	return a.Authorize(c.UserContext(), claim)
}
