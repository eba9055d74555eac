package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/jobify-service/pkg/util/errorutil"
)

// Denials carry one message per class so callers cannot tell a bad signature
// from an expired token, or a missing user from an unprivileged one.
var (
	ErrUnauthenticated = apperrors.NewUnauthorized("unauthorized access")
	ErrForbidden       = apperrors.NewForbidden("forbidden access")
)

// Gate admits a request by returning nil or denies it with an error.
type Gate func(c *fiber.Ctx) error

// Chain runs gates in order and calls the next handler only when every gate admits.
func Chain(gates ...Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, gate := range gates {
			if err := gate(c); err != nil {
				return err
			}
		}
		return c.Next()
	}
}

// DecisionRecorder observes gate outcomes.
type DecisionRecorder interface {
	RecordGateDecision(stage, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordGateDecision(string, string) {}

const (
	stageVerify    = "verify"
	stageAuthorize = "authorize"
	stageSelf      = "self"

	outcomeAdmit = "admit"
	outcomeDeny  = "deny"
	outcomeError = "error"
)

// Guards bundles the gates used to protect routes.
type Guards struct {
	Verifier   *Verifier
	Authorizer *RoleAuthorizer
}

// Authenticated requires a valid token followed by any extra gates.
func (g Guards) Authenticated(extra ...Gate) fiber.Handler {
	return Chain(append([]Gate{g.Verifier.Authenticate}, extra...)...)
}

// Privileged requires a valid token whose owner holds an admin-tier role.
func (g Guards) Privileged() fiber.Handler {
	return g.Authenticated(g.Authorizer.RequirePrivileged)
}

// Self requires a valid token whose identity matches the named path parameter.
func (g Guards) Self(param string) fiber.Handler {
	return g.Authenticated(g.Verifier.RequireSelf(param))
}
