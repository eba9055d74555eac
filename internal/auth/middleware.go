package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const claimKey = "auth_claim"

// Claim is the verified identity attached to a single request.
type Claim struct {
	Identity string
}

// Verifier validates bearer tokens on protected routes.
type Verifier struct {
	tokens   *TokenManager
	logger   *zap.Logger
	recorder DecisionRecorder
}

// NewVerifier constructs the token gate. logger and recorder may be nil.
func NewVerifier(tokens *TokenManager, logger *zap.Logger, recorder DecisionRecorder) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Verifier{tokens: tokens, logger: logger, recorder: recorder}
}

// Verify checks an Authorization header value and returns the claim it proves.
func (v *Verifier) Verify(header string) (*Claim, error) {
	if header == "" {
		v.deny("missing authorization header")
		return nil, ErrUnauthenticated
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		v.deny("malformed authorization header")
		return nil, ErrUnauthenticated
	}

	claims, err := v.tokens.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		v.deny(err.Error())
		return nil, ErrUnauthenticated
	}

	v.recorder.RecordGateDecision(stageVerify, outcomeAdmit)
	return &Claim{Identity: claims.Email}, nil
}

// Authenticate is the token gate; on success the claim is stored on the request.
func (v *Verifier) Authenticate(c *fiber.Ctx) error {
	claim, err := v.Verify(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}
	c.Locals(claimKey, claim)
	return nil
}

// RequireSelf admits only when the path parameter names the caller's own identity.
func (v *Verifier) RequireSelf(param string) Gate {
	return func(c *fiber.Ctx) error {
		claim, ok := ClaimFromContext(c)
		if !ok {
			return ErrUnauthenticated
		}
		target, err := url.PathUnescape(c.Params(param))
		if err != nil || target != claim.Identity {
			v.logger.Debug("self access denied", zap.String("path", c.Path()))
			v.recorder.RecordGateDecision(stageSelf, outcomeDeny)
			return ErrForbidden
		}
		v.recorder.RecordGateDecision(stageSelf, outcomeAdmit)
		return nil
	}
}

func (v *Verifier) deny(reason string) {
	v.logger.Debug("token rejected", zap.String("reason", reason))
	v.recorder.RecordGateDecision(stageVerify, outcomeDeny)
}

// ClaimFromContext retrieves the verified identity for the current request.
func ClaimFromContext(c *fiber.Ctx) (*Claim, bool) {
	val := c.Locals(claimKey)
	if val == nil {
		return nil, false
	}
	claim, ok := val.(*Claim)
	return claim, ok
}
