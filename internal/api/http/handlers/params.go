package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/jobify-service/internal/api/dto"
	"github.com/spec-kit/jobify-service/internal/auth"
	apperrors "github.com/spec-kit/jobify-service/pkg/util/errorutil"
)

// Route params alias fasthttp's request buffer, so anything that may outlive
// the request is copied first.
func pathEmail(c *fiber.Ctx) string {
	raw := utils.CopyString(c.Params("email"))
	email, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return email
}

func pathID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

func actor(c *fiber.Ctx) string {
	if claim, ok := auth.ClaimFromContext(c); ok {
		return claim.Identity
	}
	return ""
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(out)
}
