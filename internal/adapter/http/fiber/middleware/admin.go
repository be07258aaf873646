package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bna-assurances/campaignhub/internal/domain"
)

// AdminOnly rejects requests from non-admin users. Must run after
// AuthRequired, which loads the role fresh from the database so a demoted
// admin loses access on their next request.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(domain.UserRole)
		if !ok || role != domain.UserRoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required"})
		}
		return c.Next()
	}
}

// StaffOnly allows admins and agents, the back-office roles that manage
// campaigns.
func StaffOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(domain.UserRole)
		if !ok || (role != domain.UserRoleAdmin && role != domain.UserRoleAgent) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Staff access required"})
		}
		return c.Next()
	}
}
