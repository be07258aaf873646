package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/ports"
)

type UserHandler struct {
	service ports.UserService
	log     *zap.Logger
}

func NewUserHandler(service ports.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	user, err := h.service.Me(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"user": user})
}

type CompleteProfileRequest struct {
	ContractType string `json:"contract_type"`
	Status       string `json:"status"`
	City         string `json:"city"`
}

func (h *UserHandler) CompleteProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var req CompleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err := h.service.CompleteProfile(c.Context(), userID, domain.ContractType(req.ContractType), req.Status, req.City)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Profile updated"})
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.service.AdminUpdate(c.Context(), id, fields)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"user": user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	callerID, _ := c.Locals("user_id").(string)
	id := c.Params("id")

	if err := h.service.AdminDelete(c.Context(), callerID, id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}
