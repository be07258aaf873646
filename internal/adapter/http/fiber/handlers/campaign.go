package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bna-assurances/campaignhub/internal/domain"
	"github.com/bna-assurances/campaignhub/internal/ports"
)

type CampaignHandler struct {
	service ports.CampaignService
	log     *zap.Logger
}

func NewCampaignHandler(service ports.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{
		service: service,
		log:     log,
	}
}

type CampaignRequest struct {
	Title             string `json:"title"`
	Message           string `json:"message"`
	Channel           string `json:"channel"`
	SelectionCriteria string `json:"selection_criteria"`
}

func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	var req CampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID, _ := c.Locals("user_id").(string)

	campaign := domain.Campaign{
		Title:             req.Title,
		Message:           req.Message,
		Channel:           domain.Channel(req.Channel),
		SelectionCriteria: req.SelectionCriteria,
		ScheduledBy:       userID,
	}

	if err := h.service.Create(c.Context(), &campaign); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"campaign": campaign})
}

func (h *CampaignHandler) List(c *fiber.Ctx) error {
	campaigns, err := h.service.List(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"campaigns": campaigns,
		"count":     len(campaigns),
	})
}

func (h *CampaignHandler) Get(c *fiber.Ctx) error {
	campaign, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"campaign": campaign})
}

func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	var req CampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	campaign := domain.Campaign{
		ID:                c.Params("id"),
		Title:             req.Title,
		Message:           req.Message,
		Channel:           domain.Channel(req.Channel),
		SelectionCriteria: req.SelectionCriteria,
	}

	updated, err := h.service.Update(c.Context(), &campaign)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"campaign": updated})
}

// Delete removes a campaign. Admins may pass ?force=true to remove a SENT
// campaign along with its history.
func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	force := c.QueryBool("force")
	if force {
		role, _ := c.Locals("user_role").(domain.UserRole)
		if role != domain.UserRoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Admin access required for force delete"})
		}
	}

	if err := h.service.Delete(c.Context(), c.Params("id"), force); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Campaign deleted"})
}

type ModerateRequest struct {
	Status string `json:"status"`
}

func (h *CampaignHandler) Moderate(c *fiber.Ctx) error {
	var req ModerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.Moderate(c.Context(), c.Params("id"), domain.CampaignStatus(req.Status)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Campaign moderated", "status": req.Status})
}

// Recipients previews the audience the campaign's criteria currently match.
func (h *CampaignHandler) Recipients(c *fiber.Ctx) error {
	preview, err := h.service.ResolveRecipients(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"campaign_id": preview.Campaign.ID,
		"recipients":  preview.Recipients,
		"count":       len(preview.Recipients),
	})
}

func (h *CampaignHandler) Launch(c *fiber.Ctx) error {
	result, err := h.service.Launch(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(result)
}
