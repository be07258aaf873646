package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bna-assurances/campaignhub/internal/ports"
)

type NotificationHandler struct {
	service ports.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service ports.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		log:     log,
	}
}

func (h *NotificationHandler) History(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	entries, err := h.service.History(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"notifications": entries,
		"count":         len(entries),
	})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	count, err := h.service.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"unread": count})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	if err := h.service.MarkAllRead(c.Context(), userID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	campaignID := c.Params("campaignId")

	if err := h.service.MarkRead(c.Context(), userID, campaignID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
