package handlers

import (
	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashService *service.DashboardService
	logger      *zap.Logger
}

func NewDashboardHandler(dashService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashService: dashService,
		logger:      logger,
	}
}

func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	resp, err := h.dashService.Summary(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
