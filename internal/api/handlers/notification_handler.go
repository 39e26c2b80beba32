package handlers

import (
	"net/http"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	repo domain.NotificationRepository
	log  logger.Logger
}

func NewNotificationHandler(repo domain.NotificationRepository, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		repo: repo,
		log:  log,
	}
}

func (h *NotificationHandler) Register(g *echo.Group) {
	g.GET("/notifications", h.ListNotifications)
	g.PUT("/notifications/:id/read", h.MarkRead)
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	unreadOnly := c.QueryParam("unread") == "true"

	notifications, err := h.repo.ListNotifications(c.Request().Context(), unreadOnly)
	if err != nil {
		h.log.Error("Failed to list notifications", "error", err)
		return crudError(c, err)
	}

	return c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	if err := h.repo.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return crudError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Notification marked read",
	})
}
