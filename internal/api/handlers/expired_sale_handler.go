package handlers

import (
	"net/http"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/services"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"

	"github.com/labstack/echo/v4"
)

type ExpiredSaleCleanupResult struct {
	CleanedUpCount int64 `json:"cleanedUpCount"`
}

type ExpiredSaleHandler struct {
	expiredSales *services.ExpiredSaleService
	runner       *services.JobRunner
	log          logger.Logger
}

func NewExpiredSaleHandler(expiredSales *services.ExpiredSaleService,
	runner *services.JobRunner, log logger.Logger) *ExpiredSaleHandler {
	return &ExpiredSaleHandler{
		expiredSales: expiredSales,
		runner:       runner,
		log:          log,
	}
}

func (h *ExpiredSaleHandler) Register(g *echo.Group) {
	g.GET("/expired-stats", h.GetStats)
	g.POST("/cleanup-expired", h.CleanupExpired)
}

func (h *ExpiredSaleHandler) GetStats(c echo.Context) error {
	stats, err := h.expiredSales.GetStats(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to compute expired sale stats", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Failed to compute expired sale stats",
		})
	}

	return c.JSON(http.StatusOK, stats)
}

// CleanupExpired runs the cleanup through the job runner so the usual
// lifecycle events fire and overlap with the scheduled tick is rejected.
func (h *ExpiredSaleHandler) CleanupExpired(c echo.Context) error {
	result, err := h.runner.RunManual(c.Request().Context(), services.JobExpiredSaleCleanup, nil)
	if err != nil {
		h.log.Error("Manual expired-sale cleanup failed", "error", err)
		return c.JSON(triggerStatusCode(err), map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
	}

	var cleaned int64
	if result != nil && result.DeletedCount != nil {
		cleaned = *result.DeletedCount
	}

	return c.JSON(http.StatusOK, ExpiredSaleCleanupResult{CleanedUpCount: cleaned})
}
