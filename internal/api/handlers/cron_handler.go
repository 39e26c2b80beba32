package handlers

import (
	"errors"
	"net/http"

	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/domain"
	"github.com/TwumasiAugustine/pharm-manager-sub005/internal/services"
	"github.com/TwumasiAugustine/pharm-manager-sub005/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CronTriggerResponse is the envelope for every manual trigger endpoint.
type CronTriggerResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    *CronTriggerPayload `json:"data,omitempty"`
}

type CronTriggerPayload struct {
	DeletedCount *int64 `json:"deletedCount,omitempty"`
}

type CronHandler struct {
	runner *services.JobRunner
	log    logger.Logger
}

func NewCronHandler(runner *services.JobRunner, log logger.Logger) *CronHandler {
	return &CronHandler{
		runner: runner,
		log:    log,
	}
}

func (h *CronHandler) Register(g *echo.Group) {
	g.GET("/status", h.GetStatus)
	g.POST("/trigger-expiry-notifications", h.trigger(services.JobExpiryNotifications))
	g.POST("/trigger-cleanup-notifications", h.trigger(services.JobCleanupNotifications))
	g.POST("/trigger-daily-audit-cleanup", h.TriggerDailyAuditCleanup)
	g.POST("/trigger-weekly-audit-cleanup", h.trigger(services.JobWeeklyAuditCleanup))
	g.POST("/trigger-monthly-user-activity-cleanup", h.trigger(services.JobMonthlyActivityCleanup))
	g.POST("/trigger-inventory-check", h.trigger(services.JobInventoryCheck))
	g.POST("/trigger-expired-sessions-cleanup", h.trigger(services.JobExpiredSessionsCleanup))
	g.POST("/trigger-weekly-summary-reports", h.trigger(services.JobWeeklySummaryReports))
}

func (h *CronHandler) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"cronJobs": h.runner.Jobs(),
		"manualControl": map[string]string{
			services.JobExpiryNotifications:    "/cron/trigger-expiry-notifications",
			services.JobCleanupNotifications:   "/cron/trigger-cleanup-notifications",
			services.JobDailyAuditCleanup:      "/cron/trigger-daily-audit-cleanup",
			services.JobWeeklyAuditCleanup:     "/cron/trigger-weekly-audit-cleanup",
			services.JobMonthlyActivityCleanup: "/cron/trigger-monthly-user-activity-cleanup",
			services.JobInventoryCheck:         "/cron/trigger-inventory-check",
			services.JobExpiredSessionsCleanup: "/cron/trigger-expired-sessions-cleanup",
			services.JobWeeklySummaryReports:   "/cron/trigger-weekly-summary-reports",
		},
	})
}

// trigger builds the handler for a parameterless manual trigger.
func (h *CronHandler) trigger(jobName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.runJob(c, jobName, nil)
	}
}

type auditCleanupRequest struct {
	DaysToKeep *int `json:"daysToKeep"`
}

func (h *CronHandler) TriggerDailyAuditCleanup(c echo.Context) error {
	var req auditCleanupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, CronTriggerResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}

	daysToKeep := 1
	if req.DaysToKeep != nil {
		daysToKeep = *req.DaysToKeep
	}

	return h.runJob(c, services.JobDailyAuditCleanup,
		map[string]interface{}{"daysToKeep": daysToKeep})
}

func (h *CronHandler) runJob(c echo.Context, jobName string, params map[string]interface{}) error {
	result, err := h.runner.RunManual(c.Request().Context(), jobName, params)
	if err != nil {
		h.log.Error("Manual trigger failed", "job", jobName, "error", err)
		return c.JSON(triggerStatusCode(err), CronTriggerResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	response := CronTriggerResponse{
		Success: true,
		Message: "Job " + jobName + " completed",
	}
	if result != nil {
		response.Data = &CronTriggerPayload{DeletedCount: result.DeletedCount}
	}

	return c.JSON(http.StatusOK, response)
}

func triggerStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrJobAlreadyRunning):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
