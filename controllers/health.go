package controllers

import (
	"github.com/gofiber/fiber/v2"

	"schoolgrid_go/services"
)

// HealthController exposes health information over HTTP.
type HealthController struct {
	service *services.HealthService
}

// NewHealthController creates a controller backed by the given service.
func NewHealthController(service *services.HealthService) *HealthController {
	if service == nil {
		service = services.NewHealthService("", "")
	}
	return &HealthController{service: service}
}

// GetHealthStatus returns the current health report.
func (hc *HealthController) GetHealthStatus(c *fiber.Ctx) error {
	report := hc.service.GetHealthReport()
	return c.Status(hc.service.HTTPStatusForOverall(report.Status)).JSON(report)
}
