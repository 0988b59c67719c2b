package controllers

import (
	"encoding/json"
	"strings"

	"schoolgrid_go/database"
	"schoolgrid_go/middleware"
	"schoolgrid_go/models"
	"schoolgrid_go/services"
	"schoolgrid_go/timetable"

	"github.com/gofiber/fiber/v2"
)

// ScheduleConfigController manages schedule type configurations: the day
// window, step, break list and break exceptions each grid is generated
// from.
type ScheduleConfigController struct {
	grid *services.GridService
}

// NewScheduleConfigController wires the config controller.
func NewScheduleConfigController(grid *services.GridService) *ScheduleConfigController {
	return &ScheduleConfigController{grid: grid}
}

// GetConfigs lists every schedule type configuration.
func (scc *ScheduleConfigController) GetConfigs(c *fiber.Ctx) error {
	var configs []models.ScheduleTypeConfig
	if err := database.DB.Order("code").Find(&configs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch schedule configurations",
		})
	}

	return c.JSON(fiber.Map{
		"configs": configs,
		"total":   len(configs),
	})
}

// GetConfig returns one schedule type configuration with its generated
// timeline, so clients can preview the slot sequence.
func (scc *ScheduleConfigController) GetConfig(c *fiber.Ctx) error {
	code := c.Params("code")

	cfg, err := scc.grid.ResolveConfig(code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch schedule configuration",
		})
	}

	tl, ex, weekdays, err := scc.grid.BuildTimeline(cfg)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"config":     cfg,
		"timeline":   tl,
		"weekdays":   weekdays,
		"exceptions": ex,
	})
}

// ConfigRequest is the create/update payload for a schedule type.
type ConfigRequest struct {
	Code            string                `json:"code"`
	Name            string                `json:"name"`
	DayStart        string                `json:"day_start"`
	DayEnd          string                `json:"day_end"`
	StepMinutes     int                   `json:"step_minutes"`
	Breaks          []timetable.BreakSpec `json:"breaks"`
	BreakExceptions []string              `json:"break_exceptions"`
	Weekdays        []string              `json:"weekdays"`
}

func (r ConfigRequest) toModel() (models.ScheduleTypeConfig, error) {
	breaksJSON, err := json.Marshal(r.Breaks)
	if err != nil {
		return models.ScheduleTypeConfig{}, err
	}
	exceptionsJSON, err := json.Marshal(r.BreakExceptions)
	if err != nil {
		return models.ScheduleTypeConfig{}, err
	}
	weekdaysJSON, err := json.Marshal(r.Weekdays)
	if err != nil {
		return models.ScheduleTypeConfig{}, err
	}
	return models.ScheduleTypeConfig{
		Code:            strings.TrimSpace(r.Code),
		Name:            strings.TrimSpace(r.Name),
		DayStart:        r.DayStart,
		DayEnd:          r.DayEnd,
		StepMinutes:     r.StepMinutes,
		Breaks:          models.JSON(breaksJSON),
		BreakExceptions: models.JSON(exceptionsJSON),
		Weekdays:        models.JSON(weekdaysJSON),
	}, nil
}

// CreateConfig registers a new schedule type. The timeline is generated
// once up front so invalid windows or break definitions fail fast.
func (scc *ScheduleConfigController) CreateConfig(c *fiber.Ctx) error {
	var req ConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Code) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Code is required",
		})
	}

	cfg, err := req.toModel()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid configuration payload",
		})
	}

	if _, _, _, err := scc.grid.BuildTimeline(cfg); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var existing models.ScheduleTypeConfig
	if err := database.DB.Where("code = ?", cfg.Code).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Schedule type already exists",
		})
	}

	if err := database.DB.Create(&cfg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create schedule configuration",
		})
	}

	middleware.LogActivity(c, "CREATE", "schedule_configs", cfg.ID, cfg)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Schedule configuration created",
		"config":  cfg,
	})
}

// UpdateConfig replaces a schedule type's generation parameters. Grids
// rebuild their timeline from the new row on next load; stored events
// whose times no longer align resolve through nearest-slot rules.
func (scc *ScheduleConfigController) UpdateConfig(c *fiber.Ctx) error {
	code := c.Params("code")

	var cfg models.ScheduleTypeConfig
	if err := database.DB.Where("code = ?", code).First(&cfg).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule configuration not found",
		})
	}

	var req ConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	req.Code = code

	updated, err := req.toModel()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid configuration payload",
		})
	}

	if _, _, _, err := scc.grid.BuildTimeline(updated); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	updates := map[string]interface{}{
		"name":             updated.Name,
		"day_start":        updated.DayStart,
		"day_end":          updated.DayEnd,
		"step_minutes":     updated.StepMinutes,
		"breaks":           updated.Breaks,
		"break_exceptions": updated.BreakExceptions,
		"weekdays":         updated.Weekdays,
	}
	if err := database.DB.Model(&cfg).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update schedule configuration",
		})
	}

	middleware.LogActivity(c, "UPDATE", "schedule_configs", cfg.ID, updates)

	database.DB.Where("code = ?", code).First(&cfg)

	return c.JSON(fiber.Map{
		"message": "Schedule configuration updated",
		"config":  cfg,
	})
}

// DeleteConfig removes a schedule type configuration; grids using the
// code fall back to built-in defaults.
func (scc *ScheduleConfigController) DeleteConfig(c *fiber.Ctx) error {
	code := c.Params("code")

	var cfg models.ScheduleTypeConfig
	if err := database.DB.Where("code = ?", code).First(&cfg).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule configuration not found",
		})
	}

	if err := database.DB.Delete(&cfg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete schedule configuration",
		})
	}

	middleware.LogActivity(c, "DELETE", "schedule_configs", cfg.ID, cfg)

	return c.JSON(fiber.Map{
		"message": "Schedule configuration deleted",
	})
}
