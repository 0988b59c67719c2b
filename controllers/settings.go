package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"schoolgrid_go/database"
	"schoolgrid_go/middleware"
	"schoolgrid_go/models"
	"schoolgrid_go/services"
)

const errUserNotFoundMessage = "User not found"

type SettingsController struct {
	service *services.SettingsService
}

type updateSettingsRequest struct {
	AutosaveEnabled *bool   `json:"autosave_enabled"`
	ApplyToAllDays  *bool   `json:"apply_to_all_days"`
	Theme           *string `json:"theme"`
}

func NewSettingsController() *SettingsController {
	return &SettingsController{service: services.NewSettingsService()}
}

func (sc *SettingsController) GetMySettings(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": errUserNotFoundMessage})
	}

	settings, err := sc.service.GetOrCreate(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load settings"})
	}

	return c.JSON(fiber.Map{"settings": settings})
}

func (sc *SettingsController) UpdateMySettings(c *fiber.Ctx) error {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": errUserNotFoundMessage})
	}

	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	settings, svcErr := sc.service.Update(user, services.UpdateUserSettingsInput{
		AutosaveEnabled: req.AutosaveEnabled,
		ApplyToAllDays:  req.ApplyToAllDays,
		Theme:           req.Theme,
	})
	if svcErr != nil {
		return handleSettingsError(c, svcErr)
	}

	middleware.LogActivity(c, "UPDATE", "user_settings", settings.ID, fiber.Map{
		"target_user_id": user.ID,
	})

	return c.JSON(fiber.Map{
		"message":  "Settings updated",
		"settings": settings,
	})
}

// GetUserSettings returns another user's settings (admin only).
func (sc *SettingsController) GetUserSettings(c *fiber.Ctx) error {
	user, err := findUserByParamID(c)
	if err != nil {
		return err
	}

	settings, svcErr := sc.service.GetOrCreate(user.ID)
	if svcErr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load settings"})
	}

	return c.JSON(fiber.Map{
		"user":     fiber.Map{"id": user.ID, "username": user.Username, "email": user.Email},
		"settings": settings,
	})
}

// UpdateUserSettings updates another user's settings (admin only).
func (sc *SettingsController) UpdateUserSettings(c *fiber.Ctx) error {
	user, err := findUserByParamID(c)
	if err != nil {
		return err
	}

	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	settings, svcErr := sc.service.Update(user, services.UpdateUserSettingsInput{
		AutosaveEnabled: req.AutosaveEnabled,
		ApplyToAllDays:  req.ApplyToAllDays,
		Theme:           req.Theme,
	})
	if svcErr != nil {
		return handleSettingsError(c, svcErr)
	}

	middleware.LogActivity(c, "UPDATE", "user_settings", settings.ID, fiber.Map{
		"target_user_id": user.ID,
	})

	return c.JSON(fiber.Map{
		"message":  "Settings updated",
		"user":     fiber.Map{"id": user.ID, "username": user.Username, "email": user.Email},
		"settings": settings,
	})
}

func findUserByParamID(c *fiber.Ctx) (*models.User, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var user models.User
	if dbErr := database.DB.First(&user, uint(id)).Error; dbErr != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": errUserNotFoundMessage})
	}

	return &user, nil
}

func handleSettingsError(c *fiber.Ctx, err error) error {
	if err == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Unknown settings error"})
	}

	if errors.Is(err, services.ErrSettingsValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update settings"})
}
