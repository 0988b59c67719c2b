package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"schoolgrid_go/database"
	"schoolgrid_go/models"
)

// ErrSettingsValidation marks user-correctable settings input errors.
var ErrSettingsValidation = errors.New("settings validation error")

var allowedThemes = []string{"light", "dark", "system"}

type SettingsService struct{}

// UpdateUserSettingsInput carries optional settings fields; nil means unchanged.
type UpdateUserSettingsInput struct {
	AutosaveEnabled *bool
	ApplyToAllDays  *bool
	Theme           *string
}

func NewSettingsService() *SettingsService {
	return &SettingsService{}
}

// GetOrCreate returns the settings row for the user, creating defaults on first access.
func (s *SettingsService) GetOrCreate(userID uint) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := database.DB.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.UserSettings{
		UserID:          userID,
		AutosaveEnabled: true,
		ApplyToAllDays:  true,
		Theme:           "light",
	}
	if err := database.DB.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update applies the provided fields and persists the result.
func (s *SettingsService) Update(user *models.User, input UpdateUserSettingsInput) (*models.UserSettings, error) {
	settings, err := s.GetOrCreate(user.ID)
	if err != nil {
		return nil, err
	}

	if input.AutosaveEnabled != nil {
		settings.AutosaveEnabled = *input.AutosaveEnabled
	}
	if input.ApplyToAllDays != nil {
		settings.ApplyToAllDays = *input.ApplyToAllDays
	}
	if input.Theme != nil {
		theme := strings.ToLower(strings.TrimSpace(*input.Theme))
		if !isAllowedTheme(theme) {
			return nil, fmt.Errorf("%w: theme must be one of %s", ErrSettingsValidation, strings.Join(allowedThemes, ", "))
		}
		settings.Theme = theme
	}

	if err := database.DB.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func isAllowedTheme(theme string) bool {
	for _, t := range allowedThemes {
		if theme == t {
			return true
		}
	}
	return false
}
