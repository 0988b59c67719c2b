package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schoolgrid_go/database"
	"schoolgrid_go/middleware"
	"schoolgrid_go/models"
	"schoolgrid_go/services"
)

// ArchiveController exposes schedule archive records and manual archive runs.
type ArchiveController struct {
	archiver *services.ArchiveService
}

func NewArchiveController(archiver *services.ArchiveService) *ArchiveController {
	return &ArchiveController{archiver: archiver}
}

// GetArchives lists archive records with pagination and filters.
func (ac *ArchiveController) GetArchives(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := database.DB.Model(&models.ScheduleArchive{})

	if storageKey := c.Query("storage_key"); storageKey != "" {
		query = query.Where("storage_key = ?", storageKey)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count archives"})
	}

	var archives []models.ScheduleArchive
	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&archives).Error; err != nil {
		logrus.WithError(err).Error("Failed to retrieve archives")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve archives"})
	}

	return c.JSON(fiber.Map{
		"archives": archives,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// RunArchive triggers an archive run, either for one storage key or for
// every stored schedule document (admin only).
func (ac *ArchiveController) RunArchive(c *fiber.Ctx) error {
	storageKey := c.Query("storage_key")

	if storageKey == "" {
		go ac.archiver.ArchiveAll()
		middleware.LogActivity(c, "ARCHIVE", "schedule_archives", 0, fiber.Map{"scope": "all"})
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message": "Archive run started for all schedule documents",
		})
	}

	var record models.ScheduleDocument
	if err := database.DB.Where("storage_key = ?", storageKey).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule document not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load schedule document"})
	}

	if err := ac.archiver.ArchiveDocument(record); err != nil {
		logrus.WithError(err).WithField("storage_key", storageKey).Error("Archive run failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	middleware.LogActivity(c, "ARCHIVE", "schedule_archives", record.ID, fiber.Map{"storage_key": storageKey})

	return c.JSON(fiber.Map{
		"message":     "Schedule archived",
		"storage_key": storageKey,
	})
}
