package controllers

import (
	"strconv"
	"strings"

	"schoolgrid_go/database"
	"schoolgrid_go/middleware"
	"schoolgrid_go/models"
	"schoolgrid_go/utils"

	"github.com/gofiber/fiber/v2"
)

type ClassController struct{}

// GetClasses returns all classes with pagination
func (cc *ClassController) GetClasses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset := (page - 1) * limit

	var classes []models.SchoolClass
	var total int64

	query := database.DB.Model(&models.SchoolClass{})

	if year := c.Query("school_year"); year != "" {
		query = query.Where("school_year = ?", year)
	}
	if grade := c.Query("grade_level"); grade != "" {
		query = query.Where("grade_level = ?", grade)
	}
	if scheduleType := c.Query("schedule_type"); scheduleType != "" {
		query = query.Where("schedule_type = ?", scheduleType)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	query.Count(&total)

	if err := query.Preload("Adviser").Order("grade_level, name").
		Offset(offset).Limit(limit).Find(&classes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch classes",
		})
	}

	return c.JSON(fiber.Map{
		"classes": classes,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetClass returns a specific class by ID
func (cc *ClassController) GetClass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid class ID",
		})
	}

	var class models.SchoolClass
	if err := database.DB.Preload("Adviser").First(&class, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}

	return c.JSON(fiber.Map{
		"class": class,
	})
}

// CreateClass creates a new class
func (cc *ClassController) CreateClass(c *fiber.Ctx) error {
	var class models.SchoolClass
	if err := c.BodyParser(&class); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(class.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Class name is required",
		})
	}
	if strings.TrimSpace(class.SchoolYear) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "School year is required",
		})
	}

	if class.Slug == "" {
		class.Slug = utils.Slugify(class.Name)
	}
	if class.ScheduleType == "" {
		class.ScheduleType = "jhs"
	}

	var existing models.SchoolClass
	if err := database.DB.Where("slug = ?", class.Slug).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Class with this slug already exists",
		})
	}

	if class.AdviserID != nil {
		var adviser models.Teacher
		if err := database.DB.First(&adviser, *class.AdviserID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Adviser not found",
			})
		}
	}

	class.Active = true

	if err := database.DB.Create(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create class",
		})
	}

	database.DB.Preload("Adviser").First(&class, class.ID)

	middleware.LogActivity(c, "CREATE", "classes", class.ID, class)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Class created successfully",
		"class":   class,
	})
}

// UpdateClass updates an existing class
func (cc *ClassController) UpdateClass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid class ID",
		})
	}

	var class models.SchoolClass
	if err := database.DB.First(&class, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}

	var updateData models.SchoolClass
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if updateData.Slug != "" && updateData.Slug != class.Slug {
		var existing models.SchoolClass
		if err := database.DB.Where("slug = ? AND id != ?", updateData.Slug, class.ID).
			First(&existing).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Class with this slug already exists",
			})
		}
	}

	if updateData.AdviserID != nil {
		var adviser models.Teacher
		if err := database.DB.First(&adviser, *updateData.AdviserID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Adviser not found",
			})
		}
	}

	if err := database.DB.Model(&class).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update class",
		})
	}

	database.DB.Preload("Adviser").First(&class, class.ID)

	middleware.LogActivity(c, "UPDATE", "classes", class.ID, updateData)

	return c.JSON(fiber.Map{
		"message": "Class updated successfully",
		"class":   class,
	})
}

// DeleteClass deletes a class
func (cc *ClassController) DeleteClass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid class ID",
		})
	}

	var class models.SchoolClass
	if err := database.DB.First(&class, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Class not found",
		})
	}

	if err := database.DB.Delete(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete class",
		})
	}

	middleware.LogActivity(c, "DELETE", "classes", class.ID, class)

	return c.JSON(fiber.Map{
		"message": "Class deleted successfully",
	})
}
