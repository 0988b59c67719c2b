package controllers

import (
	"strconv"
	"strings"

	"schoolgrid_go/database"
	"schoolgrid_go/middleware"
	"schoolgrid_go/models"

	"github.com/gofiber/fiber/v2"
)

type SubjectController struct{}

// GetSubjects returns all subjects with pagination
func (sc *SubjectController) GetSubjects(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset := (page - 1) * limit

	var subjects []models.Subject
	var total int64

	query := database.DB.Model(&models.Subject{})

	if grade := c.Query("grade_level"); grade != "" {
		query = query.Where("grade_level = ?", grade)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", like, like)
	}

	query.Count(&total)

	if err := query.Order("name").Offset(offset).Limit(limit).Find(&subjects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch subjects",
		})
	}

	return c.JSON(fiber.Map{
		"subjects": subjects,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetSubject returns a specific subject by ID
func (sc *SubjectController) GetSubject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subject ID",
		})
	}

	var subject models.Subject
	if err := database.DB.First(&subject, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subject not found",
		})
	}

	return c.JSON(fiber.Map{
		"subject": subject,
	})
}

// CreateSubject creates a new subject
func (sc *SubjectController) CreateSubject(c *fiber.Ctx) error {
	var subject models.Subject
	if err := c.BodyParser(&subject); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(subject.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Subject name is required",
		})
	}

	if subject.Code != "" {
		var existing models.Subject
		if err := database.DB.Where("code = ?", subject.Code).First(&existing).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Subject with this code already exists",
			})
		}
	}

	subject.Active = true

	if err := database.DB.Create(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create subject",
		})
	}

	middleware.LogActivity(c, "CREATE", "subjects", subject.ID, subject)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Subject created successfully",
		"subject": subject,
	})
}

// UpdateSubject updates an existing subject
func (sc *SubjectController) UpdateSubject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subject ID",
		})
	}

	var subject models.Subject
	if err := database.DB.First(&subject, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subject not found",
		})
	}

	var updateData models.Subject
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if updateData.Code != "" && updateData.Code != subject.Code {
		var existing models.Subject
		if err := database.DB.Where("code = ? AND id != ?", updateData.Code, subject.ID).
			First(&existing).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Subject with this code already exists",
			})
		}
	}

	if err := database.DB.Model(&subject).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update subject",
		})
	}

	middleware.LogActivity(c, "UPDATE", "subjects", subject.ID, updateData)

	return c.JSON(fiber.Map{
		"message": "Subject updated successfully",
		"subject": subject,
	})
}

// DeleteSubject deletes a subject
func (sc *SubjectController) DeleteSubject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subject ID",
		})
	}

	var subject models.Subject
	if err := database.DB.First(&subject, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subject not found",
		})
	}

	if err := database.DB.Delete(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete subject",
		})
	}

	middleware.LogActivity(c, "DELETE", "subjects", subject.ID, subject)

	return c.JSON(fiber.Map{
		"message": "Subject deleted successfully",
	})
}
