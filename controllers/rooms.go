package controllers

import (
	"strconv"
	"strings"

	"schoolgrid_go/database"
	"schoolgrid_go/middleware"
	"schoolgrid_go/models"

	"github.com/gofiber/fiber/v2"
)

type RoomController struct{}

// GetRooms returns all rooms with pagination
func (rc *RoomController) GetRooms(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset := (page - 1) * limit

	var rooms []models.Room
	var total int64

	query := database.DB.Model(&models.Room{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if roomType := c.Query("type"); roomType != "" {
		query = query.Where("type = ?", roomType)
	}
	if minCapacity := c.Query("min_capacity"); minCapacity != "" {
		query = query.Where("capacity >= ?", minCapacity)
	}

	query.Count(&total)

	if err := query.Order("name").Offset(offset).Limit(limit).Find(&rooms).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch rooms",
		})
	}

	return c.JSON(fiber.Map{
		"rooms": rooms,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetRoom returns a specific room by ID
func (rc *RoomController) GetRoom(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room ID",
		})
	}

	var room models.Room
	if err := database.DB.First(&room, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Room not found",
		})
	}

	return c.JSON(fiber.Map{
		"room": room,
	})
}

// CreateRoom creates a new room
func (rc *RoomController) CreateRoom(c *fiber.Ctx) error {
	var room models.Room
	if err := c.BodyParser(&room); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(room.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Room name is required",
		})
	}

	var existingRoom models.Room
	if err := database.DB.Where("name = ?", room.Name).First(&existingRoom).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Room with this name already exists",
		})
	}

	if room.Status == "" {
		room.Status = "available"
	}
	if room.Type == "" {
		room.Type = "classroom"
	}

	if err := database.DB.Create(&room).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create room",
		})
	}

	middleware.LogActivity(c, "CREATE", "rooms", room.ID, room)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Room created successfully",
		"room":    room,
	})
}

// UpdateRoom updates an existing room
func (rc *RoomController) UpdateRoom(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room ID",
		})
	}

	var room models.Room
	if err := database.DB.First(&room, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Room not found",
		})
	}

	var updateData models.Room
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if updateData.Name != "" && updateData.Name != room.Name {
		var existingRoom models.Room
		if err := database.DB.Where("name = ? AND id != ?", updateData.Name, room.ID).
			First(&existingRoom).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Room with this name already exists",
			})
		}
	}

	if err := database.DB.Model(&room).Updates(updateData).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update room",
		})
	}

	middleware.LogActivity(c, "UPDATE", "rooms", room.ID, updateData)

	return c.JSON(fiber.Map{
		"message": "Room updated successfully",
		"room":    room,
	})
}

// DeleteRoom deletes a room
func (rc *RoomController) DeleteRoom(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid room ID",
		})
	}

	var room models.Room
	if err := database.DB.First(&room, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Room not found",
		})
	}

	if err := database.DB.Delete(&room).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete room",
		})
	}

	middleware.LogActivity(c, "DELETE", "rooms", room.ID, room)

	return c.JSON(fiber.Map{
		"message": "Room deleted successfully",
	})
}
