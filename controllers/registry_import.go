package controllers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"schoolgrid_go/database"
	"schoolgrid_go/middleware"
	"schoolgrid_go/models"
	"schoolgrid_go/utils"
)

// RegistryImportController handles bulk imports of registry entities
// (teachers, rooms, subjects) from CSV or XLSX uploads.
type RegistryImportController struct{}

type importStats struct {
	TotalRows int      `json:"total_rows"`
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	RowErrors []string `json:"row_errors"`
}

// Import parses the uploaded file and upserts rows into the named registry.
func (ric *RegistryImportController) Import(c *fiber.Ctx) error {
	resource := strings.ToLower(c.Params("resource"))
	switch resource {
	case "teachers", "rooms", "subjects":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported resource (teachers, rooms, subjects)"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot open file"})
	}
	defer file.Close()

	filename := strings.ToLower(fileHeader.Filename)
	var rows [][]string
	var parseErr error

	if strings.HasSuffix(filename, ".csv") {
		rows, parseErr = readCSVRows(file)
	} else if strings.HasSuffix(filename, ".xlsx") || strings.HasSuffix(filename, ".xls") {
		tmpDir, dirErr := os.MkdirTemp("", "sgimport-")
		if dirErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to buffer upload"})
		}
		defer os.RemoveAll(tmpDir)
		tmp := filepath.Join(tmpDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), utils.SanitizeString(fileHeader.Filename)))
		if err := c.SaveFile(fileHeader, tmp); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to buffer upload"})
		}
		rows, parseErr = readXLSXRows(tmp)
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported file type (csv, xlsx)"})
	}
	if parseErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": parseErr.Error()})
	}

	if len(rows) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file has no data rows"})
	}

	colIndex := buildColumnIndex(rows[0])
	stats := &importStats{}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i := 1; i < len(rows); i++ {
			raw := rows[i]
			if importRowEmpty(raw) {
				continue
			}
			stats.TotalRows++

			var rowErr error
			switch resource {
			case "teachers":
				rowErr = importTeacherRow(tx, raw, colIndex, stats)
			case "rooms":
				rowErr = importRoomRow(tx, raw, colIndex, stats)
			case "subjects":
				rowErr = importSubjectRow(tx, raw, colIndex, stats)
			}
			if rowErr != nil {
				stats.RowErrors = append(stats.RowErrors, fmt.Sprintf("row %d: %v", i+1, rowErr))
				stats.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "stats": stats})
	}

	middleware.LogActivity(c, "IMPORT", resource, 0, fiber.Map{
		"file_name":  fileHeader.Filename,
		"total_rows": stats.TotalRows,
		"inserted":   stats.Inserted,
		"updated":    stats.Updated,
		"skipped":    stats.Skipped,
	})

	return c.JSON(fiber.Map{
		"success":   true,
		"file_name": fileHeader.Filename,
		"resource":  resource,
		"stats":     stats,
	})
}

func importTeacherRow(tx *gorm.DB, row []string, col map[string]int, stats *importStats) error {
	firstName := cellValue(row, col, "first_name")
	lastName := cellValue(row, col, "last_name")
	if firstName == "" || lastName == "" {
		return fmt.Errorf("first_name and last_name are required")
	}

	teacher := models.Teacher{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          cellValue(row, col, "email"),
		Phone:          cellValue(row, col, "phone"),
		Department:     cellValue(row, col, "department"),
		Specialization: cellValue(row, col, "specialization"),
		Active:         true,
	}

	var existing models.Teacher
	err := tx.Where("first_name = ? AND last_name = ?", firstName, lastName).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{}
		if teacher.Email != "" && teacher.Email != existing.Email {
			updates["email"] = teacher.Email
		}
		if teacher.Phone != "" && teacher.Phone != existing.Phone {
			updates["phone"] = teacher.Phone
		}
		if teacher.Department != "" && teacher.Department != existing.Department {
			updates["department"] = teacher.Department
		}
		if teacher.Specialization != "" && teacher.Specialization != existing.Specialization {
			updates["specialization"] = teacher.Specialization
		}
		if len(updates) == 0 {
			stats.Skipped++
			return nil
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		stats.Updated++
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	if err := tx.Create(&teacher).Error; err != nil {
		return err
	}
	stats.Inserted++
	return nil
}

func importRoomRow(tx *gorm.DB, row []string, col map[string]int, stats *importStats) error {
	name := cellValue(row, col, "name")
	if name == "" {
		return fmt.Errorf("name is required")
	}

	roomType := strings.ToLower(cellValue(row, col, "type"))
	if roomType == "" {
		roomType = "classroom"
	}
	switch roomType {
	case "classroom", "laboratory", "gym", "library", "other":
	default:
		return fmt.Errorf("invalid room type %q", roomType)
	}

	capacity := 0
	if raw := cellValue(row, col, "capacity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid capacity %q", raw)
		}
		capacity = n
	}

	room := models.Room{
		Name:     name,
		Building: cellValue(row, col, "building"),
		Floor:    cellValue(row, col, "floor"),
		Capacity: capacity,
		Type:     roomType,
		Status:   "available",
	}

	var existing models.Room
	err := tx.Where("name = ?", name).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{}
		if room.Building != "" && room.Building != existing.Building {
			updates["building"] = room.Building
		}
		if room.Floor != "" && room.Floor != existing.Floor {
			updates["floor"] = room.Floor
		}
		if capacity > 0 && capacity != existing.Capacity {
			updates["capacity"] = capacity
		}
		if roomType != existing.Type {
			updates["type"] = roomType
		}
		if len(updates) == 0 {
			stats.Skipped++
			return nil
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		stats.Updated++
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	if err := tx.Create(&room).Error; err != nil {
		return err
	}
	stats.Inserted++
	return nil
}

func importSubjectRow(tx *gorm.DB, row []string, col map[string]int, stats *importStats) error {
	code := strings.ToUpper(cellValue(row, col, "code"))
	name := cellValue(row, col, "name")
	if code == "" || name == "" {
		return fmt.Errorf("code and name are required")
	}

	units := 1
	if raw := cellValue(row, col, "units"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid units %q", raw)
		}
		units = n
	}

	subject := models.Subject{
		Code:        code,
		Name:        name,
		GradeLevel:  cellValue(row, col, "grade_level"),
		Description: cellValue(row, col, "description"),
		Units:       units,
		Active:      true,
	}

	var existing models.Subject
	err := tx.Where("code = ?", code).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{}
		if name != existing.Name {
			updates["name"] = name
		}
		if subject.GradeLevel != "" && subject.GradeLevel != existing.GradeLevel {
			updates["grade_level"] = subject.GradeLevel
		}
		if subject.Description != "" && subject.Description != existing.Description {
			updates["description"] = subject.Description
		}
		if units != existing.Units {
			updates["units"] = units
		}
		if len(updates) == 0 {
			stats.Skipped++
			return nil
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}
		stats.Updated++
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	if err := tx.Create(&subject).Error; err != nil {
		return err
	}
	stats.Inserted++
	return nil
}

// --- Parsing helpers ---

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	return rows, nil
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("invalid XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func buildColumnIndex(header []string) map[string]int {
	col := map[string]int{}
	for idx, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		key = strings.ReplaceAll(key, " ", "_")
		col[key] = idx
	}
	return col
}

func cellValue(row []string, col map[string]int, key string) string {
	if idx, ok := col[key]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func importRowEmpty(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
