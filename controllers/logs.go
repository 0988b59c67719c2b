package controllers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"schoolgrid_go/database"
	"schoolgrid_go/models"
	"schoolgrid_go/services"
)

type LogController struct {
	flusher *services.LogFlushService
}

func NewLogController() *LogController {
	return &LogController{flusher: services.NewLogFlushService()}
}

// LogResponse represents a log entry response
type LogResponse struct {
	ID         uint                   `json:"id"`
	UserID     uint                   `json:"user_id"`
	Action     string                 `json:"action"`
	Resource   string                 `json:"resource"`
	ResourceID uint                   `json:"resource_id"`
	Details    map[string]interface{} `json:"details"`
	IPAddress  string                 `json:"ip_address"`
	UserAgent  string                 `json:"user_agent"`
	CreatedAt  time.Time              `json:"created_at"`
	User       *UserBasicInfo         `json:"user,omitempty"`
}

type UserBasicInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LogsStatsResponse struct {
	Total             int64                 `json:"total"`
	TotalToday        int64                 `json:"total_today"`
	TotalThisWeek     int64                 `json:"total_this_week"`
	ActionBreakdown   map[string]int64      `json:"action_breakdown"`
	ResourceBreakdown map[string]int64      `json:"resource_breakdown"`
	TopUsers          []UserActivitySummary `json:"top_users"`
	RecentActivity    []LogResponse         `json:"recent_activity"`
}

type UserActivitySummary struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Count    int64  `json:"count"`
}

func toLogResponse(log models.ActivityLog) LogResponse {
	resp := LogResponse{
		ID:         log.ID,
		UserID:     log.UserID,
		Action:     log.Action,
		Resource:   log.Resource,
		ResourceID: log.ResourceID,
		IPAddress:  log.IPAddress,
		UserAgent:  log.UserAgent,
		CreatedAt:  log.CreatedAt,
	}

	if len(log.Details) > 0 {
		var details map[string]interface{}
		if err := json.Unmarshal(log.Details, &details); err == nil {
			resp.Details = details
		}
	}

	if log.User.ID > 0 {
		resp.User = &UserBasicInfo{
			ID:       log.User.ID,
			Username: log.User.Username,
			Role:     log.User.Role,
		}
	}

	return resp
}

func applyLogFilters(c *fiber.Ctx, query *gorm.DB) *gorm.DB {
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if resource := c.Query("resource"); resource != "" {
		query = query.Where("resource = ?", resource)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			query = query.Where("created_at >= ?", parsed)
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if parsed, err := time.Parse("2006-01-02", endDate); err == nil {
			query = query.Where("created_at <= ?", parsed.Add(24*time.Hour))
		}
	}
	return query
}

// GetLogs retrieves paginated activity logs with filters
func (lc *LogController) GetLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	offset := (page - 1) * limit

	query := applyLogFilters(c, database.DB.Model(&models.ActivityLog{}).Preload("User"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logrus.WithError(err).Error("Failed to count logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve logs count",
		})
	}

	var activityLogs []models.ActivityLog
	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&activityLogs).Error; err != nil {
		logrus.WithError(err).Error("Failed to retrieve logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve logs",
		})
	}

	logs := make([]LogResponse, len(activityLogs))
	for i, log := range activityLogs {
		logs[i] = toLogResponse(log)
	}

	return c.JSON(fiber.Map{
		"logs":        logs,
		"total":       total,
		"page":        page,
		"limit":       limit,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
	})
}

// GetLogStats provides logging statistics for the dashboard
func (lc *LogController) GetLogStats(c *fiber.Ctx) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thisWeek := today.AddDate(0, 0, -int(today.Weekday()))

	stats := LogsStatsResponse{
		ActionBreakdown:   make(map[string]int64),
		ResourceBreakdown: make(map[string]int64),
	}

	database.DB.Model(&models.ActivityLog{}).Count(&stats.Total)

	database.DB.Model(&models.ActivityLog{}).
		Where("created_at >= ?", today).
		Count(&stats.TotalToday)

	database.DB.Model(&models.ActivityLog{}).
		Where("created_at >= ?", thisWeek).
		Count(&stats.TotalThisWeek)

	var actionStats []struct {
		Action string `json:"action"`
		Count  int64  `json:"count"`
	}
	database.DB.Model(&models.ActivityLog{}).
		Select("action, COUNT(*) as count").
		Group("action").
		Find(&actionStats)
	for _, stat := range actionStats {
		stats.ActionBreakdown[stat.Action] = stat.Count
	}

	var resourceStats []struct {
		Resource string `json:"resource"`
		Count    int64  `json:"count"`
	}
	database.DB.Model(&models.ActivityLog{}).
		Select("resource, COUNT(*) as count").
		Group("resource").
		Find(&resourceStats)
	for _, stat := range resourceStats {
		stats.ResourceBreakdown[stat.Resource] = stat.Count
	}

	var topUserStats []struct {
		UserID   uint   `json:"user_id"`
		Username string `json:"username"`
		Role     string `json:"role"`
		Count    int64  `json:"count"`
	}
	database.DB.Model(&models.ActivityLog{}).
		Select("activity_logs.user_id, users.username, users.role, COUNT(*) as count").
		Joins("LEFT JOIN users ON activity_logs.user_id = users.id").
		Where("activity_logs.created_at >= ?", thisWeek).
		Group("activity_logs.user_id, users.username, users.role").
		Order("count DESC").
		Limit(10).
		Find(&topUserStats)
	for _, stat := range topUserStats {
		stats.TopUsers = append(stats.TopUsers, UserActivitySummary{
			UserID:   stat.UserID,
			Username: stat.Username,
			Role:     stat.Role,
			Count:    stat.Count,
		})
	}

	var recentLogs []models.ActivityLog
	database.DB.Preload("User").
		Order("created_at DESC").
		Limit(10).
		Find(&recentLogs)
	for _, log := range recentLogs {
		stats.RecentActivity = append(stats.RecentActivity, toLogResponse(log))
	}

	return c.JSON(stats)
}

// GetLog retrieves a single log entry by ID
func (lc *LogController) GetLog(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid log ID",
		})
	}

	var activityLog models.ActivityLog
	if err := database.DB.Preload("User").First(&activityLog, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Log not found",
			})
		}
		logrus.WithError(err).Error("Failed to retrieve log")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve log",
		})
	}

	return c.JSON(toLogResponse(activityLog))
}

// DeleteOldLogs removes logs older than specified days (Admin only)
func (lc *LogController) DeleteOldLogs(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid days parameter",
		})
	}

	cutoffDate := time.Now().AddDate(0, 0, -days)

	result := database.DB.Where("created_at < ?", cutoffDate).Delete(&models.ActivityLog{})
	if result.Error != nil {
		logrus.WithError(result.Error).Error("Failed to delete old logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete old logs",
		})
	}

	return c.JSON(fiber.Map{
		"message":       "Old logs deleted successfully",
		"deleted_count": result.RowsAffected,
		"cutoff_date":   cutoffDate,
	})
}

// ExportLogs exports logs to CSV format (Admin only)
func (lc *LogController) ExportLogs(c *fiber.Ctx) error {
	query := applyLogFilters(c, database.DB.Model(&models.ActivityLog{}).Preload("User"))

	var logs []models.ActivityLog
	if err := query.Order("created_at DESC").Find(&logs).Error; err != nil {
		logrus.WithError(err).Error("Failed to retrieve logs for export")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve logs for export",
		})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "User ID", "Username", "Role", "Action", "Resource", "Resource ID", "IP Address", "User Agent", "Created At", "Details"})

	for _, log := range logs {
		username := ""
		role := ""
		if log.User.ID > 0 {
			username = log.User.Username
			role = log.User.Role
		}

		details := ""
		if len(log.Details) > 0 {
			details = string(log.Details)
		}

		_ = w.Write([]string{
			fmt.Sprintf("%d", log.ID),
			fmt.Sprintf("%d", log.UserID),
			username,
			role,
			log.Action,
			log.Resource,
			fmt.Sprintf("%d", log.ResourceID),
			log.IPAddress,
			log.UserAgent,
			log.CreatedAt.Format("2006-01-02 15:04:05"),
			details,
		})
	}
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=activity_logs.csv")
	return c.Send(buf.Bytes())
}

// FlushCachedLogs manually flushes Redis-cached logs to the database (Admin only)
func (lc *LogController) FlushCachedLogs(c *fiber.Ctx) error {
	if err := lc.flusher.FlushCachedLogs(0); err != nil {
		logrus.WithError(err).Error("Failed to flush cached logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to flush cached logs",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Cached logs flushed to database",
	})
}
