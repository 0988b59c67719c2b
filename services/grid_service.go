package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"schoolgrid_go/database"
	"schoolgrid_go/models"
	"schoolgrid_go/timetable"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GridService bridges persisted schedule configuration and documents to
// the timetable grid engine.
type GridService struct{}

// NewGridService creates a new service instance
func NewGridService() *GridService {
	return &GridService{}
}

// defaultConfig covers schedule types with no stored configuration row.
func defaultConfig(code string) models.ScheduleTypeConfig {
	return models.ScheduleTypeConfig{
		Code:        code,
		Name:        code,
		DayStart:    "7:45 AM",
		DayEnd:      "5:15 PM",
		StepMinutes: 60,
	}
}

// ResolveConfig loads the schedule type configuration, falling back to
// built-in defaults when no row exists.
func (g *GridService) ResolveConfig(code string) (models.ScheduleTypeConfig, error) {
	if code == "" {
		return defaultConfig(""), nil
	}
	var cfg models.ScheduleTypeConfig
	err := database.DB.Where("code = ?", code).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultConfig(code), nil
	}
	if err != nil {
		return models.ScheduleTypeConfig{}, err
	}
	return cfg, nil
}

// BuildTimeline expands a schedule type configuration into the generated
// slot sequence plus the break-exception day set and active weekday list.
func (g *GridService) BuildTimeline(cfg models.ScheduleTypeConfig) (timetable.Timeline, timetable.Exceptions, []string, error) {
	var breaks []timetable.BreakSpec
	if !cfg.Breaks.IsNull() {
		if err := json.Unmarshal(cfg.Breaks, &breaks); err != nil {
			return nil, nil, nil, fmt.Errorf("decode breaks for %q: %w", cfg.Code, err)
		}
	}

	slots, err := timetable.GenerateSlotsWithBreaks(cfg.DayStart, cfg.DayEnd, cfg.StepMinutes, breaks)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("generate slots for %q: %w", cfg.Code, err)
	}

	exceptions := timetable.Exceptions{}
	if !cfg.BreakExceptions.IsNull() {
		var days []string
		if err := json.Unmarshal(cfg.BreakExceptions, &days); err != nil {
			return nil, nil, nil, fmt.Errorf("decode break exceptions for %q: %w", cfg.Code, err)
		}
		for _, d := range days {
			exceptions[d] = true
		}
	}

	weekdays := append([]string(nil), timetable.Weekdays...)
	if !cfg.Weekdays.IsNull() {
		var configured []string
		if err := json.Unmarshal(cfg.Weekdays, &configured); err != nil {
			return nil, nil, nil, fmt.Errorf("decode weekdays for %q: %w", cfg.Code, err)
		}
		if len(configured) > 0 {
			weekdays = configured
		}
	}

	return timetable.Timeline(slots), exceptions, weekdays, nil
}

// LoadDocument fetches the persisted document for a view, returning an
// empty document carrying the requested metadata when none exists yet.
func (g *GridService) LoadDocument(class, scheduleType, schoolYear, semester string) (timetable.Document, error) {
	meta := timetable.Meta{
		SelectedClass: class,
		ScheduleType:  scheduleType,
		SchoolYear:    schoolYear,
		Semester:      semester,
	}
	key := timetable.StorageKey(class, schoolYear, semester)

	var record models.ScheduleDocument
	err := database.DB.Where("storage_key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timetable.Document{Meta: meta}, nil
	}
	if err != nil {
		return timetable.Document{}, err
	}

	return decodeStoredDocument(record.Events, key, meta, time.Now()), nil
}

// decodeStoredDocument decodes a persisted blob. A corrupted blob must not
// brick the view; the grid degrades to an empty event set and the next save
// overwrites the bad row.
func decodeStoredDocument(raw []byte, key string, meta timetable.Meta, now time.Time) timetable.Document {
	doc, err := timetable.DecodeDocument(raw, now)
	if err != nil {
		logrus.WithError(err).WithField("storage_key", key).Warn("Stored schedule document is unreadable, starting empty")
		return timetable.Document{Meta: meta}
	}
	// Request metadata wins over whatever the stored blob carries; legacy
	// blobs can miss the meta block entirely.
	doc.Meta = meta
	return doc
}

// ListDocuments returns every persisted schedule document record.
func (g *GridService) ListDocuments() ([]models.ScheduleDocument, error) {
	var records []models.ScheduleDocument
	if err := database.DB.Order("storage_key").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
