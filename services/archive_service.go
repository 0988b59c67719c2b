package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"schoolgrid_go/database"
	"schoolgrid_go/models"
	"schoolgrid_go/storage"
	"schoolgrid_go/timetable"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ArchiveService exports schedule documents as workbooks, uploads them to
// S3 and keeps archive metadata rows. A nightly cron job archives every
// persisted schedule.
type ArchiveService struct {
	grid    *GridService
	storage *storage.StorageService
	cron    *cron.Cron
}

// NewArchiveService creates a new service instance. S3 initialization
// failures are deferred: exports still work, uploads report the error.
func NewArchiveService(grid *GridService) *ArchiveService {
	store, err := storage.NewStorageService()
	if err != nil {
		logrus.WithError(err).Warn("Failed to initialize S3 storage; archive uploads will fail until configured")
		store = nil
	}
	return &ArchiveService{
		grid:    grid,
		storage: store,
		cron:    cron.New(),
	}
}

// BuildWorkbook renders a schedule document as an XLSX workbook: one
// sheet with the merged grid layout, one flat event listing.
func BuildWorkbook(doc timetable.Document, tl timetable.Timeline, weekdays []string, ex timetable.Exceptions) (*excelize.File, error) {
	f := excelize.NewFile()
	const gridSheet = "Schedule"
	f.SetSheetName("Sheet1", gridSheet)

	header := append([]string{"Time"}, weekdays...)
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(gridSheet, cell, title); err != nil {
			return nil, err
		}
	}

	plan := timetable.PlanGrid(doc.Events, tl, weekdays, ex)
	for slotIdx, row := range plan {
		excelRow := slotIdx + 2
		timeCell, err := excelize.CoordinatesToCellName(1, excelRow)
		if err != nil {
			return nil, err
		}
		label := fmt.Sprintf("%s - %s", tl[slotIdx].StartLabel(), tl[slotIdx].EndLabel())
		if err := f.SetCellValue(gridSheet, timeCell, label); err != nil {
			return nil, err
		}

		for dayIdx, cell := range row {
			name, err := excelize.CoordinatesToCellName(dayIdx+2, excelRow)
			if err != nil {
				return nil, err
			}
			switch cell.Kind {
			case timetable.CellBreak:
				if err := f.SetCellValue(gridSheet, name, cell.Label); err != nil {
					return nil, err
				}
			case timetable.CellOrigin:
				text := cell.Event.Subject
				if cell.Event.Teacher != "" {
					text += "\n" + cell.Event.Teacher
				}
				if cell.Event.Room != "" {
					text += "\n" + cell.Event.Room
				}
				if err := f.SetCellValue(gridSheet, name, text); err != nil {
					return nil, err
				}
				if cell.RowSpan > 1 || cell.ColSpan > 1 {
					endName, err := excelize.CoordinatesToCellName(dayIdx+1+cell.ColSpan, excelRow+cell.RowSpan-1)
					if err != nil {
						return nil, err
					}
					if err := f.MergeCell(gridSheet, name, endName); err != nil {
						return nil, err
					}
				}
			}
			// covered and empty cells stay blank
		}
	}

	const eventSheet = "Events"
	if _, err := f.NewSheet(eventSheet); err != nil {
		return nil, err
	}
	eventHeader := []string{"ID", "Days", "Start", "End", "Subject", "Teacher", "Room", "Created By", "Created At", "Modified By", "Modified At"}
	for col, title := range eventHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(eventSheet, cell, title); err != nil {
			return nil, err
		}
	}
	for i, e := range doc.Events {
		modifiedAt := ""
		if e.ModifiedAt != nil {
			modifiedAt = e.ModifiedAt.Format("2006-01-02 15:04:05")
		}
		values := []interface{}{
			e.ID,
			strings.Join(e.Days, ", "),
			e.Start,
			e.End,
			e.Subject,
			e.Teacher,
			e.Room,
			e.CreatedBy,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.ModifiedBy,
			modifiedAt,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(eventSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// BuildCSV renders a schedule document as a flat CSV event listing.
func BuildCSV(doc timetable.Document) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"ID", "Days", "Start", "End", "Subject", "Teacher", "Room", "Created By", "Created At"}); err != nil {
		return nil, err
	}
	for _, e := range doc.Events {
		row := []string{
			e.ID,
			strings.Join(e.Days, ", "),
			e.Start,
			e.End,
			e.Subject,
			e.Teacher,
			e.Room,
			e.CreatedBy,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ArchiveDocument exports one stored schedule to XLSX, uploads it and
// records the outcome.
func (a *ArchiveService) ArchiveDocument(record models.ScheduleDocument) error {
	doc, err := timetable.DecodeDocument(record.Events, time.Now())
	if err != nil {
		return a.recordFailure(record, "", fmt.Errorf("decode document: %w", err))
	}
	doc.Meta = timetable.Meta{
		SelectedClass: record.SelectedClass,
		ScheduleType:  record.ScheduleType,
		SchoolYear:    record.SchoolYear,
		Semester:      record.Semester,
	}

	cfg, err := a.grid.ResolveConfig(record.ScheduleType)
	if err != nil {
		return a.recordFailure(record, "", err)
	}
	tl, ex, weekdays, err := a.grid.BuildTimeline(cfg)
	if err != nil {
		return a.recordFailure(record, "", err)
	}

	workbook, err := BuildWorkbook(doc, tl, weekdays, ex)
	if err != nil {
		return a.recordFailure(record, "", fmt.Errorf("build workbook: %w", err))
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return a.recordFailure(record, "", fmt.Errorf("serialize workbook: %w", err))
	}

	fileName := fmt.Sprintf("%s_%s.xlsx", record.StorageKey, time.Now().Format("2006-01-02"))

	if a.storage == nil {
		return a.recordFailure(record, fileName, fmt.Errorf("S3 storage not configured"))
	}

	url, err := a.storage.UploadArchive(buf.Bytes(), record.StorageKey, fileName)
	if err != nil {
		return a.recordFailure(record, fileName, err)
	}

	archive := models.ScheduleArchive{
		StorageKey: record.StorageKey,
		FileName:   fileName,
		S3Key:      url,
		FileSize:   int64(buf.Len()),
		Status:     "completed",
	}
	if err := database.DB.Create(&archive).Error; err != nil {
		logrus.WithError(err).Error("Failed to save archive metadata")
	}

	logrus.WithFields(logrus.Fields{
		"storage_key": record.StorageKey,
		"file":        fileName,
		"bytes":       buf.Len(),
	}).Info("Schedule archived to S3")

	return nil
}

func (a *ArchiveService) recordFailure(record models.ScheduleDocument, fileName string, cause error) error {
	archive := models.ScheduleArchive{
		StorageKey: record.StorageKey,
		FileName:   fileName,
		Status:     "failed",
		Error:      cause.Error(),
	}
	if err := database.DB.Create(&archive).Error; err != nil {
		logrus.WithError(err).Error("Failed to save archive failure metadata")
	}
	return cause
}

// ArchiveAll exports every persisted schedule document.
func (a *ArchiveService) ArchiveAll() {
	records, err := a.grid.ListDocuments()
	if err != nil {
		logrus.WithError(err).Error("Failed to list schedule documents for archiving")
		return
	}
	for _, record := range records {
		if err := a.ArchiveDocument(record); err != nil {
			logrus.WithError(err).WithField("storage_key", record.StorageKey).Error("Schedule archive failed")
		}
	}
}

// StartNightly schedules the recurring archive job. The spec uses the
// standard 5-field cron format, e.g. "0 2 * * *" for 2 AM daily.
func (a *ArchiveService) StartNightly(spec string) error {
	if spec == "" {
		spec = "0 2 * * *"
	}
	if _, err := a.cron.AddFunc(spec, a.ArchiveAll); err != nil {
		return fmt.Errorf("schedule archive job: %w", err)
	}
	a.cron.Start()
	logrus.WithField("cron", spec).Info("Nightly schedule archive job started")
	return nil
}

// Stop halts the recurring archive job.
func (a *ArchiveService) Stop() {
	if a.cron != nil {
		a.cron.Stop()
	}
}
