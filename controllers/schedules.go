package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"schoolgrid_go/config"
	"schoolgrid_go/database"
	"schoolgrid_go/middleware"
	"schoolgrid_go/models"
	"schoolgrid_go/services"
	ws "schoolgrid_go/services/websocket"
	"schoolgrid_go/timetable"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ScheduleController serves the interactive grid: timeline and rendering
// plan reads, drag-selection event creation, edits with audit history,
// debounced persistence and snapshot management.
type ScheduleController struct {
	grid     *services.GridService
	autosave *services.AutosaveService
	hub      *ws.Hub
}

// NewScheduleController wires the grid controller with its services.
func NewScheduleController(grid *services.GridService, autosave *services.AutosaveService, hub *ws.Hub) *ScheduleController {
	return &ScheduleController{grid: grid, autosave: autosave, hub: hub}
}

// gridView identifies one schedule grid: the composite document key plus
// the schedule type that drives timeline generation.
type gridView struct {
	Class        string
	ScheduleType string
	SchoolYear   string
	Semester     string
}

func (v gridView) storageKey() string {
	return timetable.StorageKey(v.Class, v.SchoolYear, v.Semester)
}

// viewFromQuery assembles the grid view from query parameters, filling
// school year and semester from configured defaults and resolving the
// schedule type through the class registry when omitted.
func (sc *ScheduleController) viewFromQuery(c *fiber.Ctx) gridView {
	v := gridView{
		Class:        c.Query("class"),
		ScheduleType: c.Query("schedule_type"),
		SchoolYear:   c.Query("school_year", config.AppConfig.DefaultSchoolYear),
		Semester:     c.Query("semester", config.AppConfig.DefaultSemester),
	}
	sc.resolveScheduleType(&v)
	return v
}

func (sc *ScheduleController) resolveScheduleType(v *gridView) {
	if v.ScheduleType != "" || v.Class == "" || v.Class == timetable.AllClassesSentinel {
		return
	}
	var class models.SchoolClass
	if err := database.DB.Where("slug = ?", v.Class).First(&class).Error; err == nil {
		v.ScheduleType = class.ScheduleType
	}
}

// statusForError maps grid engine errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, timetable.ErrEventNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, timetable.ErrBreakSlotConflict):
		return fiber.StatusConflict
	case errors.Is(err, timetable.ErrIncompleteForm),
		errors.Is(err, timetable.ErrEmptySelection),
		errors.Is(err, timetable.ErrInvalidTimeFormat):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// loadGrid loads the timeline and document for a view in one step.
func (sc *ScheduleController) loadGrid(v gridView) (timetable.Timeline, timetable.Exceptions, []string, timetable.Document, error) {
	cfg, err := sc.grid.ResolveConfig(v.ScheduleType)
	if err != nil {
		return nil, nil, nil, timetable.Document{}, err
	}
	tl, ex, weekdays, err := sc.grid.BuildTimeline(cfg)
	if err != nil {
		return nil, nil, nil, timetable.Document{}, err
	}
	doc, err := sc.grid.LoadDocument(v.Class, v.ScheduleType, v.SchoolYear, v.Semester)
	if err != nil {
		return nil, nil, nil, timetable.Document{}, err
	}
	return tl, ex, weekdays, doc, nil
}

// persist routes a mutated document through autosave or an immediate
// write based on the acting user's settings.
func (sc *ScheduleController) persist(c *fiber.Ctx, doc timetable.Document) error {
	autosaveEnabled := true
	if user, err := middleware.GetCurrentUser(c); err == nil {
		var settings models.UserSettings
		if err := database.DB.Where("user_id = ?", user.ID).First(&settings).Error; err == nil {
			autosaveEnabled = settings.AutosaveEnabled
		}
	}
	if autosaveEnabled {
		sc.autosave.Queue(doc)
		return nil
	}
	return sc.autosave.SaveNow(doc)
}

// mergeDefault resolves the multi-day fan-out default from user settings.
func mergeDefault(c *fiber.Ctx) bool {
	if user, err := middleware.GetCurrentUser(c); err == nil {
		var settings models.UserSettings
		if err := database.DB.Where("user_id = ?", user.ID).First(&settings).Error; err == nil {
			return settings.ApplyToAllDays
		}
	}
	return true
}

// GetGrid returns the timeline, rendering plan, events and save state
// for one schedule view.
func (sc *ScheduleController) GetGrid(c *fiber.Ctx) error {
	v := sc.viewFromQuery(c)

	tl, ex, weekdays, doc, err := sc.loadGrid(v)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule grid",
		})
	}

	plan := timetable.PlanGrid(doc.Events, tl, weekdays, ex)

	return c.JSON(fiber.Map{
		"meta": fiber.Map{
			"class":         v.Class,
			"schedule_type": v.ScheduleType,
			"school_year":   v.SchoolYear,
			"semester":      v.Semester,
			"storage_key":   v.storageKey(),
		},
		"timeline":    tl,
		"weekdays":    weekdays,
		"exceptions":  ex,
		"events":      doc.Events,
		"plan":        plan,
		"save_state":  sc.autosave.State(v.storageKey()),
	})
}

// CreateEventsRequest is the drag-selection creation payload.
type CreateEventsRequest struct {
	Class        string              `json:"class"`
	ScheduleType string              `json:"schedule_type"`
	SchoolYear   string              `json:"school_year"`
	Semester     string              `json:"semester"`
	Selection    timetable.Selection `json:"selection"`
	MergeDays    *bool               `json:"merge_days"`
	Subject      string              `json:"subject"`
	Teacher      string              `json:"teacher"`
	Room         string              `json:"room"`
}

// CreateEvents translates a finalized drag selection into scheduled
// events and persists the updated document.
func (sc *ScheduleController) CreateEvents(c *fiber.Ctx) error {
	var req CreateEventsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	v := gridView{
		Class:        req.Class,
		ScheduleType: req.ScheduleType,
		SchoolYear:   req.SchoolYear,
		Semester:     req.Semester,
	}
	if v.SchoolYear == "" {
		v.SchoolYear = config.AppConfig.DefaultSchoolYear
	}
	if v.Semester == "" {
		v.Semester = config.AppConfig.DefaultSemester
	}
	sc.resolveScheduleType(&v)

	tl, ex, _, doc, err := sc.loadGrid(v)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule grid",
		})
	}

	merge := mergeDefault(c)
	if req.MergeDays != nil {
		merge = *req.MergeDays
	}

	set := timetable.NewEventSet(doc.Events)
	actor := middleware.ActorName(c)
	result, err := set.CreateFromSelection(req.Selection, tl, ex, merge, timetable.EventDetails{
		Subject: req.Subject,
		Teacher: req.Teacher,
		Room:    req.Room,
	}, actor, time.Now())
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	doc.Events = set.Events()
	if err := sc.persist(c, doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save schedule",
		})
	}

	if len(result.Created) > 0 {
		ids := make([]string, 0, len(result.Created))
		for _, e := range result.Created {
			ids = append(ids, e.ID)
		}
		sc.hub.BroadcastGridMutation(v.storageKey(), "create", actor, ids, nil)
		middleware.LogActivity(c, "CREATE", "schedule_events", 0, fiber.Map{
			"storage_key": v.storageKey(),
			"created":     len(result.Created),
			"duplicates":  result.Duplicates,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Events created",
		"created":    result.Created,
		"duplicates": result.Duplicates,
		"rejections": result.Rejections,
		"save_state": sc.autosave.State(v.storageKey()),
	})
}

// UpdateEventRequest is the full-replace edit payload for one event.
type UpdateEventRequest struct {
	Class        string   `json:"class"`
	ScheduleType string   `json:"schedule_type"`
	SchoolYear   string   `json:"school_year"`
	Semester     string   `json:"semester"`
	Days         []string `json:"days"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Subject      string   `json:"subject"`
	Teacher      string   `json:"teacher"`
	Room         string   `json:"room"`
}

// UpdateEvent applies a full edit to an event, recording per-field audit
// history.
func (sc *ScheduleController) UpdateEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")

	var req UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	v := gridView{Class: req.Class, ScheduleType: req.ScheduleType, SchoolYear: req.SchoolYear, Semester: req.Semester}
	if v.SchoolYear == "" {
		v.SchoolYear = config.AppConfig.DefaultSchoolYear
	}
	if v.Semester == "" {
		v.Semester = config.AppConfig.DefaultSemester
	}
	sc.resolveScheduleType(&v)

	doc, err := sc.grid.LoadDocument(v.Class, v.ScheduleType, v.SchoolYear, v.Semester)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule",
		})
	}

	set := timetable.NewEventSet(doc.Events)
	actor := middleware.ActorName(c)
	updated, err := set.ApplyEdit(eventID, timetable.EventPatch{
		Days:    req.Days,
		Start:   req.Start,
		End:     req.End,
		Subject: req.Subject,
		Teacher: req.Teacher,
		Room:    req.Room,
	}, actor, time.Now())
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	doc.Events = set.Events()
	if err := sc.persist(c, doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save schedule",
		})
	}

	sc.hub.BroadcastGridMutation(v.storageKey(), "update", actor, []string{eventID}, nil)
	middleware.LogActivity(c, "UPDATE", "schedule_events", 0, fiber.Map{
		"storage_key": v.storageKey(),
		"event_id":    eventID,
	})

	return c.JSON(fiber.Map{
		"message":    "Event updated",
		"event":      updated,
		"save_state": sc.autosave.State(v.storageKey()),
	})
}

// DeleteEvent removes one event from the schedule.
func (sc *ScheduleController) DeleteEvent(c *fiber.Ctx) error {
	eventID := c.Params("id")
	v := sc.viewFromQuery(c)

	doc, err := sc.grid.LoadDocument(v.Class, v.ScheduleType, v.SchoolYear, v.Semester)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule",
		})
	}

	set := timetable.NewEventSet(doc.Events)
	if err := set.Delete(eventID); err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	doc.Events = set.Events()
	if err := sc.persist(c, doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save schedule",
		})
	}

	actor := middleware.ActorName(c)
	sc.hub.BroadcastGridMutation(v.storageKey(), "delete", actor, []string{eventID}, nil)
	middleware.LogActivity(c, "DELETE", "schedule_events", 0, fiber.Map{
		"storage_key": v.storageKey(),
		"event_id":    eventID,
	})

	return c.JSON(fiber.Map{
		"message":    "Event deleted",
		"save_state": sc.autosave.State(v.storageKey()),
	})
}

// GetEventHistory returns the append-only change records of one event.
func (sc *ScheduleController) GetEventHistory(c *fiber.Ctx) error {
	eventID := c.Params("id")
	v := sc.viewFromQuery(c)

	doc, err := sc.grid.LoadDocument(v.Class, v.ScheduleType, v.SchoolYear, v.Semester)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule",
		})
	}

	set := timetable.NewEventSet(doc.Events)
	event, err := set.Find(eventID)
	if err != nil {
		return c.Status(statusForError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"event_id": event.ID,
		"created": fiber.Map{
			"by": event.CreatedBy,
			"at": event.CreatedAt,
		},
		"modified_by": event.ModifiedBy,
		"modified_at": event.ModifiedAt,
		"changes":     event.Changes,
	})
}

// SaveNow forces an immediate write of the current document, bypassing
// the debounce window.
func (sc *ScheduleController) SaveNow(c *fiber.Ctx) error {
	v := sc.viewFromQuery(c)

	doc, err := sc.grid.LoadDocument(v.Class, v.ScheduleType, v.SchoolYear, v.Semester)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule",
		})
	}

	if err := sc.autosave.SaveNow(doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":      "Failed to save schedule",
			"save_state": sc.autosave.State(v.storageKey()),
		})
	}

	middleware.LogActivity(c, "UPDATE", "schedules", 0, fiber.Map{
		"storage_key": v.storageKey(),
		"action":      "manual_save",
	})

	return c.JSON(fiber.Map{
		"message":    "Schedule saved",
		"save_state": sc.autosave.State(v.storageKey()),
	})
}

// GetSaveStatus reports the autosave state of one schedule view.
func (sc *ScheduleController) GetSaveStatus(c *fiber.Ctx) error {
	v := sc.viewFromQuery(c)
	return c.JSON(fiber.Map{
		"storage_key": v.storageKey(),
		"save_state":  sc.autosave.State(v.storageKey()),
	})
}

// ResetSchedule drops every event of one view after confirmation.
func (sc *ScheduleController) ResetSchedule(c *fiber.Ctx) error {
	var req struct {
		Class        string `json:"class"`
		ScheduleType string `json:"schedule_type"`
		SchoolYear   string `json:"school_year"`
		Semester     string `json:"semester"`
		Confirm      bool   `json:"confirm"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if !req.Confirm {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Reset requires confirmation",
		})
	}

	v := gridView{Class: req.Class, ScheduleType: req.ScheduleType, SchoolYear: req.SchoolYear, Semester: req.Semester}
	if v.SchoolYear == "" {
		v.SchoolYear = config.AppConfig.DefaultSchoolYear
	}
	if v.Semester == "" {
		v.Semester = config.AppConfig.DefaultSemester
	}
	sc.resolveScheduleType(&v)

	doc, err := sc.grid.LoadDocument(v.Class, v.ScheduleType, v.SchoolYear, v.Semester)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule",
		})
	}
	removed := len(doc.Events)

	// Reset removes the stored record entirely; a pending autosave would
	// just recreate it, so drop that too.
	sc.autosave.Discard(v.storageKey())
	if err := database.DB.Where("storage_key = ?", v.storageKey()).
		Delete(&models.ScheduleDocument{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reset schedule",
		})
	}

	actor := middleware.ActorName(c)
	sc.hub.BroadcastGridMutation(v.storageKey(), "reset", actor, nil, nil)
	middleware.LogActivity(c, "DELETE", "schedules", 0, fiber.Map{
		"storage_key": v.storageKey(),
		"action":      "reset",
		"removed":     removed,
	})

	return c.JSON(fiber.Map{
		"message": "Schedule reset",
		"removed": removed,
	})
}

// ExportSchedule streams the current schedule as an XLSX workbook or a
// flat CSV event listing.
func (sc *ScheduleController) ExportSchedule(c *fiber.Ctx) error {
	v := sc.viewFromQuery(c)
	format := strings.ToLower(c.Query("format", "xlsx"))

	tl, ex, weekdays, doc, err := sc.loadGrid(v)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule",
		})
	}

	switch format {
	case "csv":
		data, err := services.BuildCSV(doc)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to build CSV export",
			})
		}
		c.Set("Content-Type", "text/csv")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, v.storageKey()))
		return c.Send(data)
	case "xlsx":
		workbook, err := services.BuildWorkbook(doc, tl, weekdays, ex)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to build workbook",
			})
		}
		buf, err := workbook.WriteToBuffer()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to serialize workbook",
			})
		}
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, v.storageKey()))
		return c.Send(buf.Bytes())
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported export format (xlsx, csv)",
		})
	}
}

// CreateSnapshot stores a named copy of the current event list.
func (sc *ScheduleController) CreateSnapshot(c *fiber.Ctx) error {
	var req struct {
		Class        string `json:"class"`
		ScheduleType string `json:"schedule_type"`
		SchoolYear   string `json:"school_year"`
		Semester     string `json:"semester"`
		Name         string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Snapshot name is required",
		})
	}

	v := gridView{Class: req.Class, ScheduleType: req.ScheduleType, SchoolYear: req.SchoolYear, Semester: req.Semester}
	if v.SchoolYear == "" {
		v.SchoolYear = config.AppConfig.DefaultSchoolYear
	}
	if v.Semester == "" {
		v.Semester = config.AppConfig.DefaultSemester
	}
	sc.resolveScheduleType(&v)

	doc, err := sc.grid.LoadDocument(v.Class, v.ScheduleType, v.SchoolYear, v.Semester)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load schedule",
		})
	}

	payload, err := timetable.EncodeDocument(doc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to encode snapshot",
		})
	}

	var createdByID uint
	if user, err := middleware.GetCurrentUser(c); err == nil {
		createdByID = user.ID
	}

	now := time.Now()
	snapshot := models.ScheduleSnapshot{
		SnapshotID:    uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		ScheduleType:  v.ScheduleType,
		SelectedClass: v.Class,
		SchoolYear:    v.SchoolYear,
		Semester:      v.Semester,
		Events:        models.JSON(payload),
		CreatedByID:   createdByID,
		SavedAt:       &now,
	}

	if err := database.DB.Create(&snapshot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create snapshot",
		})
	}

	middleware.LogActivity(c, "CREATE", "schedule_snapshots", snapshot.ID, fiber.Map{
		"snapshot_id": snapshot.SnapshotID,
		"name":        snapshot.Name,
		"storage_key": v.storageKey(),
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Snapshot created",
		"snapshot": snapshot,
	})
}

// GetSnapshots lists stored snapshots, optionally filtered to one view.
func (sc *ScheduleController) GetSnapshots(c *fiber.Ctx) error {
	query := database.DB.Model(&models.ScheduleSnapshot{})

	if class := c.Query("class"); class != "" {
		query = query.Where("selected_class = ?", class)
	}
	if year := c.Query("school_year"); year != "" {
		query = query.Where("school_year = ?", year)
	}
	if semester := c.Query("semester"); semester != "" {
		query = query.Where("semester = ?", semester)
	}

	var snapshots []models.ScheduleSnapshot
	if err := query.Preload("CreatedBy").Order("created_at DESC").Find(&snapshots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch snapshots",
		})
	}

	return c.JSON(fiber.Map{
		"snapshots": snapshots,
		"total":     len(snapshots),
	})
}

// RestoreSnapshot replaces the current schedule with a snapshot's events.
func (sc *ScheduleController) RestoreSnapshot(c *fiber.Ctx) error {
	snapshotID := c.Params("snapshot_id")

	var snapshot models.ScheduleSnapshot
	if err := database.DB.Where("snapshot_id = ?", snapshotID).First(&snapshot).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Snapshot not found",
		})
	}

	doc, err := timetable.DecodeDocument(snapshot.Events, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to decode snapshot",
		})
	}
	doc.Meta = timetable.Meta{
		SelectedClass: snapshot.SelectedClass,
		ScheduleType:  snapshot.ScheduleType,
		SchoolYear:    snapshot.SchoolYear,
		Semester:      snapshot.Semester,
	}

	if err := sc.autosave.SaveNow(doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to restore snapshot",
		})
	}

	actor := middleware.ActorName(c)
	sc.hub.BroadcastGridMutation(doc.StorageKey(), "restore", actor, nil, fiber.Map{
		"snapshot_id": snapshot.SnapshotID,
	})
	middleware.LogActivity(c, "UPDATE", "schedules", snapshot.ID, fiber.Map{
		"action":      "restore_snapshot",
		"snapshot_id": snapshot.SnapshotID,
		"storage_key": doc.StorageKey(),
	})

	return c.JSON(fiber.Map{
		"message": "Snapshot restored",
		"events":  len(doc.Events),
	})
}

// DeleteSnapshot removes a stored snapshot.
func (sc *ScheduleController) DeleteSnapshot(c *fiber.Ctx) error {
	snapshotID := c.Params("snapshot_id")

	var snapshot models.ScheduleSnapshot
	if err := database.DB.Where("snapshot_id = ?", snapshotID).First(&snapshot).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Snapshot not found",
		})
	}

	if err := database.DB.Delete(&snapshot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete snapshot",
		})
	}

	middleware.LogActivity(c, "DELETE", "schedule_snapshots", snapshot.ID, fiber.Map{
		"snapshot_id": snapshot.SnapshotID,
	})

	return c.JSON(fiber.Map{
		"message": "Snapshot deleted",
	})
}

// GetDocuments lists every stored schedule document.
func (sc *ScheduleController) GetDocuments(c *fiber.Ctx) error {
	records, err := sc.grid.ListDocuments()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve schedule documents",
		})
	}

	return c.JSON(fiber.Map{
		"documents": records,
		"total":     len(records),
	})
}
