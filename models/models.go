package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// User model for scheduling staff accounts
type User struct {
	BaseModel
	Username string `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
	Email    string `json:"email" gorm:"size:255"`
	FullName string `json:"full_name" gorm:"size:200"`
	Role     string `json:"role" gorm:"size:50;not null;default:'registrar';type:enum('admin','registrar','viewer')"` // admin, registrar, viewer
	Status   string `json:"status" gorm:"size:50;not null;default:'active';type:enum('active','inactive')"`           // active, inactive

	// Relationships
	Settings *UserSettings `json:"settings,omitempty" gorm:"foreignKey:UserID"`
}

// UserSettings holds per-user grid builder preferences
type UserSettings struct {
	BaseModel
	UserID          uint `json:"user_id" gorm:"uniqueIndex;not null"`
	AutosaveEnabled bool `json:"autosave_enabled" gorm:"default:true"`
	// ApplyToAllDays is the multi-day fan-out default: one merged event
	// spanning the day range vs one independent event per day
	ApplyToAllDays bool   `json:"apply_to_all_days" gorm:"default:true"`
	Theme          string `json:"theme" gorm:"size:50;default:'light';type:enum('light','dark','system')"`
}

// Teacher registry entry
type Teacher struct {
	BaseModel
	FirstName      string `json:"first_name" gorm:"size:100;not null"`
	LastName       string `json:"last_name" gorm:"size:100;not null"`
	Email          string `json:"email" gorm:"size:255"`
	Phone          string `json:"phone" gorm:"size:20"`
	Department     string `json:"department" gorm:"size:100"`
	Specialization string `json:"specialization" gorm:"size:255"`
	Active         bool   `json:"active" gorm:"default:true"`
}

// Room registry entry
type Room struct {
	BaseModel
	Name     string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Building string `json:"building" gorm:"size:100"`
	Floor    string `json:"floor" gorm:"size:20"`
	Capacity int    `json:"capacity"`
	Type     string `json:"type" gorm:"size:50;default:'classroom';type:enum('classroom','laboratory','gym','library','other')"`
	Status   string `json:"status" gorm:"size:50;default:'available';type:enum('available','maintenance','retired')"` // available, maintenance, retired
}

// Subject registry entry
type Subject struct {
	BaseModel
	Code        string `json:"code" gorm:"size:50;uniqueIndex"`
	Name        string `json:"name" gorm:"size:255;not null"`
	GradeLevel  string `json:"grade_level" gorm:"size:50"`
	Description string `json:"description" gorm:"type:text"`
	Units       int    `json:"units" gorm:"default:1"`
	Active      bool   `json:"active" gorm:"default:true"`
}

// SchoolClass is a class/section a schedule grid is built for
type SchoolClass struct {
	BaseModel
	Name         string `json:"name" gorm:"size:100;not null"`
	Slug         string `json:"slug" gorm:"size:120;not null;uniqueIndex"`
	GradeLevel   string `json:"grade_level" gorm:"size:50;not null"`
	SchoolYear   string `json:"school_year" gorm:"size:20;not null"`
	ScheduleType string `json:"schedule_type" gorm:"size:50;not null;default:'jhs'"`
	AdviserID    *uint  `json:"adviser_id"`
	StudentCount int    `json:"student_count"`
	Active       bool   `json:"active" gorm:"default:true"`

	// Relationships
	Adviser *Teacher `json:"adviser,omitempty" gorm:"foreignKey:AdviserID"`
}

// ScheduleTypeConfig drives timeline generation for one schedule type:
// day window, default step, break list and per-day break exceptions.
// The grid recomputes its slot sequence from the latest row whenever any
// of these change.
type ScheduleTypeConfig struct {
	BaseModel
	Code        string `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Name        string `json:"name" gorm:"size:100;not null"`
	DayStart    string `json:"day_start" gorm:"size:20;not null;default:'7:45 AM'"`
	DayEnd      string `json:"day_end" gorm:"size:20;not null;default:'5:15 PM'"`
	StepMinutes int    `json:"step_minutes" gorm:"not null;default:60"`
	// Breaks is a JSON array of {start, end, step, label}
	Breaks JSON `json:"breaks" gorm:"type:json"`
	// BreakExceptions is a JSON array of weekday names whose break cells
	// behave as teaching cells for event creation
	BreakExceptions JSON `json:"break_exceptions" gorm:"type:json"`
	// Weekdays is a JSON array of active weekday names in canonical order
	Weekdays JSON `json:"weekdays" gorm:"type:json"`
}

// ScheduleDocument is one persisted grid view: the full event list as a
// JSON document under the (class, school year, semester) composite key.
type ScheduleDocument struct {
	BaseModel
	StorageKey    string     `json:"storage_key" gorm:"size:255;not null;uniqueIndex"`
	SelectedClass string     `json:"selected_class" gorm:"size:120;not null"`
	ScheduleType  string     `json:"schedule_type" gorm:"size:50"`
	SchoolYear    string     `json:"school_year" gorm:"size:20;not null"`
	Semester      string     `json:"semester" gorm:"size:20;not null"`
	Events        JSON       `json:"events" gorm:"type:json"`
	SavedAt       *time.Time `json:"saved_at"`
}

// ScheduleSnapshot is a named copy-on-save of a grid's event list;
// several snapshots can exist per view.
type ScheduleSnapshot struct {
	BaseModel
	SnapshotID    string     `json:"snapshot_id" gorm:"size:64;not null;uniqueIndex"`
	Name          string     `json:"name" gorm:"size:255;not null"`
	ScheduleType  string     `json:"schedule_type" gorm:"size:50"`
	SelectedClass string     `json:"selected_class" gorm:"size:120"`
	SchoolYear    string     `json:"school_year" gorm:"size:20"`
	Semester      string     `json:"semester" gorm:"size:20"`
	Events        JSON       `json:"events" gorm:"type:json"`
	CreatedByID   uint       `json:"created_by_id"`
	SavedAt       *time.Time `json:"saved_at"`

	// Relationships
	CreatedBy User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// ScheduleArchive tracks exported workbooks uploaded to S3
type ScheduleArchive struct {
	BaseModel
	StorageKey string `json:"storage_key" gorm:"size:255;not null"`
	FileName   string `json:"file_name" gorm:"size:255;not null"`
	S3Key      string `json:"s3_key" gorm:"size:500"`
	FileSize   int64  `json:"file_size"`
	Status     string `json:"status" gorm:"size:50;not null;default:'pending';type:enum('pending','completed','failed')"` // pending, completed, failed
	Error      string `json:"error" gorm:"type:text"`
}
