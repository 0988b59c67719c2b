package services

import (
	"errors"
	"sync"
	"time"

	"schoolgrid_go/database"
	"schoolgrid_go/models"
	"schoolgrid_go/timetable"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SaveStatus enumerates the autosave states a schedule can be in.
type SaveStatus string

const (
	SaveStatusIdle   SaveStatus = "idle"
	SaveStatusSaving SaveStatus = "saving"
	SaveStatusSaved  SaveStatus = "saved"
	SaveStatusError  SaveStatus = "error"
)

// DocumentWriter persists an encoded schedule document under its storage key.
type DocumentWriter func(storageKey string, doc timetable.Document) error

// StatusNotifier pushes autosave transitions to connected clients.
type StatusNotifier interface {
	BroadcastSaveStatus(storageKey, status, savedAt, errMsg string)
}

// SaveState is the externally visible autosave state for one schedule.
type SaveState struct {
	Status  SaveStatus `json:"status"`
	SavedAt *time.Time `json:"saved_at,omitempty"`
	Error   string     `json:"error,omitempty"`
}

type pendingSave struct {
	timer *time.Timer
	doc   timetable.Document
}

// AutosaveService coalesces rapid schedule edits into debounced writes.
// Each storage key keeps its own timer; a new edit within the debounce
// window replaces the queued document and restarts the timer, so only the
// latest state reaches the writer.
type AutosaveService struct {
	mu       sync.Mutex
	debounce time.Duration
	writer   DocumentWriter
	notifier StatusNotifier

	pending map[string]*pendingSave
	states  map[string]*SaveState
}

// NewAutosaveService creates an autosave service with the given debounce window.
func NewAutosaveService(debounce time.Duration, writer DocumentWriter, notifier StatusNotifier) *AutosaveService {
	if debounce <= 0 {
		debounce = time.Second
	}
	return &AutosaveService{
		debounce: debounce,
		writer:   writer,
		notifier: notifier,
		pending:  make(map[string]*pendingSave),
		states:   make(map[string]*SaveState),
	}
}

// Queue schedules a debounced save of doc under its storage key.
func (s *AutosaveService) Queue(doc timetable.Document) {
	key := doc.StorageKey()

	s.mu.Lock()
	s.setStateLocked(key, SaveStatusSaving, nil, "")
	if p, ok := s.pending[key]; ok {
		p.doc = doc
		p.timer.Reset(s.debounce)
		s.mu.Unlock()
		return
	}
	p := &pendingSave{doc: doc}
	p.timer = time.AfterFunc(s.debounce, func() {
		s.flushKey(key)
	})
	s.pending[key] = p
	s.mu.Unlock()
}

// SaveNow writes doc immediately, cancelling any pending debounced save.
func (s *AutosaveService) SaveNow(doc timetable.Document) error {
	key := doc.StorageKey()

	s.mu.Lock()
	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
		delete(s.pending, key)
	}
	s.setStateLocked(key, SaveStatusSaving, nil, "")
	s.mu.Unlock()

	return s.write(key, doc)
}

// Discard drops any pending debounced save for a storage key and returns
// its state to idle. Used when the stored record itself is deleted.
func (s *AutosaveService) Discard(storageKey string) {
	s.mu.Lock()
	if p, ok := s.pending[storageKey]; ok {
		p.timer.Stop()
		delete(s.pending, storageKey)
	}
	delete(s.states, storageKey)
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.BroadcastSaveStatus(storageKey, string(SaveStatusIdle), "", "")
	}
}

// Flush writes every pending document immediately. Meant for shutdown.
func (s *AutosaveService) Flush() {
	s.mu.Lock()
	docs := make([]timetable.Document, 0, len(s.pending))
	for key, p := range s.pending {
		p.timer.Stop()
		docs = append(docs, p.doc)
		delete(s.pending, key)
	}
	s.mu.Unlock()

	for _, doc := range docs {
		if err := s.write(doc.StorageKey(), doc); err != nil {
			logrus.WithError(err).WithField("storage_key", doc.StorageKey()).Error("Autosave flush failed")
		}
	}
}

// State reports the current autosave state for a storage key.
func (s *AutosaveService) State(storageKey string) SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[storageKey]; ok {
		return *st
	}
	return SaveState{Status: SaveStatusIdle}
}

func (s *AutosaveService) flushKey(key string) {
	s.mu.Lock()
	p, ok := s.pending[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	doc := p.doc
	s.mu.Unlock()

	if err := s.write(key, doc); err != nil {
		logrus.WithError(err).WithField("storage_key", key).Error("Autosave write failed")
	}
}

func (s *AutosaveService) write(key string, doc timetable.Document) error {
	now := time.Now()
	doc.SavedAt = now

	err := s.writer(key, doc)

	s.mu.Lock()
	if err != nil {
		s.setStateLocked(key, SaveStatusError, nil, err.Error())
	} else {
		s.setStateLocked(key, SaveStatusSaved, &now, "")
	}
	s.mu.Unlock()

	return err
}

// setStateLocked updates the tracked state and notifies clients. Caller holds mu.
func (s *AutosaveService) setStateLocked(key string, status SaveStatus, savedAt *time.Time, errMsg string) {
	st, ok := s.states[key]
	if !ok {
		st = &SaveState{}
		s.states[key] = st
	}
	st.Status = status
	st.Error = errMsg
	if savedAt != nil {
		st.SavedAt = savedAt
	}

	if s.notifier != nil {
		savedAtStr := ""
		if st.SavedAt != nil {
			savedAtStr = st.SavedAt.Format(time.RFC3339)
		}
		s.notifier.BroadcastSaveStatus(key, string(status), savedAtStr, errMsg)
	}
}

// DBDocumentWriter persists documents as ScheduleDocument rows, one per
// storage key, creating the row on first save and updating it afterwards.
func DBDocumentWriter(storageKey string, doc timetable.Document) error {
	payload, err := timetable.EncodeDocument(doc)
	if err != nil {
		return err
	}
	savedAt := doc.SavedAt

	var record models.ScheduleDocument
	err = database.DB.Where("storage_key = ?", storageKey).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.ScheduleDocument{
			StorageKey:    storageKey,
			SelectedClass: doc.Meta.SelectedClass,
			ScheduleType:  doc.Meta.ScheduleType,
			SchoolYear:    doc.Meta.SchoolYear,
			Semester:      doc.Meta.Semester,
			Events:        models.JSON(payload),
			SavedAt:       &savedAt,
		}
		return database.DB.Create(&record).Error
	}
	if err != nil {
		return err
	}

	return database.DB.Model(&record).Updates(map[string]interface{}{
		"events":   models.JSON(payload),
		"saved_at": &savedAt,
	}).Error
}
