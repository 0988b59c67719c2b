package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"schoolgrid_go/timetable"
)

type captureWriter struct {
	mu    sync.Mutex
	calls []timetable.Document
	err   error
}

func (w *captureWriter) write(storageKey string, doc timetable.Document) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, doc)
	return w.err
}

func (w *captureWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.calls)
}

func (w *captureWriter) last() timetable.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls[len(w.calls)-1]
}

type captureNotifier struct {
	mu       sync.Mutex
	statuses []string
}

func (n *captureNotifier) BroadcastSaveStatus(storageKey, status, savedAt, errMsg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, status)
}

func (n *captureNotifier) seen() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.statuses))
	copy(out, n.statuses)
	return out
}

func testDoc(subject string) timetable.Document {
	return timetable.Document{
		Meta: timetable.Meta{
			SelectedClass: "grade-7-sampaguita",
			ScheduleType:  "jhs",
			SchoolYear:    "2025-2026",
			Semester:      "1st",
		},
		Events: []timetable.Event{{
			ID:      "evt-1",
			Days:    []string{"Monday"},
			Start:   "8:00 AM",
			End:     "9:00 AM",
			Subject: subject,
			Teacher: "TBD",
			Room:    "TBD",
		}},
	}
}

func TestAutosaveCoalescesRapidEdits(t *testing.T) {
	w := &captureWriter{}
	svc := NewAutosaveService(30*time.Millisecond, w.write, nil)

	svc.Queue(testDoc("Math"))
	svc.Queue(testDoc("Science"))
	svc.Queue(testDoc("English"))

	if got := w.count(); got != 0 {
		t.Fatalf("writer called %d times before debounce elapsed", got)
	}

	time.Sleep(120 * time.Millisecond)

	if got := w.count(); got != 1 {
		t.Fatalf("writer called %d times, want 1", got)
	}
	if subj := w.last().Events[0].Subject; subj != "English" {
		t.Errorf("persisted subject = %q, want latest edit %q", subj, "English")
	}

	state := svc.State(testDoc("English").StorageKey())
	if state.Status != SaveStatusSaved {
		t.Errorf("state = %q, want %q", state.Status, SaveStatusSaved)
	}
	if state.SavedAt == nil {
		t.Error("SavedAt not recorded after successful save")
	}
}

func TestAutosaveSeparateKeysSeparateTimers(t *testing.T) {
	w := &captureWriter{}
	svc := NewAutosaveService(30*time.Millisecond, w.write, nil)

	docA := testDoc("Math")
	docB := testDoc("Math")
	docB.Meta.SelectedClass = "grade-8-rizal"

	svc.Queue(docA)
	svc.Queue(docB)

	time.Sleep(120 * time.Millisecond)

	if got := w.count(); got != 2 {
		t.Fatalf("writer called %d times, want 2 (one per storage key)", got)
	}
}

func TestSaveNowBypassesDebounce(t *testing.T) {
	w := &captureWriter{}
	svc := NewAutosaveService(time.Hour, w.write, nil)

	doc := testDoc("Math")
	svc.Queue(doc)

	if err := svc.SaveNow(doc); err != nil {
		t.Fatalf("SaveNow: %v", err)
	}
	if got := w.count(); got != 1 {
		t.Fatalf("writer called %d times, want 1", got)
	}

	// The queued timer was cancelled; nothing further should fire.
	time.Sleep(80 * time.Millisecond)
	if got := w.count(); got != 1 {
		t.Fatalf("writer called %d times after SaveNow, want 1", got)
	}
}

func TestAutosaveWriteFailureSetsErrorState(t *testing.T) {
	w := &captureWriter{err: errors.New("connection lost")}
	svc := NewAutosaveService(10*time.Millisecond, w.write, nil)

	doc := testDoc("Math")
	svc.Queue(doc)
	time.Sleep(80 * time.Millisecond)

	state := svc.State(doc.StorageKey())
	if state.Status != SaveStatusError {
		t.Fatalf("state = %q, want %q", state.Status, SaveStatusError)
	}
	if state.Error != "connection lost" {
		t.Errorf("state error = %q, want %q", state.Error, "connection lost")
	}
}

func TestAutosaveStateIdleForUnknownKey(t *testing.T) {
	svc := NewAutosaveService(time.Second, (&captureWriter{}).write, nil)

	state := svc.State("schedule-events-all-2025-2026-1st")
	if state.Status != SaveStatusIdle {
		t.Errorf("state = %q, want %q", state.Status, SaveStatusIdle)
	}
}

func TestDiscardDropsPendingSave(t *testing.T) {
	w := &captureWriter{}
	svc := NewAutosaveService(time.Hour, w.write, nil)

	doc := testDoc("Math")
	svc.Queue(doc)
	svc.Discard(doc.StorageKey())

	// Nothing was pending anymore, so Flush must not resurrect the write.
	svc.Flush()
	if got := w.count(); got != 0 {
		t.Fatalf("writer called %d times after Discard, want 0", got)
	}

	state := svc.State(doc.StorageKey())
	if state.Status != SaveStatusIdle {
		t.Errorf("state = %q after Discard, want %q", state.Status, SaveStatusIdle)
	}
}

func TestAutosaveFlushWritesPending(t *testing.T) {
	w := &captureWriter{}
	svc := NewAutosaveService(time.Hour, w.write, nil)

	svc.Queue(testDoc("Math"))
	svc.Flush()

	if got := w.count(); got != 1 {
		t.Fatalf("writer called %d times after Flush, want 1", got)
	}
}

func TestAutosaveNotifiesTransitions(t *testing.T) {
	w := &captureWriter{}
	n := &captureNotifier{}
	svc := NewAutosaveService(10*time.Millisecond, w.write, n)

	svc.Queue(testDoc("Math"))
	time.Sleep(80 * time.Millisecond)

	seen := n.seen()
	if len(seen) < 2 {
		t.Fatalf("notifier saw %d transitions, want at least saving then saved", len(seen))
	}
	if seen[0] != string(SaveStatusSaving) {
		t.Errorf("first transition = %q, want %q", seen[0], SaveStatusSaving)
	}
	if seen[len(seen)-1] != string(SaveStatusSaved) {
		t.Errorf("last transition = %q, want %q", seen[len(seen)-1], SaveStatusSaved)
	}
}
