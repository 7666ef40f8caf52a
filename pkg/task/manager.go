package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status shows what state a task is in
type Status string

const (
	StatusPending    Status = "pending"    // waiting to start
	StatusProcessing Status = "processing" // currently running
	StatusCompleted  Status = "completed"  // finished successfully
	StatusFailed     Status = "failed"     // something went wrong
)

// Task types used by the import surface
const (
	TypeCourseImport = "course_import"
)

// Task represents a background job that might take a while, like a batch
// course import with hundreds of file descriptors
type Task struct {
	ID           string      `json:"id"`
	Type         string      `json:"type"`                    // what kind of task
	Status       Status      `json:"status"`                  // current state
	Progress     float32     `json:"progress"`                // 0-100 percent done
	CreatedAt    time.Time   `json:"createdAt"`               // when it was queued
	StartedAt    time.Time   `json:"startedAt,omitempty"`     // when processing began
	CompletedAt  time.Time   `json:"completedAt,omitempty"`   // when it finished
	Message      string      `json:"message,omitempty"`       // status updates
	ErrorMessage string      `json:"errorMessage,omitempty"`  // what went wrong
	Result       interface{} `json:"result,omitempty"`        // final results
}

// Manager keeps track of all running tasks
type Manager struct {
	tasks map[string]*Task
	mu    sync.RWMutex // for thread safety
}

// global manager - single-process app, one registry is enough
var manager *Manager

// Initialize sets up the task registry
func Initialize() {
	manager = &Manager{
		tasks: make(map[string]*Task),
	}
}

// Create queues a new task and returns its ID
func Create(taskType string) string {
	if manager == nil {
		Initialize()
	}

	t := &Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}

	manager.mu.Lock()
	manager.tasks[t.ID] = t
	manager.mu.Unlock()

	return t.ID
}

// Get retrieves task info by ID
func Get(taskID string) (*Task, bool) {
	if manager == nil {
		return nil, false
	}

	manager.mu.RLock()
	defer manager.mu.RUnlock()

	t, exists := manager.tasks[taskID]
	return t, exists
}

// Start marks the task as processing with an initial message
func Start(taskID, message string) {
	update(taskID, func(t *Task) {
		t.Status = StatusProcessing
		t.Message = message
		if t.StartedAt.IsZero() {
			t.StartedAt = time.Now()
		}
	})
}

// SetProgress updates how much of the task is done
func SetProgress(taskID string, progress float32, message string) {
	update(taskID, func(t *Task) {
		t.Progress = progress
		t.Message = message
	})
}

// Fail marks the task as failed with an error message
func Fail(taskID, errorMessage string) {
	update(taskID, func(t *Task) {
		t.Status = StatusFailed
		t.ErrorMessage = errorMessage
		t.CompletedAt = time.Now()
	})
}

// Complete marks the task as done with optional result data
func Complete(taskID, message string, result interface{}) {
	update(taskID, func(t *Task) {
		t.Status = StatusCompleted
		t.Progress = 100
		t.Message = message
		t.Result = result
		t.CompletedAt = time.Now()
	})
}

func update(taskID string, fn func(*Task)) {
	if manager == nil {
		return
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	t, exists := manager.tasks[taskID]
	if !exists {
		return
	}
	fn(t)
}

// CleanupOld removes finished tasks older than maxAge and reports how many
func CleanupOld(maxAge time.Duration) int {
	if manager == nil {
		return 0
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	for id, t := range manager.tasks {
		// only clean up tasks that actually finished
		if (t.Status == StatusCompleted || t.Status == StatusFailed) &&
			!t.CompletedAt.IsZero() && t.CompletedAt.Before(cutoff) {
			delete(manager.tasks, id)
			cleaned++
		}
	}

	return cleaned
}

// CleanupRoutine runs cleanup automatically on a schedule
func CleanupRoutine(interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		CleanupOld(maxAge)
	}
}
