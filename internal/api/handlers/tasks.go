package handlers

import (
	"net/http"
	"time"

	"github.com/rsathishtechit/video-player/pkg/task"
)

// TaskHandler handles background task status requests
type TaskHandler struct{}

// NewTaskHandler creates new task handler
func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// Get handles GET /api/tasks?id={taskId} - checks task status
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		SendError(w, "Task ID is required", http.StatusBadRequest, nil)
		return
	}

	t, exists := task.Get(taskID)
	if !exists {
		SendError(w, "Task not found", http.StatusNotFound, nil)
		return
	}
	SendJSON(w, http.StatusOK, "Task retrieved", t)
}

// Cleanup handles POST /api/tasks/cleanup - manually cleans old tasks
func (h *TaskHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	// default to 24 hours if not specified
	age := 24 * time.Hour
	if ageStr := r.URL.Query().Get("age"); ageStr != "" {
		parsed, err := time.ParseDuration(ageStr)
		if err != nil {
			SendError(w, "Invalid duration format", http.StatusBadRequest, nil)
			return
		}
		age = parsed
	}

	cleaned := task.CleanupOld(age)
	SendJSON(w, http.StatusOK, "Cleanup completed", map[string]int{"cleaned": cleaned})
}
