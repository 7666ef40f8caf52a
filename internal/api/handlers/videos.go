package handlers

import (
	"net/http"

	"github.com/rsathishtechit/video-player/internal/models"
	"github.com/rsathishtechit/video-player/internal/services"
)

// VideoHandler processes video-level HTTP requests - metadata, watch
// progress and completion state
type VideoHandler struct {
	Library  *services.LibraryService
	Progress *services.ProgressService
}

// NewVideoHandler creates handler with injected services
func NewVideoHandler(library *services.LibraryService, progress *services.ProgressService) *VideoHandler {
	return &VideoHandler{Library: library, Progress: progress}
}

// Get handles GET /api/videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	video, err := h.Library.GetVideo(id)
	if err != nil {
		SendServiceError(w, "Failed to retrieve video", err)
		return
	}
	SendJSON(w, http.StatusOK, "Video retrieved successfully", video)
}

// Update handles PUT /api/videos/{id} - metadata refinement and subtitle
// write-back from the transcription service
func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	var input models.UpdateVideoInput
	if err := DecodeJSONBody(r, &input); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	video, err := h.Library.UpdateVideo(id, input)
	if err != nil {
		SendServiceError(w, "Failed to update video", err)
		return
	}
	SendJSON(w, http.StatusOK, "Video updated successfully", video)
}

// Delete handles DELETE /api/videos/{id} - also removes its progress
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.Library.DeleteVideo(id); err != nil {
		SendServiceError(w, "Failed to delete video", err)
		return
	}
	SendJSON(w, http.StatusOK, "Video deleted successfully", nil)
}

// GetProgress handles GET /api/videos/{id}/progress - nil data means the
// video has never been watched
func (h *VideoHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	progress, err := h.Progress.GetProgress(id)
	if err != nil {
		SendServiceError(w, "Failed to retrieve progress", err)
		return
	}
	SendJSON(w, http.StatusOK, "Progress retrieved successfully", progress)
}

// UpdateProgress handles POST /api/videos/{id}/progress - the playback
// heartbeat, fired several times a second while a video plays
func (h *VideoHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	var input models.ProgressUpdateInput
	if err := DecodeJSONBody(r, &input); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	progress, err := h.Progress.UpdateVideoProgress(id, input)
	if err != nil {
		SendServiceError(w, "Failed to update progress", err)
		return
	}
	SendJSON(w, http.StatusOK, "Progress updated successfully", progress)
}

// Complete handles POST /api/videos/{id}/complete - sticky manual completion
func (h *VideoHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	progress, err := h.Progress.MarkCompleted(id)
	if err != nil {
		SendServiceError(w, "Failed to mark video completed", err)
		return
	}
	SendJSON(w, http.StatusOK, "Video marked as completed", progress)
}

// Incomplete handles POST /api/videos/{id}/incomplete - clears completion
// but keeps the playback position
func (h *VideoHandler) Incomplete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	progress, err := h.Progress.MarkIncomplete(id)
	if err != nil {
		SendServiceError(w, "Failed to mark video incomplete", err)
		return
	}
	SendJSON(w, http.StatusOK, "Video marked as incomplete", progress)
}

// ResetProgress handles POST /api/videos/{id}/progress/reset - forgets the
// video was ever watched
func (h *VideoHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.Progress.ResetVideoProgress(id); err != nil {
		SendServiceError(w, "Failed to reset progress", err)
		return
	}
	SendJSON(w, http.StatusOK, "Progress reset", nil)
}
