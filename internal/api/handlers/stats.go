package handlers

import (
	"log"
	"net/http"

	"github.com/rsathishtechit/video-player/internal/services"
	"github.com/rsathishtechit/video-player/pkg/session"
)

// StatsHandler processes learning-time and playback-session requests
type StatsHandler struct {
	Stats    *services.StatsService
	Progress *services.ProgressService
}

// NewStatsHandler creates handler with injected services
func NewStatsHandler(stats *services.StatsService, progress *services.ProgressService) *StatsHandler {
	return &StatsHandler{Stats: stats, Progress: progress}
}

// Daily handles GET /api/stats/daily - every recorded day in order
func (h *StatsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	SendJSON(w, http.StatusOK, "Daily stats retrieved", h.Stats.DailyStats())
}

// Summary handles GET /api/stats/summary - totals plus current streak
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	SendJSON(w, http.StatusOK, "Learning summary retrieved", h.Stats.Summary())
}

// AddLearningTime handles POST /api/stats/learning-time - direct entry
// point for collaborators that track their own sessions
func (h *StatsHandler) AddLearningTime(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Seconds int64 `json:"seconds"`
	}
	if err := DecodeJSONBody(r, &body); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if body.Seconds <= 0 {
		SendError(w, "Seconds must be positive", http.StatusBadRequest, nil)
		return
	}

	row, err := h.Stats.AddLearningTime(body.Seconds)
	if err != nil {
		SendServiceError(w, "Failed to record learning time", err)
		return
	}
	SendJSON(w, http.StatusOK, "Learning time recorded", row)
}

// StartSession handles POST /api/sessions - opens a playback session and
// hands the token back to the player surface
func (h *StatsHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VideoID int64 `json:"videoId"`
	}
	if err := DecodeJSONBody(r, &body); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if body.VideoID <= 0 {
		SendError(w, "Video ID is required", http.StatusBadRequest, nil)
		return
	}

	s := session.Start(body.VideoID)
	SendJSON(w, http.StatusCreated, "Playback session started", s)
}

// EndSession handles POST /api/sessions/end - closes a session and folds
// it into today's learning time unless it was too short to matter
func (h *StatsHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := DecodeJSONBody(r, &body); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	videoID, seconds, ok := session.End(body.SessionID)
	if !ok {
		SendError(w, "Unknown playback session", http.StatusNotFound, nil)
		return
	}

	recorded := false
	if seconds >= session.MinSessionSeconds {
		if _, err := h.Stats.AddLearningTime(seconds); err != nil {
			log.Printf("Warning: failed to record learning time for video %d: %v", videoID, err)
		} else {
			recorded = true
		}
	}

	SendJSON(w, http.StatusOK, "Playback session ended", map[string]interface{}{
		"videoId":  videoID,
		"seconds":  seconds,
		"recorded": recorded,
	})
}
