package models

import "time"

// VideoProgress tracks how far the user has gotten through a single video.
// At most one record exists per video - writes are upserts, never appends.
type VideoProgress struct {
	ID      int64 `json:"id"`      // unique identifier
	VideoID int64 `json:"videoId"` // which video, unique across all records

	CurrentTime        float64 `json:"currentTime"`        // playback position in seconds
	Duration           float64 `json:"duration"`           // duration as seen by the player
	ProgressPercentage float64 `json:"progressPercentage"` // 0-100

	// completed is sticky - once set it survives later heartbeats and is
	// only cleared by an explicit mark-incomplete
	Completed         bool `json:"completed"`
	ManuallyCompleted bool `json:"manuallyCompleted"` // user forced it complete

	LastWatchedAt *time.Time `json:"lastWatchedAt,omitempty"` // when playback last touched this video
}

// ProgressUpdateInput is a playback heartbeat from the player surface
type ProgressUpdateInput struct {
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
}
