package models

import "time"

// Video represents a single video file inside a course
type Video struct {
	ID       int64 `json:"id"`       // unique identifier
	CourseID int64 `json:"courseId"` // owning course, required

	FileName string `json:"fileName"` // just the file name, drives display ordering
	FilePath string `json:"filePath"` // absolute path, unique across the whole library

	Duration float64 `json:"duration"` // seconds, may be 0 until refined by playback
	FileSize int64   `json:"fileSize"` // bytes

	// probed metadata - optional, filled in by the frontend prober
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	Codec     string  `json:"codec,omitempty"`
	Bitrate   int64   `json:"bitrate,omitempty"`
	FrameRate float64 `json:"frameRate,omitempty"`

	// subtitle fields - written back by the transcription service
	SubtitlePath     string `json:"subtitlePath,omitempty"`
	HasSubtitles     bool   `json:"hasSubtitles,omitempty"`
	SubtitleLanguage string `json:"subtitleLanguage,omitempty"`

	// timestamps
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VideoFileInput is a discovered file descriptor handed to us by the
// frontend crawler - we only record what we're given
type VideoFileInput struct {
	FileName  string  `json:"fileName"`
	FilePath  string  `json:"filePath"`
	Duration  float64 `json:"duration,omitempty"`
	FileSize  int64   `json:"fileSize,omitempty"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	Codec     string  `json:"codec,omitempty"`
	Bitrate   int64   `json:"bitrate,omitempty"`
	FrameRate float64 `json:"frameRate,omitempty"`
}

// UpdateVideoInput holds the fields a video update may change.
// Nil pointers mean "leave as is".
type UpdateVideoInput struct {
	FileName         *string  `json:"fileName,omitempty"`
	Duration         *float64 `json:"duration,omitempty"`
	Width            *int     `json:"width,omitempty"`
	Height           *int     `json:"height,omitempty"`
	Codec            *string  `json:"codec,omitempty"`
	Bitrate          *int64   `json:"bitrate,omitempty"`
	FrameRate        *float64 `json:"frameRate,omitempty"`
	SubtitlePath     *string  `json:"subtitlePath,omitempty"`
	HasSubtitles     *bool    `json:"hasSubtitles,omitempty"`
	SubtitleLanguage *string  `json:"subtitleLanguage,omitempty"`
}
