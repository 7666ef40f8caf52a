package models

import "time"

// Course represents one imported folder of course videos
type Course struct {
	ID int64 `json:"id"` // unique identifier

	Name       string `json:"name"`       // display name, usually the folder name
	FolderPath string `json:"folderPath"` // unique - dedupe key for re-imports

	// lastWatchedVideoId is a weak reference - the video may have been
	// deleted since, readers resolve it by lookup and treat a miss as unset
	LastWatchedVideoID *int64 `json:"lastWatchedVideoId,omitempty"`

	// timestamps
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	LastAccessedAt *time.Time `json:"lastAccessedAt,omitempty"` // when the course was last opened
}

// CreateCourseInput is what we expect when importing a new course
type CreateCourseInput struct {
	Name       string           `json:"name"`
	FolderPath string           `json:"folderPath"`
	Files      []VideoFileInput `json:"files,omitempty"` // discovered by the frontend crawler
}

// UpdateCourseInput holds the fields a course update may change.
// Nil pointers mean "leave as is".
type UpdateCourseInput struct {
	Name               *string `json:"name,omitempty"`
	LastWatchedVideoID *int64  `json:"lastWatchedVideoId,omitempty"`
}

// CourseSummary shows a course + how much of it has been watched
type CourseSummary struct {
	Course          *Course `json:"course"`
	TotalVideos     int     `json:"totalVideos"`
	CompletedVideos int     `json:"completedVideos"`
	CompletionPct   float64 `json:"completionPct"`
	TotalDuration   float64 `json:"totalDuration"` // seconds across all videos
}

// CourseDetail is a course with its videos in display order plus any
// progress records for them
type CourseDetail struct {
	Course   *Course          `json:"course"`
	Videos   []*Video         `json:"videos"`
	Progress []*VideoProgress `json:"progress,omitempty"`
}
