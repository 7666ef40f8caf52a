package models

import "time"

// DailyLearningTime accumulates watch time for one calendar day.
// At most one row exists per date; rows are never deleted in normal use.
type DailyLearningTime struct {
	ID   int64  `json:"id"`   // unique identifier
	Date string `json:"date"` // calendar-day key, "2006-01-02"

	TotalTimeSpent int64 `json:"totalTimeSpent"` // accumulated seconds
	SessionsCount  int   `json:"sessionsCount"`  // how many sessions closed that day

	// timestamps
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LearningSummary gives overall usage across all recorded days
type LearningSummary struct {
	TotalTimeSpent int64 `json:"totalTimeSpent"` // seconds
	TotalSessions  int   `json:"totalSessions"`
	DaysActive     int   `json:"daysActive"`
	StreakDays     int   `json:"streakDays"` // consecutive days ending today/yesterday
}
