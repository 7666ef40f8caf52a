package services

import (
	"errors"
	"time"

	"github.com/rsathishtechit/video-player/internal/models"
	"github.com/rsathishtechit/video-player/internal/store"
)

// dateKeyLayout is the calendar-day key format for daily accumulators
const dateKeyLayout = "2006-01-02"

// StatsService handles daily learning-time aggregation
type StatsService struct {
	Store *store.Store
}

// NewStatsService creates service with its store dependency
func NewStatsService(st *store.Store) *StatsService {
	return &StatsService{Store: st}
}

// AddLearningTime folds a closed watch session into today's accumulator
// row, creating it on the first session of the day. Filtering of too-short
// sessions is the caller's job - this always records what it is given.
func (s *StatsService) AddLearningTime(seconds int64) (*models.DailyLearningTime, error) {
	if seconds <= 0 {
		return nil, errors.New("session seconds must be positive")
	}

	now := time.Now().UTC()
	key := now.Format(dateKeyLayout)

	row, ok := s.Store.DailyByDate(key)
	if !ok {
		return s.Store.SaveDaily(models.DailyLearningTime{
			Date:           key,
			TotalTimeSpent: seconds,
			SessionsCount:  1,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	row.TotalTimeSpent += seconds
	row.SessionsCount++
	row.UpdatedAt = now
	return s.Store.SaveDaily(*row)
}

// DailyStats returns every recorded day in date order
func (s *StatsService) DailyStats() []*models.DailyLearningTime {
	return s.Store.ListDaily()
}

// Summary aggregates everything ever recorded, including the current
// learning streak (consecutive days with recorded time, ending today or
// yesterday so an unfinished today doesn't break it)
func (s *StatsService) Summary() *models.LearningSummary {
	days := s.Store.ListDaily()

	summary := &models.LearningSummary{DaysActive: len(days)}
	recorded := make(map[string]bool, len(days))
	for _, d := range days {
		summary.TotalTimeSpent += d.TotalTimeSpent
		summary.TotalSessions += d.SessionsCount
		recorded[d.Date] = true
	}

	today := time.Now().UTC()
	start := today
	if !recorded[today.Format(dateKeyLayout)] {
		start = today.AddDate(0, 0, -1)
	}
	for d := start; recorded[d.Format(dateKeyLayout)]; d = d.AddDate(0, 0, -1) {
		summary.StreakDays++
	}

	return summary
}
