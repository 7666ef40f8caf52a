package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rsathishtechit/video-player/internal/models"
	"github.com/rsathishtechit/video-player/internal/store"
)

// CompletionThreshold is the watched percentage at which a video counts as
// completed. Kept as a single named constant on purpose - the product has
// flip-flopped between 90 and 95 before.
const CompletionThreshold = 90.0

// ProgressService handles watch progress, completion state and resume
// selection
type ProgressService struct {
	Store *store.Store
}

// NewProgressService creates service with its store dependency
func NewProgressService(st *store.Store) *ProgressService {
	return &ProgressService{Store: st}
}

// UpdateVideoProgress applies one playback heartbeat. The percentage is
// recomputed from position/duration; crossing the threshold sets
// completed, but a heartbeat can never clear it - completion only goes
// away through an explicit mark-incomplete or a reset.
func (s *ProgressService) UpdateVideoProgress(videoID int64, input models.ProgressUpdateInput) (*models.VideoProgress, error) {
	video, err := s.Store.GetVideo(videoID)
	if err != nil {
		return nil, err
	}
	if input.CurrentTime < 0 || input.Duration < 0 {
		return nil, errors.New("playback position and duration cannot be negative")
	}

	pct := 0.0
	if input.Duration > 0 {
		pct = input.CurrentTime / input.Duration * 100
		if pct > 100 {
			pct = 100
		}
	}

	prev, _ := s.Store.ProgressByVideo(videoID)

	now := time.Now().UTC()
	next := models.VideoProgress{
		VideoID:            videoID,
		CurrentTime:        input.CurrentTime,
		Duration:           input.Duration,
		ProgressPercentage: pct,
		Completed:          pct >= CompletionThreshold,
		LastWatchedAt:      &now,
	}
	if prev != nil {
		// completed is sticky across heartbeats, manual completion doubly so
		next.ManuallyCompleted = prev.ManuallyCompleted
		next.Completed = next.Completed || prev.Completed || prev.ManuallyCompleted
	}

	saved, err := s.Store.SaveProgress(next)
	if err != nil {
		return nil, err
	}

	// playback knows the real duration better than the import did
	if input.Duration > 0 && math.Abs(video.Duration-input.Duration) > 0.01 {
		d := input.Duration
		if _, err := s.Store.UpdateVideo(videoID, models.UpdateVideoInput{Duration: &d}); err != nil {
			return nil, fmt.Errorf("error refining video duration: %w", err)
		}
	}

	return saved, nil
}

// GetProgress returns the progress record for a video, or nil if it has
// never been watched
func (s *ProgressService) GetProgress(videoID int64) (*models.VideoProgress, error) {
	if _, err := s.Store.GetVideo(videoID); err != nil {
		return nil, err
	}
	p, ok := s.Store.ProgressByVideo(videoID)
	if !ok {
		return nil, nil
	}
	return p, nil
}

// MarkCompleted force-completes a video. With no existing record one is
// created at 100%; an existing record keeps its position so the user can
// still rewatch from where they were.
func (s *ProgressService) MarkCompleted(videoID int64) (*models.VideoProgress, error) {
	video, err := s.Store.GetVideo(videoID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	next := models.VideoProgress{
		VideoID:            videoID,
		CurrentTime:        video.Duration,
		Duration:           video.Duration,
		ProgressPercentage: 100,
		Completed:          true,
		ManuallyCompleted:  true,
		LastWatchedAt:      &now,
	}
	if prev, ok := s.Store.ProgressByVideo(videoID); ok {
		next.CurrentTime = prev.CurrentTime
		next.Duration = prev.Duration
		next.ProgressPercentage = prev.ProgressPercentage
	}

	return s.Store.SaveProgress(next)
}

// MarkIncomplete clears both completion flags but keeps the playback
// position - distinct from a reset, which forgets the video entirely
func (s *ProgressService) MarkIncomplete(videoID int64) (*models.VideoProgress, error) {
	if _, err := s.Store.GetVideo(videoID); err != nil {
		return nil, err
	}

	prev, ok := s.Store.ProgressByVideo(videoID)
	if !ok {
		return nil, nil // never watched, nothing to clear
	}

	now := time.Now().UTC()
	prev.Completed = false
	prev.ManuallyCompleted = false
	prev.LastWatchedAt = &now

	return s.Store.SaveProgress(*prev)
}

// ResetVideoProgress deletes the progress record, returning the video to
// the never-watched state
func (s *ProgressService) ResetVideoProgress(videoID int64) error {
	return s.Store.DeleteProgress(videoID)
}

// ResetCourseProgress deletes every progress record under a course without
// touching the course or its videos
func (s *ProgressService) ResetCourseProgress(courseID int64) error {
	return s.Store.DeleteProgressByCourse(courseID)
}

// Resume picks the video to auto-open when a course is opened. The choice
// is derived from stored state alone, so rerunning it after a reload gives
// the same answer.
func (s *ProgressService) Resume(courseID int64) (*models.Video, error) {
	videos, err := s.Store.VideosByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("course %d has no videos: %w", courseID, store.ErrNotFound)
	}

	// nothing watched yet - start at the top
	records := s.Store.ProgressByCourse(courseID)
	if len(records) == 0 {
		return videos[0], nil
	}

	byVideo := make(map[int64]*models.VideoProgress, len(records))
	var last *models.VideoProgress
	for _, p := range records {
		byVideo[p.VideoID] = p
		if p.LastWatchedAt == nil {
			continue
		}
		if last == nil || last.LastWatchedAt == nil || p.LastWatchedAt.After(*last.LastWatchedAt) {
			last = p
		}
	}

	// progress exists but nothing carries a watch time (e.g. everything was
	// manually ticked off on day one) - first incomplete in order wins
	if last == nil {
		for _, v := range videos {
			if p, ok := byVideo[v.ID]; !ok || !p.Completed {
				return v, nil
			}
		}
		return videos[0], nil
	}

	lastIdx := 0
	for i, v := range videos {
		if v.ID == last.VideoID {
			lastIdx = i
			break
		}
	}

	// still mid-video - pick it straight back up
	if !last.Completed {
		return videos[lastIdx], nil
	}

	// finished the last-touched one - advance to the next incomplete video
	for i := lastIdx + 1; i < len(videos); i++ {
		if p, ok := byVideo[videos[i].ID]; !ok || !p.Completed {
			return videos[i], nil
		}
	}

	// everything from here on is done - there is nothing better to resume
	return videos[lastIdx], nil
}
