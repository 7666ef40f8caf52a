package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/rsathishtechit/video-player/internal/models"
	"github.com/rsathishtechit/video-player/internal/store"
)

// LibraryService handles course and video management business logic
type LibraryService struct {
	Store *store.Store // the one owner of all durable state
}

// NewLibraryService creates service with its store dependency
func NewLibraryService(st *store.Store) *LibraryService {
	return &LibraryService{Store: st}
}

// ImportResult reports what one course import actually did
type ImportResult struct {
	Course      *models.Course `json:"course"`
	AddedVideos int            `json:"addedVideos"`
	Augmented   bool           `json:"augmented"` // folder was already imported, only new files were added
}

// ImportCourse records a folder the frontend crawler discovered. The
// folder path is the dedupe key: importing the same folder again augments
// the existing course with whatever files are new instead of creating a
// duplicate.
func (s *LibraryService) ImportCourse(input models.CreateCourseInput) (*ImportResult, error) {
	if input.FolderPath == "" {
		return nil, errors.New("folder path is required")
	}
	if input.Name == "" {
		// fall back to something sensible rather than rejecting
		input.Name = input.FolderPath
	}

	course, err := s.Store.CreateCourse(input.Name, input.FolderPath)
	augmented := false
	if err != nil {
		if !errors.Is(err, store.ErrDuplicateFolder) {
			return nil, fmt.Errorf("error creating course: %w", err)
		}
		// re-import of a known folder - augment instead
		course, err = s.Store.CourseByFolder(input.FolderPath)
		if err != nil {
			return nil, fmt.Errorf("error looking up course for re-import: %w", err)
		}
		augmented = true
	}

	added, err := s.ImportVideos(course.ID, input.Files)
	if err != nil {
		return nil, err
	}

	log.Printf("Imported course %q (id %d): %d new videos, augmented=%v",
		course.Name, course.ID, added, augmented)

	return &ImportResult{Course: course, AddedVideos: added, Augmented: augmented}, nil
}

// ImportVideos records each descriptor whose file path isn't already in
// the library and returns how many were actually added. Running the same
// import twice adds nothing the second time.
func (s *LibraryService) ImportVideos(courseID int64, files []models.VideoFileInput) (int, error) {
	if _, err := s.Store.GetCourse(courseID); err != nil {
		return 0, err
	}

	added := 0
	for _, file := range files {
		if file.FilePath == "" {
			log.Printf("Warning: skipping video descriptor with empty path for course %d", courseID)
			continue
		}
		_, err := s.Store.CreateVideo(courseID, file)
		if err != nil {
			if errors.Is(err, store.ErrDuplicatePath) {
				continue // already recorded, idempotent re-import
			}
			return added, fmt.Errorf("error recording video %s: %w", file.FilePath, err)
		}
		added++
	}

	return added, nil
}

// GetCourseDetail returns a course with its videos in display order and
// any progress records for them
func (s *LibraryService) GetCourseDetail(courseID int64) (*models.CourseDetail, error) {
	course, err := s.Store.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	videos, err := s.Store.VideosByCourse(courseID)
	if err != nil {
		return nil, err
	}

	return &models.CourseDetail{
		Course:   course,
		Videos:   videos,
		Progress: s.Store.ProgressByCourse(courseID),
	}, nil
}

// ListCourseSummaries returns every course with aggregate completion info
// for the library overview screen
func (s *LibraryService) ListCourseSummaries() []*models.CourseSummary {
	courses := s.Store.ListCourses()

	summaries := make([]*models.CourseSummary, 0, len(courses))
	for _, course := range courses {
		videos, err := s.Store.VideosByCourse(course.ID)
		if err != nil {
			// course disappeared between the list and the lookup, skip it
			continue
		}

		completed := 0
		var totalDuration float64
		for _, v := range videos {
			totalDuration += v.Duration
			if p, ok := s.Store.ProgressByVideo(v.ID); ok && p.Completed {
				completed++
			}
		}

		pct := 0.0
		if len(videos) > 0 {
			pct = float64(completed) / float64(len(videos)) * 100
		}

		summaries = append(summaries, &models.CourseSummary{
			Course:          course,
			TotalVideos:     len(videos),
			CompletedVideos: completed,
			CompletionPct:   pct,
			TotalDuration:   totalDuration,
		})
	}

	return summaries
}

// UpdateCourse merges the provided fields (rename, current-video change)
func (s *LibraryService) UpdateCourse(courseID int64, input models.UpdateCourseInput) (*models.Course, error) {
	course, err := s.Store.UpdateCourse(courseID, input)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// OpenCourse stamps the access time when the user opens a course
func (s *LibraryService) OpenCourse(courseID int64) (*models.Course, error) {
	return s.Store.MarkCourseAccessed(courseID)
}

// DeleteCourse removes the course, its videos and their progress
func (s *LibraryService) DeleteCourse(courseID int64) error {
	if err := s.Store.DeleteCourse(courseID); err != nil {
		return err
	}
	log.Printf("Deleted course %d and all its videos", courseID)
	return nil
}

// GetVideo retrieves a single video
func (s *LibraryService) GetVideo(videoID int64) (*models.Video, error) {
	return s.Store.GetVideo(videoID)
}

// UpdateVideo merges metadata refinement or subtitle write-back onto a
// video - this is the path the transcription service uses
func (s *LibraryService) UpdateVideo(videoID int64, input models.UpdateVideoInput) (*models.Video, error) {
	return s.Store.UpdateVideo(videoID, input)
}

// DeleteVideo removes a single video and its progress
func (s *LibraryService) DeleteVideo(videoID int64) error {
	return s.Store.DeleteVideo(videoID)
}
