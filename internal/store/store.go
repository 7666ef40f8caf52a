package store

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/rsathishtechit/video-player/internal/models"
	"github.com/rsathishtechit/video-player/pkg/naturalsort"
)

// Sentinel errors callers branch on - everything else is a plain failure
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateFolder = errors.New("folder already imported")
	ErrDuplicatePath   = errors.New("file path already recorded")
)

// Store owns every durable record in the library - courses, videos, watch
// progress and daily learning time. All mutation flows through it; nothing
// else touches the tables. Mutations apply in memory and return
// immediately, persistence happens through the debounced flush scheduler.
type Store struct {
	mu   sync.RWMutex
	path string

	courses  map[int64]*models.Course
	videos   map[int64]*models.Video
	progress map[int64]*models.VideoProgress     // keyed by VideoID, at most 1:1
	daily    map[string]*models.DailyLearningTime // keyed by calendar date

	nextID int64 // shared monotonic counter for all entity kinds

	sched *flushScheduler
}

// Open loads the library file at path and recovers the ID counter. Missing
// or corrupt files start an empty library - never a fatal error.
func Open(path string) *Store {
	return open(path, flushDelay)
}

func open(path string, delay time.Duration) *Store {
	s := &Store{
		path:     path,
		courses:  make(map[int64]*models.Course),
		videos:   make(map[int64]*models.Video),
		progress: make(map[int64]*models.VideoProgress),
		daily:    make(map[string]*models.DailyLearningTime),
	}
	s.restore(loadSnapshot(path))
	s.sched = newFlushScheduler(delay, s.writeCurrent)
	return s
}

// restore fills the tables from a loaded snapshot, default-filling fields
// older snapshots don't carry and dropping records that lost their owner.
// The ID counter is recovered from the maximum ID across everything seen -
// including rows about to be pruned - so no future write can collide.
func (s *Store) restore(doc *document) {
	var maxID int64

	for _, c := range doc.Courses {
		if c == nil {
			continue
		}
		maxID = maxInt64(maxID, c.ID)
		if c.FolderPath == "" {
			continue
		}
		if _, taken := s.findCourseByFolder(c.FolderPath); taken {
			continue // duplicate folder in an old snapshot, first one wins
		}
		s.courses[c.ID] = c
	}

	seenPaths := make(map[string]bool)
	for _, v := range doc.Videos {
		if v == nil {
			continue
		}
		maxID = maxInt64(maxID, v.ID)
		if v.FilePath == "" || seenPaths[v.FilePath] {
			continue
		}
		if _, ok := s.courses[v.CourseID]; !ok {
			continue // orphaned video, course is gone
		}
		seenPaths[v.FilePath] = true
		s.videos[v.ID] = v
	}

	for _, p := range doc.VideoProgress {
		if p == nil {
			continue
		}
		maxID = maxInt64(maxID, p.ID)
		if _, ok := s.videos[p.VideoID]; !ok {
			continue // orphaned progress, video is gone
		}
		normalizeProgress(p)
		s.progress[p.VideoID] = p
	}

	for _, d := range doc.DailyLearningTime {
		if d == nil || d.Date == "" {
			continue
		}
		maxID = maxInt64(maxID, d.ID)
		if d.TotalTimeSpent < 0 {
			d.TotalTimeSpent = 0
		}
		if d.SessionsCount < 0 {
			d.SessionsCount = 0
		}
		s.daily[d.Date] = d
	}

	if maxID > 0 {
		s.nextID = maxID + 1
	} else {
		// fresh high-water value so IDs stay unique even against records
		// that were overwritten or orphaned before this snapshot was taken
		s.nextID = time.Now().UnixMilli()
	}

	log.Printf("Library loaded: %d courses, %d videos, %d progress records, %d daily entries",
		len(s.courses), len(s.videos), len(s.progress), len(s.daily))
}

// normalizeProgress default-fills fields added after older snapshots were
// written so schema evolution never crashes a load
func normalizeProgress(p *models.VideoProgress) {
	if p.ProgressPercentage == 0 && p.Duration > 0 && p.CurrentTime > 0 {
		p.ProgressPercentage = p.CurrentTime / p.Duration * 100
	}
	if p.ProgressPercentage < 0 {
		p.ProgressPercentage = 0
	}
	if p.ProgressPercentage > 100 {
		p.ProgressPercentage = 100
	}
	if p.ManuallyCompleted {
		p.Completed = true
	}
}

// allocID hands out the next ID from the shared counter. IDs are never
// reused, even across deletes, factory resets and process restarts.
func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// --- course operations ---

// CreateCourse records a newly imported folder. The folder path is the
// dedupe key - importing the same folder again must augment the existing
// course instead, so a collision comes back as ErrDuplicateFolder.
func (s *Store) CreateCourse(name, folderPath string) (*models.Course, error) {
	if name == "" {
		return nil, errors.New("course name is required")
	}
	if folderPath == "" {
		return nil, errors.New("course folder path is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.findCourseByFolder(folderPath); taken {
		return nil, fmt.Errorf("%s: %w", folderPath, ErrDuplicateFolder)
	}

	now := time.Now().UTC()
	course := &models.Course{
		ID:         s.allocID(),
		Name:       name,
		FolderPath: folderPath,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.courses[course.ID] = course

	s.sched.Request()
	return cloneCourse(course), nil
}

// GetCourse retrieves a course by ID
func (s *Store) GetCourse(id int64) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
	}
	return cloneCourse(course), nil
}

// CourseByFolder finds the course that owns a folder path, if any
func (s *Store) CourseByFolder(folderPath string) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.findCourseByFolder(folderPath)
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", folderPath, ErrNotFound)
	}
	return cloneCourse(course), nil
}

func (s *Store) findCourseByFolder(folderPath string) (*models.Course, bool) {
	for _, c := range s.courses {
		if c.FolderPath == folderPath {
			return c, true
		}
	}
	return nil, false
}

// ListCourses returns all courses, oldest first
func (s *Store) ListCourses() []*models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, cloneCourse(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateCourse merges the provided fields and refreshes updatedAt
func (s *Store) UpdateCourse(id int64, input models.UpdateCourseInput) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, errors.New("course name cannot be empty")
		}
		course.Name = *input.Name
	}
	if input.LastWatchedVideoID != nil {
		// weak reference - no existence check, readers tolerate a dangle
		v := *input.LastWatchedVideoID
		course.LastWatchedVideoID = &v
	}
	course.UpdatedAt = time.Now().UTC()

	s.sched.Request()
	return cloneCourse(course), nil
}

// MarkCourseAccessed stamps lastAccessedAt when the course is opened
func (s *Store) MarkCourseAccessed(id int64) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
	}

	now := time.Now().UTC()
	course.LastAccessedAt = &now
	course.UpdatedAt = now

	s.sched.Request()
	return cloneCourse(course), nil
}

// DeleteCourse removes the course, all its videos and all progress for
// those videos in one step - observers never see an intermediate state
func (s *Store) DeleteCourse(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		return fmt.Errorf("course %d: %w", id, ErrNotFound)
	}

	for vid, v := range s.videos {
		if v.CourseID == id {
			delete(s.progress, vid)
			delete(s.videos, vid)
		}
	}
	delete(s.courses, id)

	s.sched.Request()
	return nil
}

// --- video operations ---

// CreateVideo records one discovered file under a course. File paths are
// unique across the whole library - a collision means the file is already
// recorded and comes back as ErrDuplicatePath.
func (s *Store) CreateVideo(courseID int64, file models.VideoFileInput) (*models.Video, error) {
	if file.FilePath == "" {
		return nil, errors.New("video file path is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[courseID]; !ok {
		return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
	}
	for _, v := range s.videos {
		if v.FilePath == file.FilePath {
			return nil, fmt.Errorf("%s: %w", file.FilePath, ErrDuplicatePath)
		}
	}

	now := time.Now().UTC()
	video := &models.Video{
		ID:        s.allocID(),
		CourseID:  courseID,
		FileName:  file.FileName,
		FilePath:  file.FilePath,
		Duration:  file.Duration,
		FileSize:  file.FileSize,
		Width:     file.Width,
		Height:    file.Height,
		Codec:     file.Codec,
		Bitrate:   file.Bitrate,
		FrameRate: file.FrameRate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if video.FileName == "" {
		video.FileName = file.FilePath
	}
	s.videos[video.ID] = video

	s.sched.Request()
	return cloneVideo(video), nil
}

// GetVideo retrieves a video by ID
func (s *Store) GetVideo(id int64) (*models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	video, ok := s.videos[id]
	if !ok {
		return nil, fmt.Errorf("video %d: %w", id, ErrNotFound)
	}
	return cloneVideo(video), nil
}

// VideosByCourse returns a course's videos in display order
func (s *Store) VideosByCourse(courseID int64) ([]*models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.courses[courseID]; !ok {
		return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
	}

	var out []*models.Video
	for _, v := range s.videos {
		if v.CourseID == courseID {
			out = append(out, cloneVideo(v))
		}
	}
	sortVideos(out)
	return out, nil
}

// sortVideos puts a course's videos into display order. File name decides
// naturally, creation time breaks ties, ID keeps the result stable across
// repeated calls on unchanged input.
func sortVideos(videos []*models.Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		if c := naturalsort.Compare(videos[i].FileName, videos[j].FileName); c != 0 {
			return c < 0
		}
		if !videos[i].CreatedAt.Equal(videos[j].CreatedAt) {
			return videos[i].CreatedAt.Before(videos[j].CreatedAt)
		}
		return videos[i].ID < videos[j].ID
	})
}

// UpdateVideo merges the provided fields - duration refinement from
// playback and subtitle write-back from the transcription service both
// land here
func (s *Store) UpdateVideo(id int64, input models.UpdateVideoInput) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	video, ok := s.videos[id]
	if !ok {
		return nil, fmt.Errorf("video %d: %w", id, ErrNotFound)
	}

	if input.FileName != nil && *input.FileName != "" {
		video.FileName = *input.FileName
	}
	if input.Duration != nil {
		video.Duration = *input.Duration
	}
	if input.Width != nil {
		video.Width = *input.Width
	}
	if input.Height != nil {
		video.Height = *input.Height
	}
	if input.Codec != nil {
		video.Codec = *input.Codec
	}
	if input.Bitrate != nil {
		video.Bitrate = *input.Bitrate
	}
	if input.FrameRate != nil {
		video.FrameRate = *input.FrameRate
	}
	if input.SubtitlePath != nil {
		video.SubtitlePath = *input.SubtitlePath
	}
	if input.HasSubtitles != nil {
		video.HasSubtitles = *input.HasSubtitles
	}
	if input.SubtitleLanguage != nil {
		video.SubtitleLanguage = *input.SubtitleLanguage
	}
	video.UpdatedAt = time.Now().UTC()

	s.sched.Request()
	return cloneVideo(video), nil
}

// DeleteVideo removes a video and its progress record. Any course
// lastWatchedVideoId pointing at it is left dangling on purpose - readers
// resolve it by lookup and treat a miss as unset.
func (s *Store) DeleteVideo(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.videos[id]; !ok {
		return fmt.Errorf("video %d: %w", id, ErrNotFound)
	}
	delete(s.progress, id)
	delete(s.videos, id)

	s.sched.Request()
	return nil
}

// --- progress operations ---

// ProgressByVideo returns the progress record for a video, if one exists
func (s *Store) ProgressByVideo(videoID int64) (*models.VideoProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.progress[videoID]
	if !ok {
		return nil, false
	}
	return cloneProgress(p), true
}

// ProgressByCourse returns all progress records for a course's videos
func (s *Store) ProgressByCourse(courseID int64) []*models.VideoProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.VideoProgress
	for vid, p := range s.progress {
		if v, ok := s.videos[vid]; ok && v.CourseID == courseID {
			out = append(out, cloneProgress(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VideoID < out[j].VideoID })
	return out
}

// SaveProgress upserts the progress record for a video. A record already
// present for the video keeps its ID - progress is at most 1:1 with a
// video, never appended.
func (s *Store) SaveProgress(p models.VideoProgress) (*models.VideoProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.videos[p.VideoID]; !ok {
		return nil, fmt.Errorf("video %d: %w", p.VideoID, ErrNotFound)
	}

	if existing, ok := s.progress[p.VideoID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = s.allocID()
	}
	stored := cloneProgress(&p)
	s.progress[p.VideoID] = stored

	s.sched.Request()
	return cloneProgress(stored), nil
}

// DeleteProgress drops the progress record for a video, returning it to
// the never-watched state. No record is not an error.
func (s *Store) DeleteProgress(videoID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.videos[videoID]; !ok {
		return fmt.Errorf("video %d: %w", videoID, ErrNotFound)
	}
	if _, ok := s.progress[videoID]; !ok {
		return nil
	}
	delete(s.progress, videoID)

	s.sched.Request()
	return nil
}

// DeleteProgressByCourse drops every progress record under a course
// without touching the course or its videos
func (s *Store) DeleteProgressByCourse(courseID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[courseID]; !ok {
		return fmt.Errorf("course %d: %w", courseID, ErrNotFound)
	}
	for vid, v := range s.videos {
		if v.CourseID == courseID {
			delete(s.progress, vid)
		}
	}

	s.sched.Request()
	return nil
}

// --- daily learning time operations ---

// DailyByDate returns the accumulator row for a calendar-day key, if any
func (s *Store) DailyByDate(date string) (*models.DailyLearningTime, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.daily[date]
	if !ok {
		return nil, false
	}
	return cloneDaily(d), true
}

// SaveDaily upserts the accumulator row for its date key
func (s *Store) SaveDaily(d models.DailyLearningTime) (*models.DailyLearningTime, error) {
	if d.Date == "" {
		return nil, errors.New("daily learning time date is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.daily[d.Date]; ok {
		d.ID = existing.ID
	} else {
		d.ID = s.allocID()
	}
	stored := cloneDaily(&d)
	s.daily[d.Date] = stored

	s.sched.Request()
	return cloneDaily(stored), nil
}

// ListDaily returns all accumulator rows ordered by date
func (s *Store) ListDaily() []*models.DailyLearningTime {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.DailyLearningTime, 0, len(s.daily))
	for _, d := range s.daily {
		out = append(out, cloneDaily(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// --- maintenance ---

// Stats returns row counts per table, for the admin surface
func (s *Store) Stats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]int{
		"courses":           len(s.courses),
		"videos":            len(s.videos),
		"videoProgress":     len(s.progress),
		"dailyLearningTime": len(s.daily),
	}
}

// Reset wipes all four tables. The ID counter is deliberately kept - IDs
// are never reused, factory reset included.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses = make(map[int64]*models.Course)
	s.videos = make(map[int64]*models.Video)
	s.progress = make(map[int64]*models.VideoProgress)
	s.daily = make(map[string]*models.DailyLearningTime)

	s.sched.Request()
}

// Flush writes the current snapshot synchronously, bypassing the scheduler
func (s *Store) Flush() error {
	return s.writeCurrent()
}

// Close stops the scheduler and performs one final synchronous flush so no
// mutation inside the debounce window is lost on shutdown
func (s *Store) Close() error {
	s.sched.Stop()
	if err := s.writeCurrent(); err != nil {
		return fmt.Errorf("final library flush: %w", err)
	}
	return nil
}

// writeCurrent snapshots the tables under the read lock and hands the
// document to the atomic file writer
func (s *Store) writeCurrent() error {
	s.mu.RLock()
	doc := &document{
		Courses:           make([]*models.Course, 0, len(s.courses)),
		Videos:            make([]*models.Video, 0, len(s.videos)),
		VideoProgress:     make([]*models.VideoProgress, 0, len(s.progress)),
		DailyLearningTime: make([]*models.DailyLearningTime, 0, len(s.daily)),
	}
	// copies, not the live rows - the file write happens outside the lock
	for _, c := range s.courses {
		doc.Courses = append(doc.Courses, cloneCourse(c))
	}
	for _, v := range s.videos {
		doc.Videos = append(doc.Videos, cloneVideo(v))
	}
	for _, p := range s.progress {
		doc.VideoProgress = append(doc.VideoProgress, cloneProgress(p))
	}
	for _, d := range s.daily {
		doc.DailyLearningTime = append(doc.DailyLearningTime, cloneDaily(d))
	}
	sort.Slice(doc.Courses, func(i, j int) bool { return doc.Courses[i].ID < doc.Courses[j].ID })
	sort.Slice(doc.Videos, func(i, j int) bool { return doc.Videos[i].ID < doc.Videos[j].ID })
	sort.Slice(doc.VideoProgress, func(i, j int) bool { return doc.VideoProgress[i].ID < doc.VideoProgress[j].ID })
	sort.Slice(doc.DailyLearningTime, func(i, j int) bool { return doc.DailyLearningTime[i].Date < doc.DailyLearningTime[j].Date })
	s.mu.RUnlock()

	return writeSnapshot(s.path, doc)
}

// --- copy helpers ---
// The tables hand out copies so callers can't mutate shared rows behind
// the store's back.

func cloneCourse(c *models.Course) *models.Course {
	out := *c
	if c.LastWatchedVideoID != nil {
		v := *c.LastWatchedVideoID
		out.LastWatchedVideoID = &v
	}
	if c.LastAccessedAt != nil {
		t := *c.LastAccessedAt
		out.LastAccessedAt = &t
	}
	return &out
}

func cloneVideo(v *models.Video) *models.Video {
	out := *v
	return &out
}

func cloneProgress(p *models.VideoProgress) *models.VideoProgress {
	out := *p
	if p.LastWatchedAt != nil {
		t := *p.LastWatchedAt
		out.LastWatchedAt = &t
	}
	return &out
}

func cloneDaily(d *models.DailyLearningTime) *models.DailyLearningTime {
	out := *d
	return &out
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
