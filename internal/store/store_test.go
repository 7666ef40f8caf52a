package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rsathishtechit/video-player/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// test stores use a long delay so the scheduler never fires mid-test -
// persistence is exercised through Flush and Close explicitly
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.json")
	s := open(path, time.Minute)
	t.Cleanup(func() { s.sched.Stop() })
	return s, path
}

func addVideo(t *testing.T, s *Store, courseID int64, name, path string) *models.Video {
	t.Helper()
	v, err := s.CreateVideo(courseID, models.VideoFileInput{
		FileName: name,
		FilePath: path,
		Duration: 600,
	})
	require.NoError(t, err)
	return v
}

func TestCreateAndGetCourse(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.CreateCourse("Go Basics", "/media/go-basics")
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "Go Basics", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetCourse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.GetCourse(999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateFolderRejected(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.CreateCourse("First", "/media/course")
	require.NoError(t, err)

	_, err = s.CreateCourse("Second", "/media/course")
	assert.ErrorIs(t, err, ErrDuplicateFolder)
}

func TestDuplicateFilePathRejected(t *testing.T) {
	s, _ := newTestStore(t)

	a, err := s.CreateCourse("A", "/media/a")
	require.NoError(t, err)
	b, err := s.CreateCourse("B", "/media/b")
	require.NoError(t, err)

	addVideo(t, s, a.ID, "clip.mp4", "/media/a/clip.mp4")

	// uniqueness holds across courses, not just within one
	_, err = s.CreateVideo(b.ID, models.VideoFileInput{FilePath: "/media/a/clip.mp4"})
	assert.ErrorIs(t, err, ErrDuplicatePath)
}

func TestSharedIDCounterIsMonotonic(t *testing.T) {
	s, _ := newTestStore(t)

	course, err := s.CreateCourse("C", "/media/c")
	require.NoError(t, err)
	video := addVideo(t, s, course.ID, "v.mp4", "/media/c/v.mp4")
	progress, err := s.SaveProgress(models.VideoProgress{VideoID: video.ID})
	require.NoError(t, err)
	daily, err := s.SaveDaily(models.DailyLearningTime{Date: "2026-08-29"})
	require.NoError(t, err)

	// one counter serves every entity kind
	assert.Greater(t, video.ID, course.ID)
	assert.Greater(t, progress.ID, video.ID)
	assert.Greater(t, daily.ID, progress.ID)

	// deleting never rewinds the counter
	require.NoError(t, s.DeleteVideo(video.ID))
	course2, err := s.CreateCourse("C2", "/media/c2")
	require.NoError(t, err)
	assert.Greater(t, course2.ID, daily.ID)
}

func TestIDCounterSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")

	s := open(path, time.Minute)
	course, err := s.CreateCourse("Reload", "/media/reload")
	require.NoError(t, err)
	video := addVideo(t, s, course.ID, "v.mp4", "/media/reload/v.mp4")
	require.NoError(t, s.Close())

	s2 := open(path, time.Minute)
	defer s2.sched.Stop()
	course2, err := s2.CreateCourse("After", "/media/after")
	require.NoError(t, err)
	assert.Greater(t, course2.ID, video.ID)
}

func TestEmptySnapshotUsesHighWaterFallback(t *testing.T) {
	s, _ := newTestStore(t)

	// with nothing on disk the counter starts from a clock-derived value so
	// IDs cannot collide with anything from a lost snapshot
	course, err := s.CreateCourse("Fresh", "/media/fresh")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, course.ID, time.Now().Add(-time.Hour).UnixMilli())
}

func TestFlushAndReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")

	s := open(path, time.Minute)
	course, err := s.CreateCourse("Round Trip", "/media/rt")
	require.NoError(t, err)
	video := addVideo(t, s, course.ID, "Lesson 1.mp4", "/media/rt/Lesson 1.mp4")
	watched := time.Now().UTC()
	progress, err := s.SaveProgress(models.VideoProgress{
		VideoID:            video.ID,
		CurrentTime:        120,
		Duration:           600,
		ProgressPercentage: 20,
		LastWatchedAt:      &watched,
	})
	require.NoError(t, err)
	daily, err := s.SaveDaily(models.DailyLearningTime{
		Date:           "2026-08-29",
		TotalTimeSpent: 300,
		SessionsCount:  2,
		CreatedAt:      watched,
		UpdatedAt:      watched,
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2 := open(path, time.Minute)
	defer s2.sched.Stop()

	gotCourse, err := s2.GetCourse(course.ID)
	require.NoError(t, err)
	assert.Equal(t, course, gotCourse)

	gotVideo, err := s2.GetVideo(video.ID)
	require.NoError(t, err)
	assert.Equal(t, video, gotVideo)

	gotProgress, ok := s2.ProgressByVideo(video.ID)
	require.True(t, ok)
	assert.Equal(t, progress, gotProgress)

	gotDaily, ok := s2.DailyByDate("2026-08-29")
	require.True(t, ok)
	assert.Equal(t, daily, gotDaily)
}

func TestCloseFlushesPendingChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")

	// the delay is far longer than the test, so only Close can have written
	s := open(path, time.Hour)
	course, err := s.CreateCourse("Pending", "/media/pending")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2 := open(path, time.Minute)
	defer s2.sched.Stop()
	_, err = s2.GetCourse(course.ID)
	assert.NoError(t, err)
}

func TestDeleteCourseCascades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	s := open(path, time.Minute)

	keep, err := s.CreateCourse("Keep", "/media/keep")
	require.NoError(t, err)
	keepVideo := addVideo(t, s, keep.ID, "k.mp4", "/media/keep/k.mp4")

	doomed, err := s.CreateCourse("Doomed", "/media/doomed")
	require.NoError(t, err)
	doomedVideo := addVideo(t, s, doomed.ID, "d.mp4", "/media/doomed/d.mp4")
	_, err = s.SaveProgress(models.VideoProgress{VideoID: doomedVideo.ID, CurrentTime: 10})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCourse(doomed.ID))

	_, err = s.GetCourse(doomed.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetVideo(doomedVideo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, ok := s.ProgressByVideo(doomedVideo.ID)
	assert.False(t, ok)

	// the other course is untouched
	_, err = s.GetVideo(keepVideo.ID)
	assert.NoError(t, err)

	// and the cascade holds across a reload
	require.NoError(t, s.Close())
	s2 := open(path, time.Minute)
	defer s2.sched.Stop()
	_, err = s2.GetVideo(doomedVideo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s2.GetVideo(keepVideo.ID)
	assert.NoError(t, err)
}

func TestDeleteVideoDropsProgress(t *testing.T) {
	s, _ := newTestStore(t)

	course, err := s.CreateCourse("C", "/media/c")
	require.NoError(t, err)
	video := addVideo(t, s, course.ID, "v.mp4", "/media/c/v.mp4")
	_, err = s.SaveProgress(models.VideoProgress{VideoID: video.ID, CurrentTime: 50})
	require.NoError(t, err)

	require.NoError(t, s.DeleteVideo(video.ID))
	_, ok := s.ProgressByVideo(video.ID)
	assert.False(t, ok)
}

func TestSaveProgressUpsertsKeepingID(t *testing.T) {
	s, _ := newTestStore(t)

	course, err := s.CreateCourse("C", "/media/c")
	require.NoError(t, err)
	video := addVideo(t, s, course.ID, "v.mp4", "/media/c/v.mp4")

	first, err := s.SaveProgress(models.VideoProgress{VideoID: video.ID, CurrentTime: 10})
	require.NoError(t, err)
	second, err := s.SaveProgress(models.VideoProgress{VideoID: video.ID, CurrentTime: 20})
	require.NoError(t, err)

	// one record per video, updated in place
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, float64(20), second.CurrentTime)
}

func TestDeleteProgressIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	course, err := s.CreateCourse("C", "/media/c")
	require.NoError(t, err)
	video := addVideo(t, s, course.ID, "v.mp4", "/media/c/v.mp4")

	// never watched - still not an error
	assert.NoError(t, s.DeleteProgress(video.ID))

	// unknown video is
	assert.ErrorIs(t, s.DeleteProgress(999999), ErrNotFound)
}

func TestVideosByCourseNaturalOrder(t *testing.T) {
	s, _ := newTestStore(t)

	course, err := s.CreateCourse("C", "/media/c")
	require.NoError(t, err)
	addVideo(t, s, course.ID, "Lesson 10.mp4", "/media/c/10.mp4")
	addVideo(t, s, course.ID, "Lesson 2.mp4", "/media/c/2.mp4")
	addVideo(t, s, course.ID, "Lesson 1.mp4", "/media/c/1.mp4")

	videos, err := s.VideosByCourse(course.ID)
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, "Lesson 1.mp4", videos[0].FileName)
	assert.Equal(t, "Lesson 2.mp4", videos[1].FileName)
	assert.Equal(t, "Lesson 10.mp4", videos[2].FileName)
}

func TestSortVideosTieBreaks(t *testing.T) {
	earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)

	videos := []*models.Video{
		{ID: 30, FileName: "same.mp4", CreatedAt: later},
		{ID: 20, FileName: "same.mp4", CreatedAt: earlier},
		{ID: 10, FileName: "same.mp4", CreatedAt: later},
	}

	sortVideos(videos)

	// creation time first, then ID on an exact tie
	assert.Equal(t, int64(20), videos[0].ID)
	assert.Equal(t, int64(10), videos[1].ID)
	assert.Equal(t, int64(30), videos[2].ID)
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json at all"), 0644))

	s := open(path, time.Minute)
	defer s.sched.Stop()

	assert.Empty(t, s.ListCourses())

	// and the store is fully usable afterwards
	_, err := s.CreateCourse("Recovered", "/media/recovered")
	assert.NoError(t, err)
}

func TestRestorePrunesOrphans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")

	now := time.Now().UTC()
	doc := &document{
		Courses: []*models.Course{
			{ID: 1, Name: "Alive", FolderPath: "/media/alive", CreatedAt: now, UpdatedAt: now},
		},
		Videos: []*models.Video{
			{ID: 2, CourseID: 1, FileName: "ok.mp4", FilePath: "/media/alive/ok.mp4"},
			{ID: 3, CourseID: 42, FileName: "orphan.mp4", FilePath: "/media/gone/orphan.mp4"},
		},
		VideoProgress: []*models.VideoProgress{
			{ID: 4, VideoID: 2, CurrentTime: 10, Duration: 100},
			{ID: 5, VideoID: 3, CurrentTime: 10, Duration: 100},
		},
	}
	require.NoError(t, writeSnapshot(path, doc))

	s := open(path, time.Minute)
	defer s.sched.Stop()

	_, err := s.GetVideo(3)
	assert.ErrorIs(t, err, ErrNotFound)
	_, ok := s.ProgressByVideo(3)
	assert.False(t, ok)

	_, err = s.GetVideo(2)
	assert.NoError(t, err)
	_, ok = s.ProgressByVideo(2)
	assert.True(t, ok)

	// the counter still accounts for the pruned rows
	course, err := s.CreateCourse("New", "/media/new")
	require.NoError(t, err)
	assert.Greater(t, course.ID, int64(5))
}

func TestRestoreNormalizesProgressFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")

	now := time.Now().UTC()
	doc := &document{
		Courses: []*models.Course{
			{ID: 1, Name: "C", FolderPath: "/media/c", CreatedAt: now, UpdatedAt: now},
		},
		Videos: []*models.Video{
			{ID: 2, CourseID: 1, FileName: "v.mp4", FilePath: "/media/c/v.mp4"},
		},
		VideoProgress: []*models.VideoProgress{
			// older snapshot shape: manual flag set but completed missing,
			// percentage never computed
			{ID: 3, VideoID: 2, CurrentTime: 50, Duration: 200, ManuallyCompleted: true},
		},
	}
	require.NoError(t, writeSnapshot(path, doc))

	s := open(path, time.Minute)
	defer s.sched.Stop()

	p, ok := s.ProgressByVideo(2)
	require.True(t, ok)
	assert.True(t, p.Completed)
	assert.InDelta(t, 25.0, p.ProgressPercentage, 0.001)
}

func TestResetKeepsIDCounter(t *testing.T) {
	s, _ := newTestStore(t)

	course, err := s.CreateCourse("Before", "/media/before")
	require.NoError(t, err)

	s.Reset()

	assert.Empty(t, s.ListCourses())
	assert.Empty(t, s.ListDaily())

	after, err := s.CreateCourse("After", "/media/after")
	require.NoError(t, err)
	assert.Greater(t, after.ID, course.ID)
}

func TestStoreHandsOutCopies(t *testing.T) {
	s, _ := newTestStore(t)

	course, err := s.CreateCourse("Copy", "/media/copy")
	require.NoError(t, err)

	// mutating a returned row must not leak into the table
	course.Name = "Mutated"
	got, err := s.GetCourse(course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Copy", got.Name)
}
