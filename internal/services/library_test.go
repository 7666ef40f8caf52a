package services

import (
	"testing"

	"github.com/rsathishtechit/video-player/internal/models"
	"github.com/rsathishtechit/video-player/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courseInput(name, folder string, files ...string) models.CreateCourseInput {
	input := models.CreateCourseInput{Name: name, FolderPath: folder}
	for _, f := range files {
		input.Files = append(input.Files, models.VideoFileInput{
			FileName: f,
			FilePath: folder + "/" + f,
			Duration: 300,
		})
	}
	return input
}

func TestImportCourse(t *testing.T) {
	st := newTestStore(t)
	svc := NewLibraryService(st)

	result, err := svc.ImportCourse(courseInput("Go Course", "/media/go", "01.mp4", "02.mp4"))
	require.NoError(t, err)

	assert.False(t, result.Augmented)
	assert.Equal(t, 2, result.AddedVideos)
	assert.Equal(t, "Go Course", result.Course.Name)

	videos, err := st.VideosByCourse(result.Course.ID)
	require.NoError(t, err)
	assert.Len(t, videos, 2)
}

func TestImportCourseIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	svc := NewLibraryService(st)

	first, err := svc.ImportCourse(courseInput("Go Course", "/media/go", "01.mp4", "02.mp4"))
	require.NoError(t, err)

	// exact same import again - nothing new, nothing duplicated
	second, err := svc.ImportCourse(courseInput("Go Course", "/media/go", "01.mp4", "02.mp4"))
	require.NoError(t, err)

	assert.True(t, second.Augmented)
	assert.Zero(t, second.AddedVideos)
	assert.Equal(t, first.Course.ID, second.Course.ID)
	assert.Len(t, st.ListCourses(), 1)
}

func TestReimportAugmentsWithNewFiles(t *testing.T) {
	st := newTestStore(t)
	svc := NewLibraryService(st)

	first, err := svc.ImportCourse(courseInput("Go Course", "/media/go", "01.mp4"))
	require.NoError(t, err)

	// the folder grew since the last crawl
	result, err := svc.ImportCourse(courseInput("Go Course", "/media/go", "01.mp4", "02.mp4", "03.mp4"))
	require.NoError(t, err)

	assert.True(t, result.Augmented)
	assert.Equal(t, 2, result.AddedVideos)

	videos, err := st.VideosByCourse(first.Course.ID)
	require.NoError(t, err)
	assert.Len(t, videos, 3)
}

func TestReimportPreservesProgress(t *testing.T) {
	st := newTestStore(t)
	svc := NewLibraryService(st)
	progressSvc := NewProgressService(st)

	result, err := svc.ImportCourse(courseInput("Go Course", "/media/go", "01.mp4", "02.mp4"))
	require.NoError(t, err)
	videos, err := st.VideosByCourse(result.Course.ID)
	require.NoError(t, err)

	_, err = progressSvc.UpdateVideoProgress(videos[0].ID, models.ProgressUpdateInput{CurrentTime: 100, Duration: 300})
	require.NoError(t, err)

	_, err = svc.ImportCourse(courseInput("Go Course", "/media/go", "01.mp4", "02.mp4"))
	require.NoError(t, err)

	p, ok := st.ProgressByVideo(videos[0].ID)
	require.True(t, ok)
	assert.Equal(t, float64(100), p.CurrentTime)
}

func TestImportCourseFallsBackToFolderName(t *testing.T) {
	st := newTestStore(t)
	svc := NewLibraryService(st)

	result, err := svc.ImportCourse(courseInput("", "/media/unnamed"))
	require.NoError(t, err)
	assert.Equal(t, "/media/unnamed", result.Course.Name)
}

func TestImportCourseRequiresFolderPath(t *testing.T) {
	st := newTestStore(t)
	svc := NewLibraryService(st)

	_, err := svc.ImportCourse(models.CreateCourseInput{Name: "No Folder"})
	assert.Error(t, err)
}

func TestImportVideosSkipsKnownPaths(t *testing.T) {
	st := newTestStore(t)
	svc := NewLibraryService(st)

	result, err := svc.ImportCourse(courseInput("Go Course", "/media/go", "01.mp4"))
	require.NoError(t, err)

	added, err := svc.ImportVideos(result.Course.ID, []models.VideoFileInput{
		{FileName: "01.mp4", FilePath: "/media/go/01.mp4"}, // already there
		{FileName: "02.mp4", FilePath: "/media/go/02.mp4"},
		{FilePath: ""}, // crawler glitch, skipped with a warning
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestListCourseSummaries(t *testing.T) {
	st := newTestStore(t)
	svc := NewLibraryService(st)
	progressSvc := NewProgressService(st)

	result, err := svc.ImportCourse(courseInput("Go Course", "/media/go", "01.mp4", "02.mp4", "03.mp4", "04.mp4"))
	require.NoError(t, err)
	videos, err := st.VideosByCourse(result.Course.ID)
	require.NoError(t, err)

	_, err = progressSvc.MarkCompleted(videos[0].ID)
	require.NoError(t, err)
	// mid-video progress doesn't count as completed
	_, err = progressSvc.UpdateVideoProgress(videos[1].ID, models.ProgressUpdateInput{CurrentTime: 100, Duration: 300})
	require.NoError(t, err)

	summaries := svc.ListCourseSummaries()
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 4, s.TotalVideos)
	assert.Equal(t, 1, s.CompletedVideos)
	assert.InDelta(t, 25.0, s.CompletionPct, 0.001)
	assert.InDelta(t, 1200.0, s.TotalDuration, 0.001)
}

func TestGetCourseDetail(t *testing.T) {
	st := newTestStore(t)
	svc := NewLibraryService(st)

	result, err := svc.ImportCourse(courseInput("Go Course", "/media/go", "10.mp4", "2.mp4"))
	require.NoError(t, err)

	detail, err := svc.GetCourseDetail(result.Course.ID)
	require.NoError(t, err)

	require.Len(t, detail.Videos, 2)
	// display order is natural, not lexical
	assert.Equal(t, "2.mp4", detail.Videos[0].FileName)
	assert.Equal(t, "10.mp4", detail.Videos[1].FileName)

	_, err = svc.GetCourseDetail(999999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteCourseRemovesEverything(t *testing.T) {
	st := newTestStore(t)
	svc := NewLibraryService(st)

	result, err := svc.ImportCourse(courseInput("Doomed", "/media/doomed", "01.mp4"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(result.Course.ID))
	assert.Empty(t, st.ListCourses())

	// and the folder can be imported fresh afterwards
	again, err := svc.ImportCourse(courseInput("Doomed", "/media/doomed", "01.mp4"))
	require.NoError(t, err)
	assert.False(t, again.Augmented)
	assert.Greater(t, again.Course.ID, result.Course.ID)
}
