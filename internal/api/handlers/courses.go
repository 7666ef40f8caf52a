package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/rsathishtechit/video-player/internal/models"
	"github.com/rsathishtechit/video-player/internal/services"
	"github.com/rsathishtechit/video-player/pkg/task"
)

// request/response structs for batch import
type BatchImportRequest struct {
	Courses []models.CreateCourseInput `json:"courses"`
}

type BatchImportResponse struct {
	SuccessCount    int                      `json:"successCount"`
	FailureCount    int                      `json:"failureCount"`
	ImportedCourses []*services.ImportResult `json:"importedCourses"`
	Errors          []string                 `json:"errors,omitempty"`
}

// CourseHandler processes course-related HTTP requests
type CourseHandler struct {
	Library  *services.LibraryService  // course and video management
	Progress *services.ProgressService // resume selection and progress resets
}

// NewCourseHandler creates handler with injected services
func NewCourseHandler(library *services.LibraryService, progress *services.ProgressService) *CourseHandler {
	return &CourseHandler{Library: library, Progress: progress}
}

// List handles GET /api/courses - all courses with aggregate completion
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries := h.Library.ListCourseSummaries()
	SendJSON(w, http.StatusOK, "Courses retrieved successfully", summaries)
}

// Create handles POST /api/courses - records a crawled folder as a course.
// Re-importing a known folder augments it and reports 200 instead of 201.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CreateCourseInput
	if err := DecodeJSONBody(r, &input); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if input.FolderPath == "" {
		SendError(w, "Folder path is required", http.StatusBadRequest, nil)
		return
	}

	result, err := h.Library.ImportCourse(input)
	if err != nil {
		SendServiceError(w, "Failed to import course", err)
		return
	}

	status := http.StatusCreated
	message := "Course imported successfully"
	if result.Augmented {
		status = http.StatusOK
		message = "Course already existed, new videos added"
	}
	SendJSON(w, status, message, result)
}

// BatchImport handles POST /api/courses/batch - imports several folders in
// the background and returns a task ID to poll
func (h *CourseHandler) BatchImport(w http.ResponseWriter, r *http.Request) {
	var request BatchImportRequest
	if err := DecodeJSONBody(r, &request); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}
	if len(request.Courses) == 0 {
		SendError(w, "No courses provided for import", http.StatusBadRequest, nil)
		return
	}

	taskID := task.Create(task.TypeCourseImport)

	// do the actual work in background
	go func() {
		task.Start(taskID, "Importing "+strconv.Itoa(len(request.Courses))+" courses")

		response := BatchImportResponse{}
		for i, input := range request.Courses {
			result, err := h.Library.ImportCourse(input)
			if err != nil {
				log.Printf("Batch import: course %q failed: %v", input.FolderPath, err)
				response.FailureCount++
				response.Errors = append(response.Errors, err.Error())
			} else {
				response.SuccessCount++
				response.ImportedCourses = append(response.ImportedCourses, result)
			}
			task.SetProgress(taskID, float32(i+1)/float32(len(request.Courses))*100,
				"Imported "+strconv.Itoa(response.SuccessCount)+" courses")
		}

		if response.SuccessCount == 0 && response.FailureCount > 0 {
			task.Fail(taskID, "Failed to import any courses")
			return
		}
		task.Complete(taskID,
			"Imported "+strconv.Itoa(response.SuccessCount)+" courses with "+
				strconv.Itoa(response.FailureCount)+" errors", response)
	}()

	SendJSON(w, http.StatusAccepted, "Import started", map[string]string{"taskId": taskID})
}

// Get handles GET /api/courses/{id} - course with ordered videos and progress
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	detail, err := h.Library.GetCourseDetail(id)
	if err != nil {
		SendServiceError(w, "Failed to retrieve course", err)
		return
	}
	SendJSON(w, http.StatusOK, "Course retrieved successfully", detail)
}

// Update handles PUT /api/courses/{id} - rename or current-video change
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	var input models.UpdateCourseInput
	if err := DecodeJSONBody(r, &input); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	course, err := h.Library.UpdateCourse(id, input)
	if err != nil {
		SendServiceError(w, "Failed to update course", err)
		return
	}
	SendJSON(w, http.StatusOK, "Course updated successfully", course)
}

// Delete handles DELETE /api/courses/{id} - cascades to videos and progress
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.Library.DeleteCourse(id); err != nil {
		SendServiceError(w, "Failed to delete course", err)
		return
	}
	SendJSON(w, http.StatusOK, "Course deleted successfully", nil)
}

// Open handles POST /api/courses/{id}/open - stamps the access time and
// returns the video the player should present
func (h *CourseHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	course, err := h.Library.OpenCourse(id)
	if err != nil {
		SendServiceError(w, "Failed to open course", err)
		return
	}

	resume, err := h.Progress.Resume(id)
	if err != nil {
		// a course with no videos still opens, there is just nothing to play
		SendJSON(w, http.StatusOK, "Course opened", map[string]interface{}{
			"course": course,
		})
		return
	}

	SendJSON(w, http.StatusOK, "Course opened", map[string]interface{}{
		"course": course,
		"resume": resume,
	})
}

// Resume handles GET /api/courses/{id}/resume - resume selection only
func (h *CourseHandler) Resume(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	video, err := h.Progress.Resume(id)
	if err != nil {
		SendServiceError(w, "Failed to pick a video to resume", err)
		return
	}
	SendJSON(w, http.StatusOK, "Resume video selected", video)
}

// ListVideos handles GET /api/courses/{id}/videos - videos in display order
func (h *CourseHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	detail, err := h.Library.GetCourseDetail(id)
	if err != nil {
		SendServiceError(w, "Failed to list videos", err)
		return
	}
	SendJSON(w, http.StatusOK, "Videos retrieved successfully", detail.Videos)
}

// ImportVideos handles POST /api/courses/{id}/videos - idempotent
// re-import of freshly crawled file descriptors
func (h *CourseHandler) ImportVideos(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	var files []models.VideoFileInput
	if err := DecodeJSONBody(r, &files); err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	added, err := h.Library.ImportVideos(id, files)
	if err != nil {
		SendServiceError(w, "Failed to import videos", err)
		return
	}
	SendJSON(w, http.StatusOK, "Videos imported", map[string]int{"addedVideos": added})
}

// ResetProgress handles POST /api/courses/{id}/progress/reset - forgets
// all watch progress in the course, keeping the course and videos
func (h *CourseHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	id, err := PathID(r, "id")
	if err != nil {
		SendError(w, err.Error(), http.StatusBadRequest, nil)
		return
	}

	if err := h.Progress.ResetCourseProgress(id); err != nil {
		SendServiceError(w, "Failed to reset course progress", err)
		return
	}
	SendJSON(w, http.StatusOK, "Course progress reset", nil)
}
