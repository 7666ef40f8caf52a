package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rsathishtechit/video-player/internal/api/handlers"
	"github.com/rsathishtechit/video-player/internal/services"
	"github.com/rsathishtechit/video-player/internal/store"
	"github.com/rsathishtechit/video-player/pkg/session"
	"github.com/rsathishtechit/video-player/pkg/task"
)

// Server holds all the app components together
type Server struct {
	Store *store.Store // owns all durable state

	Router *http.ServeMux // handles routing requests

	// handlers for different parts of the API
	CourseHandler *handlers.CourseHandler
	VideoHandler  *handlers.VideoHandler
	StatsHandler  *handlers.StatsHandler
	AdminHandler  *handlers.AdminHandler
	TaskHandler   *handlers.TaskHandler
}

// NewServer wires up all the dependencies and returns a ready-to-use server
func NewServer(st *store.Store) *Server {
	task.Initialize()
	session.Initialize()
	// background housekeeping - old tasks hourly, abandoned sessions too
	go task.CleanupRoutine(1*time.Hour, 24*time.Hour)
	go sessionCleanupRoutine(1*time.Hour, 12*time.Hour)

	// create service layer instances
	librarySvc := services.NewLibraryService(st)
	progressSvc := services.NewProgressService(st)
	statsSvc := services.NewStatsService(st)
	adminSvc := services.NewAdminService(st)

	// wire everything together
	server := &Server{
		Store:         st,
		Router:        http.NewServeMux(),
		CourseHandler: handlers.NewCourseHandler(librarySvc, progressSvc),
		VideoHandler:  handlers.NewVideoHandler(librarySvc, progressSvc),
		StatsHandler:  handlers.NewStatsHandler(statsSvc, progressSvc),
		AdminHandler:  handlers.NewAdminHandler(adminSvc),
		TaskHandler:   handlers.NewTaskHandler(),
	}

	server.setupRoutes()
	return server
}

// setupRoutes maps all the endpoints to handler functions
func (s *Server) setupRoutes() {
	s.Router.HandleFunc("/api", s.HelloHandler)

	// course management
	s.Router.HandleFunc("GET /api/courses", s.CourseHandler.List)
	s.Router.HandleFunc("POST /api/courses", s.CourseHandler.Create)
	s.Router.HandleFunc("POST /api/courses/batch", s.CourseHandler.BatchImport)
	s.Router.HandleFunc("GET /api/courses/{id}", s.CourseHandler.Get)
	s.Router.HandleFunc("PUT /api/courses/{id}", s.CourseHandler.Update)
	s.Router.HandleFunc("DELETE /api/courses/{id}", s.CourseHandler.Delete)
	s.Router.HandleFunc("POST /api/courses/{id}/open", s.CourseHandler.Open)
	s.Router.HandleFunc("GET /api/courses/{id}/resume", s.CourseHandler.Resume)
	s.Router.HandleFunc("GET /api/courses/{id}/videos", s.CourseHandler.ListVideos)
	s.Router.HandleFunc("POST /api/courses/{id}/videos", s.CourseHandler.ImportVideos)
	s.Router.HandleFunc("POST /api/courses/{id}/progress/reset", s.CourseHandler.ResetProgress)

	// video and progress tracking
	s.Router.HandleFunc("GET /api/videos/{id}", s.VideoHandler.Get)
	s.Router.HandleFunc("PUT /api/videos/{id}", s.VideoHandler.Update)
	s.Router.HandleFunc("DELETE /api/videos/{id}", s.VideoHandler.Delete)
	s.Router.HandleFunc("GET /api/videos/{id}/progress", s.VideoHandler.GetProgress)
	s.Router.HandleFunc("POST /api/videos/{id}/progress", s.VideoHandler.UpdateProgress)
	s.Router.HandleFunc("POST /api/videos/{id}/complete", s.VideoHandler.Complete)
	s.Router.HandleFunc("POST /api/videos/{id}/incomplete", s.VideoHandler.Incomplete)
	s.Router.HandleFunc("POST /api/videos/{id}/progress/reset", s.VideoHandler.ResetProgress)

	// learning time and playback sessions
	s.Router.HandleFunc("GET /api/stats/daily", s.StatsHandler.Daily)
	s.Router.HandleFunc("GET /api/stats/summary", s.StatsHandler.Summary)
	s.Router.HandleFunc("POST /api/stats/learning-time", s.StatsHandler.AddLearningTime)
	s.Router.HandleFunc("POST /api/sessions", s.StatsHandler.StartSession)
	s.Router.HandleFunc("POST /api/sessions/end", s.StatsHandler.EndSession)

	// admin endpoints
	s.Router.HandleFunc("POST /api/admin/factory-reset", s.AdminHandler.FactoryReset)
	s.Router.HandleFunc("GET /api/admin/stats", s.AdminHandler.GetStats)

	// task tracking
	s.Router.HandleFunc("GET /api/tasks", s.TaskHandler.Get)
	s.Router.HandleFunc("POST /api/tasks/cleanup", s.TaskHandler.Cleanup)
}

// ServeHTTP implements the http.Handler interface
// This allows the server to be used directly with http.ListenAndServe
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Delegate to the router
	s.Router.ServeHTTP(w, r)
}

// HelloHandler is a simple health endpoint for the frontend to probe
func (s *Server) HelloHandler(w http.ResponseWriter, r *http.Request) {
	type responseData struct {
		Message string `json:"message"`
	}

	response := responseData{Message: "video-player library backend is up"}
	jsonResponse, _ := json.Marshal(response)
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonResponse)
}

// sessionCleanupRoutine periodically drops playback sessions whose end
// call never arrived
func sessionCleanupRoutine(interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		session.CleanupStale(maxAge)
	}
}
