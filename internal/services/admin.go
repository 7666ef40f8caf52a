package services

import (
	"fmt"
	"log"

	"github.com/rsathishtechit/video-player/internal/store"
	"github.com/rsathishtechit/video-player/pkg/session"
	"github.com/rsathishtechit/video-player/pkg/task"
)

// AdminService handles administrative operations like factory reset
type AdminService struct {
	Store *store.Store
}

// NewAdminService creates admin service with its store dependency
func NewAdminService(st *store.Store) *AdminService {
	return &AdminService{Store: st}
}

// FactoryReset clears all library data and flushes the empty snapshot so
// the wipe survives an immediate crash
func (s *AdminService) FactoryReset() error {
	log.Println("Starting factory reset - clearing all library data")

	s.Store.Reset()
	if err := s.Store.Flush(); err != nil {
		return fmt.Errorf("failed to persist factory reset: %w", err)
	}

	// drop any open playback sessions, their end calls are meaningless now
	log.Println("Clearing playback sessions")
	session.Clear()

	// clear finished import tasks too
	log.Println("Clearing task data")
	task.CleanupOld(0)

	log.Println("Factory reset completed successfully")
	return nil
}

// GetLibraryStats returns row counts for the library tables
func (s *AdminService) GetLibraryStats() map[string]int {
	stats := s.Store.Stats()
	stats["activeSessions"] = session.Active()
	return stats
}
