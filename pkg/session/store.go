package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MinSessionSeconds is the shortest watch session worth recording. The
// daily aggregator does no filtering of its own, so callers check elapsed
// time against this before reporting learning time.
const MinSessionSeconds = 5

// PlaybackSession tracks one continuous watch of a video from the moment
// the player surface reports it started
type PlaybackSession struct {
	ID        string    `json:"id"`
	VideoID   int64     `json:"videoId"`
	StartedAt time.Time `json:"startedAt"`
}

// SessionStore keeps the currently open playback sessions in memory -
// they only matter while the process lives
type SessionStore struct {
	mu       sync.RWMutex // for thread safety
	sessions map[string]*PlaybackSession
}

// global session store - single-user app, one registry is enough
var store *SessionStore

// Initialize sets up the playback session registry
func Initialize() {
	store = &SessionStore{
		sessions: make(map[string]*PlaybackSession),
	}
}

// Start opens a session for a video and hands back its token
func Start(videoID int64) *PlaybackSession {
	if store == nil {
		Initialize()
	}

	s := &PlaybackSession{
		ID:        uuid.New().String(),
		VideoID:   videoID,
		StartedAt: time.Now(),
	}

	store.mu.Lock()
	store.sessions[s.ID] = s
	store.mu.Unlock()

	return s
}

// End closes a session and returns the video it covered plus the elapsed
// whole seconds. Unknown tokens report ok=false - the player may retry an
// end after a crash and that shouldn't double-count anything.
func End(sessionID string) (videoID int64, seconds int64, ok bool) {
	if store == nil {
		return 0, 0, false
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	s, exists := store.sessions[sessionID]
	if !exists {
		return 0, 0, false
	}
	delete(store.sessions, sessionID)

	elapsed := int64(time.Since(s.StartedAt).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	return s.VideoID, elapsed, true
}

// Active reports how many sessions are currently open
func Active() int {
	if store == nil {
		return 0
	}

	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.sessions)
}

// Clear drops every open session, typically during a factory reset
func Clear() {
	if store == nil {
		return
	}

	store.mu.Lock()
	store.sessions = make(map[string]*PlaybackSession)
	store.mu.Unlock()
}

// CleanupStale drops sessions whose end call never arrived - a crashed
// player or a machine that slept through the night
func CleanupStale(maxAge time.Duration) int {
	if store == nil {
		return 0
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for id, s := range store.sessions {
		if s.StartedAt.Before(cutoff) {
			delete(store.sessions, id)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Printf("Dropped %d stale playback sessions", cleaned)
	}
	return cleaned
}
