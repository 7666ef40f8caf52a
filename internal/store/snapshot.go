package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/rsathishtechit/video-player/internal/models"
)

// document is the persisted snapshot layout - one JSON file holding all
// four collections, replaced atomically on every flush
type document struct {
	Courses           []*models.Course            `json:"courses"`
	Videos            []*models.Video             `json:"videos"`
	VideoProgress     []*models.VideoProgress     `json:"videoProgress"`
	DailyLearningTime []*models.DailyLearningTime `json:"dailyLearningTime"`
}

// loadSnapshot reads the library file from disk. A missing or unparsable
// file is not an error - first run and corruption both start from an empty
// library rather than blocking application start.
func loadSnapshot(path string) *document {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read library file %s: %v", path, err)
		}
		return &document{}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Warning: library file %s is corrupt, starting empty: %v", path, err)
		return &document{}
	}

	return &doc
}

// writeSnapshot serializes the document and replaces the library file in
// one atomic rename so a crash mid-write never leaves a torn file behind.
// Each write gets its own temp file, so two writers can never interleave
// into the same one - the later rename simply wins.
func writeSnapshot(path string, doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode library snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("create library snapshot temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write library snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write library snapshot: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write library snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace library snapshot: %w", err)
	}

	return nil
}
