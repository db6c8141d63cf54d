package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// CleanupOld removes session directories not modified within the retention
// window. Returns how many files and session directories were removed.
func (s *Store) CleanupOld(retention time.Duration) (filesRemoved, dirsRemoved int, err error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("read upload root: %w", err)
	}
	cutoff := time.Now().Add(-retention)

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(s.Root, e.Name())
		info, err := e.Info()
		if err != nil {
			log.Warn().Str("session", e.Name()).Err(err).Msg("skipping session during cleanup")
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		count := 0
		filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
			if err == nil && !d.IsDir() {
				count++
			}
			return nil
		})
		if err := os.RemoveAll(path); err != nil {
			log.Error().Str("session", e.Name()).Err(err).Msg("failed to remove expired session")
			continue
		}
		filesRemoved += count
		dirsRemoved++
		log.Info().Str("session", e.Name()).Int("files", count).Msg("removed expired session")
	}
	return filesRemoved, dirsRemoved, nil
}

// SessionInfo summarises one session directory for storage stats.
type SessionInfo struct {
	ID       string    `json:"id"`
	Modified time.Time `json:"modified"`
	Size     int64     `json:"size"`
	Files    int       `json:"files"`
}

// Stats aggregates storage usage across all sessions.
type Stats struct {
	TotalSize     int64        `json:"total_size"`
	TotalFiles    int          `json:"total_files"`
	TotalSessions int          `json:"total_sessions"`
	Oldest        *SessionInfo `json:"oldest_session"`
	Newest        *SessionInfo `json:"newest_session"`
}

// UsageStats walks the upload root and reports aggregate usage.
func (s *Store) UsageStats() (Stats, error) {
	var stats Stats
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("read upload root: %w", err)
	}

	var sessions []SessionInfo
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		si := SessionInfo{ID: e.Name(), Modified: info.ModTime()}
		filepath.WalkDir(filepath.Join(s.Root, e.Name()), func(_ string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if fi, err := d.Info(); err == nil {
				si.Size += fi.Size()
				si.Files++
			}
			return nil
		})
		stats.TotalSize += si.Size
		stats.TotalFiles += si.Files
		sessions = append(sessions, si)
	}

	stats.TotalSessions = len(sessions)
	for i := range sessions {
		si := sessions[i]
		if stats.Oldest == nil || si.Modified.Before(stats.Oldest.Modified) {
			stats.Oldest = &sessions[i]
		}
		if stats.Newest == nil || si.Modified.After(stats.Newest.Modified) {
			stats.Newest = &sessions[i]
		}
	}
	return stats, nil
}
