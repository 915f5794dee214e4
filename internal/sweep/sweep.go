package sweep

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// DefaultRetention is how long generated audio is kept
const DefaultRetention = 7 * 24 * time.Hour

// DefaultExtensions are the audio file extensions the sweeper considers
var DefaultExtensions = []string{".mp3", ".wav", ".opus", ".aac", ".flac"}

// FileError is a failure to inspect or delete one file. It is logged and
// recorded in the report, never returned from a sweep.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("sweep %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Report summarizes one sweep
type Report struct {
	Removed  []string
	Bytes    uint64
	Failures []*FileError
}

// Count returns the number of removed files
func (r Report) Count() int {
	return len(r.Removed)
}

// Summary renders the report for humans
func (r Report) Summary() string {
	s := fmt.Sprintf("removed %d %s, freed %s",
		r.Count(), plural(r.Count(), "file", "files"), humanize.Bytes(r.Bytes))
	if len(r.Failures) > 0 {
		s += fmt.Sprintf(", %d failed", len(r.Failures))
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Sweeper removes expired audio files from Dir
type Sweeper struct {
	Dir        string
	Retention  time.Duration
	Extensions []string
	Now        func() time.Time
	Remove     func(path string) error
}

// New creates a sweeper with the default extensions. A non-positive
// retention uses DefaultRetention.
func New(dir string, retention time.Duration) *Sweeper {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Sweeper{
		Dir:        dir,
		Retention:  retention,
		Extensions: DefaultExtensions,
		Now:        time.Now,
		Remove:     os.Remove,
	}
}

// Sweep deletes every audio file directly in dir that was last modified
// more than retention ago and returns how many were removed
func Sweep(dir string, retention time.Duration) (int, error) {
	report, err := New(dir, retention).Sweep()
	return report.Count(), err
}

// Sweep runs one pass over the directory. Only a failure to list the
// directory is returned; a missing directory sweeps nothing.
func (s *Sweeper) Sweep() (Report, error) {
	var report Report

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return report, nil
		}
		return report, fmt.Errorf("failed to read audio directory: %w", err)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	cutoff := now().Add(-s.Retention)

	remove := os.Remove
	if s.Remove != nil {
		remove = s.Remove
	}

	for _, entry := range entries {
		name := entry.Name()
		// Hidden files are in-flight writes of the synthesizer
		if entry.IsDir() || strings.HasPrefix(name, ".") || !s.isAudio(name) {
			continue
		}

		path := filepath.Join(s.Dir, name)
		info, err := entry.Info()
		if err != nil {
			// Gone since the listing
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			s.fail(&report, path, err)
			continue
		}
		if !info.Mode().IsRegular() || !info.ModTime().Before(cutoff) {
			continue
		}

		if err := remove(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			s.fail(&report, path, err)
			continue
		}

		report.Removed = append(report.Removed, name)
		report.Bytes += uint64(info.Size())
		log.Debug("removed expired audio", "file", name, "age", humanize.Time(info.ModTime()))
	}

	return report, nil
}

func (s *Sweeper) fail(report *Report, path string, err error) {
	fileErr := &FileError{Path: path, Err: err}
	report.Failures = append(report.Failures, fileErr)
	log.Warn("could not sweep file", "err", fileErr)
}

func (s *Sweeper) isAudio(name string) bool {
	exts := s.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
