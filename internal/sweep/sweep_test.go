package sweep

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestSweepRetention(t *testing.T) {
	dir := t.TempDir()
	old := writeAged(t, dir, "Maize_Rust.mp3", 8*24*time.Hour)
	fresh := writeAged(t, dir, "Maize_Smut.mp3", 6*24*time.Hour)

	removed, err := Sweep(dir, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)

	removed, err = Sweep(dir, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, removed, "second sweep should be a no-op")
}

func TestSweepSkipsNonAudio(t *testing.T) {
	dir := t.TempDir()
	notes := writeAged(t, dir, "notes.txt", 30*24*time.Hour)
	hidden := writeAged(t, dir, ".cropvoice-123.mp3", 30*24*time.Hour)
	wav := writeAged(t, dir, "Cassava_Mosaic.WAV", 30*24*time.Hour)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))
	nested := writeAged(t, sub, "Old_File.mp3", 30*24*time.Hour)

	report, err := New(dir, 7*24*time.Hour).Sweep()
	require.NoError(t, err)

	assert.Equal(t, []string{"Cassava_Mosaic.WAV"}, report.Removed)
	assert.Equal(t, uint64(len("audio")), report.Bytes)
	assert.Empty(t, report.Failures)
	assert.FileExists(t, notes)
	assert.FileExists(t, hidden)
	assert.FileExists(t, nested)
	assert.NoFileExists(t, wav)
}

func TestSweepMissingDirectory(t *testing.T) {
	removed, err := Sweep(filepath.Join(t.TempDir(), "absent"), DefaultRetention)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSweepInjectedClock(t *testing.T) {
	dir := t.TempDir()
	path := writeAged(t, dir, "Bean_Rust.mp3", time.Hour)

	s := New(dir, 7*24*time.Hour)
	s.Now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

	report, err := s.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count())
	assert.NoFileExists(t, path)
}

func TestSweepContinuesAfterFileFailure(t *testing.T) {
	dir := t.TempDir()
	locked := writeAged(t, dir, "Bean_Rust.mp3", 8*24*time.Hour)
	expired := writeAged(t, dir, "Maize_Rust.mp3", 8*24*time.Hour)

	s := New(dir, 7*24*time.Hour)
	s.Remove = func(path string) error {
		if path == locked {
			return &os.PathError{Op: "remove", Path: path, Err: os.ErrPermission}
		}
		return os.Remove(path)
	}

	report, err := s.Sweep()
	require.NoError(t, err)

	assert.Equal(t, []string{"Maize_Rust.mp3"}, report.Removed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, locked, report.Failures[0].Path)
	assert.ErrorIs(t, report.Failures[0], os.ErrPermission)
	assert.Contains(t, report.Summary(), "1 failed")
	assert.FileExists(t, locked)
	assert.NoFileExists(t, expired)
}

func TestSweepIgnoresFilesThatVanished(t *testing.T) {
	dir := t.TempDir()
	first := writeAged(t, dir, "Bean_Rust.mp3", 8*24*time.Hour)
	second := writeAged(t, dir, "Maize_Rust.mp3", 8*24*time.Hour)

	// Removing the first file also deletes the second one behind the
	// sweeper's back, before its info is read
	s := New(dir, 7*24*time.Hour)
	s.Remove = func(path string) error {
		if path == first {
			require.NoError(t, os.Remove(second))
		}
		return os.Remove(path)
	}

	report, err := s.Sweep()
	require.NoError(t, err)
	assert.Equal(t, []string{"Bean_Rust.mp3"}, report.Removed)
	assert.Empty(t, report.Failures)

	// A file already gone at removal time is not a failure either
	s.Remove = func(string) error { return os.ErrNotExist }
	writeAged(t, dir, "Tomato_Blight.mp3", 8*24*time.Hour)
	report, err = s.Sweep()
	require.NoError(t, err)
	assert.Empty(t, report.Removed)
	assert.Empty(t, report.Failures)
}

func TestNewDefaultsRetention(t *testing.T) {
	s := New(".", 0)
	assert.Equal(t, DefaultRetention, s.Retention)
}

func TestReportSummary(t *testing.T) {
	r := Report{Removed: []string{"a.mp3"}, Bytes: 2048}
	assert.Equal(t, "removed 1 file, freed 2.0 kB", r.Summary())

	r = Report{Removed: []string{"a.mp3", "b.mp3"}, Bytes: 0, Failures: []*FileError{{Path: "c.mp3"}}}
	assert.Equal(t, "removed 2 files, freed 0 B, 1 failed", r.Summary())
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("@hourly"))
	assert.NoError(t, ValidateSchedule("0 3 * * *"))
	assert.Error(t, ValidateSchedule("not a cron"))
	assert.Error(t, ValidateSchedule("61 * * * *"))
}

func TestNextRun(t *testing.T) {
	ref := time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC)
	next, err := NextRun("0 * * * *", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 11, 0, 0, 0, time.UTC), next)

	_, err = NextRun("bogus", ref)
	assert.Error(t, err)
}

func TestScheduleStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Schedule(ctx, "@hourly", New(t.TempDir(), DefaultRetention), nil)
	assert.ErrorIs(t, err, context.Canceled)

	err = Schedule(context.Background(), "bogus", New(t.TempDir(), DefaultRetention), nil)
	assert.Error(t, err)
}
