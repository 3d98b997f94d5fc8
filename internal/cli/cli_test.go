package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/studynotes/internal/config"
	"github.com/example/studynotes/internal/storage"
	"github.com/example/studynotes/internal/store"
	"github.com/example/studynotes/pkg/models"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

var fixedNow = time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)

const firstID = "1736501400000"

type recorder struct {
	mu     sync.Mutex
	bodies []string
}

func (r *recorder) Notify(title, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bodies = append(r.bodies, body)
	return nil
}

func (r *recorder) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.bodies...)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:               t.TempDir(),
		Storage:               storage.KindJSON,
		ExportDir:             t.TempDir(),
		Notifications:         true,
		PollInterval:          time.Hour,
		InitialDelay:          10 * time.Millisecond,
		NotificationStartHour: 0,
		NotificationEndHour:   23,
	}
}

func newTestApp(t *testing.T, cfg *config.Config, input string) (*App, *recorder) {
	t.Helper()
	rec := &recorder{}
	a := New(
		WithConfig(cfg),
		WithClock(func() time.Time { return fixedNow }),
		WithInput(strings.NewReader(input)),
		WithLogOutput(io.Discard),
		WithNotifier(rec),
	)
	t.Cleanup(func() { a.Close() })
	return a, rec
}

func run(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	return runContext(context.Background(), a, args...)
}

func runContext(ctx context.Context, a *App, args ...string) (string, error) {
	var buf bytes.Buffer
	cmd := a.Command()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}

func addNote(t *testing.T, a *App, date string) {
	t.Helper()
	_, err := run(t, a, "add", "--subject", "EMPM01", "--code", "W1", "--date", date)
	require.NoError(t, err)
}

func TestSubjects(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), "")
	out, err := run(t, a, "subjects")
	require.NoError(t, err)
	assert.Contains(t, out, "EMPM02")
	assert.Contains(t, out, "Occupational Health & Safety")
	assert.Equal(t, len(models.Subjects), strings.Count(out, "\n"))
}

func TestAddAndList(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), "")

	out, err := run(t, a, "add", "--subject", "EMPM01", "--code", "W1", "--date", "2025-01-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Added note "+firstID+": W1 (Workplace Information Management)")
	assert.Contains(t, out, "24H     2025-01-11")
	assert.Contains(t, out, "1Month  2025-02-09")

	out, err = run(t, a, "list")
	require.NoError(t, err)
	assert.Contains(t, out, firstID)
	assert.Contains(t, out, "2025-01-13")
	assert.Contains(t, out, "Total notes: 1")
	assert.Contains(t, out, "Pending revisions: 4")
	assert.Contains(t, out, "Completed revisions: 0")
}

func TestAddDefaultsToToday(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), "")

	out, err := run(t, a, "add", "--subject", "EMPM01", "--code", "W1")
	require.NoError(t, err)
	assert.Contains(t, out, "24H     2025-01-11")
}

func TestAddRejectsMissingFields(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), "")

	_, err := run(t, a, "add", "--subject", "EMPM01", "--date", "2025-01-10")
	assert.ErrorIs(t, err, store.ErrMissingField)

	_, err = run(t, a, "add", "--subject", "EMPM01", "--code", "W1", "--date", "10/01/2025")
	assert.ErrorIs(t, err, store.ErrMissingField)

	out, err := run(t, a, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total notes: 0")
}

func TestToggle(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), "")
	addNote(t, a, "2025-01-10")

	out, err := run(t, a, "toggle", firstID, "24h")
	require.NoError(t, err)
	assert.Contains(t, out, "24H marked revised")

	out, err = run(t, a, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Pending revisions: 3")
	assert.Contains(t, out, "Completed revisions: 1")

	out, err = run(t, a, "toggle", firstID, "24H")
	require.NoError(t, err)
	assert.Contains(t, out, "24H marked not revised")
}

func TestToggleErrors(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), "")
	addNote(t, a, "2025-01-10")

	_, err := run(t, a, "toggle", firstID, "2Weeks")
	assert.ErrorIs(t, err, models.ErrUnknownLabel)

	_, err = run(t, a, "toggle", "abc", "24H")
	assert.Error(t, err)

	out, err := run(t, a, "toggle", "5", "24H")
	require.NoError(t, err)
	assert.Contains(t, out, "No note with id 5")
}

func TestListViews(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), "")
	addNote(t, a, "2025-01-10")

	out, err := run(t, a, "list", "--view", "done")
	require.NoError(t, err)
	assert.Contains(t, out, "No notes")

	var last string
	for _, l := range models.Labels {
		last, err = run(t, a, "toggle", firstID, string(l))
		require.NoError(t, err)
	}
	assert.Contains(t, last, "All revisions of W1 done")

	out, err = run(t, a, "list", "--view", "done")
	require.NoError(t, err)
	assert.Contains(t, out, firstID)

	out, err = run(t, a, "list", "--view", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "No notes")

	_, err = run(t, a, "list", "--view", "later")
	assert.Error(t, err)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	cfg := testConfig(t)
	a, _ := newTestApp(t, cfg, "n\n")
	addNote(t, a, "2025-01-10")

	out, err := run(t, a, "delete", firstID)
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete this note?")
	assert.Contains(t, out, "Cancelled")

	b, _ := newTestApp(t, cfg, "y\n")
	out, err = run(t, b, "delete", firstID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted note "+firstID)
}

func TestDeleteYes(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), "")
	addNote(t, a, "2025-01-10")

	out, err := run(t, a, "delete", "--yes", firstID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted note")

	out, err = run(t, a, "delete", "--yes", firstID)
	require.NoError(t, err)
	assert.Contains(t, out, "No note with id")
}

func TestNotesPersistAcrossRuns(t *testing.T) {
	cfg := testConfig(t)
	a, _ := newTestApp(t, cfg, "")
	addNote(t, a, "2025-01-10")
	require.NoError(t, a.Close())

	b, _ := newTestApp(t, cfg, "")
	out, err := run(t, b, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total notes: 1")
}

func TestDataDirFlag(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), "")
	dir := t.TempDir()

	_, err := run(t, a, "--data-dir", dir, "--storage", "sqlite", "add", "--subject", "EMPM01", "--code", "W1", "--date", "2025-01-10")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, storage.SQLiteFileName))
}

func TestExport(t *testing.T) {
	cfg := testConfig(t)
	a, _ := newTestApp(t, cfg, "")

	out, err := run(t, a, "export", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "No notes to export")

	addNote(t, a, "2025-01-10")
	out, err = run(t, a, "export", "--format", "csv")
	require.NoError(t, err)

	path := filepath.Join(cfg.ExportDir, "study-notes-1736501400.csv")
	assert.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Subject,Note Code,Completion Date,"))
	assert.Contains(t, string(data), `"Workplace Information Management","W1","2025-01-10"`)

	dir := t.TempDir()
	_, err = run(t, a, "export", "-f", "json", "--dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "study-notes-1736501400.json"))

	_, err = run(t, a, "export", "--format", "docx")
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t), "")

	file := filepath.Join(t.TempDir(), "notes.csv")
	content := "Subject,Code,Date\nEMPM01,W2,2025-01-09\nNope,W3,2025-01-09\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	out, err := run(t, a, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Processed 2 rows: 1 created, 1 skipped")
	assert.Contains(t, out, "Row 3")

	_, err = run(t, a, "import", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestRemindOnce(t *testing.T) {
	a, rec := newTestApp(t, testConfig(t), "")
	addNote(t, a, "2025-01-09")

	out, err := run(t, a, "remind", "--once")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent 1 reminders")
	assert.Equal(t, []string{"W1 — 24H due 2025-01-10"}, rec.sent())
}

func TestRemindOnceDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Notifications = false
	a, rec := newTestApp(t, cfg, "")
	addNote(t, a, "2025-01-09")

	out, err := run(t, a, "remind", "--once")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent 0 reminders")
	assert.Empty(t, rec.sent())
}

func TestWatchUntilCancelled(t *testing.T) {
	a, rec := newTestApp(t, testConfig(t), "")
	addNote(t, a, "2025-01-09")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		assert.Eventually(t, func() bool { return len(rec.sent()) > 0 }, 2*time.Second, 10*time.Millisecond)
		cancel()
	}()

	out, err := runContext(ctx, a, "watch")
	require.NoError(t, err)
	assert.Contains(t, out, "Watching for due revisions")
	assert.Contains(t, out, "Stopped")
	assert.Equal(t, []string{"W1 — 24H due 2025-01-10"}, rec.sent())
}
