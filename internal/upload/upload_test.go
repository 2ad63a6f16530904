package upload

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/claude/trainlog/internal/importer"
)

const validExport = `{
	"sport_types": [{"id": 1, "name": "Cycling", "subtypes": [{"id": 10, "name": "Road"}]}],
	"exercises": [{"date_time": "2025-05-01T09:00:00Z", "intensity": "normal", "sport_type_id": 1, "sport_subtype_id": 10}]
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// TestStateDBRoundTrip verifies sent-file tracking including change
// detection via size and hash.
func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer state.Close()

	sent, err := state.IsSent("export.json", 100, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent {
		t.Error("fresh state db reports file as sent")
	}

	if err := state.MarkSent("export.json", 100, "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent, err = state.IsSent("export.json", 100, "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sent {
		t.Error("marked file not reported as sent")
	}

	// A changed file must be sent again.
	sent, err = state.IsSent("export.json", 120, "def")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent {
		t.Error("changed file reported as sent")
	}
}

// TestUploaderSendsAndSkips verifies the full pipeline: a file is sent once,
// then skipped on the next run because the state db remembers it.
func TestUploaderSendsAndSkips(t *testing.T) {
	var ingests int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/ingest" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "secret" {
			t.Errorf("missing API key header")
		}
		ingests++
		json.NewEncoder(w).Encode(importer.Result{SportTypesUpserted: 1, ExercisesInserted: 1})
	}))
	defer ts.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "export.json"), []byte(validExport), 0o644); err != nil {
		t.Fatal(err)
	}

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer state.Close()

	client := NewClient(ts.URL, "secret")

	stats, err := New(client, state, dir, false, discardLogger()).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesSent != 1 || stats.ExercisesInserted != 1 {
		t.Errorf("stats = %+v, want 1 file sent, 1 exercise", stats)
	}

	stats, err = New(client, state, dir, false, discardLogger()).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesSkipped != 1 || stats.FilesSent != 0 {
		t.Errorf("stats = %+v, want 1 file skipped on second run", stats)
	}
	if ingests != 1 {
		t.Errorf("server saw %d ingests, want 1", ingests)
	}
}

// TestUploaderMalformedFile verifies that a file that does not parse is
// counted as errored and does not abort the run.
func TestUploaderMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "good.json"), []byte(validExport), 0o644); err != nil {
		t.Fatal(err)
	}

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer state.Close()

	stats, err := New(nil, state, dir, true, discardLogger()).Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesErrored != 1 {
		t.Errorf("errored = %d, want 1", stats.FilesErrored)
	}
	if stats.FilesSent != 1 {
		t.Errorf("sent = %d, want 1 (dry-run counts validated files)", stats.FilesSent)
	}
}

// TestClientRejectsBadKey verifies that an auth failure is not retried.
func TestClientRejectsBadKey(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "wrong")
	if _, err := client.SendPayload([]byte(`{}`)); err == nil {
		t.Fatal("expected error for rejected key")
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want 1 (no retry on 403)", calls)
	}
}
