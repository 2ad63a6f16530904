package upload

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/trainlog/internal/importer"
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal   int
	FilesSent    int
	FilesSkipped int
	FilesErrored int

	SportTypesUpserted int
	ExercisesInserted  int
	NotesInserted      int
	WeightsInserted    int
}

// Uploader walks a directory of diary export files, validates each payload,
// and POSTs them to the TrainLog server. Files that were already sent
// unchanged (tracked by path, size and hash) are skipped.
type Uploader struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader. client may be nil in dry-run mode.
func New(client *Client, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		dir:    dir,
		dryRun: dryRun,
		log:    log,
	}
}

// Run executes the upload pipeline. Files are processed in name order, so
// an export split across files can put its sport types in the first one.
// Malformed files are counted and skipped; a server error aborts the run.
func (u *Uploader) Run() (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(u.dir, "*.json"))
	if err != nil {
		return &u.stats, fmt.Errorf("scanning %s: %w", u.dir, err)
	}

	for _, f := range files {
		u.stats.FilesTotal++

		relPath, _ := filepath.Rel(u.dir, f)
		info, err := os.Stat(f)
		if err != nil {
			u.log.Warn("stat failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		hash, err := HashFile(f)
		if err != nil {
			u.log.Warn("hash failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		sent, err := u.state.IsSent(relPath, info.Size(), hash)
		if err != nil {
			u.log.Warn("state check failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}
		if sent {
			u.stats.FilesSkipped++
			continue
		}

		data, err := os.ReadFile(f)
		if err != nil {
			u.log.Warn("read failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		// Validate locally before sending.
		var payload importer.Payload
		if err := json.Unmarshal(data, &payload); err != nil {
			u.log.Warn("parse failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		if u.dryRun {
			u.log.Info("dry-run: would send",
				"file", relPath,
				"sport_types", len(payload.SportTypes),
				"exercises", len(payload.Exercises),
				"notes", len(payload.Notes),
				"weights", len(payload.Weights),
			)
			u.stats.FilesSent++
			continue
		}

		result, err := u.client.SendPayload(data)
		if err != nil {
			return &u.stats, fmt.Errorf("sending %s: %w", relPath, err)
		}

		u.stats.SportTypesUpserted += result.SportTypesUpserted
		u.stats.ExercisesInserted += result.ExercisesInserted
		u.stats.NotesInserted += result.NotesInserted
		u.stats.WeightsInserted += result.WeightsInserted

		if err := u.state.MarkSent(relPath, info.Size(), hash); err != nil {
			u.log.Warn("failed to mark sent", "file", relPath, "error", err)
		}
		u.stats.FilesSent++

		u.log.Info("sent export file",
			"file", relPath,
			"exercises", result.ExercisesInserted,
			"notes", result.NotesInserted,
			"weights", result.WeightsInserted,
		)
	}

	return &u.stats, nil
}
