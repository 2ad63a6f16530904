package mcp

import (
	"context"

	"github.com/claude/trainlog/internal/entries"
	"github.com/claude/trainlog/internal/logbook"
	"github.com/google/uuid"
)

// DataSource abstracts the diary for MCP tools. LocalSource (in-process
// logbook) and HTTPClient (remote via REST API) both satisfy this interface.
type DataSource interface {
	SportTypes(ctx context.Context) (entries.SportTypeList, error)
	SearchExercises(ctx context.Context, f entries.EntryFilter) (entries.ExerciseList, error)
	GetExercise(ctx context.Context, id uuid.UUID) (*entries.Exercise, error)
	SearchNotes(ctx context.Context, f entries.EntryFilter) (entries.NoteList, error)
	WeightHistory(ctx context.Context, f entries.EntryFilter) (entries.WeightList, error)
}

// LocalSource adapts an in-process logbook to DataSource. The logbook's read
// API is synchronous, so the context is unused.
type LocalSource struct {
	Book *logbook.Logbook
}

// Compile-time check: LocalSource satisfies DataSource.
var _ DataSource = LocalSource{}

func (s LocalSource) SportTypes(context.Context) (entries.SportTypeList, error) {
	return s.Book.SportTypes(), nil
}

func (s LocalSource) SearchExercises(_ context.Context, f entries.EntryFilter) (entries.ExerciseList, error) {
	f.Kind = entries.KindExercise
	return s.Book.Exercises(f)
}

func (s LocalSource) GetExercise(_ context.Context, id uuid.UUID) (*entries.Exercise, error) {
	return s.Book.ExerciseByID(id)
}

func (s LocalSource) SearchNotes(_ context.Context, f entries.EntryFilter) (entries.NoteList, error) {
	f.Kind = entries.KindNote
	return s.Book.Notes(f)
}

func (s LocalSource) WeightHistory(_ context.Context, f entries.EntryFilter) (entries.WeightList, error) {
	f.Kind = entries.KindWeight
	return s.Book.Weights(f)
}
