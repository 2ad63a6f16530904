package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claude/trainlog/internal/entries"
)

// Diary is the logbook surface the importer writes through. *logbook.Logbook
// satisfies it.
type Diary interface {
	UpsertSportType(ctx context.Context, sportType *entries.SportType) (int64, error)
	AddExercise(ctx context.Context, exercise *entries.Exercise) error
	AddNote(ctx context.Context, note *entries.Note) error
	AddWeight(ctx context.Context, weight *entries.Weight) error
}

// Result reports what an import inserted.
type Result struct {
	SportTypesUpserted int `json:"sport_types_upserted"`
	ExercisesInserted  int `json:"exercises_inserted"`
	NotesInserted      int `json:"notes_inserted"`
	WeightsInserted    int `json:"weights_inserted"`
}

// Importer applies diary export payloads to the logbook.
type Importer struct {
	diary Diary
	log   *slog.Logger
}

// New creates an Importer.
func New(diary Diary, log *slog.Logger) *Importer {
	return &Importer{diary: diary, log: log}
}

// Ingest applies a payload: sport types first so entries can reference
// them, then exercises, notes and weights. The first invalid entry aborts
// the import; the result reports what was inserted up to that point.
func (imp *Importer) Ingest(ctx context.Context, payload *Payload) (*Result, error) {
	result := &Result{}

	for _, st := range payload.SportTypes {
		sportType := &entries.SportType{ID: st.ID, Name: st.Name}
		for _, sub := range st.SubTypes {
			sportType.SubTypes = append(sportType.SubTypes,
				&entries.SportSubType{ID: sub.ID, Name: sub.Name})
		}
		for _, eq := range st.Equipment {
			sportType.Equipment = append(sportType.Equipment,
				&entries.Equipment{ID: eq.ID, Name: eq.Name, NotInUse: eq.NotInUse})
		}
		if _, err := imp.diary.UpsertSportType(ctx, sportType); err != nil {
			return result, fmt.Errorf("sport type %q: %w", st.Name, err)
		}
		result.SportTypesUpserted++
	}

	for i, xp := range payload.Exercises {
		exercise, err := xp.Exercise()
		if err != nil {
			return result, fmt.Errorf("exercise %d: %w", i, err)
		}
		if err := imp.diary.AddExercise(ctx, exercise); err != nil {
			return result, fmt.Errorf("exercise %d: %w", i, err)
		}
		result.ExercisesInserted++
	}

	for i, np := range payload.Notes {
		note := &entries.Note{ID: np.ID, DateTime: np.DateTime, Comment: np.Comment}
		if err := imp.diary.AddNote(ctx, note); err != nil {
			return result, fmt.Errorf("note %d: %w", i, err)
		}
		result.NotesInserted++
	}

	for i, wp := range payload.Weights {
		weight := &entries.Weight{ID: wp.ID, DateTime: wp.DateTime, Comment: wp.Comment, ValueKg: wp.ValueKg}
		if err := imp.diary.AddWeight(ctx, weight); err != nil {
			return result, fmt.Errorf("weight %d: %w", i, err)
		}
		result.WeightsInserted++
	}

	imp.log.Info("import applied",
		"sport_types", result.SportTypesUpserted,
		"exercises", result.ExercisesInserted,
		"notes", result.NotesInserted,
		"weights", result.WeightsInserted,
	)
	return result, nil
}
