package logbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/claude/trainlog/internal/entries"
	"github.com/google/uuid"
)

// ErrSportTypeInUse is returned when deleting a sport type that is still
// referenced by at least one exercise.
var ErrSportTypeInUse = errors.New("sport type is in use")

// ErrNotFound is returned when an entry or sport type ID does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence collaborator behind the logbook. *storage.DB
// satisfies it; tests use an in-memory fake.
type Store interface {
	LoadSportTypes(ctx context.Context) (entries.SportTypeList, error)
	LoadExercises(ctx context.Context, types entries.SportTypeList) (entries.ExerciseList, error)
	LoadNotes(ctx context.Context) (entries.NoteList, error)
	LoadWeights(ctx context.Context) (entries.WeightList, error)

	UpsertSportType(ctx context.Context, sportType *entries.SportType) (int64, error)
	DeleteSportType(ctx context.Context, id int64) error

	UpsertExercise(ctx context.Context, exercise *entries.Exercise) error
	DeleteExercise(ctx context.Context, id uuid.UUID) error
	UpsertNote(ctx context.Context, note *entries.Note) error
	DeleteNote(ctx context.Context, id uuid.UUID) error
	UpsertWeight(ctx context.Context, weight *entries.Weight) error
	DeleteWeight(ctx context.Context, id uuid.UUID) error
}

// Logbook is the in-memory training diary: all entry lists plus the current
// sport type reference table. Mutations write through to the Store and keep
// the in-memory state consistent; reference-data edits trigger rebinding of
// the exercise list onto the freshly loaded table.
//
// All exported methods are safe for concurrent use. The entry lists handed
// out by query methods alias the live entries; callers treat them as
// read-only snapshots.
type Logbook struct {
	store Store
	log   *slog.Logger

	mu         sync.RWMutex
	sportTypes entries.SportTypeList
	exercises  entries.ExerciseList
	notes      entries.NoteList
	weights    entries.WeightList
}

// Open loads the full diary from the store.
func Open(ctx context.Context, store Store, log *slog.Logger) (*Logbook, error) {
	types, err := store.LoadSportTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading sport types: %w", err)
	}
	exercises, err := store.LoadExercises(ctx, types)
	if err != nil {
		return nil, fmt.Errorf("loading exercises: %w", err)
	}
	notes, err := store.LoadNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading notes: %w", err)
	}
	weights, err := store.LoadWeights(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading weights: %w", err)
	}

	log.Info("logbook loaded",
		"sport_types", len(types),
		"exercises", len(exercises),
		"notes", len(notes),
		"weights", len(weights),
	)
	return &Logbook{
		store:      store,
		log:        log,
		sportTypes: types,
		exercises:  exercises,
		notes:      notes,
		weights:    weights,
	}, nil
}

// SportTypes returns the current reference table.
func (b *Logbook) SportTypes() entries.SportTypeList {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(entries.SportTypeList, len(b.sportTypes))
	copy(out, b.sportTypes)
	return out
}

// SportTypeByID resolves a sport type against the current table, or nil.
func (b *Logbook) SportTypeByID(id int64) *entries.SportType {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sportTypes.ByID(id)
}

// Exercises returns the exercises matching the filter, in diary order.
func (b *Logbook) Exercises(f entries.EntryFilter) (entries.ExerciseList, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.exercises.Filter(f)
}

// Notes returns the notes matching the filter's base criteria.
func (b *Logbook) Notes(f entries.EntryFilter) (entries.NoteList, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.notes.Filter(f)
}

// Weights returns the weight entries matching the filter's base criteria.
func (b *Logbook) Weights(f entries.EntryFilter) (entries.WeightList, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.weights.Filter(f)
}

// ExerciseByID returns the exercise with the given ID.
func (b *Logbook) ExerciseByID(id uuid.UUID) (*entries.Exercise, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, x := range b.exercises {
		if x.ID == id {
			return x, nil
		}
	}
	return nil, fmt.Errorf("exercise %s: %w", id, ErrNotFound)
}

// UpsertSportType persists the sport type, reloads the reference table and
// rebinds all exercises onto the fresh object graph. The returned ID is the
// stored one (assigned by the store for new types). An edit that would
// remove a subtype or equipment still referenced by an exercise is rejected
// with entries.ErrReferenceNotFound before anything is written.
func (b *Logbook) UpsertSportType(ctx context.Context, sportType *entries.SportType) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkEditKeepsReferencesLocked(sportType); err != nil {
		return 0, err
	}
	id, err := b.store.UpsertSportType(ctx, sportType)
	if err != nil {
		return 0, err
	}
	if err := b.reloadSportTypesLocked(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteSportType removes an unused sport type and reloads the table.
func (b *Logbook) DeleteSportType(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sportTypes.ByID(id) == nil {
		return fmt.Errorf("sport type %d: %w", id, ErrNotFound)
	}
	for _, x := range b.exercises {
		if x.SportType.ID == id {
			return fmt.Errorf("sport type %d: %w", id, ErrSportTypeInUse)
		}
	}
	if err := b.store.DeleteSportType(ctx, id); err != nil {
		return err
	}
	return b.reloadSportTypesLocked(ctx)
}

// checkEditKeepsReferencesLocked rejects a sport type edit that would strand
// an exercise: every subtype and equipment referenced under the edited sport
// type must survive the edit. Checked before the store write so a rejected
// edit has no side effects.
func (b *Logbook) checkEditKeepsReferencesLocked(sportType *entries.SportType) error {
	for _, x := range b.exercises {
		if x.SportType.ID != sportType.ID {
			continue
		}
		if sportType.SubTypeByID(x.SportSubType.ID) == nil {
			return fmt.Errorf("exercise %s still references subtype %d: %w",
				x.ID, x.SportSubType.ID, entries.ErrReferenceNotFound)
		}
		if x.Equipment != nil && sportType.EquipmentByID(x.Equipment.ID) == nil {
			return fmt.Errorf("exercise %s still references equipment %d: %w",
				x.ID, x.Equipment.ID, entries.ErrReferenceNotFound)
		}
	}
	return nil
}

// reloadSportTypesLocked fetches a fresh reference table and rebinds the
// exercise list onto it. Destructive edits are rejected up front, so a
// rebinding failure here means the store changed underneath us; the
// in-memory state is reloaded from the store in that case to stay
// consistent with it.
func (b *Logbook) reloadSportTypesLocked(ctx context.Context) error {
	newTypes, err := b.store.LoadSportTypes(ctx)
	if err != nil {
		return fmt.Errorf("reloading sport types: %w", err)
	}
	if err := b.exercises.RebindSportTypes(newTypes); err != nil {
		b.log.Error("rebinding after sport type edit failed", "error", err)
		exercises, loadErr := b.store.LoadExercises(ctx, newTypes)
		if loadErr != nil {
			return errors.Join(err, loadErr)
		}
		b.sportTypes = newTypes
		b.exercises = exercises
		return err
	}
	b.sportTypes = newTypes
	return nil
}

// AddExercise resolves the exercise's references against the current sport
// type table, persists it and appends it to the diary. A reference to an
// unknown sport type, subtype or equipment ID fails with
// entries.ErrReferenceNotFound.
func (b *Logbook) AddExercise(ctx context.Context, exercise *entries.Exercise) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}
	// Re-point at the canonical table objects so the ownership invariant
	// holds regardless of what the caller passed in.
	if err := (entries.ExerciseList{exercise}).RebindSportTypes(b.sportTypes); err != nil {
		return err
	}
	if err := b.store.UpsertExercise(ctx, exercise); err != nil {
		return err
	}
	// An existing ID is an update, as happens when an export is re-imported.
	for i, x := range b.exercises {
		if x.ID == exercise.ID {
			b.exercises[i] = exercise
			return nil
		}
	}
	b.exercises = append(b.exercises, exercise)
	return nil
}

// DeleteExercise removes an exercise from the store and the diary.
func (b *Logbook) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, x := range b.exercises {
		if x.ID == id {
			if err := b.store.DeleteExercise(ctx, id); err != nil {
				return err
			}
			b.exercises = append(b.exercises[:i], b.exercises[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("exercise %s: %w", id, ErrNotFound)
}

// AddNote persists and appends a note.
func (b *Logbook) AddNote(ctx context.Context, note *entries.Note) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if err := b.store.UpsertNote(ctx, note); err != nil {
		return err
	}
	for i, n := range b.notes {
		if n.ID == note.ID {
			b.notes[i] = note
			return nil
		}
	}
	b.notes = append(b.notes, note)
	return nil
}

// AddWeight persists and appends a weight entry.
func (b *Logbook) AddWeight(ctx context.Context, weight *entries.Weight) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if weight.ID == uuid.Nil {
		weight.ID = uuid.New()
	}
	if err := b.store.UpsertWeight(ctx, weight); err != nil {
		return err
	}
	for i, w := range b.weights {
		if w.ID == weight.ID {
			b.weights[i] = weight
			return nil
		}
	}
	b.weights = append(b.weights, weight)
	return nil
}

// DeleteNote removes a note from the store and the diary.
func (b *Logbook) DeleteNote(ctx context.Context, id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, n := range b.notes {
		if n.ID == id {
			if err := b.store.DeleteNote(ctx, id); err != nil {
				return err
			}
			b.notes = append(b.notes[:i], b.notes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("note %s: %w", id, ErrNotFound)
}

// DeleteWeight removes a weight entry from the store and the diary.
func (b *Logbook) DeleteWeight(ctx context.Context, id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, w := range b.weights {
		if w.ID == id {
			if err := b.store.DeleteWeight(ctx, id); err != nil {
				return err
			}
			b.weights = append(b.weights[:i], b.weights[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("weight %s: %w", id, ErrNotFound)
}

// Refresh discards the in-memory state and reloads everything from the
// store. Used after bulk imports that bypass the logbook's write path.
func (b *Logbook) Refresh(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	types, err := b.store.LoadSportTypes(ctx)
	if err != nil {
		return fmt.Errorf("reloading sport types: %w", err)
	}
	exercises, err := b.store.LoadExercises(ctx, types)
	if err != nil {
		return fmt.Errorf("reloading exercises: %w", err)
	}
	notes, err := b.store.LoadNotes(ctx)
	if err != nil {
		return fmt.Errorf("reloading notes: %w", err)
	}
	weights, err := b.store.LoadWeights(ctx)
	if err != nil {
		return fmt.Errorf("reloading weights: %w", err)
	}
	b.sportTypes, b.exercises, b.notes, b.weights = types, exercises, notes, weights
	return nil
}
