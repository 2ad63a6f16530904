package logbook

import (
	"context"
	"fmt"
	"sync"

	"github.com/claude/trainlog/internal/entries"
	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests and ephemeral runs without a
// database. Load methods return fresh object graphs on every call, like the
// database layer does, so rebinding behaves the same against both.
type MemStore struct {
	mu         sync.Mutex
	sportTypes []*entries.SportType
	exercises  []*entries.Exercise
	notes      []*entries.Note
	weights    []*entries.Weight
	nextTypeID int64
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{nextTypeID: 1}
}

// Seed replaces the store content wholesale. Intended for test setup.
func (s *MemStore) Seed(types []*entries.SportType, exercises []*entries.Exercise, notes []*entries.Note, weights []*entries.Weight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sportTypes = types
	s.exercises = exercises
	s.notes = notes
	s.weights = weights
	for _, st := range types {
		if st.ID >= s.nextTypeID {
			s.nextTypeID = st.ID + 1
		}
	}
}

func (s *MemStore) LoadSportTypes(context.Context) (entries.SportTypeList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(entries.SportTypeList, 0, len(s.sportTypes))
	for _, st := range s.sportTypes {
		clone := &entries.SportType{ID: st.ID, Name: st.Name}
		for _, sub := range st.SubTypes {
			c := *sub
			clone.SubTypes = append(clone.SubTypes, &c)
		}
		for _, eq := range st.Equipment {
			c := *eq
			clone.Equipment = append(clone.Equipment, &c)
		}
		out = append(out, clone)
	}
	return out, nil
}

func (s *MemStore) LoadExercises(_ context.Context, types entries.SportTypeList) (entries.ExerciseList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(entries.ExerciseList, 0, len(s.exercises))
	for _, x := range s.exercises {
		clone := *x
		sportType := types.ByID(x.SportType.ID)
		if sportType == nil {
			return nil, fmt.Errorf("exercise %s references unknown sport type %d", x.ID, x.SportType.ID)
		}
		clone.SportType = sportType
		if clone.SportSubType = sportType.SubTypeByID(x.SportSubType.ID); clone.SportSubType == nil {
			return nil, fmt.Errorf("exercise %s references unknown subtype %d", x.ID, x.SportSubType.ID)
		}
		if x.Equipment != nil {
			if clone.Equipment = sportType.EquipmentByID(x.Equipment.ID); clone.Equipment == nil {
				return nil, fmt.Errorf("exercise %s references unknown equipment %d", x.ID, x.Equipment.ID)
			}
		}
		out = append(out, &clone)
	}
	return out, nil
}

func (s *MemStore) LoadNotes(context.Context) (entries.NoteList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(entries.NoteList, len(s.notes))
	for i, n := range s.notes {
		c := *n
		out[i] = &c
	}
	return out, nil
}

func (s *MemStore) LoadWeights(context.Context) (entries.WeightList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(entries.WeightList, len(s.weights))
	for i, w := range s.weights {
		c := *w
		out[i] = &c
	}
	return out, nil
}

func (s *MemStore) UpsertSportType(_ context.Context, sportType *entries.SportType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sportType.ID == 0 {
		sportType.ID = s.nextTypeID
		s.nextTypeID++
	} else if sportType.ID >= s.nextTypeID {
		s.nextTypeID = sportType.ID + 1
	}
	for i, st := range s.sportTypes {
		if st.ID == sportType.ID {
			s.sportTypes[i] = sportType
			return sportType.ID, nil
		}
	}
	s.sportTypes = append(s.sportTypes, sportType)
	return sportType.ID, nil
}

func (s *MemStore) DeleteSportType(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, st := range s.sportTypes {
		if st.ID == id {
			s.sportTypes = append(s.sportTypes[:i], s.sportTypes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("sport type %d does not exist", id)
}

func (s *MemStore) UpsertExercise(_ context.Context, x *entries.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *x
	for i, old := range s.exercises {
		if old.ID == x.ID {
			s.exercises[i] = &clone
			return nil
		}
	}
	s.exercises = append(s.exercises, &clone)
	return nil
}

func (s *MemStore) DeleteExercise(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, x := range s.exercises {
		if x.ID == id {
			s.exercises = append(s.exercises[:i], s.exercises[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("exercise %s does not exist", id)
}

func (s *MemStore) UpsertNote(_ context.Context, n *entries.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *n
	for i, old := range s.notes {
		if old.ID == n.ID {
			s.notes[i] = &clone
			return nil
		}
	}
	s.notes = append(s.notes, &clone)
	return nil
}

func (s *MemStore) DeleteNote(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notes {
		if n.ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("note %s does not exist", id)
}

func (s *MemStore) UpsertWeight(_ context.Context, w *entries.Weight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *w
	for i, old := range s.weights {
		if old.ID == w.ID {
			s.weights[i] = &clone
			return nil
		}
	}
	s.weights = append(s.weights, &clone)
	return nil
}

func (s *MemStore) DeleteWeight(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.weights {
		if w.ID == id {
			s.weights = append(s.weights[:i], s.weights[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("weight %s does not exist", id)
}

// Compile-time check: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)
