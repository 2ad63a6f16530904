package entries

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrReferenceNotFound is returned by RebindSportTypes when an exercise
// references an ID that is missing from the new sport type table. This means
// the reference data update upstream was inconsistent; the operation is not
// recoverable locally.
var ErrReferenceNotFound = errors.New("reference not found")

// Exercise is a single logged workout.
//
// SportType, SportSubType and Equipment point into the current reference
// table; the subtype and equipment always belong to the exercise's sport
// type. Equipment is optional.
type Exercise struct {
	ID       uuid.UUID `json:"id"`
	DateTime time.Time `json:"date_time"`
	Comment  string    `json:"comment"`

	Intensity    Intensity     `json:"intensity"`
	SportType    *SportType    `json:"sport_type"`
	SportSubType *SportSubType `json:"sport_subtype"`
	Equipment    *Equipment    `json:"equipment,omitempty"`

	DurationSec int     `json:"duration_sec"`
	DistanceKm  float64 `json:"distance_km"`
	AvgSpeedKmh float64 `json:"avg_speed_kmh"`
	Calories    int     `json:"calories"`
}

// ExerciseList holds all exercises of the diary in display order.
type ExerciseList []*Exercise

// RebindSportTypes repoints every exercise at the entries of newTypes with
// the same IDs. This is needed after the sport type table has been edited or
// reloaded: the table entries are new objects, and exercises still referencing
// the old ones must follow.
//
// Every sport type, subtype and equipment ID referenced by an exercise must
// exist in newTypes; a missing ID returns an error wrapping
// ErrReferenceNotFound and leaves the list partially rebound.
func (l ExerciseList) RebindSportTypes(newTypes SportTypeList) error {
	for _, x := range l {
		sportType := newTypes.ByID(x.SportType.ID)
		if sportType == nil {
			return fmt.Errorf("exercise %s: sport type %d: %w", x.ID, x.SportType.ID, ErrReferenceNotFound)
		}
		subType := sportType.SubTypeByID(x.SportSubType.ID)
		if subType == nil {
			return fmt.Errorf("exercise %s: subtype %d of sport type %d: %w",
				x.ID, x.SportSubType.ID, sportType.ID, ErrReferenceNotFound)
		}
		x.SportType = sportType
		x.SportSubType = subType

		if x.Equipment != nil {
			equipment := sportType.EquipmentByID(x.Equipment.ID)
			if equipment == nil {
				return fmt.Errorf("exercise %s: equipment %d of sport type %d: %w",
					x.ID, x.Equipment.ID, sportType.ID, ErrReferenceNotFound)
			}
			x.Equipment = equipment
		}
	}
	return nil
}

// Filter returns the exercises matching all criteria of f, in original
// order. The result aliases the original entries; it is not a copy. When f
// targets a different entry kind the list itself is returned unchanged.
//
// A malformed regular expression in the comment pattern fails the whole
// operation; no partial result is returned.
func (l ExerciseList) Filter(f EntryFilter) (ExerciseList, error) {
	if f.Kind != KindExercise {
		return l, nil
	}

	matchComment, err := f.commentMatcher()
	if err != nil {
		return nil, err
	}

	found := make(ExerciseList, 0)
	for _, x := range l {
		if matchesExercise(x, f, matchComment) {
			found = append(found, x)
		}
	}
	return found, nil
}

func matchesExercise(x *Exercise, f EntryFilter, matchComment func(string) bool) bool {
	if !f.matchesBase(x.DateTime, x.Comment, matchComment) {
		return false
	}
	if f.SportType != nil && x.SportType.ID != f.SportType.ID {
		return false
	}
	if f.SportSubType != nil && x.SportSubType.ID != f.SportSubType.ID {
		return false
	}
	if f.Intensity != nil && x.Intensity != *f.Intensity {
		return false
	}
	// An equipment criterion excludes exercises without equipment.
	if f.Equipment != nil && (x.Equipment == nil || x.Equipment.ID != f.Equipment.ID) {
		return false
	}
	return true
}
