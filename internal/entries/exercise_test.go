package entries

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// testSportTypes builds a small reference table: cycling (subtypes road/MTB,
// one bike as equipment) and running (subtype trail, no equipment).
func testSportTypes() SportTypeList {
	return SportTypeList{
		{
			ID:   1,
			Name: "Cycling",
			SubTypes: []*SportSubType{
				{ID: 10, Name: "Road"},
				{ID: 11, Name: "MTB"},
			},
			Equipment: []*Equipment{
				{ID: 100, Name: "Cannondale R800"},
			},
		},
		{
			ID:   2,
			Name: "Running",
			SubTypes: []*SportSubType{
				{ID: 20, Name: "Trail"},
			},
		},
	}
}

func testExercises(types SportTypeList) ExerciseList {
	cycling := types.ByID(1)
	running := types.ByID(2)
	return ExerciseList{
		{
			ID:           uuid.MustParse("00000000-0000-0000-0000-000000000001"),
			DateTime:     time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			Comment:      "Easy spin around the lake",
			Intensity:    IntensityLow,
			SportType:    cycling,
			SportSubType: cycling.SubTypeByID(10),
			Equipment:    cycling.EquipmentByID(100),
		},
		{
			ID:           uuid.MustParse("00000000-0000-0000-0000-000000000002"),
			DateTime:     time.Date(2025, 3, 12, 18, 30, 0, 0, time.UTC),
			Comment:      "Hill repeats, felt strong",
			Intensity:    IntensityHigh,
			SportType:    running,
			SportSubType: running.SubTypeByID(20),
		},
	}
}

// TestRebindSportTypes verifies that after rebinding, every exercise points
// into the new reference table exclusively while all IDs are preserved.
func TestRebindSportTypes(t *testing.T) {
	oldTypes := testSportTypes()
	exercises := testExercises(oldTypes)

	newTypes := testSportTypes() // same IDs, fresh objects
	if err := exercises.RebindSportTypes(newTypes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, x := range exercises {
		want := newTypes.ByID(x.SportType.ID)
		if x.SportType != want {
			t.Errorf("exercise %s: sport type not rebound to new table", x.ID)
		}
		if x.SportSubType != want.SubTypeByID(x.SportSubType.ID) {
			t.Errorf("exercise %s: subtype not owned by new sport type", x.ID)
		}
		if x.Equipment != nil && x.Equipment != want.EquipmentByID(x.Equipment.ID) {
			t.Errorf("exercise %s: equipment not owned by new sport type", x.ID)
		}
	}
	if exercises[0].SportType == oldTypes.ByID(1) {
		t.Error("exercise still references the old object graph")
	}
}

// TestRebindSportTypesPreservesIDs verifies identifier stability across the
// object-identity replacement.
func TestRebindSportTypesPreservesIDs(t *testing.T) {
	types := testSportTypes()
	exercises := testExercises(types)

	if err := exercises.RebindSportTypes(testSportTypes()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := exercises[0].SportType.ID; got != 1 {
		t.Errorf("sport type ID = %d, want 1", got)
	}
	if got := exercises[0].SportSubType.ID; got != 10 {
		t.Errorf("subtype ID = %d, want 10", got)
	}
	if got := exercises[0].Equipment.ID; got != 100 {
		t.Errorf("equipment ID = %d, want 100", got)
	}
}

// TestRebindSportTypesMissingReference verifies that a lookup miss is fatal
// and reported via ErrReferenceNotFound.
func TestRebindSportTypesMissingReference(t *testing.T) {
	types := testSportTypes()
	exercises := testExercises(types)

	incomplete := SportTypeList{testSportTypes().ByID(2)} // cycling missing
	err := exercises.RebindSportTypes(incomplete)
	if !errors.Is(err, ErrReferenceNotFound) {
		t.Fatalf("err = %v, want ErrReferenceNotFound", err)
	}
}

// TestRebindSportTypesMissingEquipment verifies that a missing equipment ID
// inside an otherwise complete sport type is also a fatal lookup miss.
func TestRebindSportTypesMissingEquipment(t *testing.T) {
	types := testSportTypes()
	exercises := testExercises(types)

	newTypes := testSportTypes()
	newTypes.ByID(1).Equipment = nil
	err := exercises.RebindSportTypes(newTypes)
	if !errors.Is(err, ErrReferenceNotFound) {
		t.Fatalf("err = %v, want ErrReferenceNotFound", err)
	}
}

// TestFilterEmpty verifies that an all-empty exercise filter returns every
// exercise with original order preserved.
func TestFilterEmpty(t *testing.T) {
	types := testSportTypes()
	exercises := testExercises(types)

	got, err := exercises.Filter(EntryFilter{Kind: KindExercise})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(exercises) {
		t.Fatalf("got %d exercises, want %d", len(got), len(exercises))
	}
	for i := range got {
		if got[i] != exercises[i] {
			t.Errorf("result[%d] is not an alias of the original entry", i)
		}
	}
}

// TestFilterPassThrough verifies that a filter targeting another entry kind
// returns the original list value unchanged, not a copy.
func TestFilterPassThrough(t *testing.T) {
	types := testSportTypes()
	exercises := testExercises(types)

	got, err := exercises.Filter(EntryFilter{Kind: KindNote})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(exercises) || &got[0] != &exercises[0] {
		t.Error("pass-through must return the same list, not a copy")
	}
}

// TestFilterCriteria walks the criteria matrix from the exercise filter:
// sport type, subtype, intensity, equipment, and their combinations.
func TestFilterCriteria(t *testing.T) {
	types := testSportTypes()
	exercises := testExercises(types)
	cycling := types.ByID(1)
	running := types.ByID(2)
	high := IntensityHigh

	tests := []struct {
		name    string
		filter  EntryFilter
		wantIDs []string
	}{
		{
			name:    "by sport type",
			filter:  EntryFilter{SportType: cycling},
			wantIDs: []string{"00000000-0000-0000-0000-000000000001"},
		},
		{
			name:    "by subtype",
			filter:  EntryFilter{SportSubType: running.SubTypeByID(20)},
			wantIDs: []string{"00000000-0000-0000-0000-000000000002"},
		},
		{
			name:    "by intensity",
			filter:  EntryFilter{Intensity: &high},
			wantIDs: []string{"00000000-0000-0000-0000-000000000002"},
		},
		{
			name:    "by equipment",
			filter:  EntryFilter{Equipment: cycling.EquipmentByID(100)},
			wantIDs: []string{"00000000-0000-0000-0000-000000000001"},
		},
		{
			// Criteria are ANDed: no exercise is both cycling and high intensity.
			name:    "sport type and intensity",
			filter:  EntryFilter{SportType: cycling, Intensity: &high},
			wantIDs: []string{},
		},
		{
			name:    "by date range",
			filter:  EntryFilter{Start: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)},
			wantIDs: []string{"00000000-0000-0000-0000-000000000002"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exercises.Filter(tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d exercises, want %d", len(got), len(tt.wantIDs))
			}
			for i, x := range got {
				if x.ID.String() != tt.wantIDs[i] {
					t.Errorf("result[%d].ID = %s, want %s", i, x.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

// TestFilterEquipmentExcludesUnset verifies that an equipment criterion
// excludes exercises that have no equipment at all, even when everything
// else matches.
func TestFilterEquipmentExcludesUnset(t *testing.T) {
	types := testSportTypes()
	exercises := testExercises(types)

	got, err := exercises.Filter(EntryFilter{
		Equipment: types.ByID(1).EquipmentByID(100),
		SportType: types.ByID(2), // running entry has no equipment
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d exercises, want 0", len(got))
	}
}

// TestFilterCommentSubstring verifies the default comment mode: substring,
// case-insensitive.
func TestFilterCommentSubstring(t *testing.T) {
	types := testSportTypes()
	exercises := testExercises(types)

	got, err := exercises.Filter(EntryFilter{CommentPattern: "HILL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Comment != "Hill repeats, felt strong" {
		t.Errorf("substring match failed, got %d entries", len(got))
	}
}

// TestFilterCommentRegex verifies regex mode, including its case
// sensitivity: "hill" must not match "Hill repeats".
func TestFilterCommentRegex(t *testing.T) {
	types := testSportTypes()
	exercises := testExercises(types)

	got, err := exercises.Filter(EntryFilter{CommentPattern: `^hill`, RegexMode: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("regex mode must be case-sensitive, got %d entries", len(got))
	}

	got, err = exercises.Filter(EntryFilter{CommentPattern: `^Hill re\w+`, RegexMode: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d entries, want 1", len(got))
	}
}

// TestFilterBadRegex verifies that a malformed regular expression fails the
// whole operation with no partial result.
func TestFilterBadRegex(t *testing.T) {
	types := testSportTypes()
	exercises := testExercises(types)

	got, err := exercises.Filter(EntryFilter{CommentPattern: `([unclosed`, RegexMode: true})
	if err == nil {
		t.Fatal("expected error for malformed regex")
	}
	if got != nil {
		t.Error("no result collection may be returned on pattern error")
	}
}
