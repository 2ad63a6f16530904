package entries

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func testNotes() NoteList {
	return NoteList{
		{ID: uuid.New(), DateTime: time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC), Comment: "New training block starts"},
		{ID: uuid.New(), DateTime: time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC), Comment: "Rest week"},
	}
}

// TestNoteFilterBase verifies that notes are filtered by the shared base
// criteria (date range and comment) only.
func TestNoteFilterBase(t *testing.T) {
	notes := testNotes()

	got, err := notes.Filter(EntryFilter{Kind: KindNote, CommentPattern: "rest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Comment != "Rest week" {
		t.Errorf("got %d notes, want the rest week note", len(got))
	}

	got, err = notes.Filter(EntryFilter{
		Kind: KindNote,
		End:  time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Comment != "New training block starts" {
		t.Errorf("date range filter failed, got %d notes", len(got))
	}
}

// TestNoteFilterPassThrough verifies the symmetric pass-through on entry
// kind for note lists.
func TestNoteFilterPassThrough(t *testing.T) {
	notes := testNotes()

	got, err := notes.Filter(EntryFilter{Kind: KindExercise})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(notes) || &got[0] != &notes[0] {
		t.Error("pass-through must return the same list, not a copy")
	}
}

// TestWeightFilterBase verifies base filtering and pass-through for weight
// entries.
func TestWeightFilterBase(t *testing.T) {
	weights := WeightList{
		{ID: uuid.New(), DateTime: time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC), ValueKg: 81.2},
		{ID: uuid.New(), DateTime: time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC), ValueKg: 79.4, Comment: "after race season"},
	}

	got, err := weights.Filter(EntryFilter{Kind: KindWeight, CommentPattern: "race"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ValueKg != 79.4 {
		t.Errorf("comment filter failed, got %d weights", len(got))
	}

	passthrough, err := weights.Filter(EntryFilter{Kind: KindNote})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if &passthrough[0] != &weights[0] {
		t.Error("pass-through must return the same list")
	}
}

// TestParseIntensity verifies round-tripping of intensity names used by the
// HTTP query parameters and JSON encoding.
func TestParseIntensity(t *testing.T) {
	for i := IntensityMinimum; i <= IntensityIntervals; i++ {
		got, err := ParseIntensity(i.String())
		if err != nil {
			t.Fatalf("ParseIntensity(%q): %v", i.String(), err)
		}
		if got != i {
			t.Errorf("ParseIntensity(%q) = %v, want %v", i.String(), got, i)
		}
	}
	if _, err := ParseIntensity("brutal"); err == nil {
		t.Error("expected error for unknown intensity")
	}
	if got := Intensity(99).String(); got != "intensity(99)" {
		t.Errorf("out-of-range String() = %q, want %q", got, "intensity(99)")
	}
}

// TestEntryKindString verifies the kind names and the out-of-range fallback.
func TestEntryKindString(t *testing.T) {
	if got := KindWeight.String(); got != "weight" {
		t.Errorf("KindWeight.String() = %q, want %q", got, "weight")
	}
	if got := EntryKind(7).String(); got != "entrykind(7)" {
		t.Errorf("out-of-range String() = %q, want %q", got, "entrykind(7)")
	}
}

// TestIntensityJSON verifies the custom JSON representation.
func TestIntensityJSON(t *testing.T) {
	data, err := IntensityHigh.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"high"` {
		t.Errorf("marshal = %s, want %q", data, `"high"`)
	}

	var i Intensity
	if err := i.UnmarshalJSON([]byte(`"intervals"`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if i != IntensityIntervals {
		t.Errorf("unmarshal = %v, want intervals", i)
	}
	if err := i.UnmarshalJSON([]byte(`3`)); err == nil {
		t.Error("expected error for non-string intensity")
	}
}
