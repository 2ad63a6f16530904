package mcp

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/trainlog/internal/entries"
	"github.com/claude/trainlog/internal/logbook"
	"github.com/google/uuid"
)

func testSource(t *testing.T) LocalSource {
	t.Helper()
	cycling := &entries.SportType{
		ID:   1,
		Name: "Cycling",
		SubTypes: []*entries.SportSubType{
			{ID: 10, Name: "Road"},
		},
	}
	store := logbook.NewMemStore()
	store.Seed(
		[]*entries.SportType{cycling},
		[]*entries.Exercise{
			{
				ID:           uuid.New(),
				DateTime:     time.Now().AddDate(0, 0, -2),
				Comment:      "Morning ride",
				Intensity:    entries.IntensityNormal,
				SportType:    cycling,
				SportSubType: cycling.SubTypes[0],
			},
			{
				ID:           uuid.New(),
				DateTime:     time.Now().AddDate(0, -2, 0),
				Comment:      "Old ride",
				Intensity:    entries.IntensityLow,
				SportType:    cycling,
				SportSubType: cycling.SubTypes[0],
			},
		},
		nil, nil,
	)
	book, err := logbook.Open(context.Background(), store, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("opening logbook: %v", err)
	}
	return LocalSource{Book: book}
}

// TestTimeRange verifies optional date parsing: absent values stay zero
// (unbounded), both date-only and RFC3339 formats are accepted.
func TestTimeRange(t *testing.T) {
	start, end, err := timeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.IsZero() || !end.IsZero() {
		t.Error("absent dates should stay zero")
	}

	start, end, err = timeRange("2025-01-01", "2025-01-31T18:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2025 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2025-01-01", start)
	}
	if end.Hour() != 18 {
		t.Errorf("end = %v, want 18:00", end)
	}

	if _, _, err = timeRange("not-a-date", ""); err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestLocalSourceSearchExercises verifies that the local source forces the
// exercise kind and applies the given criteria.
func TestLocalSourceSearchExercises(t *testing.T) {
	src := testSource(t)

	// Kind is set by the source, callers only supply criteria.
	all, err := src.SearchExercises(context.Background(), entries.EntryFilter{Kind: entries.KindNote})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d exercises, want 2", len(all))
	}

	recent, err := src.SearchExercises(context.Background(), entries.EntryFilter{
		Start: time.Now().AddDate(0, 0, -14),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("got %d recent exercises, want 1", len(recent))
	}
	if recent[0].Comment != "Morning ride" {
		t.Errorf("comment = %q, want %q", recent[0].Comment, "Morning ride")
	}
}

// TestLocalSourceBadPattern verifies that a malformed regular expression
// surfaces as an error instead of an empty result.
func TestLocalSourceBadPattern(t *testing.T) {
	src := testSource(t)
	_, err := src.SearchExercises(context.Background(), entries.EntryFilter{
		CommentPattern: "[unclosed",
		RegexMode:      true,
	})
	if err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}
