package entries

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-text diary entry not tied to a workout.
type Note struct {
	ID       uuid.UUID `json:"id"`
	DateTime time.Time `json:"date_time"`
	Comment  string    `json:"comment"`
}

// NoteList holds all notes in display order.
type NoteList []*Note

// Filter returns the notes matching the date range and comment criteria of
// f, in original order. When f targets a different entry kind the list
// itself is returned unchanged.
func (l NoteList) Filter(f EntryFilter) (NoteList, error) {
	if f.Kind != KindNote {
		return l, nil
	}

	matchComment, err := f.commentMatcher()
	if err != nil {
		return nil, err
	}

	found := make(NoteList, 0)
	for _, n := range l {
		if f.matchesBase(n.DateTime, n.Comment, matchComment) {
			found = append(found, n)
		}
	}
	return found, nil
}
