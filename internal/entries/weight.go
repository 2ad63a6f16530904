package entries

import (
	"time"

	"github.com/google/uuid"
)

// Weight is a logged body weight measurement.
type Weight struct {
	ID       uuid.UUID `json:"id"`
	DateTime time.Time `json:"date_time"`
	Comment  string    `json:"comment"`
	ValueKg  float64   `json:"value_kg"`
}

// WeightList holds all weight entries in display order.
type WeightList []*Weight

// Filter returns the weight entries matching the date range and comment
// criteria of f, in original order. When f targets a different entry kind
// the list itself is returned unchanged.
func (l WeightList) Filter(f EntryFilter) (WeightList, error) {
	if f.Kind != KindWeight {
		return l, nil
	}

	matchComment, err := f.commentMatcher()
	if err != nil {
		return nil, err
	}

	found := make(WeightList, 0)
	for _, w := range l {
		if f.matchesBase(w.DateTime, w.Comment, matchComment) {
			found = append(found, w)
		}
	}
	return found, nil
}
