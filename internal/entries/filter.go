package entries

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// EntryKind selects which entry list a filter targets. Filters applied to a
// list of a different kind are a no-op (the list is returned unchanged).
type EntryKind int

const (
	KindExercise EntryKind = iota
	KindNote
	KindWeight
)

var entryKindNames = [...]string{"exercise", "note", "weight"}

func (k EntryKind) String() string {
	if k < 0 || int(k) >= len(entryKindNames) {
		return fmt.Sprintf("entrykind(%d)", int(k))
	}
	return entryKindNames[k]
}

// EntryFilter is a set of optional match criteria. A criterion left at its
// zero value matches everything; all set criteria must hold (logical AND).
//
// The sport type, subtype, intensity and equipment criteria only apply to
// exercises; date range and comment matching apply to every entry kind.
type EntryFilter struct {
	Kind  EntryKind
	Start time.Time // zero = unbounded
	End   time.Time // zero = unbounded

	SportType    *SportType
	SportSubType *SportSubType
	Intensity    *Intensity
	Equipment    *Equipment

	// CommentPattern is a case-insensitive substring by default. With
	// RegexMode it is compiled as a regular expression and matching
	// becomes case-sensitive.
	CommentPattern string
	RegexMode      bool
}

// commentMatcher compiles the comment criterion once per filter run.
// A nil matcher means no comment criterion is set. A malformed regular
// expression fails the whole filter operation.
func (f EntryFilter) commentMatcher() (func(string) bool, error) {
	if f.CommentPattern == "" {
		return nil, nil
	}
	if f.RegexMode {
		re, err := regexp.Compile(f.CommentPattern)
		if err != nil {
			return nil, fmt.Errorf("comment pattern: %w", err)
		}
		return re.MatchString, nil
	}
	needle := strings.ToLower(f.CommentPattern)
	return func(comment string) bool {
		return strings.Contains(strings.ToLower(comment), needle)
	}, nil
}

// matchesBase checks the criteria shared by all entry kinds: the date range
// and the comment pattern.
func (f EntryFilter) matchesBase(dateTime time.Time, comment string, matchComment func(string) bool) bool {
	if !f.Start.IsZero() && dateTime.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && dateTime.After(f.End) {
		return false
	}
	if matchComment != nil && !matchComment(comment) {
		return false
	}
	return true
}
