package importer

import (
	"fmt"
	"time"

	"github.com/claude/trainlog/internal/entries"
	"github.com/google/uuid"
)

// Payload is the JSON diary export format accepted by the ingest endpoint
// and the import CLI. Sport types are optional; when present they are
// upserted before any entries so the entries can reference them.
type Payload struct {
	SportTypes []SportTypePayload `json:"sport_types,omitempty"`
	Exercises  []ExercisePayload  `json:"exercises,omitempty"`
	Notes      []NotePayload      `json:"notes,omitempty"`
	Weights    []WeightPayload    `json:"weights,omitempty"`
}

// SportTypePayload mirrors entries.SportType with inline sub-collections.
type SportTypePayload struct {
	ID        int64                 `json:"id"`
	Name      string                `json:"name"`
	SubTypes  []SportSubTypePayload `json:"subtypes,omitempty"`
	Equipment []EquipmentPayload    `json:"equipment,omitempty"`
}

type SportSubTypePayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type EquipmentPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	NotInUse bool   `json:"not_in_use,omitempty"`
}

// ExercisePayload is a single exported exercise. References are by ID; a
// zero exercise ID means "assign one".
type ExercisePayload struct {
	ID           uuid.UUID `json:"id,omitempty"`
	DateTime     time.Time `json:"date_time"`
	Comment      string    `json:"comment,omitempty"`
	Intensity    string    `json:"intensity"`
	SportTypeID  int64     `json:"sport_type_id"`
	SubTypeID    int64     `json:"sport_subtype_id"`
	EquipmentID  *int64    `json:"equipment_id,omitempty"`
	DurationSec  int       `json:"duration_sec,omitempty"`
	DistanceKm   float64   `json:"distance_km,omitempty"`
	AvgSpeedKmh  float64   `json:"avg_speed_kmh,omitempty"`
	Calories     int       `json:"calories,omitempty"`
}

type NotePayload struct {
	ID       uuid.UUID `json:"id,omitempty"`
	DateTime time.Time `json:"date_time"`
	Comment  string    `json:"comment"`
}

type WeightPayload struct {
	ID       uuid.UUID `json:"id,omitempty"`
	DateTime time.Time `json:"date_time"`
	Comment  string    `json:"comment,omitempty"`
	ValueKg  float64   `json:"value_kg"`
}

// Exercise converts the payload to a diary exercise with stand-in reference
// objects carrying just the IDs; the logbook resolves them against the
// current sport type table on insert.
func (p ExercisePayload) Exercise() (*entries.Exercise, error) {
	intensity, err := entries.ParseIntensity(p.Intensity)
	if err != nil {
		return nil, err
	}
	if p.DateTime.IsZero() {
		return nil, fmt.Errorf("date_time is required")
	}
	exercise := &entries.Exercise{
		ID:           p.ID,
		DateTime:     p.DateTime,
		Comment:      p.Comment,
		Intensity:    intensity,
		SportType:    &entries.SportType{ID: p.SportTypeID},
		SportSubType: &entries.SportSubType{ID: p.SubTypeID},
		DurationSec:  p.DurationSec,
		DistanceKm:   p.DistanceKm,
		AvgSpeedKmh:  p.AvgSpeedKmh,
		Calories:     p.Calories,
	}
	if p.EquipmentID != nil {
		exercise.Equipment = &entries.Equipment{ID: *p.EquipmentID}
	}
	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}
	return exercise, nil
}
