package storage

import (
	"context"
	"fmt"

	"github.com/claude/trainlog/internal/entries"
	"github.com/google/uuid"
)

// LoadExercises reads all exercises in diary order and resolves their sport
// type, subtype and equipment references against the given table. A row
// referencing an ID missing from the table is a data consistency error.
func (db *DB) LoadExercises(ctx context.Context, types entries.SportTypeList) (entries.ExerciseList, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, date_time, comment, intensity, sport_type_id, sport_subtype_id, equipment_id,
		 duration_sec, distance_km, avg_speed_kmh, calories
		 FROM exercises
		 ORDER BY date_time, id`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var list entries.ExerciseList
	for rows.Next() {
		x := &entries.Exercise{}
		var intensity string
		var sportTypeID, subTypeID int64
		var equipmentID *int64
		if err := rows.Scan(&x.ID, &x.DateTime, &x.Comment, &intensity,
			&sportTypeID, &subTypeID, &equipmentID,
			&x.DurationSec, &x.DistanceKm, &x.AvgSpeedKmh, &x.Calories); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		if x.Intensity, err = entries.ParseIntensity(intensity); err != nil {
			return nil, fmt.Errorf("exercise %s: %w", x.ID, err)
		}

		sportType := types.ByID(sportTypeID)
		if sportType == nil {
			return nil, fmt.Errorf("exercise %s references unknown sport type %d", x.ID, sportTypeID)
		}
		x.SportType = sportType
		if x.SportSubType = sportType.SubTypeByID(subTypeID); x.SportSubType == nil {
			return nil, fmt.Errorf("exercise %s references unknown subtype %d", x.ID, subTypeID)
		}
		if equipmentID != nil {
			if x.Equipment = sportType.EquipmentByID(*equipmentID); x.Equipment == nil {
				return nil, fmt.Errorf("exercise %s references unknown equipment %d", x.ID, *equipmentID)
			}
		}
		list = append(list, x)
	}
	return list, rows.Err()
}

// UpsertExercise writes a single exercise row.
func (db *DB) UpsertExercise(ctx context.Context, x *entries.Exercise) error {
	var equipmentID *int64
	if x.Equipment != nil {
		equipmentID = &x.Equipment.ID
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, date_time, comment, intensity, sport_type_id, sport_subtype_id,
		 equipment_id, duration_sec, distance_km, avg_speed_kmh, calories)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT (id) DO UPDATE SET
		 date_time = EXCLUDED.date_time, comment = EXCLUDED.comment,
		 intensity = EXCLUDED.intensity, sport_type_id = EXCLUDED.sport_type_id,
		 sport_subtype_id = EXCLUDED.sport_subtype_id, equipment_id = EXCLUDED.equipment_id,
		 duration_sec = EXCLUDED.duration_sec, distance_km = EXCLUDED.distance_km,
		 avg_speed_kmh = EXCLUDED.avg_speed_kmh, calories = EXCLUDED.calories`,
		x.ID, x.DateTime, x.Comment, x.Intensity.String(), x.SportType.ID, x.SportSubType.ID,
		equipmentID, x.DurationSec, x.DistanceKm, x.AvgSpeedKmh, x.Calories)
	if err != nil {
		return fmt.Errorf("upserting exercise %s: %w", x.ID, err)
	}
	return nil
}

// DeleteExercise removes a single exercise row.
func (db *DB) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting exercise %s: %w", id, err)
	}
	return nil
}
