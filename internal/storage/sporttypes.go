package storage

import (
	"context"
	"fmt"

	"github.com/claude/trainlog/internal/entries"
)

// LoadSportTypes reads the full sport type reference table, with subtype
// and equipment sub-collections attached, in display order.
func (db *DB) LoadSportTypes(ctx context.Context) (entries.SportTypeList, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name FROM sport_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying sport types: %w", err)
	}
	defer rows.Close()

	var types entries.SportTypeList
	for rows.Next() {
		s := &entries.SportType{}
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scanning sport type: %w", err)
		}
		types = append(types, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := db.Pool.Query(ctx,
		`SELECT sport_type_id, id, name FROM sport_subtypes ORDER BY sport_type_id, id`)
	if err != nil {
		return nil, fmt.Errorf("querying sport subtypes: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var typeID int64
		sub := &entries.SportSubType{}
		if err := subRows.Scan(&typeID, &sub.ID, &sub.Name); err != nil {
			return nil, fmt.Errorf("scanning sport subtype: %w", err)
		}
		parent := types.ByID(typeID)
		if parent == nil {
			return nil, fmt.Errorf("subtype %d references unknown sport type %d", sub.ID, typeID)
		}
		parent.SubTypes = append(parent.SubTypes, sub)
	}
	if err := subRows.Err(); err != nil {
		return nil, err
	}

	eqRows, err := db.Pool.Query(ctx,
		`SELECT sport_type_id, id, name, not_in_use FROM equipment ORDER BY sport_type_id, id`)
	if err != nil {
		return nil, fmt.Errorf("querying equipment: %w", err)
	}
	defer eqRows.Close()

	for eqRows.Next() {
		var typeID int64
		eq := &entries.Equipment{}
		if err := eqRows.Scan(&typeID, &eq.ID, &eq.Name, &eq.NotInUse); err != nil {
			return nil, fmt.Errorf("scanning equipment: %w", err)
		}
		parent := types.ByID(typeID)
		if parent == nil {
			return nil, fmt.Errorf("equipment %d references unknown sport type %d", eq.ID, typeID)
		}
		parent.Equipment = append(parent.Equipment, eq)
	}
	if err := eqRows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}

// UpsertSportType writes a sport type and replaces its subtype and
// equipment sub-collections in one transaction. A zero ID inserts a new
// sport type; the stored ID is returned either way.
func (db *DB) UpsertSportType(ctx context.Context, sportType *entries.SportType) (int64, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	id := sportType.ID
	if id == 0 {
		err = tx.QueryRow(ctx,
			`INSERT INTO sport_types (name) VALUES ($1) RETURNING id`,
			sportType.Name).Scan(&id)
	} else {
		_, err = tx.Exec(ctx,
			`INSERT INTO sport_types (id, name) VALUES ($1, $2)
			 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
			id, sportType.Name)
	}
	if err != nil {
		return 0, fmt.Errorf("upserting sport type: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sport_subtypes WHERE sport_type_id = $1`, id); err != nil {
		return 0, fmt.Errorf("clearing subtypes: %w", err)
	}
	for _, sub := range sportType.SubTypes {
		if _, err := tx.Exec(ctx,
			`INSERT INTO sport_subtypes (sport_type_id, id, name) VALUES ($1, $2, $3)`,
			id, sub.ID, sub.Name); err != nil {
			return 0, fmt.Errorf("inserting subtype %d: %w", sub.ID, err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM equipment WHERE sport_type_id = $1`, id); err != nil {
		return 0, fmt.Errorf("clearing equipment: %w", err)
	}
	for _, eq := range sportType.Equipment {
		if _, err := tx.Exec(ctx,
			`INSERT INTO equipment (sport_type_id, id, name, not_in_use) VALUES ($1, $2, $3, $4)`,
			id, eq.ID, eq.Name, eq.NotInUse); err != nil {
			return 0, fmt.Errorf("inserting equipment %d: %w", eq.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing sport type: %w", err)
	}
	return id, nil
}

// DeleteSportType removes a sport type; subtypes and equipment cascade.
func (db *DB) DeleteSportType(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM sport_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting sport type %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sport type %d does not exist", id)
	}
	return nil
}
