package storage

import (
	"context"
	"fmt"

	"github.com/claude/trainlog/internal/entries"
	"github.com/google/uuid"
)

// LoadNotes reads all notes in diary order.
func (db *DB) LoadNotes(ctx context.Context) (entries.NoteList, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, date_time, comment FROM notes ORDER BY date_time, id`)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var list entries.NoteList
	for rows.Next() {
		n := &entries.Note{}
		if err := rows.Scan(&n.ID, &n.DateTime, &n.Comment); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// UpsertNote writes a single note row.
func (db *DB) UpsertNote(ctx context.Context, n *entries.Note) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO notes (id, date_time, comment) VALUES ($1,$2,$3)
		 ON CONFLICT (id) DO UPDATE SET date_time = EXCLUDED.date_time, comment = EXCLUDED.comment`,
		n.ID, n.DateTime, n.Comment)
	if err != nil {
		return fmt.Errorf("upserting note %s: %w", n.ID, err)
	}
	return nil
}

// DeleteNote removes a single note row.
func (db *DB) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	return nil
}

// LoadWeights reads all weight entries in diary order.
func (db *DB) LoadWeights(ctx context.Context) (entries.WeightList, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, date_time, comment, value_kg FROM weights ORDER BY date_time, id`)
	if err != nil {
		return nil, fmt.Errorf("querying weights: %w", err)
	}
	defer rows.Close()

	var list entries.WeightList
	for rows.Next() {
		w := &entries.Weight{}
		if err := rows.Scan(&w.ID, &w.DateTime, &w.Comment, &w.ValueKg); err != nil {
			return nil, fmt.Errorf("scanning weight: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// UpsertWeight writes a single weight row.
func (db *DB) UpsertWeight(ctx context.Context, w *entries.Weight) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO weights (id, date_time, comment, value_kg) VALUES ($1,$2,$3,$4)
		 ON CONFLICT (id) DO UPDATE SET date_time = EXCLUDED.date_time,
		 comment = EXCLUDED.comment, value_kg = EXCLUDED.value_kg`,
		w.ID, w.DateTime, w.Comment, w.ValueKg)
	if err != nil {
		return fmt.Errorf("upserting weight %s: %w", w.ID, err)
	}
	return nil
}

// DeleteWeight removes a single weight row.
func (db *DB) DeleteWeight(ctx context.Context, id uuid.UUID) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM weights WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting weight %s: %w", id, err)
	}
	return nil
}
