package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/aitalk/internal/core"
)

// ItemStore keeps index items in SQLite. It satisfies index.Store.
type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

func (s *ItemStore) Add(ctx context.Context, text string, vector []float32) (int64, error) {
	blob, err := serializeVector(vector)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (text, dims, embedding) VALUES (?, ?, ?)`,
		text, len(vector), blob,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read item id: %w", err)
	}
	return id, nil
}

func (s *ItemStore) Items(ctx context.Context) ([]core.MemoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, dims, embedding FROM items ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []core.MemoryItem
	for rows.Next() {
		var (
			item core.MemoryItem
			dims int
			blob []byte
		)
		if err := rows.Scan(&item.ID, &item.Text, &dims, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if item.Vector, err = deserializeVector(blob, dims); err != nil {
			return nil, fmt.Errorf("item %d: %w", item.ID, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *ItemStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}
