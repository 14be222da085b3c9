package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store is the sqlx-backed data access layer. One repository method set
// per entity lives in the per-entity files of this package.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// selectPage runs the shared count + page query pair. where must carry
// its own WHERE keyword and $n placeholders matching args; order is a
// complete ORDER BY clause.
func selectPage[T any](ctx context.Context, db *sqlx.DB, table, where, order string, args []any, req PageRequest) (Page[T], error) {
	req = req.normalized()

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s %s", table, where)
	if err := db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return Page[T]{}, fmt.Errorf("failed to count %s: %w", table, err)
	}

	rows := []T{}
	query := fmt.Sprintf("SELECT %s.* FROM %s %s %s LIMIT %d OFFSET %d",
		table, table, where, order, req.Size, req.Page*req.Size)
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return Page[T]{}, fmt.Errorf("failed to select %s page: %w", table, err)
	}

	return NewPage(rows, req, total), nil
}

// setDeleted flips the soft-delete flag for one row.
func (s *Store) setDeleted(ctx context.Context, table string, id int64, deleted bool) error {
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET deleted = $1 WHERE id = $2", table), deleted, id)
	return err
}

// setDeletedBatch flips the soft-delete flag for a set of ids.
func (s *Store) setDeletedBatch(ctx context.Context, table string, ids []int64, deleted bool) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(
		fmt.Sprintf("UPDATE %s SET deleted = ? WHERE id IN (?)", table), deleted, ids)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	return err
}

// deleteRow removes one row permanently.
func (s *Store) deleteRow(ctx context.Context, table string, id int64) error {
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	return err
}

// deleteRows removes a set of rows permanently.
func (s *Store) deleteRows(ctx context.Context, table string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(
		fmt.Sprintf("DELETE FROM %s WHERE id IN (?)", table), ids)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	return err
}
