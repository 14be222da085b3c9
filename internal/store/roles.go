package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backoffice-service/internal/models"
)

var roleSortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

// ListRoles returns one page of roles partitioned by the deleted flag.
func (s *Store) ListRoles(ctx context.Context, deleted bool, req PageRequest) (Page[models.Role], error) {
	return selectPage[models.Role](ctx, s.db, "roles",
		"WHERE deleted = $1", req.orderClause(roleSortColumns), []any{deleted}, req)
}

// SearchRolesByName matches active roles by case-insensitive substring.
func (s *Store) SearchRolesByName(ctx context.Context, query string, req PageRequest) (Page[models.Role], error) {
	return selectPage[models.Role](ctx, s.db, "roles",
		"WHERE deleted = false AND name ILIKE '%' || $1 || '%'",
		req.orderClause(roleSortColumns), []any{query}, req)
}

// GetRoleByID returns the role or nil when absent.
func (s *Store) GetRoleByID(ctx context.Context, id int64) (*models.Role, error) {
	var role models.Role
	err := s.db.GetContext(ctx, &role, "SELECT * FROM roles WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRoleByName returns the non-deleted role with that name, or nil.
func (s *Store) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := s.db.GetContext(ctx, &role,
		"SELECT * FROM roles WHERE name = $1 AND deleted = false", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// RoleNameInUse reports whether another non-deleted role holds the name.
func (s *Store) RoleNameInUse(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM roles WHERE name = $1 AND deleted = false AND id <> $2)",
		name, excludeID)
	return exists, err
}

// InsertRole creates a role and fills in its id.
func (s *Store) InsertRole(ctx context.Context, role *models.Role) error {
	query := `
		INSERT INTO roles (name, description, deleted)
		VALUES ($1, $2, $3)
		RETURNING id`
	return s.db.GetContext(ctx, &role.ID, query, role.Name, role.Description, role.Deleted)
}

// UpdateRole persists name and description changes.
func (s *Store) UpdateRole(ctx context.Context, role *models.Role) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE roles SET name = $1, description = $2 WHERE id = $3",
		role.Name, role.Description, role.ID)
	if err != nil {
		return err
	}
	return requireAffected(result, "roles", role.ID)
}

func (s *Store) SetRoleDeleted(ctx context.Context, id int64, deleted bool) error {
	return s.setDeleted(ctx, "roles", id, deleted)
}

func (s *Store) SetRolesDeleted(ctx context.Context, ids []int64, deleted bool) error {
	return s.setDeletedBatch(ctx, "roles", ids, deleted)
}

func (s *Store) DeleteRole(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "roles", id)
}

func (s *Store) DeleteRoles(ctx context.Context, ids []int64) error {
	return s.deleteRows(ctx, "roles", ids)
}

// requireAffected converts a zero-row update into an error so callers
// can distinguish a vanished row from a successful write.
func requireAffected(result sql.Result, table string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s row %d not found", table, id)
	}
	return nil
}
