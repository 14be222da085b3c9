package store

import (
	"context"
	"database/sql"
	"errors"

	"backoffice-service/internal/models"
)

var categorySortColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

func (s *Store) ListCategories(ctx context.Context, deleted bool, req PageRequest) (Page[models.Category], error) {
	return selectPage[models.Category](ctx, s.db, "categories",
		"WHERE deleted = $1", req.orderClause(categorySortColumns), []any{deleted}, req)
}

func (s *Store) SearchCategoriesByName(ctx context.Context, query string, req PageRequest) (Page[models.Category], error) {
	return selectPage[models.Category](ctx, s.db, "categories",
		"WHERE deleted = false AND name ILIKE '%' || $1 || '%'",
		req.orderClause(categorySortColumns), []any{query}, req)
}

func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := s.db.GetContext(ctx, &category, "SELECT * FROM categories WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryNameInUse reports whether another non-deleted category holds the name.
func (s *Store) CategoryNameInUse(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND deleted = false AND id <> $2)",
		name, excludeID)
	return exists, err
}

func (s *Store) InsertCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, description, deleted)
		VALUES ($1, $2, $3)
		RETURNING id`
	return s.db.GetContext(ctx, &category.ID, query,
		category.Name, category.Description, category.Deleted)
}

func (s *Store) UpdateCategory(ctx context.Context, category *models.Category) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = $1, description = $2 WHERE id = $3",
		category.Name, category.Description, category.ID)
	if err != nil {
		return err
	}
	return requireAffected(result, "categories", category.ID)
}

func (s *Store) SetCategoryDeleted(ctx context.Context, id int64, deleted bool) error {
	return s.setDeleted(ctx, "categories", id, deleted)
}

func (s *Store) SetCategoriesDeleted(ctx context.Context, ids []int64, deleted bool) error {
	return s.setDeletedBatch(ctx, "categories", ids, deleted)
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "categories", id)
}

func (s *Store) DeleteCategories(ctx context.Context, ids []int64) error {
	return s.deleteRows(ctx, "categories", ids)
}
