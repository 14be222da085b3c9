package store

import (
	"context"
	"database/sql"
	"errors"

	"backoffice-service/internal/models"
)

var reviewSortColumns = map[string]string{
	"id":        "id",
	"rating":    "rating",
	"createdAt": "created_at",
}

func (s *Store) ListReviews(ctx context.Context, deleted bool, req PageRequest) (Page[models.Review], error) {
	return selectPage[models.Review](ctx, s.db, "reviews",
		"WHERE deleted = $1", req.orderClause(reviewSortColumns), []any{deleted}, req)
}

func (s *Store) FilterReviewsByProduct(ctx context.Context, productID int64, req PageRequest) (Page[models.Review], error) {
	return selectPage[models.Review](ctx, s.db, "reviews",
		"WHERE deleted = false AND product_id = $1",
		req.orderClause(reviewSortColumns), []any{productID}, req)
}

func (s *Store) FilterReviewsByUser(ctx context.Context, userID int64, req PageRequest) (Page[models.Review], error) {
	return selectPage[models.Review](ctx, s.db, "reviews",
		"WHERE deleted = false AND user_id = $1",
		req.orderClause(reviewSortColumns), []any{userID}, req)
}

func (s *Store) FilterReviewsByRating(ctx context.Context, rating int, req PageRequest) (Page[models.Review], error) {
	return selectPage[models.Review](ctx, s.db, "reviews",
		"WHERE deleted = false AND rating = $1",
		req.orderClause(reviewSortColumns), []any{rating}, req)
}

func (s *Store) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := s.db.GetContext(ctx, &review, "SELECT * FROM reviews WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *Store) InsertReview(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (product_id, user_id, rating, comment, deleted)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	return s.db.GetContext(ctx, review, query,
		review.ProductID, review.UserID, review.Rating,
		review.Comment, review.Deleted)
}

func (s *Store) UpdateReview(ctx context.Context, review *models.Review) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE reviews
		SET product_id = $1, user_id = $2, rating = $3, comment = $4, updated_at = NOW()
		WHERE id = $5`,
		review.ProductID, review.UserID, review.Rating, review.Comment, review.ID)
	if err != nil {
		return err
	}
	return requireAffected(result, "reviews", review.ID)
}

func (s *Store) SetReviewDeleted(ctx context.Context, id int64, deleted bool) error {
	return s.setDeleted(ctx, "reviews", id, deleted)
}

func (s *Store) SetReviewsDeleted(ctx context.Context, ids []int64, deleted bool) error {
	return s.setDeletedBatch(ctx, "reviews", ids, deleted)
}

func (s *Store) DeleteReview(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "reviews", id)
}

func (s *Store) DeleteReviews(ctx context.Context, ids []int64) error {
	return s.deleteRows(ctx, "reviews", ids)
}
