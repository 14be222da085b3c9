package service

import (
	"context"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/store"
	"backoffice-service/internal/util"

	"go.uber.org/zap"
)

type ReviewRepository interface {
	ListReviews(ctx context.Context, deleted bool, req store.PageRequest) (store.Page[models.Review], error)
	FilterReviewsByProduct(ctx context.Context, productID int64, req store.PageRequest) (store.Page[models.Review], error)
	FilterReviewsByUser(ctx context.Context, userID int64, req store.PageRequest) (store.Page[models.Review], error)
	FilterReviewsByRating(ctx context.Context, rating int, req store.PageRequest) (store.Page[models.Review], error)
	GetReviewByID(ctx context.Context, id int64) (*models.Review, error)
	InsertReview(ctx context.Context, review *models.Review) error
	UpdateReview(ctx context.Context, review *models.Review) error
	SetReviewDeleted(ctx context.Context, id int64, deleted bool) error
	SetReviewsDeleted(ctx context.Context, ids []int64, deleted bool) error
	DeleteReview(ctx context.Context, id int64) error
	DeleteReviews(ctx context.Context, ids []int64) error
}

type ReviewService struct {
	repo     ReviewRepository
	products ProductResolver
	users    UserResolver
	logger   *zap.Logger
}

func NewReviewService(repo ReviewRepository, products ProductResolver, users UserResolver) *ReviewService {
	return &ReviewService{repo: repo, products: products, users: users, logger: util.GetLogger()}
}

func (s *ReviewService) FindAllActive(ctx context.Context, req store.PageRequest) (store.Page[models.Review], error) {
	return s.repo.ListReviews(ctx, false, req)
}

func (s *ReviewService) FindAllDeleted(ctx context.Context, req store.PageRequest) (store.Page[models.Review], error) {
	return s.repo.ListReviews(ctx, true, req)
}

func (s *ReviewService) FilterByProduct(ctx context.Context, productID int64, req store.PageRequest) (store.Page[models.Review], error) {
	return s.repo.FilterReviewsByProduct(ctx, productID, req)
}

func (s *ReviewService) FilterByUser(ctx context.Context, userID int64, req store.PageRequest) (store.Page[models.Review], error) {
	return s.repo.FilterReviewsByUser(ctx, userID, req)
}

func (s *ReviewService) FilterByRating(ctx context.Context, rating int, req store.PageRequest) (store.Page[models.Review], error) {
	if rating < 1 || rating > 5 {
		return store.Page[models.Review]{}, apperr.InvalidArgument("rating must be between 1 and 5")
	}
	return s.repo.FilterReviewsByRating(ctx, rating, req)
}

func (s *ReviewService) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.repo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperr.NotFound("review %d not found", id)
	}
	return review, nil
}

func (s *ReviewService) resolveRefs(ctx context.Context, review *models.Review) error {
	product, err := s.products.GetProductByID(ctx, review.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperr.NotFound("product %d not found", review.ProductID)
	}
	user, err := s.users.GetUserByID(ctx, review.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user %d not found", review.UserID)
	}
	return nil
}

func (s *ReviewService) Save(ctx context.Context, review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "rating", Message: "must be between 1 and 5"})
	}
	if err := s.resolveRefs(ctx, review); err != nil {
		return err
	}
	review.Deleted = false
	return s.repo.InsertReview(ctx, review)
}

func (s *ReviewService) Update(ctx context.Context, id int64, review *models.Review) error {
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if review.Rating < 1 || review.Rating > 5 {
		return apperr.Validation("validation failed",
			apperr.FieldError{Field: "rating", Message: "must be between 1 and 5"})
	}
	if err := s.resolveRefs(ctx, review); err != nil {
		return err
	}
	existing.ProductID = review.ProductID
	existing.UserID = review.UserID
	existing.Rating = review.Rating
	existing.Comment = review.Comment
	return s.repo.UpdateReview(ctx, existing)
}

func (s *ReviewService) LogicDelete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetReviewDeleted(ctx, id, true); err != nil {
		return err
	}
	util.EntitiesSoftDeletedTotal.WithLabelValues("reviews").Inc()
	return nil
}

func (s *ReviewService) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetReviewsDeleted(ctx, ids, true)
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteReview(ctx, id)
}

func (s *ReviewService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteReviews(ctx, ids)
}

func (s *ReviewService) Restore(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetReviewDeleted(ctx, id, false); err != nil {
		return err
	}
	util.EntitiesRestoredTotal.WithLabelValues("reviews").Inc()
	return nil
}

func (s *ReviewService) RestoreBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetReviewsDeleted(ctx, ids, false)
}
