package api

import (
	"context"
	"strconv"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type orderItemPayload struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type orderPayload struct {
	UserID          int64              `json:"userId" binding:"required"`
	Status          string             `json:"status"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Comment         string             `json:"comment"`
	Items           []orderItemPayload `json:"items" binding:"required"`
}

type OrderResource struct {
	svc *service.OrderService
}

func NewOrderResource(svc *service.OrderService) *OrderResource {
	return &OrderResource{svc: svc}
}

func (r *OrderResource) List(c *gin.Context) (PageData, error) {
	req := pageRequest(c)
	ctx := c.Request.Context()
	if id, ok, err := queryID(c, "userId"); err != nil {
		return PageData{}, err
	} else if ok {
		page, err := r.svc.FilterByUser(ctx, id, req)
		return pageData(page), err
	}
	if status := c.Query("status"); status != "" {
		page, err := r.svc.FilterByStatus(ctx, status, req)
		return pageData(page), err
	}
	if wantsDeleted(c) {
		page, err := r.svc.FindAllDeleted(ctx, req)
		return pageData(page), err
	}
	page, err := r.svc.FindAllActive(ctx, req)
	return pageData(page), err
}

func (r *OrderResource) Get(c *gin.Context, id int64) (any, error) {
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *OrderResource) decode(c *gin.Context) (*models.Order, error) {
	var payload orderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "body", Message: "userId and items are required"})
	}
	items := make([]models.OrderItem, len(payload.Items))
	for i, item := range payload.Items {
		items[i] = models.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return &models.Order{
		UserID:          payload.UserID,
		Status:          payload.Status,
		DeliveryAddress: payload.DeliveryAddress,
		Comment:         payload.Comment,
		Items:           items,
	}, nil
}

func (r *OrderResource) Create(c *gin.Context) (any, error) {
	order, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Save(c.Request.Context(), order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update handles both full rewrites and bare status moves: a body with
// only {"status": …} routes to UpdateStatus.
func (r *OrderResource) Update(c *gin.Context, id int64) (any, error) {
	var probe struct {
		UserID int64  `json:"userId"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindBodyWith(&probe, binding.JSON); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "body", Message: "invalid json"})
	}
	ctx := c.Request.Context()

	if probe.UserID == 0 && probe.Status != "" {
		if err := r.svc.UpdateStatus(ctx, id, probe.Status); err != nil {
			return nil, err
		}
		return r.svc.FindByID(ctx, id)
	}

	var payload orderPayload
	if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "body", Message: "userId and items are required"})
	}
	items := make([]models.OrderItem, len(payload.Items))
	for i, item := range payload.Items {
		items[i] = models.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	order := &models.Order{
		UserID:          payload.UserID,
		Status:          payload.Status,
		DeliveryAddress: payload.DeliveryAddress,
		Comment:         payload.Comment,
		Items:           items,
	}
	if err := r.svc.Update(ctx, id, order); err != nil {
		return nil, err
	}
	return r.svc.FindByID(ctx, id)
}

func (r *OrderResource) LogicDelete(ctx context.Context, id int64) error {
	return r.svc.LogicDelete(ctx, id)
}
func (r *OrderResource) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.LogicDeleteBatch(ctx, ids)
}
func (r *OrderResource) Delete(ctx context.Context, id int64) error { return r.svc.Delete(ctx, id) }
func (r *OrderResource) DeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.DeleteBatch(ctx, ids)
}
func (r *OrderResource) Restore(ctx context.Context, id int64) error { return r.svc.Restore(ctx, id) }
func (r *OrderResource) RestoreBatch(ctx context.Context, ids []int64) error {
	return r.svc.RestoreBatch(ctx, ids)
}

type reviewPayload struct {
	ProductID int64  `json:"productId" binding:"required"`
	UserID    int64  `json:"userId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

type ReviewResource struct {
	svc *service.ReviewService
}

func NewReviewResource(svc *service.ReviewService) *ReviewResource {
	return &ReviewResource{svc: svc}
}

func (r *ReviewResource) List(c *gin.Context) (PageData, error) {
	req := pageRequest(c)
	ctx := c.Request.Context()
	if id, ok, err := queryID(c, "productId"); err != nil {
		return PageData{}, err
	} else if ok {
		page, err := r.svc.FilterByProduct(ctx, id, req)
		return pageData(page), err
	}
	if id, ok, err := queryID(c, "userId"); err != nil {
		return PageData{}, err
	} else if ok {
		page, err := r.svc.FilterByUser(ctx, id, req)
		return pageData(page), err
	}
	if raw := c.Query("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return PageData{}, apperr.InvalidArgument("invalid rating: %s", raw)
		}
		page, err := r.svc.FilterByRating(ctx, rating, req)
		return pageData(page), err
	}
	if wantsDeleted(c) {
		page, err := r.svc.FindAllDeleted(ctx, req)
		return pageData(page), err
	}
	page, err := r.svc.FindAllActive(ctx, req)
	return pageData(page), err
}

func (r *ReviewResource) Get(c *gin.Context, id int64) (any, error) {
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *ReviewResource) decode(c *gin.Context) (*models.Review, error) {
	var payload reviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "body", Message: "productId, userId and rating are required"})
	}
	return &models.Review{
		ProductID: payload.ProductID,
		UserID:    payload.UserID,
		Rating:    payload.Rating,
		Comment:   payload.Comment,
	}, nil
}

func (r *ReviewResource) Create(c *gin.Context) (any, error) {
	review, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Save(c.Request.Context(), review); err != nil {
		return nil, err
	}
	return review, nil
}

func (r *ReviewResource) Update(c *gin.Context, id int64) (any, error) {
	review, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Update(c.Request.Context(), id, review); err != nil {
		return nil, err
	}
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *ReviewResource) LogicDelete(ctx context.Context, id int64) error {
	return r.svc.LogicDelete(ctx, id)
}
func (r *ReviewResource) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.LogicDeleteBatch(ctx, ids)
}
func (r *ReviewResource) Delete(ctx context.Context, id int64) error { return r.svc.Delete(ctx, id) }
func (r *ReviewResource) DeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.DeleteBatch(ctx, ids)
}
func (r *ReviewResource) Restore(ctx context.Context, id int64) error { return r.svc.Restore(ctx, id) }
func (r *ReviewResource) RestoreBatch(ctx context.Context, ids []int64) error {
	return r.svc.RestoreBatch(ctx, ids)
}
