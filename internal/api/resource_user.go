package api

import (
	"context"
	"strings"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/service"

	"github.com/gin-gonic/gin"
)

type userPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address"`
	RoleID   int64  `json:"roleId" binding:"required"`
	Active   bool   `json:"active"`
}

type UserResource struct {
	svc *service.UserService
}

func NewUserResource(svc *service.UserService) *UserResource {
	return &UserResource{svc: svc}
}

func (r *UserResource) List(c *gin.Context) (PageData, error) {
	req := pageRequest(c)
	ctx := c.Request.Context()
	if query := c.Query("query"); query != "" {
		if strings.EqualFold(c.Query("searchType"), "email") {
			page, err := r.svc.SearchByEmail(ctx, query, req)
			return pageData(page), err
		}
		page, err := r.svc.SearchByName(ctx, query, req)
		return pageData(page), err
	}
	if wantsDeleted(c) {
		page, err := r.svc.FindAllDeleted(ctx, req)
		return pageData(page), err
	}
	page, err := r.svc.FindAllActive(ctx, req)
	return pageData(page), err
}

func (r *UserResource) Get(c *gin.Context, id int64) (any, error) {
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *UserResource) decode(c *gin.Context) (*models.User, error) {
	var payload userPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "body", Message: "name, email and roleId are required"})
	}
	return &models.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Password: payload.Password,
		Address:  payload.Address,
		RoleID:   payload.RoleID,
		Active:   payload.Active,
	}, nil
}

func (r *UserResource) Create(c *gin.Context) (any, error) {
	user, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Save(c.Request.Context(), user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserResource) Update(c *gin.Context, id int64) (any, error) {
	user, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Update(c.Request.Context(), id, user); err != nil {
		return nil, err
	}
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *UserResource) LogicDelete(ctx context.Context, id int64) error {
	return r.svc.LogicDelete(ctx, id)
}
func (r *UserResource) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.LogicDeleteBatch(ctx, ids)
}
func (r *UserResource) Delete(ctx context.Context, id int64) error { return r.svc.Delete(ctx, id) }
func (r *UserResource) DeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.DeleteBatch(ctx, ids)
}
func (r *UserResource) Restore(ctx context.Context, id int64) error { return r.svc.Restore(ctx, id) }
func (r *UserResource) RestoreBatch(ctx context.Context, ids []int64) error {
	return r.svc.RestoreBatch(ctx, ids)
}
