package api

import (
	"context"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/service"

	"github.com/gin-gonic/gin"
)

// Resources for the reference entities: roles, categories,
// manufacturers, suppliers. Each decodes its exact payload shape and
// delegates to its service.

type rolePayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type RoleResource struct {
	svc *service.RoleService
}

func NewRoleResource(svc *service.RoleService) *RoleResource {
	return &RoleResource{svc: svc}
}

func (r *RoleResource) List(c *gin.Context) (PageData, error) {
	req := pageRequest(c)
	ctx := c.Request.Context()
	if query := c.Query("query"); query != "" {
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

func (r *RoleResource) Get(c *gin.Context, id int64) (any, error) {
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *RoleResource) Create(c *gin.Context) (any, error) {
	var payload rolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	role := &models.Role{Name: payload.Name, Description: payload.Description}
	if err := r.svc.Save(c.Request.Context(), role); err != nil {
		return nil, err
	}
	return role, nil
}

func (r *RoleResource) Update(c *gin.Context, id int64) (any, error) {
	var payload rolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	role := &models.Role{Name: payload.Name, Description: payload.Description}
	if err := r.svc.Update(c.Request.Context(), id, role); err != nil {
		return nil, err
	}
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *RoleResource) LogicDelete(ctx context.Context, id int64) error { return r.svc.LogicDelete(ctx, id) }
func (r *RoleResource) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.LogicDeleteBatch(ctx, ids)
}
func (r *RoleResource) Delete(ctx context.Context, id int64) error { return r.svc.Delete(ctx, id) }
func (r *RoleResource) DeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.DeleteBatch(ctx, ids)
}
func (r *RoleResource) Restore(ctx context.Context, id int64) error { return r.svc.Restore(ctx, id) }
func (r *RoleResource) RestoreBatch(ctx context.Context, ids []int64) error {
	return r.svc.RestoreBatch(ctx, ids)
}

type categoryPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CategoryResource struct {
	svc *service.CategoryService
}

func NewCategoryResource(svc *service.CategoryService) *CategoryResource {
	return &CategoryResource{svc: svc}
}

func (r *CategoryResource) List(c *gin.Context) (PageData, error) {
	req := pageRequest(c)
	ctx := c.Request.Context()
	if query := c.Query("query"); query != "" {
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

func (r *CategoryResource) Get(c *gin.Context, id int64) (any, error) {
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *CategoryResource) Create(c *gin.Context) (any, error) {
	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	category := &models.Category{Name: payload.Name, Description: payload.Description}
	if err := r.svc.Save(c.Request.Context(), category); err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CategoryResource) Update(c *gin.Context, id int64) (any, error) {
	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	category := &models.Category{Name: payload.Name, Description: payload.Description}
	if err := r.svc.Update(c.Request.Context(), id, category); err != nil {
		return nil, err
	}
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *CategoryResource) LogicDelete(ctx context.Context, id int64) error {
	return r.svc.LogicDelete(ctx, id)
}
func (r *CategoryResource) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.LogicDeleteBatch(ctx, ids)
}
func (r *CategoryResource) Delete(ctx context.Context, id int64) error { return r.svc.Delete(ctx, id) }
func (r *CategoryResource) DeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.DeleteBatch(ctx, ids)
}
func (r *CategoryResource) Restore(ctx context.Context, id int64) error { return r.svc.Restore(ctx, id) }
func (r *CategoryResource) RestoreBatch(ctx context.Context, ids []int64) error {
	return r.svc.RestoreBatch(ctx, ids)
}

type manufacturerPayload struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type ManufacturerResource struct {
	svc *service.ManufacturerService
}

func NewManufacturerResource(svc *service.ManufacturerService) *ManufacturerResource {
	return &ManufacturerResource{svc: svc}
}

func (r *ManufacturerResource) List(c *gin.Context) (PageData, error) {
	req := pageRequest(c)
	ctx := c.Request.Context()
	if country := c.Query("country"); country != "" {
		page, err := r.svc.FilterByCountry(ctx, country, req)
		return pageData(page), err
	}
	if query := c.Query("query"); query != "" {
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

func (r *ManufacturerResource) Get(c *gin.Context, id int64) (any, error) {
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *ManufacturerResource) decode(c *gin.Context) (*models.Manufacturer, error) {
	var payload manufacturerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	return &models.Manufacturer{
		Name:    payload.Name,
		Country: payload.Country,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
	}, nil
}

func (r *ManufacturerResource) Create(c *gin.Context) (any, error) {
	m, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Save(c.Request.Context(), m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *ManufacturerResource) Update(c *gin.Context, id int64) (any, error) {
	m, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Update(c.Request.Context(), id, m); err != nil {
		return nil, err
	}
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *ManufacturerResource) LogicDelete(ctx context.Context, id int64) error {
	return r.svc.LogicDelete(ctx, id)
}
func (r *ManufacturerResource) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.LogicDeleteBatch(ctx, ids)
}
func (r *ManufacturerResource) Delete(ctx context.Context, id int64) error {
	return r.svc.Delete(ctx, id)
}
func (r *ManufacturerResource) DeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.DeleteBatch(ctx, ids)
}
func (r *ManufacturerResource) Restore(ctx context.Context, id int64) error {
	return r.svc.Restore(ctx, id)
}
func (r *ManufacturerResource) RestoreBatch(ctx context.Context, ids []int64) error {
	return r.svc.RestoreBatch(ctx, ids)
}

type supplierPayload struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

type SupplierResource struct {
	svc *service.SupplierService
}

func NewSupplierResource(svc *service.SupplierService) *SupplierResource {
	return &SupplierResource{svc: svc}
}

func (r *SupplierResource) List(c *gin.Context) (PageData, error) {
	req := pageRequest(c)
	ctx := c.Request.Context()
	if query := c.Query("query"); query != "" {
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

func (r *SupplierResource) Get(c *gin.Context, id int64) (any, error) {
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *SupplierResource) decode(c *gin.Context) (*models.Supplier, error) {
	var payload supplierPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	return &models.Supplier{
		Name:          payload.Name,
		ContactPerson: payload.ContactPerson,
		Email:         payload.Email,
		Phone:         payload.Phone,
		Address:       payload.Address,
	}, nil
}

func (r *SupplierResource) Create(c *gin.Context) (any, error) {
	supplier, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Save(c.Request.Context(), supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (r *SupplierResource) Update(c *gin.Context, id int64) (any, error) {
	supplier, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Update(c.Request.Context(), id, supplier); err != nil {
		return nil, err
	}
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *SupplierResource) LogicDelete(ctx context.Context, id int64) error {
	return r.svc.LogicDelete(ctx, id)
}
func (r *SupplierResource) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.LogicDeleteBatch(ctx, ids)
}
func (r *SupplierResource) Delete(ctx context.Context, id int64) error { return r.svc.Delete(ctx, id) }
func (r *SupplierResource) DeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.DeleteBatch(ctx, ids)
}
func (r *SupplierResource) Restore(ctx context.Context, id int64) error { return r.svc.Restore(ctx, id) }
func (r *SupplierResource) RestoreBatch(ctx context.Context, ids []int64) error {
	return r.svc.RestoreBatch(ctx, ids)
}
