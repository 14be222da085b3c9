package api

import (
	"context"
	"strconv"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type productPayload struct {
	Name           string          `json:"name" binding:"required"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	StockQuantity  int             `json:"stockQuantity"`
	CategoryID     int64           `json:"categoryId" binding:"required"`
	ManufacturerID int64           `json:"manufacturerId" binding:"required"`
	SupplierIDs    []int64         `json:"supplierIds"`
}

type ProductResource struct {
	svc *service.ProductService
}

func NewProductResource(svc *service.ProductService) *ProductResource {
	return &ProductResource{svc: svc}
}

func queryID(c *gin.Context, name string) (int64, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, apperr.InvalidArgument("invalid %s: %s", name, raw)
	}
	return id, true, nil
}

func queryDecimal(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid %s: %s", name, raw)
	}
	return &value, nil
}

func (r *ProductResource) List(c *gin.Context) (PageData, error) {
	req := pageRequest(c)
	ctx := c.Request.Context()

	if id, ok, err := queryID(c, "categoryId"); err != nil {
		return PageData{}, err
	} else if ok {
		page, err := r.svc.FilterByCategory(ctx, id, req)
		return pageData(page), err
	}
	if id, ok, err := queryID(c, "manufacturerId"); err != nil {
		return PageData{}, err
	} else if ok {
		page, err := r.svc.FilterByManufacturer(ctx, id, req)
		return pageData(page), err
	}
	if id, ok, err := queryID(c, "supplierId"); err != nil {
		return PageData{}, err
	} else if ok {
		page, err := r.svc.FilterBySupplier(ctx, id, req)
		return pageData(page), err
	}
	min, err := queryDecimal(c, "minPrice")
	if err != nil {
		return PageData{}, err
	}
	max, err := queryDecimal(c, "maxPrice")
	if err != nil {
		return PageData{}, err
	}
	if min != nil || max != nil {
		page, err := r.svc.FilterByPriceRange(ctx, min, max, req)
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

func (r *ProductResource) Get(c *gin.Context, id int64) (any, error) {
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *ProductResource) decode(c *gin.Context) (*models.Product, error) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "body", Message: "name, price, categoryId and manufacturerId are required"})
	}
	return &models.Product{
		Name:           payload.Name,
		Price:          payload.Price,
		StockQuantity:  payload.StockQuantity,
		CategoryID:     payload.CategoryID,
		ManufacturerID: payload.ManufacturerID,
		SupplierIDs:    payload.SupplierIDs,
	}, nil
}

func (r *ProductResource) Create(c *gin.Context) (any, error) {
	product, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Save(c.Request.Context(), product); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductResource) Update(c *gin.Context, id int64) (any, error) {
	product, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Update(c.Request.Context(), id, product); err != nil {
		return nil, err
	}
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *ProductResource) LogicDelete(ctx context.Context, id int64) error {
	return r.svc.LogicDelete(ctx, id)
}
func (r *ProductResource) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.LogicDeleteBatch(ctx, ids)
}
func (r *ProductResource) Delete(ctx context.Context, id int64) error { return r.svc.Delete(ctx, id) }
func (r *ProductResource) DeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.DeleteBatch(ctx, ids)
}
func (r *ProductResource) Restore(ctx context.Context, id int64) error { return r.svc.Restore(ctx, id) }
func (r *ProductResource) RestoreBatch(ctx context.Context, ids []int64) error {
	return r.svc.RestoreBatch(ctx, ids)
}

type productDetailsPayload struct {
	ProductID           int64  `json:"productId" binding:"required"`
	CharacteristicName  string `json:"characteristicName" binding:"required"`
	CharacteristicValue string `json:"characteristicValue"`
}

type ProductDetailsResource struct {
	svc *service.ProductDetailsService
}

func NewProductDetailsResource(svc *service.ProductDetailsService) *ProductDetailsResource {
	return &ProductDetailsResource{svc: svc}
}

func (r *ProductDetailsResource) List(c *gin.Context) (PageData, error) {
	req := pageRequest(c)
	ctx := c.Request.Context()
	if id, ok, err := queryID(c, "productId"); err != nil {
		return PageData{}, err
	} else if ok {
		page, err := r.svc.FilterByProduct(ctx, id, req)
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

func (r *ProductDetailsResource) Get(c *gin.Context, id int64) (any, error) {
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *ProductDetailsResource) decode(c *gin.Context) (*models.ProductDetails, error) {
	var payload productDetailsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "body", Message: "productId and characteristicName are required"})
	}
	return &models.ProductDetails{
		ProductID:           payload.ProductID,
		CharacteristicName:  payload.CharacteristicName,
		CharacteristicValue: payload.CharacteristicValue,
	}, nil
}

func (r *ProductDetailsResource) Create(c *gin.Context) (any, error) {
	details, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Save(c.Request.Context(), details); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *ProductDetailsResource) Update(c *gin.Context, id int64) (any, error) {
	details, err := r.decode(c)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Update(c.Request.Context(), id, details); err != nil {
		return nil, err
	}
	return r.svc.FindByID(c.Request.Context(), id)
}

func (r *ProductDetailsResource) LogicDelete(ctx context.Context, id int64) error {
	return r.svc.LogicDelete(ctx, id)
}
func (r *ProductDetailsResource) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.LogicDeleteBatch(ctx, ids)
}
func (r *ProductDetailsResource) Delete(ctx context.Context, id int64) error {
	return r.svc.Delete(ctx, id)
}
func (r *ProductDetailsResource) DeleteBatch(ctx context.Context, ids []int64) error {
	return r.svc.DeleteBatch(ctx, ids)
}
func (r *ProductDetailsResource) Restore(ctx context.Context, id int64) error {
	return r.svc.Restore(ctx, id)
}
func (r *ProductDetailsResource) RestoreBatch(ctx context.Context, ids []int64) error {
	return r.svc.RestoreBatch(ctx, ids)
}
