package service

import (
	"context"
	"fmt"
	"time"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/broker"
	"backoffice-service/internal/models"
	"backoffice-service/internal/store"
	"backoffice-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type OrderRepository interface {
	ListOrders(ctx context.Context, deleted bool, req store.PageRequest) (store.Page[models.Order], error)
	FilterOrdersByUser(ctx context.Context, userID int64, req store.PageRequest) (store.Page[models.Order], error)
	FilterOrdersByStatus(ctx context.Context, status string, req store.PageRequest) (store.Page[models.Order], error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	CreateOrderWithItems(ctx context.Context, order *models.Order) error
	UpdateOrderWithItems(ctx context.Context, order *models.Order) error
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
	SetOrderDeleted(ctx context.Context, id int64, deleted bool) error
	SetOrdersDeleted(ctx context.Context, ids []int64, deleted bool) error
	DeleteOrder(ctx context.Context, id int64) error
	DeleteOrders(ctx context.Context, ids []int64) error
}

type UserResolver interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type ProductsResolver interface {
	GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
}

// OrderService prices items from the product catalog at write time:
// item price and subtotal always come from the stored product, never
// from the request.
type OrderService struct {
	repo      OrderRepository
	users     UserResolver
	products  ProductsResolver
	publisher broker.Publisher
	logger    *zap.Logger
}

func NewOrderService(repo OrderRepository, users UserResolver,
	products ProductsResolver, publisher broker.Publisher) *OrderService {
	return &OrderService{
		repo:      repo,
		users:     users,
		products:  products,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

func (s *OrderService) FindAllActive(ctx context.Context, req store.PageRequest) (store.Page[models.Order], error) {
	return s.repo.ListOrders(ctx, false, req)
}

func (s *OrderService) FindAllDeleted(ctx context.Context, req store.PageRequest) (store.Page[models.Order], error) {
	return s.repo.ListOrders(ctx, true, req)
}

func (s *OrderService) FilterByUser(ctx context.Context, userID int64, req store.PageRequest) (store.Page[models.Order], error) {
	return s.repo.FilterOrdersByUser(ctx, userID, req)
}

func (s *OrderService) FilterByStatus(ctx context.Context, status string, req store.PageRequest) (store.Page[models.Order], error) {
	if !models.ValidOrderStatus(status) {
		return store.Page[models.Order]{}, apperr.InvalidArgument("unknown order status: %s", status)
	}
	return s.repo.FilterOrdersByStatus(ctx, status, req)
}

func (s *OrderService) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.NotFound("order %d not found", id)
	}
	return order, nil
}

// priceItems resolves each item's product, copies the catalog price and
// recomputes subtotals. Returns the order total.
func (s *OrderService) priceItems(ctx context.Context, items []models.OrderItem) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, apperr.Validation("validation failed",
			apperr.FieldError{Field: "items", Message: "order must contain at least one item"})
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return decimal.Zero, apperr.Validation("validation failed",
				apperr.FieldError{Field: "quantity", Message: "must be greater than zero"})
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return decimal.Zero, err
	}
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	total := decimal.Zero
	for i := range items {
		product, ok := byID[items[i].ProductID]
		if !ok {
			return decimal.Zero, apperr.NotFound("product %d not found", items[i].ProductID)
		}
		items[i].Price = product.Price
		items[i].Subtotal = product.Price.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		total = total.Add(items[i].Subtotal)
	}
	return total, nil
}

func (s *OrderService) resolveUser(ctx context.Context, userID int64) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user %d not found", userID)
	}
	return nil
}

func (s *OrderService) Save(ctx context.Context, order *models.Order) error {
	ctx, span := util.StartSpan(ctx, "OrderService.Save")
	defer span.End()

	if err := s.resolveUser(ctx, order.UserID); err != nil {
		return err
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if !models.ValidOrderStatus(order.Status) {
		return apperr.InvalidArgument("unknown order status: %s", order.Status)
	}

	total, err := s.priceItems(ctx, order.Items)
	if err != nil {
		return err
	}
	order.TotalAmount = total
	order.Deleted = false

	if err := s.repo.CreateOrderWithItems(ctx, order); err != nil {
		return err
	}
	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.String("total_amount", order.TotalAmount.String()))

	s.publishOrderCreated(ctx, order)
	return nil
}

func (s *OrderService) Update(ctx context.Context, id int64, order *models.Order) error {
	ctx, span := util.StartSpan(ctx, fmt.Sprintf("OrderService.Update %d", id))
	defer span.End()

	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.resolveUser(ctx, order.UserID); err != nil {
		return err
	}
	if !models.ValidOrderStatus(order.Status) {
		return apperr.InvalidArgument("unknown order status: %s", order.Status)
	}

	total, err := s.priceItems(ctx, order.Items)
	if err != nil {
		return err
	}

	oldStatus := existing.Status
	existing.UserID = order.UserID
	existing.Status = order.Status
	existing.DeliveryAddress = order.DeliveryAddress
	existing.Comment = order.Comment
	existing.Items = order.Items
	existing.TotalAmount = total

	if err := s.repo.UpdateOrderWithItems(ctx, existing); err != nil {
		return err
	}
	if oldStatus != existing.Status {
		s.publishStatusChanged(ctx, existing.ID, oldStatus, existing.Status)
	}
	return nil
}

// UpdateStatus moves the order to a new status without touching items.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !models.ValidOrderStatus(status) {
		return apperr.InvalidArgument("unknown order status: %s", status)
	}
	existing, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status == status {
		return nil
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return err
	}
	s.publishStatusChanged(ctx, id, existing.Status, status)
	return nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *models.Order) {
	items := make([]models.OrderItemData, len(order.Items))
	for i, item := range order.Items {
		items[i] = models.OrderItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal,
		}
	}
	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now().UTC(),
		},
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       items,
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish order created event",
			zap.Int64("order_id", order.ID), zap.Error(err))
	}
}

func (s *OrderService) publishStatusChanged(ctx context.Context, orderID int64, oldStatus, newStatus string) {
	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now().UTC(),
		},
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
	if err := s.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish order status changed event",
			zap.Int64("order_id", orderID), zap.Error(err))
	}
}

func (s *OrderService) LogicDelete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetOrderDeleted(ctx, id, true); err != nil {
		return err
	}
	util.EntitiesSoftDeletedTotal.WithLabelValues("orders").Inc()
	return nil
}

func (s *OrderService) LogicDeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetOrdersDeleted(ctx, ids, true)
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteOrder(ctx, id)
}

func (s *OrderService) DeleteBatch(ctx context.Context, ids []int64) error {
	return s.repo.DeleteOrders(ctx, ids)
}

func (s *OrderService) Restore(ctx context.Context, id int64) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetOrderDeleted(ctx, id, false); err != nil {
		return err
	}
	util.EntitiesRestoredTotal.WithLabelValues("orders").Inc()
	return nil
}

func (s *OrderService) RestoreBatch(ctx context.Context, ids []int64) error {
	return s.repo.SetOrdersDeleted(ctx, ids, false)
}
