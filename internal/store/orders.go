package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backoffice-service/internal/models"

	"github.com/jmoiron/sqlx"
)

var orderSortColumns = map[string]string{
	"id":          "id",
	"status":      "status",
	"totalAmount": "total_amount",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

func (s *Store) ListOrders(ctx context.Context, deleted bool, req PageRequest) (Page[models.Order], error) {
	return selectPage[models.Order](ctx, s.db, "orders",
		"WHERE deleted = $1", req.orderClause(orderSortColumns), []any{deleted}, req)
}

func (s *Store) FilterOrdersByUser(ctx context.Context, userID int64, req PageRequest) (Page[models.Order], error) {
	return selectPage[models.Order](ctx, s.db, "orders",
		"WHERE deleted = false AND user_id = $1",
		req.orderClause(orderSortColumns), []any{userID}, req)
}

func (s *Store) FilterOrdersByStatus(ctx context.Context, status string, req PageRequest) (Page[models.Order], error) {
	return selectPage[models.Order](ctx, s.db, "orders",
		"WHERE deleted = false AND status = $1",
		req.orderClause(orderSortColumns), []any{status}, req)
}

// GetOrderByID returns the order with its items, or nil.
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := s.GetOrderItemsByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// GetOrderItemsByOrderID retrieves all items for an order
func (s *Store) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", orderID)
	return items, err
}

// CreateOrderWithItems persists the order and all its items in one
// transaction: all rows succeed or none do.
func (s *Store) CreateOrderWithItems(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (user_id, total_amount, status, delivery_address, comment, deleted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	if err := tx.QueryRowxContext(ctx, query,
		order.UserID, order.TotalAmount, order.Status,
		order.DeliveryAddress, order.Comment, order.Deleted).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err := insertOrderItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateOrderWithItems rewrites the order row and replaces its items in
// one transaction.
func (s *Store) UpdateOrderWithItems(ctx context.Context, order *models.Order) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET user_id = $1, total_amount = $2, status = $3,
		    delivery_address = $4, comment = $5, updated_at = NOW()
		WHERE id = $6`,
		order.UserID, order.TotalAmount, order.Status,
		order.DeliveryAddress, order.Comment, order.ID)
	if err != nil {
		return err
	}
	if err := requireAffected(result, "orders", order.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM order_items WHERE order_id = $1", order.ID); err != nil {
		return fmt.Errorf("failed to clear order items: %w", err)
	}
	if err := insertOrderItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}
	return tx.Commit()
}

func insertOrderItems(ctx context.Context, tx *sqlx.Tx, orderID int64, items []models.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	for i := range items {
		items[i].OrderID = orderID
		if err := tx.GetContext(ctx, &items[i].ID, query,
			orderID, items[i].ProductID, items[i].Quantity,
			items[i].Price, items[i].Subtotal); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return nil
}

// UpdateOrderStatus updates order status
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		status, orderID)
	if err != nil {
		return err
	}
	return requireAffected(result, "orders", orderID)
}

func (s *Store) SetOrderDeleted(ctx context.Context, id int64, deleted bool) error {
	return s.setDeleted(ctx, "orders", id, deleted)
}

func (s *Store) SetOrdersDeleted(ctx context.Context, ids []int64, deleted bool) error {
	return s.setDeletedBatch(ctx, "orders", ids, deleted)
}

// DeleteOrder removes the row; the FK cascade removes its items.
func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "orders", id)
}

func (s *Store) DeleteOrders(ctx context.Context, ids []int64) error {
	return s.deleteRows(ctx, "orders", ids)
}
