package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is a named authorization level governing route access.
type Role struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Deleted     bool   `db:"deleted" json:"deleted"`
}

// Seed role names, created at startup if absent.
const (
	RoleAdministrator = "Administrator"
	RoleManager       = "Manager"
	RoleClient        = "Client"
)

// User represents a back-office account. Email and phone are unique
// among non-deleted users.
type User struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Email       string     `db:"email" json:"email"`
	Phone       string     `db:"phone" json:"phone"`
	Password    string     `db:"password" json:"-"`
	Address     string     `db:"address" json:"address"`
	RoleID      int64      `db:"role_id" json:"role_id"`
	Active      bool       `db:"active" json:"active"`
	Deleted     bool       `db:"deleted" json:"deleted"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	LastLoginAt *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
}

type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Deleted     bool   `db:"deleted" json:"deleted"`
}

type Manufacturer struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Country string `db:"country" json:"country"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone"`
	Address string `db:"address" json:"address"`
	Deleted bool   `db:"deleted" json:"deleted"`
}

type Supplier struct {
	ID            int64  `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	ContactPerson string `db:"contact_person" json:"contact_person"`
	Email         string `db:"email" json:"email"`
	Phone         string `db:"phone" json:"phone"`
	Address       string `db:"address" json:"address"`
	Deleted       bool   `db:"deleted" json:"deleted"`
}

// Product carries an exact decimal price (strictly positive) and a
// non-negative stock quantity.
type Product struct {
	ID             int64           `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Price          decimal.Decimal `db:"price" json:"price"`
	StockQuantity  int             `db:"stock_quantity" json:"stock_quantity"`
	CategoryID     int64           `db:"category_id" json:"category_id"`
	ManufacturerID int64           `db:"manufacturer_id" json:"manufacturer_id"`
	Deleted        bool            `db:"deleted" json:"deleted"`

	SupplierIDs []int64 `db:"-" json:"supplier_ids,omitempty"`
}

type ProductDetails struct {
	ID                  int64  `db:"id" json:"id"`
	ProductID           int64  `db:"product_id" json:"product_id"`
	CharacteristicName  string `db:"characteristic_name" json:"characteristic_name"`
	CharacteristicValue string `db:"characteristic_value" json:"characteristic_value"`
	Deleted             bool   `db:"deleted" json:"deleted"`
}

// Order statuses
const (
	OrderStatusPending    = "PENDING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the order status values.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              int64           `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"user_id"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status          string          `db:"status" json:"status"`
	DeliveryAddress string          `db:"delivery_address" json:"delivery_address"`
	Comment         string          `db:"comment" json:"comment"`
	Deleted         bool            `db:"deleted" json:"deleted"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem subtotal is derived (price × quantity) and recomputed on
// every create/update.
type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"order_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
}

type Review struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	Deleted   bool      `db:"deleted" json:"deleted"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
