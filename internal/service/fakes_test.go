package service

import (
	"context"
	"fmt"
	"sort"

	"backoffice-service/internal/auth"
	"backoffice-service/internal/models"
	"backoffice-service/internal/store"

	"github.com/shopspring/decimal"
)

// In-memory repository fakes backing the service unit tests. They keep
// the store contract: lookups return (nil, nil) when the row is absent.

func pageOf[T any](items []T, req store.PageRequest) store.Page[T] {
	return store.NewPage(items, req, int64(len(items)))
}

type fakeRoleRepo struct {
	seq   int64
	roles map[int64]*models.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[int64]*models.Role{}}
}

func (f *fakeRoleRepo) put(role models.Role) *models.Role {
	if role.ID == 0 {
		f.seq++
		role.ID = f.seq
	} else if role.ID > f.seq {
		f.seq = role.ID
	}
	stored := role
	f.roles[role.ID] = &stored
	return &stored
}

func (f *fakeRoleRepo) list(deleted bool) []models.Role {
	var out []models.Role
	for _, role := range f.roles {
		if role.Deleted == deleted {
			out = append(out, *role)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeRoleRepo) ListRoles(_ context.Context, deleted bool, req store.PageRequest) (store.Page[models.Role], error) {
	return pageOf(f.list(deleted), req), nil
}

func (f *fakeRoleRepo) SearchRolesByName(_ context.Context, query string, req store.PageRequest) (store.Page[models.Role], error) {
	var out []models.Role
	for _, role := range f.list(false) {
		if role.Name == query {
			out = append(out, role)
		}
	}
	return pageOf(out, req), nil
}

func (f *fakeRoleRepo) GetRoleByID(_ context.Context, id int64) (*models.Role, error) {
	role, ok := f.roles[id]
	if !ok {
		return nil, nil
	}
	copied := *role
	return &copied, nil
}

func (f *fakeRoleRepo) GetRoleByName(_ context.Context, name string) (*models.Role, error) {
	for _, role := range f.roles {
		if role.Name == name {
			copied := *role
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRoleRepo) RoleNameInUse(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, role := range f.roles {
		if role.Name == name && role.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoleRepo) InsertRole(_ context.Context, role *models.Role) error {
	role.ID = f.put(*role).ID
	return nil
}

func (f *fakeRoleRepo) UpdateRole(_ context.Context, role *models.Role) error {
	f.put(*role)
	return nil
}

func (f *fakeRoleRepo) SetRoleDeleted(_ context.Context, id int64, deleted bool) error {
	if role, ok := f.roles[id]; ok {
		role.Deleted = deleted
	}
	return nil
}

func (f *fakeRoleRepo) SetRolesDeleted(ctx context.Context, ids []int64, deleted bool) error {
	for _, id := range ids {
		if err := f.SetRoleDeleted(ctx, id, deleted); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRoleRepo) DeleteRole(_ context.Context, id int64) error {
	delete(f.roles, id)
	return nil
}

func (f *fakeRoleRepo) DeleteRoles(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(f.roles, id)
	}
	return nil
}

type fakeUserRepo struct {
	seq   int64
	users map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (f *fakeUserRepo) put(user models.User) *models.User {
	if user.ID == 0 {
		f.seq++
		user.ID = f.seq
	} else if user.ID > f.seq {
		f.seq = user.ID
	}
	stored := user
	f.users[user.ID] = &stored
	return &stored
}

func (f *fakeUserRepo) list(deleted bool) []models.User {
	var out []models.User
	for _, user := range f.users {
		if user.Deleted == deleted {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeUserRepo) ListUsers(_ context.Context, deleted bool, req store.PageRequest) (store.Page[models.User], error) {
	return pageOf(f.list(deleted), req), nil
}

func (f *fakeUserRepo) SearchUsersByName(_ context.Context, query string, req store.PageRequest) (store.Page[models.User], error) {
	var out []models.User
	for _, user := range f.list(false) {
		if user.Name == query {
			out = append(out, user)
		}
	}
	return pageOf(out, req), nil
}

func (f *fakeUserRepo) SearchUsersByEmail(_ context.Context, query string, req store.PageRequest) (store.Page[models.User], error) {
	var out []models.User
	for _, user := range f.list(false) {
		if user.Email == query {
			out = append(out, user)
		}
	}
	return pageOf(out, req), nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	for _, user := range f.users {
		if user.Deleted {
			continue
		}
		if user.Email == login || (user.Phone != "" && user.Phone == login) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) EmailInUse(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, user := range f.users {
		if !user.Deleted && user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) PhoneInUse(_ context.Context, phone string, excludeID int64) (bool, error) {
	for _, user := range f.users {
		if !user.Deleted && user.Phone == phone && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) InsertUser(_ context.Context, user *models.User) error {
	user.ID = f.put(*user).ID
	return nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	f.put(*user)
	return nil
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, id int64) error { return nil }

func (f *fakeUserRepo) SetUserDeleted(_ context.Context, id int64, deleted bool) error {
	if user, ok := f.users[id]; ok {
		user.Deleted = deleted
	}
	return nil
}

func (f *fakeUserRepo) SetUsersDeleted(ctx context.Context, ids []int64, deleted bool) error {
	for _, id := range ids {
		if err := f.SetUserDeleted(ctx, id, deleted); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) DeleteUsers(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(f.users, id)
	}
	return nil
}

type fakeCategoryRepo struct {
	categories map[int64]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[int64]*models.Category{}}
}

func (f *fakeCategoryRepo) GetCategoryByID(_ context.Context, id int64) (*models.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *category
	return &copied, nil
}

type fakeManufacturerRepo struct {
	manufacturers map[int64]*models.Manufacturer
}

func newFakeManufacturerRepo() *fakeManufacturerRepo {
	return &fakeManufacturerRepo{manufacturers: map[int64]*models.Manufacturer{}}
}

func (f *fakeManufacturerRepo) GetManufacturerByID(_ context.Context, id int64) (*models.Manufacturer, error) {
	m, ok := f.manufacturers[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

type fakeSupplierRepo struct {
	suppliers map[int64]*models.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: map[int64]*models.Supplier{}}
}

func (f *fakeSupplierRepo) GetSuppliersByIDs(_ context.Context, ids []int64) ([]models.Supplier, error) {
	var out []models.Supplier
	for _, id := range ids {
		if supplier, ok := f.suppliers[id]; ok {
			out = append(out, *supplier)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	seq      int64
	products map[int64]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[int64]*models.Product{}}
}

func (f *fakeProductRepo) put(product models.Product) *models.Product {
	if product.ID == 0 {
		f.seq++
		product.ID = f.seq
	} else if product.ID > f.seq {
		f.seq = product.ID
	}
	stored := product
	f.products[product.ID] = &stored
	return &stored
}

func (f *fakeProductRepo) list(deleted bool) []models.Product {
	var out []models.Product
	for _, product := range f.products {
		if product.Deleted == deleted {
			out = append(out, *product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeProductRepo) ListProducts(_ context.Context, deleted bool, req store.PageRequest) (store.Page[models.Product], error) {
	return pageOf(f.list(deleted), req), nil
}

func (f *fakeProductRepo) SearchProductsByName(_ context.Context, query string, req store.PageRequest) (store.Page[models.Product], error) {
	var out []models.Product
	for _, product := range f.list(false) {
		if product.Name == query {
			out = append(out, product)
		}
	}
	return pageOf(out, req), nil
}

func (f *fakeProductRepo) FilterProductsByCategory(_ context.Context, categoryID int64, req store.PageRequest) (store.Page[models.Product], error) {
	var out []models.Product
	for _, product := range f.list(false) {
		if product.CategoryID == categoryID {
			out = append(out, product)
		}
	}
	return pageOf(out, req), nil
}

func (f *fakeProductRepo) FilterProductsByManufacturer(_ context.Context, manufacturerID int64, req store.PageRequest) (store.Page[models.Product], error) {
	var out []models.Product
	for _, product := range f.list(false) {
		if product.ManufacturerID == manufacturerID {
			out = append(out, product)
		}
	}
	return pageOf(out, req), nil
}

func (f *fakeProductRepo) FilterProductsBySupplier(_ context.Context, supplierID int64, req store.PageRequest) (store.Page[models.Product], error) {
	var out []models.Product
	for _, product := range f.list(false) {
		for _, id := range product.SupplierIDs {
			if id == supplierID {
				out = append(out, product)
				break
			}
		}
	}
	return pageOf(out, req), nil
}

func (f *fakeProductRepo) FilterProductsByPriceRange(_ context.Context, min, max *decimal.Decimal, req store.PageRequest) (store.Page[models.Product], error) {
	var out []models.Product
	for _, product := range f.list(false) {
		if min != nil && product.Price.LessThan(*min) {
			continue
		}
		if max != nil && product.Price.GreaterThan(*max) {
			continue
		}
		out = append(out, product)
	}
	return pageOf(out, req), nil
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) GetProductsByIDs(_ context.Context, ids []int64) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if product, ok := f.products[id]; ok {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) InsertProduct(_ context.Context, product *models.Product) error {
	product.ID = f.put(*product).ID
	return nil
}

func (f *fakeProductRepo) UpdateProduct(_ context.Context, product *models.Product) error {
	f.put(*product)
	return nil
}

func (f *fakeProductRepo) SetProductDeleted(_ context.Context, id int64, deleted bool) error {
	if product, ok := f.products[id]; ok {
		product.Deleted = deleted
	}
	return nil
}

func (f *fakeProductRepo) SetProductsDeleted(ctx context.Context, ids []int64, deleted bool) error {
	for _, id := range ids {
		if err := f.SetProductDeleted(ctx, id, deleted); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeProductRepo) DeleteProduct(_ context.Context, id int64) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) DeleteProducts(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(f.products, id)
	}
	return nil
}

type fakeOrderRepo struct {
	seq    int64
	orders map[int64]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*models.Order{}}
}

func (f *fakeOrderRepo) put(order models.Order) *models.Order {
	if order.ID == 0 {
		f.seq++
		order.ID = f.seq
	} else if order.ID > f.seq {
		f.seq = order.ID
	}
	stored := order
	f.orders[order.ID] = &stored
	return &stored
}

func (f *fakeOrderRepo) list(deleted bool) []models.Order {
	var out []models.Order
	for _, order := range f.orders {
		if order.Deleted == deleted {
			out = append(out, *order)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeOrderRepo) ListOrders(_ context.Context, deleted bool, req store.PageRequest) (store.Page[models.Order], error) {
	return pageOf(f.list(deleted), req), nil
}

func (f *fakeOrderRepo) FilterOrdersByUser(_ context.Context, userID int64, req store.PageRequest) (store.Page[models.Order], error) {
	var out []models.Order
	for _, order := range f.list(false) {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return pageOf(out, req), nil
}

func (f *fakeOrderRepo) FilterOrdersByStatus(_ context.Context, status string, req store.PageRequest) (store.Page[models.Order], error) {
	var out []models.Order
	for _, order := range f.list(false) {
		if order.Status == status {
			out = append(out, order)
		}
	}
	return pageOf(out, req), nil
}

func (f *fakeOrderRepo) GetOrderByID(_ context.Context, id int64) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) CreateOrderWithItems(_ context.Context, order *models.Order) error {
	order.ID = f.put(*order).ID
	return nil
}

func (f *fakeOrderRepo) UpdateOrderWithItems(_ context.Context, order *models.Order) error {
	f.put(*order)
	return nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(_ context.Context, orderID int64, status string) error {
	if order, ok := f.orders[orderID]; ok {
		order.Status = status
	}
	return nil
}

func (f *fakeOrderRepo) SetOrderDeleted(_ context.Context, id int64, deleted bool) error {
	if order, ok := f.orders[id]; ok {
		order.Deleted = deleted
	}
	return nil
}

func (f *fakeOrderRepo) SetOrdersDeleted(ctx context.Context, ids []int64, deleted bool) error {
	for _, id := range ids {
		if err := f.SetOrderDeleted(ctx, id, deleted); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeOrderRepo) DeleteOrder(_ context.Context, id int64) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) DeleteOrders(_ context.Context, ids []int64) error {
	for _, id := range ids {
		delete(f.orders, id)
	}
	return nil
}

// fakePublisher records published events.
type fakePublisher struct {
	orderCreated  []*models.OrderCreatedEvent
	statusChanged []*models.OrderStatusChangedEvent
	registered    []*models.UserRegisteredEvent
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, event *models.OrderCreatedEvent) error {
	f.orderCreated = append(f.orderCreated, event)
	return nil
}

func (f *fakePublisher) PublishOrderStatusChanged(_ context.Context, event *models.OrderStatusChangedEvent) error {
	f.statusChanged = append(f.statusChanged, event)
	return nil
}

func (f *fakePublisher) PublishUserRegistered(_ context.Context, event *models.UserRegisteredEvent) error {
	f.registered = append(f.registered, event)
	return nil
}

// fakeHasher avoids bcrypt cost in unit tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Verify(password, hash string) bool { return hash == "hashed:"+password }

// fakeSessions is an in-memory session registry with the same
// one-session-per-user eviction as the Redis one.
type fakeSessions struct {
	seq      int
	sessions map[string]*auth.Session
	byUser   map[int64]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: map[string]*auth.Session{}, byUser: map[int64]string{}}
}

func (f *fakeSessions) Create(_ context.Context, userID int64, username, role string) (*auth.Session, error) {
	if previous, ok := f.byUser[userID]; ok {
		delete(f.sessions, previous)
	}
	f.seq++
	session := &auth.Session{
		ID:       fmt.Sprintf("session-%d", f.seq),
		UserID:   userID,
		Username: username,
		Role:     role,
	}
	f.sessions[session.ID] = session
	f.byUser[userID] = session.ID
	return session, nil
}

func (f *fakeSessions) Get(_ context.Context, sessionID string) (*auth.Session, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessions) Destroy(_ context.Context, sessionID string) error {
	if session, ok := f.sessions[sessionID]; ok {
		delete(f.byUser, session.UserID)
		delete(f.sessions, sessionID)
	}
	return nil
}
