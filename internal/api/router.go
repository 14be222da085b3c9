package api

import (
	"backoffice-service/internal/service"
	"backoffice-service/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles everything the REST surface depends on.
type Services struct {
	Auth           *service.AuthService
	Roles          *service.RoleService
	Users          *service.UserService
	Categories     *service.CategoryService
	Manufacturers  *service.ManufacturerService
	Suppliers      *service.SupplierService
	Products       *service.ProductService
	ProductDetails *service.ProductDetailsService
	Orders         *service.OrderService
	Reviews        *service.ReviewService
	Pool           *worker.Pool
}

// NewAdminRegistry builds the full nine-entity registry for the
// administrator surface.
func NewAdminRegistry(s Services) *Registry {
	registry := NewRegistry()
	registry.Register("roles", NewRoleResource(s.Roles))
	registry.Register("users", NewUserResource(s.Users))
	registry.Register("categories", NewCategoryResource(s.Categories))
	registry.Register("manufacturers", NewManufacturerResource(s.Manufacturers))
	registry.Register("suppliers", NewSupplierResource(s.Suppliers))
	registry.Register("products", NewProductResource(s.Products))
	registry.Register("productdetails", NewProductDetailsResource(s.ProductDetails))
	registry.Register("orders", NewOrderResource(s.Orders))
	registry.Register("reviews", NewReviewResource(s.Reviews))
	return registry
}

// NewManagerRegistry builds the manager surface: full access to the
// catalog operations side, read access to the reference data.
func NewManagerRegistry(s Services) *Registry {
	registry := NewRegistry()
	registry.Register("products", NewProductResource(s.Products))
	registry.Register("productdetails", NewProductDetailsResource(s.ProductDetails))
	registry.Register("orders", NewOrderResource(s.Orders))
	registry.Register("reviews", NewReviewResource(s.Reviews))
	registry.RegisterReadOnly("categories", NewCategoryResource(s.Categories))
	registry.RegisterReadOnly("manufacturers", NewManufacturerResource(s.Manufacturers))
	registry.RegisterReadOnly("users", NewUserResource(s.Users))
	return registry
}

// RegisterRoutes mounts the whole REST surface on the engine. The
// caller adds the web MVC routes separately.
func RegisterRoutes(router *gin.Engine, s Services, rules []RouteRule) {
	router.Use(MetricsMiddleware())
	router.Use(AuthMiddleware(s.Auth, rules))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(s.Auth)
	authHandler.Mount(router.Group("/api/v1/auth"))
	authHandler.Mount(router.Group("/api/auth"))

	NewAdminRegistry(s).Mount(router.Group("/api/admin"))
	NewAdminRegistry(s).Mount(router.Group("/api/v1/admin"))
	NewManagerRegistry(s).Mount(router.Group("/api/manager"))

	NewAsyncHandler(s.Pool).Mount(router.Group("/api/async"))

	// the authenticated caller's own profile, any role
	router.GET("/api/client/profile", func(c *gin.Context) {
		respondOK(c, gin.H{
			"username": c.GetString(ctxUsername),
			"role":     c.GetString(ctxRole),
		})
	})
}
