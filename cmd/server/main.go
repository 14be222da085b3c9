package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice-service/config"
	"backoffice-service/internal/api"
	"backoffice-service/internal/auth"
	"backoffice-service/internal/broker"
	"backoffice-service/internal/service"
	"backoffice-service/internal/store"
	"backoffice-service/internal/util"
	"backoffice-service/internal/web"
	"backoffice-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting back-office service")

	tp, err := util.InitTracer("backoffice-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	sessions, err := auth.NewRedisSessionRegistry(
		cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Auth.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer sessions.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	publisher := broker.NewEventPublisher(producer)

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)

	roleService := service.NewRoleService(db)
	userService := service.NewUserService(db, db, hasher)
	categoryService := service.NewCategoryService(db)
	manufacturerService := service.NewManufacturerService(db)
	supplierService := service.NewSupplierService(db)
	productService := service.NewProductService(db, db, db, db)
	productDetailsService := service.NewProductDetailsService(db, db)
	orderService := service.NewOrderService(db, db, db, publisher)
	reviewService := service.NewReviewService(db, db, db)
	authService := service.NewAuthService(db, db, hasher, tokens, sessions, publisher)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := roleService.SeedDefaults(seedCtx); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}
	seedCancel()

	pool := worker.NewPool(cfg.Worker.MinWorkers, cfg.Worker.MaxWorkers, cfg.Worker.QueueCapacity)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*.tmpl")

	services := api.Services{
		Auth:           authService,
		Roles:          roleService,
		Users:          userService,
		Categories:     categoryService,
		Manufacturers:  manufacturerService,
		Suppliers:      supplierService,
		Products:       productService,
		ProductDetails: productDetailsService,
		Orders:         orderService,
		Reviews:        reviewService,
		Pool:           pool,
	}
	api.RegisterRoutes(router, services, api.DefaultRouteRules())

	webHandler := web.NewHandler(authService, api.NewAdminRegistry(services))
	webHandler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	pool.Shutdown(10 * time.Second)

	log.Println("Server exited")
}
