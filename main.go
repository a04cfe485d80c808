package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"apotek/internal/config"
	"apotek/internal/handlers"
	"apotek/internal/middleware"
	"apotek/internal/models"
	"apotek/internal/repositories"
	"apotek/internal/services"
	"apotek/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := newLogger(cfg.LogLevel)

	app, cleanup, err := NewApp(cfg, log)
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}
	defer cleanup()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	log.Info("Server gracefully stopped")
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.Level = lvl
	} else {
		log.WithField("level", level).Warn("unknown log level, using info")
	}
	return log
}

// backend groups the ports of the pharmacy backend.
type backend struct {
	name      string
	medicines repositories.MedicineRepository
	orders    repositories.OrderRepository
	payments  repositories.PaymentGateway
	scanner   repositories.DocumentScanner
}

func newBackend(cfg *config.Config, db *gorm.DB, log logrus.FieldLogger) (backend, error) {
	if cfg.BackendURL == "" {
		medicines, err := newLocalCatalog(db, log)
		if err != nil {
			return backend{}, err
		}
		return backend{
			name:      "mock",
			medicines: medicines,
			orders:    repositories.NewMockOrderRepository(),
			payments:  repositories.NewMockPaymentGateway(cfg.PaymentDeclineMethods...),
			scanner:   repositories.NewCatalogScanner(medicines),
		}, nil
	}

	client := repositories.NewRESTClient(cfg.BackendURL, &http.Client{Timeout: cfg.BackendTimeout}, log.WithField("component", "backend"))
	return backend{
		name:      "rest",
		medicines: repositories.NewRESTMedicineRepository(client),
		orders:    repositories.NewRESTOrderRepository(client),
		payments:  repositories.NewRESTPaymentGateway(client),
		scanner:   repositories.NewRESTDocumentScanner(client),
	}, nil
}

// newLocalCatalog keeps the seeded catalog in the cart database when there is one,
// and in memory otherwise.
func newLocalCatalog(db *gorm.DB, log logrus.FieldLogger) (repositories.MedicineRepository, error) {
	if db == nil {
		medicines := repositories.NewMockMedicineRepository()
		seedMedicines(medicines, log)
		return medicines, nil
	}

	medicines, err := repositories.NewGORMMedicineRepository(db)
	if err != nil {
		return nil, err
	}
	n, err := medicines.Count(context.Background())
	if err != nil {
		return nil, err
	}
	if n == 0 {
		seedMedicines(medicines, log)
	}
	return medicines, nil
}

// newCartStorage opens the cart storage. The returned db is nil for the memory driver.
func newCartStorage(cfg *config.Config) (repositories.CartStorage, *gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.CartStorageDriver {
	case "memory":
		return repositories.NewMemoryCartStorage(), nil, nil
	case "sqlite":
		dialector = sqlite.Open(cfg.CartStorageDSN)
	case "postgres":
		dialector = postgres.Open(cfg.CartStorageDSN)
	default:
		return nil, nil, fmt.Errorf("unknown cart storage driver %q", cfg.CartStorageDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to cart storage: %w", err)
	}
	storage, err := repositories.NewGORMCartStorage(db)
	if err != nil {
		return nil, nil, err
	}
	return storage, db, nil
}

// NewApp wires the storefront. The returned cleanup closes external connections.
func NewApp(cfg *config.Config, log logrus.FieldLogger) (*fiber.App, func(), error) {
	storage, db, err := newCartStorage(cfg)
	if err != nil {
		return nil, nil, err
	}
	be, err := newBackend(cfg, db, log)
	if err != nil {
		return nil, nil, err
	}

	var (
		events  services.OrderEventPublisher
		cleanup = func() {}
	)
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log.WithField("component", "rabbitmq"))
		if err != nil {
			return nil, nil, err
		}
		events = mqClient
		cleanup = func() {
			if err := mqClient.Close(); err != nil {
				log.WithError(err).Warn("Error closing RabbitMQ client")
			}
		}
	}

	// --- Services ---
	carts := services.NewCartStores(storage, cfg.CartStorageNamespace, log.WithField("component", "cart"))
	catalogService := services.NewCatalogService(be.medicines)
	checkoutService := services.NewCheckoutService(be.orders, be.payments, events, cfg.CheckoutNominalAmount, log.WithField("component", "checkout"))
	orderService := services.NewOrderService(be.orders)
	prescriptionService := services.NewPrescriptionService(be.scanner, be.medicines, log.WithField("component", "prescription"))
	identityService := services.NewIdentityService(cfg.JWTSecret, log.WithField("component", "identity"))

	// --- Handlers ---
	handlerLog := log.WithField("component", "http")
	catalogHandler := handlers.NewCatalogHandler(catalogService, handlerLog)
	cartHandler := handlers.NewCartHandler(carts, catalogService, handlerLog)
	checkoutHandler := handlers.NewCheckoutHandler(carts, checkoutService, handlerLog)
	orderHandler := handlers.NewOrderHandler(orderService, handlerLog)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService, carts, handlerLog)

	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1", middleware.Session(cfg.SessionCookie), middleware.Identity(identityService, handlerLog))
	catalogHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	checkoutHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)
	prescriptionHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"backend": be.name,
			"events":  events != nil,
		})
	})

	return app, cleanup, nil
}

type medicineCreator interface {
	Create(m *models.Medicine) error
}

// seedMedicines populates the local catalog used when no backend is configured.
func seedMedicines(repo medicineCreator, log logrus.FieldLogger) {
	medicines := []models.Medicine{
		{ID: "med-1", Name: "Paracetamol", Form: "tablet", Strength: "500mg", Manufacturer: "Cipla", Category: "Analgesic", Price: decimal.RequireFromString("25.50"), StockQuantity: 120},
		{ID: "med-2", Name: "Amoxicillin", Form: "capsule", Strength: "250mg", Manufacturer: "Sun Pharma", Category: "Antibiotic", Price: decimal.RequireFromString("45.00"), StockQuantity: 40, PrescriptionRequired: true},
		{ID: "med-3", Name: "Cetirizine", Form: "tablet", Strength: "10mg", Manufacturer: "Dr. Reddy's", Category: "Antihistamine", Price: decimal.RequireFromString("18.75"), StockQuantity: 60},
		{ID: "med-4", Name: "Cough Syrup", Form: "syrup", Strength: "100ml", Manufacturer: "Dabur", Category: "Respiratory", Price: decimal.RequireFromString("89.00"), StockQuantity: 0},
	}

	for i := range medicines {
		if err := repo.Create(&medicines[i]); err != nil {
			log.WithError(err).Errorf("Error seeding medicine %s", medicines[i].Name)
			continue
		}
		log.WithField("medicine", medicines[i].ID).Debugf("Seeded medicine: %s", medicines[i].Name)
	}
}
