package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/handler"
	"storefront-api/internal/metrics"
	"storefront-api/internal/middleware"
	"storefront-api/internal/payment"
	"storefront-api/internal/repository"
	"storefront-api/internal/router"
	"storefront-api/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	brandRepo := repository.NewBrandRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	slog.Info("database ready")

	services, err := NewServices(cfg, Stores{
		Users:      userRepo,
		Sessions:   sessionRepo,
		Products:   productRepo,
		Categories: categoryRepo,
		Brands:     brandRepo,
		Cart:       cartRepo,
		Orders:     orderRepo,
	}, payment.NewStripeProcessor(cfg.StripeSecretKey))
	if err != nil {
		db.Close()
		return nil, err
	}

	appRouter := NewRouter(cfg, services, db)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go services.Sessions.StartCleanupTicker(cleanupCtx, cfg.SessionCleanupInterval, func(removed int64, err error) {
		if err != nil {
			slog.Error("session cleanup failed", "error", err)
			return
		}
		metrics.RecordSessionsPurged(removed)
		if removed > 0 {
			slog.Info("expired sessions purged", "count", removed)
		}
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			func() {
				cleanupCancel()
			},
			func() {
				db.Close()
			},
		},
	}, nil
}

// Stores is the persistence the services run on: PostgreSQL in production,
// the in-memory stores in tests.
type Stores struct {
	Users      service.UserStore
	Sessions   service.SessionStore
	Products   service.ProductStore
	Categories service.OptionStore
	Brands     service.OptionStore
	Cart       service.CartStore
	Orders     service.OrderStore
}

type Services struct {
	Auth     *service.AuthService
	Sessions *service.SessionService
	Users    *service.UserService
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Orders   *service.OrderService
	Payments *service.PaymentService
}

func NewServices(cfg *config.Config, stores Stores, processor payment.Processor) (*Services, error) {
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, stores.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	sessions, err := service.NewSessionService(stores.Sessions, cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session service: %w", err)
	}

	verifier := service.NewCredentialVerifier(stores.Users)

	return &Services{
		Auth:     service.NewAuthService(stores.Users, verifier, tokens, sessions),
		Sessions: sessions,
		Users:    service.NewUserService(stores.Users),
		Catalog:  service.NewCatalogService(stores.Products, stores.Categories, stores.Brands),
		Cart:     service.NewCartService(stores.Cart, stores.Products),
		Orders:   service.NewOrderService(stores.Orders, stores.Products),
		Payments: service.NewPaymentService(processor),
	}, nil
}

// NewRouter builds handlers over services. db may be nil, which skips the
// database ping in /health.
func NewRouter(cfg *config.Config, services *Services, db *database.DB) http.Handler {
	var health *handler.HealthHandler
	if db != nil {
		health = handler.NewHealthHandler(db)
	} else {
		health = handler.NewHealthHandler(nil)
	}

	gate := middleware.NewGate(services.Auth, services.Sessions)

	return router.New(cfg, gate, router.Handlers{
		Auth: handler.NewAuthHandler(services.Auth, handler.CookieOptions{
			Secure:     cfg.IsProduction(),
			TokenTTL:   cfg.TokenCookieTTL,
			SessionTTL: cfg.SessionTTL,
		}),
		User:     handler.NewUserHandler(services.Users),
		Product:  handler.NewProductHandler(services.Catalog),
		Category: handler.NewCategoryHandler(services.Catalog),
		Brand:    handler.NewBrandHandler(services.Catalog),
		Cart:     handler.NewCartHandler(services.Cart),
		Order:    handler.NewOrderHandler(services.Orders),
		Payment:  handler.NewPaymentHandler(services.Payments),
		Health:   health,
		Static:   handler.NewStaticHandler(cfg.StaticDir),
	})
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	slog.Info("server stopped")
	return nil
}
