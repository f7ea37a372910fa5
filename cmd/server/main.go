package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/linemk/shop-online-api/internal/app"
	"github.com/linemk/shop-online-api/internal/app/handlers"
	"github.com/linemk/shop-online-api/internal/config"
	"github.com/linemk/shop-online-api/internal/lib/logger"
	"github.com/linemk/shop-online-api/internal/lib/metrics"
	"github.com/linemk/shop-online-api/internal/notify"
	"github.com/linemk/shop-online-api/internal/service"
	"github.com/linemk/shop-online-api/internal/storage"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env), slog.String("environment", cfg.Environment))

	// объект приложения с конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(reg)

	// письма уходят через SendGrid; без ключа отправка логируется как неудачная
	if cfg.Email.SendGridAPIKey == "" {
		log.Warn("SENDGRID_API_KEY is not set, emails will not be delivered")
	}
	dispatcher := notify.NewDispatcher(
		log,
		notify.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.From),
		cfg.JWT.Secret,
		cfg.Email.Host,
		notify.WithObserver(appMetrics.ObserveNotification),
	)

	// слой работы с БД по каждому направлению
	db := application.DB
	userRepo := storage.NewUserRepository(db)
	shopRepo := storage.NewShopRepository(db)
	categoryRepo := storage.NewCategoryRepository(db)
	itemRepo := storage.NewItemRepository(db)
	cartRepo := storage.NewCartRepository(db)
	wishListRepo := storage.NewWishListRepository(db)
	reviewRepo := storage.NewReviewRepository(db)
	orderRepo := storage.NewOrderRepository(db)
	shopOrderRepo := storage.NewShopOrderRepository(db)
	newsLetterRepo := storage.NewNewsLetterRepository(db)

	tokenTTL := time.Duration(cfg.JWT.TokenTTL) * time.Minute

	services := handlers.Services{
		Auth:       service.NewAuthService(log, db, userRepo, shopRepo, dispatcher, cfg.JWT.Secret, tokenTTL),
		Users:      service.NewUserService(log, userRepo),
		Shops:      service.NewShopService(log, shopRepo),
		Catalog:    service.NewCatalogService(log, shopRepo, categoryRepo, itemRepo),
		Cart:       service.NewCartService(log, cartRepo, itemRepo),
		WishList:   service.NewWishListService(log, wishListRepo, itemRepo),
		Reviews:    service.NewReviewService(log, reviewRepo, itemRepo, orderRepo),
		Orders:     service.NewOrderService(log, db, userRepo, cartRepo, orderRepo, shopOrderRepo, dispatcher, appMetrics),
		ShopOrders: service.NewShopOrderService(log, userRepo, shopOrderRepo, dispatcher),
		Analytics:  service.NewAnalyticsService(log, itemRepo, shopOrderRepo),
		NewsLetter: service.NewNewsLetterService(log, newsLetterRepo, dispatcher, cfg.JWT.Secret),
	}

	router := handlers.NewRouter(log, handlers.Guards{
		Secret: cfg.JWT.Secret,
		Users:  userRepo,
		Shops:  shopRepo,
	}, services, appMetrics)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
