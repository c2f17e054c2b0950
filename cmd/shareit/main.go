package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/e1zenberg/java-shareit/internal/app/availability"
	"github.com/e1zenberg/java-shareit/internal/app/policies"
	bookingapp "github.com/e1zenberg/java-shareit/internal/app/services/booking"
	itemapp "github.com/e1zenberg/java-shareit/internal/app/services/item"
	requestapp "github.com/e1zenberg/java-shareit/internal/app/services/request"
	userapp "github.com/e1zenberg/java-shareit/internal/app/services/user"
	domainbooking "github.com/e1zenberg/java-shareit/internal/domain/booking"
	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainrequest "github.com/e1zenberg/java-shareit/internal/domain/request"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
	"github.com/e1zenberg/java-shareit/internal/infra/broker/kafka"
	"github.com/e1zenberg/java-shareit/internal/infra/config"
	mongostore "github.com/e1zenberg/java-shareit/internal/infra/db/mongo"
	ginserver "github.com/e1zenberg/java-shareit/internal/infra/http/gin"
	"github.com/e1zenberg/java-shareit/internal/infra/obs"
	"github.com/e1zenberg/java-shareit/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	stores, ready, closeStores, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer closeStores()

	publisher, closePublisher := buildPublisher(cfg, logger)
	defer closePublisher()

	aggregator := &availability.Aggregator{Bookings: stores.bookings}
	handlers := ginserver.Handlers{
		Users: ginserver.UserHandler{
			Users: &userapp.Service{Users: stores.users, Logger: logger},
		},
		Items: ginserver.ItemHandler{
			Items: &itemapp.Service{
				Items:        stores.items,
				Comments:     stores.comments,
				Users:        stores.users,
				Bookings:     stores.bookings,
				Availability: aggregator,
				Logger:       logger,
			},
		},
		Bookings: ginserver.BookingHandler{
			Bookings: &bookingapp.Service{
				Bookings: stores.bookings,
				Items:    stores.items,
				Users:    stores.users,
				Events:   publisher,
				Logger:   logger,
			},
		},
		Requests: ginserver.RequestHandler{
			Requests: &requestapp.Service{
				Requests: stores.requests,
				Items:    stores.items,
				Users:    stores.users,
				Logger:   logger,
			},
		},
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.Storage)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type stores struct {
	users    domainuser.Repository
	items    domainitem.Repository
	bookings domainbooking.Repository
	comments domainitem.CommentRepository
	requests domainrequest.Repository
}

func buildStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, func() error, func(), error) {
	if cfg.Storage == config.StorageMongo {
		client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return stores{}, nil, nil, err
		}
		users := mongostore.NewUserRepository(client.DB)
		indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := users.EnsureIndexes(indexCtx); err != nil {
			return stores{}, nil, nil, err
		}
		items := mongostore.NewItemRepository(client.DB)
		logger.Info("mongo storage ready", "db", cfg.MongoDB)
		ready := func() error { return client.Ping(context.Background()) }
		closeStores := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		}
		return stores{
			users:    users,
			items:    items,
			bookings: mongostore.NewBookingRepository(client.DB, items),
			comments: mongostore.NewCommentRepository(client.DB),
			requests: mongostore.NewRequestRepository(client.DB),
		}, ready, closeStores, nil
	}

	items := memory.NewItemRepository()
	return stores{
		users:    memory.NewUserRepository(),
		items:    items,
		bookings: memory.NewBookingRepository(items),
		comments: memory.NewCommentRepository(),
		requests: memory.NewRequestRepository(),
	}, func() error { return nil }, func() {}, nil
}

func buildPublisher(cfg config.Config, logger *slog.Logger) (policies.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return policies.NopPublisher{}, func() {}
	}
	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, nil)
	if err != nil {
		logger.Warn("kafka unavailable, events disabled", "error", err)
		return policies.NopPublisher{}, func() {}
	}
	logger.Info("kafka publisher ready", "topic", cfg.KafkaTopic)
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("kafka close failed", "error", err)
		}
	}
}
