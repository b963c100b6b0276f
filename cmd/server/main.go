package main

import (
	"backend-triage/internal/audit"
	"backend-triage/internal/auth"
	"backend-triage/internal/config"
	"backend-triage/internal/http/handler"
	"backend-triage/internal/models"
	"backend-triage/internal/queue"
	"backend-triage/internal/realtime"
	"context"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config.LoadEnv()
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	creds, err := auth.ParseCredentials(cfg.StaffUsers)
	if err != nil {
		logger.WithError(err).Fatal("STAFF_USERS tidak valid")
	}

	authOpts := auth.Options{}
	if cfg.StaffPasswordHashed {
		authOpts.Verifier = auth.BcryptVerifier{}
	}
	if cfg.JWTSecret != "" {
		authOpts.Minter = auth.JWTMinter{Secret: []byte(cfg.JWTSecret)}
	}
	authority := auth.NewAuthority(creds, logger, authOpts)

	clock := queue.NewClock()
	store := queue.NewStore(clock, queue.NewIssuer(), queue.StoreOptions{
		RecentLimit: cfg.RecentCompletedLimit,
	})
	orderer := queue.NewOrderer(cfg.AvgServiceMinutes)

	// Hub needs the service for fresh projections, the service needs the hub
	// as a notifier.
	var svc *queue.Service
	hub := realtime.NewHub(func() models.QueueView { return svc.View() }, logger)
	notifiers := []queue.Notifier{hub}

	redisClient, err := config.NewRedis(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
		notifiers = append(notifiers, realtime.NewPublisher(redisClient, cfg.RedisChannel))
		logger.WithField("channel", cfg.RedisChannel).Info("publishing queue events to redis")
	}

	db, err := config.OpenDB(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("database")
	}
	if db != nil {
		defer db.Close()
		recorder := audit.NewRecorder(db)
		if err := recorder.Migrate(ctx); err != nil {
			logger.WithError(err).Fatal("audit migration")
		}
		notifiers = append(notifiers, recorder)
		logger.Info("recording queue transactions to mysql")
	}

	svc = queue.NewService(store, orderer, authority, clock, logger, notifiers...)

	app := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, OPTIONS",
	}))

	handler.SetupRoutes(app, handler.New(svc, authority, hub, logger), handler.RouteOptions{
		BasicAuthUser: cfg.BasicAuthUser,
		BasicAuthPass: cfg.BasicAuthPass,
	})

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			logger.WithError(err).Error("shutdown")
		}
	}()

	logger.WithField("addr", cfg.Addr()).Info("server jalan")
	if err := app.Listen(cfg.Addr()); err != nil {
		logger.WithError(err).Fatal("listen")
	}
}
