package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"eventlodging/config"
	_ "eventlodging/docs"
	"eventlodging/internal/adapters/auth"
	"eventlodging/internal/adapters/email"
	"eventlodging/internal/adapters/mq"
	deliveryhttp "eventlodging/internal/delivery/http"
	"eventlodging/internal/delivery/http/controllers"
	"eventlodging/internal/delivery/http/middleware"
	"eventlodging/internal/domain"
	"eventlodging/internal/repository/postgres"
	"eventlodging/internal/repository/redis"
	"eventlodging/internal/services"
	"eventlodging/migrations"
)

// @title Event Lodging API
// @version 1.0
// @description Hotel room booking for event attendees.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return err
	}

	if cfg.RunMigrations {
		if err := migrations.Apply(ctx, db, logger); err != nil {
			return err
		}
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	enrollmentRepo := postgres.NewEnrollmentRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)
	hotelRepo := postgres.NewHotelRepository(db)
	roomRepo := postgres.NewRoomRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	transactor := postgres.NewTransactor(db)

	// Notifications
	var publisher domain.BookingEventPublisher
	if cfg.AMQPURL != "" {
		p, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			return err
		}
		defer p.Close()
		publisher = p
	} else {
		logger.Info("AMQP_URL not set, booking events will not be published")
	}
	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		},
	}, logger)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	notifier := services.NewBookingNotifier(publisher, emailService, userRepo, logger)

	// Services
	gate := services.NewEligibilityGate(enrollmentRepo, ticketRepo)
	accountant := services.NewCapacityAccountant(roomRepo)
	bookingService := services.NewBookingService(gate, accountant, bookingRepo, transactor, notifier)
	hotelService := services.NewHotelService(gate, hotelRepo, roomRepo)
	authService := services.NewAuthService(
		userRepo,
		auth.NewBcryptHasher(0),
		auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTExpiry),
	)

	// Rate limiting
	var limiter middleware.Limiter
	if cfg.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, rate limiter will fail open", "addr", cfg.RedisAddr, "err", err)
		}
		limiter = redis.NewSlidingWindowLimiter(rdb, "rl:booking", cfg.RateLimitRequests, cfg.RateLimitWindow)
	} else {
		logger.Info("REDIS_ADDR not set, rate limiting disabled")
	}

	router := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Logger:   logger,
		Verifier: auth.NewJWTVerifier(cfg.JWTSecret),
		Limiter:  limiter,
		Auth:     controllers.NewAuthController(logger, authService),
		Booking:  controllers.NewBookingController(logger, bookingService),
		Hotel:    controllers.NewHotelController(logger, hotelService),
		Health:   controllers.NewHealthController(db),
	})
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, router))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
