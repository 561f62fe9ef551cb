package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reserve/internal/booking"
	"github.com/iliyamo/court-reserve/internal/config"
	"github.com/iliyamo/court-reserve/internal/database"
	"github.com/iliyamo/court-reserve/internal/handler"
	"github.com/iliyamo/court-reserve/internal/middleware"
	"github.com/iliyamo/court-reserve/internal/queue"
	"github.com/iliyamo/court-reserve/internal/repository"
	"github.com/iliyamo/court-reserve/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	clubs := repository.NewClubRepo(db)
	courts := repository.NewCourtRepo(db)
	reservations := repository.NewReservationRepo(db)
	series := repository.NewSeriesRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	ledger := booking.NewLedger(courts, reservations, series, booking.RolePermissions{})

	authH := handler.NewAuthHandler(cfg, users, tokens)
	ownerH := handler.NewOwnerHandler(clubs, courts)
	bookingH := handler.NewBookingHandler(ledger, reservations, series)
	publicH := &handler.PublicHandler{ClubRepo: clubs, CourtRepo: courts, ReservationRepo: reservations}

	e := echo.New()
	e.HideBanner = true

	// Redis is optional: when unreachable the limiter and cache become
	// pass-throughs and the server still boots.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cacheMW)
	router.RegisterBooking(e, bookingH, cfg.JWTSecret)
	router.RegisterAdmin(e, ownerH, cfg.JWTSecret)

	// audit consumer; reconnects forever on its own
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
