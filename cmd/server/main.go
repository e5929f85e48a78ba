package main // API server entry point

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/limoncello/reservation-api/internal/availability"
	"github.com/limoncello/reservation-api/internal/config"
	"github.com/limoncello/reservation-api/internal/database"
	"github.com/limoncello/reservation-api/internal/handler"
	"github.com/limoncello/reservation-api/internal/mailer"
	"github.com/limoncello/reservation-api/internal/middleware"
	"github.com/limoncello/reservation-api/internal/queue"
	"github.com/limoncello/reservation-api/internal/repository"
	"github.com/limoncello/reservation-api/internal/router"
	"github.com/limoncello/reservation-api/internal/schedule"
)

func main() {
	// .env is optional; real deployments inject environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	// Repositories.
	venues := repository.NewVenueRepo(db)
	people := repository.NewPersonRepo(db)
	bookings := repository.NewBookingRepo(db)
	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	tokens := repository.NewTokenRepo(db)

	// Scheduling core: venue schedules are validated at startup so a typo in
	// the rules fails fast instead of surfacing as an empty hours list.
	registry, err := schedule.NewRegistry(schedule.DefaultVenueSchedules(), schedule.NewColombiaCalendar())
	if err != nil {
		log.Fatalf("schedule: %v", err)
	}
	engine := availability.NewEngine(registry, bookings, func() time.Time { return time.Now().In(cfg.Timezone) })
	locks := availability.NewSlotLocks()

	mail := mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom)

	// Handlers.
	venueH := handler.NewVenueHandler(venues)
	hoursH := handler.NewHoursHandler(engine)
	bookingH := handler.NewBookingHandler(cfg, engine, locks, bookings, people, venues, mail)
	authH := handler.NewAuthHandler(cfg, users, people, roles, tokens, mail)
	personH := handler.NewPersonHandler(people)
	userH := handler.NewUserHandler(cfg, users, people, roles, mail)
	roleH := handler.NewRoleHandler(roles)

	// Booking event consumer runs for the lifetime of the process.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, venueH, hoursH, bookingH, config.LoadCacheConfig(), rdb)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterStaff(e, bookingH, personH, userH, roleH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, tz=%s)", addr, cfg.Env, cfg.Timezone)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
