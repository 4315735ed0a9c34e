package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinicflow/intake/internal/config"
	"github.com/clinicflow/intake/internal/domain/intake"
	"github.com/clinicflow/intake/internal/domain/roster"
	"github.com/clinicflow/intake/internal/platform/auth"
	"github.com/clinicflow/intake/internal/platform/db"
	"github.com/clinicflow/intake/internal/platform/middleware"
)

const version = "0.1.0"

// RosterSource adapts a roster.Service to the intake.DoctorSource interface,
// keeping the intake package free of roster types.
type RosterSource struct {
	svc *roster.Service
}

func NewRosterSource(svc *roster.Service) *RosterSource {
	return &RosterSource{svc: svc}
}

// ListDoctors implements intake.DoctorSource.
func (a *RosterSource) ListDoctors(ctx context.Context) ([]intake.Doctor, error) {
	doctors, err := a.svc.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	return toIntakeDoctors(doctors), nil
}

func toIntakeDoctors(doctors []*roster.Doctor) []intake.Doctor {
	out := make([]intake.Doctor, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, intake.Doctor{
			ID:             d.ID,
			Name:           d.Name,
			Specialization: d.Specialization,
			Available:      d.Available,
		})
	}
	return out
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "intake-server",
		Short: "Patient intake and assignment API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(assignCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the intake API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid config")
		return err
	}

	ctx := context.Background()

	// Roster
	var pool *pgxpool.Pool
	var rosterRepo roster.Repository
	if cfg.HasDatabase() {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Error().Err(err).Msg("failed to connect to database")
			return err
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
		rosterRepo = roster.NewRepoPG(pool)
	} else {
		rosterRepo = roster.NewMemoryRepo(nil)
	}
	rosterSvc := roster.NewService(rosterRepo)
	if err := seedRoster(ctx, rosterSvc, cfg, logger); err != nil {
		return err
	}

	intakeSvc := intake.NewService(NewRosterSource(rosterSvc), logger)
	if cfg.SeedDemo {
		n, err := seedPatients(ctx, intakeSvc, intake.DemoPatients())
		if err != nil {
			return err
		}
		logger.Info().Int("patients", n).Msg("seeded demo patients")
	}

	// Auth
	revoked := auth.NewTokenRevocationStore(10 * time.Minute)
	defer revoked.Close()
	jwtCfg := auth.JWTConfig{
		Issuer:     cfg.JWTIssuer,
		SigningKey: []byte(cfg.JWTSecret),
		Revoked:    revoked,
	}
	users := auth.NewUserStore()
	if cfg.AdminEmail != "" {
		if _, err := users.SeedAdmin(cfg.AdminEmail, []byte(cfg.AdminPasswordHash)); err != nil {
			logger.Error().Err(err).Msg("failed to seed admin account")
			return err
		}
	}

	e := newServer(cfg, logger)

	var authMW echo.MiddlewareFunc
	if cfg.IsDev() {
		authMW = auth.DevAuthMiddleware(jwtCfg)
	} else {
		authMW = auth.JWTMiddleware(jwtCfg)
	}

	// Anonymous calls are limited per client IP; authenticated calls run
	// the limiter after auth so they are limited per user.
	apiV1 := e.Group("/api/v1")
	public := apiV1.Group("", middleware.RateLimit(rateLimitConfig(cfg)))
	protected := apiV1.Group("", authMW, middleware.RateLimit(rateLimitConfig(cfg)))

	auth.NewHandler(users, auth.NewIssuer(jwtCfg, cfg.TokenTTL), revoked).RegisterRoutes(public, protected)
	roster.NewHandler(rosterSvc).RegisterRoutes(public, protected)
	intake.NewHandler(intakeSvc).RegisterRoutes(protected)

	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer builds the echo instance with global middleware and /health.
func newServer(cfg *config.Config, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(middleware.DefaultBodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	return e
}

func rateLimitConfig(cfg *config.Config) middleware.RateLimitConfig {
	rl := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rl.RequestsPerSecond <= 0 || rl.BurstSize <= 0 {
		return middleware.DefaultRateLimitConfig()
	}
	return rl
}

// seedRoster loads ROSTER_FILE and, with SEED_DEMO, the demo doctors.
// Doctors already present are left alone.
func seedRoster(ctx context.Context, svc *roster.Service, cfg *config.Config, logger zerolog.Logger) error {
	var doctors []*roster.Doctor
	if cfg.RosterFile != "" {
		loaded, err := roster.LoadFile(cfg.RosterFile)
		if err != nil {
			logger.Error().Err(err).Str("file", cfg.RosterFile).Msg("failed to load roster")
			return err
		}
		doctors = append(doctors, loaded...)
	}
	if cfg.SeedDemo {
		doctors = append(doctors, roster.DemoDoctors()...)
	}
	if len(doctors) == 0 {
		return nil
	}

	added, err := svc.Seed(ctx, doctors)
	if err != nil {
		return fmt.Errorf("seed roster: %w", err)
	}
	logger.Info().Int("doctors", added).Msg("seeded roster")
	return nil
}

func seedPatients(ctx context.Context, svc *intake.Service, patients []intake.Patient) (int, error) {
	for i := range patients {
		if err := svc.CreatePatient(ctx, &patients[i]); err != nil {
			return i, fmt.Errorf("seed patient %s: %w", patients[i].ID, err)
		}
	}
	return len(patients), nil
}
