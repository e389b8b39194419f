package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vepsplus/fieldops/internal/config"
	"github.com/vepsplus/fieldops/internal/db"
	"github.com/vepsplus/fieldops/internal/http/api"
	"github.com/vepsplus/fieldops/internal/notify"
	"github.com/vepsplus/fieldops/internal/repo"
)

// main runs the CLI entrypoint and exits on unrecoverable command errors.
func main() {
	if errRun := run(context.Background(), os.Args[1:]); errRun != nil {
		log.WithError(errRun).Error("command failed")
		os.Exit(1)
	}
}

// run parses flags, loads config, and either bootstraps a user or starts
// the API server.
func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fieldops", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file path (or env CONFIG_PATH)")
	port := fs.Int("port", 0, "server port (overrides config)")
	createUser := fs.String("create-user", "", "bootstrap an account as username:password:role and exit")
	if errParse := fs.Parse(args); errParse != nil {
		return errParse
	}

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	path := config.ResolveConfigPath(strings.TrimSpace(*cfgPath))
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if *port != 0 {
		if errValidate := validatePort(*port); errValidate != nil {
			return errValidate
		}
		cfg.Port = *port
	}

	conn, errOpen := db.Open(cfg.DatabaseDSN)
	if errOpen != nil {
		return fmt.Errorf("open database: %w", errOpen)
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return fmt.Errorf("migrate database: %w", errMigrate)
	}

	if *createUser != "" {
		return bootstrapUser(ctx, conn, *createUser)
	}

	return serve(ctx, conn, &cfg)
}

// serve runs the HTTP API until the context is cancelled or a termination
// signal arrives.
func serve(ctx context.Context, conn *gorm.DB, cfg *config.AppConfig) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher := notify.NewLogPublisher()
	reminder := notify.NewReminder(conn, publisher)
	if errStart := reminder.Start(ctx); errStart != nil {
		return fmt.Errorf("start reminder job: %w", errStart)
	}
	defer reminder.Stop()

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	api.RegisterRoutes(engine, conn, cfg, publisher)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("field operations API listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case errServe := <-errCh:
		if errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			return errServe
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return errShutdown
		}
		log.Info("server stopped")
		return nil
	}
}

// bootstrapUser creates an account from a username:password:role triple.
func bootstrapUser(ctx context.Context, conn *gorm.DB, triple string) error {
	parts := strings.SplitN(triple, ":", 3)
	if len(parts) != 3 {
		return fmt.Errorf("expected username:password:role, got %q", triple)
	}
	users := repo.NewUserRepo(conn)
	user, errCreate := users.Create(ctx, parts[0], parts[1], parts[2])
	if errCreate != nil {
		return errCreate
	}
	log.WithFields(log.Fields{"user_id": user.ID, "username": user.Username, "role": user.Role}).Info("user created")
	return nil
}

func validatePort(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port: %d", port)
	}
	return nil
}
