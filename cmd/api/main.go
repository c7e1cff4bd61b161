package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/config"
	"github.com/cmlabs-hris/certtracker/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/certtracker/internal/handler/http"
	"github.com/cmlabs-hris/certtracker/internal/pkg/cron"
	"github.com/cmlabs-hris/certtracker/internal/pkg/email"
	"github.com/cmlabs-hris/certtracker/internal/pkg/jwt"
	"github.com/cmlabs-hris/certtracker/internal/pkg/sse"
	"github.com/cmlabs-hris/certtracker/internal/repository"
	serviceAuth "github.com/cmlabs-hris/certtracker/internal/service/auth"
	serviceCompany "github.com/cmlabs-hris/certtracker/internal/service/company"
	dashboardService "github.com/cmlabs-hris/certtracker/internal/service/dashboard"
	notificationService "github.com/cmlabs-hris/certtracker/internal/service/notification"
	rosterService "github.com/cmlabs-hris/certtracker/internal/service/roster"
	userService "github.com/cmlabs-hris/certtracker/internal/service/user"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.SlogLevel(),
	})).With(slog.String("app", "certtracker"), slog.String("env", cfg.App.Env)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := repository.Open(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer repos.Close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	companyService := serviceCompany.NewCompanyService(repos.Companies, repos.ManagerCodes)
	authService := serviceAuth.NewAuthService(repos.Transactor, repos.Users, companyService, JWTService, repos.RefreshTokens, cfg.App.DemoEnabled)
	usersService := userService.NewUserService(repos.Users, companyService)
	rosterSvc := rosterService.NewRosterService(repos.Roster, companyService)
	dashboardSvc := dashboardService.NewDashboardService(repos.Roster, time.Now)
	mailer, err := email.NewMailer(cfg.SMTP)
	if err != nil {
		return err
	}
	emailInterval := cfg.Alerts.EmailInterval
	if cfg.SMTP.Host == "" {
		emailInterval = 0
	}
	notifSvc := notificationService.NewNotificationService(repos.Users, repos.Roster, hub, notificationService.Config{
		Mailer:    mailer,
		Directory: companyService,
	})

	if cfg.App.DemoEnabled {
		if err := fixtures.SeedDemo(ctx, companyService, repos.Roster, time.Now()); err != nil {
			return err
		}
	}

	scheduler := cron.NewScheduler()
	if cfg.Alerts.Enabled {
		cron.NewExpiryJobs(notifSvc, cfg.Alerts.Interval, emailInterval).RegisterJobs(scheduler)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		FrontendURL: cfg.App.FrontendURL,
		Env:         cfg.App.Env,
		Version:     version,
		LogLevel:    cfg.App.SlogLevel(),
	}, JWTService, repos.Users, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(JWTService, authService),
		User:         appHTTP.NewUserHandler(usersService),
		Company:      appHTTP.NewCompanyHandler(companyService),
		Employee:     appHTTP.NewEmployeeHandler(rosterSvc, time.Now),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc, JWTService),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open SSE streams end when the signal context is cancelled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.App.StorageDriver, "demo", cfg.App.DemoEnabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
