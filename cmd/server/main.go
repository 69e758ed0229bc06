package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"coursemanager/internal/config"
	"coursemanager/internal/database"
	"coursemanager/internal/handler"
	"coursemanager/internal/logging"
	"coursemanager/internal/metrics"
	"coursemanager/internal/middleware"
	"coursemanager/internal/observability"
	"coursemanager/internal/recaptcha"
	"coursemanager/internal/repository"
	"coursemanager/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	cfg := config.Load()

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer lg.Closer()
	logger := lg.Sugar

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "coursemanager")
	if err != nil {
		logger.Warnw("sentry init failed", "err", err)
	}
	defer flushSentry()

	// The store is a boot-time dependency; without it there is nothing
	// to serve.
	db, err := database.Open(cfg.DSN())
	if err != nil {
		logger.Fatalw("database connect failed", "err", err)
	}
	defer db.Close()

	if err := database.Migrate(db, "migrations"); err != nil {
		logger.Fatalw("database migrate failed", "err", err)
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	sessions := session.NewManager(sessionRepo, []byte(cfg.SessionKey), logger)
	captcha := recaptcha.NewVerifier(cfg.RecaptchaSecret, cfg.RecaptchaVerifyURL, logger)

	errorHandler := handler.NewErrorHandler(logger)
	authHandler := handler.NewAuthHandler(userRepo, sessions, captcha, logger)
	dashboardHandler := handler.NewDashboardHandler(courseRepo, sessions, errorHandler, logger)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(metrics.Middleware)

	r.Get("/", authHandler.LoginPage)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterPage)
	r.Post("/register", authHandler.Register)
	r.Get("/logout", authHandler.Logout)
	r.Get("/auth/check", authHandler.Check)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessions))
		r.Get("/dashboard", dashboardHandler.Dashboard)
		r.Post("/dashboard", dashboardHandler.DashboardPost)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := db.PingContext(ctx); err != nil {
			http.Error(w, "db not ok", http.StatusServiceUnavailable)
			return
		}
		metrics.ObserveDBPing(time.Since(t0))
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	// Anything outside the route table is a 404 page.
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.NotFound)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infow("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutCtx)
}
