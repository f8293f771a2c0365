package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/database/books"
	http_controllers "github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/security"
	"github.com/mrlokans/library/internal/services"
)

const sessionLifetime = 24 * time.Hour

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill -9 can't be caught, so only SIGINT and SIGTERM are handled
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// OpenLibrary wires the storage layer and the library service for
// DATABASE_URL. The caller owns the returned database.
func OpenLibrary(cfg *config.Config, logLevel logger.LogLevel, recorder services.ChangeRecorder) (*database.Database, *services.LibraryService, error) {
	if cfg.Database.URL == "" {
		log.Printf("WARNING: DATABASE_URL is not set. Storage calls will fail until it is configured.")
	}

	db, err := database.NewDatabase(cfg.Database.URL, logLevel)
	if err != nil {
		return nil, nil, err
	}

	library := services.NewLibraryService(books.NewRepository(db.DB), recorder)
	return db, library, nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Personal Library Manager v%s", version)

	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}

	auditor := audit.NewAuditor(cfg.Audit.Dir)
	if auditor.Enabled() {
		log.Printf("Audit trail enabled, writing to %s", cfg.Audit.Dir)
	}

	db, library, err := OpenLibrary(cfg, logger.Warn, auditor)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// The server keeps running without a schema; each view then shows the
	// storage error instead.
	if err := library.Initialize(context.Background()); err != nil {
		log.Printf("Database initialization error: %v", err)
	}

	var csrfSecret []byte
	if cfg.Security.CSRFEnabled {
		if cfg.Security.CSRFSecret != "" {
			csrfSecret = security.DecodeSecret(cfg.Security.CSRFSecret)
		} else {
			secret, err := security.GenerateSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret = security.DecodeSecret(secret)
			log.Printf("Generated CSRF secret (set CSRF_SECRET to persist)")
		}
	} else {
		log.Printf("WARNING: CSRF protection is disabled")
	}

	routerCfg := http_controllers.RouterConfig{
		Library:       library,
		Database:      db,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		CSRFSecret:    csrfSecret,
		SecureCookies: cfg.Security.SecureCookies,
		Sessions:      security.NewSessionManager(sessionLifetime, cfg.Security.SecureCookies),
		Version:       version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg, nil)
}
