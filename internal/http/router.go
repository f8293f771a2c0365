package http

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/security"
	"github.com/mrlokans/library/web"
)

const defaultSessionLifetime = 24 * time.Hour

// templateFuncs are available to every view.
var templateFuncs = template.FuncMap{
	"percent": func(value float64) string {
		return fmt.Sprintf("%.2f", value)
	},
	"genreLabel": entities.GenreLabel,
}

// loadTemplates parses the view templates from templatesPath, or from the
// binary when it is empty.
func loadTemplates(templatesPath string) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs)
	if templatesPath != "" {
		return tmpl.ParseGlob(templatesPath + "/*.html")
	}
	return tmpl.ParseFS(web.Templates(), "*.html")
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(security.SecurityHeadersMiddleware())

	// CSRF must run before the session so the session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	sessions := cfg.Sessions
	if sessions == nil {
		sessions = security.NewSessionManager(defaultSessionLifetime, cfg.SecureCookies)
	}
	router.Use(sessions.LoadAndSave())

	router.SetHTMLTemplate(template.Must(loadTemplates(cfg.TemplatesPath)))

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	} else {
		router.StaticFS("/static", http.FS(web.Static()))
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	ui := NewUIController(cfg.Library, sessions)

	// Health endpoints
	router.GET("/health", health.Status)

	// UI routes
	router.GET("/", ui.BooksPage)
	router.GET("/books", ui.BooksPage)
	router.GET("/add", ui.AddPage)
	router.POST("/add", ui.AddBook)
	router.GET("/search", ui.SearchPage)
	router.GET("/stats", ui.StatsPage)
	router.GET("/remove", ui.RemovePage)
	router.POST("/remove/:id", ui.RemoveBook)

	return router
}
