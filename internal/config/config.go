package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Security
		Audit
	}

	HTTP struct {
		Port    int32
		Host    string
		GinMode string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		// URL is either a postgres URL/DSN or a sqlite path (sqlite://, file: or *.db).
		URL string
	}
	UI struct {
		TemplatesPath string // Empty means the embedded templates are used
		StaticPath    string // Empty means the embedded static assets are used
	}
	Security struct {
		CSRFEnabled   bool
		CSRFSecret    string // Hex or raw; generated at startup if empty
		SecureCookies bool   // Set to true when served over HTTPS
	}
	Audit struct {
		Dir string // Empty disables the audit trail
	}
)

// NewConfig resolves the process configuration once at startup.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment take precedence.
func NewConfig() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from %s", DefaultEnvFile)
	}
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_url", "")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("templates_path", "")
	v.SetDefault("static_path", "")

	// Form protection defaults
	v.SetDefault("csrf_enabled", true)
	v.SetDefault("csrf_secret", "") // Auto-generated if empty
	v.SetDefault("secure_cookies", false)

	v.SetDefault("audit_dir", "")
	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		HTTP: HTTP{
			Port:    v.GetInt32("PORT"),
			Host:    v.GetString("HOST"),
			GinMode: v.GetString("GIN_MODE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			URL: v.GetString("DATABASE_URL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Security: Security{
			CSRFEnabled:   v.GetBool("CSRF_ENABLED"),
			CSRFSecret:    v.GetString("CSRF_SECRET"),
			SecureCookies: v.GetBool("SECURE_COOKIES"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
	}
}
