package http

import (
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/security"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Library  Library
	Database *database.Database

	// UI paths; empty means the assets embedded in the binary
	TemplatesPath string
	StaticPath    string

	// Form protection. CSRF is off when CSRFSecret is empty.
	CSRFSecret    []byte
	SecureCookies bool

	// Flash message sessions; a default in-memory manager is created when nil
	Sessions *security.SessionManager

	// Application info
	Version string
}
