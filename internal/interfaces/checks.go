package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/http"
	"github.com/mrlokans/library/internal/services"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ services.BookStore = (*books.Repository)(nil)

// =============================================================================
// Orchestration
// =============================================================================

// Library implementations used by the UI controller
var _ http.Library = (*services.LibraryService)(nil)

// ChangeRecorder implementations
var _ services.ChangeRecorder = (*audit.Auditor)(nil)
