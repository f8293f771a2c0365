// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookReader: LoadAll, Search, Stats and GetByID (internal/services/interfaces.go)
//   - BookWriter: Add and Remove (internal/services/interfaces.go)
//   - BookStore: BookReader + BookWriter + InitializeSchema, implemented by
//     internal/database/books.Repository
//
// ## Orchestration Interfaces
//
//   - Library: what the UI controller needs from the catalog (internal/http/stores.go),
//     implemented by services.LibraryService
//   - ChangeRecorder: receives successful adds and removals (internal/services/interfaces.go),
//     implemented by audit.Auditor
//
// # Adding a New Storage Backend
//
// The repository works on any gorm dialector. To support another backend:
//
//  1. Teach database.Dialector to recognise its DATABASE_URL form.
//
//  2. Extend books.Kind if the driver reports constraint violations in its own way.
//
// # Adding a New View
//
//  1. Add the template under web/templates, defining a template named after the view.
//
//  2. Add a handler to UIController that builds its data with pageData.
//
//  3. Register the route in router.go and a navigation entry in layout.html.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
