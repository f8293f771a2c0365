package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/library/internal/entities"
)

const (
	EventBookAdded   = "book_added"
	EventBookRemoved = "book_removed"
)

// Event is one catalog change as written to disk.
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	BookID     uint           `json:"book_id"`
	Book       *entities.Book `json:"book,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Auditor writes catalog changes as JSON documents, one file per event.
// An Auditor with an empty directory records nothing.
type Auditor struct {
	AuditDir string
	now      func() time.Time
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
		now:      time.Now,
	}
}

// Enabled reports whether events are written anywhere.
func (a *Auditor) Enabled() bool {
	return a != nil && a.AuditDir != ""
}

func (a *Auditor) BookAdded(book entities.Book) {
	a.record(EventBookAdded, book.ID, &book)
}

func (a *Auditor) BookRemoved(id uint, book *entities.Book) {
	a.record(EventBookRemoved, id, book)
}

func (a *Auditor) record(eventType string, bookID uint, book *entities.Book) {
	if !a.Enabled() {
		return
	}

	event := Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		BookID:     bookID,
		Book:       book,
		OccurredAt: a.now().UTC(),
	}
	if _, err := a.SaveJSON(event.ID, event); err != nil {
		log.Printf("Failed to write audit event %s for book %d: %v", eventType, bookID, err)
	}
}

// SaveJSON writes data to <AuditDir>/<name>.json and returns the file name.
func (a *Auditor) SaveJSON(name string, data any) (string, error) {
	if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audit directory: %w", err)
	}

	filename := fmt.Sprintf("%s.json", name)
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	return filename, nil
}
