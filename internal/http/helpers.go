package http

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/security"
)

// Views, used as template names and to highlight the navigation entry.
const (
	viewAdd    = "add"
	viewSearch = "search"
	viewBooks  = "books"
	viewStats  = "stats"
	viewRemove = "remove"
)

var viewTitles = map[string]string{
	viewAdd:    "📘 Add a New Book",
	viewSearch: "🔍 Search for a Book",
	viewBooks:  "📚 Your Library Collection",
	viewStats:  "📊 Library Statistics",
	viewRemove: "❌ Remove Books",
}

// pageData builds the template data shared by every view: navigation state,
// the CSRF token and any pending flash message. A known "error" query code,
// set by the CSRF failure redirect, becomes the error banner.
func pageData(c *gin.Context, sessions *security.SessionManager, view string) gin.H {
	data := gin.H{
		"Title":         viewTitles[view],
		"Active":        view,
		"CSRFToken":     security.GetCSRFToken(c),
		"CSRFFieldName": security.CSRFFieldName,
		"Flash":         nil,
		"Warning":       "",
		"Error":         "",
		"Info":          "",
	}
	if msg := security.ErrorMessage(c.Query("error")); msg != "" {
		data["Error"] = msg
	}
	if sessions != nil {
		if flash := sessions.PopFlash(c.Request.Context()); flash != nil {
			data["Flash"] = flash
		}
	}
	return data
}

// redirectWithFlash finishes a POST: the message is shown by the page the
// browser lands on.
func redirectWithFlash(c *gin.Context, sessions *security.SessionManager, location, kind, message string) {
	sessions.PutFlash(c.Request.Context(), kind, message)
	c.Redirect(http.StatusSeeOther, location)
}

// logError records an internal failure that is shown to the user as a banner.
func logError(context string, err error) {
	log.Printf("Internal error (%s) %s: %v", context, errorTags(err), err)
}

// errorTags names the storage operation that failed and how it failed.
func errorTags(err error) string {
	op, ok := books.OperationOf(err)
	if !ok {
		op = "-"
	}
	return fmt.Sprintf("op=%s kind=%s", op, books.Kind(err))
}

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid book ID")
		return 0, false
	}
	return uint(id), true
}
