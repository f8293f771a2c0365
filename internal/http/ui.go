package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/database/books"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/security"
	"github.com/mrlokans/library/internal/services"
)

// User-facing notices of the catalog views.
const (
	MsgNoBooksFound = "No books found!"
	MsgEmptyLibrary = "No books in your library yet. Add some!"
)

// errorBanner is the banner shown for a failed storage operation. Rejected
// writes are told apart from an unreachable or broken backend.
func errorBanner(prefix string, err error) string {
	cause := books.Cause(err).Error()
	if books.Kind(err) == books.KindConstraint {
		return prefix + "the database rejected this change (" + cause + ")"
	}
	return prefix + cause
}

type UIController struct {
	library  Library
	sessions *security.SessionManager
}

func NewUIController(library Library, sessions *security.SessionManager) *UIController {
	return &UIController{
		library:  library,
		sessions: sessions,
	}
}

func (controller *UIController) AddPage(c *gin.Context) {
	data := pageData(c, controller.sessions, viewAdd)
	controller.renderAdd(c, http.StatusOK, data, defaultAddFormValues())
}

func (controller *UIController) AddBook(c *gin.Context) {
	data := pageData(c, controller.sessions, viewAdd)

	input, warning := bindAddBookForm(c)
	if warning != "" {
		data["Warning"] = warning
		controller.renderAdd(c, http.StatusBadRequest, data, submittedAddFormValues(c))
		return
	}

	book, err := controller.library.AddBook(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			data["Warning"] = err.Error()
			controller.renderAdd(c, http.StatusBadRequest, data, submittedAddFormValues(c))
			return
		}
		logError("add book", err)
		data["Error"] = errorBanner("Error adding book: ", err)
		controller.renderAdd(c, http.StatusInternalServerError, data, submittedAddFormValues(c))
		return
	}

	redirectWithFlash(c, controller.sessions, "/add", security.FlashSuccess,
		fmt.Sprintf("📖 '%s' by %s added successfully! 🎉", book.Title, book.Author))
}

func (controller *UIController) renderAdd(c *gin.Context, status int, data gin.H, form addFormValues) {
	data["Form"] = form
	data["MinYear"] = entities.MinYear
	data["MaxYear"] = entities.MaxYear
	c.HTML(status, viewAdd, data)
}

// SearchPage shows the search form; once a query is submitted it also shows
// the matches. The view only searches when q is present in the URL.
func (controller *UIController) SearchPage(c *gin.Context) {
	data := pageData(c, controller.sessions, viewSearch)
	data["Books"] = []entities.Book{}

	query, submitted := c.GetQuery("q")
	data["Query"] = query
	if !submitted {
		c.HTML(http.StatusOK, viewSearch, data)
		return
	}

	found, err := controller.library.SearchBooks(c.Request.Context(), query)
	switch {
	case errors.Is(err, services.ErrEmptyQuery):
		data["Warning"] = services.MsgEmptySearch
	case err != nil:
		logError("search books", err)
		data["Error"] = errorBanner("Search error: ", err)
	case len(found) == 0:
		data["Warning"] = MsgNoBooksFound
	default:
		data["Books"] = found
	}

	c.HTML(http.StatusOK, viewSearch, data)
}

func (controller *UIController) BooksPage(c *gin.Context) {
	data := pageData(c, controller.sessions, viewBooks)

	found, err := controller.library.ListBooks(c.Request.Context())
	if err != nil {
		logError("load library", err)
		data["Error"] = errorBanner("Error loading library: ", err)
		found = []entities.Book{}
	}
	if len(found) == 0 {
		data["Info"] = MsgEmptyLibrary
	}
	data["Books"] = found

	c.HTML(http.StatusOK, viewBooks, data)
}

func (controller *UIController) StatsPage(c *gin.Context) {
	data := pageData(c, controller.sessions, viewStats)
	data["Stats"] = nil

	stats, err := controller.library.Statistics(c.Request.Context())
	if err != nil {
		logError("statistics", err)
		data["Error"] = errorBanner("Error loading statistics: ", err)
	} else {
		data["Stats"] = &stats
	}

	c.HTML(http.StatusOK, viewStats, data)
}

func (controller *UIController) RemovePage(c *gin.Context) {
	data := pageData(c, controller.sessions, viewRemove)
	controller.renderRemove(c, http.StatusOK, data)
}

func (controller *UIController) RemoveBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.library.RemoveBook(c.Request.Context(), id)
	if err != nil {
		logError("remove book", err)
		data := pageData(c, controller.sessions, viewRemove)
		data["Error"] = errorBanner("Error removing book: ", err)
		controller.renderRemove(c, http.StatusInternalServerError, data)
		return
	}

	if book == nil {
		redirectWithFlash(c, controller.sessions, "/remove", security.FlashInfo,
			fmt.Sprintf("Book #%d is not in your library.", id))
		return
	}
	redirectWithFlash(c, controller.sessions, "/remove", security.FlashSuccess,
		fmt.Sprintf("'%s' has been removed from your library.", book.Title))
}

func (controller *UIController) renderRemove(c *gin.Context, status int, data gin.H) {
	found, err := controller.library.ListBooks(c.Request.Context())
	if err != nil {
		logError("load library", err)
		if data["Error"] == "" {
			data["Error"] = errorBanner("Error loading library: ", err)
		}
		found = []entities.Book{}
	}
	if len(found) == 0 {
		data["Info"] = MsgEmptyLibrary
	}
	data["Books"] = found

	c.HTML(status, viewRemove, data)
}
