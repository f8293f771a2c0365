package http

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/library/internal/services"
)

// AddBookForm is the add view's form as posted by the browser.
type AddBookForm struct {
	Title  string `form:"title"`
	Author string `form:"author"`
	Year   int    `form:"year" binding:"required,min=1000,max=9999"`
	Genre  string `form:"genre"`
	Read   string `form:"read" binding:"omitempty,oneof=yes no"`
}

// addFormValues is what the template re-renders into the inputs.
type addFormValues struct {
	Title  string
	Author string
	Year   string
	Genre  string
	Read   string
}

func defaultAddFormValues() addFormValues {
	return addFormValues{
		Year: strconv.Itoa(time.Now().Year()),
		Read: "yes",
	}
}

// submittedAddFormValues echoes raw input back so a rejected form keeps it.
func submittedAddFormValues(c *gin.Context) addFormValues {
	values := addFormValues{
		Title:  c.PostForm("title"),
		Author: c.PostForm("author"),
		Year:   c.PostForm("year"),
		Genre:  c.PostForm("genre"),
		Read:   c.PostForm("read"),
	}
	if values.Read == "" {
		values.Read = "no"
	}
	return values
}

// bindAddBookForm converts the posted form into a candidate book. A non-empty
// message means the submission was rejected and must not reach storage.
// Missing title or author wins over any other problem.
func bindAddBookForm(c *gin.Context) (services.NewBook, string) {
	if strings.TrimSpace(c.PostForm("title")) == "" || strings.TrimSpace(c.PostForm("author")) == "" {
		return services.NewBook{}, services.MsgTitleAuthorRequired
	}

	var form AddBookForm
	if err := c.ShouldBind(&form); err != nil {
		return services.NewBook{}, formatBindError(err)
	}

	return services.NewBook{
		Title:  form.Title,
		Author: form.Author,
		Year:   form.Year,
		Genre:  form.Genre,
		Read:   form.Read == "yes",
	}, ""
}

func formatBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Publication year must be a whole number"
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, buildFieldMessage(fe))
	}
	return strings.Join(messages, "; ")
}

func buildFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Year":
		if fe.Tag() == "required" {
			return "Publication year is required"
		}
		return "Publication year must be between 1000 and 9999"
	case "Read":
		return "Read status must be Yes or No"
	}
	return strings.ToLower(fe.Field()) + " is invalid (" + fe.Tag() + ")"
}
