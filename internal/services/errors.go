package services

import (
	"errors"
	"fmt"

	"github.com/mrlokans/library/internal/entities"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyQuery is returned when a search is submitted without a term.
	ErrEmptyQuery = errors.New("please enter a search term")
)

// Messages shown to the user when a submission is rejected locally.
const (
	MsgTitleAuthorRequired = "Title and author are required!"
	MsgEmptySearch         = "Please enter a search term"
)

var msgYearOutOfRange = fmt.Sprintf("Publication year must be between %d and %d", entities.MinYear, entities.MaxYear)

// ValidationError rejects a candidate before it reaches storage.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
