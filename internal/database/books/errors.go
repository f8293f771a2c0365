package books

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Op names the storage call that produced an error.
type Op string

const (
	OpInitialize Op = "initialize"
	OpLoad       Op = "load"
	OpAdd        Op = "add"
	OpRemove     Op = "remove"
	OpSearch     Op = "search"
	OpStatistics Op = "statistics"
)

var (
	ErrNilBook    = errors.New("book is nil")
	ErrEmptyQuery = errors.New("search query is empty")
)

// OpError is the single failure kind of the storage layer, tagged with the
// operation that failed.
type OpError struct {
	Op  Op
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("books: %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// OperationOf reports which storage call produced err.
func OperationOf(err error) (Op, bool) {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Op, true
	}
	return "", false
}

// Cause strips the OpError wrapper for display.
func Cause(err error) error {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Err
	}
	return err
}

type ErrorKind int

const (
	KindBackend ErrorKind = iota
	KindConstraint
)

func (k ErrorKind) String() string {
	if k == KindConstraint {
		return "constraint"
	}
	return "backend"
}

// Kind classifies a storage failure. Integrity violations (Postgres SQLSTATE
// class 23, sqlite "constraint failed") are KindConstraint; everything else,
// including connection failures, is KindBackend.
func Kind(err error) ErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, "23") {
			return KindConstraint
		}
		return KindBackend
	}
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "constraint failed") {
		return KindConstraint
	}
	return KindBackend
}
