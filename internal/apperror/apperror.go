// Package apperror classifies failures into the kinds the HTTP layer reports
// and shapes validation errors into per-field messages.
package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
	Details []map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind onto an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found", Err: gorm.ErrRecordNotFound}
}

func Conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

// Invalid reports a single field that passed binding but broke a domain rule.
func Invalid(field, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "validation failed",
		Details: []map[string]string{{field: message}},
	}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

var (
	errRequired  = errors.New("is required")
	errEmail     = errors.New("must be a valid email address")
	errNegative  = errors.New("must not be negative")
	errTooLong   = errors.New("is too long")
	errCurrency  = errors.New("must be a 3-letter currency code")
	errUnknownOf = errors.New("is not an accepted value")
)

var tagErrors = map[string]error{
	"required": errRequired,
	"email":    errEmail,
	"gte":      errNegative,
	"max":      errTooLong,
	"len":      errCurrency,
	"oneof":    errUnknownOf,
}

// Validation converts a request binding failure into a KindValidation error.
// Validator failures are listed per field; JSON type mismatches name the
// offending field and the expected type.
func Validation(err error) *Error {
	details := make([]map[string]string, 0)

	var (
		validationErr validator.ValidationErrors
		typeErr       *json.UnmarshalTypeError
		syntaxErr     *json.SyntaxError
	)

	switch {
	case errors.As(err, &validationErr):
		for _, e := range validationErr {
			msg := fmt.Sprintf("%s is invalid", e.Field())
			if v, ok := tagErrors[e.Tag()]; ok {
				msg = v.Error()
			}
			details = append(details, map[string]string{e.Field(): msg})
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		details = append(details, map[string]string{field: "must be a " + typeErr.Type.String()})
	case errors.As(err, &syntaxErr):
		details = append(details, map[string]string{"body": "malformed JSON"})
	default:
		details = append(details, map[string]string{"body": err.Error()})
	}

	return &Error{Kind: KindValidation, Message: "validation failed", Details: details, Err: err}
}

// UseJSONNames makes v report fields by their JSON name, so validation
// details use the same keys as the request body.
func UseJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// FromDB classifies a gorm error for entity. Errors it does not recognise
// become KindInternal.
func FromDB(err error, entity string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(entity)
	}
	if IsUniqueViolation(err) {
		return Conflict(entity+" already exists", err)
	}
	if IsForeignKeyViolation(err) {
		return Conflict(entity+" is referenced by or references a missing record", err)
	}
	return Internal(fmt.Errorf("%s: %w", entity, err))
}

func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
