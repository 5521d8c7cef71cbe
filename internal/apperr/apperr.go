package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrCampaignNotActive = errors.New("campaign is not active")
	ErrCampaignExpired   = errors.New("campaign deadline has passed")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// FieldError points a validation message at one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error carries one of the package sentinels as its Kind plus a human readable
// message. errors.Is(err, ErrConflict) matches on Kind.
type Error struct {
	Kind    error
	Message string
	Fields  []FieldError
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Is(target error) bool { return errors.Is(e.Kind, target) }
func (e *Error) Unwrap() error        { return e.Cause }

func newError(kind error, field, msg string) *Error {
	e := &Error{Kind: kind, Message: msg}
	if field != "" {
		e.Fields = []FieldError{{Field: field, Message: msg}}
	}
	return e
}

func NotFound(field, msg string) *Error   { return newError(ErrNotFound, field, msg) }
func Validation(field, msg string) *Error { return newError(ErrValidation, field, msg) }
func Conflict(field, msg string) *Error   { return newError(ErrConflict, field, msg) }
func Forbidden(field, msg string) *Error  { return newError(ErrForbidden, field, msg) }
func Unauthorized(msg string) *Error      { return newError(ErrUnauthorized, "", msg) }

func CampaignNotActive(status string) *Error {
	return newError(ErrCampaignNotActive, "campaign_id",
		fmt.Sprintf("donations are only accepted by active campaigns (status is %q)", status))
}

func CampaignExpired() *Error {
	return newError(ErrCampaignExpired, "campaign_id", "the campaign deadline has already passed")
}

func InvalidTransition(from, to string) *Error {
	return newError(ErrInvalidTransition, "status",
		fmt.Sprintf("cannot change status from %q to %q", from, to))
}

// Invalid builds a validation error that lists several fields at once.
func Invalid(fields []FieldError) *Error {
	return &Error{Kind: ErrValidation, Message: "invalid input", Fields: fields}
}

// FromStore maps gorm errors onto the taxonomy. Errors it does not recognise
// are returned unchanged so callers can keep wrapping them.
func FromStore(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: ErrNotFound, Message: resource + " not found", Cause: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: ErrConflict, Message: resource + " already exists", Cause: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Kind: ErrConflict, Message: resource + " is referenced by other records", Cause: err}
	}
	return err
}
