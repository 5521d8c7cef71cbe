// Package services implements the platform's use cases on top of gorm. Every
// mutating operation takes the acting user's id explicitly.
package services

import (
	"errors"
	"fmt"

	"github.com/GiorgiUbiria/donation_platform/internal/apperr"
	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	MaxPageNumber    = 1_000_000
)

type Page struct {
	Number int
	Limit  int
}

// NewPage clamps number and limit to sane values.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = 1
	}
	if number > MaxPageNumber {
		number = MaxPageNumber
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Number: number, Limit: limit}
}

func (p Page) Offset() int { return (p.Number - 1) * p.Limit }

type PageResult[T any] struct {
	Items []T
	Total int64
	Page  Page
}

func (r PageResult[T]) TotalPages() int {
	if r.Page.Limit == 0 {
		return 0
	}
	return int((r.Total + int64(r.Page.Limit) - 1) / int64(r.Page.Limit))
}

func paginate(p Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// lookupError turns a missing row into a not found error on field and wraps
// everything else.
func lookupError(err error, field, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(field, resource+" not found")
	}
	return fmt.Errorf("load %s: %w", resource, err)
}
