package apperr

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestErrorMatchesKind(t *testing.T) {
	err := fmt.Errorf("delete campaign: %w", Conflict("id", "campaign has donations"))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected wrapped error to match ErrConflict, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("conflict must not match ErrNotFound")
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *Error in chain")
	}
	if len(appErr.Fields) != 1 || appErr.Fields[0].Field != "id" {
		t.Fatalf("unexpected fields: %#v", appErr.Fields)
	}
}

func TestFromStore(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, ErrConflict},
		{"foreign key", gorm.ErrForeignKeyViolated, ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromStore(fmt.Errorf("query: %w", tt.in), "campaign")
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if !errors.Is(got, tt.in) {
				t.Fatalf("expected cause to be preserved, got %v", got)
			}
		})
	}

	plain := errors.New("boom")
	if FromStore(plain, "campaign") != plain {
		t.Fatalf("unknown errors must pass through unchanged")
	}
	if FromStore(nil, "campaign") != nil {
		t.Fatalf("nil must stay nil")
	}
}
