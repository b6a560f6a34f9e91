// util/apperr/apperr_test.go
package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestCode(t *testing.T) {
	if got := Code(NotFound("x")); got != KindNotFound {
		t.Fatalf("got %q; want %q", got, KindNotFound)
	}
	if got := Code(Validation("x")); got != KindValidation {
		t.Fatalf("got %q; want %q", got, KindValidation)
	}
	if got := Code(AlreadyExists("x")); got != KindAlreadyExists {
		t.Fatalf("got %q; want %q", got, KindAlreadyExists)
	}
}

func TestCode_WrappedError(t *testing.T) {
	err := fmt.Errorf("loading user: %w", NotFound("user with id 1 not found"))
	if got := Code(err); got != KindNotFound {
		t.Fatalf("got %q; want %q", got, KindNotFound)
	}
}

func TestCode_PlainError(t *testing.T) {
	if got := Code(errors.New("boom")); got != "" {
		t.Fatalf("got %q; want empty kind", got)
	}
	if got := Code(nil); got != "" {
		t.Fatalf("got %q; want empty kind", got)
	}
}

func TestMessageSurvives(t *testing.T) {
	err := Validation("booking start must be before booking end")
	if err.Error() != "booking start must be before booking end" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
