package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/vinodtana/ai-tools-admin-web/internal/client"
	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a one-line notification.
type Toast struct {
	Kind    ToastKind
	Message string
}

func SuccessToast(msg string) Toast { return Toast{Kind: ToastSuccess, Message: msg} }

// ErrorToast words err for an operator.
func ErrorToast(err error) Toast {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return Toast{Kind: ToastError, Message: apiErr.Error()}
	case errors.Is(err, models.ErrNotFound):
		return Toast{Kind: ToastError, Message: "Record not found"}
	default:
		return Toast{Kind: ToastError, Message: err.Error()}
	}
}

// Print writes t as "✓ msg" or "✗ msg".
func (t Toast) Print(w io.Writer) {
	mark := "✓"
	if t.Kind == ToastError {
		mark = "✗"
	}
	fmt.Fprintf(w, "%s %s\n", mark, t.Message)
}
