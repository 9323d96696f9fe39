package errs

import (
	"errors"
	"fmt"
)

// خطاهای دامنه؛ سرویس‌ها با fmt.Errorf("%w: ...") آن‌ها را wrap می‌کنند
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrAttachmentFailure = errors.New("attachment failure")
	ErrInternal          = errors.New("internal error")

	// ErrPayloadTooLarge is a kind of ErrInvalidInput.
	ErrPayloadTooLarge = fmt.Errorf("%w: payload too large", ErrInvalidInput)
)

// Public returns the caller-facing text for err. Detail is kept only for
// errors that are safe to show; everything else collapses to ErrInternal.
func Public(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrAttachmentFailure):
		return err.Error()
	default:
		return "internal server error"
	}
}
