package application

import (
	"errors"
	"fmt"

	"shiftserve/internal/domain"
)

var ErrNotFound = errors.New("not found")
var ErrConflict = errors.New("conflict")
var ErrBadRequest = errors.New("bad request")
var ErrForbidden = errors.New("forbidden")

// translate maps domain failures onto the service sentinels while keeping
// the original error in the chain.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict),
		errors.Is(err, ErrBadRequest), errors.Is(err, ErrForbidden):
		return err
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, domain.ErrValidation):
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return err
}
