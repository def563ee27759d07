package colorquant

import (
	"errors"
	"fmt"

	"github.com/hupe1980/colorquant/internal/kdtree"
)

var (
	// ErrInvalidConfiguration is returned when an option value cannot be used.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrEmptyInput is returned when the input has no pixels or no colours.
	ErrEmptyInput = errors.New("empty input")
)

// ErrPaletteSize indicates a palette size that is not positive or that
// exceeds the number of distinct colours of the input.
//
// It matches ErrInvalidConfiguration via errors.Is.
type ErrPaletteSize struct {
	Requested int
	Distinct  int
}

func (e *ErrPaletteSize) Error() string {
	if e.Requested <= 0 {
		return fmt.Sprintf("invalid palette size: %d", e.Requested)
	}
	return fmt.Sprintf("invalid palette size: %d exceeds %d distinct colors", e.Requested, e.Distinct)
}

func (e *ErrPaletteSize) Is(target error) bool { return target == ErrInvalidConfiguration }

// ErrInvalidMethod indicates an unknown quantization method.
//
// It matches ErrInvalidConfiguration via errors.Is.
type ErrInvalidMethod struct {
	Method Method
}

func (e *ErrInvalidMethod) Error() string {
	return fmt.Sprintf("invalid method: %d", int(e.Method))
}

func (e *ErrInvalidMethod) Is(target error) bool { return target == ErrInvalidConfiguration }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, kdtree.ErrEmpty) {
		return fmt.Errorf("%w: %w", ErrEmptyInput, err)
	}
	if errors.Is(err, kdtree.ErrDuplicatePoint) || errors.Is(err, kdtree.ErrZeroWeight) ||
		errors.Is(err, kdtree.ErrNonFinite) {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	return err
}
