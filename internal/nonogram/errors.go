package nonogram

import (
	"errors"
	"fmt"
)

// ErrUnsolvable means some line had no valid filling under the current
// constraints. Single-line inference repeated to fixpoint is all this
// engine does; puzzles that need cross-line guessing surface here too.
var ErrUnsolvable = errors.New("puzzle cannot be solved with current constraints")

// PaletteSizeError reports a palette that cannot be represented in a
// 64-bit possibility mask.
type PaletteSizeError struct {
	Colors int
}

func (e PaletteSizeError) Error() string {
	return fmt.Sprintf("palette of %d colors does not fit a possibility mask", e.Colors)
}
