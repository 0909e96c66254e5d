package level

import "errors"

// Construction errors for level definitions.
var (
	// ErrNoBodies indicates a definition without any body templates.
	ErrNoBodies = errors.New("level: definition has no bodies")

	// ErrInvalidGrid indicates a non-positive grid dimension.
	ErrInvalidGrid = errors.New("level: grid size must be positive")

	// ErrTileOutOfGrid indicates an initial tile outside the grid.
	ErrTileOutOfGrid = errors.New("level: initial tile outside grid")

	// ErrOverlap indicates two pre-placed bodies on the same tile.
	ErrOverlap = errors.New("level: pre-placed bodies overlap")
)
