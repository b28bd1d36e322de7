package calendar

import (
	"errors"

	"github.com/tartampluch/go-lifespan/internal/config"
)

// Error taxonomy shared by every calculation package.
// Callers match them with errors.Is; details are attached by wrapping.
var (
	// ErrInvalidDate reports unparseable input or a date outside a component's calendar range.
	ErrInvalidDate = errors.New(config.ErrInvalidDate)

	// ErrInvalidRange reports an ordered pair whose end precedes its start.
	// Every ordered-pair operation rejects such pairs; none swaps them.
	ErrInvalidRange = errors.New(config.ErrInvalidRange)

	// ErrOutOfRange reports a classification lookup outside its table.
	ErrOutOfRange = errors.New(config.ErrOutOfRange)

	// ErrUnclassified reports a valid input that matched no table entry.
	// Tables are exhaustive, so seeing it means a table is broken.
	ErrUnclassified = errors.New(config.ErrUnclassified)
)
