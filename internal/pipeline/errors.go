package pipeline

import (
	"errors"

	"edudash.insights.org/internal/dataset"
)

var (
	// ErrEmptyInput is returned by reductions (means, argmax/argmin,
	// correlation) that have nothing to reduce. Callers are expected to guard
	// against it; no sentinel value is substituted.
	ErrEmptyInput = errors.New("empty input")

	// ErrMissingValue is returned under MissingFail when a value is absent.
	ErrMissingValue = errors.New("missing value")

	ErrMissingColumn = dataset.ErrMissingColumn
	ErrColumnKind    = dataset.ErrColumnKind
)
