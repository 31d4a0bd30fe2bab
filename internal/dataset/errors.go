package dataset

import "errors"

var (
	// ErrMissingColumn means a requested column is not part of the dataset schema.
	ErrMissingColumn = errors.New("missing column")

	// ErrColumnKind means a numeric column was used where a categorical one is required, or the reverse.
	ErrColumnKind = errors.New("wrong column kind")

	// ErrInvalidRecord means a row breaks a dataset invariant: a blank or duplicate
	// country, or a numeric cell that is not a number.
	ErrInvalidRecord = errors.New("invalid record")
)
