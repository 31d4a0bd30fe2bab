package pipeline

import (
	"fmt"
	"strings"

	"edudash.insights.org/internal/dataset"
)

// MissingPolicy decides what an aggregate does with a missing numeric value.
type MissingPolicy int

const (
	// MissingSkip leaves missing values out of the reduction.
	MissingSkip MissingPolicy = iota
	// MissingFail stops at the first missing value with ErrMissingValue.
	MissingFail
)

func (p MissingPolicy) String() string {
	if p == MissingFail {
		return "fail"
	}
	return "skip"
}

// ParseMissingPolicy reads "skip" or "fail".
func ParseMissingPolicy(name string) (MissingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "skip":
		return MissingSkip, nil
	case "fail":
		return MissingFail, nil
	default:
		return MissingSkip, fmt.Errorf("unknown missing value policy %q", name)
	}
}

// Option configures an aggregate via the functional options pattern.
type Option func(*config)

type config struct {
	missing MissingPolicy
}

// WithMissing selects the missing-value policy. The default is MissingSkip.
func WithMissing(policy MissingPolicy) Option {
	return func(c *config) {
		c.missing = policy
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{
		missing: MissingSkip,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// numeric reads column c of rec. ok is false when the value is missing and
// the policy lets it be skipped.
func (c *config) numeric(rec dataset.Record, col dataset.Column) (value float64, ok bool, err error) {
	n, err := rec.Value(col)
	if err != nil {
		return 0, false, err
	}
	if !n.Valid {
		if c.missing == MissingFail {
			return 0, false, fmt.Errorf("%w: %s of %q", ErrMissingValue, col, rec.Country)
		}
		return 0, false, nil
	}
	return n.Value, true, nil
}
