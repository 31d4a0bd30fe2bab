package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Number is a numeric cell that may be missing.
type Number struct {
	Value float64
	Valid bool
}

// Num wraps a present value. NaN and infinities are treated as missing.
func Num(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{Value: v, Valid: true}
}

func (n Number) String() string {
	if !n.Valid {
		return "NA"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = Number{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = Num(v)
	return nil
}

// MarshalYAML renders a missing value as a YAML null.
func (n Number) MarshalYAML() (interface{}, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Value, nil
}

// Record is one country's indicator snapshot. An empty categorical field is missing.
type Record struct {
	Country          string `json:"country" yaml:"country"`
	Continent        string `json:"continent" yaml:"continent"`
	LiteracyRate     Number `json:"literacyRate" yaml:"literacyRate"`
	PhysicianDensity Number `json:"physicianDensity" yaml:"physicianDensity"`
	GDP              Number `json:"gdp" yaml:"gdp"`
	GDPPerCapita     Number `json:"gdpPerCapita" yaml:"gdpPerCapita"`
	GDPGrowth        Number `json:"gdpGrowth" yaml:"gdpGrowth"`
	UnemploymentRate Number `json:"unemploymentRate" yaml:"unemploymentRate"`
	GDPCategory      string `json:"gdpPerCapitaCategory" yaml:"gdpPerCapitaCategory"`
}

// Category returns a categorical field by column.
func (r Record) Category(c Column) (string, error) {
	switch c {
	case Country:
		return r.Country, nil
	case Continent:
		return r.Continent, nil
	case GDPCategory:
		return r.GDPCategory, nil
	}
	if err := RequireKind(c, Categorical); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%w: %q", ErrMissingColumn, string(c))
}

// Value returns a numeric field by column.
func (r Record) Value(c Column) (Number, error) {
	switch c {
	case LiteracyRate:
		return r.LiteracyRate, nil
	case PhysicianDensity:
		return r.PhysicianDensity, nil
	case GDP:
		return r.GDP, nil
	case GDPPerCapita:
		return r.GDPPerCapita, nil
	case GDPGrowth:
		return r.GDPGrowth, nil
	case UnemploymentRate:
		return r.UnemploymentRate, nil
	}
	if err := RequireKind(c, Numeric); err != nil {
		return Number{}, err
	}
	return Number{}, fmt.Errorf("%w: %q", ErrMissingColumn, string(c))
}

func (r *Record) set(c Column, text string, num Number) {
	switch c {
	case Country:
		r.Country = text
	case Continent:
		r.Continent = text
	case GDPCategory:
		r.GDPCategory = text
	case LiteracyRate:
		r.LiteracyRate = num
	case PhysicianDensity:
		r.PhysicianDensity = num
	case GDP:
		r.GDP = num
	case GDPPerCapita:
		r.GDPPerCapita = num
	case GDPGrowth:
		r.GDPGrowth = num
	case UnemploymentRate:
		r.UnemploymentRate = num
	}
}
