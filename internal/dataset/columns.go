package dataset

import (
	"fmt"
	"strings"
)

// Column is the exact header of a column in the indicators file.
type Column string

const (
	Country          Column = "Country"
	Continent        Column = "Continent"
	LiteracyRate     Column = "Literacy Rate"
	PhysicianDensity Column = "Physician Density"
	GDP              Column = "GDP (Current USD)"
	GDPPerCapita     Column = "GDP per Capita (Current USD)"
	GDPGrowth        Column = "GDP Growth (% Annual)"
	UnemploymentRate Column = "Unemployment Rate (%)"
	GDPCategory      Column = "GDP per Capita Category"
)

// Kind tells whether a column holds category labels or numbers.
type Kind int

const (
	Categorical Kind = iota
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Categorical:
		return "categorical"
	case Numeric:
		return "numeric"
	default:
		return "unknown"
	}
}

type columnInfo struct {
	slug string
	kind Kind
}

var catalog = map[Column]columnInfo{
	Country:          {slug: "country", kind: Categorical},
	Continent:        {slug: "continent", kind: Categorical},
	LiteracyRate:     {slug: "literacy-rate", kind: Numeric},
	PhysicianDensity: {slug: "physician-density", kind: Numeric},
	GDP:              {slug: "gdp", kind: Numeric},
	GDPPerCapita:     {slug: "gdp-per-capita", kind: Numeric},
	GDPGrowth:        {slug: "gdp-growth", kind: Numeric},
	UnemploymentRate: {slug: "unemployment-rate", kind: Numeric},
	GDPCategory:      {slug: "gdp-category", kind: Categorical},
}

// Columns lists every column in file order.
var Columns = []Column{
	Country,
	Continent,
	LiteracyRate,
	PhysicianDensity,
	GDP,
	GDPPerCapita,
	GDPGrowth,
	UnemploymentRate,
	GDPCategory,
}

// Known reports whether c is part of the schema.
func (c Column) Known() bool {
	_, ok := catalog[c]
	return ok
}

// Kind returns the column kind. Unknown columns report Categorical; check Known first.
func (c Column) Kind() Kind {
	return catalog[c].kind
}

// Slug is the URL-friendly name used by the HTTP API.
func (c Column) Slug() string {
	return catalog[c].slug
}

func (c Column) String() string {
	return string(c)
}

// LookupColumn resolves a column from either its slug or its exact header.
func LookupColumn(name string) (Column, error) {
	name = strings.TrimSpace(name)
	if c := Column(name); c.Known() {
		return c, nil
	}
	lowered := strings.ToLower(name)
	for c, info := range catalog {
		if info.slug == lowered {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrMissingColumn, name)
}

// RequireKind fails when c is unknown or not of the wanted kind.
func RequireKind(c Column, kind Kind) error {
	if !c.Known() {
		return fmt.Errorf("%w: %q", ErrMissingColumn, string(c))
	}
	if c.Kind() != kind {
		return fmt.Errorf("%w: %q is %s, want %s", ErrColumnKind, string(c), c.Kind(), kind)
	}
	return nil
}
