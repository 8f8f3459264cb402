// Package aggregates defines the aggregate function kinds Grizzly supports
// and the legality rule (SUM/MEAN reject TEXT columns) shared by the
// dataframe facade and the SQL generator.
package aggregates

import (
	"fmt"

	"github.com/octaviordz/grizzly/gschema"
)

// Type identifies an aggregate function.
type Type int

const (
	COUNT Type = iota
	MIN
	MAX
	SUM
	MEAN
)

func (t Type) String() string {
	switch t {
	case COUNT:
		return "COUNT"
	case MIN:
		return "MIN"
	case MAX:
		return "MAX"
	case SUM:
		return "SUM"
	case MEAN:
		return "MEAN"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// SQLFunc returns the SQL function name this aggregate lowers to.
func (t Type) SQLFunc() string {
	switch t {
	case COUNT:
		return "count"
	case MIN:
		return "min"
	case MAX:
		return "max"
	case SUM:
		return "sum"
	case MEAN:
		return "avg"
	default:
		panic("aggregates: unknown type")
	}
}

// DefaultAlias is the column name used for this aggregate's result when the
// caller supplies no explicit alias. For MIN, MAX, MEAN and COUNT these are
// the same names describe() gives its columns: "min", "max", "mean", "count".
func (t Type) DefaultAlias() string {
	switch t {
	case COUNT:
		return "count"
	case MIN:
		return "min"
	case MAX:
		return "max"
	case SUM:
		return "sum"
	case MEAN:
		return "mean"
	default:
		panic("aggregates: unknown type")
	}
}

// LegalFor reports whether this aggregate may be applied to a column of the
// given type. Only SUM and MEAN are type-restricted: they reject TEXT.
// COUNT, MIN, and MAX are legal over any column type (MIN/MAX lexically
// order text columns; COUNT only cares about non-nullness).
func (t Type) LegalFor(ct gschema.ColType) bool {
	if (t == SUM || t == MEAN) && ct == gschema.TEXT {
		return false
	}
	return true
}
