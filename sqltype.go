package grizzly

import (
	"strings"

	"github.com/octaviordz/grizzly/gschema"
)

// sqlTypeToColType maps a dialect-native SQL type string (as reported by
// Executor.TableSchema) to Grizzly's two-member ColType model. Unrecognized
// types default to TEXT.
func sqlTypeToColType(sqlType string) gschema.ColType {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	switch {
	case strings.Contains(t, "int"),
		strings.Contains(t, "float"),
		strings.Contains(t, "double"),
		strings.Contains(t, "real"),
		strings.Contains(t, "numeric"),
		strings.Contains(t, "decimal"):
		return gschema.NUMERIC
	default:
		return gschema.TEXT
	}
}
