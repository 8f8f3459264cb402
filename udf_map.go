package grizzly

import (
	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/udf"
)

// MapUDF adds a computed column under alias holding the result of calling
// def over col.
func (df *DataFrame) MapUDF(col, alias string, def udf.Def) (*DataFrame, error) {
	call := expr.NewUDFCall(def.Name, []expr.UDFArg{df.Col(col)}, &def, alias)
	return df.Assign(alias, call)
}
