package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/octaviordz/grizzly/aggregates"
	"github.com/octaviordz/grizzly/expr"
)

// qualifier resolves the alias prefix used to qualify a ColumnRef whose
// producing node has the given id. It returns "" for a bare (unqualified)
// reference, used for a HAVING clause referring to its own Aggregation's
// output alias, which lives in the same SELECT scope rather than a wrapped
// child's.
type qualifier func(originID int) string

// singleAlias builds the common case: every ColumnRef in this expression
// comes from the one wrapped child, so it is always qualified the same way.
func singleAlias(alias string) qualifier {
	return func(int) string { return alias + "." }
}

// sideAlias picks between a left- and right-hand alias for a join
// condition, based on which subtree actually produced the column.
func sideAlias(leftHas func(id int) bool, aliasL, aliasR string) qualifier {
	return func(id int) string {
		if leftHas(id) {
			return aliasL + "."
		}
		return aliasR + "."
	}
}

// renderExpr renders e as SQL text, consulting q to qualify ColumnRefs and
// parenthesizing a child whenever its precedence is lower than parent's.
func (g *Generator) renderExpr(e expr.Expression, q qualifier) string {
	switch v := e.(type) {
	case expr.Literal:
		return g.renderLiteral(v)
	case expr.ColumnRef:
		return q(v.Ref.Origin.NodeID()) + v.Ref.Name
	case expr.StarExpr:
		return "*"
	case expr.Compare:
		return g.renderCompare(v, q)
	case expr.InList:
		vals := make([]string, len(v.Values))
		for i, lit := range v.Values {
			vals[i] = g.renderLiteral(lit)
		}
		return q(v.Col.Ref.Origin.NodeID()) + v.Col.Ref.Name + " in (" + strings.Join(vals, ", ") + ")"
	case expr.Logical:
		lhs := g.renderChild(v, v.LHS, q)
		rhs := g.renderChild(v, v.RHS, q)
		return lhs + " " + v.Op.String() + " " + rhs
	case expr.Arith:
		lhs := g.renderChild(v, v.LHS, q)
		rhs := g.renderChild(v, v.RHS, q)
		return lhs + " " + v.Op.String() + " " + rhs
	case expr.AggCall:
		return g.renderAggCall(v, q)
	case expr.UDFCall:
		return g.renderUDFCall(v, q)
	default:
		panic(fmt.Sprintf("sqlgen: unrenderable expression %T", e))
	}
}

// precedenceOf mirrors each Expression kind's own unexported precedence();
// since that method isn't visible outside package expr, sqlgen keeps its
// own copy here, used only to decide parenthesization.
func precedenceOf(e expr.Expression) int {
	switch v := e.(type) {
	case expr.Literal:
		return 5
	case expr.ColumnRef:
		return 5
	case expr.StarExpr:
		return 5
	case expr.Compare, expr.InList:
		return 2
	case expr.Logical:
		if v.Op == expr.AND {
			return 1
		}
		return 0
	case expr.Arith:
		if v.Op == expr.Add || v.Op == expr.Sub {
			return 3
		}
		return 4
	case expr.AggCall, expr.UDFCall:
		return 5
	default:
		return 5
	}
}

func (g *Generator) renderChild(parent, child expr.Expression, q qualifier) string {
	s := g.renderExpr(child, q)
	if precedenceOf(child) < precedenceOf(parent) {
		return "(" + s + ")"
	}
	return s
}

// renderCompare lowers `= NULL`/`<> NULL` to IS [NOT] NULL; NewCompare
// already rejected every other operator against NULL, so no other case
// reaches here.
func (g *Generator) renderCompare(c expr.Compare, q qualifier) string {
	lhsNull := isNullLiteral(c.LHS)
	rhsNull := isNullLiteral(c.RHS)
	if lhsNull || rhsNull {
		operand := c.RHS
		if rhsNull {
			operand = c.LHS
		}
		side := g.renderChild(c, operand, q)
		if c.Op == expr.EQ {
			return side + " is null"
		}
		return side + " is not null"
	}
	lhs := g.renderChild(c, c.LHS, q)
	rhs := g.renderChild(c, c.RHS, q)
	return lhs + " " + c.Op.String() + " " + rhs
}

func isNullLiteral(e expr.Expression) bool {
	lit, ok := e.(expr.Literal)
	return ok && lit.IsNull()
}

// sqlQuote renders s as a SQL string literal, single-quoted with embedded
// quotes doubled.
func sqlQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (g *Generator) renderLiteral(l expr.Literal) string {
	switch l.Kind {
	case expr.LitInt:
		return strconv.FormatInt(l.Value.(int64), 10)
	case expr.LitFloat:
		return strconv.FormatFloat(l.Value.(float64), 'g', -1, 64)
	case expr.LitString:
		return sqlQuote(l.Value.(string))
	case expr.LitBool:
		return g.dialect.BoolLiteral(l.Value.(bool))
	case expr.LitNull:
		return "null"
	default:
		panic("sqlgen: unknown literal kind")
	}
}

func (g *Generator) renderAggCall(a expr.AggCall, q qualifier) string {
	kind := aggregates.Type(a.Kind)
	var arg string
	switch {
	case a.Arg.IsStar:
		arg = "*"
	case a.Arg.Col != nil:
		arg = q(a.Arg.Col.Origin.NodeID()) + a.Arg.Col.Name
	default:
		arg = "*"
	}
	return kind.SQLFunc() + "(" + arg + ")"
}

func (g *Generator) renderUDFCall(u expr.UDFCall, q qualifier) string {
	g.noteUDFCall(u)
	args := make([]string, len(u.Args))
	for i, a := range u.Args {
		args[i] = g.renderExpr(a, q)
	}
	return u.Name + "(" + strings.Join(args, ", ") + ")"
}
