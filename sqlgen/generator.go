package sqlgen

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/octaviordz/grizzly/aggregates"
	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/plan"
	"github.com/octaviordz/grizzly/udf"
)

// Generator lowers a plan tree to one SQL string for a single Dialect. A
// Generator is single-use: build a fresh one per Generate call so its alias
// counter and UDF prologue start clean.
type Generator struct {
	dialect Dialect

	counter int

	udfOrder []string
	udfDefs  map[string]*udf.Def
}

// New builds a Generator targeting dialect.
func New(dialect Dialect) *Generator {
	return &Generator{
		dialect: dialect,
		udfDefs: make(map[string]*udf.Def),
	}
}

// Generate lowers root to a complete SQL statement: any UDF
// CREATE-FUNCTION prologue, each as its own statement terminated with ";",
// followed by the SELECT for root. Aliases are assigned $t0, $t1, ... in
// the order the generator allocates them, which walks the tree bottom-up:
// each node's own alias is allocated by whichever ancestor first wraps it
// in a FROM clause, a leaf Scan/ExternalScan allocating its own alias for
// itself since it has no child to be wrapped by.
func (g *Generator) Generate(root plan.Node) (string, error) {
	body, err := g.emit(root)
	if err != nil {
		return "", err
	}
	slog.Debug("sqlgen: plan lowered", "dialect", g.dialect.Name, "subqueries", g.counter, "udfs", len(g.udfOrder))
	prologue := g.renderUDFPrologue()
	if prologue == "" {
		return body, nil
	}
	return prologue + body, nil
}

func (g *Generator) newAlias() string {
	a := fmt.Sprintf("$t%d", g.counter)
	g.counter++
	return a
}

func (g *Generator) emit(n plan.Node) (string, error) {
	switch v := n.(type) {
	case *plan.Scan:
		return g.emitScan(v), nil
	case *plan.ExternalScan:
		return g.emitExternalScan(v)
	case *plan.Projection:
		return g.emitProjection(v)
	case *plan.Filter:
		return g.emitFilter(v)
	case *plan.GroupBy:
		return g.emitGroupBy(v)
	case *plan.Aggregation:
		return g.emitAggregation(v, nil)
	case *plan.Join:
		return g.emitJoin(v)
	case *plan.Distinct:
		return g.emitDistinct(v)
	case *plan.Sort:
		return g.emitSort(v)
	case *plan.Limit:
		return g.emitLimit(v)
	case *plan.SetOp:
		return g.emitSetOp(v)
	case *plan.Describe:
		return g.emitDescribe(v)
	default:
		return "", fmt.Errorf("sqlgen: unsupported node type %T", n)
	}
}

func (g *Generator) emitScan(s *plan.Scan) string {
	alias := g.newAlias()
	return fmt.Sprintf("select * from %s %s", s.Table, alias)
}

func (g *Generator) emitExternalScan(e *plan.ExternalScan) (string, error) {
	if g.dialect.ExternalDDL == nil {
		return "", &ExternalUnsupported{Dialect: g.dialect.Name}
	}
	alias := g.newAlias()
	ref := "grizzly_ext_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	ddl := g.dialect.ExternalDDL(ref, e.Cols, e.Path, e.Delim, e.Header, e.Format)
	return fmt.Sprintf("%s; select * from %s %s", ddl, ref, alias), nil
}

func (g *Generator) emitProjection(p *plan.Projection) (string, error) {
	childSQL, err := g.emit(p.Child)
	if err != nil {
		return "", err
	}
	alias := g.newAlias()
	q := singleAlias(alias)

	if p.IsPassthrough() {
		return fmt.Sprintf("select * from (%s) %s", childSQL, alias), nil
	}

	items := make([]string, len(p.Items))
	for i, it := range p.Items {
		items[i] = g.renderProjItem(it, q)
	}
	return fmt.Sprintf("select %s from (%s) %s", strings.Join(items, ", "), childSQL, alias), nil
}

func (g *Generator) renderProjItem(it plan.ProjItem, q qualifier) string {
	if cr, ok := it.Expr.(expr.ColumnRef); ok && cr.Ref.Name == it.Alias {
		return q(cr.Ref.Origin.NodeID()) + cr.Ref.Name
	}
	return g.renderExpr(it.Expr, q) + " as " + it.Alias
}

func (g *Generator) emitFilter(f *plan.Filter) (string, error) {
	if f.Kind == plan.HAVING {
		agg, ok := f.Child.(*plan.Aggregation)
		if !ok {
			return "", fmt.Errorf("sqlgen: HAVING filter's child is %T, want *plan.Aggregation", f.Child)
		}
		return g.emitAggregation(agg, f.Pred)
	}
	childSQL, err := g.emit(f.Child)
	if err != nil {
		return "", err
	}
	alias := g.newAlias()
	pred := g.renderExpr(f.Pred, singleAlias(alias))
	return fmt.Sprintf("select * from (%s) %s where %s", childSQL, alias, pred), nil
}

func (g *Generator) emitGroupBy(gb *plan.GroupBy) (string, error) {
	childSQL, err := g.emit(gb.Child)
	if err != nil {
		return "", err
	}
	alias := g.newAlias()
	keys := make([]string, len(gb.Keys))
	for i, k := range gb.Keys {
		keys[i] = alias + "." + k
	}
	return fmt.Sprintf("select %s from (%s) %s group by %s",
		strings.Join(keys, ", "), childSQL, alias, strings.Join(keys, ", ")), nil
}

// emitAggregation renders agg, optionally attaching having as its HAVING
// clause. having's ColumnRefs whose Origin is agg itself are rendered bare
// (unqualified), since they refer to this very SELECT's own output
// aliases, not a wrapped child's columns.
func (g *Generator) emitAggregation(agg *plan.Aggregation, having expr.Expression) (string, error) {
	childSQL, err := g.emit(agg.Child)
	if err != nil {
		return "", err
	}
	alias := g.newAlias()
	q := func(originID int) string {
		if originID == agg.NodeID() {
			return ""
		}
		return alias + "."
	}

	parts := make([]string, 0, len(agg.GroupKeys)+len(agg.Aggs))
	for _, k := range agg.GroupKeys {
		parts = append(parts, alias+"."+k)
	}
	for _, a := range agg.Aggs {
		var arg string
		if a.IsStar {
			arg = alias + ".*"
		} else {
			arg = alias + "." + a.ColName
		}
		item := a.Kind.SQLFunc() + "(" + arg + ")"
		aliasName := a.Alias
		if aliasName == "" {
			aliasName = a.Kind.DefaultAlias()
		}
		item += " as " + aliasName
		parts = append(parts, item)
	}

	sql := fmt.Sprintf("select %s from (%s) %s", strings.Join(parts, ", "), childSQL, alias)
	if len(agg.GroupKeys) > 0 {
		keys := make([]string, len(agg.GroupKeys))
		for i, k := range agg.GroupKeys {
			keys[i] = alias + "." + k
		}
		sql += " group by " + strings.Join(keys, ", ")
	}
	if having != nil {
		sql += " having " + g.renderExpr(having, q)
	}
	return sql, nil
}

func (g *Generator) emitJoin(j *plan.Join) (string, error) {
	leftSQL, err := g.emit(j.Left)
	if err != nil {
		return "", err
	}
	aliasL := g.newAlias()
	rightSQL, err := g.emit(j.Right)
	if err != nil {
		return "", err
	}
	aliasR := g.newAlias()

	kind, err := joinKeyword(j.Kind)
	if err != nil {
		return "", err
	}
	sql := fmt.Sprintf("select * from (%s) %s %s join (%s) %s", leftSQL, aliasL, kind, rightSQL, aliasR)
	if j.Kind != plan.NaturalJoin {
		leftIDs := descendantIDs(j.Left)
		q := sideAlias(func(id int) bool { return leftIDs[id] }, aliasL, aliasR)
		sql += " on " + g.renderExpr(j.Cond, q)
	}
	return sql, nil
}

func joinKeyword(k plan.JoinKind) (string, error) {
	switch k {
	case plan.InnerJoin:
		return "inner", nil
	case plan.LeftOuterJoin:
		return "left outer", nil
	case plan.RightOuterJoin:
		return "right outer", nil
	case plan.FullOuterJoin:
		return "full outer", nil
	case plan.NaturalJoin:
		return "natural", nil
	default:
		return "", fmt.Errorf("sqlgen: unknown join kind %d", k)
	}
}

func descendantIDs(n plan.Node) map[int]bool {
	ids := map[int]bool{n.NodeID(): true}
	for _, c := range n.Children() {
		for id := range descendantIDs(c) {
			ids[id] = true
		}
	}
	return ids
}

func (g *Generator) emitDistinct(d *plan.Distinct) (string, error) {
	childSQL, err := g.emit(d.Child)
	if err != nil {
		return "", err
	}
	alias := g.newAlias()
	if isStarShaped(d.Child) {
		return fmt.Sprintf("select distinct * from (%s) %s", childSQL, alias), nil
	}
	names := d.Child.Schema().Names()
	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = alias + "." + n
	}
	return fmt.Sprintf("select distinct %s from (%s) %s", strings.Join(cols, ", "), childSQL, alias), nil
}

func isStarShaped(n plan.Node) bool {
	switch v := n.(type) {
	case *plan.Scan, *plan.ExternalScan:
		return true
	case *plan.Projection:
		return v.IsPassthrough()
	default:
		return false
	}
}

func (g *Generator) emitSort(s *plan.Sort) (string, error) {
	childSQL, err := g.emit(s.Child)
	if err != nil {
		return "", err
	}
	alias := g.newAlias()
	keys := make([]string, len(s.Keys))
	for i, k := range s.Keys {
		dir := "asc"
		if !s.Ascending[i] {
			dir = "desc"
		}
		keys[i] = alias + "." + k + " " + dir
	}
	return fmt.Sprintf("select * from (%s) %s order by %s", childSQL, alias, strings.Join(keys, ", ")), nil
}

func (g *Generator) emitLimit(l *plan.Limit) (string, error) {
	childSQL, err := g.emit(l.Child)
	if err != nil {
		return "", err
	}
	alias := g.newAlias()
	sql := fmt.Sprintf("select * from (%s) %s limit %d", childSQL, alias, l.N)
	if l.Offset > 0 {
		sql += fmt.Sprintf(" offset %d", l.Offset)
	}
	return sql, nil
}

func (g *Generator) emitSetOp(s *plan.SetOp) (string, error) {
	parts := make([]string, len(s.SetChildren))
	for i, c := range s.SetChildren {
		sql, err := g.emit(c)
		if err != nil {
			return "", err
		}
		parts[i] = sql
	}
	switch s.Op {
	case plan.UnionAll:
		return strings.Join(parts, " union all "), nil
	default:
		return "", fmt.Errorf("sqlgen: unknown set operator %d", s.Op)
	}
}

// emitDescribe renders one UNION ALL branch per NUMERIC column of Child,
// each branch aggregating (min, max, mean, count) over that column, the
// shape plan.Describe's schema already commits to.
func (g *Generator) emitDescribe(d *plan.Describe) (string, error) {
	numeric := d.Child.Schema().NumericColumns()
	if len(numeric) == 0 {
		return "", fmt.Errorf("sqlgen: describe() over a schema with no numeric columns")
	}
	branches := make([]string, len(numeric))
	for i, col := range numeric {
		agg, err := plan.NewAggregation(d.Child, []plan.AggItem{
			{Kind: aggregates.MIN, ColName: col, Alias: "min"},
			{Kind: aggregates.MAX, ColName: col, Alias: "max"},
			{Kind: aggregates.MEAN, ColName: col, Alias: "mean"},
			{Kind: aggregates.COUNT, ColName: col, Alias: "count"},
		})
		if err != nil {
			return "", err
		}
		sql, err := g.emit(agg)
		if err != nil {
			return "", err
		}
		branches[i] = sql
	}
	return strings.Join(branches, " union all "), nil
}

func (g *Generator) noteUDFCall(u expr.UDFCall) {
	def, ok := u.Signature.(*udf.Def)
	if !ok || def == nil {
		return
	}
	if _, seen := g.udfDefs[def.Name]; seen {
		return
	}
	g.udfDefs[def.Name] = def
	g.udfOrder = append(g.udfOrder, def.Name)
}

// renderUDFPrologue renders one CREATE-FUNCTION statement per UDF
// encountered during emission, in first-seen order, deduplicated by name.
// Returns "" if no UDFs were called, or if the dialect has no UDF
// translation support (in which case the call sites themselves still
// reference the function name; a dialect without LangTag is expected to
// already have that function defined out of band).
func (g *Generator) renderUDFPrologue() string {
	if len(g.udfOrder) == 0 {
		return ""
	}
	var b strings.Builder
	for _, name := range g.udfOrder {
		stmt, err := udf.Translate(*g.udfDefs[name], string(g.dialect.Name), g.dialect.UDF)
		if err != nil {
			continue
		}
		b.WriteString(stmt)
		b.WriteString(" ")
	}
	return b.String()
}
