package grizzly

import (
	"fmt"
	"strings"

	"github.com/octaviordz/grizzly/expr"
	"github.com/octaviordz/grizzly/plan"
)

// JoinOn joins df and other using cond, an arbitrary boolean Expression
// built from both sides' columns, e.g. df.Col("a").Eq(other.Col("b")).
func (df *DataFrame) JoinOn(other *DataFrame, cond expr.Expression, how string) (*DataFrame, error) {
	kind, err := parseJoinKind(how)
	if err != nil {
		return nil, err
	}
	return wrap(plan.NewJoin(df.root, other.root, cond, kind)), nil
}

// JoinCols is JoinOn's column-pair convenience form: `on` is leftCol = rightCol.
func (df *DataFrame) JoinCols(other *DataFrame, leftCol, rightCol, how string) (*DataFrame, error) {
	cond, err := expr.NewCompare(df.Col(leftCol), expr.EQ, other.Col(rightCol))
	if err != nil {
		return nil, err
	}
	return df.JoinOn(other, cond, how)
}

// MapDataFrame joins df against other with a NATURAL JOIN.
func (df *DataFrame) MapDataFrame(other *DataFrame) (*DataFrame, error) {
	return wrap(plan.NewJoin(df.root, other.root, nil, plan.NaturalJoin)), nil
}

func parseJoinKind(how string) (plan.JoinKind, error) {
	switch strings.ToLower(strings.TrimSpace(how)) {
	case "inner", "":
		return plan.InnerJoin, nil
	case "left outer", "left":
		return plan.LeftOuterJoin, nil
	case "right outer", "right":
		return plan.RightOuterJoin, nil
	case "full outer", "full", "outer":
		return plan.FullOuterJoin, nil
	case "natural":
		return plan.NaturalJoin, nil
	default:
		return 0, fmt.Errorf("grizzly: unknown join kind %q", how)
	}
}
