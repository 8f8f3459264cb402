package grizzly

import "github.com/octaviordz/grizzly/plan"

// SortValues orders df by the given keys. ascending may be empty (every key
// sorts ascending), a single flag applied to every key, or one flag per key.
func (df *DataFrame) SortValues(keys []string, ascending []bool) (*DataFrame, error) {
	expanded := ascending
	if len(expanded) != len(keys) {
		fill := true
		if len(ascending) == 1 {
			fill = ascending[0]
		}
		expanded = make([]bool, len(keys))
		for i := range expanded {
			expanded[i] = fill
		}
	}
	s, err := plan.NewSort(df.root, keys, expanded)
	if err != nil {
		return nil, err
	}
	return wrap(s), nil
}

// Limit bounds df to n rows, skipping offset first.
func (df *DataFrame) Limit(n, offset int) *DataFrame {
	return wrap(plan.NewLimit(df.root, n, offset))
}

// Slice is the `df[a:b]` sugar: limit=b-a, offset=a.
func (df *DataFrame) Slice(a, b int) *DataFrame {
	return df.Limit(b-a, a)
}
