package gschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndLookup(t *testing.T) {
	s := New([]string{"a", "b"}, []ColType{NUMERIC, TEXT})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.Names())

	typ, ok := s.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, NUMERIC, typ)

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestWithColumnAppendsOrReplaces(t *testing.T) {
	s := New([]string{"a"}, []ColType{NUMERIC})
	s2 := s.WithColumn("b", TEXT)
	assert.Equal(t, []string{"a", "b"}, s2.Names())
	assert.Equal(t, 1, s.Len(), "original schema must be unmutated")

	s3 := s2.WithColumn("a", TEXT)
	typ, _ := s3.Lookup("a")
	assert.Equal(t, TEXT, typ)
	assert.Equal(t, []string{"a", "b"}, s3.Names(), "replacing keeps original position")
}

func TestRestrictPreservesRequestedOrder(t *testing.T) {
	s := New([]string{"a", "b", "c"}, []ColType{NUMERIC, TEXT, NUMERIC})
	r := s.Restrict([]string{"c", "a"})
	assert.Equal(t, []string{"c", "a"}, r.Names())
}

func TestNumericColumns(t *testing.T) {
	s := New([]string{"a", "b", "c"}, []ColType{NUMERIC, TEXT, NUMERIC})
	assert.Equal(t, []string{"a", "c"}, s.NumericColumns())
}

func TestEqualIsUnorderedDictEquality(t *testing.T) {
	s1 := New([]string{"a", "b"}, []ColType{NUMERIC, TEXT})
	s2 := New([]string{"b", "a"}, []ColType{TEXT, NUMERIC})
	assert.True(t, s1.Equal(s2))

	s3 := New([]string{"a", "b"}, []ColType{TEXT, TEXT})
	assert.False(t, s1.Equal(s3))
}

func TestSchemaError(t *testing.T) {
	err := NewSchemaError("column %q missing", "x")
	assert.EqualError(t, err, `column "x" missing`)
}

func TestColTypeString(t *testing.T) {
	assert.Equal(t, "NUMERIC", NUMERIC.String())
	assert.Equal(t, "TEXT", TEXT.String())
}
