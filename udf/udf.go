// Package udf translates a host-language scalar function into a
// CREATE-FUNCTION statement for the active SQL dialect.
//
// The host-side function-source extractor (the thing that, given a function
// value, introspects its name/params/return type/body) is an external
// collaborator specified only by the FuncSource contract below; this
// package ships no reflective implementation of it, only a literal
// pass-through for callers that supply the body text explicitly.
package udf

import (
	"fmt"
	"strings"
)

// HostType is the host-language type tag attached to a UDF parameter or
// return value.
type HostType int

const (
	TInt HostType = iota
	TFloat
	TStr
	TBool
	TAny
)

func ParseHostType(tag string) (HostType, error) {
	switch strings.ToLower(tag) {
	case "int":
		return TInt, nil
	case "float":
		return TFloat, nil
	case "str", "string":
		return TStr, nil
	case "bool":
		return TBool, nil
	case "any":
		return TAny, nil
	default:
		return 0, fmt.Errorf("udf: unknown host type tag %q", tag)
	}
}

// Param is one parameter of a host function.
type Param struct {
	Name string
	Type HostType
}

// Signature is a host function's parameter list and return type.
type Signature struct {
	Params     []Param
	ReturnType HostType
}

// Def is a fully resolved user-defined function: enough to emit a
// CREATE-FUNCTION statement and to call it in a SELECT list.
type Def struct {
	Name string
	Sig  Signature
	Body string
}

// FuncSource is the contract a host-language introspector satisfies: given
// whatever value the host uses to represent "a function", produce its Def.
// Grizzly's core never implements this beyond LiteralSource; a host
// environment with reflection or source access supplies its own
// implementation.
type FuncSource interface {
	Extract() (Def, error)
}

// LiteralSource is a FuncSource that already holds a fully-formed Def; it is
// what callers use when they pass the function body text explicitly rather
// than relying on host introspection.
type LiteralSource struct {
	Def Def
}

func (l LiteralSource) Extract() (Def, error) { return l.Def, nil }

// TypeNamer renders a HostType as the active dialect's SQL type spelling.
// Supplied by package sqlgen's dialect table so this package never needs to
// know about dialects itself.
type TypeNamer func(HostType) string

// DialectSupport describes what a dialect offers for UDF translation: its
// type-name mapping and, if it supports inline UDF-as-procedure emission,
// the CREATE-FUNCTION host-language tag (e.g. "plpython3u"). An empty
// LangTag means the dialect does not support UDF translation at all.
type DialectSupport struct {
	TypeName TypeNamer
	LangTag  string
}

// Unsupported is returned by Translate when the active dialect has no
// LangTag: the dialect table marks UDF translation unsupported for it.
type Unsupported struct {
	Dialect string
}

func (e *Unsupported) Error() string {
	return fmt.Sprintf("udf: dialect %q does not support UDF translation", e.Dialect)
}

// Translate renders def as a single "CREATE OR REPLACE FUNCTION ..."
// statement for the given dialect. The function body is inlined verbatim
// between $$ fences: the translator never parses, reformats, or validates
// the body text.
func Translate(def Def, dialectName string, support DialectSupport) (string, error) {
	if support.LangTag == "" {
		return "", &Unsupported{Dialect: dialectName}
	}

	params := make([]string, len(def.Sig.Params))
	for i, p := range def.Sig.Params {
		params[i] = fmt.Sprintf("%s %s", p.Name, support.TypeName(p.Type))
	}

	var b strings.Builder
	b.WriteString("create or replace function ")
	b.WriteString(def.Name)
	b.WriteString("(")
	b.WriteString(strings.Join(params, ", "))
	b.WriteString(") returns ")
	b.WriteString(support.TypeName(def.Sig.ReturnType))
	b.WriteString(" as $$")
	b.WriteString(def.Body)
	b.WriteString("$$ language ")
	b.WriteString(support.LangTag)
	b.WriteString(";")
	return b.String(), nil
}
