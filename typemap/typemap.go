// Package typemap owns the table of declared-type-name to per-target
// rendering rules. A Resolver starts from the builtin table (unless the
// caller discards it), merges user override files in argument order, and
// registers synthetic entries for enum declarations so columns typed as an
// enum resolve to the enum's generated names.
package typemap

import (
	"strings"
)

// Mapping is the rendering rule set for one declared type. Name is the
// default rendered spelling; the per-target fields override it for a single
// target when set.
type Mapping struct {
	Name       string `json:"name" yaml:"name"`
	TSType     string `json:"tsType,omitempty" yaml:"tsType,omitempty"`
	ZodSchema  string `json:"zodSchema,omitempty" yaml:"zodSchema,omitempty"`
	StructType string `json:"structType,omitempty" yaml:"structType,omitempty"`
	SQLType    string `json:"sqlType,omitempty" yaml:"sqlType,omitempty"`
}

// TS returns the interface-language spelling.
func (m Mapping) TS() string {
	if m.TSType != "" {
		return m.TSType
	}
	return m.Name
}

// Zod returns the validator expression.
func (m Mapping) Zod() string {
	if m.ZodSchema != "" {
		return m.ZodSchema
	}
	return "z." + m.Name + "()"
}

// Struct returns the struct-DSL spelling.
func (m Mapping) Struct() string {
	if m.StructType != "" {
		return m.StructType
	}
	return m.Name
}

// DefaultKey is the catch-all entry consulted for declared types with no
// mapping of their own.
const DefaultKey = "_default"

// hardFallback applies when even the DefaultKey entry is absent.
var hardFallback = Mapping{Name: "string"}

// Resolver resolves declared type names to mappings. It is read-mostly:
// mutation happens only through Merge and RegisterEnum during model
// construction.
type Resolver struct {
	mappings map[string]Mapping
}

// NewResolver returns a resolver seeded with the builtin table. Pass
// discardBuiltins to start from an empty table, leaving only the hard-coded
// string fallback until overrides are merged.
func NewResolver(discardBuiltins bool) *Resolver {
	r := &Resolver{mappings: make(map[string]Mapping)}
	if !discardBuiltins {
		for k, v := range builtins {
			r.mappings[k] = v
		}
	}
	return r
}

// Resolve looks up a declared type name, case-insensitively. Absent keys
// fall through to the "_default" entry, then to the hard-coded string
// mapping.
func (r *Resolver) Resolve(declaredType string) Mapping {
	if m, ok := r.mappings[normalizeKey(declaredType)]; ok {
		return m
	}
	if m, ok := r.mappings[DefaultKey]; ok {
		return m
	}
	return hardFallback
}

// Merge applies one override table. Overrides are shallow: each non-empty
// field of an incoming mapping replaces that field of any previously set
// mapping for the same type key, leaving the other fields alone.
func (r *Resolver) Merge(overrides map[string]Mapping) {
	for key, override := range overrides {
		k := normalizeKey(key)
		merged := r.mappings[k]
		if override.Name != "" {
			merged.Name = override.Name
		}
		if override.TSType != "" {
			merged.TSType = override.TSType
		}
		if override.ZodSchema != "" {
			merged.ZodSchema = override.ZodSchema
		}
		if override.StructType != "" {
			merged.StructType = override.StructType
		}
		if override.SQLType != "" {
			merged.SQLType = override.SQLType
		}
		r.mappings[k] = merged
	}
}

// RegisterEnum installs the synthetic mapping for an enum declaration so that
// later columns declared with the enum type resolve to its generated names.
// declaredName is the name used in DDL (schema-qualified lookups use the bare
// name); typeName and schemaName are the generated interface and validator
// names.
func (r *Resolver) RegisterEnum(declaredName, typeName, schemaName string) {
	r.mappings[normalizeKey(declaredName)] = Mapping{
		Name:       typeName,
		TSType:     typeName,
		ZodSchema:  schemaName,
		StructType: typeName,
		SQLType:    declaredName,
	}
}

// Snapshot returns a copy of the merged table keyed by normalized type name,
// for the computed-typemap artifact.
func (r *Resolver) Snapshot() map[string]Mapping {
	out := make(map[string]Mapping, len(r.mappings))
	for k, v := range r.mappings {
		out[k] = v
	}
	return out
}

// normalizeKey lowercases and collapses interior whitespace so that
// "TIMESTAMP  WITH TIME ZONE" and "timestamp with time zone" share a key.
func normalizeKey(declaredType string) string {
	return strings.Join(strings.Fields(strings.ToLower(declaredType)), " ")
}
