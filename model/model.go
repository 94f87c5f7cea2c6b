// Package model holds the canonical type model declgen compiles declarations
// into, and the builder that produces it. Everything here is constructed once
// per run and read-only afterwards; emitters consume the finished Model and
// never mutate it.
package model

import "github.com/declgen/declgen/typemap"

// Kind discriminates table-derived types from enum types.
type Kind string

const (
	KindTable Kind = "table"
	KindEnum  Kind = "enum"
)

// TypeDef is one generated type. A table produces two TypeDefs sharing column
// order: the read shape and the insertion shape (read name plus the insertion
// suffix). An enum produces exactly one TypeDef with no properties; its
// values ride in EnumValues.
type TypeDef struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Kind        Kind      `json:"kind"`
	PrimaryKey  string    `json:"primaryKey,omitempty"`
	Table       string    `json:"table,omitempty"`
	Schema      string    `json:"schema,omitempty"`
	Insertion   bool      `json:"insertion,omitempty"`
	Properties  []PropDef `json:"properties,omitempty"`
	EnumValues  []string  `json:"enumValues,omitempty"`
}

// PropDef is one column of a table-derived type. Dimensions counts the array
// bracket levels stripped from the declared type before mapping lookup;
// zero means scalar.
type PropDef struct {
	Name        string          `json:"name"`
	Mapping     typemap.Mapping `json:"type"`
	Primary     bool            `json:"primary,omitempty"`
	Description string          `json:"description,omitempty"`
	Source      string          `json:"source,omitempty"`
	Optional    bool            `json:"optional,omitempty"`
	HasDefault  bool            `json:"hasDefault,omitempty"`
	Array       bool            `json:"array,omitempty"`
	Dimensions  int             `json:"dimensions,omitempty"`
}

// TableMap is the bidirectional storage-name/type-name mapping. ToName maps
// storage names to the read shape's type name only; ToTable maps both shapes
// back to the storage name.
//
// Known limitation: duplicate table names across input sources overwrite each
// other, last write wins. The map is built once per run and never guarded.
type TableMap struct {
	ToName  map[string]string `json:"toName"`
	ToTable map[string]string `json:"toTable"`
}

// Model is the finished output of a build: the sorted TypeDef list, the
// table/name map, and a snapshot of the merged typemap (including synthetic
// enum entries) for the computed-typemap artifact.
type Model struct {
	Types        []TypeDef
	TableMap     TableMap
	Typemap      map[string]typemap.Mapping
	InsertSuffix string
}
