// Package parser defines the boundary between declgen and the SQL dialect
// parser that produces declaration trees.
//
// The pipeline only depends on the Parser interface and the closed
// Declaration variant below, so the default backend (parser/pgddl) can be
// swapped for any parser able to report byte offsets into the source text it
// was handed.
package parser

// Parser turns raw schema-definition text into an ordered sequence of
// declarations. Offsets inside the returned declarations index into the exact
// source string passed in, which may be the concatenation of several input
// files.
type Parser interface {
	Parse(source string) ([]Declaration, error)
}

// Span is a half-open byte range [Start, End) into the parsed source text.
type Span struct {
	Start int
	End   int
}

// Declaration is one parsed statement. It is a closed variant over Table,
// Enum and Unsupported; consumers switch exhaustively on the three pointer
// types.
type Declaration interface {
	// Pos returns the source range covered by the statement.
	Pos() Span

	declaration()
}

// Table is a CREATE TABLE declaration.
type Table struct {
	Schema      string // optional schema qualifier, "" when unqualified
	Name        string
	Span        Span
	Columns     []Column
	Constraints []Constraint
}

// Enum is a CREATE TYPE ... AS ENUM declaration.
type Enum struct {
	Schema string
	Name   string
	Span   Span
	Values []string
}

// Unsupported is any statement the pipeline does not model (indexes,
// functions, grants, ...). It is carried through so callers can count or log
// skipped statements, never an error.
type Unsupported struct {
	Span      Span
	Statement string // leading keywords of the statement, for diagnostics
}

// Column is one column definition inside a Table.
type Column struct {
	Name string

	// Type is the declared type exactly as written, including any array
	// bracket levels and modifiers, e.g. "character varying(255)[]".
	Type string

	NotNull    bool
	PrimaryKey bool // inline PRIMARY KEY constraint only
	HasDefault bool

	// Span covers the column definition, starting at the column name.
	Span Span
}

// Constraint is a table-level constraint. Only primary keys participate in
// type-model construction; other constraint kinds are carried with
// PrimaryKey=false and an empty column list.
type Constraint struct {
	PrimaryKey bool
	Columns    []string
}

func (t *Table) Pos() Span       { return t.Span }
func (e *Enum) Pos() Span        { return e.Span }
func (u *Unsupported) Pos() Span { return u.Span }

func (t *Table) declaration()       {}
func (e *Enum) declaration()        {}
func (u *Unsupported) declaration() {}
