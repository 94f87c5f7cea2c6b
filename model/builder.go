package model

import (
	"strings"

	"github.com/declgen/declgen/errors"
	"github.com/declgen/declgen/logger"
	"github.com/declgen/declgen/parser"
	"github.com/declgen/declgen/typemap"
)

// Builder compiles a declaration sequence into a Model. It owns the run's
// mutable build state (the resolver being filled with enum registrations, the
// accumulating type list); construct one per run and discard it afterwards.
type Builder struct {
	resolver     *typemap.Resolver
	source       string
	insertSuffix string
}

// NewBuilder returns a builder over the concatenated source text the
// declarations were parsed from. Comment recovery offsets index into that
// same text.
func NewBuilder(resolver *typemap.Resolver, source, insertSuffix string) *Builder {
	return &Builder{resolver: resolver, source: source, insertSuffix: insertSuffix}
}

// Build runs the two passes over the declarations: enums first, so their
// synthetic typemap entries exist before any table column resolves against
// them, then tables. Malformed declarations are logged and skipped; the
// returned model is always usable.
func (b *Builder) Build(decls []parser.Declaration) *Model {
	var defs []TypeDef
	var tables []*parser.Table

	for _, decl := range decls {
		switch d := decl.(type) {
		case *parser.Enum:
			if len(d.Values) == 0 {
				err := errors.Mark(errors.Newf("enum %s declares no values", d.Name), errors.ErrMalformedDeclaration)
				logger.Logger.Warnw("skipping declaration", "error", err)
				continue
			}
			defs = append(defs, b.buildEnum(d))
		case *parser.Table:
			if len(d.Columns) == 0 {
				err := errors.Mark(errors.Newf("table %s declares no columns", d.Name), errors.ErrMalformedDeclaration)
				logger.Logger.Warnw("skipping declaration", "error", err)
				continue
			}
			tables = append(tables, d)
		case *parser.Unsupported:
			logger.Logger.Debugw("skipping unsupported statement", "statement", d.Statement)
		}
	}

	tm := TableMap{
		ToName:  make(map[string]string),
		ToTable: make(map[string]string),
	}
	for _, t := range tables {
		read, insert := b.buildTable(t)
		// Only the read shape gets a forward entry; both shapes map back.
		// Duplicate table names overwrite, last write wins (see TableMap).
		tm.ToName[t.Name] = read.Name
		tm.ToTable[read.Name] = t.Name
		tm.ToTable[insert.Name] = t.Name
		defs = append(defs, read, insert)
	}

	Sort(defs, b.insertSuffix)
	return &Model{
		Types:        defs,
		TableMap:     tm,
		Typemap:      b.resolver.Snapshot(),
		InsertSuffix: b.insertSuffix,
	}
}

func (b *Builder) buildEnum(d *parser.Enum) TypeDef {
	name := TypeName(d.Name)
	schemaName := SchemaName(name)

	// Register under the bare name and, when schema-qualified, the
	// qualified spelling, so either column type spelling resolves.
	b.resolver.RegisterEnum(d.Name, name, schemaName)
	if d.Schema != "" {
		b.resolver.RegisterEnum(d.Schema+"."+d.Name, name, schemaName)
	}

	doc, _ := RecoverComment(b.source, d.Span.Start, Backward)
	values := make([]string, len(d.Values))
	copy(values, d.Values)

	return TypeDef{
		Name:        name,
		Description: doc,
		Kind:        KindEnum,
		Table:       d.Name,
		Schema:      d.Schema,
		EnumValues:  values,
	}
}

func (b *Builder) buildTable(t *parser.Table) (TypeDef, TypeDef) {
	pkCols := make(map[string]bool)
	for _, c := range t.Constraints {
		if c.PrimaryKey {
			for _, name := range c.Columns {
				pkCols[name] = true
			}
		}
	}

	typeName := TypeName(t.Name)
	doc, _ := RecoverComment(b.source, t.Span.Start, Backward)

	read := TypeDef{
		Name:        typeName,
		Description: doc,
		Kind:        KindTable,
		Table:       t.Name,
		Schema:      t.Schema,
	}
	insert := TypeDef{
		Name:      typeName + b.insertSuffix,
		Kind:      KindTable,
		Table:     t.Name,
		Schema:    t.Schema,
		Insertion: true,
	}

	for _, col := range t.Columns {
		primary := col.PrimaryKey || pkCols[col.Name]
		base, dims := splitArrayType(col.Type)
		mapping := b.resolver.Resolve(baseTypeKey(base))

		prop := PropDef{
			Name:       col.Name,
			Mapping:    mapping,
			Primary:    primary,
			Source:     strings.TrimSpace(sliceSpan(b.source, col.Span)),
			HasDefault: col.HasDefault,
			Array:      dims > 0,
			Dimensions: dims,
		}

		// A column is required when declared not-null or primary; the
		// insertion shape additionally demands it lack a default, since
		// the database supplies defaulted columns on insert.
		required := col.NotNull || primary

		readProp := prop
		readProp.Optional = !required
		if colDoc, ok := RecoverComment(b.source, col.Span.Start, Backward); ok {
			readProp.Description = colDoc
		}
		read.Properties = append(read.Properties, readProp)

		insertProp := prop
		insertProp.Optional = !(required && !col.HasDefault)
		insert.Properties = append(insert.Properties, insertProp)
	}

	for _, p := range read.Properties {
		if p.Primary {
			read.PrimaryKey = p.Name
			insert.PrimaryKey = p.Name
			break
		}
	}

	return read, insert
}

// splitArrayType strips array bracket levels from a declared type and counts
// them. Both normalized "[]" levels and sized "[3]" levels count as one
// dimension each.
func splitArrayType(declared string) (base string, dims int) {
	base = strings.TrimSpace(declared)
	for strings.HasSuffix(base, "]") {
		open := strings.LastIndex(base, "[")
		if open < 0 {
			break
		}
		base = strings.TrimSpace(base[:open])
		dims++
	}
	return base, dims
}

// baseTypeKey drops a trailing length or precision modifier so that
// "varchar(255)" resolves under "varchar".
func baseTypeKey(base string) string {
	if strings.HasSuffix(base, ")") {
		if open := strings.Index(base, "("); open > 0 {
			return strings.TrimSpace(base[:open])
		}
	}
	return base
}

func sliceSpan(source string, span parser.Span) string {
	start, end := span.Start, span.End
	if start < 0 {
		start = 0
	}
	if end > len(source) {
		end = len(source)
	}
	if start >= end {
		return ""
	}
	return source[start:end]
}
