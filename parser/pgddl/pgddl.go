// Package pgddl is the default declaration parser backend: a hand-written
// parser for the Postgres DDL subset declgen models, CREATE TABLE and
// CREATE TYPE ... AS ENUM. Every other statement is passed through as
// parser.Unsupported.
//
// The backend exists because comment recovery needs byte offsets for every
// statement and column, which the SQL parser libraries in reach do not
// expose. It implements parser.Parser, so swapping it out is a one-line
// change at the call site.
package pgddl

import (
	"strings"

	"github.com/declgen/declgen/parser"
)

// Parser is the pgddl backend. The zero value is ready to use.
type Parser struct{}

// New returns a pgddl parser.
func New() *Parser { return &Parser{} }

var _ parser.Parser = (*Parser)(nil)

// Parse splits source into statements and parses each one. It never fails on
// statement content; unrecognized statements come back as *parser.Unsupported
// so the caller decides what skipping means.
func (p *Parser) Parse(source string) ([]parser.Declaration, error) {
	var decls []parser.Declaration
	for _, span := range splitStatements(source) {
		decls = append(decls, parseStatement(source, span))
	}
	return decls, nil
}

// splitStatements finds the top-level ';' boundaries, ignoring separators
// inside string literals, quoted identifiers, comments and dollar-quoted
// bodies. Each span starts at the first code byte of the statement and ends
// after its last code byte.
func splitStatements(src string) []parser.Span {
	var spans []parser.Span
	s := newScanner(src, 0, len(src))
	for {
		s.skipTrivia()
		if s.eof() {
			return spans
		}
		start := s.pos
		lastCode := s.pos
		for !s.eof() && s.peekByte() != ';' {
			before := s.pos
			s.skipTrivia()
			if s.pos > before {
				continue
			}
			switch s.peekByte() {
			case '\'':
				s.stringLit()
			case '"':
				s.skipQuotedIdent()
			case '$':
				s.skipDollarQuote()
			default:
				s.pos++
			}
			lastCode = s.pos
		}
		spans = append(spans, parser.Span{Start: start, End: lastCode})
		if !s.eof() {
			s.pos++ // ';'
		}
	}
}

// Statement modifiers that can appear between CREATE and the object keyword.
var createModifiers = map[string]bool{
	"GLOBAL":    true,
	"LOCAL":     true,
	"TEMP":      true,
	"TEMPORARY": true,
	"UNLOGGED":  true,
	"OR":        true,
	"REPLACE":   true,
}

func parseStatement(src string, span parser.Span) parser.Declaration {
	s := newScanner(src, span.Start, span.End)

	first := s.word()
	if !strings.EqualFold(first, "CREATE") {
		return &parser.Unsupported{Span: span, Statement: strings.ToUpper(first)}
	}

	kind := s.word()
	for createModifiers[strings.ToUpper(kind)] {
		kind = s.word()
	}

	switch strings.ToUpper(kind) {
	case "TABLE":
		return parseCreateTable(s, span)
	case "TYPE":
		return parseCreateType(s, span)
	default:
		return &parser.Unsupported{Span: span, Statement: "CREATE " + strings.ToUpper(kind)}
	}
}

func parseCreateTable(s *scanner, span parser.Span) parser.Declaration {
	if strings.EqualFold(s.peekWord(), "IF") {
		s.word() // IF
		s.word() // NOT
		s.word() // EXISTS
	}

	schema, name := qualifiedName(s)

	s.skipTrivia()
	if s.peekByte() != '(' {
		// No column list. Surfaced as a table so the normalizer can log
		// and skip it as malformed rather than silently dropping it.
		return &parser.Table{Schema: schema, Name: name, Span: span}
	}
	s.pos++ // '('

	tbl := &parser.Table{Schema: schema, Name: name, Span: span}
	for {
		s.skipTrivia()
		if s.eof() || s.peekByte() == ')' {
			break
		}
		if isTableConstraintStart(s.peekWord()) {
			tbl.Constraints = append(tbl.Constraints, parseTableConstraint(s))
		} else {
			tbl.Columns = append(tbl.Columns, parseColumn(s))
		}
		s.skipTrivia()
		if s.peekByte() == ',' {
			s.pos++
			continue
		}
		break
	}
	return tbl
}

var tableConstraintKeywords = map[string]bool{
	"CONSTRAINT": true,
	"PRIMARY":    true,
	"FOREIGN":    true,
	"UNIQUE":     true,
	"CHECK":      true,
	"EXCLUDE":    true,
	"LIKE":       true,
}

func isTableConstraintStart(w string) bool {
	return tableConstraintKeywords[strings.ToUpper(w)]
}

func parseTableConstraint(s *scanner) parser.Constraint {
	if strings.EqualFold(s.peekWord(), "CONSTRAINT") {
		s.word()  // CONSTRAINT
		s.ident() // constraint name
	}

	con := parser.Constraint{}
	if strings.EqualFold(s.peekWord(), "PRIMARY") {
		s.word() // PRIMARY
		s.word() // KEY
		s.skipTrivia()
		if s.peekByte() == '(' {
			con.PrimaryKey = true
			con.Columns = identList(s)
		}
	}
	skipToItemEnd(s)
	return con
}

// skipToItemEnd consumes the remainder of a column or constraint item,
// stopping at the separating ',' or the closing ')' of the table body.
func skipToItemEnd(s *scanner) {
	for {
		s.skipTrivia()
		if s.eof() {
			return
		}
		c := s.peekByte()
		if c == ',' || c == ')' {
			return
		}
		switch {
		case c == '(':
			s.balanced()
		case c == '\'':
			s.stringLit()
		case c == '"':
			s.skipQuotedIdent()
		case isIdentChar(c):
			s.word()
		default:
			s.pos++
		}
	}
}

// identList reads a parenthesized, comma-separated identifier list. The
// scanner must be positioned at the opening parenthesis.
func identList(s *scanner) []string {
	s.pos++ // '('
	var names []string
	for {
		s.skipTrivia()
		if s.eof() {
			return names
		}
		switch s.peekByte() {
		case ')':
			s.pos++
			return names
		case ',':
			s.pos++
		default:
			names = append(names, s.ident())
		}
	}
}

// Keywords that terminate the type portion of a column definition.
var columnConstraintKeywords = map[string]bool{
	"NOT":        true,
	"NULL":       true,
	"PRIMARY":    true,
	"DEFAULT":    true,
	"REFERENCES": true,
	"UNIQUE":     true,
	"CHECK":      true,
	"CONSTRAINT": true,
	"GENERATED":  true,
	"COLLATE":    true,
}

func parseColumn(s *scanner) parser.Column {
	s.skipTrivia()
	col := parser.Column{Span: parser.Span{Start: s.pos}}
	col.Name = s.ident()
	var lastCode int
	col.Type, lastCode = readColumnType(s)

	for {
		s.skipTrivia()
		if s.eof() {
			break
		}
		c := s.peekByte()
		if c == ',' || c == ')' {
			break
		}
		switch {
		case c == '(':
			s.balanced()
		case c == '\'':
			s.stringLit()
		case c == '"':
			s.skipQuotedIdent()
		case isIdentChar(c):
			w := s.word()
			switch strings.ToUpper(w) {
			case "NOT":
				if strings.EqualFold(s.peekWord(), "NULL") {
					s.word()
					col.NotNull = true
				}
			case "PRIMARY":
				if strings.EqualFold(s.peekWord(), "KEY") {
					s.word()
				}
				col.PrimaryKey = true
			case "DEFAULT":
				col.HasDefault = true
			}
		default:
			s.pos++
		}
		lastCode = s.pos
	}

	col.Span.End = lastCode
	return col
}

// readColumnType consumes the declared type: possibly multi-word
// ("timestamp with time zone"), with modifiers ("varchar(255)") and array
// bracket levels ("text[]", "int[3]"). The returned text preserves the
// source spelling; lookup against the typemap is case-insensitive anyway.
// end is the offset just past the last consumed token, so the caller can
// keep spans free of trailing trivia.
func readColumnType(s *scanner) (typ string, end int) {
	var b strings.Builder
	end = s.pos
	for {
		s.skipTrivia()
		if s.eof() {
			break
		}
		c := s.peekByte()
		if c == ',' || c == ')' {
			break
		}
		if c == '(' {
			b.WriteString(s.balanced())
			end = s.pos
			continue
		}
		if c == '[' {
			for s.pos < s.end && s.src[s.pos] != ']' {
				s.pos++
			}
			if s.pos < s.end {
				s.pos++ // ']'
			}
			b.WriteString("[]")
			end = s.pos
			continue
		}
		if c == '.' {
			// Schema qualifier, e.g. "auth.role". pg_dump spells enum
			// column types this way.
			s.pos++
			b.WriteByte('.')
			if s.peekByte() == '"' {
				b.WriteString(s.ident())
			} else {
				b.WriteString(s.word())
			}
			end = s.pos
			continue
		}
		if c == '"' {
			// Quoted type name, typically a user-defined enum.
			name := s.ident()
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(name)
			end = s.pos
			continue
		}
		if !isIdentChar(c) {
			break
		}
		w := s.peekWord()
		if w == "" || columnConstraintKeywords[strings.ToUpper(w)] {
			break
		}
		s.word()
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
		end = s.pos
	}
	return b.String(), end
}

func parseCreateType(s *scanner, span parser.Span) parser.Declaration {
	schema, name := qualifiedName(s)

	if !strings.EqualFold(s.peekWord(), "AS") {
		return &parser.Unsupported{Span: span, Statement: "CREATE TYPE"}
	}
	s.word() // AS
	if !strings.EqualFold(s.peekWord(), "ENUM") {
		return &parser.Unsupported{Span: span, Statement: "CREATE TYPE"}
	}
	s.word() // ENUM

	s.skipTrivia()
	if s.peekByte() != '(' {
		return &parser.Enum{Schema: schema, Name: name, Span: span}
	}
	s.pos++ // '('

	enum := &parser.Enum{Schema: schema, Name: name, Span: span}
	for {
		s.skipTrivia()
		if s.eof() {
			break
		}
		switch s.peekByte() {
		case ')':
			s.pos++
			return enum
		case ',':
			s.pos++
		case '\'':
			enum.Values = append(enum.Values, s.stringLit())
		default:
			s.pos++
		}
	}
	return enum
}

func qualifiedName(s *scanner) (schema, name string) {
	first := s.ident()
	s.skipTrivia()
	if s.peekByte() == '.' {
		s.pos++
		return first, s.ident()
	}
	return "", first
}
