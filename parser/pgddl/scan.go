package pgddl

import "strings"

// scanner is a byte-offset lexer over a slice of the original source text.
// Offsets it reports are always absolute positions in the full source, which
// is what comment recovery keys on.
type scanner struct {
	src string
	pos int
	end int
}

func newScanner(src string, start, end int) *scanner {
	return &scanner{src: src, pos: start, end: end}
}

func (s *scanner) eof() bool { return s.pos >= s.end }

func (s *scanner) peekByte() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

// skipTrivia advances past whitespace, line comments and block comments.
func (s *scanner) skipTrivia() {
	for s.pos < s.end {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.pos++
		case c == '-' && s.pos+1 < s.end && s.src[s.pos+1] == '-':
			for s.pos < s.end && s.src[s.pos] != '\n' {
				s.pos++
			}
		case c == '/' && s.pos+1 < s.end && s.src[s.pos+1] == '*':
			s.pos += 2
			for s.pos < s.end {
				if s.src[s.pos] == '*' && s.pos+1 < s.end && s.src[s.pos+1] == '/' {
					s.pos += 2
					break
				}
				s.pos++
			}
		default:
			return
		}
	}
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// word consumes and returns the next identifier-like token, or "" if the next
// byte is punctuation. Case is preserved.
func (s *scanner) word() string {
	s.skipTrivia()
	start := s.pos
	for s.pos < s.end && isIdentChar(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// peekWord returns the next word without consuming it.
func (s *scanner) peekWord() string {
	save := s.pos
	w := s.word()
	s.pos = save
	return w
}

// ident consumes an identifier. Double-quoted identifiers keep their exact
// spelling (with "" unescaped); bare identifiers fold to lower case, matching
// Postgres name resolution.
func (s *scanner) ident() string {
	s.skipTrivia()
	if s.peekByte() == '"' {
		s.pos++
		var b strings.Builder
		for s.pos < s.end {
			c := s.src[s.pos]
			if c == '"' {
				if s.pos+1 < s.end && s.src[s.pos+1] == '"' {
					b.WriteByte('"')
					s.pos += 2
					continue
				}
				s.pos++
				break
			}
			b.WriteByte(c)
			s.pos++
		}
		return b.String()
	}
	return strings.ToLower(s.word())
}

// stringLit consumes a single-quoted string literal and returns its value
// with '' unescaped. The scanner must be positioned at the opening quote.
func (s *scanner) stringLit() string {
	s.pos++ // opening quote
	var b strings.Builder
	for s.pos < s.end {
		c := s.src[s.pos]
		if c == '\'' {
			if s.pos+1 < s.end && s.src[s.pos+1] == '\'' {
				b.WriteByte('\'')
				s.pos += 2
				continue
			}
			s.pos++
			break
		}
		b.WriteByte(c)
		s.pos++
	}
	return b.String()
}

// skipQuotedIdent consumes a double-quoted identifier without interpreting it.
func (s *scanner) skipQuotedIdent() {
	s.pos++
	for s.pos < s.end {
		if s.src[s.pos] == '"' {
			if s.pos+1 < s.end && s.src[s.pos+1] == '"' {
				s.pos += 2
				continue
			}
			s.pos++
			return
		}
		s.pos++
	}
}

// balanced consumes a parenthesized group, including nested groups, string
// literals and comments, and returns the consumed text. The scanner must be
// positioned at the opening parenthesis.
func (s *scanner) balanced() string {
	start := s.pos
	depth := 0
	for s.pos < s.end {
		c := s.src[s.pos]
		switch c {
		case '(':
			depth++
			s.pos++
		case ')':
			depth--
			s.pos++
			if depth == 0 {
				return s.src[start:s.pos]
			}
		case '\'':
			s.stringLit()
		case '"':
			s.skipQuotedIdent()
		case '-':
			if s.pos+1 < s.end && s.src[s.pos+1] == '-' {
				for s.pos < s.end && s.src[s.pos] != '\n' {
					s.pos++
				}
			} else {
				s.pos++
			}
		default:
			s.pos++
		}
	}
	return s.src[start:s.pos]
}

// skipDollarQuote consumes a $tag$ ... $tag$ quoted body if the scanner is
// positioned at one, otherwise consumes the single '$'.
func (s *scanner) skipDollarQuote() {
	start := s.pos
	s.pos++ // '$'
	for s.pos < s.end && isIdentChar(s.src[s.pos]) && s.src[s.pos] != '$' {
		s.pos++
	}
	if s.pos >= s.end || s.src[s.pos] != '$' {
		s.pos = start + 1 // not a dollar quote, just a '$'
		return
	}
	s.pos++
	tag := s.src[start:s.pos]
	if idx := strings.Index(s.src[s.pos:s.end], tag); idx >= 0 {
		s.pos += idx + len(tag)
	} else {
		s.pos = s.end
	}
}
