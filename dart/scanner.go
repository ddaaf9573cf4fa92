package dart

// scanner walks raw Dart source and produces tokens. Comments are dropped,
// strings are kept with their quotes so default-value expressions round-trip
// verbatim into generated code.
type scanner struct {
	src  []byte
	pos  int
	line int
	col  int
}

func newScanner(src []byte) *scanner {
	return &scanner{src: src, line: 1, col: 1}
}

// scanAll tokenizes the whole input. The scanner never fails; bytes it does
// not understand become TokenOther and the parser skips them.
func (s *scanner) scanAll() []Token {
	var toks []Token
	for {
		tok := s.next()
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks
		}
	}
}

func (s *scanner) next() Token {
	s.skipTrivia()
	if s.pos >= len(s.src) {
		return Token{Kind: TokenEOF, Line: s.line, Col: s.col}
	}

	line, col := s.line, s.col
	c := s.src[s.pos]

	switch {
	case c == 'r' && s.pos+1 < len(s.src) && (s.src[s.pos+1] == '\'' || s.src[s.pos+1] == '"'):
		s.advance()
		return Token{Kind: TokenString, Text: "r" + s.scanString(), Line: line, Col: col}

	case isIdentStart(c):
		start := s.pos
		for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
			s.advance()
		}
		return Token{Kind: TokenIdent, Text: string(s.src[start:s.pos]), Line: line, Col: col}

	case c >= '0' && c <= '9':
		start := s.pos
		for s.pos < len(s.src) && isNumberPart(s.src[s.pos]) {
			s.advance()
		}
		return Token{Kind: TokenNumber, Text: string(s.src[start:s.pos]), Line: line, Col: col}

	case c == '\'' || c == '"':
		return Token{Kind: TokenString, Text: s.scanString(), Line: line, Col: col}
	}

	s.advance()
	text := string(c)
	kind := TokenOther
	switch c {
	case '@':
		kind = TokenAt
	case '(':
		kind = TokenLParen
	case ')':
		kind = TokenRParen
	case '{':
		kind = TokenLBrace
	case '}':
		kind = TokenRBrace
	case '[':
		kind = TokenLBracket
	case ']':
		kind = TokenRBracket
	case '<':
		kind = TokenLAngle
	case '>':
		kind = TokenRAngle
	case ',':
		kind = TokenComma
	case ';':
		kind = TokenSemicolon
	case ':':
		kind = TokenColon
	case '?':
		kind = TokenQuestion
	case '.':
		kind = TokenDot
	case '=':
		if s.pos < len(s.src) && s.src[s.pos] == '>' {
			s.advance()
			return Token{Kind: TokenArrow, Text: "=>", Line: line, Col: col}
		}
		kind = TokenEquals
	}
	return Token{Kind: kind, Text: text, Line: line, Col: col}
}

// skipTrivia consumes whitespace, line comments, and nested block comments
func (s *scanner) skipTrivia() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		case c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.advance()
			}
		case c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '*':
			s.advance()
			s.advance()
			depth := 1
			for s.pos < len(s.src) && depth > 0 {
				if s.src[s.pos] == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '*' {
					depth++
					s.advance()
				} else if s.src[s.pos] == '*' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
					depth--
					s.advance()
				}
				s.advance()
			}
		default:
			return
		}
	}
}

// scanString consumes a quoted literal including the quotes. Triple-quoted
// strings and ${...} interpolation are passed through without tokenizing
// their contents.
func (s *scanner) scanString() string {
	start := s.pos
	quote := s.src[s.pos]
	s.advance()

	triple := false
	if s.pos+1 < len(s.src) && s.src[s.pos] == quote && s.src[s.pos+1] == quote {
		triple = true
		s.advance()
		s.advance()
	}

	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\\' && s.pos+1 < len(s.src) {
			s.advance()
			s.advance()
			continue
		}
		if c == '$' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '{' {
			s.advance()
			s.advance()
			depth := 1
			for s.pos < len(s.src) && depth > 0 {
				switch s.src[s.pos] {
				case '{':
					depth++
				case '}':
					depth--
				}
				s.advance()
			}
			continue
		}
		if c == quote {
			if !triple {
				s.advance()
				break
			}
			if s.pos+2 < len(s.src) && s.src[s.pos+1] == quote && s.src[s.pos+2] == quote {
				s.advance()
				s.advance()
				s.advance()
				break
			}
		}
		s.advance()
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) advance() {
	if s.pos < len(s.src) {
		if s.src[s.pos] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
		s.pos++
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isNumberPart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == 'x' || c == 'e' ||
		(c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
