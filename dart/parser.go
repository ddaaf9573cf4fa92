package dart

import (
	"fmt"
	"strings"
)

// ParseError reports a structural problem the parser could not recover from
type ParseError struct {
	Path   string
	Line   int
	Col    int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Col, e.Reason)
}

// Parse builds the structural view of one Dart source file. Constructs
// outside the recognized surface are skipped; the only hard failure is
// running out of input inside an unclosed class body.
func Parse(path string, src []byte) (*File, error) {
	p := &parser{
		path: path,
		toks: newScanner(src).scanAll(),
	}
	return p.parseFile()
}

type parser struct {
	path string
	toks []Token
	pos  int
}

func (p *parser) parseFile() (*File, error) {
	f := &File{Path: p.path}

	var pending []Annotation
	for p.cur().Kind != TokenEOF {
		tok := p.cur()
		switch {
		case tok.Kind == TokenAt:
			pending = append(pending, p.parseAnnotation())

		case tok.Is("import") || tok.Is("export") || tok.Is("part") || tok.Is("library"):
			p.skipStatement()
			pending = nil

		case tok.Is("abstract") || tok.Is("sealed") || tok.Is("base") || tok.Is("final") || tok.Is("interface"):
			p.pos++

		case tok.Is("class"):
			cls, err := p.parseClass(pending)
			if err != nil {
				return nil, err
			}
			f.Classes = append(f.Classes, *cls)
			pending = nil

		case tok.Is("enum") || tok.Is("mixin") || tok.Is("extension"):
			p.skipToBlockEnd()
			pending = nil

		case tok.Kind == TokenIdent:
			if fn, ok := p.parseFunction(pending); ok {
				f.Functions = append(f.Functions, *fn)
			}
			pending = nil

		default:
			p.pos++
			pending = nil
		}
	}
	return f, nil
}

// parseAnnotation consumes `@Name` or `@Name(arg, arg)` and returns it
func (p *parser) parseAnnotation() Annotation {
	at := p.cur()
	p.pos++

	a := Annotation{Line: at.Line}
	if p.cur().Kind == TokenIdent {
		a.Name = p.cur().Text
		p.pos++
	}
	for p.cur().Kind == TokenDot {
		p.pos++
		if p.cur().Kind == TokenIdent {
			a.Name += "." + p.cur().Text
			p.pos++
		}
	}
	if p.cur().Kind == TokenLParen {
		a.Args = p.parseArgList()
	}
	return a
}

// parseArgList consumes a parenthesized argument list and returns the
// top-level argument expressions as raw text
func (p *parser) parseArgList() []string {
	p.pos++ // (
	var args []string
	var current []Token
	depth := 0
	for p.cur().Kind != TokenEOF {
		tok := p.cur()
		switch tok.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRBracket, TokenRBrace:
			depth--
		case TokenRParen:
			if depth == 0 {
				p.pos++
				if len(current) > 0 {
					args = append(args, renderTokens(current))
				}
				return args
			}
			depth--
		case TokenComma:
			if depth == 0 {
				p.pos++
				if len(current) > 0 {
					args = append(args, renderTokens(current))
				}
				current = nil
				continue
			}
		}
		current = append(current, tok)
		p.pos++
	}
	if len(current) > 0 {
		args = append(args, renderTokens(current))
	}
	return args
}

func (p *parser) parseClass(annotations []Annotation) (*Class, error) {
	classTok := p.cur()
	p.pos++ // class

	cls := &Class{Annotations: annotations, Line: classTok.Line}
	if p.cur().Kind != TokenIdent {
		return nil, &ParseError{Path: p.path, Line: classTok.Line, Col: classTok.Col, Reason: "class keyword without a name"}
	}
	cls.Name = p.cur().Text
	p.pos++

	p.skipGenerics()

	// Header clauses up to the body brace
	for p.cur().Kind != TokenLBrace && p.cur().Kind != TokenEOF {
		if p.cur().Is("extends") {
			p.pos++
			if p.cur().Kind == TokenIdent {
				cls.Extends = p.cur().Text
				p.pos++
				p.skipGenerics()
				continue
			}
		}
		p.pos++
	}
	if p.cur().Kind != TokenLBrace {
		return nil, &ParseError{Path: p.path, Line: classTok.Line, Col: classTok.Col, Reason: "class " + cls.Name + " has no body"}
	}
	p.pos++ // {

	var pending []Annotation
	for {
		tok := p.cur()
		switch {
		case tok.Kind == TokenEOF:
			return nil, &ParseError{Path: p.path, Line: classTok.Line, Col: classTok.Col, Reason: "unterminated body of class " + cls.Name}

		case tok.Kind == TokenRBrace:
			p.pos++
			return cls, nil

		case tok.Kind == TokenAt:
			pending = append(pending, p.parseAnnotation())

		case tok.Is("const") && p.peek(1).Is("factory"),
			tok.Is("factory"):
			fac := p.parseFactory(cls.Name)
			if fac != nil {
				cls.Factories = append(cls.Factories, *fac)
			}
			pending = nil

		case tok.Kind == TokenLBrace:
			p.skipBalanced(TokenLBrace, TokenRBrace)
			pending = nil

		case tok.Kind == TokenIdent:
			if m, ok := p.tryMethodSignature(); ok {
				cls.Methods = append(cls.Methods, m)
			} else {
				p.pos++
			}

		default:
			p.pos++
		}
	}
}

// tryMethodSignature recognizes `ReturnType name(` at the current position
// and records the signature; the parameter list and body are left for the
// body loop to skip. Anything else leaves the position untouched.
func (p *parser) tryMethodSignature() (Method, bool) {
	start := p.pos
	line := p.cur().Line

	retType, ok := p.readType()
	if !ok {
		p.pos = start
		return Method{}, false
	}
	if p.cur().Kind != TokenIdent || p.peek(1).Kind != TokenLParen {
		p.pos = start
		return Method{}, false
	}
	name := p.cur().Text
	p.pos++
	return Method{Name: name, ReturnType: retType, Line: line}, true
}

// parseFactory consumes a factory constructor. Returns nil when the
// construct is not a constructor of the enclosing class.
func (p *parser) parseFactory(className string) *Factory {
	fac := &Factory{Line: p.cur().Line}
	if p.cur().Is("const") {
		fac.Const = true
		p.pos++
	}
	p.pos++ // factory

	if !p.cur().Is(className) {
		p.skipStatement()
		return nil
	}
	p.pos++

	if p.cur().Kind == TokenDot {
		p.pos++
		if p.cur().Kind == TokenIdent {
			fac.Name = p.cur().Text
			p.pos++
		}
	}

	if p.cur().Kind != TokenLParen {
		p.skipStatement()
		return nil
	}
	fac.Params = p.parseParams()

	if p.cur().Kind == TokenEquals {
		p.pos++
		var target []string
		for p.cur().Kind == TokenIdent || p.cur().Kind == TokenDot {
			target = append(target, p.cur().Text)
			p.pos++
		}
		fac.RedirectTo = strings.Join(target, "")
	}
	p.skipStatement()
	return fac
}

// parseParams consumes a parenthesized parameter list, tracking the
// positional, optional-positional, and named sections
func (p *parser) parseParams() []Param {
	p.pos++ // (
	var params []Param
	named := false

	for {
		tok := p.cur()
		switch tok.Kind {
		case TokenEOF, TokenRParen:
			p.pos++
			return params

		case TokenLBrace:
			named = true
			p.pos++

		case TokenRBrace, TokenLBracket, TokenRBracket, TokenComma:
			p.pos++

		default:
			if param, ok := p.parseParam(named); ok {
				params = append(params, param)
			}
		}
	}
}

// parseParam consumes one parameter up to the following separator. The last
// identifier before the separator is the name; everything before it is the
// type annotation.
func (p *parser) parseParam(named bool) (Param, bool) {
	param := Param{Named: named, Positional: !named, Line: p.cur().Line}

	for p.cur().Kind == TokenAt {
		param.Annotations = append(param.Annotations, p.parseAnnotation())
	}
	if p.cur().Is("required") {
		param.Required = true
		p.pos++
	}
	if p.cur().Is("this") && p.peek(1).Kind == TokenDot {
		param.This = true
		p.pos += 2
	}
	if p.cur().Is("covariant") || p.cur().Is("final") {
		p.pos++
	}

	var toks []Token
	depth := 0
	for {
		tok := p.cur()
		if tok.Kind == TokenEOF {
			break
		}
		if depth == 0 {
			if tok.Kind == TokenComma || tok.Kind == TokenRParen ||
				tok.Kind == TokenRBrace || tok.Kind == TokenRBracket ||
				tok.Kind == TokenEquals || tok.Kind == TokenColon {
				break
			}
		}
		switch tok.Kind {
		case TokenLAngle, TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRAngle, TokenRParen, TokenRBracket, TokenRBrace:
			depth--
		}
		toks = append(toks, tok)
		p.pos++
	}

	// Default value after `=` or `:`
	if p.cur().Kind == TokenEquals || p.cur().Kind == TokenColon {
		p.pos++
		param.Default = renderTokens(p.collectUntilSeparator())
	}

	if len(toks) == 0 {
		return param, false
	}
	last := toks[len(toks)-1]
	if last.Kind != TokenIdent {
		return param, false
	}
	param.Name = last.Text
	param.Type = renderTokens(toks[:len(toks)-1])
	if param.Type == "" && !param.This {
		param.Type = "dynamic"
	}
	if d := param.DefaultAnnotation(); d != "" && param.Default == "" {
		param.Default = d
	}
	return param, true
}

// collectUntilSeparator gathers tokens until a top-level parameter boundary
func (p *parser) collectUntilSeparator() []Token {
	var toks []Token
	depth := 0
	for {
		tok := p.cur()
		if tok.Kind == TokenEOF {
			return toks
		}
		if depth == 0 {
			if tok.Kind == TokenComma || tok.Kind == TokenRParen ||
				tok.Kind == TokenRBrace || tok.Kind == TokenRBracket {
				return toks
			}
		}
		switch tok.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			depth--
		}
		toks = append(toks, tok)
		p.pos++
	}
}

// parseFunction attempts to read a top-level function signature starting at
// the current identifier. Non-function declarations (variables, typedefs)
// are skipped and reported as not-a-function.
func (p *parser) parseFunction(annotations []Annotation) (*Function, bool) {
	start := p.pos
	line := p.cur().Line

	retType, ok := p.readType()
	if !ok {
		p.pos = start
		p.skipStatement()
		return nil, false
	}

	if p.cur().Kind != TokenIdent {
		p.pos = start
		p.skipStatement()
		return nil, false
	}
	name := p.cur().Text
	p.pos++
	p.skipGenerics()

	if p.cur().Kind != TokenLParen {
		p.pos = start
		p.skipStatement()
		return nil, false
	}

	fn := &Function{
		Name:        name,
		ReturnType:  retType,
		Params:      p.parseParams(),
		Annotations: annotations,
		Line:        line,
	}

	for p.cur().Is("async") || p.cur().Is("sync") || (p.cur().Kind == TokenOther && p.cur().Text == "*") {
		p.pos++
	}

	switch p.cur().Kind {
	case TokenLBrace:
		p.skipBalanced(TokenLBrace, TokenRBrace)
	case TokenArrow:
		p.skipStatement()
	case TokenSemicolon:
		p.pos++
	}
	return fn, true
}

// readType consumes a type annotation (ident, generics, nullability) and
// renders it as text
func (p *parser) readType() (string, bool) {
	if p.cur().Kind != TokenIdent {
		return "", false
	}
	var toks []Token
	toks = append(toks, p.cur())
	p.pos++

	if p.cur().Kind == TokenLAngle {
		depth := 0
		for {
			tok := p.cur()
			if tok.Kind == TokenEOF {
				return "", false
			}
			switch tok.Kind {
			case TokenLAngle:
				depth++
			case TokenRAngle:
				depth--
			}
			toks = append(toks, tok)
			p.pos++
			if depth == 0 {
				break
			}
		}
	}
	if p.cur().Kind == TokenQuestion {
		toks = append(toks, p.cur())
		p.pos++
	}
	return renderTokens(toks), true
}

// skipStatement advances past the next top-level semicolon, matching
// brackets on the way
func (p *parser) skipStatement() {
	depth := 0
	for {
		tok := p.cur()
		if tok.Kind == TokenEOF {
			return
		}
		switch tok.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			depth--
		case TokenSemicolon:
			if depth <= 0 {
				p.pos++
				return
			}
		}
		p.pos++
	}
}

// skipToBlockEnd advances to the end of the next balanced brace block
func (p *parser) skipToBlockEnd() {
	for p.cur().Kind != TokenLBrace && p.cur().Kind != TokenEOF {
		p.pos++
	}
	p.skipBalanced(TokenLBrace, TokenRBrace)
}

func (p *parser) skipBalanced(open, close TokenKind) {
	if p.cur().Kind != open {
		return
	}
	depth := 0
	for {
		tok := p.cur()
		if tok.Kind == TokenEOF {
			return
		}
		switch tok.Kind {
		case open:
			depth++
		case close:
			depth--
		}
		p.pos++
		if depth == 0 {
			return
		}
	}
}

func (p *parser) skipGenerics() {
	if p.cur().Kind == TokenLAngle {
		p.skipBalanced(TokenLAngle, TokenRAngle)
	}
}

func (p *parser) cur() Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return Token{Kind: TokenEOF}
}

func (p *parser) peek(n int) Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return Token{Kind: TokenEOF}
}

// renderTokens joins token texts back into readable source text: identifiers
// keep a separating space, punctuation binds tight, commas get a trailing
// space.
func renderTokens(toks []Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 {
			prev := toks[i-1]
			switch {
			case prev.Kind == TokenComma:
				b.WriteByte(' ')
			case wordLike(prev) && wordLike(tok):
				b.WriteByte(' ')
			}
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

func wordLike(t Token) bool {
	return t.Kind == TokenIdent || t.Kind == TokenNumber || t.Kind == TokenString
}
