// Package dart contains a tolerant scanner and structural parser for Dart
// source files. It recognizes only the surface the generators consume:
// annotations, class declarations with their factory constructors, and
// top-level function signatures. Bodies and expressions are skipped with
// bracket matching, so files using Dart features far beyond that surface
// still parse.
package dart

import "fmt"

// TokenKind enumerates the token classes the scanner produces
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenString
	TokenNumber
	TokenAt        // @
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenLAngle    // <
	TokenRAngle    // >
	TokenComma     // ,
	TokenSemicolon // ;
	TokenColon     // :
	TokenEquals    // =
	TokenQuestion  // ?
	TokenDot       // .
	TokenArrow     // =>
	TokenOther     // any punctuation the parser never inspects
)

// Token is one lexical unit with its source position
type Token struct {
	Kind TokenKind
	Text string
	Line int
	Col  int
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %q", t.Line, t.Col, t.Text)
}

// Is reports whether the token is an identifier with the given text
func (t Token) Is(ident string) bool {
	return t.Kind == TokenIdent && t.Text == ident
}
