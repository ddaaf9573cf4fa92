package model

import "strings"

// CollectionKind tags a type with the immutability-wrapping strategy its
// emitted accessors and equality must use.
type CollectionKind int

const (
	CollectionNone CollectionKind = iota
	CollectionList
	CollectionMap
	CollectionSet
)

// TypeDescriptor is the normalized form of a Dart type annotation: a head
// name, nullability, and ordered generic arguments (each a TypeDescriptor).
type TypeDescriptor struct {
	Name     string
	Nullable bool
	Args     []TypeDescriptor
}

// Collection returns the collection kind of the head type
func (t TypeDescriptor) Collection() CollectionKind {
	switch t.Name {
	case "List":
		return CollectionList
	case "Map":
		return CollectionMap
	case "Set":
		return CollectionSet
	default:
		return CollectionNone
	}
}

// IsCollection reports whether the head type is a wrapped collection kind
func (t TypeDescriptor) IsCollection() bool {
	return t.Collection() != CollectionNone
}

// IsPrimitive reports whether the type decodes by passthrough in JSON codecs
func (t TypeDescriptor) IsPrimitive() bool {
	switch t.Name {
	case "String", "int", "double", "num", "bool", "dynamic", "Object":
		return true
	default:
		return false
	}
}

// String renders the canonical Dart spelling of the type
func (t TypeDescriptor) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.String())
		}
		b.WriteByte('>')
	}
	if t.Nullable {
		b.WriteByte('?')
	}
	return b.String()
}

// NonNullable returns a copy of the type with the nullable flag cleared
func (t TypeDescriptor) NonNullable() TypeDescriptor {
	t.Nullable = false
	return t
}

// ParseType parses a Dart type annotation such as "Map<String, List<int>?>?"
// into a TypeDescriptor. Input the parser cannot make sense of degrades to a
// dynamic descriptor rather than failing: emitters treat unknown heads as
// opaque and the extractor attaches a warning where that matters.
func ParseType(s string) TypeDescriptor {
	p := typeParser{src: strings.TrimSpace(s)}
	td, ok := p.parse()
	if !ok || p.pos != len(p.src) {
		return TypeDescriptor{Name: "dynamic"}
	}
	return td
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) parse() (TypeDescriptor, bool) {
	name := p.ident()
	if name == "" {
		return TypeDescriptor{}, false
	}

	td := TypeDescriptor{Name: name}

	if p.peek() == '<' {
		p.pos++
		for {
			p.skipSpace()
			arg, ok := p.parse()
			if !ok {
				return TypeDescriptor{}, false
			}
			td.Args = append(td.Args, arg)
			p.skipSpace()
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case '>':
				p.pos++
			default:
				return TypeDescriptor{}, false
			}
			break
		}
	}

	if p.peek() == '?' {
		p.pos++
		td.Nullable = true
	}
	return td, true
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c == '$' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(p.pos > start && c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}
