// Package model defines the normalized declaration model extracted from
// parsed Dart source. Everything downstream of extraction (classification,
// emission) operates on these types only; no component re-reads source text.
package model

// DeclKind distinguishes the three declaration shapes the generators accept
type DeclKind int

const (
	// ValueType is an annotated class with a redirecting factory constructor
	ValueType DeclKind = iota
	// Function is an annotated top-level function
	Function
	// StatefulUnit is an annotated class extending a generated notifier base
	StatefulUnit
)

func (k DeclKind) String() string {
	switch k {
	case ValueType:
		return "value-type"
	case Function:
		return "function"
	case StatefulUnit:
		return "stateful-unit"
	default:
		return "unknown"
	}
}

// Parameter is one constructor or function parameter, in declaration order
type Parameter struct {
	Name     string
	Type     TypeDescriptor
	Named    bool
	Required bool
	// Default is the raw default-value expression from an @Default(...)
	// annotation, empty when absent
	Default string
}

// HasDefault reports whether the parameter carries a default value
func (p Parameter) HasDefault() bool {
	return p.Default != ""
}

// Marker is a source-level annotation attached to a declaration. Arguments
// are kept as raw text; the classifier only inspects name and presence.
type Marker struct {
	Name string
	Args []string
}

// Case is one union case of a sealed value type (one redirecting factory
// beyond the primary constructor)
type Case struct {
	Name   string
	Params []Parameter
}

// ExtractionWarning records a partially-understood construct. Emission
// proceeds with best-effort data; warnings surface in the run report.
type ExtractionWarning struct {
	Declaration string
	Message     string
}

// Declaration is the unit handed to the classifier and emitters
type Declaration struct {
	Kind    DeclKind
	Name    string
	Params  []Parameter
	Cases   []Case
	Markers []Marker
	Return  *TypeDescriptor
	Extends string
	// HasJSONFactory is set when the source class declares a fromJson
	// factory, which gates codec emission for value types
	HasJSONFactory bool
	Warnings       []ExtractionWarning
	SourcePath     string
}

// HasMarker reports whether the declaration carries a marker with that name
func (d *Declaration) HasMarker(name string) bool {
	for _, m := range d.Markers {
		if m.Name == name {
			return true
		}
	}
	return false
}

// IsUnion reports whether the value type declares multiple factory cases
func (d *Declaration) IsUnion() bool {
	return len(d.Cases) > 0
}

// Warn attaches an extraction warning to the declaration
func (d *Declaration) Warn(message string) {
	d.Warnings = append(d.Warnings, ExtractionWarning{
		Declaration: d.Name,
		Message:     message,
	})
}
