package dart

// File is the structural view of one parsed Dart source file
type File struct {
	Path      string
	Classes   []Class
	Functions []Function
}

// Annotation is a source annotation such as @freezed or @Default('x').
// Args holds the top-level argument expressions as raw text.
type Annotation struct {
	Name string
	Args []string
	Line int
}

// Class is a class declaration with the members the generators inspect
type Class struct {
	Name        string
	Extends     string
	Annotations []Annotation
	Factories   []Factory
	Methods     []Method
	Line        int
}

// Method records a member method signature. Bodies are not kept; the only
// consumer is notifier state inference from the build method.
type Method struct {
	Name       string
	ReturnType string
	Line       int
}

// Method returns the first method with the given name, or nil
func (c *Class) Method(name string) *Method {
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			return &c.Methods[i]
		}
	}
	return nil
}

// Factory is one factory constructor of a class. Name is empty for the
// unnamed primary constructor and the case name for named factories.
// RedirectTo carries the target of a redirecting `= _Target;` clause.
type Factory struct {
	Name       string
	Params     []Param
	Const      bool
	RedirectTo string
	Line       int
}

// Param is one declared parameter. Type keeps the raw annotation text;
// normalization happens during extraction.
type Param struct {
	Name        string
	Type        string
	Named       bool
	Positional  bool
	Required    bool
	This        bool
	Default     string
	Annotations []Annotation
	Line        int
}

// DefaultAnnotation returns the raw argument of an @Default(...) annotation
// on the parameter, or the empty string when absent.
func (p Param) DefaultAnnotation() string {
	for _, a := range p.Annotations {
		if a.Name == "Default" && len(a.Args) > 0 {
			return a.Args[0]
		}
	}
	return ""
}

// Function is a top-level function signature
type Function struct {
	Name        string
	ReturnType  string
	Params      []Param
	Annotations []Annotation
	Line        int
}

// HasAnnotation reports whether any of the annotations carries that name
func HasAnnotation(annotations []Annotation, name string) bool {
	for _, a := range annotations {
		if a.Name == name {
			return true
		}
	}
	return false
}
