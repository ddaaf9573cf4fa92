// Package extract lowers the structural parse of a Dart file into the
// normalized declaration model. Extraction preserves source order, keeps
// every annotation as an opaque marker, and never fails: constructs it only
// partially understands produce a declaration with warnings attached.
package extract

import (
	"fmt"

	"github.com/superfastgen/superfastgen/dart"
	"github.com/superfastgen/superfastgen/model"
)

// Extract converts one parsed file into declarations, in source order.
// Unannotated classes and functions carry nothing the generators act on and
// are dropped here.
func Extract(f *dart.File) []model.Declaration {
	var decls []model.Declaration
	for i := range f.Classes {
		cls := &f.Classes[i]
		if len(cls.Annotations) == 0 {
			continue
		}
		decls = append(decls, extractClass(cls, f.Path))
	}
	for i := range f.Functions {
		fn := &f.Functions[i]
		if len(fn.Annotations) == 0 {
			continue
		}
		decls = append(decls, extractFunction(fn, f.Path))
	}
	return decls
}

func extractClass(cls *dart.Class, path string) model.Declaration {
	d := model.Declaration{
		Name:       cls.Name,
		Markers:    markers(cls.Annotations),
		Extends:    cls.Extends,
		SourcePath: path,
	}

	primary, cases := splitFactories(cls)
	for i := range cls.Factories {
		if cls.Factories[i].Name == "fromJson" {
			d.HasJSONFactory = true
		}
	}

	// A class extending its own generated base with no redirecting factory
	// is a notifier-style stateful unit; its state type comes from build.
	if primary == nil && len(cases) == 0 && cls.Extends == "_$"+cls.Name {
		d.Kind = model.StatefulUnit
		if build := cls.Method("build"); build != nil {
			ret := model.ParseType(build.ReturnType)
			d.Return = &ret
		} else {
			d.Warn("no build method found; state type defaults to dynamic")
			ret := model.TypeDescriptor{Name: "dynamic"}
			d.Return = &ret
		}
		return d
	}

	d.Kind = model.ValueType
	if primary != nil {
		d.Params = parameters(primary.Params, &d)
	}
	for _, c := range cases {
		d.Cases = append(d.Cases, model.Case{
			Name:   c.Name,
			Params: parameters(c.Params, &d),
		})
	}
	if primary == nil && len(cases) == 0 {
		d.Warn("no redirecting factory constructor found")
	}
	return d
}

func extractFunction(fn *dart.Function, path string) model.Declaration {
	d := model.Declaration{
		Kind:       model.Function,
		Name:       fn.Name,
		Markers:    markers(fn.Annotations),
		SourcePath: path,
	}
	ret := model.ParseType(fn.ReturnType)
	d.Return = &ret
	d.Params = parameters(fn.Params, &d)
	return d
}

// splitFactories separates the unnamed redirecting factory from named union
// cases. Non-redirecting factories such as fromJson are constructor
// boilerplate, not declaration shape.
func splitFactories(cls *dart.Class) (primary *dart.Factory, cases []dart.Factory) {
	for i := range cls.Factories {
		fac := &cls.Factories[i]
		if fac.RedirectTo == "" {
			continue
		}
		if fac.Name == "fromJson" {
			continue
		}
		if fac.Name == "" {
			if primary == nil {
				primary = fac
			}
			continue
		}
		cases = append(cases, *fac)
	}
	return primary, cases
}

func markers(annotations []dart.Annotation) []model.Marker {
	out := make([]model.Marker, 0, len(annotations))
	for _, a := range annotations {
		out = append(out, model.Marker{Name: a.Name, Args: a.Args})
	}
	return out
}

// parameters normalizes a parameter list, deduplicating by name. The first
// occurrence wins; duplicates attach a warning to the owning declaration.
func parameters(params []dart.Param, d *model.Declaration) []model.Parameter {
	seen := make(map[string]bool, len(params))
	out := make([]model.Parameter, 0, len(params))
	for _, p := range params {
		if p.Name == "" {
			continue
		}
		if seen[p.Name] {
			d.Warn(fmt.Sprintf("duplicate parameter %q dropped", p.Name))
			continue
		}
		seen[p.Name] = true

		typ := model.ParseType(p.Type)
		if p.This {
			typ = model.TypeDescriptor{Name: "dynamic"}
		}
		out = append(out, model.Parameter{
			Name:     p.Name,
			Type:     typ,
			Named:    p.Named,
			Required: p.Required,
			Default:  p.Default,
		})
	}
	return out
}
