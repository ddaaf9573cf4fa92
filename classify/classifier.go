// Package classify maps extracted declarations onto generation variants.
// Unknown markers are ignored so source files can carry arbitrary
// annotations; conflicting markers on one declaration are a hard error
// because the companions they would produce collide.
package classify

import (
	"strings"

	"github.com/superfastgen/superfastgen/config"
	"github.com/superfastgen/superfastgen/errors"
	"github.com/superfastgen/superfastgen/model"
)

// Classification names the emitters that run for one declaration and the
// provider shape flags the provider emitter needs
type Classification struct {
	Immutable bool
	JSONCodec bool
	Provider  bool

	// IsFamily marks a provider with parameters beyond its ref
	IsFamily bool
	// IsUnit marks a notifier-style provider backed by a stateful class
	IsUnit bool
}

// Any reports whether at least one emitter runs
func (c Classification) Any() bool {
	return c.Immutable || c.JSONCodec || c.Provider
}

// Variants lists the enabled variant tags, for reporting
func (c Classification) Variants() []config.Variant {
	var out []config.Variant
	if c.Immutable {
		out = append(out, config.VariantImmutable)
	}
	if c.JSONCodec {
		out = append(out, config.VariantJSONCodec)
	}
	if c.Provider {
		out = append(out, config.VariantProvider)
	}
	return out
}

var immutableMarkers = map[string]bool{
	"freezed":   true,
	"Freezed":   true,
	"unfreezed": true,
}

var jsonMarkers = map[string]bool{
	"JsonSerializable": true,
	"jsonSerializable": true,
}

var providerMarkers = map[string]bool{
	"riverpod": true,
	"Riverpod": true,
}

// Classify inspects a declaration's markers and shape. Declarations whose
// markers mix value-type and provider generation fail with a conflict error;
// everything else degrades to the empty classification.
func Classify(d *model.Declaration) (Classification, error) {
	var c Classification
	for _, m := range d.Markers {
		switch {
		case immutableMarkers[m.Name]:
			c.Immutable = true
		case jsonMarkers[m.Name]:
			c.JSONCodec = true
		case providerMarkers[m.Name]:
			c.Provider = true
		}
	}

	if c.Provider && (c.Immutable || c.JSONCodec) {
		return Classification{}, errors.Wrapf(errors.ErrConflictingMarkers,
			"%s in %s mixes value-type and provider markers", d.Name, d.SourcePath)
	}

	// Value types with a fromJson factory get their codec alongside the
	// immutable companion even without an explicit codec marker
	if c.Immutable && d.HasJSONFactory {
		c.JSONCodec = true
	}

	if c.Provider {
		switch d.Kind {
		case model.StatefulUnit:
			c.IsUnit = true
		case model.Function:
			c.IsFamily = hasFamilyParams(d.Params)
		default:
			return Classification{}, errors.Wrapf(errors.ErrUnsupportedType,
				"%s in %s carries a provider marker but is neither a function nor a notifier class", d.Name, d.SourcePath)
		}
	}
	return c, nil
}

// hasFamilyParams reports whether any parameter besides the leading ref
// remains, which turns the provider into a family
func hasFamilyParams(params []model.Parameter) bool {
	rest := params
	if len(rest) > 0 && isRefParam(rest[0]) {
		rest = rest[1:]
	}
	return len(rest) > 0
}

func isRefParam(p model.Parameter) bool {
	return p.Name == "ref" || strings.HasSuffix(p.Type.Name, "Ref")
}

// FamilyParams returns the provider parameters with the leading ref removed
func FamilyParams(params []model.Parameter) []model.Parameter {
	if len(params) > 0 && isRefParam(params[0]) {
		return params[1:]
	}
	return params
}
