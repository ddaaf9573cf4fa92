package gen

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/superfastgen/superfastgen/classify"
	"github.com/superfastgen/superfastgen/model"
)

const systemHashClass = `/// Copied from Dart SDK
class _SystemHash {
  _SystemHash._();

  static int combine(int hash, int value) {
    // ignore: parameter_assignments
    hash = 0x1fffffff & (hash + value);
    // ignore: parameter_assignments
    hash = 0x1fffffff & (hash + ((0x0007ffff & hash) << 10));
    return hash ^ (hash >> 6);
  }

  static int finish(int hash) {
    // ignore: parameter_assignments
    hash = 0x1fffffff & (hash + ((0x03ffffff & hash) << 3));
    // ignore: parameter_assignments
    hash = hash ^ (hash >> 11);
    return 0x1fffffff & (hash + ((0x00003fff & hash) << 15));
  }
}

`

const providerFooter = "// ignore_for_file: type=lint\n" +
	"// ignore_for_file: subtype_of_sealed_class, invalid_use_of_internal_member, invalid_use_of_visible_for_testing_member, deprecated_member_use_from_same_package\n"

// emitProviderSection renders the reactive accessors for one file's provider
// declarations: notifier base classes first, then the hash helper, then one
// provider per declaration, closed by the lint footer.
func emitProviderSection(targets []Target) string {
	var b strings.Builder

	for _, t := range targets {
		if t.Class.IsUnit {
			emitNotifierBase(&b, t.Decl)
		}
	}
	b.WriteString(systemHashClass)

	for _, t := range targets {
		if t.Class.IsUnit {
			emitNotifierProvider(&b, t.Decl)
		} else {
			emitFunctionProvider(&b, t.Decl, t.Class)
		}
	}

	b.WriteString(providerFooter)
	return b.String()
}

// providerHash derives the stable source hash recorded in the generated
// provider, keyed on declaration name and source path
func providerHash(d *model.Declaration) string {
	sum := sha1.Sum([]byte(d.Name + d.SourcePath))
	return fmt.Sprintf("%x", sum)
}

// notifierState returns the state type of a stateful unit and whether its
// build is asynchronous
func notifierState(d *model.Declaration) (state string, async bool) {
	if d.Return == nil {
		return "dynamic", false
	}
	inner, wrapper := unwrapAsync(d.Return.String())
	return inner, wrapper == "Future"
}

func emitNotifierBase(b *strings.Builder, d *model.Declaration) {
	state, async := notifierState(d)
	base := "Notifier"
	build := state
	if async {
		base = "AsyncNotifier"
		build = "Future<" + state + ">"
	}
	fmt.Fprintf(b, "abstract class _$%s extends %s<%s> {\n", d.Name, base, state)
	b.WriteString("  @override\n")
	fmt.Fprintf(b, "  %s build();\n", build)
	b.WriteString("}\n\n")
}

func emitNotifierProvider(b *strings.Builder, d *model.Declaration) {
	state, async := notifierState(d)
	providerType := "NotifierProvider"
	if async {
		providerType = "AsyncNotifierProvider"
	}
	providerName := toLowerCamel(d.Name) + "Provider"
	fmt.Fprintf(b, "final %s = %s<%s, %s>(() {\n", providerName, providerType, d.Name, state)
	fmt.Fprintf(b, "  return %s();\n", d.Name)
	b.WriteString("});\n\n")
}

func emitFunctionProvider(b *strings.Builder, d *model.Declaration, c classify.Classification) {
	providerName := toLowerCamel(d.Name) + "Provider"
	fmt.Fprintf(b, "String _$%sHash() => r'%s';\n\n", providerName, providerHash(d))

	retType := "dynamic"
	if d.Return != nil {
		retType = d.Return.String()
	}
	inner, wrapper := unwrapAsync(retType)
	providerType := "AutoDisposeProvider"
	switch wrapper {
	case "Future":
		providerType = "AutoDisposeFutureProvider"
	case "Stream":
		providerType = "AutoDisposeStreamProvider"
	}

	if !c.IsFamily {
		fmt.Fprintf(b, "final %s = %s<%s>((ref) {\n", providerName, providerType, inner)
		fmt.Fprintf(b, "  return %s(ref);\n", d.Name)
		b.WriteString("});\n\n")
		return
	}

	family := classify.FamilyParams(d.Params)
	paramType := "Map<String, dynamic>"
	if len(family) == 1 {
		paramType = family[0].Type.String()
	}

	fmt.Fprintf(b, "final %s = %s.family<%s, %s>((ref, params) {\n", providerName, providerType, inner, paramType)
	fmt.Fprintf(b, "  return %s(ref%s);\n", d.Name, familyArgs(family))
	b.WriteString("});\n\n")
}

// familyArgs renders the pass-through of family parameters to the wrapped
// function. A lone positional parameter is forwarded directly; multiple
// parameters travel in a string-keyed map.
func familyArgs(family []model.Parameter) string {
	if len(family) == 1 {
		if family[0].Named {
			return ", " + family[0].Name + ": params"
		}
		return ", params"
	}
	var b strings.Builder
	for _, p := range family {
		if p.Named {
			fmt.Fprintf(&b, ", %s: params['%s']", p.Name, p.Name)
		} else {
			fmt.Fprintf(&b, ", params['%s']", p.Name)
		}
	}
	return b.String()
}
