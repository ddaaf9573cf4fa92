// Package gen renders companion source files for classified declarations.
// Output is deterministic: declarations are emitted in the order they were
// extracted, and identical inputs always produce identical text, which lets
// the writer skip files whose content has not changed.
package gen

import (
	"path/filepath"
	"strings"

	"github.com/superfastgen/superfastgen/classify"
	"github.com/superfastgen/superfastgen/config"
	"github.com/superfastgen/superfastgen/model"
)

// Target pairs one declaration with its classification
type Target struct {
	Decl  *model.Declaration
	Class classify.Classification
}

// Result is one rendered companion file
type Result struct {
	Path    string
	Source  string
	Variant config.Variant
	Content string
}

// FreezedPath maps a source file to its immutable companion
func FreezedPath(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, ".dart") + ".freezed.dart"
}

// CodecPath maps a source file to its codec and provider companion
func CodecPath(sourcePath string) string {
	return strings.TrimSuffix(sourcePath, ".dart") + ".g.dart"
}

// IsGeneratedPath reports whether a path names a companion file rather than
// handwritten source
func IsGeneratedPath(path string) bool {
	return strings.HasSuffix(path, ".freezed.dart") ||
		strings.HasSuffix(path, ".g.dart") ||
		strings.HasSuffix(path, ".config.dart")
}

func fileStem(sourcePath string) string {
	base := filepath.Base(sourcePath)
	return strings.TrimSuffix(base, ".dart")
}

const banner = "// **************************************************************************\n"

func generatorBanner(name string) string {
	return banner + "// " + name + "\n" + banner + "\n"
}

// EmitFile renders every enabled companion for one source file. Files with
// no matching declarations produce no results.
func EmitFile(sourcePath string, targets []Target, enabled map[config.Variant]bool) []Result {
	var freezed, codec, provider []Target
	for _, t := range targets {
		if t.Class.Immutable && enabled[config.VariantImmutable] {
			freezed = append(freezed, t)
		}
		if t.Class.JSONCodec && enabled[config.VariantJSONCodec] {
			codec = append(codec, t)
		}
		if t.Class.Provider && enabled[config.VariantProvider] {
			provider = append(provider, t)
		}
	}

	var results []Result
	if len(freezed) > 0 {
		results = append(results, Result{
			Path:    FreezedPath(sourcePath),
			Source:  sourcePath,
			Variant: config.VariantImmutable,
			Content: emitFreezedFile(sourcePath, freezed),
		})
	}

	if len(codec) > 0 || len(provider) > 0 {
		var b strings.Builder
		b.WriteString("// GENERATED CODE - DO NOT MODIFY BY HAND\n\n")
		b.WriteString("part of '" + fileStem(sourcePath) + ".dart';\n\n")
		if len(codec) > 0 {
			b.WriteString(generatorBanner("JsonSerializableGenerator"))
			for _, t := range codec {
				b.WriteString(emitCodec(t.Decl))
			}
		}
		if len(provider) > 0 {
			b.WriteString(generatorBanner("RiverpodGenerator"))
			b.WriteString(emitProviderSection(provider))
		}

		variant := config.VariantJSONCodec
		if len(codec) == 0 {
			variant = config.VariantProvider
		}
		results = append(results, Result{
			Path:    CodecPath(sourcePath),
			Source:  sourcePath,
			Variant: variant,
			Content: trimTrailingBlank(b.String()),
		})
	}
	return results
}

// trimTrailingBlank collapses trailing blank lines to a single newline
func trimTrailingBlank(s string) string {
	return strings.TrimRight(s, "\n") + "\n"
}
