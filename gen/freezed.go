package gen

import (
	"fmt"
	"strings"

	"github.com/superfastgen/superfastgen/model"
)

// field is the emitter-side view of one constructor parameter
type field struct {
	name       string
	ty         string
	typ        model.TypeDescriptor
	nullable   bool
	required   bool
	hasDefault bool
	def        string
}

func (f field) collection() model.CollectionKind {
	return f.typ.Collection()
}

// unsupported reports a field without an equality/hash strategy. Such fields
// keep their storage and accessors but are left out of operator== and
// hashCode, with a warning attached to the declaration.
func (f field) unsupported() bool {
	return f.typ.Name == "Function" || f.typ.Name == "void"
}

// backing is the storage name: collection fields hide behind a private
// backing field so accessors can hand out unmodifiable views
func (f field) backing() string {
	if f.collection() != model.CollectionNone {
		return "_" + f.name
	}
	return f.name
}

func viewType(kind model.CollectionKind) string {
	switch kind {
	case model.CollectionList:
		return "EqualUnmodifiableListView"
	case model.CollectionMap:
		return "EqualUnmodifiableMapView"
	case model.CollectionSet:
		return "EqualUnmodifiableSetView"
	default:
		return ""
	}
}

func fieldsOf(params []model.Parameter) []field {
	out := make([]field, 0, len(params))
	for _, p := range params {
		out = append(out, field{
			name:       p.Name,
			ty:         p.Type.String(),
			typ:        p.Type,
			nullable:   p.Type.Nullable,
			required:   p.Required && !p.HasDefault(),
			hasDefault: p.HasDefault(),
			def:        p.Default,
		})
	}
	return out
}

// constDefault prefixes collection literals with const so they are valid
// default parameter values
func (f field) constDefault() string {
	if f.def == "[]" || f.def == "{}" || strings.HasPrefix(f.def, "[") || strings.HasPrefix(f.def, "{") {
		return "const " + f.def
	}
	return f.def
}

func emitFreezedFile(sourcePath string, targets []Target) string {
	var b strings.Builder
	b.WriteString("// coverage:ignore-file\n")
	b.WriteString("// GENERATED CODE - DO NOT MODIFY BY HAND\n")
	b.WriteString("// ignore_for_file: type=lint\n")
	b.WriteString("// ignore_for_file: unused_element, deprecated_member_use, deprecated_member_use_from_same_package, use_function_type_syntax_for_parameters, unnecessary_const, avoid_init_to_null, invalid_override_different_default_values_named, prefer_expression_function_bodies, annotate_overrides, invalid_annotation_target, unnecessary_question_mark\n\n")
	b.WriteString("part of '" + fileStem(sourcePath) + ".dart';\n\n")
	b.WriteString(generatorBanner("FreezedGenerator"))
	b.WriteString("T _$identity<T>(T value) => value;\n\n")
	b.WriteString("final _privateConstructorUsedError = UnsupportedError(\n")
	b.WriteString("    'It seems like you constructed your class using `MyClass._()`. This constructor is only meant to be used by freezed and you are not supposed to need it nor use it.\\nPlease check the documentation here for more information: https://github.com/rrousselGit/freezed#adding-getters-and-methods-to-our-models');\n\n")

	for _, t := range targets {
		if t.Decl.IsUnion() {
			b.WriteString(emitUnion(t.Decl))
		} else {
			b.WriteString(emitValueClass(t.Decl))
		}
	}
	return trimTrailingBlank(b.String())
}

func emitValueClass(d *model.Declaration) string {
	name := d.Name
	fields := fieldsOf(d.Params)
	var b strings.Builder

	fmt.Fprintf(&b, "%s _$%sFromJson(Map<String, dynamic> json) {\n", name, name)
	fmt.Fprintf(&b, "  return _$%sImpl.fromJson(json);\n", name)
	b.WriteString("}\n\n")

	// Mixin with field getters and the copyWith/toJson surface
	b.WriteString("/// @nodoc\n")
	fmt.Fprintf(&b, "mixin _$%s {\n", name)
	for _, f := range fields {
		fmt.Fprintf(&b, "  %s get %s => throw _privateConstructorUsedError;\n", f.ty, f.name)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  /// Serializes this %s to a JSON map.\n", name)
	b.WriteString("  Map<String, dynamic> toJson() => throw _privateConstructorUsedError;\n\n")
	copyWithDoc(&b, name)
	b.WriteString("  @JsonKey(includeFromJson: false, includeToJson: false)\n")
	fmt.Fprintf(&b, "  $%sCopyWith<%s> get copyWith => throw _privateConstructorUsedError;\n", name, name)
	b.WriteString("}\n\n")

	// $NameCopyWith abstract class
	b.WriteString("/// @nodoc\n")
	fmt.Fprintf(&b, "abstract class $%sCopyWith<$Res> {\n", name)
	fmt.Fprintf(&b, "  factory $%sCopyWith(%s value, $Res Function(%s) then) =\n", name, name, name)
	fmt.Fprintf(&b, "      _$%sCopyWithImpl<$Res, %s>;\n", name, name)
	b.WriteString("  @useResult\n")
	b.WriteString("  $Res call({")
	for _, f := range fields {
		fmt.Fprintf(&b, "\n      %s %s,", f.ty, f.name)
	}
	b.WriteString("\n  });\n")
	b.WriteString("}\n\n")

	// _$NameCopyWithImpl over the public surface
	b.WriteString("/// @nodoc\n")
	fmt.Fprintf(&b, "class _$%sCopyWithImpl<$Res, $Val extends %s>\n", name, name)
	fmt.Fprintf(&b, "    implements $%sCopyWith<$Res> {\n", name)
	fmt.Fprintf(&b, "  _$%sCopyWithImpl(this._value, this._then);\n", name)
	b.WriteString("\n")
	b.WriteString("  // ignore: unused_field\n")
	b.WriteString("  final $Val _value;\n")
	b.WriteString("  // ignore: unused_field\n")
	b.WriteString("  final $Res Function($Val) _then;\n")
	copyWithDoc(&b, name)
	b.WriteString("  @pragma('vm:prefer-inline')\n")
	b.WriteString("  @override\n")
	copyWithSignature(&b, fields)
	b.WriteString("\n  }) {\n")
	b.WriteString("    return _then(_value.copyWith(\n")
	copyWithAssignments(&b, fields, func(f field) string { return "_value." + f.name })
	b.WriteString("    ) as $Val);\n")
	b.WriteString("  }\n")
	b.WriteString("}\n\n")

	// _$$NameImplImplCopyWith abstract class
	b.WriteString("/// @nodoc\n")
	fmt.Fprintf(&b, "abstract class _$$%sImplImplCopyWith<$Res> implements $%sCopyWith<$Res> {\n", name, name)
	fmt.Fprintf(&b, "  factory _$$%sImplImplCopyWith(\n", name)
	fmt.Fprintf(&b, "          _$$%sImplImpl value, $Res Function(_$$%sImplImpl) then) =\n", name, name)
	fmt.Fprintf(&b, "      __$$%sImplImplCopyWithImpl<$Res>;\n", name)
	b.WriteString("  @override\n")
	b.WriteString("  @useResult\n")
	copyWithSignature(&b, fields)
	b.WriteString("\n  });\n")
	b.WriteString("}\n\n")

	// __$$NameImplImplCopyWithImpl over the implementation class
	b.WriteString("/// @nodoc\n")
	fmt.Fprintf(&b, "class __$$%sImplImplCopyWithImpl<$Res>\n", name)
	fmt.Fprintf(&b, "    extends _$%sCopyWithImpl<$Res, _$$%sImplImpl>\n", name, name)
	fmt.Fprintf(&b, "    implements _$$%sImplImplCopyWith<$Res> {\n", name)
	fmt.Fprintf(&b, "  __$$%sImplImplCopyWithImpl(\n", name)
	fmt.Fprintf(&b, "      _$$%sImplImpl _value, $Res Function(_$$%sImplImpl) _then)\n", name, name)
	b.WriteString("      : super(_value, _then);\n")
	b.WriteString("\n")
	copyWithDoc(&b, name)
	b.WriteString("  @pragma('vm:prefer-inline')\n")
	b.WriteString("  @override\n")
	copyWithSignature(&b, fields)
	b.WriteString("\n  }) {\n")
	fmt.Fprintf(&b, "    return _then(_$$%sImplImpl(\n", name)
	copyWithAssignments(&b, fields, func(f field) string { return "_value." + f.backing() })
	b.WriteString("    ));\n")
	b.WriteString("  }\n")
	b.WriteString("}\n\n")

	// Implementation class
	b.WriteString("/// @nodoc\n")
	b.WriteString("@JsonSerializable()\n")
	fmt.Fprintf(&b, "class _$$%sImplImpl implements _$%sImpl {\n", name, name)
	emitImplConstructor(&b, name, fields)
	fmt.Fprintf(&b, "  factory _$$%sImplImpl.fromJson(Map<String, dynamic> json) =>\n", name)
	fmt.Fprintf(&b, "      _$$%sImplImplFromJson(json);\n\n", name)

	for _, f := range fields {
		if kind := f.collection(); kind != model.CollectionNone {
			fmt.Fprintf(&b, "  final %s %s;\n", f.ty, f.backing())
			b.WriteString("  @override\n")
			fmt.Fprintf(&b, "  %s get %s {\n", f.ty, f.name)
			if f.nullable {
				fmt.Fprintf(&b, "    final value = %s;\n", f.backing())
				b.WriteString("    if (value == null) return null;\n")
				fmt.Fprintf(&b, "    if (%s is %s) return %s;\n", f.backing(), viewType(kind), f.backing())
				b.WriteString("    // ignore: implicit_dynamic_type\n")
				fmt.Fprintf(&b, "    return %s(value);\n", viewType(kind))
			} else {
				fmt.Fprintf(&b, "    if (%s is %s) return %s;\n", f.backing(), viewType(kind), f.backing())
				b.WriteString("    // ignore: implicit_dynamic_type\n")
				fmt.Fprintf(&b, "    return %s(%s);\n", viewType(kind), f.backing())
			}
			b.WriteString("  }\n\n")
		} else {
			b.WriteString("  @override\n")
			fmt.Fprintf(&b, "  final %s %s;\n", f.ty, f.name)
		}
	}
	b.WriteString("\n")

	// toString
	b.WriteString("  @override\n")
	b.WriteString("  String toString() {\n")
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.name+": $"+f.name)
	}
	fmt.Fprintf(&b, "    return '%s(%s)';\n", name, strings.Join(parts, ", "))
	b.WriteString("  }\n\n")

	emitEquality(&b, d, fields, "_$$"+name+"ImplImpl")
	emitHashCode(&b, d, fields)

	copyWithDoc(&b, name)
	b.WriteString("  @JsonKey(includeFromJson: false, includeToJson: false)\n")
	b.WriteString("  @override\n")
	b.WriteString("  @pragma('vm:prefer-inline')\n")
	fmt.Fprintf(&b, "  _$$%sImplImplCopyWith<_$$%sImplImpl> get copyWith =>\n", name, name)
	fmt.Fprintf(&b, "      __$$%sImplImplCopyWithImpl<_$$%sImplImpl>(this, _$identity);\n", name, name)
	b.WriteString("\n")
	b.WriteString("  @override\n")
	b.WriteString("  Map<String, dynamic> toJson() {\n")
	fmt.Fprintf(&b, "    return _$$%sImplImplToJson(\n", name)
	b.WriteString("      this,\n")
	b.WriteString("    );\n")
	b.WriteString("  }\n")
	b.WriteString("}\n\n")

	// Abstract interface class
	fmt.Fprintf(&b, "abstract class _$%sImpl implements %s {\n", name, name)
	fmt.Fprintf(&b, "  const factory _$%sImpl(\n", name)
	b.WriteString("    {\n")
	for _, f := range fields {
		if f.required {
			fmt.Fprintf(&b, "      required final %s %s,\n", f.ty, f.name)
		} else {
			fmt.Fprintf(&b, "      final %s %s,\n", f.ty, f.name)
		}
	}
	fmt.Fprintf(&b, "    }\n  ) = _$$%sImplImpl;\n\n", name)
	fmt.Fprintf(&b, "  factory _$%sImpl.fromJson(Map<String, dynamic> json) =\n", name)
	fmt.Fprintf(&b, "      _$$%sImplImpl.fromJson;\n\n", name)

	for _, f := range fields {
		b.WriteString("  @override\n")
		fmt.Fprintf(&b, "  %s get %s;\n", f.ty, f.name)
	}
	b.WriteString("\n")
	copyWithDoc(&b, name)
	b.WriteString("  @override\n")
	b.WriteString("  @JsonKey(includeFromJson: false, includeToJson: false)\n")
	fmt.Fprintf(&b, "  _$$%sImplImplCopyWith<_$$%sImplImpl> get copyWith =>\n", name, name)
	b.WriteString("      throw _privateConstructorUsedError;\n")
	b.WriteString("}\n\n")

	return b.String()
}

func copyWithDoc(b *strings.Builder, name string) {
	b.WriteString("  /// Create a copy of " + name + "\n")
	b.WriteString("  /// with the given fields replaced by the non-null parameter values.\n")
}

// copyWithSignature writes the `$Res call({` parameter block: every field
// becomes Object? with a sentinel default distinguishing "omitted" from an
// explicit null
func copyWithSignature(b *strings.Builder, fields []field) {
	b.WriteString("  $Res call({")
	for _, f := range fields {
		sentinel := "null"
		if f.nullable {
			sentinel = "freezed"
		}
		fmt.Fprintf(b, "\n    Object? %s = %s,", f.name, sentinel)
	}
}

func copyWithAssignments(b *strings.Builder, fields []field, current func(field) string) {
	for _, f := range fields {
		sentinel := "null"
		if f.nullable {
			sentinel = "freezed"
		}
		fmt.Fprintf(b, "      %s: %s == %s\n", f.name, sentinel, f.name)
		fmt.Fprintf(b, "          ? %s\n", current(f))
		fmt.Fprintf(b, "          : %s // ignore: cast_nullable_to_non_nullable\n", f.name)
		fmt.Fprintf(b, "              as %s,\n", f.ty)
	}
}

// emitImplConstructor writes the implementation constructor. Collection
// fields take a plain final parameter and initialize the private backing
// field; everything else uses this-initializers.
func emitImplConstructor(b *strings.Builder, name string, fields []field) {
	fmt.Fprintf(b, "  const _$$%sImplImpl(\n", name)
	b.WriteString("      {")
	var inits []string
	for _, f := range fields {
		if f.collection() != model.CollectionNone {
			param := "final " + f.ty + " " + f.name
			if f.required {
				param = "required " + param
			} else if f.hasDefault {
				param += " = " + f.constDefault()
			}
			b.WriteString(param + ",")
			inits = append(inits, f.backing()+" = "+f.name)
			continue
		}
		switch {
		case f.required:
			b.WriteString("required this." + f.name + ",")
		case f.hasDefault:
			b.WriteString("this." + f.name + " = " + f.constDefault() + ",")
		default:
			b.WriteString("this." + f.name + ",")
		}
	}
	if len(inits) > 0 {
		b.WriteString("})\n")
		b.WriteString("      : " + strings.Join(inits, ",\n        ") + ";\n\n")
	} else {
		b.WriteString("});\n\n")
	}
}

// emitEquality writes operator== with the identity fast path, field-wise
// comparison in declaration order, and deep equality for collections
func emitEquality(b *strings.Builder, d *model.Declaration, fields []field, implName string) {
	b.WriteString("  @override\n")
	b.WriteString("  bool operator ==(Object other) {\n")
	b.WriteString("    return identical(this, other) ||\n")
	b.WriteString("        (other.runtimeType == runtimeType &&\n")

	clauses := []string{fmt.Sprintf("            other is %s", implName)}
	for _, f := range fields {
		if f.unsupported() {
			d.Warn(fmt.Sprintf("field %q has type %s with no equality strategy; omitted from == and hashCode", f.name, f.ty))
			continue
		}
		if f.collection() != model.CollectionNone {
			n := f.backing()
			single := fmt.Sprintf("            const DeepCollectionEquality().equals(other.%s, %s)", n, n)
			if len(single)+len(" &&") > 80 {
				clauses = append(clauses, fmt.Sprintf("            const DeepCollectionEquality()\n                .equals(other.%s, %s)", n, n))
			} else {
				clauses = append(clauses, single)
			}
			continue
		}
		clauses = append(clauses, fmt.Sprintf("            (identical(other.%s, %s) || other.%s == %s)", f.name, f.name, f.name, f.name))
	}
	b.WriteString(strings.Join(clauses, " &&\n"))
	b.WriteString(");\n")
	b.WriteString("  }\n\n")
}

func emitHashCode(b *strings.Builder, d *model.Declaration, fields []field) {
	b.WriteString("  @JsonKey(includeFromJson: false, includeToJson: false)\n")
	b.WriteString("  @override\n")
	b.WriteString("  int get hashCode => Object.hash(\n")
	b.WriteString("      runtimeType,\n")
	for _, f := range fields {
		if f.unsupported() {
			continue
		}
		if f.collection() != model.CollectionNone {
			fmt.Fprintf(b, "      const DeepCollectionEquality().hash(%s),\n", f.backing())
		} else {
			fmt.Fprintf(b, "      %s,\n", f.name)
		}
	}
	b.WriteString("  );\n\n")
}
