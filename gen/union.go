package gen

import (
	"fmt"
	"strings"

	"github.com/superfastgen/superfastgen/model"
)

// caseView carries one union case with its emitter-side field views
type caseView struct {
	name      string
	className string
	implName  string
	fields    []field
}

func casesOf(d *model.Declaration) []caseView {
	out := make([]caseView, 0, len(d.Cases))
	for _, c := range d.Cases {
		className := d.Name + toPascalCase(c.Name)
		out = append(out, caseView{
			name:      c.Name,
			className: className,
			implName:  "_$" + className + "Impl",
			fields:    fieldsOf(c.Params),
		})
	}
	return out
}

// fnParams renders "ty name, ty name" for callback signatures
func (c caseView) fnParams() string {
	parts := make([]string, 0, len(c.fields))
	for _, f := range c.fields {
		parts = append(parts, f.ty+" "+f.name)
	}
	return strings.Join(parts, ", ")
}

func (c caseView) argNames() string {
	parts := make([]string, 0, len(c.fields))
	for _, f := range c.fields {
		parts = append(parts, f.name)
	}
	return strings.Join(parts, ", ")
}

func emitUnion(d *model.Declaration) string {
	name := d.Name
	cases := casesOf(d)
	var b strings.Builder

	// Mixin with the pattern-match surface
	b.WriteString("/// @nodoc\n")
	fmt.Fprintf(&b, "mixin _$%s {\n", name)

	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult when<TResult extends Object?>({\n")
	for _, c := range cases {
		fmt.Fprintf(&b, "    required TResult Function(%s) %s,\n", c.fnParams(), c.name)
	}
	b.WriteString("  }) => throw _privateConstructorUsedError;\n")

	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult? whenOrNull<TResult extends Object?>({\n")
	for _, c := range cases {
		fmt.Fprintf(&b, "    TResult? Function(%s)? %s,\n", c.fnParams(), c.name)
	}
	b.WriteString("  }) => throw _privateConstructorUsedError;\n")

	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult maybeWhen<TResult extends Object?>({\n")
	for _, c := range cases {
		fmt.Fprintf(&b, "    TResult Function(%s)? %s,\n", c.fnParams(), c.name)
	}
	b.WriteString("    required TResult orElse(),\n")
	b.WriteString("  }) => throw _privateConstructorUsedError;\n")

	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult map<TResult extends Object?>({\n")
	for _, c := range cases {
		fmt.Fprintf(&b, "    required TResult Function(%s) %s,\n", c.className, c.name)
	}
	b.WriteString("  }) => throw _privateConstructorUsedError;\n")

	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult? mapOrNull<TResult extends Object?>({\n")
	for _, c := range cases {
		fmt.Fprintf(&b, "    TResult? Function(%s)? %s,\n", c.className, c.name)
	}
	b.WriteString("  }) => throw _privateConstructorUsedError;\n")

	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult maybeMap<TResult extends Object?>({\n")
	for _, c := range cases {
		fmt.Fprintf(&b, "    TResult Function(%s)? %s,\n", c.className, c.name)
	}
	b.WriteString("    required TResult orElse(),\n")
	b.WriteString("  }) => throw _privateConstructorUsedError;\n\n")

	fmt.Fprintf(&b, "  /// Serializes this %s to a JSON map.\n", name)
	b.WriteString("  Map<String, dynamic> toJson() => throw _privateConstructorUsedError;\n")
	b.WriteString("}\n\n")

	// toJson over the sealed surface, dispatching through when
	b.WriteString("/// @nodoc\n")
	fmt.Fprintf(&b, "extension %sExtension on %s {\n", name, name)
	b.WriteString("  Map<String, dynamic> toJson() => when(\n")
	for _, c := range cases {
		fmt.Fprintf(&b, "    %s: (%s) => <String, dynamic>{\n", c.name, c.argNames())
		fmt.Fprintf(&b, "      'type': '%s',\n", c.name)
		for _, f := range c.fields {
			fmt.Fprintf(&b, "      '%s': %s,\n", f.name, f.name)
		}
		b.WriteString("    },\n")
	}
	b.WriteString("  );\n")
	b.WriteString("}\n\n")

	for _, c := range cases {
		emitUnionCase(&b, name, c, cases)
	}
	return b.String()
}

func emitUnionCase(b *strings.Builder, unionName string, c caseView, cases []caseView) {
	// Abstract case class
	fmt.Fprintf(b, "abstract class %s implements %s {\n", c.className, unionName)
	if len(c.fields) == 0 {
		fmt.Fprintf(b, "  const factory %s() = %s;\n\n", c.className, c.implName)
	} else {
		fmt.Fprintf(b, "  const factory %s({\n", c.className)
		for _, f := range c.fields {
			if f.required {
				fmt.Fprintf(b, "    required final %s %s,\n", f.ty, f.name)
			} else {
				fmt.Fprintf(b, "    final %s %s,\n", f.ty, f.name)
			}
		}
		fmt.Fprintf(b, "  }) = %s;\n\n", c.implName)
	}
	for _, f := range c.fields {
		fmt.Fprintf(b, "  %s get %s;\n", f.ty, f.name)
	}
	if len(c.fields) > 0 {
		b.WriteString("\n")
	}
	copyWithDoc(b, unionName)
	b.WriteString("  @JsonKey(includeFromJson: false, includeToJson: false)\n")
	fmt.Fprintf(b, "  _$$%sImplCopyWith<%s> get copyWith =>\n", c.className, c.implName)
	b.WriteString("      throw _privateConstructorUsedError;\n")
	b.WriteString("}\n\n")

	// Implementation class
	b.WriteString("/// @nodoc\n")
	b.WriteString("@JsonSerializable()\n")
	fmt.Fprintf(b, "class %s implements %s {\n", c.implName, c.className)
	if len(c.fields) == 0 {
		fmt.Fprintf(b, "  const %s();\n\n", c.implName)
	} else {
		fmt.Fprintf(b, "  const %s({\n", c.implName)
		for _, f := range c.fields {
			if f.required {
				fmt.Fprintf(b, "    required this.%s,\n", f.name)
			} else {
				fmt.Fprintf(b, "    this.%s,\n", f.name)
			}
		}
		b.WriteString("  });\n\n")
		for _, f := range c.fields {
			b.WriteString("  @override\n")
			fmt.Fprintf(b, "  final %s %s;\n", f.ty, f.name)
		}
		b.WriteString("\n")
	}

	b.WriteString("  @override\n")
	fmt.Fprintf(b, "  String get $type => '%s';\n\n", c.name)

	b.WriteString("  @override\n")
	b.WriteString("  String toString() {\n")
	if len(c.fields) == 0 {
		fmt.Fprintf(b, "    return '%s';\n", c.name)
	} else {
		parts := make([]string, 0, len(c.fields))
		for _, f := range c.fields {
			parts = append(parts, f.name+": $"+f.name)
		}
		fmt.Fprintf(b, "    return '%s.%s(%s)';\n", unionName, c.name, strings.Join(parts, ", "))
	}
	b.WriteString("  }\n\n")

	b.WriteString("  @override\n")
	b.WriteString("  bool operator ==(Object other) {\n")
	b.WriteString("    return identical(this, other) ||\n")
	fmt.Fprintf(b, "        (other.runtimeType == runtimeType && other is %s);\n", c.implName)
	b.WriteString("  }\n\n")

	b.WriteString("  @JsonKey(includeFromJson: false, includeToJson: false)\n")
	b.WriteString("  @override\n")
	b.WriteString("  int get hashCode => runtimeType.hashCode;\n\n")

	b.WriteString("  @JsonKey(includeFromJson: false, includeToJson: false)\n")
	b.WriteString("  @override\n")
	fmt.Fprintf(b, "  _$$%sImplCopyWith<%s> get copyWith =>\n", c.className, c.implName)
	fmt.Fprintf(b, "      __$$%sImplCopyWithImpl<%s>(this, _$identity);\n\n", c.className, c.implName)

	// Pattern-match implementations
	b.WriteString("  @override\n")
	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult when<TResult extends Object?>({\n")
	for _, other := range cases {
		fmt.Fprintf(b, "    required TResult Function(%s) %s,\n", other.fnParams(), other.name)
	}
	b.WriteString("  }) {\n")
	fmt.Fprintf(b, "    return %s(%s);\n", c.name, c.argNames())
	b.WriteString("  }\n\n")

	b.WriteString("  @override\n")
	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult? whenOrNull<TResult extends Object?>({\n")
	for _, other := range cases {
		fmt.Fprintf(b, "    TResult? Function(%s)? %s,\n", other.fnParams(), other.name)
	}
	b.WriteString("  }) {\n")
	fmt.Fprintf(b, "    return %s?.call(%s);\n", c.name, c.argNames())
	b.WriteString("  }\n\n")

	b.WriteString("  @override\n")
	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult maybeWhen<TResult extends Object?>({\n")
	for _, other := range cases {
		fmt.Fprintf(b, "    TResult Function(%s)? %s,\n", other.fnParams(), other.name)
	}
	b.WriteString("    required TResult orElse(),\n")
	b.WriteString("  }) {\n")
	fmt.Fprintf(b, "    if (%s != null) {\n", c.name)
	fmt.Fprintf(b, "      return %s(%s);\n", c.name, c.argNames())
	b.WriteString("    }\n")
	b.WriteString("    return orElse();\n")
	b.WriteString("  }\n\n")

	b.WriteString("  @override\n")
	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult map<TResult extends Object?>({\n")
	for _, other := range cases {
		target := other.className
		if other.name == c.name {
			target = c.implName
		}
		fmt.Fprintf(b, "    required TResult Function(%s) %s,\n", target, other.name)
	}
	b.WriteString("  }) {\n")
	fmt.Fprintf(b, "    return %s(this);\n", c.name)
	b.WriteString("  }\n\n")

	b.WriteString("  @override\n")
	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult? mapOrNull<TResult extends Object?>({\n")
	for _, other := range cases {
		target := other.className
		if other.name == c.name {
			target = c.implName
		}
		fmt.Fprintf(b, "    TResult? Function(%s)? %s,\n", target, other.name)
	}
	b.WriteString("  }) {\n")
	fmt.Fprintf(b, "    return %s?.call(this);\n", c.name)
	b.WriteString("  }\n\n")

	b.WriteString("  @override\n")
	b.WriteString("  @optionalTypeArgs\n")
	b.WriteString("  TResult maybeMap<TResult extends Object?>({\n")
	for _, other := range cases {
		target := other.className
		if other.name == c.name {
			target = c.implName
		}
		fmt.Fprintf(b, "    TResult Function(%s)? %s,\n", target, other.name)
	}
	b.WriteString("    required TResult orElse(),\n")
	b.WriteString("  }) {\n")
	fmt.Fprintf(b, "    if (%s != null) {\n", c.name)
	fmt.Fprintf(b, "      return %s(this);\n", c.name)
	b.WriteString("    }\n")
	b.WriteString("    return orElse();\n")
	b.WriteString("  }\n\n")

	b.WriteString("  @override\n")
	b.WriteString("  Map<String, dynamic> toJson() {\n")
	b.WriteString("    return <String, dynamic>{\n")
	fmt.Fprintf(b, "      'type': '%s',\n", c.name)
	for _, f := range c.fields {
		fmt.Fprintf(b, "      '%s': %s,\n", f.name, f.name)
	}
	b.WriteString("    };\n")
	b.WriteString("  }\n")
	b.WriteString("}\n\n")

	// copyWith pair for this case
	b.WriteString("/// @nodoc\n")
	fmt.Fprintf(b, "abstract class _$$%sImplCopyWith<$Res> {\n", c.className)
	fmt.Fprintf(b, "  factory _$$%sImplCopyWith(%s value, $Res Function(%s) then) =\n", c.className, c.implName, c.implName)
	fmt.Fprintf(b, "      __$$%sImplCopyWithImpl<$Res>;\n\n", c.className)
	if len(c.fields) == 0 {
		b.WriteString("  $Res call();\n")
	} else {
		b.WriteString("  $Res call({\n")
		for _, f := range c.fields {
			fmt.Fprintf(b, "    Object? %s = freezed,\n", f.name)
		}
		b.WriteString("  });\n")
	}
	b.WriteString("}\n\n")

	b.WriteString("/// @nodoc\n")
	fmt.Fprintf(b, "class __$$%sImplCopyWithImpl<$Res> implements _$$%sImplCopyWith<$Res> {\n", c.className, c.className)
	fmt.Fprintf(b, "  __$$%sImplCopyWithImpl(this._value, this._then);\n\n", c.className)
	fmt.Fprintf(b, "  final %s _value;\n", c.implName)
	fmt.Fprintf(b, "  final $Res Function(%s) _then;\n\n", c.implName)
	b.WriteString("  @pragma('vm:prefer-inline')\n")
	b.WriteString("  @override\n")
	if len(c.fields) == 0 {
		b.WriteString("  $Res call() {\n")
		b.WriteString("    // _value is used to satisfy the unused_field warning\n")
		b.WriteString("    _value;\n")
		fmt.Fprintf(b, "    return _then(%s());\n", c.implName)
	} else {
		b.WriteString("  $Res call({\n")
		for _, f := range c.fields {
			fmt.Fprintf(b, "    Object? %s = freezed,\n", f.name)
		}
		b.WriteString("  }) {\n")
		fmt.Fprintf(b, "    return _then(%s(\n", c.implName)
		for _, f := range c.fields {
			fmt.Fprintf(b, "      %s: %s == freezed\n", f.name, f.name)
			fmt.Fprintf(b, "          ? _value.%s\n", f.name)
			fmt.Fprintf(b, "          : %s as %s,\n", f.name, f.ty)
		}
		b.WriteString("    ));\n")
	}
	b.WriteString("  }\n")
	b.WriteString("}\n\n")
}
