package gen

import (
	"fmt"
	"strings"

	"github.com/superfastgen/superfastgen/model"
)

// emitCodec renders the fromJson/toJson pair for one declaration. Union
// types decode through a type-discriminator switch; regular value types get
// the json_serializable-style top-level functions.
func emitCodec(d *model.Declaration) string {
	if d.IsUnion() {
		return emitUnionCodec(d)
	}
	return emitValueCodec(d)
}

func emitValueCodec(d *model.Declaration) string {
	name := d.Name
	fields := fieldsOf(d.Params)
	implClass := "_$$" + name + "ImplImpl"
	var b strings.Builder

	fmt.Fprintf(&b, "%s _$$%sImplImplFromJson(\n", implClass, name)
	b.WriteString("  Map<String, dynamic> json,\n")
	fmt.Fprintf(&b, ") => %s(\n", implClass)
	for _, f := range fields {
		fmt.Fprintf(&b, "  %s: %s,\n", f.name, formatLongExpression(decodeExpression(f)))
	}
	b.WriteString(");\n\n")

	fmt.Fprintf(&b, "Map<String, dynamic> _$$%sImplImplToJson(\n", name)
	fmt.Fprintf(&b, "  %s instance,\n", implClass)
	b.WriteString(") => <String, dynamic>{\n")
	for _, f := range fields {
		if f.nullable {
			// Null-valued optional fields are omitted from the encoded map
			fmt.Fprintf(&b, "  if (instance.%s != null) '%s': %s,\n", f.name, f.name, encodeExpression(f))
		} else {
			fmt.Fprintf(&b, "  '%s': %s,\n", f.name, encodeExpression(f))
		}
	}
	b.WriteString("};\n\n")
	return b.String()
}

func emitUnionCodec(d *model.Declaration) string {
	name := d.Name
	var b strings.Builder

	fmt.Fprintf(&b, "%s _$%sFromJson(\n", name, name)
	b.WriteString("  Map<String, dynamic> json,\n")
	b.WriteString(") {\n")
	b.WriteString("  switch (json['type'] as String) {\n")
	for _, c := range d.Cases {
		fmt.Fprintf(&b, "    case '%s':\n", c.Name)
		caseFields := fieldsOf(c.Params)
		if len(caseFields) == 0 {
			fmt.Fprintf(&b, "      return %s.%s();\n", name, c.Name)
			continue
		}
		fmt.Fprintf(&b, "      return %s.%s(\n", name, c.Name)
		for _, f := range caseFields {
			fmt.Fprintf(&b, "        %s: %s,\n", f.name, formatLongExpression(decodeExpression(f)))
		}
		b.WriteString("      );\n")
	}
	b.WriteString("    default:\n")
	b.WriteString("      throw ArgumentError('Unknown type: ' + json['type'].toString());\n")
	b.WriteString("  }\n")
	b.WriteString("}\n\n")
	return b.String()
}

// decodeExpression builds the coercion for reading one field out of the
// string-keyed map. A required field that is absent or mistyped makes the
// emitted cast throw at the call site, which is the decode failure contract.
func decodeExpression(f field) string {
	key := fmt.Sprintf("json['%s']", f.name)
	t := f.typ

	switch t.Name {
	case "int":
		if t.Nullable {
			return fmt.Sprintf("(%s as num?)?.toInt()", key)
		}
		return fmt.Sprintf("(%s as num).toInt()", key)
	case "double":
		if t.Nullable {
			return fmt.Sprintf("(%s as num?)?.toDouble()", key)
		}
		return fmt.Sprintf("(%s as num).toDouble()", key)
	case "DateTime":
		if t.Nullable {
			return fmt.Sprintf("%s == null ? null : DateTime.parse(%s as String)", key, key)
		}
		return fmt.Sprintf("DateTime.parse(%s as String)", key)
	case "String":
		if f.hasDefault {
			return fmt.Sprintf("%s as String? ?? %s", key, f.def)
		}
		if t.Nullable {
			return key + " as String?"
		}
		return key + " as String"
	case "bool":
		if f.hasDefault {
			return fmt.Sprintf("%s as bool? ?? %s", key, f.def)
		}
		if t.Nullable {
			return key + " as bool?"
		}
		return key + " as bool"
	case "num", "dynamic", "Object":
		return key + " as " + f.ty
	case "List":
		return decodeList(key, f)
	case "Map":
		return decodeMap(key, f)
	case "Set":
		return decodeSet(key, f)
	default:
		if isValueTypeName(t.Name) {
			if t.Nullable {
				return fmt.Sprintf("%s == null ? null : %s.fromJson(%s as Map<String, dynamic>)",
					key, t.Name, key)
			}
			return fmt.Sprintf("%s.fromJson(%s as Map<String, dynamic>)", t.Name, key)
		}
		return key + " as " + f.ty
	}
}

func decodeList(key string, f field) string {
	elem := model.TypeDescriptor{Name: "dynamic"}
	if len(f.typ.Args) > 0 {
		elem = f.typ.Args[0]
	}
	conv := elementDecode(elem)

	if f.nullable || f.hasDefault {
		expr := fmt.Sprintf("(%s as List<dynamic>?)?.map((e) => %s).toList()", key, conv)
		if f.hasDefault {
			expr += " ?? const " + strings.TrimPrefix(f.def, "const ")
		}
		return expr
	}
	return fmt.Sprintf("(%s as List<dynamic>).map((e) => %s).toList()", key, conv)
}

func decodeSet(key string, f field) string {
	elem := model.TypeDescriptor{Name: "dynamic"}
	if len(f.typ.Args) > 0 {
		elem = f.typ.Args[0]
	}
	conv := elementDecode(elem)

	if f.nullable {
		return fmt.Sprintf("(%s as List<dynamic>?)?.map((e) => %s).toSet()", key, conv)
	}
	return fmt.Sprintf("(%s as List<dynamic>).map((e) => %s).toSet()", key, conv)
}

func decodeMap(key string, f field) string {
	val := model.TypeDescriptor{Name: "dynamic"}
	if len(f.typ.Args) > 1 {
		val = f.typ.Args[1]
	}
	if val.Name == "dynamic" {
		if f.nullable {
			return key + " as Map<String, dynamic>?"
		}
		return key + " as Map<String, dynamic>"
	}
	conv := elementDecode(val)
	if f.nullable {
		return fmt.Sprintf("(%s as Map<String, dynamic>?)?.map((k, e) => MapEntry(k, %s))", key, conv)
	}
	return fmt.Sprintf("(%s as Map<String, dynamic>).map((k, e) => MapEntry(k, %s))", key, conv)
}

// elementDecode coerces one collection element, named e by convention
func elementDecode(t model.TypeDescriptor) string {
	switch t.Name {
	case "int":
		return "(e as num).toInt()"
	case "double":
		return "(e as num).toDouble()"
	case "DateTime":
		return "DateTime.parse(e as String)"
	case "List":
		inner := model.TypeDescriptor{Name: "dynamic"}
		if len(t.Args) > 0 {
			inner = t.Args[0]
		}
		return fmt.Sprintf("(e as List<dynamic>).map((e) => %s).toList()", elementDecode(inner))
	default:
		if isValueTypeName(t.Name) {
			return fmt.Sprintf("%s.fromJson(e as Map<String, dynamic>)", t.Name)
		}
		return "e as " + t.String()
	}
}

func encodeExpression(f field) string {
	access := "instance." + f.name
	if f.typ.Name == "DateTime" {
		if f.nullable {
			return access + "?.toIso8601String()"
		}
		return access + ".toIso8601String()"
	}
	return access
}

// isValueTypeName treats capitalized non-core names as value types with
// their own fromJson, which drives recursive decode
func isValueTypeName(name string) bool {
	if name == "" {
		return false
	}
	switch name {
	case "String", "DateTime", "Object", "Function", "Duration", "BigInt", "Uri":
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}

// formatLongExpression re-wraps expressions that exceed the formatter's
// line budget, mirroring how the reference generator breaks ternaries and
// mapped collection decodes
func formatLongExpression(expr string) string {
	if strings.Contains(expr, "== null ? null : DateTime.parse(") {
		parts := strings.SplitN(expr, " == null ? null : ", 2)
		return parts[0] + " == null\n          ? null\n          : " + parts[1]
	}
	if len(expr) <= 80 {
		return expr
	}
	if strings.Contains(expr, "? null :") {
		parts := strings.SplitN(expr, "? null :", 2)
		return strings.TrimRight(parts[0], " ") + "\n          ? null\n          : " + strings.TrimLeft(parts[1], " ")
	}
	if i := strings.Index(expr, "?.map("); i >= 0 {
		if j := strings.Index(expr, ").toList()"); j > i {
			return expr[:i] + "\n          " + expr[i:]
		}
	}
	return expr
}
