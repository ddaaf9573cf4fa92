package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superfastgen/superfastgen/classify"
	"github.com/superfastgen/superfastgen/config"
	"github.com/superfastgen/superfastgen/model"
)

func allVariants() map[config.Variant]bool {
	return map[config.Variant]bool{
		config.VariantImmutable: true,
		config.VariantJSONCodec: true,
		config.VariantProvider:  true,
	}
}

func param(name, ty string, required bool) model.Parameter {
	return model.Parameter{Name: name, Type: model.ParseType(ty), Named: true, Required: required}
}

func valueDecl(name string, params ...model.Parameter) *model.Declaration {
	return &model.Declaration{
		Kind:           model.ValueType,
		Name:           name,
		Params:         params,
		Markers:        []model.Marker{{Name: "freezed"}},
		HasJSONFactory: true,
		SourcePath:     "lib/models/" + strings.ToLower(name) + ".dart",
	}
}

func emit(t *testing.T, d *model.Declaration) []Result {
	t.Helper()
	c, err := classify.Classify(d)
	require.NoError(t, err)
	return EmitFile(d.SourcePath, []Target{{Decl: d, Class: c}}, allVariants())
}

func TestEmitPointScenario(t *testing.T) {
	d := valueDecl("Point", param("x", "int", true), param("y", "int", true))
	results := emit(t, d)
	require.Len(t, results, 2)

	freezed := results[0]
	assert.Equal(t, "lib/models/point.freezed.dart", freezed.Path)
	assert.Equal(t, config.VariantImmutable, freezed.Variant)

	// Header and part wiring
	assert.True(t, strings.HasPrefix(freezed.Content, "// coverage:ignore-file\n// GENERATED CODE - DO NOT MODIFY BY HAND\n"))
	assert.Contains(t, freezed.Content, "part of 'point.dart';")
	assert.Contains(t, freezed.Content, "// FreezedGenerator")
	assert.Contains(t, freezed.Content, "T _$identity<T>(T value) => value;")

	// copyWith accepts optional overrides for both fields
	assert.Contains(t, freezed.Content, "Object? x = null,")
	assert.Contains(t, freezed.Content, "Object? y = null,")
	assert.Contains(t, freezed.Content, "x: null == x\n          ? _value.x\n")

	// Equality compares both fields with the identity fast path first
	assert.Contains(t, freezed.Content, "return identical(this, other) ||")
	assert.Contains(t, freezed.Content, "(identical(other.x, x) || other.x == x) &&")
	assert.Contains(t, freezed.Content, "(identical(other.y, y) || other.y == y));")

	// Hash combines runtimeType and both fields
	assert.Contains(t, freezed.Content, "int get hashCode => Object.hash(\n      runtimeType,\n      x,\n      y,\n  );")

	// Debug string lists fields in declaration order
	assert.Contains(t, freezed.Content, "return 'Point(x: $x, y: $y)';")

	g := results[1]
	assert.Equal(t, "lib/models/point.g.dart", g.Path)
	assert.Contains(t, g.Content, "// JsonSerializableGenerator")
	assert.Contains(t, g.Content, "x: (json['x'] as num).toInt(),")
}

func TestEmitOrderPreservation(t *testing.T) {
	d := valueDecl("Triple", param("a", "int", true), param("b", "int", true), param("c", "int", true))
	results := emit(t, d)
	content := results[0].Content

	for _, section := range []string{
		"other.a, a) || other.a == a",
		"Triple(a: $a, b: $b, c: $c)",
	} {
		assert.Contains(t, content, section)
	}

	hashIdx := strings.Index(content, "int get hashCode")
	require.Positive(t, hashIdx)
	tail := content[hashIdx:]
	aIdx := strings.Index(tail, "      a,\n")
	bIdx := strings.Index(tail, "      b,\n")
	cIdx := strings.Index(tail, "      c,\n")
	assert.True(t, aIdx < bIdx && bIdx < cIdx, "hash fields must follow declaration order")
}

func TestEmitCollectionWrapping(t *testing.T) {
	d := valueDecl("Bundle",
		param("id", "String", true),
		param("tags", "List<String>", true),
		param("scores", "Map<String, int>", true),
		param("labels", "Set<String>", true),
	)
	results := emit(t, d)
	content := results[0].Content

	// Collection fields hide behind private backing fields and accessors
	// hand out unmodifiable views
	assert.Contains(t, content, "final List<String> _tags;")
	assert.Contains(t, content, "if (_tags is EqualUnmodifiableListView) return _tags;")
	assert.Contains(t, content, "return EqualUnmodifiableListView(_tags);")
	assert.Contains(t, content, "EqualUnmodifiableMapView(_scores)")
	assert.Contains(t, content, "EqualUnmodifiableSetView(_labels)")

	// Deep equality and hashing for every collection field
	assert.Contains(t, content, "const DeepCollectionEquality().equals(other._tags, _tags)")
	assert.Contains(t, content, "const DeepCollectionEquality().hash(_tags),")
	assert.Contains(t, content, "const DeepCollectionEquality().hash(_scores),")

	// Constructor initializes the backing fields
	assert.Contains(t, content, "_tags = tags")
}

func TestEmitCollectionDefault(t *testing.T) {
	p := param("tags", "List<String>", false)
	p.Default = "[]"
	d := valueDecl("Tagged", param("id", "String", true), p)
	results := emit(t, d)

	assert.Contains(t, results[0].Content, "final List<String> tags = const [],")
	assert.Contains(t, results[1].Content,
		"tags: (json['tags'] as List<dynamic>?)?.map((e) => e as String).toList() ?? const [],")
}

func TestEmitOptionalAgeCodec(t *testing.T) {
	d := valueDecl("Person", param("name", "String", true), param("age", "int?", false))
	results := emit(t, d)
	g := results[1].Content

	// Decode tolerates a missing key
	assert.Contains(t, g, "age: (json['age'] as num?)?.toInt(),")
	// Encode omits the key when the value is null
	assert.Contains(t, g, "if (instance.age != null) 'age': instance.age,")
	assert.Contains(t, g, "'name': instance.name,")
}

func TestEmitDateTimeCodec(t *testing.T) {
	d := valueDecl("Event",
		param("start", "DateTime", true),
		param("end", "DateTime?", false),
	)
	results := emit(t, d)
	g := results[1].Content

	assert.Contains(t, g, "start: DateTime.parse(json['start'] as String),")
	assert.Contains(t, g, "end: json['end'] == null\n          ? null\n          : DateTime.parse(json['end'] as String),")
	assert.Contains(t, g, "'start': instance.start.toIso8601String(),")
	assert.Contains(t, g, "if (instance.end != null) 'end': instance.end?.toIso8601String(),")
}

func TestEmitNestedValueTypeCodec(t *testing.T) {
	d := valueDecl("Order",
		param("customer", "Customer", true),
		param("items", "List<LineItem>", true),
	)
	results := emit(t, d)
	g := results[1].Content

	assert.Contains(t, g, "customer: Customer.fromJson(json['customer'] as Map<String, dynamic>),")
	assert.Contains(t, g, "LineItem.fromJson(e as Map<String, dynamic>)")
}

func TestEmitIdempotence(t *testing.T) {
	d := valueDecl("Stable", param("id", "String", true), param("tags", "List<String>", true))

	first := emit(t, d)
	second := emit(t, d)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Content, second[i].Content)
		assert.Equal(t, first[i].Path, second[i].Path)
	}
}

func TestEmitUnion(t *testing.T) {
	d := &model.Declaration{
		Kind:    model.ValueType,
		Name:    "Shape",
		Markers: []model.Marker{{Name: "freezed"}},
		Cases: []model.Case{
			{Name: "circle", Params: []model.Parameter{param("radius", "double", true)}},
			{Name: "square", Params: []model.Parameter{param("side", "double", true)}},
		},
		HasJSONFactory: true,
		SourcePath:     "lib/models/shape.dart",
	}
	results := emit(t, d)
	require.Len(t, results, 2)
	content := results[0].Content

	assert.Contains(t, content, "mixin _$Shape {")
	assert.Contains(t, content, "required TResult Function(double radius) circle,")
	assert.Contains(t, content, "required TResult Function(double side) square,")
	assert.Contains(t, content, "abstract class ShapeCircle implements Shape {")
	assert.Contains(t, content, "class _$ShapeCircleImpl implements ShapeCircle {")
	assert.Contains(t, content, "String get $type => 'circle';")
	assert.Contains(t, content, "required TResult orElse(),")
	assert.Contains(t, content, "return 'Shape.circle(radius: $radius)';")

	g := results[1].Content
	assert.Contains(t, g, "switch (json['type'] as String) {")
	assert.Contains(t, g, "case 'circle':")
	assert.Contains(t, g, "return Shape.circle(")
	assert.Contains(t, g, "throw ArgumentError('Unknown type: ' + json['type'].toString());")
}

func TestEmitFunctionProvider(t *testing.T) {
	ret := model.ParseType("Future<List<String>>")
	d := &model.Declaration{
		Kind:       model.Function,
		Name:       "userNames",
		Markers:    []model.Marker{{Name: "riverpod"}},
		Return:     &ret,
		Params:     []model.Parameter{{Name: "ref", Type: model.ParseType("UserNamesRef")}},
		SourcePath: "lib/providers/users.dart",
	}
	results := emit(t, d)
	require.Len(t, results, 1)
	content := results[0].Content

	assert.Contains(t, content, "// RiverpodGenerator")
	assert.Contains(t, content, "class _SystemHash {")
	assert.Regexp(t, `String _\$userNamesProviderHash\(\) => r'[0-9a-f]{40}';`, content)
	assert.Contains(t, content, "final userNamesProvider = AutoDisposeFutureProvider<List<String>>((ref) {")
	assert.Contains(t, content, "  return userNames(ref);")
	assert.Contains(t, content, "// ignore_for_file: subtype_of_sealed_class")
}

func TestEmitFamilyProvider(t *testing.T) {
	ret := model.ParseType("Future<User>")
	d := &model.Declaration{
		Kind:    model.Function,
		Name:    "userById",
		Markers: []model.Marker{{Name: "riverpod"}},
		Return:  &ret,
		Params: []model.Parameter{
			{Name: "ref", Type: model.ParseType("UserByIdRef")},
			{Name: "id", Type: model.ParseType("String")},
		},
		SourcePath: "lib/providers/users.dart",
	}
	results := emit(t, d)
	content := results[0].Content

	assert.Contains(t, content, "final userByIdProvider = AutoDisposeFutureProvider.family<User, String>((ref, params) {")
	assert.Contains(t, content, "  return userById(ref, params);")
}

func TestEmitMultiParamFamilyProvider(t *testing.T) {
	ret := model.ParseType("Stream<int>")
	d := &model.Declaration{
		Kind:    model.Function,
		Name:    "ticker",
		Markers: []model.Marker{{Name: "riverpod"}},
		Return:  &ret,
		Params: []model.Parameter{
			{Name: "ref", Type: model.ParseType("TickerRef")},
			{Name: "start", Type: model.ParseType("int")},
			{Name: "step", Type: model.ParseType("int")},
		},
		SourcePath: "lib/providers/ticker.dart",
	}
	results := emit(t, d)
	content := results[0].Content

	assert.Contains(t, content, "AutoDisposeStreamProvider.family<int, Map<String, dynamic>>((ref, params) {")
	assert.Contains(t, content, "return ticker(ref, params['start'], params['step']);")
}

func TestEmitNotifierProvider(t *testing.T) {
	ret := model.ParseType("int")
	d := &model.Declaration{
		Kind:       model.StatefulUnit,
		Name:       "Counter",
		Markers:    []model.Marker{{Name: "riverpod"}},
		Return:     &ret,
		Extends:    "_$Counter",
		SourcePath: "lib/providers/counter.dart",
	}
	results := emit(t, d)
	content := results[0].Content

	assert.Contains(t, content, "abstract class _$Counter extends Notifier<int> {")
	assert.Contains(t, content, "  int build();")
	assert.Contains(t, content, "final counterProvider = NotifierProvider<Counter, int>(() {")
	assert.Contains(t, content, "  return Counter();")
}

func TestEmitAsyncNotifierProvider(t *testing.T) {
	ret := model.ParseType("Future<AuthState>")
	d := &model.Declaration{
		Kind:       model.StatefulUnit,
		Name:       "Auth",
		Markers:    []model.Marker{{Name: "riverpod"}},
		Return:     &ret,
		Extends:    "_$Auth",
		SourcePath: "lib/providers/auth.dart",
	}
	results := emit(t, d)
	content := results[0].Content

	assert.Contains(t, content, "abstract class _$Auth extends AsyncNotifier<AuthState> {")
	assert.Contains(t, content, "  Future<AuthState> build();")
	assert.Contains(t, content, "final authProvider = AsyncNotifierProvider<Auth, AuthState>(() {")
}

func TestEmitUnsupportedFieldOmitted(t *testing.T) {
	d := valueDecl("Handler",
		param("id", "String", true),
		param("callback", "Function", true),
	)
	results := emit(t, d)
	content := results[0].Content

	// Storage and accessor survive, equality and hash skip the field
	assert.Contains(t, content, "final Function callback;")
	assert.NotContains(t, content, "other.callback == callback")
	require.NotEmpty(t, d.Warnings)
	assert.Contains(t, d.Warnings[0].Message, "callback")
}

func TestEmitDisabledVariants(t *testing.T) {
	d := valueDecl("Quiet", param("id", "String", true))
	c, err := classify.Classify(d)
	require.NoError(t, err)

	results := EmitFile(d.SourcePath, []Target{{Decl: d, Class: c}}, map[config.Variant]bool{
		config.VariantImmutable: true,
	})
	require.Len(t, results, 1)
	assert.Equal(t, config.VariantImmutable, results[0].Variant)
}

func TestGeneratedPathMapping(t *testing.T) {
	assert.Equal(t, "lib/a/user.freezed.dart", FreezedPath("lib/a/user.dart"))
	assert.Equal(t, "lib/a/user.g.dart", CodecPath("lib/a/user.dart"))
	assert.True(t, IsGeneratedPath("lib/a/user.g.dart"))
	assert.True(t, IsGeneratedPath("lib/a/user.freezed.dart"))
	assert.False(t, IsGeneratedPath("lib/a/user.dart"))
}
