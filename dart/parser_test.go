package dart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFreezedClass(t *testing.T) {
	src := `
import 'package:freezed_annotation/freezed_annotation.dart';

part 'user.freezed.dart';
part 'user.g.dart';

@freezed
class User with _$User {
  const factory User({
    required String id,
    required String name,
    int? age,
    @Default([]) List<String> tags,
    @Default('member') String role,
  }) = _User;

  factory User.fromJson(Map<String, dynamic> json) => _$UserFromJson(json);
}
`
	f, err := Parse("user.dart", []byte(src))
	require.NoError(t, err)
	require.Len(t, f.Classes, 1)

	cls := f.Classes[0]
	assert.Equal(t, "User", cls.Name)
	assert.True(t, HasAnnotation(cls.Annotations, "freezed"))

	// fromJson redirects nowhere, so two factories parse but only the
	// redirecting one carries a target
	require.Len(t, cls.Factories, 2)
	fac := cls.Factories[0]
	assert.Equal(t, "", fac.Name)
	assert.True(t, fac.Const)
	assert.Equal(t, "_User", fac.RedirectTo)

	require.Len(t, fac.Params, 5)
	assert.Equal(t, Param{
		Name: "id", Type: "String", Named: true, Required: true, Line: fac.Params[0].Line,
	}, fac.Params[0])
	assert.Equal(t, "age", fac.Params[2].Name)
	assert.Equal(t, "int?", fac.Params[2].Type)
	assert.False(t, fac.Params[2].Required)

	tags := fac.Params[3]
	assert.Equal(t, "List<String>", tags.Type)
	assert.Equal(t, "[]", tags.Default)

	role := fac.Params[4]
	assert.Equal(t, "'member'", role.Default)

	assert.Equal(t, "", cls.Factories[1].RedirectTo)
}

func TestParseUnionClass(t *testing.T) {
	src := `
@freezed
class Shape with _$Shape {
  const factory Shape.circle({required double radius}) = Circle;
  const factory Shape.square({required double side}) = Square;
}
`
	f, err := Parse("shape.dart", []byte(src))
	require.NoError(t, err)
	require.Len(t, f.Classes, 1)

	cls := f.Classes[0]
	require.Len(t, cls.Factories, 2)
	assert.Equal(t, "circle", cls.Factories[0].Name)
	assert.Equal(t, "Circle", cls.Factories[0].RedirectTo)
	assert.Equal(t, "square", cls.Factories[1].Name)
}

func TestParseTopLevelFunctions(t *testing.T) {
	src := `
@riverpod
String greeting(GreetingRef ref) {
  return 'hello';
}

@riverpod
Future<List<User>> userList(UserListRef ref, String filter) async {
  return [];
}

int notAnnotated() => 42;

final counter = 0;
`
	f, err := Parse("providers.dart", []byte(src))
	require.NoError(t, err)
	require.Len(t, f.Functions, 3)

	fn := f.Functions[0]
	assert.Equal(t, "greeting", fn.Name)
	assert.Equal(t, "String", fn.ReturnType)
	assert.True(t, HasAnnotation(fn.Annotations, "riverpod"))
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "ref", fn.Params[0].Name)
	assert.Equal(t, "GreetingRef", fn.Params[0].Type)

	users := f.Functions[1]
	assert.Equal(t, "Future<List<User>>", users.ReturnType)
	require.Len(t, users.Params, 2)
	assert.Equal(t, "filter", users.Params[1].Name)

	assert.False(t, HasAnnotation(f.Functions[2].Annotations, "riverpod"))
}

func TestParseNotifierClass(t *testing.T) {
	src := `
@riverpod
class Counter extends _$Counter {
  @override
  int build() => 0;

  void increment() {
    state = state + 1;
  }
}
`
	f, err := Parse("counter.dart", []byte(src))
	require.NoError(t, err)
	require.Len(t, f.Classes, 1)
	assert.Equal(t, "Counter", f.Classes[0].Name)
	assert.Equal(t, "_$Counter", f.Classes[0].Extends)
	assert.True(t, HasAnnotation(f.Classes[0].Annotations, "riverpod"))

	build := f.Classes[0].Method("build")
	require.NotNil(t, build)
	assert.Equal(t, "int", build.ReturnType)
}

func TestParseSkipsCommentsAndStrings(t *testing.T) {
	src := `
// class NotReal {}
/* class AlsoNotReal {
   nested /* comment */ here
} */
const message = 'class Fake { }';
const template = "value: ${1 + 2}";

@freezed
class Real with _$Real {
  const factory Real({required int x}) = _Real;
}
`
	f, err := Parse("tricky.dart", []byte(src))
	require.NoError(t, err)
	require.Len(t, f.Classes, 1)
	assert.Equal(t, "Real", f.Classes[0].Name)
}

func TestParseUnterminatedClass(t *testing.T) {
	_, err := Parse("broken.dart", []byte("@freezed\nclass Broken {\n  const factory Broken() = _Broken;\n"))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "broken.dart", perr.Path)
	assert.Contains(t, perr.Reason, "Broken")
}

func TestRenderTokens(t *testing.T) {
	f, err := Parse("types.dart", []byte(`
@freezed
class Holder with _$Holder {
  const factory Holder({
    required Map<String, List<int>> lookup,
    Map<String, dynamic>? extras,
  }) = _Holder;
}
`))
	require.NoError(t, err)
	params := f.Classes[0].Factories[0].Params
	assert.Equal(t, "Map<String, List<int>>", params[0].Type)
	assert.Equal(t, "Map<String, dynamic>?", params[1].Type)
}
