package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TypeDescriptor
	}{
		{
			name: "plain type",
			in:   "String",
			want: TypeDescriptor{Name: "String"},
		},
		{
			name: "nullable primitive",
			in:   "int?",
			want: TypeDescriptor{Name: "int", Nullable: true},
		},
		{
			name: "list of strings",
			in:   "List<String>",
			want: TypeDescriptor{Name: "List", Args: []TypeDescriptor{{Name: "String"}}},
		},
		{
			name: "nullable list of nullable element",
			in:   "List<int?>?",
			want: TypeDescriptor{
				Name:     "List",
				Nullable: true,
				Args:     []TypeDescriptor{{Name: "int", Nullable: true}},
			},
		},
		{
			name: "nested generic map",
			in:   "Map<String, List<int>>",
			want: TypeDescriptor{
				Name: "Map",
				Args: []TypeDescriptor{
					{Name: "String"},
					{Name: "List", Args: []TypeDescriptor{{Name: "int"}}},
				},
			},
		},
		{
			name: "spaces inside generics",
			in:   "Map< String , int >",
			want: TypeDescriptor{
				Name: "Map",
				Args: []TypeDescriptor{{Name: "String"}, {Name: "int"}},
			},
		},
		{
			name: "garbage degrades to dynamic",
			in:   "List<",
			want: TypeDescriptor{Name: "dynamic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseType(tt.in))
		})
	}
}

func TestTypeDescriptorString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"String", "String"},
		{"int?", "int?"},
		{"List<String>", "List<String>"},
		{"Map<String, List<int?>>?", "Map<String, List<int?>>?"},
		{"Set<Point>", "Set<Point>"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseType(tt.in).String())
	}
}

func TestCollectionKind(t *testing.T) {
	assert.Equal(t, CollectionList, ParseType("List<String>").Collection())
	assert.Equal(t, CollectionMap, ParseType("Map<String, int>").Collection())
	assert.Equal(t, CollectionSet, ParseType("Set<int>").Collection())
	assert.Equal(t, CollectionNone, ParseType("String").Collection())

	// Nested collections: outer kind decides the wrapping strategy
	assert.Equal(t, CollectionList, ParseType("List<List<int>>").Collection())
}

func TestIsPrimitive(t *testing.T) {
	assert.True(t, ParseType("String").IsPrimitive())
	assert.True(t, ParseType("double").IsPrimitive())
	assert.False(t, ParseType("DateTime").IsPrimitive())
	assert.False(t, ParseType("List<String>").IsPrimitive())
}
