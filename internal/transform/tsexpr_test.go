package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionOf(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{"empty", nil, "never"},
		{"single", []string{"string"}, "string"},
		{"many", []string{"string", "number", "null"}, "string | number | null"},
		{"drops empty", []string{"", "A", ""}, "A"},
		{"keeps duplicates", []string{"A", "A"}, "A | A"},
		{"intersection member", []string{"A & B", "C"}, "A & B | C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnionOf(tt.types...))
		})
	}
}

func TestIntersectionOf(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{"empty", nil, ""},
		{"all empty", []string{"", ""}, ""},
		{"single union stays bare", []string{"A | B"}, "A | B"},
		{"many", []string{"A", "B", "C"}, "A & B & C"},
		{"union member wrapped", []string{"A | B", "C"}, "(A | B) & C"},
		{"nested union not wrapped", []string{"{ a: A | B }", "C"}, "{ a: A | B } & C"},
		{"string literal pipe not wrapped", []string{`"a|b"`, "C"}, `"a|b" & C`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntersectionOf(tt.types...))
		})
	}
}

func TestArrayOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"string", "string[]"},
		{"Pet", "Pet[]"},
		{"string | number", "(string | number)[]"},
		{"A & B", "(A & B)[]"},
		{"(string) | null", "((string) | null)[]"},
		{"readonly string[]", "(readonly string[])[]"},
		{"[string, number]", "[string, number][]"},
		{"{ a: A | B }", "{ a: A | B }[]"},
		{"Record<string, A | B>", "Record<string, A | B>[]"},
		{"(a: string) => void", "((a: string) => void)[]"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ArrayOf(tt.in))
		})
	}
}

func TestTupleOf(t *testing.T) {
	assert.Equal(t, "[]", TupleOf())
	assert.Equal(t, "[string]", TupleOf("string"))
	assert.Equal(t, "[string, ...string[]]", TupleOf("string", "...string[]"))
}

func TestIndexSignature(t *testing.T) {
	assert.Equal(t, "{ [key: string]: unknown }", IndexSignature("unknown", Options{}))
	assert.Equal(t, "{ readonly [key: string]: number }", IndexSignature("number", Options{ImmutableTypes: true}))
}

func TestPropertyKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "name"},
		{"_id", "_id"},
		{"$ref", "$ref"},
		{"camelCase2", "camelCase2"},
		{"", `""`},
		{"kebab-case", `"kebab-case"`},
		{"with space", `"with space"`},
		{"1st", `"1st"`},
		{`quo"te`, `"quo\"te"`},
		{"<tag>", `"<tag>"`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, PropertyKey(tt.in))
		})
	}
}
