package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want Kind
	}{
		{"nil node", nil, KindUnknown},
		{"empty node", &Node{}, KindUnknown},
		{"null", &Node{Type: []string{"null"}}, KindNull},
		{"string", &Node{Type: []string{"string"}}, KindString},
		{"number", &Node{Type: []string{"number"}}, KindNumber},
		{"integer", &Node{Type: []string{"integer"}}, KindNumber},
		{"boolean", &Node{Type: []string{"boolean"}}, KindBoolean},
		{"unrecognized type", &Node{Type: []string{"file"}}, KindUnknown},
		{"type sequence", &Node{Type: []string{"string", "null"}, TypeList: true}, KindTypeArray},
		{"one-element type sequence", &Node{Type: []string{"string"}, TypeList: true}, KindTypeArray},
		{"ref", &Node{Ref: "Pet", RefPointer: "#/components/schemas/Pet"}, KindRef},
		{"const", &Node{Const: "a", HasConst: true}, KindConst},
		{"falsy const", &Node{Const: false, HasConst: true}, KindConst},
		{"enum", &Node{Enum: []any{"a", "b"}}, KindEnum},
		{"empty enum", &Node{Enum: []any{}}, KindEnum},
		{"object type", &Node{Type: []string{"object"}}, KindObject},
		{"properties only", &Node{Properties: []Property{}}, KindObject},
		{"additionalProperties only", &Node{AdditionalProperties: Bool(true)}, KindObject},
		{"allOf only", &Node{AllOf: []*Node{{Ref: "A"}}}, KindObject},
		{"anyOf only", &Node{AnyOf: []*Node{{Ref: "A"}}}, KindObject},
		{"oneOf only", &Node{OneOf: []*Node{{Ref: "A"}}}, KindObject},
		{"string with oneOf", &Node{Type: []string{"string"}, OneOf: []*Node{{Ref: "A"}}}, KindObject},
		{"array", &Node{Type: []string{"array"}, Items: &Node{Type: []string{"string"}}}, KindArray},
		{"items without type", &Node{Items: &Node{Type: []string{"string"}}}, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.node))
		})
	}
}

func TestClassify_Precedence(t *testing.T) {
	// A type sequence beats everything else.
	n := &Node{Type: []string{"string", "null"}, TypeList: true, Ref: "A", Enum: []any{"x"}}
	assert.Equal(t, KindTypeArray, Classify(n))

	// $ref beats const and enum.
	n = &Node{Ref: "A", HasConst: true, Const: "x", Enum: []any{"y"}}
	assert.Equal(t, KindRef, Classify(n))

	// const beats enum.
	n = &Node{HasConst: true, Const: "x", Enum: []any{"y"}}
	assert.Equal(t, KindConst, Classify(n))

	// enum beats object shape.
	n = &Node{Enum: []any{"y"}, Type: []string{"object"}}
	assert.Equal(t, KindEnum, Classify(n))

	// object shape beats array.
	n = &Node{Type: []string{"array"}, Properties: []Property{{Name: "a", Schema: &Node{}}}}
	assert.Equal(t, KindObject, Classify(n))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "type-array", KindTypeArray.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "ref", KindRef.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestNode_RequiredOnly(t *testing.T) {
	assert.True(t, (&Node{Required: []string{"x"}}).RequiredOnly())
	assert.False(t, (&Node{Required: []string{"x"}, Properties: []Property{}}).RequiredOnly())
	assert.False(t, (&Node{Required: []string{"x"}, Description: "d"}).RequiredOnly())
	assert.False(t, (&Node{Type: []string{"string"}}).RequiredOnly())
	assert.False(t, (*Node)(nil).RequiredOnly())

	// Keys the node does not model still count.
	assert.True(t, (&Node{Required: []string{"x"}, Keywords: 1}).RequiredOnly())
	assert.False(t, (&Node{Required: []string{"x"}, Keywords: 2}).RequiredOnly())
}

func TestNode_IsEmpty(t *testing.T) {
	assert.True(t, (&Node{}).IsEmpty())
	assert.True(t, (&Node{Pointer: "#/a"}).IsEmpty())
	assert.False(t, (&Node{Nullable: true}).IsEmpty())
	assert.False(t, (*Node)(nil).IsEmpty())
	assert.False(t, (&Node{Keywords: 1}).IsEmpty(), "minLength alone is still a keyword")
}

func TestNode_Property(t *testing.T) {
	n := &Node{Properties: []Property{
		{Name: "b", Schema: &Node{Type: []string{"string"}}},
		{Name: "a", Schema: &Node{Type: []string{"number"}}},
	}}

	p, ok := n.Property("a")
	assert.True(t, ok)
	assert.Equal(t, []string{"number"}, p.Type)

	_, ok = n.Property("missing")
	assert.False(t, ok)
}

func TestNode_PrimaryType(t *testing.T) {
	assert.Equal(t, "string", (&Node{Type: []string{"string"}}).PrimaryType())
	assert.Equal(t, "", (&Node{Type: []string{"string"}, TypeList: true}).PrimaryType())
	assert.Equal(t, "", (&Node{}).PrimaryType())
}
