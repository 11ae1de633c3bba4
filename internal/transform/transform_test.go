package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgonest/oasts/internal/diagnostic"
	"github.com/tsgonest/oasts/internal/schema"
)

func typ(t string) *schema.Node {
	return &schema.Node{Type: []string{t}}
}

func ref(name string) *schema.Node {
	return &schema.Node{Ref: name, RefPointer: "#/components/schemas/" + name}
}

func prop(name string, n *schema.Node) schema.Property {
	return schema.Property{Name: name, Schema: n}
}

func obj(props ...schema.Property) *schema.Node {
	if props == nil {
		props = []schema.Property{}
	}
	return &schema.Node{Type: []string{"object"}, Properties: props}
}

func TestSchema_Primitives(t *testing.T) {
	tests := []struct {
		name string
		node *schema.Node
		want string
	}{
		{"nil node", nil, "unknown"},
		{"empty node", &schema.Node{}, "unknown"},
		{"string", typ("string"), "string"},
		{"number", typ("number"), "number"},
		{"integer", typ("integer"), "number"},
		{"boolean", typ("boolean"), "boolean"},
		{"null", typ("null"), "null"},
		{"unsupported type", typ("file"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Schema(tt.node, Options{}))
		})
	}
}

func TestSchema_UnsupportedTypeDiagnostic(t *testing.T) {
	diags := diagnostic.NewCollector(false, false)
	n := &schema.Node{Type: []string{"file"}, Pointer: "#/definitions/Upload"}

	assert.Equal(t, "unknown", Schema(n, Options{Diagnostics: diags}))
	require.Len(t, diags.Diagnostics(), 1)
	assert.Equal(t, diagnostic.CategoryShapeUnknown, diags.Diagnostics()[0].Category)
	assert.Equal(t, "#/definitions/Upload", diags.Diagnostics()[0].Pointer)
}

func TestSchema_Ref(t *testing.T) {
	assert.Equal(t, "Pet", Schema(ref("Pet"), Options{}))
	assert.Equal(t, "unknown", Schema(&schema.Node{RefPointer: "other.yaml#/Pet"}, Options{}))
}

func TestSchema_Nullable(t *testing.T) {
	tests := []struct {
		name string
		node *schema.Node
		want string
	}{
		{"string", &schema.Node{Type: []string{"string"}, Nullable: true}, "(string) | null"},
		{"ref", &schema.Node{Ref: "Pet", Nullable: true}, "(Pet) | null"},
		{"enum", &schema.Node{Enum: []any{"a", "b"}, Nullable: true}, `("a" | "b") | null`},
		{"enum with null member", &schema.Node{Enum: []any{"a", nil}, Nullable: true}, `("a") | null`},
		{"array", &schema.Node{Type: []string{"array"}, Items: typ("string"), Nullable: true}, "(string[]) | null"},
		{"empty object", &schema.Node{Type: []string{"object"}, Nullable: true}, "({ [key: string]: unknown }) | null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Schema(tt.node, Options{}))
		})
	}
}

func TestSchema_NullableWrapsNonNullableForm(t *testing.T) {
	nodes := []*schema.Node{
		typ("boolean"),
		ref("Owner"),
		{Enum: []any{1, 2}},
		{Type: []string{"object"}, Properties: []schema.Property{prop("a", typ("string"))}},
		{Type: []string{"array"}, Items: typ("number"), MinItems: schema.Int(1), MaxItems: schema.Int(2)},
	}
	opts := Options{SupportArrayLength: true}

	for _, n := range nodes {
		plain := Schema(n, opts)
		nullable := *n
		nullable.Nullable = true
		assert.Equal(t, "("+plain+") | null", Schema(&nullable, opts))
	}
}

func TestSchema_Const(t *testing.T) {
	assert.Equal(t, `"physical"`, Schema(&schema.Node{Const: "physical", HasConst: true}, Options{}))
	assert.Equal(t, "false", Schema(&schema.Node{Const: false, HasConst: true}, Options{}))
	assert.Equal(t, "0", Schema(&schema.Node{Const: 0, HasConst: true}, Options{}))
	assert.Equal(t, "null", Schema(&schema.Node{Const: nil, HasConst: true}, Options{}))
}

func TestSchema_Enum(t *testing.T) {
	tests := []struct {
		name string
		node *schema.Node
		want string
	}{
		{"strings", &schema.Node{Enum: []any{"active", "inactive", "archived"}}, `"active" | "inactive" | "archived"`},
		{"numbers", &schema.Node{Type: []string{"integer"}, Enum: []any{1, 2, 3}}, "1 | 2 | 3"},
		{"mixed", &schema.Node{Enum: []any{"a", 1, true, nil}}, `"a" | 1 | true | null`},
		{"order and duplicates kept", &schema.Node{Enum: []any{"b", "a", "b"}}, `"b" | "a" | "b"`},
		{"empty", &schema.Node{Enum: []any{}}, "never"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Schema(tt.node, Options{}))
		})
	}
}

func TestSchema_TypeArray(t *testing.T) {
	tests := []struct {
		name string
		node *schema.Node
		want string
	}{
		{
			"string or null",
			&schema.Node{Type: []string{"string", "null"}, TypeList: true},
			"string | null",
		},
		{
			"single element",
			&schema.Node{Type: []string{"integer"}, TypeList: true},
			"number",
		},
		{
			"object member keeps properties",
			&schema.Node{
				Type:       []string{"object", "null"},
				TypeList:   true,
				Properties: []schema.Property{prop("a", typ("string"))},
			},
			"{\n  a?: string;\n} | null",
		},
		{
			"array member keeps items",
			&schema.Node{Type: []string{"array", "string"}, TypeList: true, Items: typ("number")},
			"number[] | string",
		},
		{
			"enum is not repeated per member",
			&schema.Node{Type: []string{"string", "null"}, TypeList: true, Enum: []any{"a"}},
			"string | null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Schema(tt.node, Options{}))
		})
	}
}

func TestSchema_Formatter(t *testing.T) {
	opts := Options{
		Formatter: func(n *schema.Node) string {
			if n.Format == "date-time" {
				return "Date"
			}
			return ""
		},
	}

	assert.Equal(t, "Date", Schema(&schema.Node{Type: []string{"string"}, Format: "date-time"}, opts))
	assert.Equal(t, "Date", Schema(&schema.Node{Type: []string{"string"}, Format: "date-time", Nullable: true}, opts),
		"formatter output is used verbatim")
	assert.Equal(t, "string", Schema(typ("string"), opts))

	n := obj(prop("created", &schema.Node{Type: []string{"string"}, Format: "date-time"}))
	assert.Equal(t, "{\n  created?: Date;\n}", Schema(n, opts))
}

func TestSchema_Deterministic(t *testing.T) {
	n := &schema.Node{
		Type:     []string{"object"},
		Required: []string{"id", "extra"},
		Properties: []schema.Property{
			prop("id", typ("integer")),
			prop("tags", &schema.Node{Type: []string{"array"}, Items: typ("string"), MaxItems: schema.Int(2)}),
			prop("kind", &schema.Node{Enum: []any{"a", "b"}}),
		},
		OneOf: []*schema.Node{ref("A"), ref("B")},
		Discriminator: &schema.Discriminator{
			PropertyName: "kind",
			Mapping:      map[string]string{"b": "#/components/schemas/B", "a": "#/components/schemas/A", "z": "#/components/schemas/A"},
		},
		AdditionalProperties: schema.Schema(typ("string")),
	}
	opts := Options{SupportArrayLength: true, ImmutableTypes: true}

	first := Schema(n, opts)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Schema(n, opts))
	}
}
