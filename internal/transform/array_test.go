package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgonest/oasts/internal/diagnostic"
	"github.com/tsgonest/oasts/internal/schema"
)

func arr(items *schema.Node, minItems, maxItems *int) *schema.Node {
	return &schema.Node{Type: []string{"array"}, Items: items, MinItems: minItems, MaxItems: maxItems}
}

func TestArray(t *testing.T) {
	withLength := Options{SupportArrayLength: true}

	tests := []struct {
		name string
		node *schema.Node
		opts Options
		want string
	}{
		{"plain", arr(typ("string"), nil, nil), Options{}, "string[]"},
		{"ref items", arr(ref("Order"), nil, nil), Options{}, "Order[]"},
		{"missing items", arr(nil, nil, nil), Options{}, "unknown[]"},
		{"union items", arr(&schema.Node{AnyOf: []*schema.Node{typ("string"), typ("number")}}, nil, nil), Options{}, "(string | number)[]"},
		{"nullable items", arr(&schema.Node{Type: []string{"string"}, Nullable: true}, nil, nil), Options{}, "((string) | null)[]"},
		{"nested", arr(arr(typ("number"), nil, nil), nil, nil), Options{}, "number[][]"},
		{"readonly", arr(typ("string"), nil, nil), Options{ImmutableTypes: true}, "readonly string[]"},
		{"readonly nested", arr(arr(typ("number"), nil, nil), nil, nil), Options{ImmutableTypes: true}, "readonly (readonly number[])[]"},

		{"bounded small", arr(typ("string"), schema.Int(1), schema.Int(3)), withLength, "[string] | [string, string] | [string, string, string]"},
		{"bounded large", arr(typ("string"), schema.Int(1), schema.Int(100)), withLength, "string[]"},
		{"bounded without support", arr(typ("string"), schema.Int(1), schema.Int(3)), Options{}, "string[]"},
		{"bounded from zero", arr(typ("string"), nil, schema.Int(2)), withLength, "[] | [string] | [string, string]"},
		{"exact length", arr(typ("number"), schema.Int(2), schema.Int(2)), withLength, "[number, number]"},
		{"readonly bounded", arr(typ("string"), schema.Int(1), schema.Int(2)), Options{SupportArrayLength: true, ImmutableTypes: true}, "readonly [string] | readonly [string, string]"},
		{"min only", arr(typ("string"), schema.Int(2), nil), withLength, "[string, string, ...string[]]"},
		{"readonly min only", arr(typ("string"), schema.Int(1), nil), Options{SupportArrayLength: true, ImmutableTypes: true}, "readonly [string, ...string[]]"},
		{"min only union items", arr(&schema.Node{OneOf: []*schema.Node{ref("A"), ref("B")}}, schema.Int(1), nil), withLength, "[A | B, ...(A | B)[]]"},
		{"min at threshold", arr(typ("string"), schema.Int(30), nil), withLength, "string[]"},
		{"negative min floors to zero", arr(typ("string"), schema.Int(-3), nil), withLength, "string[]"},
		{"negative max ignored", arr(typ("string"), nil, schema.Int(-1)), withLength, "string[]"},
		{"zero bounds are trivial", arr(typ("string"), schema.Int(0), nil), withLength, "string[]"},
		{"sum just under threshold", arr(typ("string"), schema.Int(1), schema.Int(7)), withLength, tupleUnion("string", 1, 7)},
		{"sum at threshold", arr(typ("string"), schema.Int(1), schema.Int(8)), withLength, "string[]"},
		{"custom threshold", arr(typ("string"), schema.Int(1), schema.Int(3)), Options{SupportArrayLength: true, ArrayLengthThreshold: 6}, "string[]"},
		{"huge max", arr(typ("string"), nil, schema.Int(1 << 30)), withLength, "string[]"},

		{"tuple", &schema.Node{Type: []string{"array"}, TupleItems: []*schema.Node{typ("string"), typ("number")}}, Options{}, "[string, number]"},
		{"readonly tuple", &schema.Node{Type: []string{"array"}, TupleItems: []*schema.Node{typ("string")}}, Options{ImmutableTypes: true}, "readonly [string]"},
		{"tuple with rest", &schema.Node{Type: []string{"array"}, TupleItems: []*schema.Node{typ("string")}, Items: typ("number")}, Options{}, "[string, ...number[]]"},
		{"empty tuple", &schema.Node{Type: []string{"array"}, TupleItems: []*schema.Node{}}, Options{}, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Schema(tt.node, tt.opts))
		})
	}
}

func tupleUnion(item string, from, to int) string {
	variants := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		slots := make([]string, n)
		for i := range slots {
			slots[i] = item
		}
		variants = append(variants, TupleOf(slots...))
	}
	return UnionOf(variants...)
}

func TestArray_MaxBelowMin(t *testing.T) {
	diags := diagnostic.NewCollector(false, false)
	n := arr(typ("string"), schema.Int(3), schema.Int(1))
	n.Pointer = "#/components/schemas/List"

	// maxItems is dropped, minItems alone still expands.
	got := Schema(n, Options{SupportArrayLength: true, Diagnostics: diags})
	assert.Equal(t, "[string, string, string, ...string[]]", got)

	require.Len(t, diags.Diagnostics(), 1)
	assert.Equal(t, diagnostic.CategoryArrayBounds, diags.Diagnostics()[0].Category)
}

func TestTupleCost(t *testing.T) {
	tests := []struct {
		min, max int
		bounded  bool
		want     int
	}{
		{0, 0, false, 0},
		{4, 0, false, 4},
		{1, 3, true, 6},
		{0, 2, true, 3},
		{5, 7, true, 18},
		{2, 2, true, 2},
		{1, 100, true, 5050},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tupleCost(tt.min, tt.max, tt.bounded))
	}
}
