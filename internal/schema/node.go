// Package schema holds the immutable schema tree consumed by the TypeScript transformer.
package schema

// Node is one OpenAPI / JSON Schema fragment. Nodes are built once by the
// loader (or by hand in tests) and never mutated afterwards.
type Node struct {
	// Type is the "type" keyword. TypeList is true when it was written as a
	// sequence (`type: [string, "null"]`), even a one-element one.
	Type     []string
	TypeList bool

	// Reference
	Ref        string // resolved identifier, emitted verbatim
	RefPointer string // raw $ref text, e.g. "#/components/schemas/Pet"

	// Literals
	Const    any
	HasConst bool
	Enum     []any // nil when absent

	// Object
	Properties           []Property // nil when absent, empty when `properties: {}`
	Required             []string
	AdditionalProperties *AdditionalProperties // nil when absent

	// Composition
	AllOf         []*Node
	AnyOf         []*Node
	OneOf         []*Node
	Discriminator *Discriminator

	// Array
	Items      *Node
	TupleItems []*Node // positional items (array-form items or prefixItems)
	MinItems   *int
	MaxItems   *int

	Nullable   bool
	Default    any
	HasDefault bool

	// Documentation, consumed by the comment formatter only.
	Title       string
	Description string
	Format      string
	Deprecated  bool
	Example     any
	HasExample  bool
	ReadOnly    bool
	WriteOnly   bool

	// Pointer is the JSON pointer of this node in its source document.
	Pointer string
	// Keywords is the number of keys the source object carried, including
	// ones not modeled above (minProperties, pattern, x-*). Zero for nodes
	// built by hand, in which case the modeled keywords are counted.
	Keywords int
}

// Property is one entry of an ordered properties map.
type Property struct {
	Name   string
	Schema *Node
}

// AdditionalProperties is either the boolean or the schema form of the keyword.
type AdditionalProperties struct {
	Allowed bool  // boolean form; always true when Schema is set
	Schema  *Node // nil for the boolean form
}

// Discriminator holds discriminator info for oneOf schemas.
type Discriminator struct {
	PropertyName string
	Mapping      map[string]string // discriminant value -> $ref
}

// Bool returns the additionalProperties keyword in its boolean form.
func Bool(allowed bool) *AdditionalProperties {
	return &AdditionalProperties{Allowed: allowed}
}

// Schema returns the additionalProperties keyword in its schema form.
func Schema(n *Node) *AdditionalProperties {
	return &AdditionalProperties{Allowed: true, Schema: n}
}

// Int returns a pointer to v, for MinItems / MaxItems literals.
func Int(v int) *int {
	return &v
}

// Property looks up a declared property by name.
func (n *Node) Property(name string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// PrimaryType returns the single "type" keyword value, or "" when the
// keyword is absent or written as a sequence.
func (n *Node) PrimaryType() string {
	if n == nil || n.TypeList || len(n.Type) != 1 {
		return ""
	}
	return n.Type[0]
}

// IsEmpty reports whether the node carries no keyword at all (`{}`).
func (n *Node) IsEmpty() bool {
	return n != nil && n.keywords() == 0
}

// RequiredOnly reports whether `required` is the node's only keyword.
func (n *Node) RequiredOnly() bool {
	return n != nil && n.Required != nil && n.keywords() == 1
}

func (n *Node) keywords() int {
	if n.Keywords > 0 {
		return n.Keywords
	}
	return n.keywordCount()
}

// keywordCount counts the schema keywords present on the node. Pointer is
// bookkeeping, not a keyword.
func (n *Node) keywordCount() int {
	count := 0
	present := []bool{
		n.Type != nil,
		n.RefPointer != "" || n.Ref != "",
		n.HasConst,
		n.Enum != nil,
		n.Properties != nil,
		n.Required != nil,
		n.AdditionalProperties != nil,
		n.AllOf != nil,
		n.AnyOf != nil,
		n.OneOf != nil,
		n.Discriminator != nil,
		n.Items != nil || n.TupleItems != nil,
		n.MinItems != nil,
		n.MaxItems != nil,
		n.Nullable,
		n.HasDefault,
		n.Title != "",
		n.Description != "",
		n.Format != "",
		n.Deprecated,
		n.HasExample,
		n.ReadOnly,
		n.WriteOnly,
	}
	for _, p := range present {
		if p {
			count++
		}
	}
	return count
}
