package schema

// Kind is the shape a Node is dispatched on.
type Kind int

const (
	KindUnknown Kind = iota
	KindNull
	KindString
	KindNumber
	KindBoolean
	KindConst
	KindEnum
	KindObject
	KindArray
	KindRef
	KindTypeArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindConst:
		return "const"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindRef:
		return "ref"
	case KindTypeArray:
		return "type-array"
	default:
		return "unknown"
	}
}

// Classify returns the Kind of n. Precedence is fixed: type sequence, $ref,
// const, enum, object shape, array, primitive type. Anything else, including
// a nil node, is KindUnknown.
func Classify(n *Node) Kind {
	if n == nil {
		return KindUnknown
	}
	if n.TypeList {
		return KindTypeArray
	}
	if n.Ref != "" || n.RefPointer != "" {
		return KindRef
	}
	if n.HasConst {
		return KindConst
	}
	if n.Enum != nil {
		return KindEnum
	}

	t := n.PrimaryType()
	if t == "object" || n.Properties != nil || n.AdditionalProperties != nil ||
		n.AllOf != nil || n.AnyOf != nil || n.OneOf != nil {
		return KindObject
	}
	if t == "array" {
		return KindArray
	}
	return PrimitiveKind(t)
}

// PrimitiveKind maps a primitive "type" keyword value to its Kind.
func PrimitiveKind(t string) Kind {
	switch t {
	case "null":
		return KindNull
	case "string":
		return KindString
	case "number", "integer":
		return KindNumber
	case "boolean":
		return KindBoolean
	case "object":
		return KindObject
	case "array":
		return KindArray
	default:
		return KindUnknown
	}
}
