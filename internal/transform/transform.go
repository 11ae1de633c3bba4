package transform

import (
	"github.com/tsgonest/oasts/internal/diagnostic"
	"github.com/tsgonest/oasts/internal/schema"
)

// Schema converts a node to a TypeScript type expression.
//
// A non-empty Formatter result is used verbatim. Otherwise the node is
// classified once and dispatched on its Kind; nullable nodes are wrapped as
// "(<expr>) | null". Schema never fails: shapes it cannot classify become
// "unknown".
func Schema(node *schema.Node, opts Options) string {
	if node == nil {
		return "unknown"
	}
	if opts.Formatter != nil {
		if out := opts.Formatter(node); out != "" {
			return out
		}
	}

	var out string
	switch kind := schema.Classify(node); kind {
	case schema.KindTypeArray:
		out = typeArray(node, opts)
	case schema.KindRef:
		out = node.Ref
		if out == "" {
			out = "unknown"
		}
	case schema.KindNull, schema.KindString, schema.KindNumber, schema.KindBoolean:
		out = kind.String()
	case schema.KindConst:
		out = Literal(node.Const, node.Nullable)
		if out == "" {
			out = "null"
		}
	case schema.KindEnum:
		out = enum(node)
	case schema.KindObject:
		out = object(node, opts)
	case schema.KindArray:
		out = array(node, opts)
	default:
		if t := node.PrimaryType(); t != "" {
			opts.Diagnostics.Warnf(diagnostic.CategoryShapeUnknown, node.Pointer,
				"unsupported type %q, emitting unknown", t)
		}
		out = "unknown"
	}

	if node.Nullable {
		return "(" + out + ") | null"
	}
	return out
}

// typeArray unions the node narrowed to each listed type. Primitive members
// keep only their type and format; object and array members keep the
// structural keywords of the node.
func typeArray(node *schema.Node, opts Options) string {
	members := make([]string, 0, len(node.Type))
	for _, t := range node.Type {
		members = append(members, Schema(narrow(node, t), opts))
	}
	return UnionOf(members...)
}

func narrow(node *schema.Node, t string) *schema.Node {
	switch schema.PrimitiveKind(t) {
	case schema.KindObject, schema.KindArray:
		n := *node
		n.Type = []string{t}
		n.TypeList = false
		n.Nullable = false
		n.Const, n.HasConst, n.Enum = nil, false, nil
		return &n
	default:
		return &schema.Node{Type: []string{t}, Format: node.Format, Pointer: node.Pointer}
	}
}

// enum renders each member in order. Duplicates are kept.
func enum(node *schema.Node) string {
	members := make([]string, 0, len(node.Enum))
	for _, v := range node.Enum {
		members = append(members, Literal(v, node.Nullable))
	}
	if len(nonEmpty(members)) == 0 && len(node.Enum) > 0 {
		return "null"
	}
	return UnionOf(members...)
}
