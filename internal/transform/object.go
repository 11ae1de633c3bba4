package transform

import (
	"strings"

	"github.com/tsgonest/oasts/internal/diagnostic"
	"github.com/tsgonest/oasts/internal/schema"
)

// object assembles an object node as an intersection of, in order: allOf
// members, the anyOf union, the oneOf union, the declared property block,
// synthesized fields for undeclared required names, and the
// additionalProperties catch-all. Absent parts are left out.
func object(node *schema.Node, opts Options) string {
	missing := missingRequired(node, opts)

	hasCombinator := node.AllOf != nil || node.AnyOf != nil || node.OneOf != nil
	if !hasCombinator && len(node.Properties) == 0 && !allowsAdditional(node.AdditionalProperties) {
		return IntersectionOf(IndexSignature("unknown", opts), missing)
	}

	var parts []string
	for _, member := range node.AllOf {
		parts = append(parts, Schema(member, opts))
	}
	if node.AnyOf != nil {
		parts = append(parts, AnyOf(node.AnyOf, opts))
	}
	if node.OneOf != nil {
		parts = append(parts, OneOf(node.OneOf, node.Discriminator, opts))
	}
	if props := Properties(node.Properties, opts.WithRequired(node.Required)); props != "" {
		parts = append(parts, "{\n"+props+opts.pad()+"}")
	}
	parts = append(parts, missing, additionalProperties(node, opts))

	if out := IntersectionOf(parts...); out != "" {
		return out
	}
	return "unknown"
}

// Properties renders a property map as field declarations, one per line, in
// declaration order. Fields are indented one level below opts.
func Properties(props []schema.Property, opts Options) string {
	inner := opts.nested()
	pad := inner.pad()

	var sb strings.Builder
	for _, p := range props {
		if opts.Comment != nil {
			if c := opts.Comment(p.Schema); c != "" {
				sb.WriteString(indentLines(c, pad))
			}
		}
		sb.WriteString(pad)
		sb.WriteString(opts.readonly())
		sb.WriteString(PropertyKey(p.Name))
		if !opts.isRequired(p.Name, p.Schema) {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		sb.WriteString(Schema(p.Schema, inner))
		sb.WriteString(";\n")
	}

	out := sb.String()
	if out == "" {
		return ""
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// missingRequired synthesizes fields for required names that have no
// declared property. They are typed by additionalProperties when it is a
// schema, unknown otherwise.
func missingRequired(node *schema.Node, opts Options) string {
	var missing []string
	seen := make(map[string]bool)
	for _, name := range node.Required {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := node.Property(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return ""
	}

	inner := opts.nested()
	valueType := "unknown"
	ap := node.AdditionalProperties
	if ap != nil && ap.Schema != nil {
		if t := Schema(ap.Schema, inner); t != "" {
			valueType = t
		}
	} else if ap == nil || !ap.Allowed {
		for _, name := range missing {
			opts.Diagnostics.WarnWithHint(diagnostic.CategoryRequiredMissing, node.Pointer,
				"required property \""+name+"\" is not declared under properties",
				"declare the property or give the object an additionalProperties schema")
		}
	}

	var sb strings.Builder
	sb.WriteString("{\n")
	for _, name := range missing {
		sb.WriteString(inner.pad())
		sb.WriteString(opts.readonly())
		sb.WriteString(PropertyKey(name))
		sb.WriteString(": ")
		sb.WriteString(valueType)
		sb.WriteString(";\n")
	}
	sb.WriteString(opts.pad())
	sb.WriteString("}")
	return sb.String()
}

// additionalProperties renders the catch-all index signature, or "" when the
// object does not accept undeclared keys.
func additionalProperties(node *schema.Node, opts Options) string {
	ap := node.AdditionalProperties
	if ap == nil {
		if opts.AdditionalProperties && opts.version() == 3 {
			return IndexSignature("unknown", opts)
		}
		return ""
	}
	if !ap.Allowed {
		return ""
	}
	value := ap.Schema
	if value == nil || value.IsEmpty() {
		return IndexSignature("unknown", opts)
	}

	var t string
	switch {
	case value.OneOf != nil:
		t = OneOf(value.OneOf, value.Discriminator, opts)
	case value.AnyOf != nil:
		t = AnyOf(value.AnyOf, opts)
	default:
		t = Schema(value, opts)
	}
	if t == "" {
		t = "unknown"
	}
	return IndexSignature(t, opts)
}

// allowsAdditional reports whether the keyword is present and not false.
func allowsAdditional(ap *schema.AdditionalProperties) bool {
	return ap != nil && ap.Allowed
}

func indentLines(s, pad string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	var sb strings.Builder
	for _, line := range lines {
		if line != "" {
			sb.WriteString(pad)
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
