package transform

import (
	"strings"
)

// UnionOf joins types with " | ". Empty members are dropped; a union of
// nothing is "never".
func UnionOf(types ...string) string {
	parts := nonEmpty(types)
	switch len(parts) {
	case 0:
		return "never"
	case 1:
		return parts[0]
	}
	return strings.Join(parts, " | ")
}

// IntersectionOf joins types with " & ". Empty members are dropped and union
// members are parenthesized. An intersection of nothing is "".
func IntersectionOf(types ...string) string {
	parts := nonEmpty(types)
	if len(parts) == 1 {
		return parts[0]
	}
	for i, p := range parts {
		if hasTopLevel(p, '|') {
			parts[i] = "(" + p + ")"
		}
	}
	return strings.Join(parts, " & ")
}

// TupleOf renders a fixed-length tuple.
func TupleOf(types ...string) string {
	return "[" + strings.Join(types, ", ") + "]"
}

// ArrayOf renders an array of t, parenthesizing t when the postfix [] would
// otherwise bind to only part of it.
func ArrayOf(t string) string {
	if needsArrayParens(t) {
		return "(" + t + ")[]"
	}
	return t + "[]"
}

// IndexSignature renders a string-keyed catch-all object type.
func IndexSignature(value string, opts Options) string {
	return "{ " + opts.readonly() + "[key: string]: " + value + " }"
}

// PropertyKey returns a TypeScript property key. Valid identifiers are
// returned as-is, everything else is quoted.
func PropertyKey(name string) string {
	if name == "" {
		return `""`
	}
	for i, r := range name {
		if i == 0 {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == '$') {
				return quote(name)
			}
		} else {
			if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '$') {
				return quote(name)
			}
		}
	}
	return name
}

func nonEmpty(types []string) []string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return parts
}

func needsArrayParens(t string) bool {
	if strings.HasPrefix(t, "readonly ") || strings.HasPrefix(t, "keyof ") || strings.HasPrefix(t, "typeof ") {
		return true
	}
	return hasTopLevel(t, '|') || hasTopLevel(t, '&') || strings.Contains(t, "=>")
}

// hasTopLevel reports whether op occurs in t outside of any brackets, braces,
// parentheses, generic arguments or string literals.
func hasTopLevel(t string, op byte) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(t); i++ {
		c := t[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			depth--
		case '>':
			if i > 0 && t[i-1] == '=' {
				continue
			}
			depth--
		default:
			if c == op && depth == 0 {
				return true
			}
		}
	}
	return false
}
