// Package jsdoc renders schema documentation as JSDoc comments.
package jsdoc

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/tsgonest/oasts/internal/schema"
)

// Format returns the JSDoc block for a node, unindented and ending in a
// newline, or "" when the node carries no documentation.
func Format(node *schema.Node) string {
	if node == nil {
		return ""
	}

	var lines []string
	if node.Title != "" {
		lines = append(lines, splitLines(node.Title)...)
	}
	if node.Description != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, splitLines(node.Description)...)
	}
	if node.Deprecated {
		lines = append(lines, "@deprecated")
	}
	if node.ReadOnly {
		lines = append(lines, "@readonly")
	}
	if node.WriteOnly {
		lines = append(lines, "@writeonly")
	}
	if node.Format != "" {
		lines = append(lines, "@format "+node.Format)
	}
	if node.HasDefault {
		lines = append(lines, "@default "+value(node.Default))
	}
	if node.HasExample {
		lines = append(lines, "@example "+value(node.Example))
	}

	return Block(lines)
}

// Block wraps lines in a JSDoc comment. A single line uses the compact
// `/** text */` form.
func Block(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	if len(lines) == 1 {
		return fmt.Sprintf("/** %s */\n", escape(lines[0]))
	}
	var sb strings.Builder
	sb.WriteString("/**\n")
	for _, line := range lines {
		if line == "" {
			sb.WriteString(" *\n")
		} else {
			fmt.Fprintf(&sb, " * %s\n", escape(line))
		}
	}
	sb.WriteString(" */\n")
	return sb.String()
}

func splitLines(s string) []string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return lines
}

// value renders a default or example value: strings as-is, everything else
// as compact JSON.
func value(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.MarshalWithOption(v, json.DisableHTMLEscape())
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// escape keeps user text from closing the comment early.
func escape(s string) string {
	return strings.ReplaceAll(s, "*/", "*\\/")
}
