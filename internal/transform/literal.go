package transform

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Literal renders a const or enum value as a TypeScript literal type.
// Strings are double-quoted, numbers and booleans are emitted verbatim and
// composite values as compact JSON. A null value renders as "null" unless
// nullable is set, in which case it renders as "" so the caller can drop it:
// the surrounding "| null" already covers it.
func Literal(v any, nullable bool) string {
	if v == nil {
		if nullable {
			return ""
		}
		return "null"
	}
	switch val := v.(type) {
	case string:
		return quote(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(val)
	}
	b, err := json.MarshalWithOption(v, json.DisableHTMLEscape())
	if err != nil {
		return "unknown"
	}
	return string(b)
}

func quote(s string) string {
	b, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		return `""`
	}
	return string(b)
}
