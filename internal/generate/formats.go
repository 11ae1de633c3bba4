package generate

import (
	"github.com/tsgonest/oasts/internal/schema"
	"github.com/tsgonest/oasts/internal/transform"
)

// FormatTypes returns a Formatter that maps a node's "format" keyword to a
// fixed TypeScript type, e.g. {"date-time": "Date"}. It returns nil for an
// empty map.
func FormatTypes(types map[string]string) transform.Formatter {
	if len(types) == 0 {
		return nil
	}
	return func(node *schema.Node) string {
		if node.Format == "" {
			return ""
		}
		return types[node.Format]
	}
}
