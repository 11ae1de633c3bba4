package loader

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	json "github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsgonest/oasts/internal/diagnostic"
)

// Containers that hold named schemas, as they appear in a $ref.
const (
	componentsPrefix  = "#/components/schemas/"
	definitionsPrefix = "#/definitions/"
	defsPrefix        = "#/$defs/"
)

var containers = []string{componentsPrefix, definitionsPrefix, defsPrefix}

// namer turns schema keys into unique TypeScript identifiers.
type namer struct {
	caser cases.Caser
	taken map[string]bool
}

func newNamer() *namer {
	return &namer{
		caser: cases.Title(language.Und, cases.NoLower),
		taken: make(map[string]bool),
	}
}

// pascal joins the letter and digit runs of key in PascalCase.
func (n *namer) pascal(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(n.caser.String(w))
	}
	if sb.Len() == 0 {
		return "Schema"
	}
	return sb.String()
}

// identifier returns a PascalCase identifier for key. Keys that collide after
// normalization get a numeric suffix, in the order they are named.
func (n *namer) identifier(key string) string {
	base := n.pascal(key)
	if r := []rune(base)[0]; unicode.IsDigit(r) {
		base = "_" + base
	}
	if tsBuiltins[base] {
		base += "_"
	}

	id := base
	for i := 2; n.taken[id]; i++ {
		id = base + strconv.Itoa(i)
	}
	n.taken[id] = true
	return id
}

// tsBuiltins are global TypeScript types a generated alias must not shadow.
var tsBuiltins = map[string]bool{
	"Array": true, "ArrayBuffer": true, "Awaited": true, "BigInt": true, "Blob": true,
	"Boolean": true, "Date": true, "Error": true, "Exclude": true, "Extract": true,
	"File": true, "Function": true, "Map": true, "NonNullable": true, "Number": true,
	"Object": true, "Omit": true, "Partial": true, "Pick": true, "Promise": true,
	"Readonly": true, "ReadonlyArray": true, "Record": true, "RegExp": true,
	"Required": true, "ReturnType": true, "Set": true, "String": true, "Symbol": true,
	"Uint8Array": true,
}

// resolver maps $ref strings to TypeScript type expressions.
type resolver struct {
	names map[string]string // $ref of a named schema -> identifier
	diags *diagnostic.Collector
}

func newResolver(diags *diagnostic.Collector) *resolver {
	return &resolver{names: make(map[string]string), diags: diags}
}

func (r *resolver) register(ref, id string) {
	r.names[ref] = id
}

// resolve returns the identifier for a reference to a named schema, an
// indexed access type for a reference into a named schema's subtree, or
// "unknown" (with a diagnostic) for anything else.
func (r *resolver) resolve(ref, from string) string {
	if !strings.HasPrefix(ref, "#") {
		r.diags.WarnWithHint(diagnostic.CategoryRefRemote, from,
			fmt.Sprintf("remote reference %q is not followed", ref),
			"bundle the document into a single file first")
		return "unknown"
	}
	if id, ok := r.names[ref]; ok {
		return id
	}

	for _, prefix := range containers {
		if !strings.HasPrefix(ref, prefix) {
			continue
		}
		segs := strings.Split(ref[len(prefix):], "/")
		id, ok := r.names[prefix+segs[0]]
		if !ok {
			break
		}
		if access, ok := accessPath(segs[1:]); ok {
			return id + access
		}
		break
	}

	// A plain JSON Schema root is registered under "#".
	if id, ok := r.names["#"]; ok && strings.HasPrefix(ref, "#/") {
		if access, ok := accessPath(strings.Split(ref[2:], "/")); ok {
			return id + access
		}
	}

	r.diags.Warnf(diagnostic.CategoryRefUnresolved, from, "cannot resolve reference %q", ref)
	return "unknown"
}

// accessPath converts the pointer segments below a named schema into an
// indexed access chain, e.g. properties/name/items -> ["name"][number].
func accessPath(segs []string) (string, bool) {
	var sb strings.Builder
	for i := 0; i < len(segs); i++ {
		switch segs[i] {
		case "properties":
			if i+1 >= len(segs) {
				return "", false
			}
			i++
			key, err := json.MarshalWithOption(unescapePointer(segs[i]), json.DisableHTMLEscape())
			if err != nil {
				return "", false
			}
			sb.WriteString("[" + string(key) + "]")
		case "items", "prefixItems":
			if i+1 < len(segs) && isIndex(segs[i+1]) {
				i++
				sb.WriteString("[" + segs[i] + "]")
			} else if segs[i] == "items" {
				sb.WriteString("[number]")
			} else {
				return "", false
			}
		case "additionalProperties":
			sb.WriteString("[string]")
		default:
			return "", false
		}
	}
	return sb.String(), true
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func escapePointer(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}

func unescapePointer(s string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(s)
}
