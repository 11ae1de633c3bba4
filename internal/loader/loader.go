// Package loader reads OpenAPI 3, Swagger 2 and plain JSON Schema documents
// into ordered schema trees with resolved references.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsgonest/oasts/internal/diagnostic"
	"github.com/tsgonest/oasts/internal/schema"
)

var (
	// ErrUnsupportedFormat is returned for an encoding other than JSON or YAML.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrNoSchemas is returned when a document defines no named schemas.
	ErrNoSchemas = errors.New("document defines no schemas")
	// ErrNotAnObject is returned when the document root is not a mapping.
	ErrNotAnObject = errors.New("document root is not an object")
)

// Format is the encoding of a document.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Dialect names the kind of document that was loaded.
type Dialect string

const (
	DialectSwagger    Dialect = "swagger"
	DialectOpenAPI    Dialect = "openapi"
	DialectJSONSchema Dialect = "json-schema"
)

// Document is a loaded schema document.
type Document struct {
	Dialect Dialect
	// Version is 2 for Swagger 2.0 and 3 for everything else.
	Version int
	// SpecVersion is the raw "openapi" or "swagger" value, if any.
	SpecVersion string
	Title       string
	Schemas     []NamedSchema
}

// NamedSchema is a top-level schema with its generated identifier.
type NamedSchema struct {
	Key     string // key in the source document
	Name    string // TypeScript identifier
	Pointer string
	Schema  *schema.Node
}

// Load reads and parses the document at path. The format is taken from the
// file extension, falling back to content sniffing.
func Load(path string, diags *diagnostic.Collector) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := LoadBytes(data, FormatFromPath(path), diags)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return doc, nil
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

// LoadBytes parses an in-memory document.
func LoadBytes(data []byte, format Format, diags *diagnostic.Collector) (*Document, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if format == FormatAuto {
		format = sniff(data)
	}

	var (
		raw any
		err error
	)
	switch format {
	case FormatJSON:
		raw, err = decodeJSON(data)
	case FormatYAML:
		raw, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", format, err)
	}

	root, ok := raw.(*object)
	if !ok {
		return nil, ErrNotAnObject
	}

	doc := &Document{Version: 3}
	switch {
	case root.has("openapi"):
		doc.Dialect = DialectOpenAPI
		doc.SpecVersion = fmt.Sprint(value(root, "openapi"))
	case root.has("swagger"):
		doc.Dialect = DialectSwagger
		doc.Version = 2
		doc.SpecVersion = fmt.Sprint(value(root, "swagger"))
	default:
		doc.Dialect = DialectJSONSchema
	}
	if info, ok := value(root, "info").(*object); ok {
		doc.Title, _ = value(info, "title").(string)
	} else {
		doc.Title, _ = value(root, "title").(string)
	}

	entries := collect(root, doc.Dialect)
	if len(entries) == 0 {
		return nil, ErrNoSchemas
	}

	// Name every schema before building any of them so forward references
	// resolve.
	names := newNamer()
	refs := newResolver(diags)
	for i := range entries {
		e := &entries[i]
		e.name = names.identifier(e.key)
		if e.name != names.pascal(e.key) {
			diags.Info(diagnostic.CategoryRenamed, e.ref,
				fmt.Sprintf("schema %q is emitted as %s to keep identifiers valid and unique", e.key, e.name))
		}
		refs.register(e.ref, e.name)
	}

	b := &builder{refs: refs, diags: diags}
	for _, e := range entries {
		doc.Schemas = append(doc.Schemas, NamedSchema{
			Key:     e.key,
			Name:    e.name,
			Pointer: e.ref,
			Schema:  b.build(e.raw, e.ref),
		})
	}
	return doc, nil
}

type entry struct {
	key  string
	ref  string
	name string
	raw  any
}

// collect lists the named schemas of a document in document order. A plain
// JSON Schema document contributes its root (when it is more than a
// container for definitions) followed by $defs and definitions.
func collect(root *object, dialect Dialect) []entry {
	var out []entry
	add := func(container *object, prefix string) {
		if container == nil {
			return
		}
		for _, k := range container.keys {
			out = append(out, entry{key: k, ref: prefix + escapePointer(k), raw: container.values[k]})
		}
	}

	switch dialect {
	case DialectOpenAPI:
		components, _ := value(root, "components").(*object)
		schemas, _ := value(components, "schemas").(*object)
		add(schemas, componentsPrefix)
	case DialectSwagger:
		defs, _ := value(root, "definitions").(*object)
		add(defs, definitionsPrefix)
	default:
		if isRootSchema(root) {
			key, _ := value(root, "title").(string)
			if key == "" {
				key = "Schema"
			}
			out = append(out, entry{key: key, ref: "#", raw: root})
		}
		defs, _ := value(root, "$defs").(*object)
		add(defs, defsPrefix)
		definitions, _ := value(root, "definitions").(*object)
		add(definitions, definitionsPrefix)
	}
	return out
}

var rootOnlyKeywords = map[string]bool{
	"$schema": true, "$id": true, "$defs": true, "definitions": true,
	"title": true, "description": true, "$comment": true,
}

func isRootSchema(root *object) bool {
	for _, k := range root.keys {
		if !rootOnlyKeywords[k] {
			return true
		}
	}
	return false
}

// sniff guesses the encoding: JSON documents start with '{' or '['.
func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}
