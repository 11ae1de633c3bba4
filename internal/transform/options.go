// Package transform turns schema nodes into TypeScript type expressions.
//
// Every function here is a pure function of its node and Options: no I/O,
// no shared mutable state, so independent nodes may be transformed in
// parallel. The only side channel is the optional diagnostic collector.
package transform

import (
	"strings"

	"github.com/tsgonest/oasts/internal/diagnostic"
	"github.com/tsgonest/oasts/internal/schema"
)

// DefaultArrayLengthThreshold bounds how many tuple slots a bounded array may
// expand into before falling back to a plain array type.
const DefaultArrayLengthThreshold = 30

// Formatter overrides the emitted type of a node. An empty result means
// "no override".
type Formatter func(node *schema.Node) string

// CommentFunc returns a pre-formatted documentation comment for a node, or
// "" for none. The result is emitted verbatim, indented to the field level.
type CommentFunc func(node *schema.Node) string

// Options configures a transform. It is passed by value through the whole
// call tree; nested calls receive narrowed copies, never a mutated original.
type Options struct {
	ImmutableTypes       bool // emit readonly qualifiers
	DefaultNonNullable   bool // a property with a default counts as required
	AdditionalProperties bool // v3 objects without additionalProperties accept any key
	Version              int  // schema dialect, 2 or 3; 0 is treated as 3
	SupportArrayLength   bool // expand bounded arrays into tuples
	ArrayLengthThreshold int  // 0 means DefaultArrayLengthThreshold

	Formatter   Formatter
	Comment     CommentFunc
	Diagnostics *diagnostic.Collector

	required map[string]struct{}
	depth    int
}

// WithRequired returns a copy of o whose required set is names. It is used
// when descending into an object's property map.
func (o Options) WithRequired(names []string) Options {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	o.required = set
	return o
}

// Indent returns a copy of o whose output starts at the given nesting level.
func (o Options) Indent(level int) Options {
	o.depth = level
	return o
}

func (o Options) nested() Options {
	o.depth++
	return o
}

func (o Options) pad() string {
	return strings.Repeat("  ", o.depth)
}

func (o Options) readonly() string {
	if o.ImmutableTypes {
		return "readonly "
	}
	return ""
}

func (o Options) version() int {
	if o.Version == 0 {
		return 3
	}
	return o.Version
}

func (o Options) threshold() int {
	if o.ArrayLengthThreshold <= 0 {
		return DefaultArrayLengthThreshold
	}
	return o.ArrayLengthThreshold
}

// isRequired reports whether a property is emitted without the optional marker.
func (o Options) isRequired(name string, prop *schema.Node) bool {
	if _, ok := o.required[name]; ok {
		return true
	}
	return o.DefaultNonNullable && prop != nil && prop.HasDefault
}
