package transform

import (
	"sort"
	"strings"

	"github.com/tsgonest/oasts/internal/schema"
)

// AnyOf unions the branches. Branches that carry nothing but a `required`
// list are dropped; if none remain the result is "".
func AnyOf(branches []*schema.Node, opts Options) string {
	members := make([]string, 0, len(branches))
	for _, b := range branches {
		if b.RequiredOnly() {
			continue
		}
		members = append(members, Schema(b, opts))
	}
	if len(members) == 0 {
		return ""
	}
	return UnionOf(members...)
}

// OneOf unions the branches in order. A branch that is a reference listed in
// the discriminator mapping is intersected with a literal type binding the
// discriminator property to its mapped value. An empty list yields "".
func OneOf(branches []*schema.Node, d *schema.Discriminator, opts Options) string {
	if len(branches) == 0 {
		return ""
	}
	members := make([]string, 0, len(branches))
	for _, b := range branches {
		t := Schema(b, opts)
		if value, ok := discriminatorValue(d, b); ok {
			t = IntersectionOf(t, "{ "+quote(d.PropertyName)+": "+quote(value)+" }")
		}
		members = append(members, t)
	}
	return UnionOf(members...)
}

// discriminatorValue finds the mapping key whose target is the branch's
// reference. Targets match the raw $ref, the resolved identifier, or the
// bare schema name. When several keys map to the same target the smallest
// one wins.
func discriminatorValue(d *schema.Discriminator, branch *schema.Node) (string, bool) {
	if d == nil || d.PropertyName == "" || len(d.Mapping) == 0 {
		return "", false
	}
	if schema.Classify(branch) != schema.KindRef {
		return "", false
	}

	keys := make([]string, 0, len(d.Mapping))
	for k := range d.Mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if refMatches(d.Mapping[k], branch) {
			return k, true
		}
	}
	return "", false
}

func refMatches(target string, branch *schema.Node) bool {
	if target == "" {
		return false
	}
	if target == branch.RefPointer || target == branch.Ref {
		return true
	}
	if strings.Contains(target, "/") || branch.RefPointer == "" {
		return false
	}
	name := branch.RefPointer[strings.LastIndex(branch.RefPointer, "/")+1:]
	return name == target
}
