package transform

import (
	"math"

	"github.com/tsgonest/oasts/internal/diagnostic"
	"github.com/tsgonest/oasts/internal/schema"
)

// array renders positional items as a tuple, with a rest element when an
// items schema follows them (prefixItems). A single items schema with
// length bounds expands into tuples when SupportArrayLength is set and the
// expansion stays under the threshold; otherwise it is a plain array.
func array(node *schema.Node, opts Options) string {
	ro := opts.readonly()

	if node.TupleItems != nil {
		slots := make([]string, len(node.TupleItems))
		for i, item := range node.TupleItems {
			slots[i] = Schema(item, opts)
		}
		if node.Items != nil {
			slots = append(slots, "..."+ArrayOf(Schema(node.Items, opts)))
		}
		return ro + TupleOf(slots...)
	}

	item := "unknown"
	if node.Items != nil {
		item = Schema(node.Items, opts)
	}

	minItems, maxItems, bounded := arrayBounds(node, opts)
	if (minItems != 0 || bounded) && opts.SupportArrayLength &&
		tupleCost(minItems, maxItems, bounded) < opts.threshold() {
		if !bounded {
			slots := make([]string, 0, minItems+1)
			for i := 0; i < minItems; i++ {
				slots = append(slots, item)
			}
			slots = append(slots, "..."+ArrayOf(item))
			return ro + TupleOf(slots...)
		}

		variants := make([]string, 0, maxItems-minItems+1)
		for n := minItems; n <= maxItems; n++ {
			slots := make([]string, n)
			for i := range slots {
				slots[i] = item
			}
			variants = append(variants, ro+TupleOf(slots...))
		}
		return UnionOf(variants...)
	}

	return ro + ArrayOf(item)
}

// arrayBounds normalizes minItems (default 0, floored at 0) and maxItems,
// which only counts when it is non-negative and not below minItems.
func arrayBounds(node *schema.Node, opts Options) (minItems, maxItems int, bounded bool) {
	if node.MinItems != nil && *node.MinItems > 0 {
		minItems = *node.MinItems
	}
	if node.MaxItems == nil || *node.MaxItems < 0 {
		return minItems, 0, false
	}
	if *node.MaxItems < minItems {
		opts.Diagnostics.Warnf(diagnostic.CategoryArrayBounds, node.Pointer,
			"maxItems %d is below minItems %d, ignoring maxItems", *node.MaxItems, minItems)
		return minItems, 0, false
	}
	return minItems, *node.MaxItems, true
}

// tupleCost estimates the number of tuple slots an expansion emits: minItems
// for an open-ended array, otherwise the sum of every length from minItems
// through maxItems.
func tupleCost(minItems, maxItems int, bounded bool) int {
	if !bounded {
		return minItems
	}
	if maxItems > 1<<20 {
		return math.MaxInt
	}
	return (maxItems*(maxItems+1) - minItems*(minItems-1)) / 2
}
