package loader

import (
	"math"
	"strconv"

	"github.com/tsgonest/oasts/internal/diagnostic"
	"github.com/tsgonest/oasts/internal/schema"
)

// builder converts decoded values into schema nodes. Every node records the
// JSON pointer it was read from.
type builder struct {
	refs  *resolver
	diags *diagnostic.Collector
}

func (b *builder) build(raw any, ptr string) *schema.Node {
	switch v := raw.(type) {
	case *object:
		return b.object(v, ptr)
	case bool:
		// Boolean schemas: true accepts anything, false accepts nothing.
		if v {
			return &schema.Node{Pointer: ptr}
		}
		return &schema.Node{Enum: []any{}, Pointer: ptr}
	default:
		b.diags.Warnf(diagnostic.CategoryShapeUnknown, ptr, "expected a schema object, found %s", describe(raw))
		return &schema.Node{Pointer: ptr}
	}
}

func (b *builder) object(o *object, ptr string) *schema.Node {
	n := &schema.Node{Pointer: ptr, Keywords: len(o.keys)}

	switch t := value(o, "type").(type) {
	case string:
		n.Type = []string{t}
	case []any:
		n.TypeList = true
		n.Type = make([]string, 0, len(t))
		for _, member := range t {
			if s, ok := member.(string); ok {
				n.Type = append(n.Type, s)
			}
		}
	}

	if ref, ok := value(o, "$ref").(string); ok {
		n.RefPointer = ref
		n.Ref = b.refs.resolve(ref, ptr)
	}

	if v, ok := o.get("const"); ok {
		n.Const = plain(v)
		n.HasConst = true
	}
	if enum, ok := value(o, "enum").([]any); ok {
		n.Enum = make([]any, len(enum))
		for i, member := range enum {
			n.Enum[i] = plain(member)
		}
	}

	if props, ok := value(o, "properties").(*object); ok {
		n.Properties = make([]schema.Property, 0, len(props.keys))
		for _, name := range props.keys {
			n.Properties = append(n.Properties, schema.Property{
				Name:   name,
				Schema: b.build(props.values[name], ptr+"/properties/"+escapePointer(name)),
			})
		}
	}
	if required, ok := value(o, "required").([]any); ok {
		n.Required = make([]string, 0, len(required))
		for _, name := range required {
			if s, ok := name.(string); ok {
				n.Required = append(n.Required, s)
			}
		}
	}
	switch ap := value(o, "additionalProperties").(type) {
	case bool:
		n.AdditionalProperties = schema.Bool(ap)
	case *object:
		n.AdditionalProperties = schema.Schema(b.build(ap, ptr+"/additionalProperties"))
	}

	n.AllOf = b.list(o, "allOf", ptr)
	n.AnyOf = b.list(o, "anyOf", ptr)
	n.OneOf = b.list(o, "oneOf", ptr)
	n.Discriminator = discriminator(value(o, "discriminator"))

	b.items(n, o, ptr)
	n.MinItems = intValue(value(o, "minItems"))
	n.MaxItems = intValue(value(o, "maxItems"))

	n.Nullable = boolValue(o, "nullable") || boolValue(o, "x-nullable")
	if v, ok := o.get("default"); ok {
		n.Default = plain(v)
		n.HasDefault = true
	}
	if v, ok := o.get("example"); ok {
		n.Example = plain(v)
		n.HasExample = true
	} else if examples, ok := value(o, "examples").([]any); ok && len(examples) > 0 {
		n.Example = plain(examples[0])
		n.HasExample = true
	}

	n.Title, _ = value(o, "title").(string)
	n.Description, _ = value(o, "description").(string)
	n.Format, _ = value(o, "format").(string)
	n.Deprecated = boolValue(o, "deprecated")
	n.ReadOnly = boolValue(o, "readOnly")
	n.WriteOnly = boolValue(o, "writeOnly")

	return n
}

// items reads the array keywords. prefixItems and array-form items become
// positional tuple members; a following items (or additionalItems) schema
// becomes the rest element.
func (b *builder) items(n *schema.Node, o *object, ptr string) {
	if prefix, ok := value(o, "prefixItems").([]any); ok {
		n.TupleItems = b.nodes(prefix, ptr+"/prefixItems")
		if rest, ok := value(o, "items").(*object); ok {
			n.Items = b.build(rest, ptr+"/items")
		}
		return
	}

	switch items := value(o, "items").(type) {
	case []any:
		n.TupleItems = b.nodes(items, ptr+"/items")
		if rest, ok := value(o, "additionalItems").(*object); ok {
			n.Items = b.build(rest, ptr+"/additionalItems")
		}
	case *object, bool:
		n.Items = b.build(items, ptr+"/items")
	}
}

func (b *builder) list(o *object, key, ptr string) []*schema.Node {
	members, ok := value(o, key).([]any)
	if !ok {
		return nil
	}
	return b.nodes(members, ptr+"/"+key)
}

func (b *builder) nodes(raw []any, ptr string) []*schema.Node {
	out := make([]*schema.Node, len(raw))
	for i, member := range raw {
		out[i] = b.build(member, ptr+"/"+strconv.Itoa(i))
	}
	return out
}

// discriminator accepts the OpenAPI 3 object form and the Swagger 2 string
// form, which only names the property.
func discriminator(raw any) *schema.Discriminator {
	switch d := raw.(type) {
	case string:
		return &schema.Discriminator{PropertyName: d}
	case *object:
		out := &schema.Discriminator{}
		out.PropertyName, _ = value(d, "propertyName").(string)
		if mapping, ok := value(d, "mapping").(*object); ok {
			out.Mapping = make(map[string]string, len(mapping.keys))
			for _, k := range mapping.keys {
				if target, ok := mapping.values[k].(string); ok {
					out.Mapping[k] = target
				}
			}
		}
		return out
	}
	return nil
}

func value(o *object, key string) any {
	v, _ := o.get(key)
	return v
}

func boolValue(o *object, key string) bool {
	v, _ := value(o, key).(bool)
	return v
}

// intValue reads an integer keyword. Fractional values are not integers and
// count as absent.
func intValue(raw any) *int {
	switch v := raw.(type) {
	case int64:
		if v >= math.MaxInt32 {
			return schema.Int(math.MaxInt32)
		}
		if v <= math.MinInt32 {
			return schema.Int(math.MinInt32)
		}
		return schema.Int(int(v))
	case float64:
		if v != math.Trunc(v) {
			return nil
		}
		if v >= math.MaxInt32 {
			return schema.Int(math.MaxInt32)
		}
		if v <= math.MinInt32 {
			return schema.Int(math.MinInt32)
		}
		return schema.Int(int(v))
	}
	return nil
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case []any:
		return "an array"
	case int64, float64:
		return "a number"
	}
	return "an unsupported value"
}
