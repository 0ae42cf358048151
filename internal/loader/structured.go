// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/diffai/internal/value"
)

// ParseJSON parses a JSON document in key order.
func ParseJSON(_ string, data []byte) (value.Value, error) {
	return value.ParseJSONValue(data)
}

// ParseYAML parses the first document of a YAML stream in key order. Anchors
// are resolved and merge keys ("<<") are applied. An empty stream is null.
func ParseYAML(_ string, data []byte) (value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return value.Value{}, err
	}
	if doc.Kind == 0 {
		return value.Null(), nil
	}
	return yamlNode(&doc)
}

func yamlNode(n *yaml.Node) (value.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null(), nil
		}
		return yamlNode(n.Content[0])
	case yaml.AliasNode:
		return yamlNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]value.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlNode(c)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		return value.Array(items...), nil
	case yaml.MappingNode:
		return yamlMapping(n)
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return value.Value{}, fmt.Errorf("%w: yaml node kind %d at line %d", ErrMalformed, n.Kind, n.Line)
}

func yamlMapping(n *yaml.Node) (value.Value, error) {
	var members []value.Member
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.ShortTag() == "!!merge" {
			merged, err := yamlNode(v)
			if err != nil {
				return value.Value{}, err
			}
			members = append(members, mergeMembers(merged)...)
			continue
		}

		var key string
		if err := k.Decode(&key); err != nil {
			return value.Value{}, fmt.Errorf("%w: non-string key at line %d", ErrMalformed, k.Line)
		}
		val, err := yamlNode(v)
		if err != nil {
			return value.Value{}, err
		}
		members = append(members, value.Field(key, val))
	}
	return value.Object(members...), nil
}

// mergeMembers flattens a merge value: one mapping or a list of mappings.
func mergeMembers(v value.Value) []value.Member {
	if v.Kind() == value.KindObject {
		return v.Members()
	}
	var out []value.Member
	for _, item := range v.Items() {
		out = append(out, item.Members()...)
	}
	return out
}

func yamlScalar(n *yaml.Node) (value.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return value.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return value.Value{}, err
		}
		return value.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return value.Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return value.Value{}, err
		}
		return value.FromFloat(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return value.Value{}, err
		}
		return value.FromFloat(f), nil
	}
	return value.String(n.Value), nil
}

// hclFunctions are the pure functions available to HCL expressions.
var hclFunctions = map[string]function.Function{
	"abs":     stdlib.AbsoluteFunc,
	"ceil":    stdlib.CeilFunc,
	"concat":  stdlib.ConcatFunc,
	"floor":   stdlib.FloorFunc,
	"format":  stdlib.FormatFunc,
	"join":    stdlib.JoinFunc,
	"length":  stdlib.LengthFunc,
	"lower":   stdlib.LowerFunc,
	"max":     stdlib.MaxFunc,
	"merge":   stdlib.MergeFunc,
	"min":     stdlib.MinFunc,
	"pow":     stdlib.PowFunc,
	"upper":   stdlib.UpperFunc,
	"zipmap":  stdlib.ZipmapFunc,
	"flatten": stdlib.FlattenFunc,
}

// ParseHCL parses HCL native syntax (.hcl, .tfvars). Attributes keep source
// order. Blocks nest as type, then each label, then body; repeated unlabeled
// blocks of one type become an array.
func ParseHCL(name string, data []byte) (value.Value, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, name)
	if diags.HasErrors() {
		return value.Value{}, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return value.Value{}, fmt.Errorf("%w: %s is not native hcl", ErrMalformed, name)
	}
	ctx := &hcl.EvalContext{Functions: hclFunctions}
	return hclBody(body, ctx)
}

func hclBody(body *hclsyntax.Body, ctx *hcl.EvalContext) (value.Value, error) {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	var members []value.Member
	for _, a := range attrs {
		cv, diags := a.Expr.Value(ctx)
		if diags.HasErrors() {
			return value.Value{}, diags
		}
		v, err := ctyValue(cv)
		if err != nil {
			return value.Value{}, fmt.Errorf("attribute %s: %w", a.Name, err)
		}
		members = append(members, value.Field(a.Name, v))
	}

	var order []string
	grouped := map[string][]*hclsyntax.Block{}
	for _, b := range body.Blocks {
		if _, ok := grouped[b.Type]; !ok {
			order = append(order, b.Type)
		}
		grouped[b.Type] = append(grouped[b.Type], b)
	}

	for _, typ := range order {
		v, err := hclBlocks(grouped[typ], ctx)
		if err != nil {
			return value.Value{}, err
		}
		members = append(members, value.Field(typ, v))
	}

	return value.Object(members...), nil
}

func hclBlocks(blocks []*hclsyntax.Block, ctx *hcl.EvalContext) (value.Value, error) {
	if len(blocks[0].Labels) == 0 {
		items := make([]value.Value, 0, len(blocks))
		for _, b := range blocks {
			v, err := hclBody(b.Body, ctx)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, v)
		}
		if len(items) == 1 {
			return items[0], nil
		}
		return value.Array(items...), nil
	}

	// Labeled blocks: build a tree keyed by label path.
	root := value.NewMap()
	for _, b := range blocks {
		v, err := hclBody(b.Body, ctx)
		if err != nil {
			return value.Value{}, err
		}
		node := root
		for i, label := range b.Labels {
			if i == len(b.Labels)-1 {
				node.Set(label, v)
				break
			}
			next, ok := node.Get(label)
			child, isMap := next.(*value.Map)
			if !ok || !isMap {
				child = value.NewMap()
				node.Set(label, child)
			}
			node = child
		}
	}
	return value.Lower(root)
}

func ctyValue(v cty.Value) (value.Value, error) {
	v, _ = v.UnmarkDeep()
	if v.IsNull() || !v.IsKnown() {
		return value.Null(), nil
	}

	t := v.Type()
	switch {
	case t == cty.Bool:
		return value.Bool(v.True()), nil
	case t == cty.String:
		return value.String(v.AsString()), nil
	case t == cty.Number:
		return ctyNumber(v.AsBigFloat()), nil
	case t.IsObjectType() || t.IsMapType():
		var members []value.Member
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			cv, err := ctyValue(ev)
			if err != nil {
				return value.Value{}, err
			}
			members = append(members, value.Field(k.AsString(), cv))
		}
		return value.Object(members...), nil
	case v.CanIterateElements():
		var items []value.Value
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			cv, err := ctyValue(ev)
			if err != nil {
				return value.Value{}, err
			}
			items = append(items, cv)
		}
		return value.Array(items...), nil
	}
	return value.Value{}, fmt.Errorf("%w: %s", value.ErrUnsupportedType, t.FriendlyName())
}

func ctyNumber(bf *big.Float) value.Value {
	if bf.IsInt() {
		if i, acc := bf.Int64(); acc == big.Exact {
			return value.Int(i)
		}
	}
	f, _ := bf.Float64()
	return value.FromFloat(f)
}
