package config

import (
	"github.com/flowave-io/mathflow/internal/completion"
	"github.com/hashicorp/hcl/v2"
	cty "github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext exposes the built-in vocabulary as `defaults` together with a
// few list helpers, so a config can extend or trim it instead of restating it.
func evalContext() *hcl.EvalContext {
	names := make([]cty.Value, 0, len(completion.SupportedFunctions))
	for _, n := range completion.SupportedFunctions {
		names = append(names, cty.StringVal(n))
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ListVal(names),
		},
		Functions: map[string]function.Function{
			"concat":   stdlib.ConcatFunc,
			"distinct": stdlib.DistinctFunc,
			"sort":     stdlib.SortFunc,
			"lower":    stdlib.LowerFunc,
			"without":  withoutFunc,
		},
	}
}

// withoutFunc returns list with every element of remove taken out, keeping
// the input order.
var withoutFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "list", Type: cty.List(cty.String)},
		{Name: "remove", Type: cty.List(cty.String)},
	},
	Type: function.StaticReturnType(cty.List(cty.String)),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		drop := map[string]struct{}{}
		for it := args[1].ElementIterator(); it.Next(); {
			_, v := it.Element()
			drop[v.AsString()] = struct{}{}
		}
		var out []cty.Value
		for it := args[0].ElementIterator(); it.Next(); {
			_, v := it.Element()
			if _, ok := drop[v.AsString()]; !ok {
				out = append(out, v)
			}
		}
		if len(out) == 0 {
			return cty.ListValEmpty(cty.String), nil
		}
		return cty.ListVal(out), nil
	},
})

