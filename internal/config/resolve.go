package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Resolve evaluates a raw configuration expression against a variable
// table. Quoted literals resolve to their contents, var.<name>
// references resolve through the table, and any other bare traversal is
// returned as written. The function is pure: same inputs, same result.
func Resolve(expr hcl.Expression, vars map[string]string) (string, error) {
	if trav, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() {
		if name, ok := variableName(trav); ok {
			value, declared := vars[name]
			if !declared {
				return "", &UndefinedVariableError{Name: name}
			}
			return value, nil
		}
		return traversalText(trav), nil
	}
	return literalString(expr)
}

// variableName extracts <name> from a var.<name> traversal.
func variableName(trav hcl.Traversal) (string, bool) {
	if trav.RootName() != "var" || len(trav) < 2 {
		return "", false
	}
	attr, ok := trav[1].(hcl.TraverseAttr)
	if !ok {
		return "", false
	}
	return attr.Name, true
}

// traversalText renders a traversal back to its source form.
func traversalText(trav hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(trav).Bytes())
}

// literalString evaluates a static expression and converts the result to
// a string.
func literalString(expr hcl.Expression) (string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("cannot evaluate expression: %s", diags.Error())
	}
	if val.IsNull() {
		return "", fmt.Errorf("expression evaluates to null")
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot convert expression to string: %w", err)
	}
	return val.AsString(), nil
}
