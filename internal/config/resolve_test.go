package config

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseExpr parses a standalone expression the way block bodies produce them.
func parseExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.tf", hcl.InitialPos)
	require.False(t, diags.HasErrors(), "parsing %q: %s", src, diags.Error())
	return expr
}

func TestResolve_QuotedLiteral(t *testing.T) {
	value, err := Resolve(parseExpr(t, `"nyc3"`), nil)

	require.NoError(t, err)
	assert.Equal(t, "nyc3", value)
}

func TestResolve_VariableReference(t *testing.T) {
	vars := map[string]string{"token": "abc123"}

	value, err := Resolve(parseExpr(t, `var.token`), vars)

	require.NoError(t, err)
	assert.Equal(t, "abc123", value)
}

func TestResolve_UndefinedVariable(t *testing.T) {
	vars := map[string]string{"token": "abc123"}

	_, err := Resolve(parseExpr(t, `var.missing`), vars)

	var undefined *UndefinedVariableError
	require.ErrorAs(t, err, &undefined)
	assert.Equal(t, "missing", undefined.Name)
}

func TestResolve_BareTraversalReturnedAsIs(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`nyc3`, "nyc3"},
		{`some.other.ref`, "some.other.ref"},
	}

	for _, tc := range tests {
		value, err := Resolve(parseExpr(t, tc.src), nil)
		require.NoError(t, err, "source %q", tc.src)
		assert.Equal(t, tc.want, value)
	}
}

func TestResolve_NumberLiteral(t *testing.T) {
	value, err := Resolve(parseExpr(t, `42`), nil)

	require.NoError(t, err)
	assert.Equal(t, "42", value)
}

func TestResolve_Idempotent(t *testing.T) {
	vars := map[string]string{"size": "s-1vcpu-1gb"}
	expr := parseExpr(t, `var.size`)

	first, err := Resolve(expr, vars)
	require.NoError(t, err)
	second, err := Resolve(expr, vars)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_DoesNotMutateVariables(t *testing.T) {
	vars := map[string]string{"token": "abc123"}

	_, err := Resolve(parseExpr(t, `var.token`), vars)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"token": "abc123"}, vars)
}
