// Package calc evaluates launcher queries that look like arithmetic.
package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
)

// Evaluate returns the value of query as a decimal string. The second result
// is false when query is not an arithmetic expression or its value is not a
// finite number.
//
// Integer operands in a query containing "/" are promoted to floats first,
// so "7/2" yields "3.5". An integer result that overflowed is rejected.
func Evaluate(query string) (string, bool) {
	if strings.TrimSpace(query) == "" {
		return "", false
	}

	output, err := run(promote(query))
	if err != nil {
		return "", false
	}

	switch v := output.(type) {
	case int:
		if !exact(query, int64(v)) {
			return "", false
		}
	case int64:
		if !exact(query, v) {
			return "", false
		}
	}

	return format(output)
}

func run(input string, opts ...expr.Option) (any, error) {
	opts = append([]expr.Option{
		expr.Env(map[string]any{}),
		expr.DisableAllBuiltins(),
	}, opts...)
	program, err := expr.Compile(input, opts...)
	if err != nil {
		return nil, err
	}
	return expr.Run(program, map[string]any{})
}

// exact reports whether the integer result v agrees with the same query
// evaluated over float operands. Integer arithmetic wraps on overflow, the
// float evaluation does not. Queries the float program cannot express, such
// as "%", keep their integer result.
func exact(query string, v int64) bool {
	output, err := run(query, expr.Patch(floatOperands{}))
	if err != nil {
		return true
	}
	f, ok := output.(float64)
	if !ok {
		return true
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return math.Abs(float64(v)-f) <= 1e-9*math.Max(1, math.Abs(f))
}

// floatOperands rewrites integer literals into float literals.
type floatOperands struct{}

func (floatOperands) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

// promote appends ".0" to every whitespace-delimited integer token when the
// query divides.
func promote(query string) string {
	if !strings.Contains(query, "/") {
		return query
	}

	tokens := strings.Fields(strings.ReplaceAll(query, "/", " / "))
	for i, tok := range tokens {
		if strings.Contains(tok, ".") {
			continue
		}
		if _, err := strconv.ParseInt(tok, 10, 64); err == nil {
			tokens[i] = tok + ".0"
		}
	}

	return strings.ReplaceAll(strings.Join(tokens, " "), " / ", "/")
}

func format(output any) (string, bool) {
	switch v := output.(type) {
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return formatFloat(float64(v))
	case float64:
		return formatFloat(v)
	default:
		return "", false
	}
}

func formatFloat(v float64) (string, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true
}
