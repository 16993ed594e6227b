// Package mathtool exposes functions from the standard math package as
// callable tools. It gives demos and tests a large registry of entries with
// distinguishable descriptions without inventing a tool catalog by hand.
package mathtool

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"

	"github.com/toolscout-io/toolscout/internal/tool"
)

type mathFunc struct {
	name        string
	description string
	fn          func(float64) float64
}

var mathFuncs = []mathFunc{
	{"acos", "Return the arc cosine (measured in radians) of x.", math.Acos},
	{"acosh", "Return the inverse hyperbolic cosine of x.", math.Acosh},
	{"asin", "Return the arc sine (measured in radians) of x.", math.Asin},
	{"asinh", "Return the inverse hyperbolic sine of x.", math.Asinh},
	{"atan", "Return the arc tangent (measured in radians) of x.", math.Atan},
	{"atanh", "Return the inverse hyperbolic tangent of x.", math.Atanh},
	{"cbrt", "Return the cube root of x.", math.Cbrt},
	{"ceil", "Return the ceiling of x as a float. This is the smallest integer value greater than or equal to x.", math.Ceil},
	{"cos", "Return the cosine of x (measured in radians).", math.Cos},
	{"cosh", "Return the hyperbolic cosine of x.", math.Cosh},
	{"erf", "Return the error function at x.", math.Erf},
	{"erfc", "Return the complementary error function at x.", math.Erfc},
	{"exp", "Return e raised to the power of x.", math.Exp},
	{"expm1", "Return exp(x)-1, computed in a way that is accurate for small x.", math.Expm1},
	{"fabs", "Return the absolute value of the float x.", math.Abs},
	{"floor", "Return the floor of x as a float. This is the largest integer value less than or equal to x.", math.Floor},
	{"gamma", "Return the gamma function at x.", math.Gamma},
	{"log", "Return the natural logarithm of x.", math.Log},
	{"log10", "Return the base 10 logarithm of x.", math.Log10},
	{"log1p", "Return the natural logarithm of 1+x, accurate for x near zero.", math.Log1p},
	{"log2", "Return the base 2 logarithm of x.", math.Log2},
	{"sin", "Return the sine of x (measured in radians).", math.Sin},
	{"sinh", "Return the hyperbolic sine of x.", math.Sinh},
	{"sqrt", "Return the square root of x.", math.Sqrt},
	{"tan", "Return the tangent of x (measured in radians).", math.Tan},
	{"tanh", "Return the hyperbolic tangent of x.", math.Tanh},
	{"trunc", "Return the integer part of the float x, truncated toward zero.", math.Trunc},
}

// Registry builds a fresh tool registry of unary math functions, each under
// a generated uuid.
func Registry() *tool.Registry {
	tools := make(map[string]tool.Tool, len(mathFuncs))
	for _, mf := range mathFuncs {
		tools[uuid.NewString()] = newUnaryTool(mf)
	}
	return tool.NewRegistry(tools)
}

func newUnaryTool(mf mathFunc) tool.Tool {
	fn := mf.fn
	name := mf.name
	return tool.NewFunc(
		name,
		mf.description,
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"x": map[string]any{"type": "number"},
			},
			"required": []string{"x"},
		},
		func(_ context.Context, args map[string]any) (string, error) {
			x, err := floatArg(args, "x")
			if err != nil {
				return "", fmt.Errorf("%s: %w", name, err)
			}
			return strconv.FormatFloat(fn(x), 'g', -1, 64), nil
		},
	)
}

func floatArg(args map[string]any, key string) (float64, error) {
	switch v := args[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("argument %q is not a number: %q", key, v)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("argument %q is required", key)
	default:
		return 0, fmt.Errorf("argument %q has unsupported type %T", key, v)
	}
}
