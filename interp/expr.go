package interp

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var exprNames = []string{"x", "y", "z", "w"}

func exprEnv(inputs []any) map[string]any {
	env := map[string]any{
		"args": inputs,
	}

	for i, name := range exprNames {
		var v any = 0.0
		if i < len(inputs) {
			v = inputs[i]
			if f, ok := toFloat(v); ok {
				v = f
			}
		}
		env[name] = v
	}

	return env
}

// Expr compiles an expression over the inputs. The first four inputs are
// bound to x, y, z and w, all of them to args. If the expression fails at
// run time the interpolator yields nil.
//
//	scale, err := interp.Expr("1 + x * 0.5")
func Expr(source string) (Func, error) {
	program, err := expr.Compile(source, expr.Env(exprEnv(nil)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExpression, err)
	}

	return exprFunc(program), nil
}

func exprFunc(program *vm.Program) Func {
	return func(inputs ...any) any {
		out, err := expr.Run(program, exprEnv(inputs))
		if err != nil {
			return nil
		}

		if f, ok := toFloat(out); ok {
			return f
		}
		return out
	}
}
