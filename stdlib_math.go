// stdlib_math.go — the 'math' module.
package olojs

import (
	"context"
	"math"
)

func mathFn1(name string, f func(float64) float64) Value {
	return NativeFn(name, func(_ context.Context, args []Value) (Value, error) {
		x, err := wantNumber("math."+name, tupleOf(args))
		if err != nil {
			return Nothing, err
		}
		return Number(f(x)), nil
	})
}

func mathModule() Value {
	fold := func(name string, pick func(a, b float64) float64) Value {
		return NativeFn(name, func(_ context.Context, args []Value) (Value, error) {
			if len(args) == 0 {
				return Nothing, nil
			}
			acc, err := wantNumber("math."+name, args[0])
			if err != nil {
				return Nothing, err
			}
			for _, v := range args[1:] {
				x, err := wantNumber("math."+name, v)
				if err != nil {
					return Nothing, err
				}
				acc = pick(acc, x)
			}
			return Number(acc), nil
		})
	}

	return NamespaceVal(moduleNS(
		"E", Number(math.E),
		"PI", Number(math.Pi),
		"abs", mathFn1("abs", math.Abs),
		"ceil", mathFn1("ceil", math.Ceil),
		"floor", mathFn1("floor", math.Floor),
		"round", mathFn1("round", math.Round),
		"trunc", mathFn1("trunc", math.Trunc),
		"exp", mathFn1("exp", math.Exp),
		"log", mathFn1("log", math.Log),
		"log10", mathFn1("log10", math.Log10),
		"sqrt", mathFn1("sqrt", math.Sqrt),
		"sin", mathFn1("sin", math.Sin),
		"cos", mathFn1("cos", math.Cos),
		"tan", mathFn1("tan", math.Tan),
		"asin", mathFn1("asin", math.Asin),
		"acos", mathFn1("acos", math.Acos),
		"atan", mathFn1("atan", math.Atan),
		"max", fold("max", math.Max),
		"min", fold("min", math.Min),
	))
}
