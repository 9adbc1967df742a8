// builtins.go — the intrinsic surface of the default root scope.
//
// The callable built-ins are ordinary Function values (natives) and TRUE /
// FALSE are plain Boolean values, so host globals shadow them and programs
// can pass them around like any other value.
package olojs

import (
	"context"
	"fmt"
	"math"
)

func builtinErr(op string, v Value) error {
	return &EvalError{Kind: BuiltinError, Msg: fmt.Sprintf("%s not defined for %s", op, v.Kind())}
}

func installBuiltins(root *Scope) {
	root.Define("TRUE", Boolean(true))
	root.Define("FALSE", Boolean(false))

	reg := func(name string, fn NativeFunc) { root.Define(name, NativeFn(name, fn)) }

	reg("bool", func(_ context.Context, args []Value) (Value, error) {
		return Boolean(truthy(tupleOf(args))), nil
	})

	reg("not", func(_ context.Context, args []Value) (Value, error) {
		return Boolean(!truthy(tupleOf(args))), nil
	})

	reg("str", func(_ context.Context, args []Value) (Value, error) {
		return String(strValue(tupleOf(args))), nil
	})

	reg("size", func(_ context.Context, args []Value) (Value, error) {
		v := tupleOf(args)
		switch v.Kind() {
		case VTString:
			return Number(float64(len([]rune(v.Data.(string))))), nil
		case VTList:
			return Number(float64(len(v.Data.([]Value)))), nil
		case VTNamespace:
			return Number(float64(v.Data.(*Namespace).Len())), nil
		}
		return Nothing, builtinErr("size", v)
	})

	reg("range", func(_ context.Context, args []Value) (Value, error) {
		v := tupleOf(args)
		if v.Kind() != VTNumber {
			return Nothing, builtinErr("range", v)
		}
		f := math.Trunc(v.Data.(float64))
		if f == 0 {
			return Nothing, nil
		}
		if math.IsInf(f, 0) || math.Abs(f) > 1<<31 {
			return Nothing, &EvalError{Kind: BuiltinError, Msg: "range bound too large"}
		}
		n := int(f)
		step := 1
		if n < 0 {
			step = -1
			n = -n
		}
		out := make([]Value, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, Number(float64(step*i)))
		}
		return tupleOf(out), nil
	})

	reg("enum", func(_ context.Context, args []Value) (Value, error) {
		v := tupleOf(args)
		switch v.Kind() {
		case VTNamespace:
			ns := v.Data.(*Namespace)
			out := make([]Value, 0, ns.Len())
			for _, k := range ns.Keys() {
				item, _ := ns.Get(k)
				rec := NewNamespace()
				rec.Set("name", String(k))
				rec.Set("value", item)
				out = append(out, NamespaceVal(rec))
			}
			return tupleOf(out), nil
		case VTList:
			items := v.Data.([]Value)
			out := make([]Value, 0, len(items))
			for i, item := range items {
				rec := NewNamespace()
				rec.Set("index", Number(float64(i)))
				rec.Set("value", item)
				out = append(out, NamespaceVal(rec))
			}
			return tupleOf(out), nil
		case VTString:
			runes := []rune(v.Data.(string))
			out := make([]Value, 0, len(runes))
			for i, r := range runes {
				rec := NewNamespace()
				rec.Set("index", Number(float64(i)))
				rec.Set("value", String(string(r)))
				out = append(out, NamespaceVal(rec))
			}
			return tupleOf(out), nil
		}
		return Nothing, builtinErr("enum", v)
	})

	reg("type", func(_ context.Context, args []Value) (Value, error) {
		return String(tupleOf(args).Kind().String()), nil
	})

	reg("map", func(_ context.Context, args []Value) (Value, error) {
		f := tupleOf(args)
		if f.Tag != VTFunction {
			return Nothing, builtinErr("map", f)
		}
		mapped := func(ctx context.Context, items []Value) (Value, error) {
			out := make([]Value, 0, len(items))
			for _, item := range items {
				out = append(out, applyValue(ctx, f, item))
			}
			return tupleOf(flatten(out...)), nil
		}
		return NativeFn("mapped", mapped), nil
	})
}
