// stdlib_text.go — the 'text' module.
package olojs

import (
	"context"
	"strings"
)

func textFn1(name string, f func(string) string) Value {
	return NativeFn(name, func(_ context.Context, args []Value) (Value, error) {
		s, err := wantString("text."+name, tupleOf(args))
		if err != nil {
			return Nothing, err
		}
		return String(f(s)), nil
	})
}

func textModule() Value {
	return NamespaceVal(moduleNS(
		"lower", textFn1("lower", strings.ToLower),
		"upper", textFn1("upper", strings.ToUpper),
		"trim", textFn1("trim", strings.TrimSpace),
		"trimHead", textFn1("trimHead", func(s string) string {
			return strings.TrimLeft(s, " \t\r\n")
		}),
		"trimTail", textFn1("trimTail", func(s string) string {
			return strings.TrimRight(s, " \t\r\n")
		}),
		"find", NativeFn("find", func(_ context.Context, args []Value) (Value, error) {
			s, err := wantString("text.find", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			sub, err := wantString("text.find", argAt(args, 1))
			if err != nil {
				return Nothing, err
			}
			return Number(float64(strings.Index(s, sub))), nil
		}),
		"split", NativeFn("split", func(_ context.Context, args []Value) (Value, error) {
			s, err := wantString("text.split", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			sep, err := wantString("text.split", argAt(args, 1))
			if err != nil {
				return Nothing, err
			}
			parts := strings.Split(s, sep)
			out := make([]Value, len(parts))
			for i, part := range parts {
				out[i] = String(part)
			}
			return List(out), nil
		}),
		"replace", NativeFn("replace", func(_ context.Context, args []Value) (Value, error) {
			s, err := wantString("text.replace", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			old, err := wantString("text.replace", argAt(args, 1))
			if err != nil {
				return Nothing, err
			}
			new, err := wantString("text.replace", argAt(args, 2))
			if err != nil {
				return Nothing, err
			}
			return String(strings.ReplaceAll(s, old, new)), nil
		}),
		"head", NativeFn("head", func(_ context.Context, args []Value) (Value, error) {
			s, err := wantString("text.head", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			runes := []rune(s)
			lo, hi := sliceBounds(Number(0), argAt(args, 1), len(runes))
			return String(string(runes[lo:hi])), nil
		}),
		"tail", NativeFn("tail", func(_ context.Context, args []Value) (Value, error) {
			s, err := wantString("text.tail", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			runes := []rune(s)
			lo, hi := sliceBounds(argAt(args, 1), Number(float64(len(runes))), len(runes))
			return String(string(runes[lo:hi])), nil
		}),
	))
}
