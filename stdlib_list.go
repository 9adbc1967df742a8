// stdlib_list.go — the 'list' module.
package olojs

import (
	"context"
	"math"
	"sort"
	"strings"
)

// sliceBounds clamps a begin/end pair to [0, length], counting negative
// positions from the end.
func sliceBounds(begin, end Value, length int) (int, int) {
	clamp := func(v Value, fallback int) int {
		if v.Kind() != VTNumber {
			return fallback
		}
		i := int(math.Trunc(v.Data.(float64)))
		if i < 0 {
			i += length
		}
		if i < 0 {
			return 0
		}
		if i > length {
			return length
		}
		return i
	}
	lo := clamp(begin, 0)
	hi := clamp(end, length)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func listModule() Value {
	return NamespaceVal(moduleNS(
		"find", NativeFn("find", func(_ context.Context, args []Value) (Value, error) {
			items, err := wantList("list.find", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			target := tupleOf(args[1:])
			for i, item := range items {
				if equalValues(item, target) {
					return Number(float64(i)), nil
				}
			}
			return Number(-1), nil
		}),
		"head", NativeFn("head", func(_ context.Context, args []Value) (Value, error) {
			items, err := wantList("list.head", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			lo, hi := sliceBounds(Number(0), argAt(args, 1), len(items))
			return List(append([]Value{}, items[lo:hi]...)), nil
		}),
		"tail", NativeFn("tail", func(_ context.Context, args []Value) (Value, error) {
			items, err := wantList("list.tail", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			lo, hi := sliceBounds(argAt(args, 1), Number(float64(len(items))), len(items))
			return List(append([]Value{}, items[lo:hi]...)), nil
		}),
		"slice", NativeFn("slice", func(_ context.Context, args []Value) (Value, error) {
			items, err := wantList("list.slice", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			lo, hi := sliceBounds(argAt(args, 1), argAt(args, 2), len(items))
			return List(append([]Value{}, items[lo:hi]...)), nil
		}),
		"join", NativeFn("join", func(_ context.Context, args []Value) (Value, error) {
			items, err := wantList("list.join", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			sep := ""
			if s := argAt(args, 1); s.Kind() == VTString {
				sep = s.Data.(string)
			}
			parts := make([]string, len(items))
			for i, item := range items {
				parts[i] = strValue(item)
			}
			return String(strings.Join(parts, sep)), nil
		}),
		"reverse", NativeFn("reverse", func(_ context.Context, args []Value) (Value, error) {
			items, err := wantList("list.reverse", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			out := make([]Value, len(items))
			for i, item := range items {
				out[len(items)-1-i] = item
			}
			return List(out), nil
		}),
		"sort", NativeFn("sort", func(_ context.Context, args []Value) (Value, error) {
			items, err := wantList("list.sort", argAt(args, 0))
			if err != nil {
				return Nothing, err
			}
			out := append([]Value{}, items...)
			sort.SliceStable(out, func(i, j int) bool { return compareValues(out[i], out[j]) < 0 })
			return List(out), nil
		}),
	))
}
