// stdlib_path.go — the 'path' module: operations over document paths.
package olojs

import (
	"context"
	"path"
)

func pathFn1(name string, f func(string) string) Value {
	return NativeFn(name, func(_ context.Context, args []Value) (Value, error) {
		s, err := wantString("path."+name, tupleOf(args))
		if err != nil {
			return Nothing, err
		}
		return String(f(s)), nil
	})
}

func pathModule() Value {
	return NamespaceVal(moduleNS(
		"dir", pathFn1("dir", path.Dir),
		"base", pathFn1("base", path.Base),
		"ext", pathFn1("ext", path.Ext),
		"normalize", pathFn1("normalize", NormalizePath),
		"join", NativeFn("join", func(_ context.Context, args []Value) (Value, error) {
			parts := make([]string, 0, len(args))
			for _, v := range args {
				s, err := wantString("path.join", v)
				if err != nil {
					return Nothing, err
				}
				parts = append(parts, s)
			}
			return String(path.Join(parts...)), nil
		}),
	))
}
