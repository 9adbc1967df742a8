// modules.go — the host-side module loader behind the 'require' binding.
//
// swan itself has no module system; the host injects one. The Loader
// resolves a module id against the built-in registry first (math, list,
// text, json, path, markdown, http), then against an optional Store of
// swan documents. Successful loads are cached by canonical id; import
// cycles are detected through the in-progress load stack and reported as
// a chain.
package olojs

import (
	"context"
	"fmt"
	"strings"
)

// stdModules is the registry of built-in modules, constructed on demand.
var stdModules = map[string]func() Value{
	"math":     mathModule,
	"list":     listModule,
	"text":     textModule,
	"json":     jsonModule,
	"path":     pathModule,
	"markdown": markdownModule,
	"http":     httpModule,
}

// Loader resolves 'require' calls. A nil store limits resolution to the
// built-in registry.
type Loader struct {
	store Store
	cache map[string]Value
	stack []string
}

// NewLoader returns a loader backed by store (which may be nil).
func NewLoader(store Store) *Loader {
	return &Loader{store: store, cache: map[string]Value{}}
}

// Require returns the callable to install as the 'require' global.
func (ld *Loader) Require() Value {
	return NativeFn("require", func(ctx context.Context, args []Value) (Value, error) {
		id := tupleOf(args)
		if id.Kind() != VTString {
			return Nothing, builtinErr("require", id)
		}
		return ld.load(ctx, id.Data.(string))
	})
}

// Globals returns the root-scope bindings a document host installs:
// currently just 'require'.
func (ld *Loader) Globals() map[string]Value {
	return map[string]Value{"require": ld.Require()}
}

func (ld *Loader) load(ctx context.Context, id string) (Value, error) {
	if builder, ok := stdModules[strings.TrimSpace(id)]; ok {
		key := strings.TrimSpace(id)
		if v, ok := ld.cache[key]; ok {
			return v, nil
		}
		v := builder()
		ld.cache[key] = v
		return v, nil
	}

	if ld.store == nil {
		return Nothing, fmt.Errorf("unknown module: %s", id)
	}

	key := NormalizePath(id)
	if v, ok := ld.cache[key]; ok {
		return v, nil
	}
	for _, inProgress := range ld.stack {
		if inProgress == key {
			return Nothing, fmt.Errorf("import cycle detected: %s -> %s",
				strings.Join(ld.stack, " -> "), key)
		}
	}

	src, err := ld.store.Read(ctx, key)
	if err != nil {
		return Nothing, fmt.Errorf("require %s: %w", key, err)
	}
	doc, err := ParseDocument(src)
	if err != nil {
		return Nothing, fmt.Errorf("parse error in %s: %w", key, err)
	}

	ld.stack = append(ld.stack, key)
	defer func() { ld.stack = ld.stack[:len(ld.stack)-1] }()

	v, err := doc.Evaluate(ctx, NewScope(ld.Globals()))
	if err != nil {
		return Nothing, fmt.Errorf("runtime error in %s: %w", key, err)
	}
	ld.cache[key] = v
	return v, nil
}
