// stdlib_markdown.go — the 'markdown' module.
//
// The module is itself applicable: `require 'markdown' "# title"` renders
// through the namespace's __apply__ hook.
package olojs

import (
	"context"

	"github.com/russross/blackfriday/v2"
)

func markdownModule() Value {
	render := NativeFn("markdown", func(_ context.Context, args []Value) (Value, error) {
		s, err := wantString("markdown", tupleOf(args))
		if err != nil {
			return Nothing, err
		}
		return String(string(blackfriday.Run([]byte(s)))), nil
	})
	return NamespaceVal(moduleNS(
		applyHook, render,
		"render", render,
	))
}
