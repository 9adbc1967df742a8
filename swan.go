// swan.go — PUBLIC embedding surface of the swan expression language.
//
// OVERVIEW
// --------
// swan programs are single expressions. The host embeds the language with
// four primitives:
//
//   - Parse(source) — tokenize and parse into an immutable *Program. The
//     program is freely re-runnable and safe to share across goroutines.
//     Failures are *ParseError values with a 1-based source position;
//     WrapErrorWithSource (errors.go) renders them with a caret snippet.
//
//   - NewScope(globals) — a fresh root scope whose outer frame holds the
//     language's built-ins plus the caller-supplied globals (globals
//     shadow built-ins). Globals may include callable values built with
//     NativeFn — that is the host's injection point for I/O, module
//     loading (require) and anything else with side effects.
//
//   - (*Program).Evaluate(ctx, scope) — run the program in the scope and
//     return the normalized value. The scope's innermost frame may be
//     mutated by labelling/assignment forms; a scope is owned by a single
//     evaluation at a time. Host callables receive ctx; if one reports
//     cancellation, the evaluation unwinds without further scope mutation
//     and the error surfaces here.
//
//   - Stringify(value) — the 'str' rendering of a value.
//
// Evaluation failures are returned as *EvalError (kind tag + message);
// errors raised by host callables keep their identity behind Unwrap.
package olojs

import "context"

// Program is an immutable, re-runnable parsed expression.
type Program struct {
	tree S
	src  string
}

// Parse produces a Program from source text.
func Parse(source string) (*Program, error) {
	tree, err := ParseSExpr(source)
	if err != nil {
		return nil, err
	}
	return &Program{tree: tree, src: source}, nil
}

// Source returns the text the program was parsed from.
func (p *Program) Source() string { return p.src }

// Evaluate runs the program in the given scope and returns the normalized
// resulting value.
func (p *Program) Evaluate(ctx context.Context, scope *Scope) (out Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ee, ok := r.(*EvalError); ok {
				out, err = Nothing, ee
				return
			}
			panic(r)
		}
	}()
	return evalNode(ctx, p.tree, scope), nil
}

// EvalSource parses and evaluates source in one step.
func EvalSource(ctx context.Context, source string, scope *Scope) (Value, error) {
	p, err := Parse(source)
	if err != nil {
		return Nothing, err
	}
	return p.Evaluate(ctx, scope)
}

// Stringify applies the 'str' rendering to a value.
func Stringify(v Value) string { return strValue(v) }
