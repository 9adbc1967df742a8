// eval.go — the tree evaluator.
//
// One case per handler named by the parser. Evaluation is a plain
// left-to-right tree walk: the left operand of a binary node is fully
// evaluated before the right begins, and the short-circuit operators skip
// their right operand when the left determines the result. The only
// suspension points of a run are host-callable invocations, which receive
// the evaluation's context; pure arithmetic and traversal never block.
//
// Failures are signalled by panic(*EvalError) and recovered once at the
// public Evaluate boundary (swan.go). A failing subexpression aborts the
// evaluation; scope frames mutated before the failure remain mutated.
package olojs

import (
	"context"
	"errors"
	"math"
)

func evalNode(ctx context.Context, n S, sc *Scope) Value {
	switch n[0].(string) {
	case "nothing":
		return Nothing
	case "num":
		return Number(n[1].(float64))
	case "str1", "str2", "str3":
		return String(n[1].(string))
	case "name":
		return sc.Get(n[1].(string))

	case "pair":
		l := evalNode(ctx, n[1].(S), sc)
		r := evalNode(ctx, n[2].(S), sc)
		return NewTuple(l, r)

	case "add":
		return evalLifted(ctx, n, sc, opAdd)
	case "sub":
		return evalLifted(ctx, n, sc, opSub)
	case "mul":
		return evalLifted(ctx, n, sc, opMul)
	case "div":
		return evalLifted(ctx, n, sc, opDiv)
	case "mod":
		return evalLifted(ctx, n, sc, opMod)
	case "pow":
		return evalLifted(ctx, n, sc, opPow)

	case "eq":
		l := evalNode(ctx, n[1].(S), sc)
		r := evalNode(ctx, n[2].(S), sc)
		return Boolean(equalValues(l, r))
	case "ne":
		l := evalNode(ctx, n[1].(S), sc)
		r := evalNode(ctx, n[2].(S), sc)
		return Boolean(!equalValues(l, r))
	case "lt":
		return Boolean(evalCompare(ctx, n, sc) < 0)
	case "le":
		return Boolean(evalCompare(ctx, n, sc) <= 0)
	case "gt":
		return Boolean(evalCompare(ctx, n, sc) > 0)
	case "ge":
		return Boolean(evalCompare(ctx, n, sc) >= 0)

	case "or":
		l := evalNode(ctx, n[1].(S), sc)
		if truthy(l) {
			return l
		}
		return evalNode(ctx, n[2].(S), sc)
	case "and":
		l := evalNode(ctx, n[1].(S), sc)
		if truthy(l) {
			return evalNode(ctx, n[2].(S), sc)
		}
		return l
	case "if":
		l := evalNode(ctx, n[1].(S), sc)
		if truthy(l) {
			return evalNode(ctx, n[2].(S), sc)
		}
		return Nothing
	case "else":
		l := evalNode(ctx, n[1].(S), sc)
		if isNothing(l) {
			return evalNode(ctx, n[2].(S), sc)
		}
		return l

	case "label":
		v := evalNode(ctx, n[2].(S), sc)
		bindNames(sc, lvalNames(n[1].(S), "':'"), spread(v))
		return v
	case "set":
		v := evalNode(ctx, n[2].(S), sc)
		bindNames(sc, lvalNames(n[1].(S), "'='"), spread(v))
		return Nothing

	case "def":
		return FuncVal(&Func{params: n[1].(S), body: n[2].(S), scope: sc})

	case "apply":
		x := evalNode(ctx, n[1].(S), sc)
		y := evalNode(ctx, n[2].(S), sc)
		return applyValue(ctx, x, y)

	case "dot":
		x := evalNode(ctx, n[1].(S), sc)
		if x.Tag == VTTuple {
			items := x.Data.([]Value)
			out := make([]Value, 0, len(items))
			for _, item := range items {
				out = append(out, evalDot(ctx, item, n[2].(S), sc))
			}
			return tupleOf(flatten(out...))
		}
		return evalDot(ctx, x, n[2].(S), sc)

	case "ns":
		child := sc.Child()
		if len(n) > 1 {
			evalNode(ctx, n[1].(S), child)
		}
		ns := NewNamespace()
		for _, k := range child.names() {
			ns.Set(k, child.table[k])
		}
		return NamespaceVal(ns)

	case "list":
		if len(n) == 1 {
			return List(nil)
		}
		v := evalNode(ctx, n[1].(S), sc)
		return List(flatten(v))
	}

	fail(OperatorError, "unknown handler: "+n[0].(string))
	return Nothing
}

func evalLifted(ctx context.Context, n S, sc *Scope, f func(a, b Value) Value) Value {
	l := evalNode(ctx, n[1].(S), sc)
	r := evalNode(ctx, n[2].(S), sc)
	return lift(f, l, r)
}

func evalCompare(ctx context.Context, n S, sc *Scope) int {
	l := evalNode(ctx, n[1].(S), sc)
	r := evalNode(ctx, n[2].(S), sc)
	return compareValues(l, r)
}

// ----- labelling and assignment -----

// lvalNames evaluates the left side of ':'/'=' in restricted mode:
// identifiers resolve to their own name symbol, pair and parenthesis are
// honored, anything else is an error.
func lvalNames(n S, op string) []string {
	switch n[0].(string) {
	case "name":
		return []string{n[1].(string)}
	case "pair":
		return append(lvalNames(n[1].(S), op), lvalNames(n[2].(S), op)...)
	case "nothing":
		return nil
	}
	fail(OperatorError, "names expected on the left of "+op)
	return nil
}

// bindNames binds each name to the corresponding value in the current
// frame: trailing names bind to Nothing when values run out; the last name
// collects the tuple of all remaining values when they overrun.
func bindNames(sc *Scope, names []string, vals []Value) {
	for i, name := range names {
		switch {
		case i == len(names)-1 && len(vals) > len(names):
			sc.Define(name, tupleOf(vals[i:]))
		case i < len(vals):
			sc.Define(name, vals[i])
		default:
			sc.Define(name, Nothing)
		}
	}
}

// ----- application -----

// applyValue realizes the juxtaposition operator X Y, dispatching on the
// kind of X.
func applyValue(ctx context.Context, x, y Value) Value {
	switch x.Tag {
	case VTFunction:
		return callFunc(ctx, x.Data.(*Func), flatten(y))

	case VTString:
		s := []rune(x.Data.(string))
		i, ok := indexOf(y, len(s))
		if !ok {
			return String("")
		}
		return String(string(s[i]))

	case VTList:
		items := x.Data.([]Value)
		i, ok := indexOf(y, len(items))
		if !ok {
			return Nothing
		}
		return items[i]

	case VTNamespace:
		ns := x.Data.(*Namespace)
		if h, ok := ns.Get(applyHook); ok && h.Tag == VTFunction {
			return callFunc(ctx, h.Data.(*Func), flatten(y))
		}
		if y.Kind() == VTString {
			if v, ok := ns.Get(y.Data.(string)); ok {
				return v
			}
		}
		return Nothing

	case VTTuple:
		items := x.Data.([]Value)
		out := make([]Value, 0, len(items))
		for _, item := range items {
			out = append(out, applyValue(ctx, item, y))
		}
		return tupleOf(flatten(out...))
	}

	failOp1(ApplicationError, "Application", x)
	return Nothing
}

// indexOf turns an index value into a 0-based position: floor of the
// number, negative indices counting from the end. Reports false for
// non-Number indices and out-of-range positions.
func indexOf(y Value, length int) (int, bool) {
	if y.Kind() != VTNumber {
		return 0, false
	}
	i := int(math.Floor(y.Data.(float64)))
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

// callFunc invokes a callable with the flat tuple of argument values.
// Natives are the evaluator's only suspension points: the context is
// checked before the call and cancellation surfaces as the evaluation's
// outcome without further scope mutation.
func callFunc(ctx context.Context, f *Func, args []Value) Value {
	if f.native != nil {
		if err := ctx.Err(); err != nil {
			panic(hostError(err))
		}
		v, err := f.native(ctx, args)
		if err != nil {
			var ee *EvalError
			if errors.As(err, &ee) {
				panic(ee)
			}
			panic(hostError(err))
		}
		return v
	}

	fresh := f.scope.Child()
	bindNames(fresh, lvalNames(f.params, "'->'"), args)
	return evalNode(ctx, f.body, fresh)
}

// evalDot realizes subcontexting X.Y: Y runs in a child context whose
// innermost frame holds X's entries, shadowing the outer context.
func evalDot(ctx context.Context, x Value, body S, sc *Scope) Value {
	if x.Tag != VTNamespace {
		fail(DotError, "namespace expected on the left of '.'")
	}
	ns := x.Data.(*Namespace)
	child := sc.Child()
	for _, k := range ns.Keys() {
		v, _ := ns.Get(k)
		child.Define(k, v)
	}
	return evalNode(ctx, body, child)
}
