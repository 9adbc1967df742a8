// ops.go — polymorphic binary operators and the tuple-lifting combinator.
//
// Every arithmetic operator behaves uniformly: the operands are viewed as
// tuples, zipped pairwise (a scalar is a 1-tuple, Nothing pads the shorter
// side), the scalar operation is applied to each pair, and the result is
// flattened and normalized. Comparison operators are NOT lifted — they
// compare tuples lexicographically and return a single boolean (see
// value.go).
//
// Each scalar operation dispatches on the pair of kinds; every combination
// outside its table aborts with an OperatorError naming the two kinds and
// the operator.
package olojs

import (
	"math"
	"strings"
)

// lift zips the operand tuples and applies f pairwise, normalizing the
// result. Implemented once; every lifted operator goes through here.
func lift(f func(a, b Value) Value, x, y Value) Value {
	xs, ys := spread(x), spread(y)
	n := len(xs)
	if len(ys) > n {
		n = len(ys)
	}
	out := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		a, b := Nothing, Nothing
		if i < len(xs) {
			a = xs[i]
		}
		if i < len(ys) {
			b = ys[i]
		}
		out = append(out, f(a, b))
	}
	return tupleOf(flatten(out...))
}

func opAdd(a, b Value) Value {
	if isNothing(a) {
		return b
	}
	if isNothing(b) {
		return a
	}
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case VTBoolean:
			return Boolean(a.Data.(bool) || b.Data.(bool))
		case VTNumber:
			return Number(a.Data.(float64) + b.Data.(float64))
		case VTString:
			return String(a.Data.(string) + b.Data.(string))
		case VTList:
			av, bv := a.Data.([]Value), b.Data.([]Value)
			out := make([]Value, 0, len(av)+len(bv))
			out = append(out, av...)
			out = append(out, bv...)
			return List(out)
		case VTNamespace:
			return NamespaceVal(mergeNamespaces(a.Data.(*Namespace), b.Data.(*Namespace)))
		}
	}
	failOp("Sum", a, b)
	return Nothing
}

func opSub(a, b Value) Value {
	if isNothing(a) {
		return Nothing
	}
	if isNothing(b) {
		return a
	}
	if a.Kind() == VTNumber && b.Kind() == VTNumber {
		return Number(a.Data.(float64) - b.Data.(float64))
	}
	failOp("Difference", a, b)
	return Nothing
}

func opMul(a, b Value) Value {
	if isNothing(a) || isNothing(b) {
		return Nothing
	}
	ka, kb := a.Kind(), b.Kind()
	switch {
	case ka == VTBoolean && kb == VTBoolean:
		return Boolean(a.Data.(bool) && b.Data.(bool))
	case ka == VTNumber && kb == VTNumber:
		return Number(a.Data.(float64) * b.Data.(float64))
	case ka == VTNumber && kb == VTString:
		return String(repeatString(b.Data.(string), a.Data.(float64)))
	case ka == VTString && kb == VTNumber:
		return String(repeatString(a.Data.(string), b.Data.(float64)))
	case ka == VTNumber && kb == VTList:
		return List(repeatList(b.Data.([]Value), a.Data.(float64)))
	case ka == VTList && kb == VTNumber:
		return List(repeatList(a.Data.([]Value), b.Data.(float64)))
	}
	failOp("Product", a, b)
	return Nothing
}

func opDiv(a, b Value) Value {
	if isNothing(a) {
		return Nothing
	}
	if a.Kind() == VTNumber && b.Kind() == VTNumber {
		// division by zero yields infinity per IEEE-754
		return Number(a.Data.(float64) / b.Data.(float64))
	}
	failOp("Quotient", a, b)
	return Nothing
}

func opMod(a, b Value) Value {
	if isNothing(a) {
		return b
	}
	if a.Kind() == VTNumber && b.Kind() == VTNumber {
		return Number(math.Mod(a.Data.(float64), b.Data.(float64)))
	}
	failOp("Remainder", a, b)
	return Nothing
}

func opPow(a, b Value) Value {
	if isNothing(a) {
		return Nothing
	}
	if a.Kind() == VTNumber && b.Kind() == VTNumber {
		return Number(math.Pow(a.Data.(float64), b.Data.(float64)))
	}
	failOp("Exponentiation", a, b)
	return Nothing
}

// mergeNamespaces is right-biased on key collisions; the left operand's
// key order wins, right-only keys follow.
func mergeNamespaces(a, b *Namespace) *Namespace {
	out := NewNamespace()
	for _, k := range a.Keys() {
		v, _ := a.Get(k)
		out.Set(k, v)
	}
	for _, k := range b.Keys() {
		v, _ := b.Get(k)
		out.Set(k, v)
	}
	return out
}

// repeatString repeats s count times, truncating the count toward zero;
// a negative count yields the empty string.
func repeatString(s string, count float64) string {
	n := int(math.Trunc(count))
	if n <= 0 || s == "" {
		return ""
	}
	return strings.Repeat(s, n)
}

func repeatList(items []Value, count float64) []Value {
	n := int(math.Trunc(count))
	if n <= 0 {
		return []Value{}
	}
	out := make([]Value, 0, n*len(items))
	for i := 0; i < n; i++ {
		out = append(out, items...)
	}
	return out
}
