// value.go — the swan runtime value model.
//
// Values form a closed tagged universe: Nothing, Boolean, Number, String,
// List, Namespace, Function and Tuple. Every value has exactly one tag; the
// tag determines which Go type Data holds:
//
//	VTNothing   — nil
//	VTBoolean   — bool
//	VTNumber    — float64 (IEEE-754 double)
//	VTString    — string
//	VTList      — []Value
//	VTNamespace — *Namespace (ordered, owned-key-only lookup)
//	VTFunction  — *Func (host native or swan closure)
//	VTTuple     — []Value, flat and free of Nothing, length ≥ 2
//
// Classification (Kind) maps a NaN Number to Nothing. Tuples exist only in
// normalized form: construction flattens eagerly, drops Nothing, and
// reduces length 0 to Nothing and length 1 to the sole element, so a
// length-0 or length-1 tuple is never observable.
package olojs

import (
	"context"
	"math"
	"strconv"
	"strings"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNothing ValueTag = iota
	VTBoolean
	VTNumber
	VTString
	VTList
	VTNamespace
	VTFunction
	VTTuple
)

func (t ValueTag) String() string {
	switch t {
	case VTNothing:
		return "Nothing"
	case VTBoolean:
		return "Boolean"
	case VTNumber:
		return "Number"
	case VTString:
		return "String"
	case VTList:
		return "List"
	case VTNamespace:
		return "Namespace"
	case VTFunction:
		return "Function"
	case VTTuple:
		return "Tuple"
	default:
		return "Unknown"
	}
}

// Value is the universal runtime carrier.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nothing is the singleton absent value, equal to the empty tuple.
var Nothing = Value{Tag: VTNothing}

// Primitive constructors.
func Boolean(b bool) Value  { return Value{Tag: VTBoolean, Data: b} }
func Number(f float64) Value { return Value{Tag: VTNumber, Data: f} }
func String(s string) Value  { return Value{Tag: VTString, Data: s} }
func List(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Tag: VTList, Data: items}
}

// Kind classifies the value: the tag, except that a NaN Number is Nothing.
func (v Value) Kind() ValueTag {
	if v.Tag == VTNumber && math.IsNaN(v.Data.(float64)) {
		return VTNothing
	}
	return v.Tag
}

// isNothing reports whether the value is observably absent: Nothing itself,
// a numeric not-a-number, or a tuple that normalizes to Nothing.
func isNothing(v Value) bool {
	if v.Tag == VTTuple {
		return len(v.Data.([]Value)) == 0
	}
	return v.Kind() == VTNothing
}

// truthy is the truth predicate used by bool, '|', '&' and '?'.
func truthy(v Value) bool {
	switch v.Tag {
	case VTNothing:
		return false
	case VTBoolean:
		return v.Data.(bool)
	case VTNumber:
		f := v.Data.(float64)
		return f != 0 && !math.IsNaN(f)
	case VTString:
		return len(v.Data.(string)) > 0
	case VTList:
		return len(v.Data.([]Value)) > 0
	case VTNamespace:
		return v.Data.(*Namespace).Len() > 0
	case VTFunction:
		return true
	case VTTuple:
		for _, item := range v.Data.([]Value) {
			if truthy(item) {
				return true
			}
		}
		return false
	}
	return false
}

// ----- identifiers -----

// isName is the single legality predicate for identifiers, applied during
// parsing and at every point a string is used as a lookup key.
func isName(s string) bool {
	if s == "" || !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isAlphaNum(s[i]) {
			return false
		}
	}
	return true
}

// ----- namespaces -----

// Reserved namespace hooks.
const (
	applyHook = "__apply__"
	strHook   = "__str__"
)

// Namespace maps legal identifiers to values, preserving insertion order.
// Lookup only ever sees entries the namespace genuinely owns.
type Namespace struct {
	entries map[string]Value
	keys    []string
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{entries: map[string]Value{}}
}

// NamespaceVal wraps a *Namespace into a Value.
func NamespaceVal(ns *Namespace) Value { return Value{Tag: VTNamespace, Data: ns} }

// Set binds name to v, appending name to the key order if new. Names that
// fail the identifier whitelist are silently refused.
func (ns *Namespace) Set(name string, v Value) {
	if !isName(name) {
		return
	}
	if _, ok := ns.entries[name]; !ok {
		ns.keys = append(ns.keys, name)
	}
	ns.entries[name] = v
}

// Get returns the owned entry for name. Illegal identifiers never resolve.
func (ns *Namespace) Get(name string) (Value, bool) {
	if !isName(name) {
		return Nothing, false
	}
	v, ok := ns.entries[name]
	if !ok {
		return Nothing, false
	}
	return v, true
}

// Keys returns the owned identifiers in insertion order.
func (ns *Namespace) Keys() []string { return ns.keys }

// Len returns the owned identifier count.
func (ns *Namespace) Len() int { return len(ns.keys) }

// ----- functions -----

// NativeFunc is the signature of host-supplied callables. It receives the
// flat tuple of argument values; a returned error aborts the evaluation and
// propagates to the host untouched. The context is the evaluation's context
// and is the only suspension point of a run.
type NativeFunc func(ctx context.Context, args []Value) (Value, error)

// Func is a callable value: either a swan closure (params/body/captured
// scope) or a host native.
type Func struct {
	params S
	body   S
	scope  *Scope

	native NativeFunc
	name   string // diagnostic name for natives
}

// FuncVal wraps a *Func into a Value.
func FuncVal(f *Func) Value { return Value{Tag: VTFunction, Data: f} }

// NativeFn builds a callable Value around a host function. Hosts place these
// in the root scope (or inside namespaces) to expose behavior to programs.
func NativeFn(name string, fn NativeFunc) Value {
	return FuncVal(&Func{native: fn, name: name})
}

// ----- tuples -----

// flatten concatenates values into a flat element slice: tuples spread,
// Nothing (and anything classifying as Nothing) is dropped.
func flatten(vs ...Value) []Value {
	var out []Value
	for _, v := range vs {
		if v.Tag == VTTuple {
			out = append(out, v.Data.([]Value)...)
			continue
		}
		if isNothing(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// tupleOf normalizes a flat element slice into a value: length 0 is
// Nothing, length 1 is the element, otherwise a Tuple.
func tupleOf(items []Value) Value {
	switch len(items) {
	case 0:
		return Nothing
	case 1:
		return items[0]
	default:
		return Value{Tag: VTTuple, Data: items}
	}
}

// NewTuple builds the normalized tuple of the given values, flattening
// nested tuples and dropping Nothing.
func NewTuple(vs ...Value) Value { return tupleOf(flatten(vs...)) }

// spread views a value as its tuple elements: Nothing spreads to no
// elements, a tuple to its items, anything else to itself.
func spread(v Value) []Value {
	if v.Tag == VTTuple {
		return v.Data.([]Value)
	}
	if isNothing(v) {
		return nil
	}
	return []Value{v}
}

// ----- comparison and equality -----

// compareValues returns -1, 0 or +1. Operands are compared as tuples,
// lexicographically element-wise with Nothing filling the shorter side.
// Undefined kind pairs abort with an OperatorError.
func compareValues(x, y Value) int {
	xs, ys := spread(x), spread(y)
	n := len(xs)
	if len(ys) > n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		a, b := Nothing, Nothing
		if i < len(xs) {
			a = xs[i]
		}
		if i < len(ys) {
			b = ys[i]
		}
		if c := compareScalar(a, b); c != 0 {
			return c
		}
	}
	return 0
}

// compareScalar orders two non-tuple values. Nothing is strictly less than
// anything else; otherwise both operands must share a kind.
func compareScalar(a, b Value) int {
	an, bn := isNothing(a), isNothing(b)
	switch {
	case an && bn:
		return 0
	case an:
		return -1
	case bn:
		return +1
	}
	if a.Kind() != b.Kind() {
		failOp("Comparison", a, b)
	}
	switch a.Kind() {
	case VTBoolean:
		av, bv := a.Data.(bool), b.Data.(bool)
		switch {
		case av == bv:
			return 0
		case bv:
			return -1
		default:
			return +1
		}
	case VTNumber:
		av, bv := a.Data.(float64), b.Data.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return +1
		default:
			return 0
		}
	case VTString:
		return strings.Compare(a.Data.(string), b.Data.(string))
	case VTList:
		av, bv := a.Data.([]Value), b.Data.([]Value)
		n := len(av)
		if len(bv) < n {
			n = len(bv)
		}
		for i := 0; i < n; i++ {
			if c := compareValues(av[i], bv[i]); c != 0 {
				return c
			}
		}
		switch {
		case len(av) < len(bv):
			return -1
		case len(av) > len(bv):
			return +1
		default:
			return 0
		}
	}
	failOp("Comparison", a, b)
	return 0
}

// equalValues implements '=='. Operands are compared as tuples,
// element-wise with Nothing padding; it never errors.
func equalValues(x, y Value) bool {
	xs, ys := spread(x), spread(y)
	n := len(xs)
	if len(ys) > n {
		n = len(ys)
	}
	for i := 0; i < n; i++ {
		a, b := Nothing, Nothing
		if i < len(xs) {
			a = xs[i]
		}
		if i < len(ys) {
			b = ys[i]
		}
		if !equalScalar(a, b) {
			return false
		}
	}
	return true
}

func equalScalar(a, b Value) bool {
	an, bn := isNothing(a), isNothing(b)
	if an || bn {
		return an == bn
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case VTBoolean:
		return a.Data.(bool) == b.Data.(bool)
	case VTNumber:
		return a.Data.(float64) == b.Data.(float64)
	case VTString:
		return a.Data.(string) == b.Data.(string)
	case VTList:
		av, bv := a.Data.([]Value), b.Data.([]Value)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValues(av[i], bv[i]) {
				return false
			}
		}
		return true
	case VTNamespace:
		av, bv := a.Data.(*Namespace), b.Data.(*Namespace)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			x, _ := av.Get(k)
			y, ok := bv.Get(k)
			if !ok || !equalValues(x, y) {
				return false
			}
		}
		return true
	case VTFunction:
		return a.Data.(*Func) == b.Data.(*Func)
	}
	return false
}

// ----- stringification -----

// strValue renders a value the way the 'str' built-in does.
func strValue(v Value) string {
	switch v.Tag {
	case VTNothing:
		return ""
	case VTBoolean:
		if v.Data.(bool) {
			return "TRUE"
		}
		return "FALSE"
	case VTNumber:
		return formatNumber(v.Data.(float64))
	case VTString:
		return v.Data.(string)
	case VTList:
		return "[[List of " + strconv.Itoa(len(v.Data.([]Value))) + " items]]"
	case VTNamespace:
		ns := v.Data.(*Namespace)
		if s, ok := ns.Get(strHook); ok && s.Tag == VTString {
			return s.Data.(string)
		}
		return "[[Namespace of " + strconv.Itoa(ns.Len()) + " items]]"
	case VTFunction:
		return "[[Function]]"
	case VTTuple:
		var b strings.Builder
		for _, item := range v.Data.([]Value) {
			b.WriteString(strValue(item))
		}
		return b.String()
	}
	return ""
}

// formatNumber renders the canonical decimal form: plain decimal notation
// in the human range, scientific outside it, NaN as the empty classification.
func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	if math.IsInf(f, +1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	abs := math.Abs(f)
	if f != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
