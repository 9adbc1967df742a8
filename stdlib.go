// stdlib.go — shared plumbing for the built-in modules (stdlib_*.go).
//
// Module functions receive the flat tuple of call arguments; these helpers
// pick positional arguments apart and enforce kinds with BuiltinError
// messages.
package olojs

func argAt(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Nothing
}

func wantNumber(op string, v Value) (float64, error) {
	if v.Kind() != VTNumber {
		return 0, builtinErr(op, v)
	}
	return v.Data.(float64), nil
}

func wantString(op string, v Value) (string, error) {
	if v.Kind() != VTString {
		return "", builtinErr(op, v)
	}
	return v.Data.(string), nil
}

func wantList(op string, v Value) ([]Value, error) {
	if v.Kind() != VTList {
		return nil, builtinErr(op, v)
	}
	return v.Data.([]Value), nil
}

// moduleNS builds a namespace from name/value pairs, preserving order.
func moduleNS(pairs ...any) *Namespace {
	ns := NewNamespace()
	for i := 0; i+1 < len(pairs); i += 2 {
		ns.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return ns
}
