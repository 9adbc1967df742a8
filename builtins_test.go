package olojs

import "testing"

func Test_Builtin_BoolNot(t *testing.T) {
	wantBool(t, evalSrc(t, "bool 1"), true)
	wantBool(t, evalSrc(t, "bool ''"), false)
	wantBool(t, evalSrc(t, "bool ()"), false)
	wantBool(t, evalSrc(t, "bool (0, 1)"), true)
	wantBool(t, evalSrc(t, "not 0"), true)
	wantBool(t, evalSrc(t, "not 'x'"), false)
	wantBool(t, evalSrc(t, "TRUE"), true)
	wantBool(t, evalSrc(t, "FALSE"), false)
}

func Test_Builtin_Str(t *testing.T) {
	wantStr(t, evalSrc(t, "str ()"), "")
	wantStr(t, evalSrc(t, "str TRUE"), "TRUE")
	wantStr(t, evalSrc(t, "str 42"), "42")
	wantStr(t, evalSrc(t, "str 'x'"), "x")
	wantStr(t, evalSrc(t, "str (1, ' and ', 2)"), "1 and 2")
	wantStr(t, evalSrc(t, "str {__str__ = 'me'}"), "me")
	wantStr(t, evalSrc(t, "str [1,2,3]"), "[[List of 3 items]]")
}

func Test_Builtin_Size(t *testing.T) {
	wantNum(t, evalSrc(t, "size 'abcd'"), 4)
	wantNum(t, evalSrc(t, "size [1,2,3]"), 3)
	wantNum(t, evalSrc(t, "size {a=1, b=2}"), 2)
	wantNum(t, evalSrc(t, "size ''"), 0)

	ee := evalErr(t, "size 42")
	if ee.Kind != BuiltinError || ee.Msg != "size not defined for Number" {
		t.Fatalf("wrong error: %v %q", ee.Kind, ee.Msg)
	}
	evalErr(t, "size ()")
	evalErr(t, "size (1,2)")
}

func Test_Builtin_Range(t *testing.T) {
	wantTuple(t, evalSrc(t, "range 3"), 0, 1, 2)
	wantTuple(t, evalSrc(t, "range -3"), 0, -1, -2)
	wantNothing(t, evalSrc(t, "range 0"))
	wantTuple(t, evalSrc(t, "range 3.9"), 0, 1, 2) // truncates toward zero
	wantNum(t, evalSrc(t, "range 1"), 0)

	ee := evalErr(t, "range 'x'")
	if ee.Msg != "range not defined for String" {
		t.Fatalf("wrong error: %q", ee.Msg)
	}
	evalErr(t, "range ()")
}

func Test_Builtin_Enum(t *testing.T) {
	v := evalSrc(t, "enum {a=1, b=2}")
	if v.Tag != VTTuple {
		t.Fatalf("want tuple, got %#v", v)
	}
	items := v.Data.([]Value)
	if len(items) != 2 {
		t.Fatalf("want 2 records, got %d", len(items))
	}
	first := items[0].Data.(*Namespace)
	name, _ := first.Get("name")
	wantStr(t, name, "a")
	value, _ := first.Get("value")
	wantNum(t, value, 1)

	// collect the records into a list to index them
	wantNum(t, evalSrc(t, "[enum [10, 20]] 1 'index'"), 1)
	wantNum(t, evalSrc(t, "[enum [10, 20]] 1 'value'"), 20)
	wantStr(t, evalSrc(t, "[enum 'ab'] 0 'value'"), "a")
	wantNum(t, evalSrc(t, "[enum 'ab'] 1 'index'"), 1)

	ee := evalErr(t, "enum (x -> x)")
	if ee.Msg != "enum not defined for Function" {
		t.Fatalf("wrong error: %q", ee.Msg)
	}
	evalErr(t, "enum 42")
}

func Test_Builtin_Type(t *testing.T) {
	cases := map[string]string{
		"type ()":       "Nothing",
		"type TRUE":     "Boolean",
		"type 1":        "Number",
		"type 'x'":      "String",
		"type [1]":      "List",
		"type {}":       "Namespace",
		"type (x -> x)": "Function",
		"type (1,2)":    "Tuple",
		"type (0/0)":    "Nothing", // NaN classifies as Nothing
	}
	for src, want := range cases {
		wantStr(t, evalSrc(t, src), want)
	}
}

func Test_Builtin_Map(t *testing.T) {
	wantTuple(t, evalSrc(t, "map (x -> 2*x) (1,2,3)"), 2, 4, 6)
	wantNum(t, evalSrc(t, "map (x -> 2*x) 5"), 10)
	wantNothing(t, evalSrc(t, "map (x -> 2*x) ()"))

	ee := evalErr(t, "map 42")
	if ee.Msg != "map not defined for Number" {
		t.Fatalf("wrong error: %q", ee.Msg)
	}
}

func Test_Builtin_EnumNamespaceOrder(t *testing.T) {
	// insertion order must survive
	v := evalSrc(t, "enum {z=1, a=2, m=3}")
	items := v.Data.([]Value)
	var names []string
	for _, item := range items {
		n, _ := item.Data.(*Namespace).Get("name")
		names = append(names, n.Data.(string))
	}
	if names[0] != "z" || names[1] != "a" || names[2] != "m" {
		t.Fatalf("enum order: %v", names)
	}
}
