// stdlib_json.go — the 'json' module: conversion between JSON text and
// swan values. JSON null maps to Nothing, objects to namespaces (keys that
// are not legal identifiers are dropped — they could never resolve),
// arrays to lists. Tuples serialize as JSON arrays; functions are not
// serializable.
package olojs

import (
	"context"
	"encoding/json"
	"fmt"
)

func jsonModule() Value {
	return NamespaceVal(moduleNS(
		"parse", NativeFn("parse", func(_ context.Context, args []Value) (Value, error) {
			s, err := wantString("json.parse", tupleOf(args))
			if err != nil {
				return Nothing, err
			}
			var raw any
			if err := json.Unmarshal([]byte(s), &raw); err != nil {
				return Nothing, fmt.Errorf("json.parse: %w", err)
			}
			return jsonToValue(raw), nil
		}),
		"serialize", NativeFn("serialize", func(_ context.Context, args []Value) (Value, error) {
			raw, err := valueToJSON(tupleOf(args))
			if err != nil {
				return Nothing, err
			}
			data, err := json.Marshal(raw)
			if err != nil {
				return Nothing, fmt.Errorf("json.serialize: %w", err)
			}
			return String(string(data)), nil
		}),
	))
}

func jsonToValue(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Nothing
	case bool:
		return Boolean(x)
	case float64:
		return Number(x)
	case string:
		return String(x)
	case []any:
		out := make([]Value, len(x))
		for i, item := range x {
			out[i] = jsonToValue(item)
		}
		return List(out)
	case map[string]any:
		ns := NewNamespace()
		for k, item := range x {
			ns.Set(k, jsonToValue(item))
		}
		return NamespaceVal(ns)
	}
	return Nothing
}

func valueToJSON(v Value) (any, error) {
	switch v.Kind() {
	case VTNothing:
		return nil, nil
	case VTBoolean:
		return v.Data.(bool), nil
	case VTNumber:
		return v.Data.(float64), nil
	case VTString:
		return v.Data.(string), nil
	case VTList:
		items := v.Data.([]Value)
		out := make([]any, len(items))
		for i, item := range items {
			x, err := valueToJSON(item)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	case VTNamespace:
		ns := v.Data.(*Namespace)
		out := make(map[string]any, ns.Len())
		for _, k := range ns.Keys() {
			item, _ := ns.Get(k)
			x, err := valueToJSON(item)
			if err != nil {
				return nil, err
			}
			out[k] = x
		}
		return out, nil
	case VTTuple:
		items := v.Data.([]Value)
		out := make([]any, len(items))
		for i, item := range items {
			x, err := valueToJSON(item)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	}
	return nil, builtinErr("json.serialize", v)
}
