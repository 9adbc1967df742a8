package olojs

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireScope(store Store) *Scope {
	return NewScope(NewLoader(store).Globals())
}

func evalWithRequire(t *testing.T, store Store, src string) Value {
	t.Helper()
	v, err := EvalSource(context.Background(), src, requireScope(store))
	require.NoError(t, err, "source: %s", src)
	return v
}

func Test_Modules_Math(t *testing.T) {
	v := evalWithRequire(t, nil, "m = require 'math', m.sqrt 16")
	assert.Equal(t, 4.0, v.Data.(float64))
	v = evalWithRequire(t, nil, "(require 'math').floor 2.9")
	assert.Equal(t, 2.0, v.Data.(float64))
	v = evalWithRequire(t, nil, "(require 'math').max(3, 9, 5)")
	assert.Equal(t, 9.0, v.Data.(float64))
	v = evalWithRequire(t, nil, "(require 'math').PI")
	assert.InDelta(t, 3.14159, v.Data.(float64), 1e-4)
}

func Test_Modules_List(t *testing.T) {
	v := evalWithRequire(t, nil, "(require 'list').reverse [1,2,3]")
	require.Equal(t, VTList, v.Tag)
	items := v.Data.([]Value)
	assert.Equal(t, 3.0, items[0].Data.(float64))

	v = evalWithRequire(t, nil, "(require 'list').find([10,20,30], 20)")
	assert.Equal(t, 1.0, v.Data.(float64))

	v = evalWithRequire(t, nil, "(require 'list').join([1,2,3], '-')")
	assert.Equal(t, "1-2-3", v.Data.(string))

	v = evalWithRequire(t, nil, "(require 'list').sort [3,1,2]")
	items = v.Data.([]Value)
	assert.Equal(t, 1.0, items[0].Data.(float64))
	assert.Equal(t, 3.0, items[2].Data.(float64))
}

func Test_Modules_Text(t *testing.T) {
	v := evalWithRequire(t, nil, "(require 'text').upper 'abc'")
	assert.Equal(t, "ABC", v.Data.(string))
	v = evalWithRequire(t, nil, "(require 'text').split('a,b,c', ',')")
	require.Equal(t, VTList, v.Tag)
	assert.Len(t, v.Data.([]Value), 3)
	v = evalWithRequire(t, nil, "(require 'text').replace('hello', 'l', 'L')")
	assert.Equal(t, "heLLo", v.Data.(string))
}

func Test_Modules_JSON(t *testing.T) {
	v := evalWithRequire(t, nil, `(require 'json').parse '{"n": 3, "ok": true}'`)
	require.Equal(t, VTNamespace, v.Tag)
	n, _ := v.Data.(*Namespace).Get("n")
	assert.Equal(t, 3.0, n.Data.(float64))

	v = evalWithRequire(t, nil, "(require 'json').serialize [1, 'x', TRUE]")
	assert.Equal(t, `[1,"x",true]`, v.Data.(string))

	v = evalWithRequire(t, nil, "(require 'json').serialize {n = 1}")
	assert.Equal(t, `{"n":1}`, v.Data.(string))
}

func Test_Modules_Path(t *testing.T) {
	v := evalWithRequire(t, nil, "(require 'path').dir '/a/b/c'")
	assert.Equal(t, "/a/b", v.Data.(string))
	v = evalWithRequire(t, nil, "(require 'path').join('a', 'b', 'c')")
	assert.Equal(t, "a/b/c", v.Data.(string))
}

func Test_Modules_Markdown(t *testing.T) {
	// the module namespace is applicable through __apply__
	v := evalWithRequire(t, nil, "require 'markdown' '# Title'")
	html := v.Data.(string)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Title")
}

func Test_Modules_Cached(t *testing.T) {
	v := evalWithRequire(t, nil, "(require 'math') == (require 'math')")
	// same namespace instance: equal entry for entry
	assert.Equal(t, true, v.Data.(bool))
}

func Test_Modules_Unknown(t *testing.T) {
	_, err := EvalSource(context.Background(), "require 'no_such'", requireScope(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown module")
}

func Test_Modules_FromStore(t *testing.T) {
	store := NewMemoryStore(map[string]string{
		"/lib/double": "${double = x -> 2*x}",
	})
	v := evalWithRequire(t, store, "(require '/lib/double').double 21")
	assert.Equal(t, 42.0, v.Data.(float64))
}

func Test_Modules_CycleDetection(t *testing.T) {
	store := NewMemoryStore(map[string]string{
		"/a": "${m = require '/b'}",
		"/b": "${m = require '/a'}",
	})
	_, err := EvalSource(context.Background(), "require '/a'", requireScope(store))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import cycle detected")
}

func Test_Modules_StoreMiss(t *testing.T) {
	store := NewMemoryStore(nil)
	_, err := EvalSource(context.Background(), "require '/absent'", requireScope(store))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "absent"))
}
