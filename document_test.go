package olojs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(t *testing.T, src string, globals map[string]Value) string {
	t.Helper()
	doc, err := ParseDocument(src)
	require.NoError(t, err)
	text, err := doc.Render(context.Background(), NewScope(globals))
	require.NoError(t, err)
	return text
}

func Test_Document_PlainText(t *testing.T) {
	assert.Equal(t, "just text", renderDoc(t, "just text", nil))
	assert.Equal(t, "", renderDoc(t, "", nil))
}

func Test_Document_Expressions(t *testing.T) {
	assert.Equal(t, "2 + 2 = 4", renderDoc(t, "2 + 2 = ${2+2}", nil))
	assert.Equal(t, "ab", renderDoc(t, "${'a'}${'b'}", nil))
}

func Test_Document_RenderFunction(t *testing.T) {
	doc, err := ParseDocument("${6*7}")
	require.NoError(t, err)
	out, err := Render(context.Background(), doc, NewScope(nil))
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}

func Test_Document_SharedScope(t *testing.T) {
	// earlier segments bind names for later ones
	out := renderDoc(t, "${x = 6}${x * 7}", nil)
	assert.Equal(t, "42", out)
}

func Test_Document_Globals(t *testing.T) {
	out := renderDoc(t, "Hello ${name}!", map[string]Value{"name": String("World")})
	assert.Equal(t, "Hello World!", out)
}

func Test_Document_BracesInStringsAndComments(t *testing.T) {
	assert.Equal(t, "}", renderDoc(t, "${'}'}", nil))
	assert.Equal(t, "ok", renderDoc(t, "${'ok' # not closed by } in comment\n}", nil))
	assert.Equal(t, "3", renderDoc(t, "${ {n=3}.n }", nil))
}

func Test_Document_FailedSegmentRendersInline(t *testing.T) {
	out := renderDoc(t, "a ${'x' - 'y'} b", nil)
	assert.Contains(t, out, "[!, ")
	assert.Contains(t, out, "Difference operation not defined between String and String")
	// surrounding segments still render
	assert.Contains(t, out, "a ")
	assert.Contains(t, out, " b")
}

func Test_Document_ParseErrors(t *testing.T) {
	_, err := ParseDocument("before ${1 +} after")
	require.Error(t, err)
	assert.IsType(t, &ParseError{}, err)

	_, err = ParseDocument("${never closed")
	require.Error(t, err)
}

func Test_Document_ParseErrorPosition(t *testing.T) {
	_, err := ParseDocument("line one\nline two ${*}\n")
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, 2, pe.Line)
}

func Test_Document_Evaluate(t *testing.T) {
	doc, err := ParseDocument("${x = 2}${y = 3}result: ${x*y}")
	require.NoError(t, err)
	v, err := doc.Evaluate(context.Background(), NewScope(nil))
	require.NoError(t, err)
	require.Equal(t, VTNamespace, v.Tag)

	ns := v.Data.(*Namespace)
	x, ok := ns.Get("x")
	require.True(t, ok)
	assert.Equal(t, 2.0, x.Data.(float64))

	text, ok := ns.Get(strHook)
	require.True(t, ok)
	assert.Equal(t, "result: 6", text.Data.(string))

	// the namespace stringifies to the rendered text via the __str__ hook
	assert.Equal(t, "result: 6", Stringify(v))
}

func Test_Document_IsReRenderable(t *testing.T) {
	doc, err := ParseDocument("${n = n ; 0}${n + 1}")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		// every render starts from the scope it is given
		out, err := doc.Render(context.Background(), NewScope(nil))
		require.NoError(t, err)
		assert.Equal(t, "1", out)
	}
}
