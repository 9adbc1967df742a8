// document.go — the olo-document layer: plain text with embedded swan
// expressions in ${…} markers.
//
// A document is parsed once into an alternating list of literal-text and
// expression segments; the result is immutable and re-renderable. The ${…}
// scanner balances braces and is aware of the three string kinds and of
// '#' comments, so a '}' inside a string or a comment does not terminate
// the expression.
//
// Evaluation runs every expression left to right in one child scope, so
// earlier segments can bind names that later segments read. A segment
// failing on a language-level error renders inline as [!, <message>] and
// does not abort the rest of the document; host-callable failures
// (including cancellation) abort the whole render.
package olojs

import (
	"context"
	"fmt"
	"strings"
)

type segment struct {
	text string   // literal text when prog is nil
	prog *Program // expression segment otherwise
}

// Document is an immutable parsed olo-document.
type Document struct {
	source   string
	segments []segment
}

// ParseDocument splits source into text and expression segments and parses
// every expression eagerly (fail-fast on malformed expressions).
func ParseDocument(source string) (*Document, error) {
	doc := &Document{source: source}
	rest := source
	offset := 0
	for {
		i := strings.Index(rest, "${")
		if i < 0 {
			if rest != "" {
				doc.segments = append(doc.segments, segment{text: rest})
			}
			return doc, nil
		}
		if i > 0 {
			doc.segments = append(doc.segments, segment{text: rest[:i]})
		}
		exprSrc, length, err := scanExpression(rest[i+2:])
		if err != nil {
			return nil, offsetParseError(err, source, offset+i+2)
		}
		prog, err := Parse(exprSrc)
		if err != nil {
			return nil, offsetParseError(err, source, offset+i+2)
		}
		doc.segments = append(doc.segments, segment{prog: prog})
		rest = rest[i+2+length+1:] // skip "${", the expression and "}"
		offset += i + 2 + length + 1
	}
}

// scanExpression reads up to the '}' matching an already-consumed "${",
// skipping braces inside string literals and comments. It returns the
// expression text and its length in bytes.
func scanExpression(s string) (string, int, error) {
	depth := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i], i, nil
			}
		case '"', '\'', '`':
			quote := s[i]
			j := i + 1
			for j < len(s) && s[j] != quote {
				j++
			}
			if j >= len(s) {
				return "", 0, &ParseError{Line: 1, Col: i + 1, Msg: "string was not terminated"}
			}
			i = j
		case '#':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		}
	}
	return "", 0, &ParseError{Line: 1, Col: len(s) + 1, Msg: "expression was not terminated with '}'"}
}

// offsetParseError rebases a segment-local parse error onto the document
// source position of the segment.
func offsetParseError(err error, source string, base int) error {
	pe, ok := err.(*ParseError)
	if !ok {
		return err
	}
	prefix := source[:base]
	line := 1 + strings.Count(prefix, "\n")
	col := base - strings.LastIndex(prefix, "\n")
	if line == 1 {
		col = base + 1
	}
	if pe.Line > 1 {
		return &ParseError{Line: line + pe.Line - 1, Col: pe.Col, Msg: pe.Msg}
	}
	return &ParseError{Line: line, Col: col + pe.Col - 1, Msg: pe.Msg}
}

// Source returns the text the document was parsed from.
func (d *Document) Source() string { return d.source }

// Render evaluates every expression in a child of scope and returns the
// concatenation of literal text and stringified results.
func (d *Document) Render(ctx context.Context, scope *Scope) (string, error) {
	text, _, err := d.run(ctx, scope)
	return text, err
}

// Render is the free-function form of (*Document).Render.
func Render(ctx context.Context, doc *Document, scope *Scope) (string, error) {
	return doc.Render(ctx, scope)
}

// Evaluate renders the document and returns its namespace: the names bound
// by the document's expressions plus the rendered text under __str__.
func (d *Document) Evaluate(ctx context.Context, scope *Scope) (Value, error) {
	text, child, err := d.run(ctx, scope)
	if err != nil {
		return Nothing, err
	}
	ns := NewNamespace()
	for _, k := range child.names() {
		ns.Set(k, child.table[k])
	}
	ns.Set(strHook, String(text))
	return NamespaceVal(ns), nil
}

func (d *Document) run(ctx context.Context, scope *Scope) (string, *Scope, error) {
	child := scope.Child()
	var b strings.Builder
	for _, seg := range d.segments {
		if seg.prog == nil {
			b.WriteString(seg.text)
			continue
		}
		v, err := seg.prog.Evaluate(ctx, child)
		if err != nil {
			// language-level failures render inline; host failures
			// (require errors, cancellation) abort the whole render
			if ee, ok := err.(*EvalError); ok && ee.Kind == HostError {
				return "", nil, err
			}
			fmt.Fprintf(&b, "[!, %s]", err.Error())
			continue
		}
		b.WriteString(strValue(v))
	}
	return b.String(), child, nil
}
