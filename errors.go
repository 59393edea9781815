package markdown

import "fmt"

// A SyntaxError reports input that does not match the document grammar,
// such as an unterminated code fence. Backtracking failures during
// grammar exploration are never surfaced; only a failure of the
// document rule itself is.
type SyntaxError struct {
	Pos      Pos
	Expected string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("markdown: syntax error at %d:%d: expected %s", e.Pos.Line, e.Pos.Col, e.Expected)
}

// An UnresolvedReferenceError reports a reference-style link whose
// label has no matching definition anywhere in the document.
type UnresolvedReferenceError struct {
	Label string
	Pos   Pos
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("markdown: unresolved reference %q at %d:%d", e.Label, e.Pos.Line, e.Pos.Col)
}

// A TransformerError wraps a failure reported by a transformer (see
// Fallible) during one of the two passes.
type TransformerError struct {
	Pass string // "peek" or "transform"
	Err  error
}

func (e *TransformerError) Error() string {
	return fmt.Sprintf("markdown: %s pass failed: %v", e.Pass, e.Err)
}

func (e *TransformerError) Unwrap() error { return e.Err }
