// Package textobject resolves LaTeX text objects: spans of a document
// selected around a cursor position, scoped to delimiter-based constructs
// (quoted strings, math delimiters, macro invocations, environments).
//
// Each object kind is available in two variants. The inner variant covers
// the construct's contents only; the outer variant includes the delimiters.
// Resolution is a pure function of an immutable document snapshot and a
// Request; resolvers never mutate anything and never return partial spans.
//
// The package depends on three collaborator contracts supplied by the
// caller: Text (snapshot access), Matcher (the single-pair delimiter
// matcher), and BoundaryScanner (macro/environment boundary primitives).
// The document package provides implementations of all three.
package textobject
