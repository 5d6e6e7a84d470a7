// Package ast defines the syntax tree produced by the parser.
//
// Nodes are plain pointer structs. Every node carries the source span it was
// parsed from; spans are byte-offset half-open ranges into the owning file.
// The tree is immutable after parsing: later phases read it but never rewrite
// it, so nodes can be shared freely.
package ast
