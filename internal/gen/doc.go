// Package gen renders constructor specifications into Go source and manages
// the generated-source set of a pass.
//
// Generation uses text/template + go/format. A generated file holds the
// package clause, the imports its signature and initializers need, and one
// constructor:
//
//	func NewT(a int) *T {
//		return &T{
//			_a: a,
//			_b: "x",
//		}
//	}
//
// Units are keyed by the fully qualified type name; two units with the same
// key or output path are a fatal conflict.
package gen
