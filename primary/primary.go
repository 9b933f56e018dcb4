// Package primary declares the annotation that asks ctor-generator to write a
// constructor for a struct type.
//
// A type opts in with a doc comment line naming the annotation:
//
//	import _ "ctor-generator/primary"
//
//	// Greeter says hello.
//	// @primary.Constructor
//	type Greeter struct {
//		logger *slog.Logger
//	}
//
// The generator then writes NewGreeter(logger *slog.Logger) *Greeter into a
// sibling file of the same package. Unexported fields become parameters in
// declaration order; fields tagged `ctor:"init"` or `ctor:"init=EXPR"` and
// zero-size fields are left out.
//
// Importing the package is optional. When the annotation's qualifier names
// this package and no import matches, the generator resolves it anyway.
package primary

// Constructor marks a struct type for constructor generation.
type Constructor struct{}
