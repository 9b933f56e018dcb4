// Package analyze loads the host program and finds annotated type
// declarations.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build a
// read-only Program. In-memory sources can be loaded with LoadSource.
//
// Key types:
//   - TypeID: package import path + type name
//   - Program: loaded packages plus every package they import
//   - Candidate: a type declaration whose doc comment carries annotations
package analyze
