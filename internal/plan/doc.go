// Package plan turns collected candidates into constructor specifications.
//
// Planning pipeline:
//  1. Resolve each candidate to its *types.TypeName and confirm it when one
//     of its annotations resolves to the marker symbol (by identity)
//  2. Select the struct's fields in declaration order and classify them:
//     immutable (unexported), static (zero-size), initialized (ctor tag),
//     nameable (accessible from the generated file)
//  3. Derive parameter names for the eligible fields and reject specs that
//     would not compile (collisions, keywords, existing constructors)
package plan
