// Package diagnostic provides structured errors, warnings and notes reported
// while generating constructors.
//
// Every diagnostic carries:
//   - a severity and a stable code (e.g. "param-collision")
//   - the qualified type and field it concerns
//   - the source position, and "did you mean" suggestions when there are any
package diagnostic
