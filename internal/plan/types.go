package plan

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"ctor-generator/internal/analyze"
)

// Config holds configuration for planning constructors.
type Config struct {
	// IncludeEmbedded expands non-pointer embedded structs into their own
	// fields. When off, an embedded field is treated like any other field.
	IncludeEmbedded bool
	// Suffix is appended to the snake-cased type name to form the output
	// file name.
	Suffix string
}

// DefaultConfig returns the default planning configuration.
func DefaultConfig() Config {
	return Config{
		IncludeEmbedded: false,
		Suffix:          "_ctor.go",
	}
}

// Confirmed is a candidate whose annotations include the marker.
type Confirmed struct {
	// Candidate is the syntax the type was collected from.
	Candidate analyze.Candidate
	// Object is the declared type.
	Object *types.TypeName
	// Named is Object's type.
	Named *types.Named
	// ID is the fully qualified type name.
	ID analyze.TypeID
	// Pos is the position of the type name.
	Pos token.Position
}

// Struct returns the confirmed type's underlying struct.
func (c Confirmed) Struct() *types.Struct {
	st, _ := c.Named.Underlying().(*types.Struct)
	return st
}

// FieldDescriptor describes one field of a confirmed struct, as seen by the
// constructor.
type FieldDescriptor struct {
	// Name is the field name.
	Name string
	// Type is the declared field type.
	Type types.Type
	// Var is the field symbol.
	Var *types.Var
	// Path is the selector path from the constructed type; its last element
	// is Name. Promoted fields have longer paths.
	Path []string
	// Embeds are the expanded embedded fields traversed to reach the field,
	// outermost first.
	Embeds []*types.Var
	// Embedded is true for embedded fields that were not expanded.
	Embedded bool
	// Immutable is true when the field cannot be assigned from outside its
	// declaring package.
	Immutable bool
	// Static is true when the field carries no per-instance state.
	Static bool
	// HasInitializer is true when the field declares its own initial value.
	HasInitializer bool
	// Initializer is the initial value expression; empty means the zero value.
	Initializer string
	// Nameable is true when generated code may refer to the field by name.
	Nameable bool
	// Pos is the position of the field declaration.
	Pos token.Position
}

// Eligible reports whether the field becomes a constructor parameter.
func (f FieldDescriptor) Eligible() bool {
	return f.Immutable && !f.Static && !f.HasInitializer && f.Nameable
}

// Promoted reports whether the field was reached through an expanded
// embedded struct.
func (f FieldDescriptor) Promoted() bool {
	return len(f.Path) > 1
}

// Selector returns the dotted selector path, e.g. "mainService.logger".
func (f FieldDescriptor) Selector() string {
	return strings.Join(f.Path, ".")
}

// Param is one constructor parameter.
type Param struct {
	// Name is the derived parameter name.
	Name string
	// Field is the field the parameter is assigned to.
	Field FieldDescriptor
}

// ConstructorSpec is everything the synthesizer needs to write one
// constructor.
type ConstructorSpec struct {
	// ID is the fully qualified name of the constructed type; it is also the
	// emission key.
	ID analyze.TypeID
	// Object is the constructed type.
	Object *types.TypeName
	// Named is Object's type.
	Named *types.Named
	// Package is the package the constructor is generated into.
	Package *analyze.Package
	// File is the file declaring the type. Initializer expressions resolve
	// their qualifiers against its imports.
	File *ast.File
	// FuncName is the constructor function name.
	FuncName string
	// Filename is the output file name, relative to Package.Dir.
	Filename string
	// Test is true when the type is declared in a _test.go file.
	Test bool
	// Params are the constructor parameters in field declaration order.
	Params []Param
	// Fields are all selected descriptors in declaration order.
	Fields []FieldDescriptor
	// Pos is the position of the type name.
	Pos token.Position
}

// Initializers returns the fields that carry a non-zero initializer.
func (s *ConstructorSpec) Initializers() []FieldDescriptor {
	var out []FieldDescriptor

	for _, f := range s.Fields {
		if f.HasInitializer && f.Initializer != "" && f.Nameable {
			out = append(out, f)
		}
	}

	return out
}

// ParamFor returns the parameter assigned to the field with the given
// selector path.
func (s *ConstructorSpec) ParamFor(selector string) (Param, bool) {
	for _, p := range s.Params {
		if p.Field.Selector() == selector {
			return p, true
		}
	}

	return Param{}, false
}
