package plan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"path/filepath"
	"strings"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/common"
	"ctor-generator/internal/diagnostic"
	"ctor-generator/internal/naming"
)

// BuildSpec derives the constructor of a confirmed type from its selected
// fields. Parameter names are the field names without leading underscores and
// with a lower-case first character.
//
// Conditions that would make the generated source invalid are reported as
// error diagnostics instead: invalid or colliding parameter names, and a
// constructor name the package already declares outside the generated file.
func BuildSpec(prog *analyze.Program, c Confirmed, fields []FieldDescriptor, cfg Config) (*ConstructorSpec, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	file := c.Candidate.File
	test := strings.HasSuffix(prog.Fset.Position(file.Package).Filename, "_test.go")

	spec := &ConstructorSpec{
		ID:       c.ID,
		Object:   c.Object,
		Named:    c.Named,
		Package:  c.Candidate.Package,
		File:     file,
		FuncName: naming.ConstructorName(c.ID.Name),
		Filename: naming.FileName(c.ID.Name, cfg.Suffix, test),
		Test:     test,
		Fields:   fields,
		Pos:      c.Pos,
	}

	typ := c.ID.String()
	reserved := reservedNames(c, fields)
	byName := make(map[string]FieldDescriptor)

	for _, f := range fields {
		if !f.Eligible() {
			continue
		}

		name := naming.ParamName(f.Name)

		switch prev, dup := byName[name]; {
		case !naming.IsValidParam(name):
			diags.AddError(diagnostic.CodeInvalidParam,
				fmt.Sprintf("field %s derives parameter name %q, which is not a valid Go parameter name", f.Selector(), name),
				typ, f.Selector(), f.Pos)
		case dup:
			diags.AddError(diagnostic.CodeParamCollision,
				fmt.Sprintf("fields %s and %s both derive parameter name %q", prev.Selector(), f.Selector(), name),
				typ, f.Selector(), f.Pos)
		case reserved[name]:
			diags.AddError(diagnostic.CodeParamCollision,
				fmt.Sprintf("parameter %q of field %s shadows %q in the constructor body", name, f.Selector(), name),
				typ, f.Selector(), f.Pos)
		default:
			byName[name] = f
			spec.Params = append(spec.Params, Param{Name: name, Field: f})
		}
	}

	for _, f := range spec.Initializers() {
		for _, ident := range freeIdents(f.Initializer) {
			if _, ok := byName[ident]; ok {
				diags.AddError(diagnostic.CodeParamCollision,
					fmt.Sprintf("initializer %q refers to %q, which a constructor parameter shadows", f.Initializer, ident),
					typ, f.Selector(), f.Pos)
			}
		}
	}

	if obj := c.Object.Pkg().Scope().Lookup(spec.FuncName); obj != nil {
		declared := prog.Fset.Position(obj.Pos())
		base := filepath.Base(declared.Filename)
		own := base == spec.Filename || base == naming.DisambiguatedFileName(c.ID.Name, cfg.Suffix, test)

		if !own || filepath.Dir(declared.Filename) != filepath.Clean(spec.Package.Dir) {
			diags.AddError(diagnostic.CodeCtorExists,
				fmt.Sprintf("package already declares %s at %s", spec.FuncName, declared),
				typ, "", c.Pos)
		}
	}

	return spec, diags
}

// DisambiguateFileNames gives every spec whose output file name coincides,
// ignoring case, with another spec's in the same directory a name derived
// from its exact type name. The result does not depend on the order of
// specs.
func DisambiguateFileNames(specs []*ConstructorSpec, cfg Config) {
	byPath := make(map[string][]*ConstructorSpec)

	for _, s := range specs {
		key := filepath.Join(filepath.Clean(s.Package.Dir), strings.ToLower(s.Filename))
		byPath[key] = append(byPath[key], s)
	}

	for _, group := range byPath {
		if !common.IsMultiple(group) {
			continue
		}

		for _, s := range group {
			s.Filename = naming.DisambiguatedFileName(s.ID.Name, cfg.Suffix, s.Test)
		}
	}
}

// reservedNames returns the identifiers the constructor body refers to
// besides its parameters: the type name, its type parameters, and the roots
// of nested literal types of expanded embedded fields.
func reservedNames(c Confirmed, fields []FieldDescriptor) map[string]bool {
	reserved := map[string]bool{c.ID.Name: true}

	tparams := c.Named.TypeParams()
	for i := range tparams.Len() {
		reserved[tparams.At(i).Obj().Name()] = true
	}

	for _, f := range fields {
		for _, e := range f.Embeds {
			reserved[literalRoot(e.Type(), c.Object.Pkg())] = true
		}
	}

	return reserved
}

// literalRoot returns the identifier a composite literal of t starts with:
// the type name for local types, else the package name.
func literalRoot(t types.Type, home *types.Package) string {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return ""
	}

	if pkg := named.Obj().Pkg(); pkg != nil && pkg != home {
		return pkg.Name()
	}

	return named.Obj().Name()
}

// freeIdents returns the identifiers an expression refers to, excluding
// selected names and composite literal keys.
func freeIdents(expr string) []string {
	x, err := parser.ParseExpr(expr)
	if err != nil {
		return nil
	}

	var out []string
	collectIdents(x, &out)

	return out
}

func collectIdents(n ast.Node, out *[]string) {
	ast.Inspect(n, func(m ast.Node) bool {
		switch m := m.(type) {
		case *ast.SelectorExpr:
			collectIdents(m.X, out)
			return false
		case *ast.KeyValueExpr:
			if _, ok := m.Key.(*ast.Ident); ok {
				collectIdents(m.Value, out)
				return false
			}
		case *ast.Ident:
			*out = append(*out, m.Name)
		}

		return true
	})
}
