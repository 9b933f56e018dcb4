package analyze

import (
	"context"
	"errors"
	"go/ast"
	"go/token"

	"ctor-generator/internal/common"
	"ctor-generator/internal/diagnostic"
)

// Candidate is a type declaration whose doc comment carries at least one
// annotation. Whether one of them is the marker is decided later, by
// resolution.
type Candidate struct {
	Package *Package
	File    *ast.File
	Spec    *ast.TypeSpec
	// Local is true for types declared inside a function body.
	Local       bool
	Annotations []Annotation
}

// Name returns the declared type name.
func (c Candidate) Name() string {
	return c.Spec.Name.Name
}

// CollectCandidates walks every type declaration of every loaded package,
// including declarations inside function bodies, and returns the ones that
// carry annotations, in package, file and source order.
//
// Malformed annotation lines are reported as warnings. The walk stops with
// ctx.Err() as soon as the context is done.
func CollectCandidates(ctx context.Context, prog *Program) ([]Candidate, diagnostic.Diagnostics, error) {
	var (
		out   []Candidate
		diags diagnostic.Diagnostics
	)

	for _, pkg := range prog.Packages {
		for _, file := range pkg.Files {
			found, err := collectFile(ctx, prog.Fset, pkg, file, &diags)
			if err != nil {
				return nil, diags, err
			}

			out = append(out, found...)
		}
	}

	return out, diags, nil
}

func collectFile(
	ctx context.Context,
	fset *token.FileSet,
	pkg *Package,
	file *ast.File,
	diags *diagnostic.Diagnostics,
) ([]Candidate, error) {
	var (
		out       []Candidate
		err       error
		stack     []ast.Node
		funcDepth int
	)

	ast.Inspect(file, func(n ast.Node) bool {
		if n == nil {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if isFunc(top) {
				funcDepth--
			}

			return false
		}

		if err != nil {
			return false
		}

		decl, ok := n.(*ast.GenDecl)
		if ok && decl.Tok == token.TYPE {
			if err = ctx.Err(); err != nil {
				return false
			}

			for _, s := range decl.Specs {
				spec := s.(*ast.TypeSpec)

				doc := spec.Doc
				if (doc == nil || common.IsEmpty(doc.List)) && common.IsSingle(decl.Specs) {
					doc = decl.Doc
				}

				if !HasAnnotations(doc) {
					continue
				}

				annos, errs := ParseAnnotations(fset, doc)
				for _, e := range errs {
					var pe *diagnostic.PositionError
					if errors.As(e, &pe) {
						diags.AddWarning(diagnostic.CodeBadAnnotation, pe.Unwrap().Error(),
							TypeID{PkgPath: pkg.Path, Name: spec.Name.Name}.String(), "", pe.Pos())
					}
				}

				if common.IsEmpty(annos) {
					continue
				}

				out = append(out, Candidate{
					Package:     pkg,
					File:        file,
					Spec:        spec,
					Local:       funcDepth > 0,
					Annotations: annos,
				})
			}
		}

		stack = append(stack, n)
		if isFunc(n) {
			funcDepth++
		}

		return true
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func isFunc(n ast.Node) bool {
	switch n.(type) {
	case *ast.FuncDecl, *ast.FuncLit:
		return true
	default:
		return false
	}
}
