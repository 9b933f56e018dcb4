package plan

import (
	"context"
	"fmt"
	"go/types"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/common"
	"ctor-generator/internal/diagnostic"
	"ctor-generator/internal/marker"
	"ctor-generator/internal/naming"
)

// maxSuggestionDistance bounds the edit distance of "did you mean" hints.
const maxSuggestionDistance = 2

// Resolver binds candidates to their type symbols and keeps the ones carrying
// the marker annotation. The marker is compared by symbol identity, never by
// name.
type Resolver struct {
	prog     *analyze.Program
	registry marker.Registry
	def      marker.Definition
}

// NewResolver creates a new Resolver for one pass.
func NewResolver(prog *analyze.Program, registry marker.Registry, def marker.Definition) *Resolver {
	return &Resolver{
		prog:     prog,
		registry: registry,
		def:      def,
	}
}

// Resolve returns the confirmed types among candidates, in candidate order.
// Candidates that cannot be resolved or confirmed are skipped with a
// diagnostic; they never abort the pass. Resolution stops with ctx.Err() as
// soon as the context is done.
func (r *Resolver) Resolve(ctx context.Context, candidates []analyze.Candidate) ([]Confirmed, diagnostic.Diagnostics, error) {
	var (
		out   []Confirmed
		diags diagnostic.Diagnostics
	)

	seen := make(map[*types.TypeName]bool)

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, diags, err
		}

		confirmed, ok := r.resolveCandidate(c, &diags)
		if !ok || seen[confirmed.Object] {
			continue
		}

		seen[confirmed.Object] = true
		out = append(out, confirmed)
	}

	return out, diags, nil
}

func (r *Resolver) resolveCandidate(c analyze.Candidate, diags *diagnostic.Diagnostics) (Confirmed, bool) {
	pos := r.prog.Fset.Position(c.Spec.Name.Pos())
	id := analyze.TypeID{PkgPath: c.Package.Path, Name: c.Name()}

	var obj *types.TypeName
	if c.Package.Info != nil {
		obj, _ = c.Package.Info.Defs[c.Spec.Name].(*types.TypeName)
	}

	if obj == nil {
		diags.AddInfo(diagnostic.CodeUnresolvedCandidate,
			"type declaration has no symbol in the semantic view; skipped", id.String(), "", pos)

		return Confirmed{}, false
	}

	if !r.isMarked(c, diags) {
		return Confirmed{}, false
	}

	if c.Local || obj.Parent() != obj.Pkg().Scope() {
		diags.AddWarning(diagnostic.CodeLocalType,
			"constructors are only generated for package-level types; skipped", id.String(), "", pos)

		return Confirmed{}, false
	}

	named, ok := obj.Type().(*types.Named)
	if !ok || obj.IsAlias() {
		diags.AddWarning(diagnostic.CodeNotStruct,
			"marker on a type alias; annotate the aliased type instead", id.String(), "", pos)

		return Confirmed{}, false
	}

	if _, ok := named.Underlying().(*types.Struct); !ok {
		diags.AddWarning(diagnostic.CodeNotStruct,
			fmt.Sprintf("marker on a non-struct type (%s); skipped", named.Underlying()), id.String(), "", pos)

		return Confirmed{}, false
	}

	return Confirmed{
		Candidate: c,
		Object:    obj,
		Named:     named,
		ID:        analyze.TypeIDOf(obj),
		Pos:       pos,
	}, true
}

// isMarked reports whether any annotation of c resolves to the marker.
func (r *Resolver) isMarked(c analyze.Candidate, diags *diagnostic.Diagnostics) bool {
	marked := false

	for _, a := range c.Annotations {
		obj := r.resolveAnnotation(c, a)
		if r.def.Matches(obj) {
			marked = true
			continue
		}

		if obj != nil {
			continue
		}

		written := a.String()[1:]
		if hint, ok := common.First(naming.Suggest(written, []string{r.registry.Qualified()}, maxSuggestionDistance)); ok {
			diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityInfo,
				Code:        diagnostic.CodeUnknownAnnotation,
				Message:     fmt.Sprintf("annotation %s does not resolve to a type", a),
				Type:        analyze.TypeID{PkgPath: c.Package.Path, Name: c.Name()}.String(),
				Pos:         a.Pos,
				Suggestions: []string{"@" + hint},
			})
		}
	}

	return marked
}

// resolveAnnotation resolves the annotation's name the way the compiler
// would resolve it in the declaring file. It returns nil when nothing
// matches.
func (r *Resolver) resolveAnnotation(c analyze.Candidate, a analyze.Annotation) types.Object {
	if a.Qualifier == "" {
		if c.Package.Types != nil {
			if obj := c.Package.Types.Scope().Lookup(a.Name); obj != nil {
				return obj
			}
		}

		for _, imp := range c.File.Imports {
			if imp.Name == nil || imp.Name.Name != "." {
				continue
			}

			if pkg := r.prog.ImportedPackage(c.Package, imp); pkg != nil {
				if obj := pkg.Scope().Lookup(a.Name); obj != nil {
					return obj
				}
			}
		}

		return nil
	}

	for _, imp := range c.File.Imports {
		pkg := r.prog.ImportedPackage(c.Package, imp)
		if pkg == nil {
			continue
		}

		qualifier := analyze.ImportName(imp, pkg)
		switch qualifier {
		case ".":
			continue
		case "_":
			// Blank imports are addressed by package name.
			qualifier = pkg.Name()
		}

		if qualifier == a.Qualifier {
			return pkg.Scope().Lookup(a.Name)
		}
	}

	if a.Qualifier == r.registry.PackageName() && r.def.Valid() {
		return r.def.Package().Scope().Lookup(a.Name)
	}

	return nil
}
