// Package pass runs one generation pass: marker injection, candidate
// collection, resolution, field selection, synthesis and emission.
//
// A pass is synchronous and touches nothing outside the program it is given.
// It either succeeds with a complete set of units or fails with none.
package pass

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/diagnostic"
	"ctor-generator/internal/gen"
	"ctor-generator/internal/marker"
	"ctor-generator/internal/plan"
)

// ErrFailed is wrapped by the error of a pass aborted by error diagnostics.
var ErrFailed = errors.New("constructor generation failed")

// Options configures a pass.
type Options struct {
	Plan      plan.Config
	Generator gen.GeneratorConfig
	Registry  marker.Registry
	// Strict turns package load errors into errors.
	Strict bool
}

// DefaultOptions returns the default pass options.
func DefaultOptions() Options {
	return Options{
		Plan:      plan.DefaultConfig(),
		Generator: gen.DefaultGeneratorConfig(),
		Registry:  marker.Default(),
	}
}

// Result is the outcome of a pass.
type Result struct {
	Diagnostics diagnostic.Diagnostics
	// Candidates is the number of annotated type declarations.
	Candidates int
	// Specs are the constructors of the confirmed types, in candidate order.
	Specs []*plan.ConstructorSpec
	// Units is the generated-source set; nil unless the pass succeeded.
	Units *gen.UnitSet
}

// Run executes one pass over prog. The context is observed between
// candidates; a cancelled pass returns ctx.Err() and no units.
func Run(ctx context.Context, prog *analyze.Program, opts Options, logger *slog.Logger) (*Result, error) {
	res := &Result{}
	diags := &res.Diagnostics

	reportLoadErrors(prog, opts.Strict, diags)

	def, err := opts.Registry.Inject(prog)
	if err != nil {
		diags.AddWarning(diagnostic.CodeMarkerInjection,
			fmt.Sprintf("marker %s is not resolvable: %v", opts.Registry.Qualified(), err), "", "", token.Position{})
		logger.Warn("marker injection failed; no types can be confirmed", "error", err)

		if diags.HasErrors() {
			return res, fmt.Errorf("%w: %w", ErrFailed, diags.Error())
		}

		res.Units = gen.NewUnitSet()

		return res, nil
	}

	logger.Debug("marker resolved", "marker", def.String(), "synthetic", def.Synthetic())

	candidates, d, err := analyze.CollectCandidates(ctx, prog)
	diags.Merge(d)

	if err != nil {
		return res, err
	}

	res.Candidates = len(candidates)
	logger.Info("collected candidates", "count", len(candidates))

	confirmed, d, err := plan.NewResolver(prog, opts.Registry, def).Resolve(ctx, candidates)
	diags.Merge(d)

	if err != nil {
		return res, err
	}

	logger.Info("confirmed marked types", "count", len(confirmed))

	for _, c := range confirmed {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		fields, d := plan.SelectFields(prog.Fset, c, opts.Plan)
		diags.Merge(d)

		spec, d := plan.BuildSpec(prog, c, fields, opts.Plan)
		diags.Merge(d)

		if d.HasErrors() {
			continue
		}

		res.Specs = append(res.Specs, spec)
	}

	plan.DisambiguateFileNames(res.Specs, opts.Plan)

	generator := gen.NewGenerator(opts.Generator)
	units := gen.NewUnitSet()

	for _, spec := range res.Specs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		typ := spec.ID.String()

		file, err := generator.Generate(spec)
		if err != nil {
			diags.AddError(diagnostic.CodeGenerate, err.Error(), typ, "", spec.Pos)
			continue
		}

		unit := gen.NewUnit(spec.ID, spec.Package.Dir, file)
		if err := units.Register(unit); err != nil {
			diags.AddError(diagnostic.CodeKeyCollision, err.Error(), typ, "", spec.Pos)
			continue
		}

		logger.Debug("generated constructor", "type", typ, "func", spec.FuncName,
			"params", len(spec.Params), "path", unit.Path)
	}

	if diags.HasErrors() {
		return res, fmt.Errorf("%w: %w", ErrFailed, diags.Error())
	}

	res.Units = units
	logger.Info("generated constructors", "units", units.Len())

	return res, nil
}

func reportLoadErrors(prog *analyze.Program, strict bool, diags *diagnostic.Diagnostics) {
	for _, pkg := range prog.Packages {
		for _, e := range pkg.Errors {
			d := diagnostic.Diagnostic{
				Severity: diagnostic.SeverityWarning,
				Code:     diagnostic.CodeLoadError,
				Message:  e.Error(),
				Type:     pkg.Path,
			}

			var terr types.Error
			if errors.As(e, &terr) {
				d.Message = terr.Msg
				d.Pos = terr.Fset.Position(terr.Pos)
			}

			if strict {
				d.Severity = diagnostic.SeverityError
			}

			diags.Add(d)
		}
	}
}
