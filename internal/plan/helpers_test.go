package plan

import (
	"context"
	"go/importer"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/diagnostic"
	"ctor-generator/internal/marker"
)

const hostPath = "example.com/host"

// loadProgram type-checks in-memory packages. The marker package and the
// standard library are importable.
func loadProgram(t *testing.T, srcs ...analyze.SourcePackage) *analyze.Program {
	t.Helper()

	prog, err := analyze.LoadSource(marker.Default().Importer(importer.Default()), srcs...)
	require.NoError(t, err)

	for _, pkg := range prog.Packages {
		require.Empty(t, pkg.Errors, "package %s: %s", pkg.Path, spew.Sdump(pkg.Errors))
	}

	return prog
}

func host(files map[string]string) analyze.SourcePackage {
	return analyze.SourcePackage{Path: hostPath, Files: files}
}

// resolve runs collection and resolution with the default registry.
func resolve(t *testing.T, prog *analyze.Program) ([]Confirmed, diagnostic.Diagnostics) {
	t.Helper()

	reg := marker.Default()

	def, err := reg.Inject(prog)
	require.NoError(t, err)

	candidates, diags, err := analyze.CollectCandidates(context.Background(), prog)
	require.NoError(t, err)

	confirmed, d, err := NewResolver(prog, reg, def).Resolve(context.Background(), candidates)
	require.NoError(t, err)
	diags.Merge(d)

	return confirmed, diags
}

// confirmOne resolves src and returns its only confirmed type.
func confirmOne(t *testing.T, prog *analyze.Program) Confirmed {
	t.Helper()

	confirmed, diags := resolve(t, prog)
	require.Len(t, confirmed, 1, "diagnostics: %s", spew.Sdump(diags))

	return confirmed[0]
}

// plan runs the whole planning pipeline on the only marked type of prog.
func plan(t *testing.T, prog *analyze.Program, cfg Config) (*ConstructorSpec, diagnostic.Diagnostics) {
	t.Helper()

	c := confirmOne(t, prog)

	fields, diags := SelectFields(prog.Fset, c, cfg)
	spec, d := BuildSpec(prog, c, fields, cfg)
	diags.Merge(d)

	return spec, diags
}

func paramNames(spec *ConstructorSpec) []string {
	var out []string
	for _, p := range spec.Params {
		out = append(out, p.Name)
	}

	return out
}

func names(confirmed []Confirmed) []string {
	var out []string
	for _, c := range confirmed {
		out = append(out, c.ID.Name)
	}

	return out
}
