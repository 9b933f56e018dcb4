package gen

import (
	"context"
	"go/ast"
	"go/format"
	"go/importer"
	"go/parser"
	"go/types"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/marker"
	"ctor-generator/internal/plan"
)

const hostPath = "example.com/host"

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

// specsOf plans every marked type of prog.
func specsOf(t *testing.T, prog *analyze.Program, cfg plan.Config) []*plan.ConstructorSpec {
	t.Helper()

	reg := marker.Default()

	def, err := reg.Inject(prog)
	require.NoError(t, err)

	candidates, _, err := analyze.CollectCandidates(context.Background(), prog)
	require.NoError(t, err)

	confirmed, _, err := plan.NewResolver(prog, reg, def).Resolve(context.Background(), candidates)
	require.NoError(t, err)

	var out []*plan.ConstructorSpec

	for _, c := range confirmed {
		fields, diags := plan.SelectFields(prog.Fset, c, cfg)
		require.True(t, diags.IsValid(), spew.Sdump(diags))

		spec, diags := plan.BuildSpec(prog, c, fields, cfg)
		require.True(t, diags.IsValid(), spew.Sdump(diags))

		out = append(out, spec)
	}

	return out
}

func specOf(t *testing.T, prog *analyze.Program, cfg plan.Config) *plan.ConstructorSpec {
	t.Helper()

	specs := specsOf(t, prog, cfg)
	require.Len(t, specs, 1)

	return specs[0]
}

func generate(t *testing.T, spec *plan.ConstructorSpec) string {
	t.Helper()

	file, err := NewGenerator(DefaultGeneratorConfig()).Generate(spec)
	require.NoError(t, err)
	require.Equal(t, spec.Filename, file.Filename)

	return string(file.Content)
}

// gofmt normalizes expected source the way the generator's output is.
func gofmt(t *testing.T, src string) string {
	t.Helper()

	out, err := format.Source([]byte(src))
	require.NoError(t, err)

	return string(out)
}

// typeCheck checks the generated file together with the sources of its
// package, so the constructor is known to compile.
func typeCheck(t *testing.T, prog *analyze.Program, spec *plan.ConstructorSpec, generated string) {
	t.Helper()

	gf, err := parser.ParseFile(prog.Fset, spec.Filename, generated, parser.ParseComments)
	require.NoError(t, err, generated)

	files := append(append([]*ast.File{}, spec.Package.Files...), gf)

	conf := types.Config{Importer: importerFunc(func(path string) (*types.Package, error) {
		if pkg := prog.Lookup(path); pkg != nil {
			return pkg, nil
		}

		return importer.Default().Import(path)
	})}

	_, err = conf.Check(spec.Package.Path, prog.Fset, files, nil)
	require.NoError(t, err, generated)
}

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) { return f(path) }
