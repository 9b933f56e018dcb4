package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"sort"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/common"
	"ctor-generator/internal/plan"
)

type importSpec struct {
	Alias string
	Path  string
}

// importSet assigns file-unique names to the packages a generated file
// refers to.
type importSet struct {
	home   *types.Package
	byPath map[string]string // path -> name
	taken  map[string]string // name -> path
	pkgs   map[string]string // path -> declared package name
}

func newImportSet(home *types.Package) *importSet {
	s := &importSet{
		home:   home,
		byPath: make(map[string]string),
		taken:  make(map[string]string),
		pkgs:   make(map[string]string),
	}

	// Package-level names of the home package cannot be shadowed by imports.
	for _, name := range home.Scope().Names() {
		s.taken[name] = ""
	}

	return s
}

// qualifier is a types.Qualifier that imports every foreign package it sees.
func (s *importSet) qualifier(pkg *types.Package) string {
	if pkg == nil || pkg == s.home {
		return ""
	}

	if name, ok := s.byPath[pkg.Path()]; ok {
		return name
	}

	name := pkg.Name()
	for i := 2; ; i++ {
		if _, used := s.taken[name]; !used {
			break
		}

		name = fmt.Sprintf("%s%d", pkg.Name(), i)
	}

	s.byPath[pkg.Path()] = name
	s.taken[name] = pkg.Path()
	s.pkgs[pkg.Path()] = pkg.Name()

	return name
}

// require imports pkg under exactly name.
func (s *importSet) require(pkg *types.Package, name string) error {
	path := pkg.Path()

	if have, ok := s.byPath[path]; ok {
		if have != name {
			return fmt.Errorf("package %s is needed as both %s and %s", path, have, name)
		}

		return nil
	}

	if other, used := s.taken[name]; used {
		if other == "" {
			return fmt.Errorf("import name %s collides with a package-level declaration", name)
		}

		return fmt.Errorf("import name %s is needed for both %s and %s", name, other, path)
	}

	s.byPath[path] = name
	s.taken[name] = path
	s.pkgs[path] = pkg.Name()

	return nil
}

// requireExpr imports the packages an initializer expression selects from,
// resolving each qualifier against the imports of the declaring file.
func (s *importSet) requireExpr(spec *plan.ConstructorSpec, expr string) error {
	x, err := parser.ParseExpr(expr)
	if err != nil {
		return fmt.Errorf("parsing initializer %q: %w", expr, err)
	}

	named := make(map[string]*types.Package)

	for _, imp := range spec.File.Imports {
		pkg := analyze.ImportedBy(spec.Package, imp)
		if pkg == nil {
			continue
		}

		if name := analyze.ImportName(imp, pkg); name != "_" && name != "." {
			named[name] = pkg
		}
	}

	var errs []error

	ast.Inspect(x, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		if pkg, ok := named[id.Name]; ok && spec.Object.Pkg().Scope().Lookup(id.Name) == nil {
			if err := s.require(pkg, id.Name); err != nil {
				errs = append(errs, err)
			}
		}

		return true
	})

	first, _ := common.First(errs)

	return first
}

// specs returns the imports sorted by path. The alias is omitted when the
// name is the package's own name and matches the last path element.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))

	for path, name := range s.byPath {
		spec := importSpec{Path: path}
		if name != s.pkgs[path] || name != common.PkgAlias(path) {
			spec.Alias = name
		}

		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out
}
