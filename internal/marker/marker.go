// Package marker describes the annotation type that opts a struct into
// constructor generation, and makes it resolvable in any host program.
//
// The marker is matched by identity: a candidate annotation confirms a type
// only when it resolves to the very *types.TypeName held by the Definition
// returned from Registry.Inject. Same-named types declared elsewhere never
// match.
package marker

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/common"
)

// Canonical marker identity.
const (
	PackagePath = "ctor-generator/primary"
	TypeName    = "Constructor"
)

// Source is the canonical declaration of the marker package. It must stay in
// sync with package primary.
const Source = `package primary

// Constructor marks a struct type for constructor generation.
type Constructor struct{}
`

// Registry describes one marker annotation type. It is an immutable value;
// independent passes may share it freely.
type Registry struct {
	path     string
	name     string
	typeName string
	source   string
}

// Default returns the registry of ctor-generator/primary.Constructor.
func Default() Registry {
	return New(PackagePath, TypeName, Source)
}

// New returns a registry for the marker type typeName declared by source in
// the package at path. The source must not import anything.
func New(path, typeName, source string) Registry {
	name := common.PkgAlias(path)

	f, err := parser.ParseFile(token.NewFileSet(), "", source, parser.PackageClauseOnly)
	if err == nil {
		name = f.Name.Name
	}

	return Registry{path: path, name: name, typeName: typeName, source: source}
}

// Path returns the marker package's import path.
func (r Registry) Path() string { return r.path }

// PackageName returns the marker package's name.
func (r Registry) PackageName() string { return r.name }

// TypeName returns the marker type's name.
func (r Registry) TypeName() string { return r.typeName }

// Qualified returns the marker as written in an annotation, e.g. "primary.Constructor".
func (r Registry) Qualified() string { return r.name + "." + r.typeName }

// Definition is the resolved marker type of one pass.
type Definition struct {
	obj       *types.TypeName
	synthetic bool
}

// Object returns the marker's type name symbol.
func (d Definition) Object() *types.TypeName { return d.obj }

// Package returns the package declaring the marker.
func (d Definition) Package() *types.Package {
	if d.obj == nil {
		return nil
	}

	return d.obj.Pkg()
}

// Synthetic reports whether the marker package was injected because the
// host program does not import it.
func (d Definition) Synthetic() bool { return d.synthetic }

// Valid reports whether the definition holds a marker symbol.
func (d Definition) Valid() bool { return d.obj != nil }

// Matches reports whether obj is the marker type itself.
func (d Definition) Matches(obj types.Object) bool {
	return d.obj != nil && obj != nil && obj == types.Object(d.obj)
}

func (d Definition) String() string {
	if d.obj == nil {
		return "<no marker>"
	}

	return analyze.TypeIDOf(d.obj).String()
}

// Inject returns the marker definition for prog. If the program already
// reaches the marker package, the definition binds to it; otherwise the
// canonical source is type-checked and injected into the program.
func (r Registry) Inject(prog *analyze.Program) (Definition, error) {
	if pkg := prog.Lookup(r.path); pkg != nil {
		obj, err := r.lookup(pkg)
		if err != nil {
			return Definition{}, err
		}

		return Definition{obj: obj, synthetic: prog.Injected(r.path)}, nil
	}

	pkg, err := r.check()
	if err != nil {
		return Definition{}, err
	}

	if err := prog.Inject(pkg); err != nil {
		return Definition{}, fmt.Errorf("injecting marker package: %w", err)
	}

	obj, err := r.lookup(pkg)
	if err != nil {
		return Definition{}, err
	}

	return Definition{obj: obj, synthetic: true}, nil
}

func (r Registry) lookup(pkg *types.Package) (*types.TypeName, error) {
	obj, ok := pkg.Scope().Lookup(r.typeName).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("package %s does not declare type %s", r.path, r.typeName)
	}

	return obj, nil
}

// check type-checks the canonical source into a fresh package.
func (r Registry) check() (*types.Package, error) {
	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, r.name+".go", r.source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing marker source: %w", err)
	}

	if len(f.Imports) > 0 {
		return nil, errors.New("marker source must not import packages")
	}

	conf := types.Config{}

	pkg, err := conf.Check(r.path, fset, []*ast.File{f}, nil)
	if err != nil {
		return nil, fmt.Errorf("type-checking marker source: %w", err)
	}

	return pkg, nil
}

// Importer returns an importer that serves the marker package from its
// canonical source and delegates every other path to next. Each importer
// owns its own instance of the package.
func (r Registry) Importer(next types.Importer) types.Importer {
	return &importer{reg: r, next: next}
}

type importer struct {
	reg  Registry
	next types.Importer
	pkg  *types.Package
}

func (i *importer) Import(path string) (*types.Package, error) {
	if path != i.reg.path {
		if i.next == nil {
			return nil, fmt.Errorf("package %s not found", path)
		}

		return i.next.Import(path)
	}

	if i.pkg == nil {
		pkg, err := i.reg.check()
		if err != nil {
			return nil, err
		}

		i.pkg = pkg
	}

	return i.pkg, nil
}
