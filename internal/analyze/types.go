package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strconv"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "ctor-generator/store"
	Name    string // e.g., "Order"
}

// TypeIDOf returns the TypeID of a declared type.
func TypeIDOf(obj *types.TypeName) TypeID {
	id := TypeID{Name: obj.Name()}
	if obj.Pkg() != nil {
		id.PkgPath = obj.Pkg().Path()
	}

	return id
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Package is one package of the host program together with its syntax and
// type information.
type Package struct {
	ID    string // loader-specific identifier, e.g. "p [p.test]"
	Path  string // import path
	Name  string // package name
	Dir   string // directory holding the package sources
	Files []*ast.File
	Types *types.Package
	Info  *types.Info
	// Errors holds load, parse and type errors. The package is still usable:
	// the semantic view is partial by nature.
	Errors []error
}

// Program is a read-only semantic view of the host program. The only mutation
// it supports is the injection of packages the host does not reach itself.
type Program struct {
	Fset *token.FileSet
	// Packages are the packages matched by the load request, sorted by ID.
	Packages []*Package

	byPath   map[string]*types.Package
	injected map[string]bool
}

// NewProgram indexes the given packages and every package they import.
func NewProgram(fset *token.FileSet, pkgs []*Package) *Program {
	sort.SliceStable(pkgs, func(i, j int) bool { return pkgs[i].ID < pkgs[j].ID })

	p := &Program{
		Fset:     fset,
		Packages: pkgs,
		byPath:   make(map[string]*types.Package),
		injected: make(map[string]bool),
	}

	for _, pkg := range pkgs {
		if pkg.Types != nil {
			p.index(pkg.Types)
		}
	}

	return p
}

func (p *Program) index(pkg *types.Package) {
	if _, ok := p.byPath[pkg.Path()]; ok {
		return
	}

	p.byPath[pkg.Path()] = pkg
	for _, imp := range pkg.Imports() {
		p.index(imp)
	}
}

// Lookup returns the package with the given import path, or nil if the
// program does not reach it.
func (p *Program) Lookup(path string) *types.Package {
	return p.byPath[path]
}

// Inject makes pkg resolvable through Lookup. It fails if the program already
// reaches a package with the same path.
func (p *Program) Inject(pkg *types.Package) error {
	if _, ok := p.byPath[pkg.Path()]; ok {
		return fmt.Errorf("package %s is already part of the program", pkg.Path())
	}

	p.byPath[pkg.Path()] = pkg
	p.injected[pkg.Path()] = true

	return nil
}

// Injected reports whether the package with the given path was injected
// rather than loaded.
func (p *Program) Injected(path string) bool {
	return p.injected[path]
}

// NewInfo returns a types.Info with every map the pipeline reads.
func NewInfo() *types.Info {
	return &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
		Instances:  make(map[*ast.Ident]types.Instance),
	}
}

// packageDir returns the directory of the first file in files.
func packageDir(files []string) string {
	if len(files) == 0 {
		return ""
	}

	return filepath.Dir(files[0])
}

// ImportedPackage returns the package imported by imp in a file of pkg,
// preferring the type checker's record over a lookup by path.
func (p *Program) ImportedPackage(pkg *Package, imp *ast.ImportSpec) *types.Package {
	if imported := ImportedBy(pkg, imp); imported != nil {
		return imported
	}

	path, err := strconv.Unquote(imp.Path.Value)
	if err != nil {
		return nil
	}

	return p.Lookup(path)
}

// ImportedBy returns the package the type checker recorded for imp, or nil.
func ImportedBy(pkg *Package, imp *ast.ImportSpec) *types.Package {
	if pkg.Info == nil {
		return nil
	}

	var obj types.Object
	if imp.Name != nil {
		obj = pkg.Info.Defs[imp.Name]
	} else {
		obj = pkg.Info.Implicits[imp]
	}

	if pn, ok := obj.(*types.PkgName); ok {
		return pn.Imported()
	}

	return nil
}

// ImportName returns the name imp binds in its file: the explicit name if
// any ("_" and "." included), else the name of imported.
func ImportName(imp *ast.ImportSpec, imported *types.Package) string {
	if imp.Name != nil {
		return imp.Name.Name
	}

	return imported.Name()
}
