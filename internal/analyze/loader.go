package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// LoadConfig controls how the host program is loaded.
type LoadConfig struct {
	// Dir is the directory in which to run the build system's query tool.
	Dir string
	// Tags are extra build tags.
	Tags []string
	// Tests includes the test variants of the matched packages.
	Tests bool
	// Env overrides the environment of the query tool when non-nil.
	Env []string
	// Logf receives the loader's debug output when non-nil.
	Logf func(format string, args ...any)
}

// LoadPackages loads the packages matching the patterns into a Program.
// Patterns are standard Go package patterns (e.g., "./store", "ctor-generator/warehouse").
//
// Per-package errors do not fail the load; they are recorded on Package.Errors.
func LoadPackages(ctx context.Context, cfg LoadConfig, patterns ...string) (*Program, error) {
	fset := token.NewFileSet()

	pcfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     cfg.Dir,
		Env:     cfg.Env,
		Fset:    fset,
		Tests:   cfg.Tests,
		Logf:    cfg.Logf,
	}
	if len(cfg.Tags) > 0 {
		pcfg.BuildFlags = []string{"-tags=" + strings.Join(cfg.Tags, ",")}
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var loaded []*Package

	for _, pkg := range selectVariants(pkgs) {
		p := &Package{
			ID:    pkg.ID,
			Path:  pkg.PkgPath,
			Name:  pkg.Name,
			Dir:   packageDir(pkg.GoFiles),
			Files: pkg.Syntax,
			Types: pkg.Types,
			Info:  pkg.TypesInfo,
		}
		for _, e := range pkg.Errors {
			p.Errors = append(p.Errors, e)
		}

		loaded = append(loaded, p)
	}

	return NewProgram(fset, loaded), nil
}

// selectVariants keeps one variant per package path so that every file is
// visited once: the test-augmented variant "p [p.test]" replaces "p", and
// synthesized test main packages are dropped.
func selectVariants(pkgs []*packages.Package) []*packages.Package {
	byPath := make(map[string]*packages.Package)

	var order []string

	for _, pkg := range pkgs {
		if strings.HasSuffix(pkg.ID, ".test") && pkg.Name == "main" {
			continue
		}

		prev, ok := byPath[pkg.PkgPath]
		if !ok {
			order = append(order, pkg.PkgPath)
			byPath[pkg.PkgPath] = pkg

			continue
		}

		if !isTestVariant(prev) && isTestVariant(pkg) {
			byPath[pkg.PkgPath] = pkg
		}
	}

	out := make([]*packages.Package, 0, len(order))
	for _, p := range order {
		out = append(out, byPath[p])
	}

	return out
}

func isTestVariant(pkg *packages.Package) bool {
	return strings.Contains(pkg.ID, " [")
}

// SourcePackage is an in-memory package for LoadSource.
type SourcePackage struct {
	// Path is the import path.
	Path string
	// Dir is the directory units are written to. Defaults to Path.
	Dir string
	// Files maps file names (relative to Dir) to their contents.
	Files map[string]string
}

// LoadSource parses and type-checks in-memory packages into a Program. Each
// package may import the ones listed before it; other imports go to imp.
//
// Parse and type errors do not fail the load; they are recorded on
// Package.Errors.
func LoadSource(imp types.Importer, srcs ...SourcePackage) (*Program, error) {
	fset := token.NewFileSet()
	local := &memImporter{pkgs: make(map[string]*types.Package), next: imp}

	var loaded []*Package

	for _, src := range srcs {
		if src.Path == "" {
			return nil, errors.New("source package without import path")
		}

		dir := src.Dir
		if dir == "" {
			dir = src.Path
		}

		p := &Package{ID: src.Path, Path: src.Path, Dir: dir, Info: NewInfo()}

		names := make([]string, 0, len(src.Files))
		for name := range src.Files {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			f, err := parser.ParseFile(fset, filepath.Join(dir, name), src.Files[name], parser.ParseComments|parser.AllErrors)
			if err != nil {
				p.Errors = append(p.Errors, err)
			}

			if f != nil {
				p.Files = append(p.Files, f)
			}
		}

		if len(p.Files) == 0 {
			return nil, fmt.Errorf("source package %s has no parsable files", src.Path)
		}

		p.Name = p.Files[0].Name.Name

		conf := types.Config{
			Importer: local,
			Error:    func(err error) { p.Errors = append(p.Errors, err) },
		}

		// Type errors are collected by conf.Error.
		p.Types, _ = conf.Check(src.Path, fset, p.Files, p.Info)
		local.pkgs[src.Path] = p.Types

		loaded = append(loaded, p)
	}

	return NewProgram(fset, loaded), nil
}

// memImporter serves already checked in-memory packages before delegating.
type memImporter struct {
	pkgs map[string]*types.Package
	next types.Importer
}

func (m *memImporter) Import(path string) (*types.Package, error) {
	if pkg, ok := m.pkgs[path]; ok {
		return pkg, nil
	}

	if m.next == nil {
		return nil, fmt.Errorf("package %s not found", path)
	}

	return m.next.Import(path)
}
