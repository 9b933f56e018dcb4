package plan

import (
	"fmt"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/diagnostic"
)

// TagKey is the struct tag key read by the field selector.
//
//	ctor:"init"        the field starts at its zero value
//	ctor:"init=EXPR"   the field starts at the Go expression EXPR
//	ctor:"-"           same as "init"
const TagKey = "ctor"

// SelectFields describes the fields of a confirmed struct in declaration
// order. With IncludeEmbedded, non-pointer embedded structs are replaced by
// their own fields at the embedding position.
//
// Use FieldDescriptor.Eligible to pick the constructor parameters.
func SelectFields(fset *token.FileSet, c Confirmed, cfg Config) ([]FieldDescriptor, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	st := c.Struct()
	if st == nil {
		return nil, diags
	}

	s := &selector{
		fset:  fset,
		home:  c.Object.Pkg(),
		cfg:   cfg,
		typ:   c.ID.String(),
		diags: &diags,
	}
	s.walk(st, analyze.NewTypePath(c.ID.Name), nil, true)

	return s.out, diags
}

type selector struct {
	fset  *token.FileSet
	home  *types.Package
	cfg   Config
	typ   string
	diags *diagnostic.Diagnostics
	out   []FieldDescriptor
}

// walk appends the descriptors of st. reachable is false below an embedded
// field generated code cannot name.
func (s *selector) walk(st *types.Struct, path *analyze.TypePath, embeds []*types.Var, reachable bool) {
	for i := range st.NumFields() {
		v := st.Field(i)
		fieldPath := path.Field(v.Name())
		nameable := reachable && s.accessible(v)

		d := FieldDescriptor{
			Name:      v.Name(),
			Type:      v.Type(),
			Var:       v,
			Path:      fieldPath.Fields(),
			Embeds:    embeds,
			Embedded:  v.Embedded(),
			Immutable: !v.Exported(),
			Static:    isZeroSize(v.Type(), nil),
			Nameable:  nameable,
			Pos:       s.fset.Position(v.Pos()),
		}

		s.applyTag(&d, reflect.StructTag(st.Tag(i)))

		// An initialized embedded field is set as a whole and never expanded.
		if v.Embedded() && s.cfg.IncludeEmbedded && !d.HasInitializer {
			// Pointer embeds have a pointer underlying type and stay ordinary fields.
			if inner, ok := v.Type().Underlying().(*types.Struct); ok {
				s.walk(inner, fieldPath, append(embeds[:len(embeds):len(embeds)], v), nameable)
				continue
			}
		}

		s.out = append(s.out, d)
	}
}

// accessible reports whether code in the constructed type's package may
// refer to v by name.
func (s *selector) accessible(v *types.Var) bool {
	if v.Name() == "_" {
		return false
	}

	return v.Exported() || v.Pkg() == s.home
}

func (s *selector) applyTag(d *FieldDescriptor, tag reflect.StructTag) {
	value, ok := tag.Lookup(TagKey)
	if !ok {
		return
	}

	switch {
	case value == "init" || value == "-":
		d.HasInitializer = true
	case strings.HasPrefix(value, "init="):
		expr := strings.TrimSpace(strings.TrimPrefix(value, "init="))
		if _, err := parser.ParseExpr(expr); err != nil || expr == "" {
			s.diags.AddError(diagnostic.CodeBadInitializer,
				fmt.Sprintf("initializer %q is not a Go expression", expr), s.typ, d.Selector(), d.Pos)

			return
		}

		d.HasInitializer = true
		d.Initializer = expr
	default:
		s.diags.AddError(diagnostic.CodeBadInitializer,
			fmt.Sprintf(`unknown %s tag %q; want "init", "init=EXPR" or "-"`, TagKey, value),
			s.typ, d.Selector(), d.Pos)
	}
}

// isZeroSize reports whether values of t occupy no memory, so a field of
// type t carries no per-instance state.
func isZeroSize(t types.Type, seen map[types.Type]bool) bool {
	if seen[t] {
		return false
	}

	if seen == nil {
		seen = make(map[types.Type]bool)
	}

	seen[t] = true
	defer delete(seen, t)

	switch u := t.Underlying().(type) {
	case *types.Struct:
		for i := range u.NumFields() {
			if !isZeroSize(u.Field(i).Type(), seen) {
				return false
			}
		}

		return true
	case *types.Array:
		return u.Len() == 0 || isZeroSize(u.Elem(), seen)
	default:
		return false
	}
}
