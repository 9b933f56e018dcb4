package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"strings"
	"text/template"

	"ctor-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// DebugDir receives the unformatted source of a constructor whose
	// formatting failed. Empty disables the sidecar.
	DebugDir string
	// GenerateComments enables doc comments on generated constructors.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		GenerateComments: true,
	}
}

// Generator renders constructor specifications into Go source.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "my_service_ctor.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders the constructor of spec as a complete source file of the
// type's package. The output depends only on spec, so equal inputs give
// byte-identical files.
func (g *Generator) Generate(spec *plan.ConstructorSpec) (*GeneratedFile, error) {
	data, err := g.buildTemplateData(spec)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", spec.ID, err)
	}

	var buf bytes.Buffer
	if err := ctorTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.DebugDir != "" {
			_ = writeDebugUnformatted(g.config.DebugDir, spec.Filename, buf.Bytes())
		}

		return nil, fmt.Errorf("formatting constructor of %s: %w", spec.ID, err)
	}

	return &GeneratedFile{
		Filename: spec.Filename,
		Content:  formatted,
	}, nil
}

type templateData struct {
	PackageName string
	Imports     []importSpec
	Comment     string
	FuncName    string
	TypeParams  string
	Params      []paramData
	ResultType  string
	LiteralType string
	Elements    []string
}

type paramData struct {
	Name string
	Type string
}

func (g *Generator) buildTemplateData(spec *plan.ConstructorSpec) (*templateData, error) {
	home := spec.Object.Pkg()
	imports := newImportSet(home)

	// Initializer expressions are copied verbatim, so their package names
	// must be imported under exactly those names, before any type claims them.
	for _, f := range spec.Initializers() {
		if err := imports.requireExpr(spec, f.Initializer); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Selector(), err)
		}
	}

	qual := imports.qualifier
	data := &templateData{
		PackageName: home.Name(),
		FuncName:    spec.FuncName,
	}

	var tparams, targs []string

	tps := spec.Named.TypeParams()
	for i := range tps.Len() {
		tp := tps.At(i)
		tparams = append(tparams, tp.Obj().Name()+" "+types.TypeString(tp.Constraint(), qual))
		targs = append(targs, tp.Obj().Name())
	}

	data.LiteralType = spec.Object.Name()
	if len(tparams) > 0 {
		data.TypeParams = "[" + strings.Join(tparams, ", ") + "]"
		data.LiteralType += "[" + strings.Join(targs, ", ") + "]"
	}

	data.ResultType = "*" + data.LiteralType

	for _, p := range spec.Params {
		data.Params = append(data.Params, paramData{
			Name: p.Name,
			Type: types.TypeString(p.Field.Type, qual),
		})
	}

	data.Elements = buildLiteral(spec, qual).render()

	if g.config.GenerateComments {
		data.Comment = fmt.Sprintf("%s returns a new %s with its immutable fields set.", spec.FuncName, spec.Object.Name())
	}

	data.Imports = imports.specs()

	return data, nil
}

// literal is a keyed composite literal under construction.
type literal struct {
	keys     []string
	values   map[string]string
	children map[string]*literal
	typ      string
}

func newLiteral(typ string) *literal {
	return &literal{
		values:   make(map[string]string),
		children: make(map[string]*literal),
		typ:      typ,
	}
}

// buildLiteral lays out the keyed elements of the constructed value in field
// declaration order. Promoted fields are nested under their embedded field.
func buildLiteral(spec *plan.ConstructorSpec, qual types.Qualifier) *literal {
	root := newLiteral("")

	for _, f := range spec.Fields {
		var value string

		if p, ok := spec.ParamFor(f.Selector()); ok {
			value = p.Name
		} else if f.HasInitializer && f.Initializer != "" && f.Nameable {
			value = f.Initializer
		} else {
			continue
		}

		lit := root
		for i, e := range f.Embeds {
			key := f.Path[i]

			child, ok := lit.children[key]
			if !ok {
				child = newLiteral(types.TypeString(e.Type(), qual))
				lit.children[key] = child
				lit.keys = append(lit.keys, key)
			}

			lit = child
		}

		lit.keys = append(lit.keys, f.Name)
		lit.values[f.Name] = value
	}

	return root
}

// render returns one "key: value" element per key.
func (l *literal) render() []string {
	out := make([]string, 0, len(l.keys))

	for _, key := range l.keys {
		if child, ok := l.children[key]; ok {
			out = append(out, key+": "+child.typ+"{\n"+strings.Join(child.render(), ",\n")+",\n}")
			continue
		}

		out = append(out, key+": "+l.values[key])
	}

	return out
}

var ctorTemplate = template.Must(template.New("ctor").Parse(`// Code generated by ctor-generator. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{if .Comment}}// {{.Comment}}
{{end}}func {{.FuncName}}{{.TypeParams}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Name}} {{$p.Type}}{{end}}) {{.ResultType}} {
{{- if .Elements}}
	return &{{.LiteralType}}{
{{range .Elements}}		{{.}},
{{end}}	}
{{- else}}
	return &{{.LiteralType}}{}
{{- end}}
}
`))
