package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"go/types"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"ctor-generator/internal/config"
	"ctor-generator/internal/plan"
)

// List prints the constructors a gen run would produce.
type List struct {
	Target `embed:""`

	Format string `help:"Output format" enum:"text,yaml,json" default:"text"`
}

// listEntry is the serialized form of one constructor.
type listEntry struct {
	Type   string      `json:"type"   yaml:"type"`
	Func   string      `json:"func"   yaml:"func"`
	Path   string      `json:"path"   yaml:"path"`
	Params []listParam `json:"params" yaml:"params"`
}

type listParam struct {
	Name  string `json:"name"  yaml:"name"`
	Field string `json:"field" yaml:"field"`
	Type  string `json:"type"  yaml:"type"`
}

// Run is called by Kong when the list command is executed.
func (c *List) Run(ctx context.Context, logger *slog.Logger, opts config.Options) error {
	res, err := runPass(ctx, logger, opts, c.Target)
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0, len(res.Specs))
	for _, spec := range res.Specs {
		entries = append(entries, newListEntry(spec))
	}

	return writeEntries(stdout, entries, c.Format)
}

func newListEntry(spec *plan.ConstructorSpec) listEntry {
	qual := types.RelativeTo(spec.Package.Types)

	e := listEntry{
		Type:   spec.ID.String(),
		Func:   spec.FuncName,
		Path:   filepath.Join(spec.Package.Dir, spec.Filename),
		Params: []listParam{},
	}

	for _, p := range spec.Params {
		e.Params = append(e.Params, listParam{
			Name:  p.Name,
			Field: p.Field.Selector(),
			Type:  types.TypeString(p.Field.Type, qual),
		})
	}

	return e
}

func writeEntries(w io.Writer, entries []listEntry, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(entries); err != nil {
			return err
		}

		return enc.Close()
	default:
		for _, e := range entries {
			params := make([]string, 0, len(e.Params))
			for _, p := range e.Params {
				params = append(params, p.Name+" "+p.Type)
			}

			if _, err := fmt.Fprintf(w, "%s\t%s(%s)\t%s\n", e.Type, e.Func, strings.Join(params, ", "), e.Path); err != nil {
				return err
			}
		}

		return nil
	}
}
