package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctor-generator/internal/analyze"
	"ctor-generator/internal/diagnostic"
)

const sampleSrc = `package host

import "sync"

type empty struct{ e [0]struct{} }

// @primary.Constructor
type Sample struct {
	id      string
	Name    string
	_       int
	marker  struct{}
	arr     [0]int
	nested  empty
	mu      sync.Mutex
	cache   map[string]int ` + "`ctor:\"init\"`" + `
	limit   int            ` + "`ctor:\"init=10\"`" + `
	skip    int            ` + "`ctor:\"-\"`" + `
	tagged  string         ` + "`json:\"tagged\"`" + `
}
`

func TestSelectFields_Predicates(t *testing.T) {
	prog := loadProgram(t, host(map[string]string{"sample.go": sampleSrc}))
	c := confirmOne(t, prog)

	fields, diags := SelectFields(prog.Fset, c, DefaultConfig())
	require.True(t, diags.IsValid())

	type want struct {
		immutable, static, init, nameable, eligible bool
		initializer                                 string
	}

	expected := map[string]want{
		"id":     {immutable: true, nameable: true, eligible: true},
		"Name":   {nameable: true},
		"_":      {immutable: true},
		"marker": {immutable: true, static: true, nameable: true},
		"arr":    {immutable: true, static: true, nameable: true},
		"nested": {immutable: true, static: true, nameable: true},
		"mu":     {immutable: true, nameable: true, eligible: true},
		"cache":  {immutable: true, init: true, nameable: true},
		"limit":  {immutable: true, init: true, nameable: true, initializer: "10"},
		"skip":   {immutable: true, init: true, nameable: true},
		"tagged": {immutable: true, nameable: true, eligible: true},
	}

	var order []string
	for _, f := range fields {
		order = append(order, f.Name)

		w, ok := expected[f.Name]
		require.True(t, ok, "unexpected field %s", f.Name)

		assert.Equal(t, w.immutable, f.Immutable, "%s immutable", f.Name)
		assert.Equal(t, w.static, f.Static, "%s static", f.Name)
		assert.Equal(t, w.init, f.HasInitializer, "%s initializer", f.Name)
		assert.Equal(t, w.initializer, f.Initializer, "%s initializer expression", f.Name)
		assert.Equal(t, w.nameable, f.Nameable, "%s nameable", f.Name)
		assert.Equal(t, w.eligible, f.Eligible(), "%s eligible", f.Name)
		assert.False(t, f.Promoted())
		assert.Equal(t, []string{f.Name}, f.Path)
	}

	assert.Equal(t, []string{"id", "Name", "_", "marker", "arr", "nested", "mu", "cache", "limit", "skip", "tagged"}, order)
}

func TestSelectFields_BadTags(t *testing.T) {
	prog := loadProgram(t, host(map[string]string{"order.go": "package host\n\n" +
		"// @primary.Constructor\n" +
		"type Order struct {\n" +
		"\ta int `ctor:\"bogus\"`\n" +
		"\tb int `ctor:\"init=)(\"`\n" +
		"\tc int `ctor:\"init=\"`\n" +
		"}\n"}))
	c := confirmOne(t, prog)

	fields, diags := SelectFields(prog.Fset, c, DefaultConfig())
	require.Len(t, fields, 3)

	bad := diags.ByCode(diagnostic.CodeBadInitializer)
	require.Len(t, bad, 3)
	assert.Equal(t, "a", bad[0].Field)
	assert.Contains(t, bad[0].Message, "unknown ctor tag")
	assert.Equal(t, "b", bad[1].Field)
	assert.Equal(t, "c", bad[2].Field)
	assert.Equal(t, 5, bad[0].Pos.Line)
}

const servicesSrc = `package host

type logger interface{ Log(string) }

type helper struct{ h int }

type mainService struct {
	logger logger
	Debug  bool
}

// @primary.Constructor
type MyService struct {
	mainService
	name string
	*helper
}
`

func TestSelectFields_EmbeddedAsField(t *testing.T) {
	prog := loadProgram(t, host(map[string]string{"services.go": servicesSrc}))
	c := confirmOne(t, prog)

	fields, diags := SelectFields(prog.Fset, c, Config{IncludeEmbedded: false, Suffix: "_ctor.go"})
	require.True(t, diags.IsValid())
	require.Len(t, fields, 3)

	assert.Equal(t, "mainService", fields[0].Name)
	assert.True(t, fields[0].Embedded)
	assert.True(t, fields[0].Eligible())
	assert.Equal(t, "helper", fields[2].Name)
	assert.True(t, fields[2].Eligible())
}

func TestSelectFields_IncludeEmbedded(t *testing.T) {
	prog := loadProgram(t, host(map[string]string{"services.go": servicesSrc}))
	c := confirmOne(t, prog)

	fields, diags := SelectFields(prog.Fset, c, Config{IncludeEmbedded: true, Suffix: "_ctor.go"})
	require.True(t, diags.IsValid())

	var selectors []string
	for _, f := range fields {
		selectors = append(selectors, f.Selector())
	}

	// Pointer embeds stay ordinary fields.
	assert.Equal(t, []string{"mainService.logger", "mainService.Debug", "name", "helper"}, selectors)

	logger := fields[0]
	assert.True(t, logger.Promoted())
	assert.True(t, logger.Eligible())
	require.Len(t, logger.Embeds, 1)
	assert.Equal(t, "mainService", logger.Embeds[0].Name())

	assert.False(t, fields[1].Eligible(), "exported promoted fields are mutable")
	assert.True(t, fields[3].Embedded)
	assert.Empty(t, fields[3].Embeds)
}

const initializedEmbedSrc = `package host

type base struct {
	logger string
}

// @primary.Constructor
type S struct {
	base ` + "`ctor:\"init=base{logger: \\\"x\\\"}\"`" + `
	id   int
}
`

func TestSelectFields_InitializedEmbeddedFieldIsNotExpanded(t *testing.T) {
	for _, include := range []bool{false, true} {
		prog := loadProgram(t, host(map[string]string{"s.go": initializedEmbedSrc}))
		cfg := Config{IncludeEmbedded: include, Suffix: "_ctor.go"}

		spec, diags := plan(t, prog, cfg)
		require.True(t, diags.IsValid(), "IncludeEmbedded=%v: %s", include, diags.Error())

		assert.Equal(t, []string{"id"}, paramNames(spec), "IncludeEmbedded=%v", include)

		inits := spec.Initializers()
		require.Len(t, inits, 1, "IncludeEmbedded=%v", include)
		assert.Equal(t, "base", inits[0].Selector())
		assert.Equal(t, `base{logger: "x"}`, inits[0].Initializer)
		assert.True(t, inits[0].Embedded)
		assert.Empty(t, inits[0].Embeds)
	}
}

func TestSelectFields_ForeignEmbeddedFieldsAreNotNameable(t *testing.T) {
	base := analyze.SourcePackage{
		Path:  "example.com/base",
		Files: map[string]string{"base.go": "package base\n\ntype Base struct {\n\tid   string\n\tName string\n}\n"},
	}

	prog := loadProgram(t, base, host(map[string]string{"t.go": `package host

import "example.com/base"

// @primary.Constructor
type T struct {
	base.Base
	n int
}
`}))
	c := confirmOne(t, prog)

	fields, _ := SelectFields(prog.Fset, c, Config{IncludeEmbedded: true, Suffix: "_ctor.go"})
	require.Len(t, fields, 3)

	assert.Equal(t, "Base.id", fields[0].Selector())
	assert.True(t, fields[0].Immutable)
	assert.False(t, fields[0].Nameable)
	assert.False(t, fields[0].Eligible())

	assert.True(t, fields[1].Nameable)
	assert.True(t, fields[2].Eligible())
}

func TestIsZeroSize(t *testing.T) {
	prog := loadProgram(t, host(map[string]string{"z.go": `package host

type none struct{}
type pair struct{ a, b none }
type list struct{ next *list }
type wrapped [3]none

var (
	_ none
	_ pair
	_ list
	_ wrapped
)
`}))
	scope := prog.Packages[0].Types.Scope()

	assert.True(t, isZeroSize(scope.Lookup("none").Type(), nil))
	assert.True(t, isZeroSize(scope.Lookup("pair").Type(), nil), "repeated sibling types")
	assert.False(t, isZeroSize(scope.Lookup("list").Type(), nil))
	assert.True(t, isZeroSize(scope.Lookup("wrapped").Type(), nil))
}
