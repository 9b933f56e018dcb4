// Package naming derives Go identifiers for generated code: constructor
// parameter names, constructor function names and output file names.
package naming

import (
	"fmt"
	"go/token"
	"hash/fnv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParamName derives the constructor parameter name for a struct field: every
// leading underscore is stripped and the first remaining character is
// lower-cased. The rest of the name is kept verbatim.
//
// The result may be empty or not a valid parameter name (see IsValidParam).
func ParamName(field string) string {
	rest := strings.TrimLeft(field, "_")
	if rest == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(rest)

	return string(unicode.ToLower(r)) + rest[size:]
}

// IsValidParam reports whether name can be declared as a function parameter.
func IsValidParam(name string) bool {
	return name != "_" && token.IsIdentifier(name)
}

// ConstructorName returns the constructor function name for a type. Exported
// types get an exported constructor.
func ConstructorName(typeName string) string {
	if token.IsExported(typeName) {
		return "New" + typeName
	}

	r, size := utf8.DecodeRuneInString(typeName)

	return "new" + string(unicode.ToUpper(r)) + typeName[size:]
}

// SnakeCase converts an identifier into lower snake case.
// Examples:
//   - "MyService" -> "my_service"
//   - "HTTPServer" -> "http_server"
//   - "order" -> "order"
func SnakeCase(s string) string {
	return strings.Join(TokenizeIdent(s), "_")
}

// FileName returns the output file name of a type's constructor. Types
// declared in test files get a _test.go name so the constructor only builds
// with the tests.
func FileName(typeName, suffix string, test bool) string {
	name := SnakeCase(typeName) + suffix
	if test {
		name = strings.TrimSuffix(name, ".go") + "_test.go"
	}

	return name
}

// DisambiguatedFileName is FileName with a hash of the exact type name
// inserted before the suffix. It separates types whose snake-cased names
// coincide, e.g. "HTTPServer" and "HttpServer", on case-insensitive file
// systems too.
func DisambiguatedFileName(typeName, suffix string, test bool) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(typeName))

	return FileName(typeName, fmt.Sprintf("_%08x%s", h.Sum32(), suffix), test)
}
