package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"strings"
	"text/scanner"

	"ctor-generator/internal/diagnostic"
)

// Annotation is one "@name" line of a doc comment, e.g.
//
//	// @primary.Constructor
type Annotation struct {
	// Qualifier is the package qualifier; empty for unqualified names.
	Qualifier string
	// Name is the annotation type name.
	Name string
	// Value is the raw text following the header, if any.
	Value string
	// Pos is the position of the "@".
	Pos token.Position
}

// String returns the annotation header as written.
func (a Annotation) String() string {
	if a.Qualifier == "" {
		return "@" + a.Name
	}

	return "@" + a.Qualifier + "." + a.Name
}

// HasAnnotations reports whether any line of doc starts with "@".
func HasAnnotations(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		for _, line := range strings.Split(commentBody(c.Text), "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "@") {
				return true
			}
		}
	}

	return false
}

// ParseAnnotations extracts the annotations of a doc comment. Lines that start
// with "@" but do not carry a well-formed header are reported as errors with
// positions and otherwise ignored.
func ParseAnnotations(fset *token.FileSet, doc *ast.CommentGroup) ([]Annotation, []error) {
	if doc == nil {
		return nil, nil
	}

	var (
		annos []Annotation
		errs  []error
	)

	for _, c := range doc.List {
		base := fset.Position(c.Slash)
		off := 0

		for i, line := range strings.Split(c.Text, "\n") {
			lineOff := off
			off += len(line) + 1

			raw := line
			if i == 0 {
				// Blank out the comment opener so column offsets stay intact.
				raw = "  " + line[2:]
			}

			if strings.HasSuffix(c.Text, "*/") && i == strings.Count(c.Text, "\n") {
				raw = strings.TrimSuffix(raw, "*/")
			}

			trimmed := strings.TrimSpace(raw)
			if !strings.HasPrefix(trimmed, "@") {
				continue
			}

			at := strings.Index(raw, "@")
			pos := base
			pos.Offset += lineOff + at
			pos.Line += i

			if i == 0 {
				pos.Column += at
			} else {
				pos.Column = at + 1
			}

			a, err := parseHeader(trimmed[1:])
			if err != nil {
				errs = append(errs, diagnostic.NewPositionError(pos, err))
				continue
			}

			a.Pos = pos
			annos = append(annos, a)
		}
	}

	return annos, errs
}

// parseHeader parses `identifier [ "." identifier ] [ value ]`.
func parseHeader(text string) (Annotation, error) {
	var s scanner.Scanner

	s.Init(strings.NewReader(text))
	s.Mode = scanner.ScanIdents
	s.Whitespace = 0
	s.Error = func(*scanner.Scanner, string) {}

	var a Annotation

	if s.Scan() != scanner.Ident {
		return a, errors.New("annotation name expected after @")
	}

	a.Name = s.TokenText()

	if s.Peek() == '.' {
		s.Next()

		if s.Scan() != scanner.Ident {
			return a, fmt.Errorf("type name expected after @%s.", a.Name)
		}

		a.Qualifier = a.Name
		a.Name = s.TokenText()
	}

	rest := text[s.Pos().Offset:]
	if rest != "" && isIdentRune(rest[0]) {
		return a, fmt.Errorf("malformed annotation @%s", text)
	}

	a.Value = strings.TrimSpace(rest)

	return a, nil
}

func isIdentRune(b byte) bool {
	return b == '_' || b == '.' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func commentBody(text string) string {
	switch {
	case strings.HasPrefix(text, "//"):
		return text[2:]
	case strings.HasPrefix(text, "/*"):
		return strings.TrimSuffix(text[2:], "*/")
	default:
		return text
	}
}
