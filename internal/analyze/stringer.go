package analyze

import (
	"strings"
)

// TypePath builds a readable path string for a field.
// Examples:
//   - "MyService" for the type itself
//   - "MyService.logger" for a direct field
//   - "MyService.mainService.logger" for a field promoted from an embedded struct
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Fields returns the path elements after the root.
func (p *TypePath) Fields() []string {
	if len(p.parts) <= 1 {
		return nil
	}

	return append([]string{}, p.parts[1:]...)
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}
