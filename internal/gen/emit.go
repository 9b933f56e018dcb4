package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"ctor-generator/internal/analyze"
)

// ErrKeyCollision is wrapped by every CollisionError.
var ErrKeyCollision = errors.New("emission key collision")

// Unit is one generated source file, keyed by the fully qualified name of the
// type it constructs.
type Unit struct {
	Key     analyze.TypeID
	Path    string
	Content []byte
}

// NewUnit places a generated file in dir.
func NewUnit(key analyze.TypeID, dir string, file *GeneratedFile) Unit {
	return Unit{
		Key:     key,
		Path:    filepath.Join(dir, file.Filename),
		Content: file.Content,
	}
}

// CollisionError reports two units that would overwrite each other.
type CollisionError struct {
	// Unit is the unit that was rejected.
	Unit Unit
	// Existing is the key of the unit registered first.
	Existing analyze.TypeID
	// SamePath is true when the keys differ but the output paths do not.
	SamePath bool
}

func (e *CollisionError) Error() string {
	if e.SamePath {
		return fmt.Sprintf("%s and %s both generate %s", e.Existing, e.Unit.Key, e.Unit.Path)
	}

	return fmt.Sprintf("%s is generated twice", e.Unit.Key)
}

func (e *CollisionError) Unwrap() error { return ErrKeyCollision }

// UnitSet is the generated-source set of one pass.
type UnitSet struct {
	byKey  map[analyze.TypeID]Unit
	byPath map[string]analyze.TypeID
}

// NewUnitSet creates an empty set.
func NewUnitSet() *UnitSet {
	return &UnitSet{
		byKey:  make(map[analyze.TypeID]Unit),
		byPath: make(map[string]analyze.TypeID),
	}
}

// Register adds u to the set. A unit whose key or output path is already
// registered is rejected with a *CollisionError.
func (s *UnitSet) Register(u Unit) error {
	if _, ok := s.byKey[u.Key]; ok {
		return &CollisionError{Unit: u, Existing: u.Key}
	}

	path := filepath.Clean(u.Path)
	if other, ok := s.byPath[path]; ok {
		return &CollisionError{Unit: u, Existing: other, SamePath: true}
	}

	s.byKey[u.Key] = u
	s.byPath[path] = u.Key

	return nil
}

// Len returns the number of registered units.
func (s *UnitSet) Len() int {
	return len(s.byKey)
}

// Units returns the registered units sorted by key.
func (s *UnitSet) Units() []Unit {
	out := make([]Unit, 0, len(s.byKey))
	for _, u := range s.byKey {
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key.String() < out[j].Key.String() })

	return out
}

// DiffUnits returns the paths of units whose file is missing or differs from
// the generated content. read is usually os.ReadFile.
func DiffUnits(units []Unit, read func(path string) ([]byte, error)) ([]string, error) {
	var stale []string

	for _, u := range units {
		have, err := read(u.Path)
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, u.Path)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", u.Path, err)
		}

		if !bytes.Equal(have, u.Content) {
			stale = append(stale, u.Path)
		}
	}

	return stale, nil
}
