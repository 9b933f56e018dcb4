package gen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// OutputFactory creates a writer for the given output path. Output factories
// typically create files, but this lets callers redirect output.
type OutputFactory func(path string) (io.WriteCloser, error)

// FileOutput returns an OutputFactory that creates (or truncates) files,
// creating parent directories as needed.
func FileOutput() OutputFactory {
	return func(path string) (io.WriteCloser, error) {
		if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}

		return os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, filePerm)
	}
}

// WriterOutput returns an OutputFactory that prints every unit to w,
// preceded by a "// path" banner. It is used for dry runs.
func WriterOutput(w io.Writer) OutputFactory {
	return func(path string) (io.WriteCloser, error) {
		if _, err := fmt.Fprintf(w, "// %s\n", path); err != nil {
			return nil, err
		}

		return nopCloser{w}, nil
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// WriteUnits writes every unit through out. Writing zero units is a no-op.
func WriteUnits(units []Unit, out OutputFactory) error {
	for _, u := range units {
		w, err := out(u.Path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", u.Path, err)
		}

		_, err = w.Write(u.Content)
		if cerr := w.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			return fmt.Errorf("writing file %s: %w", u.Path, err)
		}
	}

	return nil
}
