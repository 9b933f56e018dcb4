package gen_test

import (
	"os/exec"
	"path/filepath"
	"testing"
)

// runExampleIntegrationTest checks that the committed constructors of an
// example package are current and that the package builds with them.
func runExampleIntegrationTest(t *testing.T, pkg string, flags ...string) {
	t.Helper()

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}

	args := append([]string{"run", "./cmd/ctor-generator"}, flags...)
	args = append(args, "check", "./"+pkg)

	cmd := exec.CommandContext(t.Context(), "go", args...)
	cmd.Dir = repoRoot

	b, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, string(b))
	}

	build := exec.CommandContext(t.Context(), "go", "test", "./"+pkg, "-count=1")
	build.Dir = repoRoot

	b, err = build.CombinedOutput()
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, string(b))
	}
}
