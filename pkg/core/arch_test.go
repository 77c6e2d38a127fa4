package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulePath = "github.com/leapstack-labs/st4conv"

// importsOf returns the non-test imports of every Go file in dir.
func importsOf(t *testing.T, dir string) map[string][]string {
	t.Helper()

	fset := token.NewFileSet()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}

	out := make(map[string][]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
			continue
		}
		if strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}
		for _, imp := range f.Imports {
			out[entry.Name()] = append(out[entry.Name()], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}

// TestLayering verifies the model and derivation packages stay free of
// third-party and internal imports.
// The Golden Rule: pkg/core imports ONLY stdlib.
func TestLayering(t *testing.T) {
	tests := []struct {
		dir     string
		allowed map[string]bool
	}{
		{dir: ".", allowed: map[string]bool{}},
		{dir: "../geometry", allowed: map[string]bool{}},
		{dir: "../st4", allowed: map[string]bool{
			modulePath + "/pkg/core": true,
		}},
		{dir: "../assembler", allowed: map[string]bool{
			modulePath + "/pkg/core":     true,
			modulePath + "/pkg/geometry": true,
			modulePath + "/pkg/st4":      true,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			for file, imports := range importsOf(t, tt.dir) {
				for _, imp := range imports {
					// Allow stdlib (no dots in path)
					if !strings.Contains(imp, ".") {
						continue
					}
					if strings.Contains(imp, "/internal/") {
						t.Errorf("%s imports internal package: %s", file, imp)
						continue
					}
					if !tt.allowed[imp] {
						t.Errorf("%s imports forbidden package: %s", file, imp)
					}
				}
			}
		})
	}
}
