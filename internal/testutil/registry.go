package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SampleRegistry is a small NodeIds.csv in the registry's native shape:
// no header row, three positional fields.
const SampleRegistry = `Boolean,1,DataType
SByte,2,DataType
Byte,3,DataType
References,31,ReferenceType
HasChild,34,ReferenceType
Organizes,35,ReferenceType
HasComponent,47,ReferenceType
FolderType,61,ObjectType
Server,2253,Object
`

// WriteRegistry writes rows, one per line, to NodeIds.csv in dir and
// returns its path.
func WriteRegistry(t testing.TB, dir string, rows ...string) string {
	t.Helper()
	content := strings.Join(rows, "\n")
	if len(rows) > 0 {
		content += "\n"
	}
	return WriteFile(t, dir, "NodeIds.csv", content)
}

// WriteFile writes content to dir/name and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test fixture path
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
