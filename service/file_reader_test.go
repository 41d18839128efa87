package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIsValidCSourceFile(t *testing.T) {
	f := NewFileReader()

	assert.True(t, f.IsValidCSourceFile("main.c"))
	assert.True(t, f.IsValidCSourceFile("header.h"))
	assert.True(t, f.IsValidCSourceFile("UPPER.C"))
	assert.False(t, f.IsValidCSourceFile("main.cpp"))
	assert.False(t, f.IsValidCSourceFile("main.go"))
	assert.False(t, f.IsValidCSourceFile("README"))
}

func TestCollectCSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.c", "int x;")
	writeTestFile(t, dir, "b.h", "int y;")
	writeTestFile(t, dir, "notes.txt", "not C")
	writeTestFile(t, dir, "sub/c.c", "int z;")
	writeTestFile(t, dir, ".hidden/d.c", "int h;")
	writeTestFile(t, dir, "build/e.c", "int b;")

	f := NewFileReader()
	files, err := f.CollectCSourceFiles([]string{dir}, true, []string{"**/*.c", "**/*.h"}, nil)
	require.NoError(t, err)

	names := make([]string, len(files))
	for i, file := range files {
		rel, _ := filepath.Rel(dir, file)
		names[i] = filepath.ToSlash(rel)
	}

	assert.ElementsMatch(t, []string{"a.c", "b.h", "sub/c.c"}, names)
}

func TestCollectCSourceFilesNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.c", "int x;")
	writeTestFile(t, dir, "sub/b.c", "int y;")

	f := NewFileReader()
	files, err := f.CollectCSourceFiles([]string{dir}, false, []string{"**/*.c"}, nil)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "a.c", filepath.Base(files[0]))
}

func TestCollectCSourceFilesExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "keep.c", "int x;")
	writeTestFile(t, dir, "skip_test.c", "int y;")
	writeTestFile(t, dir, "vendor/third.c", "int z;")

	f := NewFileReader()
	files, err := f.CollectCSourceFiles([]string{dir}, true, []string{"**/*.c"}, []string{"*_test.c", "**/vendor/**"})
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "keep.c", filepath.Base(files[0]))
}

func TestCollectCSourceFilesSinglePath(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "one.c", "int x;")

	f := NewFileReader()
	files, err := f.CollectCSourceFiles([]string{path}, true, []string{"**/*.c"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestCollectCSourceFilesMissingPath(t *testing.T) {
	f := NewFileReader()
	_, err := f.CollectCSourceFiles([]string{"/nonexistent/dir"}, true, []string{"**/*.c"}, nil)
	assert.Error(t, err)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.c", "int x;")

	f := NewFileReader()

	exists, err := f.FileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.FileExists(filepath.Join(dir, "missing.c"))
	require.NoError(t, err)
	assert.False(t, exists)

	// Directories are not files
	exists, err = f.FileExists(dir)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.c", "int x = 1;")

	f := NewFileReader()

	content, err := f.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "int x = 1;", string(content))

	_, err = f.ReadFile(filepath.Join(dir, "missing.c"))
	assert.Error(t, err)
}

func TestValidatePaths(t *testing.T) {
	dir := t.TempDir()
	f := NewFileReader()

	assert.NoError(t, f.ValidatePaths([]string{dir}))
	assert.Error(t, f.ValidatePaths([]string{dir, "/no/such/path"}))
}

func TestShouldIncludeFile(t *testing.T) {
	f := NewFileReader()

	tests := []struct {
		name     string
		path     string
		include  []string
		exclude  []string
		expected bool
	}{
		{"basename match", "src/main.c", []string{"*.c"}, nil, true},
		{"doublestar match", "src/deep/main.c", []string{"**/*.c"}, nil, true},
		{"no include match", "src/main.c", []string{"*.h"}, nil, false},
		{"empty includes allow all", "src/main.c", nil, nil, true},
		{"exclude wins", "src/main.c", []string{"**/*.c"}, []string{"main.c"}, false},
		{"exclude by path", "vendor/lib.c", []string{"**/*.c"}, []string{"vendor/**"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.shouldIncludeFile(tt.path, tt.include, tt.exclude))
		})
	}
}
