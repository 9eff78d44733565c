package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.PDF", "notes.txt", "c.pdf.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub.pdf"), 0o755))

	docs, err := findDocuments(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "b.PDF"),
	}, docs)
}

func TestFindDocumentsSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	docs, err := findDocuments(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, docs)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	_, err = findDocuments(txt)
	assert.Error(t, err)
}

func TestFindDocumentsMissingDir(t *testing.T) {
	_, err := findDocuments(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
