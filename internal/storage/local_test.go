package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLocalStorage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "inbox/b.json", `[]`)
	writeFile(t, root, "inbox/a.json", `[{"id":"1","text":"hi"}]`)
	writeFile(t, root, "archive/old.json", `[]`)

	store, err := NewLocalStorage(root)
	require.NoError(t, err)

	t.Run("list by prefix", func(t *testing.T) {
		names, err := store.List("inbox/")
		require.NoError(t, err)
		assert.Equal(t, []string{"inbox/a.json", "inbox/b.json"}, names)
	})

	t.Run("list everything", func(t *testing.T) {
		names, err := store.List("")
		require.NoError(t, err)
		assert.Len(t, names, 3)
	})

	t.Run("list missing prefix", func(t *testing.T) {
		names, err := store.List("nothing/")
		require.NoError(t, err)
		assert.NotNil(t, names)
		assert.Empty(t, names)
	})

	t.Run("retrieve", func(t *testing.T) {
		data, err := store.Retrieve("inbox/a.json")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"1","text":"hi"}]`, string(data))
	})

	t.Run("retrieve missing", func(t *testing.T) {
		_, err := store.Retrieve("inbox/missing.json")
		assert.Error(t, err)
	})

	t.Run("retrieve outside root", func(t *testing.T) {
		_, err := store.Retrieve("../etc/passwd")
		assert.Error(t, err)
	})
}

func TestNewLocalStorage_Errors(t *testing.T) {
	_, err := NewLocalStorage(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	root := t.TempDir()
	writeFile(t, root, "file.txt", "x")
	_, err = NewLocalStorage(filepath.Join(root, "file.txt"))
	assert.Error(t, err)
}

func TestNewAzureStorage_Validation(t *testing.T) {
	_, err := NewAzureStorage("", "batches")
	assert.Error(t, err)

	_, err = NewAzureStorage("account", "")
	assert.Error(t, err)
}
