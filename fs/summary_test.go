package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docdig/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "summary.yaml")

	err := fs.WriteSummary(path, fs.Summary{Count: 12, Out: "sites"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "count: 12\nout: sites\n", string(data))

	var decoded fs.Summary
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, fs.Summary{Count: 12, Out: "sites"}, decoded)
}

func TestWriteSummary_Unwritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := fs.WriteSummary(filepath.Join(blocker, "summary.yaml"), fs.Summary{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary")
}
