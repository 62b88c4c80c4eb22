package tariff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReturnsFileContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Tarifs.md")
	require.NoError(t, os.WriteFile(path, []byte("# Plans\nBusiness 100GB"), 0o644))

	got := NewSource(path).Read()
	assert.Equal(t, "# Plans\nBusiness 100GB", got)
}

func TestReadFallsBackToPlaceholder(t *testing.T) {
	got := NewSource(filepath.Join(t.TempDir(), "missing.md")).Read()
	assert.Equal(t, Placeholder, got)
}
