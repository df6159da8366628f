package voice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voices.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalogFile(t, `
- id: 21m00Tcm4TlvDq8ikWAM
  name: Rachel
- id: AZnzlk1XvdvUeBnXmlld
  name: Domi
`)

	catalog, err := LoadCatalog(path)
	assert.NoError(t, err)
	assert.Len(t, catalog.List(), 2)
	assert.Equal(t, "Rachel", catalog.Default().Name)
	assert.Equal(t, "21m00Tcm4TlvDq8ikWAM", catalog.Default().ID)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadCatalogEmpty(t *testing.T) {
	path := writeCatalogFile(t, "")
	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestLoadCatalogMalformed(t *testing.T) {
	path := writeCatalogFile(t, "{{{ not yaml")
	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestLoadCatalogIncompleteEntry(t *testing.T) {
	path := writeCatalogFile(t, `
- id: 21m00Tcm4TlvDq8ikWAM
`)
	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestCatalogByName(t *testing.T) {
	path := writeCatalogFile(t, `
- id: first
  name: Rachel
- id: second
  name: Domi
`)
	catalog, err := LoadCatalog(path)
	assert.NoError(t, err)

	v, ok := catalog.ByName("Domi")
	assert.True(t, ok)
	assert.Equal(t, "second", v.ID)

	_, ok = catalog.ByName("domi")
	assert.False(t, ok, "name match is exact")

	_, ok = catalog.ByName("Nobody")
	assert.False(t, ok)
}
