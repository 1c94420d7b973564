package similarity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, 58, c.Len())

	cat, ok := c.Category("Stripe")
	require.True(t, ok)
	assert.Equal(t, "payments", cat)

	cat, ok = c.Category("airtable")
	require.True(t, ok)
	assert.Equal(t, "productivity", cat)

	_, ok = c.Category("namecast")
	assert.False(t, ok)
}

func TestNewCatalog_Dedup(t *testing.T) {
	c := NewCatalog([]KnownEntity{
		{Name: "Airtable", Category: "database"},
		{Name: "zoom", Category: "video"},
		{Name: "airtable ", Category: "productivity"},
		{Name: "  ", Category: "ignored"},
	})

	entities := c.Entities()
	require.Len(t, entities, 2)
	assert.Equal(t, KnownEntity{Name: "airtable", Category: "productivity"}, entities[0])
	assert.Equal(t, KnownEntity{Name: "zoom", Category: "video"}, entities[1])
}

func TestCatalog_EntitiesIsCopy(t *testing.T) {
	c := NewCatalog([]KnownEntity{{Name: "zoom", Category: "video"}})
	entities := c.Entities()
	entities[0].Name = "mutated"

	assert.Equal(t, "zoom", c.Entities()[0].Name)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `entities:
  - name: Acme
    category: manufacturing
  - name: globex
    category: energy
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	cat, ok := c.Category("acme")
	require.True(t, ok)
	assert.Equal(t, "manufacturing", cat)
}

func TestLoadCatalog_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCatalog(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("entities: []\n"), 0o644))
	_, err = LoadCatalog(empty)
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("entities: [\n"), 0o644))
	_, err = LoadCatalog(bad)
	assert.Error(t, err)
}
