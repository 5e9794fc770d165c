package recipes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{
  "iron-gear-wheel": {"recipe": {"ingredients": [{"id": "iron-plate", "amount": 2}]}},
  "electronic-circuit": {"recipe": {"ingredients": [{"id": "iron-plate"}, {"id": "copper-cable"}]}},
  "iron-ore": {"recipe": {"ingredients": []}},
  "wood": {}
}`

func TestParse(t *testing.T) {
	tbl, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"electronic-circuit", "iron-gear-wheel"}, tbl.Items())
	assert.Equal(t, []string{"iron-plate", "copper-cable"}, tbl.Ingredients("electronic-circuit"))
	assert.Nil(t, tbl.Ingredients("iron-ore"))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(`[1, 2]`))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(`{"x": {"recipe": {"ingredients": [{"amount": 1}]}}}`))
	assert.ErrorContains(t, err, `item "x"`)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, tbl, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
