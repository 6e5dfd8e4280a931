package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compozy/actionschema/pkg/version"
)

func TestVersionCmd(t *testing.T) {
	t.Run("Should print build information", func(t *testing.T) {
		out, err := runRoot(t, "version")

		require.NoError(t, err)
		assert.Equal(t, version.Get().String()+"\n", out)
	})
}

func TestSchemaCmd(t *testing.T) {
	t.Run("Should write the meta schemas", func(t *testing.T) {
		dir := t.TempDir()

		out, err := runRoot(t, "schema", "--out", dir, "--log-level", "disabled")

		require.NoError(t, err)
		assert.Contains(t, out, filepath.Join(dir, "action.json"))
		assert.FileExists(t, filepath.Join(dir, "config.json"))
	})
}
