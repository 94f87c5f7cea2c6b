package typemap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declgen/declgen/errors"
)

func writeOverride(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOverridesJSON(t *testing.T) {
	path := writeOverride(t, "typemap.json", `{
		"uuid": {"name": "string", "zodSchema": "z.string().uuid()"},
		"ltree": {"name": "string"}
	}`)

	r := NewResolver(false)
	require.NoError(t, r.LoadOverrides([]string{path}))

	assert.Equal(t, "z.string().uuid()", r.Resolve("uuid").Zod())
	assert.Equal(t, "string", r.Resolve("ltree").Name)
}

func TestLoadOverridesYAML(t *testing.T) {
	path := writeOverride(t, "typemap.yaml", "citext:\n  name: string\n  tsType: Lowercased\n")

	r := NewResolver(false)
	require.NoError(t, r.LoadOverrides([]string{path}))
	assert.Equal(t, "Lowercased", r.Resolve("citext").TS())
}

func TestLoadOverridesMergeOrder(t *testing.T) {
	first := writeOverride(t, "first.json", `{"uuid": {"tsType": "Uuid", "structType": "uuid128"}}`)
	second := writeOverride(t, "second.json", `{"uuid": {"tsType": "string"}}`)

	r := NewResolver(false)
	require.NoError(t, r.LoadOverrides([]string{first, second}))

	m := r.Resolve("uuid")
	assert.Equal(t, "string", m.TS(), "later file wins per field")
	assert.Equal(t, "uuid128", m.Struct(), "field only set by the earlier file survives")
}

func TestLoadOverridesNotAnObject(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json array", "typemap.json", `["uuid"]`},
		{"json scalar", "typemap.json", `"uuid"`},
		{"yaml sequence", "typemap.yaml", "- uuid\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeOverride(t, tt.file, tt.content)
			err := NewResolver(false).LoadOverrides([]string{path})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrConfiguration))
		})
	}
}

func TestLoadOverridesInvalidJSON(t *testing.T) {
	path := writeOverride(t, "typemap.json", `{`)
	err := NewResolver(false).LoadOverrides([]string{path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestLoadOverridesUnreadableFile(t *testing.T) {
	err := NewResolver(false).LoadOverrides([]string{filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInputRead))
}
