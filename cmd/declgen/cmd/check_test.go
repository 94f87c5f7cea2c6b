package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declgen/declgen/pipeline"
)

const checkSchema = `create type role as enum ('admin', 'member');

create table account (
  id uuid primary key,
  email text not null,
  role role not null
);
`

func writeCheckSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(path, []byte(checkSchema), 0o644))
	return path
}

// resetOutFlag clears any value a previous command execution left on the
// persistent --out flag, since cobra keeps flag state across Execute calls.
func resetOutFlag(t *testing.T) {
	t.Helper()
	flag := RootCmd.PersistentFlags().Lookup("out")
	require.NotNil(t, flag)
	flag.Changed = false
	require.NoError(t, flag.Value.Set("generated"))
}

func TestOutEnvVariable(t *testing.T) {
	schema := writeCheckSchema(t)
	out := filepath.Join(t.TempDir(), "env-out")
	t.Setenv("DECLGEN_OUT", out)
	resetOutFlag(t)

	RootCmd.SetArgs([]string{schema})
	require.NoError(t, RootCmd.Execute())

	_, err := os.Stat(filepath.Join(out, "types.ts"))
	require.NoError(t, err, "DECLGEN_OUT selects the output directory when --out is not passed")
}

func TestCheckUpToDate(t *testing.T) {
	schema := writeCheckSchema(t)
	out := filepath.Join(t.TempDir(), "generated")
	require.NoError(t, pipeline.Run(context.Background(), pipeline.Options{Inputs: []string{schema}}, out))

	RootCmd.SetArgs([]string{"check", "-o", out, schema})
	require.NoError(t, RootCmd.Execute())
}

func TestCheckDetectsStaleArtifact(t *testing.T) {
	schema := writeCheckSchema(t)
	out := filepath.Join(t.TempDir(), "generated")
	require.NoError(t, pipeline.Run(context.Background(), pipeline.Options{Inputs: []string{schema}}, out))
	require.NoError(t, os.WriteFile(filepath.Join(out, "types.ts"), []byte("// edited by hand\n"), 0o644))

	RootCmd.SetArgs([]string{"check", "-o", out, schema})
	err := RootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "types.ts")
	assert.NotContains(t, err.Error(), "schemas.ts")
}

func TestCheckDetectsMissingArtifact(t *testing.T) {
	schema := writeCheckSchema(t)
	out := filepath.Join(t.TempDir(), "generated")
	require.NoError(t, pipeline.Run(context.Background(), pipeline.Options{Inputs: []string{schema}}, out))
	require.NoError(t, os.Remove(filepath.Join(out, "index.ts")))

	RootCmd.SetArgs([]string{"check", "-o", out, schema})
	err := RootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index.ts")
}
