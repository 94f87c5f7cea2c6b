package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/declgen/declgen/errors"
	"github.com/declgen/declgen/logger"
	"github.com/declgen/declgen/pipeline"
)

// checkCmd regenerates everything in memory and diffs against the output
// directory, so CI can fail when committed artifacts are stale.
var checkCmd = &cobra.Command{
	Use:   "check [schema.sql ...]",
	Short: "Verify that generated artifacts are up to date",
	Long: `Regenerate all selected artifacts in memory and compare them against the
files in the output directory. Exits non-zero when any artifact is missing or
differs, listing the stale files.

Examples:
  declgen check schema.sql
  declgen check -o src/db --emit ts,zod schema/*.sql`,
	Args: cobra.ArbitraryArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger.Initialize(flagVerbose)
	defer logger.Sync()

	files, err := pipeline.Render(cmd.Context(), options(args))
	if err != nil {
		return err
	}

	outDir := v.GetString("out")
	var stale []string
	for _, f := range files {
		path := filepath.Join(outDir, f.Filename)
		existing, err := os.ReadFile(path)
		if err != nil || !bytes.Equal(existing, f.Data) {
			stale = append(stale, f.Filename)
		}
	}

	if len(stale) > 0 {
		sort.Strings(stale)
		return errors.Newf("generated artifacts are out of date: %s (run declgen to refresh)",
			strings.Join(stale, ", "))
	}

	logger.Logger.Infow("artifacts up to date", "count", len(files), "dir", outDir)
	return nil
}
