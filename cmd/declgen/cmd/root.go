// Package cmd implements the declgen command line interface.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/declgen/declgen/emit"
	"github.com/declgen/declgen/logger"
	"github.com/declgen/declgen/pipeline"
	"github.com/declgen/declgen/version"
)

var v = viper.New()

var (
	flagWatch   bool
	flagVerbose bool
)

// RootCmd is the declgen root command; running it generates artifacts.
var RootCmd = &cobra.Command{
	Use:   "declgen [schema.sql ...]",
	Short: "Generate typed models from SQL schema declarations",
	Long: `Generate typed models from SQL table and enum declarations.

declgen parses CREATE TABLE and CREATE TYPE ... AS ENUM statements and
compiles them into a canonical type model: one read shape and one insertion
shape per table (default-backed columns turn optional on insert), one union
type per enum. The model renders into several targets at once.

It handles:
  - TypeScript interfaces and string-literal union types (types.ts)
  - zod validator schemas with doc comments as .describe() calls (schemas.ts)
  - struct-DSL definitions (structs.sdl)
  - table-name/type-name maps (tablemap.json, tablemap.ts)
  - machine-readable type lists and the type-description index
  - a barrel export (index.ts), written after everything it references

Schema sources are files given as arguments, a live database via --database,
or both concatenated. Documentation is recovered from -- comment lines
directly above each declaration or column.

Examples:
  declgen schema.sql                         # all artifacts into ./generated
  declgen -o src/db schema/*.sql             # several inputs, custom output
  declgen --emit ts,zod schema.sql           # only types.ts + schemas.ts
  declgen -t typemap.json schema.sql         # merge a typemap override
  declgen --database postgres://localhost/db # introspect instead of parsing files
  declgen --watch schema.sql                 # regenerate on change`,
	Args: cobra.ArbitraryArgs,
	RunE: runGenerate,
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringP("out", "o", "generated", "Output directory for artifacts")
	pf.StringSliceP("typemap", "t", nil, "Typemap override files (JSON or YAML), merged in order")
	pf.Bool("no-builtin-typemap", false, "Discard the builtin typemap before merging overrides")
	pf.String("insert-suffix", pipeline.DefaultInsertSuffix, "Name suffix for insertion shapes")
	pf.StringSliceP("emit", "e", nil, "Artifact targets: "+strings.Join(emit.Targets, ", ")+" (default all)")
	pf.String("database", "", "PostgreSQL connection string to introspect")
	pf.StringSlice("db-schema", nil, "Database schemas to introspect (default public)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	RootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Watch input files and regenerate on change")

	v.SetEnvPrefix("DECLGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range []string{"out", "typemap", "no-builtin-typemap", "insert-suffix", "emit", "database", "db-schema"} {
		_ = v.BindPFlag(name, pf.Lookup(name))
	}

	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(versionCmd)
}

// options assembles pipeline options from flags, with DECLGEN_* environment
// variables filling in unset flags.
func options(args []string) pipeline.Options {
	return pipeline.Options{
		Inputs:          args,
		DatabaseURL:     v.GetString("database"),
		DatabaseSchemas: v.GetStringSlice("db-schema"),
		TypemapFiles:    v.GetStringSlice("typemap"),
		DiscardBuiltins: v.GetBool("no-builtin-typemap"),
		InsertSuffix:    v.GetString("insert-suffix"),
		Targets:         v.GetStringSlice("emit"),
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger.Initialize(flagVerbose)
	defer logger.Sync()

	opts := options(args)
	outDir := v.GetString("out")
	if err := pipeline.Run(cmd.Context(), opts, outDir); err != nil {
		return err
	}
	if flagWatch {
		return watch(cmd.Context(), opts, outDir)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Get().String())
	},
}
