// Package pipeline wires the run together: load schema sources, merge the
// typemap, parse, build the model, render artifacts, write them out. The
// command layer only parses flags and calls into here.
package pipeline

import (
	"context"
	"os"
	"strings"

	"github.com/declgen/declgen/emit"
	"github.com/declgen/declgen/errors"
	"github.com/declgen/declgen/introspect"
	"github.com/declgen/declgen/logger"
	"github.com/declgen/declgen/model"
	"github.com/declgen/declgen/parser/pgddl"
	"github.com/declgen/declgen/typemap"
)

// DefaultInsertSuffix names the insertion shape when no suffix is configured.
const DefaultInsertSuffix = "Insertion"

// Options are the configuration values the core consumes. Flag parsing and
// environment merging happen in the command layer.
type Options struct {
	// Inputs are schema files, concatenated in order with blank-line
	// separators before parsing.
	Inputs []string

	// DatabaseURL, when set, introspects a live database and appends the
	// reconstructed DDL after the file inputs.
	DatabaseURL string

	// DatabaseSchemas filters introspection; empty means public.
	DatabaseSchemas []string

	// TypemapFiles are override tables merged in order over the builtins.
	TypemapFiles []string

	// DiscardBuiltins drops the builtin typemap before merging overrides.
	DiscardBuiltins bool

	// InsertSuffix names the insertion shape; empty means
	// DefaultInsertSuffix.
	InsertSuffix string

	// Targets selects artifact groups (see emit.Targets); empty means all.
	Targets []string
}

func (o Options) insertSuffix() string {
	if o.InsertSuffix == "" {
		return DefaultInsertSuffix
	}
	return o.InsertSuffix
}

// Run renders every selected artifact and writes it under outDir. Any input
// or configuration failure aborts before the first write.
func Run(ctx context.Context, opts Options, outDir string) error {
	files, err := Render(ctx, opts)
	if err != nil {
		return err
	}
	if err := emit.WriteAll(ctx, outDir, files); err != nil {
		return err
	}
	logger.Logger.Infow("generated artifacts", "count", len(files), "dir", outDir)
	return nil
}

// Render runs the pipeline up to (and including) in-memory artifact
// rendering. check mode uses this to diff without touching the output
// directory.
func Render(ctx context.Context, opts Options) ([]emit.Rendered, error) {
	plan, err := emit.NewPlan(opts.Targets)
	if err != nil {
		return nil, err
	}

	resolver := typemap.NewResolver(opts.DiscardBuiltins)
	if err := resolver.LoadOverrides(opts.TypemapFiles); err != nil {
		return nil, err
	}

	source, err := loadSource(ctx, opts)
	if err != nil {
		return nil, err
	}

	decls, err := pgddl.New().Parse(source)
	if err != nil {
		return nil, errors.Wrap(err, "parse schema source")
	}

	m := model.NewBuilder(resolver, source, opts.insertSuffix()).Build(decls)
	return plan.Render(m)
}

// loadSource concatenates all configured schema sources with blank-line
// separators, so that byte offsets reported by the parser index into the
// same text comment recovery scans.
func loadSource(ctx context.Context, opts Options) (string, error) {
	var fragments []string

	for _, path := range opts.Inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Mark(errors.Wrapf(err, "read schema source %s", path), errors.ErrInputRead)
		}
		fragments = append(fragments, string(data))
	}

	if opts.DatabaseURL != "" {
		ddl, err := introspect.DDL(ctx, opts.DatabaseURL, opts.DatabaseSchemas)
		if err != nil {
			return "", err
		}
		fragments = append(fragments, ddl)
	}

	if len(fragments) == 0 {
		return "", errors.Mark(errors.New("no schema sources: pass input files or --database"), errors.ErrInputRead)
	}

	return strings.Join(fragments, "\n\n"), nil
}
