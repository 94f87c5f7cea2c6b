// Package emit turns a finished model into artifacts and writes them out.
//
// Rendering is fully in-memory; writing happens in two phases: independent
// artifacts go out concurrently with no ordering guarantee, then the barrel
// export, which references the others by name, is written strictly after the
// group completes.
package emit

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/declgen/declgen/emit/structdsl"
	"github.com/declgen/declgen/emit/typelist"
	"github.com/declgen/declgen/emit/typescript"
	"github.com/declgen/declgen/emit/zod"
	"github.com/declgen/declgen/errors"
	"github.com/declgen/declgen/model"
)

// Targets are the selectable artifact groups, in canonical render order.
var Targets = []string{"ts", "zod", "struct", "typemap", "tablemap", "typelist", "typedesc"}

// Rendered is one artifact buffer awaiting write-out.
type Rendered struct {
	Filename string
	Data     []byte
	Barrel   bool
}

// Plan is a validated artifact selection.
type Plan struct {
	selected map[string]bool
}

// NewPlan validates the requested target keys. An empty selection means all
// targets.
func NewPlan(keys []string) (*Plan, error) {
	selected := make(map[string]bool)
	if len(keys) == 0 {
		for _, t := range Targets {
			selected[t] = true
		}
		return &Plan{selected: selected}, nil
	}

	known := make(map[string]bool, len(Targets))
	for _, t := range Targets {
		known[t] = true
	}
	for _, key := range keys {
		k := strings.ToLower(strings.TrimSpace(key))
		if !known[k] {
			return nil, errors.Mark(
				errors.Newf("unknown emit target %q (valid: %s)", key, strings.Join(Targets, ", ")),
				errors.ErrConfiguration)
		}
		selected[k] = true
	}
	return &Plan{selected: selected}, nil
}

// Render produces every selected artifact as an in-memory buffer. The barrel
// export is included whenever at least one TypeScript-language module is
// selected, and is flagged so WriteAll can order it last.
func (p *Plan) Render(m *model.Model) ([]Rendered, error) {
	type step struct {
		target   string
		filename string
		render   func(*model.Model) ([]byte, error)
	}
	steps := []step{
		{"ts", "types.ts", typescript.Generate},
		{"zod", "schemas.ts", zod.Generate},
		{"struct", "structs.sdl", structdsl.Generate},
		{"typemap", "typemap.json", typelist.GenerateTypemap},
		{"tablemap", "tablemap.json", typelist.GenerateTableMap},
		{"tablemap", "tablemap.ts", typescript.GenerateTableMap},
		{"typelist", "typelist.json", typelist.Generate},
		{"typelist", "typelist.min.json", typelist.GenerateAbbreviated},
		{"typedesc", "typedesc.json", typelist.GenerateDescriptions},
	}

	var files []Rendered
	var barrelModules []string
	for _, s := range steps {
		if !p.selected[s.target] {
			continue
		}
		data, err := s.render(m)
		if err != nil {
			return nil, errors.Wrapf(err, "render %s", s.filename)
		}
		files = append(files, Rendered{Filename: s.filename, Data: data})
		if strings.HasSuffix(s.filename, ".ts") {
			barrelModules = append(barrelModules, strings.TrimSuffix(s.filename, ".ts"))
		}
	}

	if len(barrelModules) > 0 {
		data, err := typescript.GenerateIndex(barrelModules)
		if err != nil {
			return nil, errors.Wrap(err, "render index.ts")
		}
		files = append(files, Rendered{Filename: "index.ts", Data: data, Barrel: true})
	}
	return files, nil
}

// WriteAll writes the rendered artifacts under dir: a concurrent scatter
// phase for the independent files, then the barrel file once the group has
// completed, since it references their final names.
func WriteAll(ctx context.Context, dir string, files []Rendered) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create output directory %s", dir)
	}

	g, _ := errgroup.WithContext(ctx)
	for _, f := range files {
		if f.Barrel {
			continue
		}
		f := f
		g.Go(func() error {
			return writeFile(dir, f)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, f := range files {
		if !f.Barrel {
			continue
		}
		if err := writeFile(dir, f); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(dir string, f Rendered) error {
	path := filepath.Join(dir, f.Filename)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// Filenames returns the artifact names a plan produces, sorted, for check
// reporting.
func Filenames(files []Rendered) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Filename)
	}
	sort.Strings(names)
	return names
}
