// Package typescript renders the type model as TypeScript: one interface per
// table shape, one string-literal union per enum, plus the embeddable
// table-map source and the barrel export.
package typescript

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/declgen/declgen/model"
)

// Header prefixes every generated TypeScript artifact. It carries no
// timestamps so regeneration on unchanged input is byte-identical.
const Header = "/* eslint-disable */\n// Auto-generated by declgen - do not edit\n\n"

// Generate renders all TypeDefs, in model order, as TypeScript declarations.
func Generate(m *model.Model) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(Header)

	for i, def := range m.Types {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch def.Kind {
		case model.KindEnum:
			writeEnum(&sb, def)
		case model.KindTable:
			writeInterface(&sb, def)
		}
	}

	return []byte(sb.String()), nil
}

func writeEnum(sb *strings.Builder, def model.TypeDef) {
	writeDoc(sb, def.Description, "")
	variants := make([]string, len(def.EnumValues))
	for i, v := range def.EnumValues {
		variants[i] = quote(v)
	}
	fmt.Fprintf(sb, "export type %s = %s;\n", def.Name, strings.Join(variants, " | "))
}

func writeInterface(sb *strings.Builder, def model.TypeDef) {
	writeDoc(sb, def.Description, "")
	fmt.Fprintf(sb, "export interface %s {\n", def.Name)
	for _, prop := range def.Properties {
		writeDoc(sb, prop.Description, "  ")
		marker := ""
		if prop.Optional {
			marker = "?"
		}
		fmt.Fprintf(sb, "  %s%s: %s%s;\n",
			prop.Name, marker, prop.Mapping.TS(), strings.Repeat("[]", prop.Dimensions))
	}
	sb.WriteString("}\n")
}

// writeDoc renders a JSDoc block: single-line comments on one line,
// multi-line comments as a starred block.
func writeDoc(sb *strings.Builder, doc, indent string) {
	if doc == "" {
		return
	}
	lines := strings.Split(doc, "\n")
	if len(lines) == 1 {
		fmt.Fprintf(sb, "%s/** %s */\n", indent, lines[0])
		return
	}
	fmt.Fprintf(sb, "%s/**\n", indent)
	for _, line := range lines {
		fmt.Fprintf(sb, "%s * %s\n", indent, line)
	}
	fmt.Fprintf(sb, "%s */\n", indent)
}

// GenerateTableMap renders the embeddable table-map source: storage name to
// read type name, and both type names back to the storage name.
func GenerateTableMap(m *model.Model) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(Header)

	sb.WriteString("export const tableToType = {\n")
	for _, key := range sortedKeys(m.TableMap.ToName) {
		fmt.Fprintf(&sb, "  %s: %s,\n", objectKey(key), quote(m.TableMap.ToName[key]))
	}
	sb.WriteString("} as const;\n\n")

	sb.WriteString("export const typeToTable = {\n")
	for _, key := range sortedKeys(m.TableMap.ToTable) {
		fmt.Fprintf(&sb, "  %s: %s,\n", objectKey(key), quote(m.TableMap.ToTable[key]))
	}
	sb.WriteString("} as const;\n")

	return []byte(sb.String()), nil
}

// GenerateIndex renders the barrel export re-exporting the given module
// basenames (without extension), e.g. "types", "schemas", "tablemap". It is
// written strictly after the files it references.
func GenerateIndex(modules []string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("/* eslint-disable */\n")
	sb.WriteString("// Auto-generated barrel export - re-exports all generated modules\n\n")

	sorted := make([]string, len(modules))
	copy(sorted, modules)
	sort.Strings(sorted)

	for _, mod := range sorted {
		fmt.Fprintf(&sb, "export * from './%s';\n", mod)
	}
	return []byte(sb.String()), nil
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// objectKey renders a TS object literal key, quoting it when it is not a
// valid identifier.
func objectKey(key string) string {
	if identRe.MatchString(key) {
		return key
	}
	return quote(key)
}

// quote renders a single-quoted TS string literal.
func quote(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(value)
	return "'" + escaped + "'"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
