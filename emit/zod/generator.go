// Package zod renders the type model as runtime-composable zod schemas: one
// z.object per table shape, one z.enum per enum type. Documentation comments
// become .describe() constraint calls.
package zod

import (
	"fmt"
	"strings"

	"github.com/declgen/declgen/model"
)

// Header prefixes the generated schema artifact.
const Header = "/* eslint-disable */\n// Auto-generated by declgen - do not edit\n\nimport { z } from 'zod';\n\n"

// Generate renders all TypeDefs, in model order, as zod schema constants.
// Enums sort first in the model, so every schema reference from a table
// column is declared before use.
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
			writeObject(&sb, def)
		}
	}

	return []byte(sb.String()), nil
}

func writeEnum(sb *strings.Builder, def model.TypeDef) {
	values := make([]string, len(def.EnumValues))
	for i, v := range def.EnumValues {
		values[i] = quote(v)
	}
	expr := fmt.Sprintf("z.enum([%s])", strings.Join(values, ", "))
	if def.Description != "" {
		expr += describe(def.Description)
	}
	fmt.Fprintf(sb, "export const %s = %s;\n", model.SchemaName(def.Name), expr)
}

func writeObject(sb *strings.Builder, def model.TypeDef) {
	fmt.Fprintf(sb, "export const %s = z.object({\n", model.SchemaName(def.Name))
	for _, prop := range def.Properties {
		expr := prop.Mapping.Zod()
		for d := 0; d < prop.Dimensions; d++ {
			expr = fmt.Sprintf("z.array(%s)", expr)
		}
		if prop.Description != "" {
			expr += describe(prop.Description)
		}
		if prop.Optional {
			expr += ".optional()"
		}
		fmt.Fprintf(sb, "  %s: %s,\n", objectKey(prop.Name), expr)
	}
	sb.WriteString("})")
	if def.Description != "" {
		sb.WriteString(describe(def.Description))
	}
	sb.WriteString(";\n")
}

func describe(doc string) string {
	return fmt.Sprintf(".describe(%s)", quote(doc))
}

// quote renders a single-quoted TS string literal.
func quote(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(value)
	return "'" + escaped + "'"
}

// objectKey quotes property names that are not valid TS identifiers.
func objectKey(key string) string {
	for i := 0; i < len(key); i++ {
		c := key[i]
		ok := c == '_' || c == '$' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(i > 0 && c >= '0' && c <= '9')
		if !ok {
			return quote(key)
		}
	}
	if key == "" {
		return quote(key)
	}
	return key
}
