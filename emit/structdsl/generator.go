// Package structdsl renders the type model in the struct-definition
// notation: `struct Name { prop type }` and `enum Name { values }` blocks.
// Documentation renders as comment lines rather than inline annotations.
package structdsl

import (
	"fmt"
	"strings"

	"github.com/declgen/declgen/model"
)

// Header prefixes the generated struct-DSL artifact.
const Header = "// Auto-generated by declgen - do not edit\n\n"

// Generate renders all TypeDefs, in model order.
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
			writeStruct(&sb, def)
		}
	}

	return []byte(sb.String()), nil
}

func writeEnum(sb *strings.Builder, def model.TypeDef) {
	writeDoc(sb, def.Description, "")
	fmt.Fprintf(sb, "enum %s {\n", def.Name)
	for _, v := range def.EnumValues {
		fmt.Fprintf(sb, "  %s\n", v)
	}
	sb.WriteString("}\n")
}

func writeStruct(sb *strings.Builder, def model.TypeDef) {
	writeDoc(sb, def.Description, "")
	fmt.Fprintf(sb, "struct %s {\n", def.Name)
	for _, prop := range def.Properties {
		writeDoc(sb, prop.Description, "  ")
		marker := ""
		if prop.Optional {
			marker = "?"
		}
		fmt.Fprintf(sb, "  %s %s%s%s\n",
			prop.Name, prop.Mapping.Struct(), strings.Repeat("[]", prop.Dimensions), marker)
	}
	sb.WriteString("}\n")
}

func writeDoc(sb *strings.Builder, doc, indent string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		if line == "" {
			fmt.Fprintf(sb, "%s//\n", indent)
			continue
		}
		fmt.Fprintf(sb, "%s// %s\n", indent, line)
	}
}
