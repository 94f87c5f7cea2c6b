// Package typelist renders the machine-readable artifacts consumed by
// downstream tooling: the full and abbreviated type lists, the computed
// typemap, the table/name map, and the type-description index. All of them
// pass through the deterministic recursive sort in MarshalSorted.
package typelist

import (
	"github.com/declgen/declgen/model"
)

// Generate renders the full TypeDef list.
func Generate(m *model.Model) ([]byte, error) {
	return MarshalSorted(m.Types)
}

// abbreviatedTypeDef mirrors model.TypeDef with properties flattened to bare
// names.
type abbreviatedTypeDef struct {
	Name       string     `json:"name"`
	Kind       model.Kind `json:"kind"`
	Table      string     `json:"table,omitempty"`
	Schema     string     `json:"schema,omitempty"`
	Insertion  bool       `json:"insertion,omitempty"`
	Properties []string   `json:"properties,omitempty"`
	EnumValues []string   `json:"enumValues,omitempty"`
}

// GenerateAbbreviated renders the type list with properties flattened to
// bare property names.
func GenerateAbbreviated(m *model.Model) ([]byte, error) {
	abbreviated := make([]abbreviatedTypeDef, 0, len(m.Types))
	for _, def := range m.Types {
		entry := abbreviatedTypeDef{
			Name:       def.Name,
			Kind:       def.Kind,
			Table:      def.Table,
			Schema:     def.Schema,
			Insertion:  def.Insertion,
			EnumValues: def.EnumValues,
		}
		for _, prop := range def.Properties {
			entry.Properties = append(entry.Properties, prop.Name)
		}
		abbreviated = append(abbreviated, entry)
	}
	return MarshalSorted(abbreviated)
}

// GenerateTypemap renders the computed type-mapping table, including the
// synthetic entries registered by enum declarations.
func GenerateTypemap(m *model.Model) ([]byte, error) {
	return MarshalSorted(m.Typemap)
}

// GenerateTableMap renders the table-name/type-name map.
func GenerateTableMap(m *model.Model) ([]byte, error) {
	return MarshalSorted(m.TableMap)
}

// descEntry cross-references the generated interface and validator names of
// one base type with its structured metadata.
type descEntry struct {
	Name            string     `json:"name"`
	Kind            model.Kind `json:"kind"`
	Interface       string     `json:"interface"`
	InsertInterface string     `json:"insertInterface,omitempty"`
	Validator       string     `json:"validator"`
	InsertValidator string     `json:"insertValidator,omitempty"`
	Table           string     `json:"table,omitempty"`
	Schema          string     `json:"schema,omitempty"`
	PrimaryKey      string     `json:"primaryKey,omitempty"`
	Properties      []string   `json:"properties,omitempty"`
	EnumValues      []string   `json:"enumValues,omitempty"`
}

// GenerateDescriptions renders the type-description index: one entry per
// base name, with insertion-shape names folded into the read entry.
func GenerateDescriptions(m *model.Model) ([]byte, error) {
	entries := make([]descEntry, 0, len(m.Types))
	for _, def := range m.Types {
		if def.Insertion {
			continue // folded into the read entry
		}
		entry := descEntry{
			Name:       def.Name,
			Kind:       def.Kind,
			Interface:  def.Name,
			Validator:  model.SchemaName(def.Name),
			Table:      def.Table,
			Schema:     def.Schema,
			PrimaryKey: def.PrimaryKey,
			EnumValues: def.EnumValues,
		}
		if def.Kind == model.KindTable {
			entry.InsertInterface = def.Name + m.InsertSuffix
			entry.InsertValidator = model.SchemaName(def.Name + m.InsertSuffix)
		}
		for _, prop := range def.Properties {
			entry.Properties = append(entry.Properties, prop.Name)
		}
		entries = append(entries, entry)
	}
	return MarshalSorted(entries)
}
