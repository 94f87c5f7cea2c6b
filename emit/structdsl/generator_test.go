package structdsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declgen/declgen/model"
	"github.com/declgen/declgen/typemap"
)

func TestGenerate(t *testing.T) {
	str := typemap.Mapping{Name: "string", StructType: "text"}
	num := typemap.Mapping{Name: "number", StructType: "i64"}

	m := &model.Model{Types: []model.TypeDef{
		{
			Name:        "Role",
			Kind:        model.KindEnum,
			Description: "Access level.",
			EnumValues:  []string{"admin", "member"},
		},
		{
			Name:        "Account",
			Kind:        model.KindTable,
			Description: "Registered user account.",
			Properties: []model.PropDef{
				{Name: "id", Mapping: num, Primary: true, Description: "Primary identifier."},
				{Name: "bio", Mapping: str, Optional: true},
				{Name: "tags", Mapping: str, Array: true, Dimensions: 1},
			},
		},
	}}

	out, err := Generate(m)
	require.NoError(t, err)

	want := Header +
		`// Access level.
enum Role {
  admin
  member
}

// Registered user account.
struct Account {
  // Primary identifier.
  id i64
  bio text?
  tags text[]
}
`
	assert.Equal(t, want, string(out))
}

func TestGenerateStructTypeFallsBackToName(t *testing.T) {
	m := &model.Model{Types: []model.TypeDef{{
		Name: "T",
		Kind: model.KindTable,
		Properties: []model.PropDef{
			{Name: "flag", Mapping: typemap.Mapping{Name: "boolean"}},
		},
	}}}

	out, err := Generate(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "  flag boolean\n")
}

func TestGenerateMultiLineDocWithBlank(t *testing.T) {
	m := &model.Model{Types: []model.TypeDef{{
		Name:        "Note",
		Kind:        model.KindTable,
		Description: "First.\n\nSecond.",
		Properties: []model.PropDef{
			{Name: "id", Mapping: typemap.Mapping{Name: "number"}},
		},
	}}}

	out, err := Generate(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "// First.\n//\n// Second.\nstruct Note {\n")
}
