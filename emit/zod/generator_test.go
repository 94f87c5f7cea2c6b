package zod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declgen/declgen/model"
	"github.com/declgen/declgen/typemap"
)

func testModel() *model.Model {
	str := typemap.Mapping{Name: "string", ZodSchema: "z.string()", SQLType: "text"}
	role := typemap.Mapping{Name: "Role", ZodSchema: "roleSchema", SQLType: "role"}

	return &model.Model{
		Types: []model.TypeDef{
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
				PrimaryKey:  "id",
				Properties: []model.PropDef{
					{Name: "id", Mapping: str, Primary: true, Description: "Primary identifier."},
					{Name: "role", Mapping: role},
					{Name: "bio", Mapping: str, Optional: true},
					{Name: "tags", Mapping: str, Array: true, Dimensions: 1},
				},
			},
		},
		InsertSuffix: "Insertion",
	}
}

func TestGenerate(t *testing.T) {
	out, err := Generate(testModel())
	require.NoError(t, err)

	want := Header +
		`export const roleSchema = z.enum(['admin', 'member']).describe('Access level.');

export const accountSchema = z.object({
  id: z.string().describe('Primary identifier.'),
  role: roleSchema,
  bio: z.string().optional(),
  tags: z.array(z.string()),
}).describe('Registered user account.');
`
	assert.Equal(t, want, string(out))
}

func TestGenerateWithoutDocs(t *testing.T) {
	m := &model.Model{Types: []model.TypeDef{{
		Name: "Point",
		Kind: model.KindTable,
		Properties: []model.PropDef{
			{Name: "x", Mapping: typemap.Mapping{Name: "number", ZodSchema: "z.number()"}},
		},
	}}}

	out, err := Generate(m)
	require.NoError(t, err)

	want := Header +
		`export const pointSchema = z.object({
  x: z.number(),
});
`
	assert.Equal(t, want, string(out))
}

func TestGenerateZodFallback(t *testing.T) {
	// A mapping with no explicit schema composes from its type name.
	m := &model.Model{Types: []model.TypeDef{{
		Name: "T",
		Kind: model.KindTable,
		Properties: []model.PropDef{
			{Name: "flag", Mapping: typemap.Mapping{Name: "boolean"}},
		},
	}}}

	out, err := Generate(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "  flag: z.boolean(),\n")
}

func TestGenerateNestedArray(t *testing.T) {
	m := &model.Model{Types: []model.TypeDef{{
		Name: "Grid",
		Kind: model.KindTable,
		Properties: []model.PropDef{
			{
				Name:       "cells",
				Mapping:    typemap.Mapping{Name: "number", ZodSchema: "z.number()"},
				Array:      true,
				Dimensions: 2,
				Optional:   true,
			},
		},
	}}}

	out, err := Generate(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "  cells: z.array(z.array(z.number())).optional(),\n")
}

func TestGenerateQuotesAwkwardNames(t *testing.T) {
	m := &model.Model{Types: []model.TypeDef{{
		Name: "Legacy",
		Kind: model.KindTable,
		Properties: []model.PropDef{
			{Name: "created-at", Mapping: typemap.Mapping{Name: "string", ZodSchema: "z.string()"}},
		},
	}}}

	out, err := Generate(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "  'created-at': z.string(),\n")
}

func TestGenerateEscapesDescriptions(t *testing.T) {
	m := &model.Model{Types: []model.TypeDef{{
		Name:        "Mood",
		Kind:        model.KindEnum,
		Description: "it's\nmultiline",
		EnumValues:  []string{"ok"},
	}}}

	out, err := Generate(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), `z.enum(['ok']).describe('it\'s\nmultiline');`)
}
