package pgddl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/declgen/declgen/parser"
)

func parseOne(t *testing.T, source string) parser.Declaration {
	t.Helper()
	decls, err := New().Parse(source)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	return decls[0]
}

func TestParseCreateTable(t *testing.T) {
	source := `create table account (
  id uuid primary key,
  email text not null,
  status text not null default 'active',
  bio text
);`

	tbl, ok := parseOne(t, source).(*parser.Table)
	require.True(t, ok)
	assert.Equal(t, "account", tbl.Name)
	assert.Empty(t, tbl.Schema)
	require.Len(t, tbl.Columns, 4)

	id := tbl.Columns[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "uuid", id.Type)
	assert.True(t, id.PrimaryKey)
	assert.False(t, id.NotNull)
	assert.False(t, id.HasDefault)

	email := tbl.Columns[1]
	assert.Equal(t, "email", email.Name)
	assert.True(t, email.NotNull)
	assert.False(t, email.HasDefault)

	status := tbl.Columns[2]
	assert.True(t, status.NotNull)
	assert.True(t, status.HasDefault)

	bio := tbl.Columns[3]
	assert.False(t, bio.NotNull)
	assert.False(t, bio.PrimaryKey)
	assert.False(t, bio.HasDefault)
}

func TestParseColumnSpans(t *testing.T) {
	source := "create table t (\n  id uuid not null,\n  note text\n);"
	tbl := parseOne(t, source).(*parser.Table)
	require.Len(t, tbl.Columns, 2)

	assert.Equal(t, strings.Index(source, "id uuid"), tbl.Columns[0].Span.Start)
	assert.Equal(t, "id uuid not null", source[tbl.Columns[0].Span.Start:tbl.Columns[0].Span.End])
	assert.Equal(t, "note text", source[tbl.Columns[1].Span.Start:tbl.Columns[1].Span.End])
}

func TestParseStatementSpans(t *testing.T) {
	source := "-- leading comment\ncreate table a (id int);\n\ncreate table b (id int);\n"
	decls, err := New().Parse(source)
	require.NoError(t, err)
	require.Len(t, decls, 2)

	a := decls[0].Pos()
	assert.Equal(t, strings.Index(source, "create table a"), a.Start)
	assert.Equal(t, "create table a (id int)", source[a.Start:a.End])

	b := decls[1].Pos()
	assert.Equal(t, "create table b (id int)", source[b.Start:b.End])
}

func TestParseCreateEnum(t *testing.T) {
	source := "create type auth.role as enum ('admin', 'member', 'it''s');"
	enum, ok := parseOne(t, source).(*parser.Enum)
	require.True(t, ok)
	assert.Equal(t, "auth", enum.Schema)
	assert.Equal(t, "role", enum.Name)
	assert.Equal(t, []string{"admin", "member", "it's"}, enum.Values)
}

func TestParseEmptyEnum(t *testing.T) {
	enum := parseOne(t, "create type mood as enum ();").(*parser.Enum)
	assert.Equal(t, "mood", enum.Name)
	assert.Empty(t, enum.Values)
}

func TestParseNonEnumType(t *testing.T) {
	u, ok := parseOne(t, "create type pair as (a int, b int);").(*parser.Unsupported)
	require.True(t, ok)
	assert.Equal(t, "CREATE TYPE", u.Statement)
}

func TestParseUnsupportedStatements(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"create index account_email_idx on account (email);", "CREATE INDEX"},
		{"create or replace view v as select 1;", "CREATE VIEW"},
		{"alter table account add column x int;", "ALTER"},
		{"grant select on account to reader;", "GRANT"},
	}
	for _, tt := range tests {
		u, ok := parseOne(t, tt.source).(*parser.Unsupported)
		require.True(t, ok, tt.source)
		assert.Equal(t, tt.want, u.Statement)
	}
}

func TestParseColumnTypes(t *testing.T) {
	tests := []struct {
		declared string
		want     string
	}{
		{"text", "text"},
		{"varchar(255)", "varchar(255)"},
		{"timestamp with time zone", "timestamp with time zone"},
		{"double precision", "double precision"},
		{"text[]", "text[]"},
		{"int[3]", "int[]"},
		{"int[][]", "int[][]"},
		{"numeric(10, 2)", "numeric(10, 2)"},
		{"auth.role", "auth.role"},
		{"public.role[]", "public.role[]"},
		{`auth."Role"`, "auth.Role"},
	}
	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			tbl := parseOne(t, "create table t (c "+tt.declared+" not null);").(*parser.Table)
			require.Len(t, tbl.Columns, 1)
			assert.Equal(t, tt.want, tbl.Columns[0].Type)
			assert.True(t, tbl.Columns[0].NotNull)
		})
	}
}

func TestParseQuotedIdentifiers(t *testing.T) {
	source := `create table "Account" ("userId" uuid not null, role "Role" not null);`
	tbl := parseOne(t, source).(*parser.Table)

	assert.Equal(t, "Account", tbl.Name, "quoted names keep their spelling")
	require.Len(t, tbl.Columns, 2)
	assert.Equal(t, "userId", tbl.Columns[0].Name)
	assert.Equal(t, "Role", tbl.Columns[1].Type)
}

func TestParseBareIdentifiersFoldLower(t *testing.T) {
	tbl := parseOne(t, "create table ACCOUNT (ID uuid);").(*parser.Table)
	assert.Equal(t, "account", tbl.Name)
	assert.Equal(t, "id", tbl.Columns[0].Name)
}

func TestParseCompositePrimaryKey(t *testing.T) {
	source := `create table membership (
  account_id uuid not null,
  team_id uuid not null,
  constraint membership_pk primary key (account_id, team_id)
);`
	tbl := parseOne(t, source).(*parser.Table)
	require.Len(t, tbl.Columns, 2)
	require.Len(t, tbl.Constraints, 1)

	con := tbl.Constraints[0]
	assert.True(t, con.PrimaryKey)
	assert.Equal(t, []string{"account_id", "team_id"}, con.Columns)
}

func TestParseForeignKeyConstraintNotPrimary(t *testing.T) {
	source := `create table t (
  a uuid,
  foreign key (a) references account (id)
);`
	tbl := parseOne(t, source).(*parser.Table)
	require.Len(t, tbl.Constraints, 1)
	assert.False(t, tbl.Constraints[0].PrimaryKey)
	assert.Empty(t, tbl.Constraints[0].Columns)
}

func TestParseReferencesDoesNotEndColumn(t *testing.T) {
	source := "create table t (owner uuid not null references account (id) default gen_random_uuid());"
	tbl := parseOne(t, source).(*parser.Table)
	require.Len(t, tbl.Columns, 1)

	col := tbl.Columns[0]
	assert.Equal(t, "uuid", col.Type)
	assert.True(t, col.NotNull)
	assert.True(t, col.HasDefault)
}

func TestParseTableModifiers(t *testing.T) {
	tbl := parseOne(t, "create unlogged table if not exists audit (id bigserial primary key);").(*parser.Table)
	assert.Equal(t, "audit", tbl.Name)
	require.Len(t, tbl.Columns, 1)
	assert.True(t, tbl.Columns[0].PrimaryKey)
}

func TestParseTableWithoutColumnList(t *testing.T) {
	tbl, ok := parseOne(t, "create table shadow;").(*parser.Table)
	require.True(t, ok)
	assert.Equal(t, "shadow", tbl.Name)
	assert.Nil(t, tbl.Columns)
}

func TestSplitIgnoresSeparatorsInLiterals(t *testing.T) {
	source := `create table t (note text default 'a; b');
create function f() returns void as $body$
  select 1; select 2;
$body$ language sql;
create table u (id int);`

	decls, err := New().Parse(source)
	require.NoError(t, err)
	require.Len(t, decls, 3)

	assert.IsType(t, &parser.Table{}, decls[0])
	u, ok := decls[1].(*parser.Unsupported)
	require.True(t, ok)
	assert.Equal(t, "CREATE FUNCTION", u.Statement)
	assert.IsType(t, &parser.Table{}, decls[2])
}

func TestSplitIgnoresCommentsAndTrailingSemicolon(t *testing.T) {
	source := "create table t (id int); -- trailing; note\n/* block; comment */\n"
	decls, err := New().Parse(source)
	require.NoError(t, err)
	require.Len(t, decls, 1)
}

func TestParseEmptySource(t *testing.T) {
	decls, err := New().Parse("  \n-- only a comment\n")
	require.NoError(t, err)
	assert.Empty(t, decls)
}
