// Package introspect reads a live PostgreSQL database and reconstructs
// canonical DDL text for its enums and tables, including table and column
// comments as line comments. The reconstructed text feeds the ordinary parse
// pipeline, so documentation recovery works identically for file and
// database sources.
package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/declgen/declgen/errors"
)

// DDL connects to the database, introspects the given schemas (public when
// empty) and renders CREATE TYPE / CREATE TABLE statements in a stable
// order.
func DDL(ctx context.Context, dsn string, schemas []string) (string, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "open database"), errors.ErrInputRead)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return "", errors.Mark(errors.Wrap(err, "ping database"), errors.ErrInputRead)
	}

	if len(schemas) == 0 {
		schemas = []string{"public"}
	}

	var sb strings.Builder

	enums, err := readEnums(ctx, db, schemas)
	if err != nil {
		return "", err
	}
	for _, e := range enums {
		writeComment(&sb, e.comment)
		values := make([]string, len(e.values))
		for i, v := range e.values {
			values[i] = sqlString(v)
		}
		fmt.Fprintf(&sb, "create type %s.%s as enum (%s);\n\n", e.schema, e.name, strings.Join(values, ", "))
	}

	tables, err := readTables(ctx, db, schemas)
	if err != nil {
		return "", err
	}
	for _, t := range tables {
		writeComment(&sb, t.comment)
		fmt.Fprintf(&sb, "create table %s.%s (\n", t.schema, t.name)
		for i, c := range t.columns {
			writeColumnComment(&sb, c.comment)
			fmt.Fprintf(&sb, "  %s %s", c.name, c.declaredType)
			if c.notNull {
				sb.WriteString(" not null")
			}
			if c.hasDefault {
				sb.WriteString(" default " + c.defaultExpr)
			}
			if i < len(t.columns)-1 || len(t.primaryKey) > 0 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		if len(t.primaryKey) > 0 {
			fmt.Fprintf(&sb, "  primary key (%s)\n", strings.Join(t.primaryKey, ", "))
		}
		sb.WriteString(");\n\n")
	}

	return sb.String(), nil
}

type enumInfo struct {
	schema  string
	name    string
	values  []string
	comment string
}

type columnInfo struct {
	name         string
	declaredType string
	notNull      bool
	hasDefault   bool
	defaultExpr  string
	comment      string
}

type tableInfo struct {
	schema     string
	name       string
	columns    []columnInfo
	primaryKey []string
	comment    string
}

func readEnums(ctx context.Context, db *sql.DB, schemas []string) ([]enumInfo, error) {
	const query = `
		SELECT n.nspname, t.typname, e.enumlabel,
		       COALESCE(obj_description(t.oid, 'pg_type'), '')
		FROM pg_type t
		JOIN pg_enum e ON e.enumtypid = t.oid
		JOIN pg_namespace n ON n.oid = t.typnamespace
		WHERE n.nspname = ANY($1)
		ORDER BY n.nspname, t.typname, e.enumsortorder`

	rows, err := db.QueryContext(ctx, query, pq.Array(schemas))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "query enums"), errors.ErrInputRead)
	}
	defer rows.Close()

	var enums []enumInfo
	for rows.Next() {
		var schema, name, label, comment string
		if err := rows.Scan(&schema, &name, &label, &comment); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "scan enum row"), errors.ErrInputRead)
		}
		if n := len(enums); n == 0 || enums[n-1].schema != schema || enums[n-1].name != name {
			enums = append(enums, enumInfo{schema: schema, name: name, comment: comment})
		}
		enums[len(enums)-1].values = append(enums[len(enums)-1].values, label)
	}
	return enums, errorsRows(rows)
}

func readTables(ctx context.Context, db *sql.DB, schemas []string) ([]tableInfo, error) {
	const query = `
		SELECT table_schema, table_name
		FROM information_schema.tables
		WHERE table_schema = ANY($1) AND table_type = 'BASE TABLE'
		ORDER BY table_schema, table_name`

	rows, err := db.QueryContext(ctx, query, pq.Array(schemas))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "query tables"), errors.ErrInputRead)
	}
	defer rows.Close()

	var tables []tableInfo
	for rows.Next() {
		var t tableInfo
		if err := rows.Scan(&t.schema, &t.name); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "scan table row"), errors.ErrInputRead)
		}
		tables = append(tables, t)
	}
	if err := errorsRows(rows); err != nil {
		return nil, err
	}

	for i := range tables {
		if err := fillTable(ctx, db, &tables[i]); err != nil {
			return nil, err
		}
	}
	return tables, nil
}

func fillTable(ctx context.Context, db *sql.DB, t *tableInfo) error {
	const columnQuery = `
		SELECT c.column_name, c.data_type, c.udt_name, c.is_nullable,
		       COALESCE(c.column_default, ''),
		       COALESCE(col_description(pc.oid, c.ordinal_position), '')
		FROM information_schema.columns c
		JOIN pg_class pc ON pc.relname = c.table_name
		JOIN pg_namespace pn ON pn.oid = pc.relnamespace AND pn.nspname = c.table_schema
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position`

	rows, err := db.QueryContext(ctx, columnQuery, t.schema, t.name)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "query columns of %s.%s", t.schema, t.name), errors.ErrInputRead)
	}
	defer rows.Close()

	for rows.Next() {
		var name, dataType, udtName, nullable, defaultExpr, comment string
		if err := rows.Scan(&name, &dataType, &udtName, &nullable, &defaultExpr, &comment); err != nil {
			return errors.Mark(errors.Wrap(err, "scan column row"), errors.ErrInputRead)
		}
		t.columns = append(t.columns, columnInfo{
			name:         name,
			declaredType: declaredType(dataType, udtName),
			notNull:      nullable == "NO",
			hasDefault:   defaultExpr != "",
			defaultExpr:  defaultExpr,
			comment:      comment,
		})
	}
	if err := errorsRows(rows); err != nil {
		return err
	}

	const tableCommentQuery = `
		SELECT COALESCE(obj_description(pc.oid, 'pg_class'), '')
		FROM pg_class pc
		JOIN pg_namespace pn ON pn.oid = pc.relnamespace
		WHERE pn.nspname = $1 AND pc.relname = $2`
	if err := db.QueryRowContext(ctx, tableCommentQuery, t.schema, t.name).Scan(&t.comment); err != nil {
		return errors.Mark(errors.Wrapf(err, "query comment of %s.%s", t.schema, t.name), errors.ErrInputRead)
	}

	const pkQuery = `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
		  ON kcu.constraint_name = tc.constraint_name
		 AND kcu.table_schema = tc.table_schema
		WHERE tc.table_schema = $1 AND tc.table_name = $2
		  AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position`
	pkRows, err := db.QueryContext(ctx, pkQuery, t.schema, t.name)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "query primary key of %s.%s", t.schema, t.name), errors.ErrInputRead)
	}
	defer pkRows.Close()
	for pkRows.Next() {
		var col string
		if err := pkRows.Scan(&col); err != nil {
			return errors.Mark(errors.Wrap(err, "scan primary key row"), errors.ErrInputRead)
		}
		t.primaryKey = append(t.primaryKey, col)
	}
	return errorsRows(pkRows)
}

// declaredType maps information_schema type reporting back to a declarable
// spelling: arrays report data_type ARRAY with an underscore-prefixed
// udt_name, user-defined types (enums) report their udt_name.
func declaredType(dataType, udtName string) string {
	switch dataType {
	case "ARRAY":
		return strings.TrimPrefix(udtName, "_") + "[]"
	case "USER-DEFINED":
		return udtName
	default:
		return dataType
	}
}

func writeComment(sb *strings.Builder, comment string) {
	if comment == "" {
		return
	}
	for _, line := range strings.Split(comment, "\n") {
		if line == "" {
			sb.WriteString("--\n")
			continue
		}
		fmt.Fprintf(sb, "-- %s\n", line)
	}
}

func writeColumnComment(sb *strings.Builder, comment string) {
	if comment == "" {
		return
	}
	for _, line := range strings.Split(comment, "\n") {
		if line == "" {
			sb.WriteString("  --\n")
			continue
		}
		fmt.Fprintf(sb, "  -- %s\n", line)
	}
}

func sqlString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func errorsRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		return errors.Mark(errors.Wrap(err, "iterate rows"), errors.ErrInputRead)
	}
	return nil
}
