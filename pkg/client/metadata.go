package client

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// defaultSampleRows is the number of rows fetched per table by SampleRows
// when the caller does not specify a count.
const defaultSampleRows = 5

// TableDDL pairs a catalog object with its CREATE statement.
type TableDDL struct {
	Identifier string `json:"identifier"`
	Database   string `json:"database_name"`
	Table      string `json:"table_name"`
	TableType  string `json:"table_type"`
	Definition string `json:"definition"`
}

// TableSample holds sampled rows for one table, rendered as CSV with a
// header line.
type TableSample struct {
	Identifier string `json:"identifier"`
	Database   string `json:"database_name"`
	Table      string `json:"table_name"`
	TableType  string `json:"table_type"`
	Rows       string `json:"sample_rows"`
}

// Databases lists databases via SHOW DATABASES. The single result column
// is stringified in row order.
func (c *Client) Databases(ctx context.Context) ([]string, error) {
	rs, err := c.Query(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, err
	}
	if rs.Empty() {
		return []string{}, nil
	}
	names := make([]string, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		names = append(names, stringify(cell(row, 0)))
	}
	return names, nil
}

// Tables lists tables in the given database (or the current default).
func (c *Client) Tables(ctx context.Context, database string) ([]string, error) {
	rs, err := c.Query(ctx, showStatement("SHOW TABLES", c.currentDatabase(database)))
	if err != nil {
		return nil, err
	}
	return ExtractNames(rs), nil
}

// Views lists views in the given database (or the current default).
// Older Hive servers do not support SHOW VIEWS; that failure degrades to
// an empty list with a warning rather than an error.
func (c *Client) Views(ctx context.Context, database string) ([]string, error) {
	rs, err := c.Query(ctx, showStatement("SHOW VIEWS", c.currentDatabase(database)))
	if err != nil {
		slog.Warn("hive: listing views failed", "error", err)
		return []string{}, nil
	}
	return ExtractNames(rs), nil
}

// showStatement appends "IN `db`" to a SHOW statement when a database is set.
func showStatement(base, database string) string {
	if database == "" {
		return base
	}
	return base + " IN " + QuoteIdentifier(database)
}

// DescribeTable returns the schema of a table via DESCRIBE, with the
// trailing partition-information section stripped.
func (c *Client) DescribeTable(ctx context.Context, database, table string) ([]SchemaColumn, error) {
	if table == "" {
		return []SchemaColumn{}, nil
	}
	rs, err := c.Query(ctx, "DESCRIBE "+c.FullName(database, table))
	if err != nil {
		return nil, err
	}
	return ExtractSchema(rs), nil
}

// ShowCreate returns the DDL of a table or view via SHOW CREATE TABLE.
func (c *Client) ShowCreate(ctx context.Context, database, table string) (string, error) {
	fullName := c.FullName(database, table)
	rs, err := c.Query(ctx, "SHOW CREATE TABLE "+fullName)
	if err != nil {
		return "", err
	}
	if rs.Empty() {
		return "-- DDL not available for " + fullName, nil
	}
	lines := make([]string, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		lines = append(lines, stringify(cell(row, 0)))
	}
	return strings.Join(lines, "\n"), nil
}

// TablesWithDDL returns every table in the database with its DDL. A
// non-empty tables list restricts the result to those names.
func (c *Client) TablesWithDDL(ctx context.Context, database string, tables []string) ([]TableDDL, error) {
	return c.objectsWithDDL(ctx, database, tables, "table", c.Tables)
}

// ViewsWithDDL returns every view in the database with its DDL.
func (c *Client) ViewsWithDDL(ctx context.Context, database string) ([]TableDDL, error) {
	return c.objectsWithDDL(ctx, database, nil, "view", c.Views)
}

func (c *Client) objectsWithDDL(
	ctx context.Context,
	database string,
	filter []string,
	tableType string,
	list func(context.Context, string) ([]string, error),
) ([]TableDDL, error) {
	database = c.currentDatabase(database)
	names, err := list(ctx, database)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(filter))
	for _, name := range filter {
		wanted[name] = struct{}{}
	}

	result := make([]TableDDL, 0, len(names))
	for _, name := range names {
		if len(wanted) > 0 {
			if _, ok := wanted[name]; !ok {
				continue
			}
		}
		ddl, err := c.ShowCreate(ctx, database, name)
		if err != nil {
			return nil, err
		}
		result = append(result, TableDDL{
			Identifier: identifier(database, name),
			Database:   database,
			Table:      name,
			TableType:  tableType,
			Definition: ddl,
		})
	}
	return result, nil
}

// SampleRows fetches up to topN rows from each listed table (every table
// in the database when tables is empty), rendered as CSV. Tables that
// return no rows are omitted.
func (c *Client) SampleRows(ctx context.Context, database string, tables []string, topN int) ([]TableSample, error) {
	database = c.currentDatabase(database)
	if topN <= 0 {
		topN = defaultSampleRows
	}

	if len(tables) == 0 {
		var err error
		tables, err = c.Tables(ctx, database)
		if err != nil {
			return nil, err
		}
	}

	result := make([]TableSample, 0, len(tables))
	for _, table := range tables {
		statement, _, err := sq.Select("*").
			From(c.FullName(database, table)).
			Limit(uint64(topN)).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("building sample query for %s: %w", table, err)
		}

		rs, err := c.Query(ctx, statement)
		if err != nil {
			return nil, err
		}
		if rs.Empty() {
			continue
		}

		rendered, err := renderCSV(rs)
		if err != nil {
			return nil, fmt.Errorf("rendering sample rows for %s: %w", table, err)
		}
		result = append(result, TableSample{
			Identifier: identifier(database, table),
			Database:   database,
			Table:      table,
			TableType:  "table",
			Rows:       rendered,
		})
	}
	return result, nil
}

// UseDatabase switches the session's default database and records it as
// the client default for subsequent metadata calls.
func (c *Client) UseDatabase(ctx context.Context, database string) error {
	if database == "" {
		return nil
	}
	if err := c.exec(ctx, "USE "+QuoteIdentifier(database)); err != nil {
		return err
	}
	c.mu.Lock()
	c.database = database
	c.mu.Unlock()
	return nil
}

// FullName builds the quoted, fully-qualified name of a table, using the
// current default database when none is given.
func (c *Client) FullName(database, table string) string {
	if db := c.currentDatabase(database); db != "" {
		return QuoteIdentifier(db) + "." + QuoteIdentifier(table)
	}
	return QuoteIdentifier(table)
}

// identifier is the unquoted dotted name used in catalog records.
func identifier(database, table string) string {
	if database == "" {
		return table
	}
	return database + "." + table
}

// renderCSV writes a result set as CSV with a header line.
func renderCSV(rs *ResultSet) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(rs.Columns); err != nil {
		return "", err
	}
	record := make([]string, len(rs.Columns))
	for _, row := range rs.Rows {
		for i := range record {
			record[i] = stringify(cell(row, i))
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}
