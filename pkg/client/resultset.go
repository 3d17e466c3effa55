package client

import (
	"database/sql"
	"fmt"
	"strconv"
)

// ResultSet is a fully materialized tabular result: an ordered list of
// column names and rows of scanned values. Metadata statements return
// small results, so buffering them is fine.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Empty reports whether the result has no rows.
func (rs *ResultSet) Empty() bool {
	return rs == nil || len(rs.Rows) == 0
}

// newResultSet drains rows into a ResultSet. Byte slices are converted to
// strings because thrift-backed drivers return text columns as []byte.
func newResultSet(rows *sql.Rows) (*ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading result columns: %w", err)
	}

	rs := &ResultSet{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating result rows: %w", err)
	}
	return rs, nil
}

// cell returns the value at column i, or nil when the row is short.
// Hive result shapes vary between server versions, so short rows are
// treated as absent values rather than errors.
func cell(row []any, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}

// stringify renders a scanned cell as a string. Nil becomes the empty
// string so callers can trim-and-test without nil checks.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return string(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
