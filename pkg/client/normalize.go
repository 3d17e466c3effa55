package client

import "strings"

// nameColumnPriority lists listing-column names recognized across Hive and
// Spark Thrift server versions, most specific first.
var nameColumnPriority = []string{"tablename", "tab_name", "table_name", "name"}

// nameRule is one branch of the name-extraction policy. Rules run in
// order; the first rule returning ok wins.
type nameRule struct {
	name    string
	extract func(rs *ResultSet) ([]string, bool)
}

var nameRules = []nameRule{
	{name: "recognized column", extract: namesFromRecognizedColumn},
	{name: "first string column", extract: namesFromStringColumn},
	{name: "first scalar column", extract: namesFromScalarColumn},
}

// ExtractNames pulls table or view names out of a SHOW TABLES / SHOW VIEWS
// result. Server versions disagree on column naming and add extra flag
// columns (isTemporary), so extraction is a priority-ordered rule list:
// a case-insensitively recognized name column wins outright, then the
// first column holding string values, then the first column holding any
// non-null non-boolean values. No rule matching yields an empty list.
func ExtractNames(rs *ResultSet) []string {
	if rs.Empty() {
		return []string{}
	}
	for _, rule := range nameRules {
		if names, ok := rule.extract(rs); ok {
			return names
		}
	}
	return []string{}
}

// namesFromRecognizedColumn returns all values of the first column whose
// lower-cased name is in nameColumnPriority, unfiltered and in row order.
func namesFromRecognizedColumn(rs *ResultSet) ([]string, bool) {
	byLower := make(map[string]int, len(rs.Columns))
	for i, col := range rs.Columns {
		if _, seen := byLower[strings.ToLower(col)]; !seen {
			byLower[strings.ToLower(col)] = i
		}
	}
	for _, candidate := range nameColumnPriority {
		idx, ok := byLower[candidate]
		if !ok {
			continue
		}
		names := make([]string, 0, len(rs.Rows))
		for _, row := range rs.Rows {
			names = append(names, stringify(cell(row, idx)))
		}
		return names, true
	}
	return nil, false
}

// namesFromStringColumn returns the non-blank string values of the first
// column that contains at least one string-typed value.
func namesFromStringColumn(rs *ResultSet) ([]string, bool) {
	for idx := range rs.Columns {
		var names []string
		hasString := false
		for _, row := range rs.Rows {
			s, ok := cell(row, idx).(string)
			if !ok {
				continue
			}
			hasString = true
			if strings.TrimSpace(s) != "" {
				names = append(names, s)
			}
		}
		if hasString && len(names) > 0 {
			return names, true
		}
	}
	return nil, false
}

// namesFromScalarColumn returns the stringified non-null, non-boolean
// values of the first column that has any.
func namesFromScalarColumn(rs *ResultSet) ([]string, bool) {
	for idx := range rs.Columns {
		var names []string
		for _, row := range rs.Rows {
			v := cell(row, idx)
			if v == nil {
				continue
			}
			if _, isBool := v.(bool); isBool {
				continue
			}
			names = append(names, stringify(v))
		}
		if len(names) > 0 {
			return names, true
		}
	}
	return nil, false
}

// SchemaColumn describes one column of a Hive table as reported by
// DESCRIBE. Hive surfaces neither nullability nor primary keys, so
// Nullable is always true and PrimaryKey always false; DefaultValue is
// always empty.
type SchemaColumn struct {
	Position     int    `json:"position"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Comment      string `json:"comment,omitempty"`
	Nullable     bool   `json:"nullable"`
	PrimaryKey   bool   `json:"primary_key"`
	DefaultValue string `json:"default_value,omitempty"`
}

// ExtractSchema converts a DESCRIBE result into schema columns. The first
// result column is the name, the second (when present) the type, the
// third (when present) the comment. A row whose trimmed name is empty or
// starts with "#" marks the beginning of the trailing partition-info
// section DESCRIBE appends; it and everything after it are discarded.
// Known limitation: a real column whose name begins with "#" would be
// mistaken for the sentinel.
func ExtractSchema(rs *ResultSet) []SchemaColumn {
	if rs.Empty() {
		return []SchemaColumn{}
	}
	columns := make([]SchemaColumn, 0, len(rs.Rows))
	for i, row := range rs.Rows {
		name := strings.TrimSpace(stringify(cell(row, 0)))
		if name == "" || strings.HasPrefix(name, "#") {
			break
		}
		col := SchemaColumn{
			Position: i,
			Name:     name,
			Nullable: true,
		}
		if len(row) > 1 {
			col.Type = strings.TrimSpace(stringify(row[1]))
		}
		if len(row) > 2 {
			col.Comment = strings.TrimSpace(stringify(row[2]))
		}
		columns = append(columns, col)
	}
	return columns
}
