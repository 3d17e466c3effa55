package client

import "strings"

// QuoteIdentifier wraps a database or table name in backticks, doubling
// any embedded backtick. Identifiers come from trusted catalog metadata;
// quoting guards against reserved words, not hostile input.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
