package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// queryInput carries the SQL statement for hive_query.
type queryInput struct {
	SQL   string `json:"sql"`
	Limit int    `json:"limit,omitempty"`
}

// queryOutput is the JSON response of hive_query.
type queryOutput struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Count   int      `json:"count"`
}

// trailingLimit matches a LIMIT clause at the end of a statement.
var trailingLimit = regexp.MustCompile(`(?i)\blimit\s+\d+\s*;?\s*$`)

func (t *Toolkit) registerQuery(s *mcp.Server) {
	mcp.AddTool(s, t.tool(ToolQuery,
		fmt.Sprintf("Execute a SQL query against Hive. Results are capped at %d rows "+
			"(default %d); a LIMIT clause is appended when the statement has none.",
			t.cfg.MaxLimit, t.cfg.DefaultLimit),
		readOnly(),
	), func(ctx context.Context, _ *mcp.CallToolRequest, in queryInput) (*mcp.CallToolResult, any, error) {
		statement := strings.TrimSpace(in.SQL)
		if statement == "" {
			return errorResult(fmt.Errorf("sql is required"))
		}

		rs, err := t.client.Query(ctx, t.applyLimit(statement, in.Limit))
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(queryOutput{
			Columns: rs.Columns,
			Rows:    rs.Rows,
			Count:   len(rs.Rows),
		})
	})
}

// applyLimit clamps the requested limit into [1, MaxLimit] and appends a
// LIMIT clause unless the statement already ends in one. Statements whose
// own LIMIT exceeds the cap are left alone: the server enforces them, and
// rewriting user SQL is worse than trusting an explicit clause.
func (t *Toolkit) applyLimit(statement string, limit int) string {
	if trailingLimit.MatchString(statement) {
		return statement
	}
	if limit <= 0 {
		limit = t.cfg.DefaultLimit
	}
	if limit > t.cfg.MaxLimit {
		limit = t.cfg.MaxLimit
	}
	return fmt.Sprintf("%s LIMIT %d", strings.TrimSuffix(statement, ";"), limit)
}
