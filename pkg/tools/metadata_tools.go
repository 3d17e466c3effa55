package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-hive/pkg/client"
)

// listDatabasesInput is empty since the tool has no parameters.
type listDatabasesInput struct{}

// listInput selects the database for listing tools.
type listInput struct {
	Database string `json:"database,omitempty"`
}

// tableInput identifies a single table.
type tableInput struct {
	Database string `json:"database,omitempty"`
	Table    string `json:"table"`
}

// sampleRowsInput selects tables to sample.
type sampleRowsInput struct {
	Database string   `json:"database,omitempty"`
	Tables   []string `json:"tables,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// switchDatabaseInput names the database to switch to.
type switchDatabaseInput struct {
	Database string `json:"database"`
}

// nameListOutput is the JSON response of the listing tools.
type nameListOutput struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
}

// schemaOutput is the JSON response of hive_describe_table.
type schemaOutput struct {
	Table   string                `json:"table"`
	Columns []client.SchemaColumn `json:"columns"`
	Count   int                   `json:"count"`
}

func (t *Toolkit) registerListDatabases(s *mcp.Server) {
	mcp.AddTool(s, t.tool(ToolListDatabases,
		"List all databases available on the Hive server.",
		readOnly(),
	), func(ctx context.Context, _ *mcp.CallToolRequest, _ listDatabasesInput) (*mcp.CallToolResult, any, error) {
		names, err := t.client.Databases(ctx)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(nameListOutput{Names: names, Count: len(names)})
	})
}

func (t *Toolkit) registerListTables(s *mcp.Server) {
	mcp.AddTool(s, t.tool(ToolListTables,
		"List tables in a Hive database. Defaults to the connection's current database.",
		readOnly(),
	), func(ctx context.Context, _ *mcp.CallToolRequest, in listInput) (*mcp.CallToolResult, any, error) {
		names, err := t.client.Tables(ctx, in.Database)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(nameListOutput{Names: names, Count: len(names)})
	})
}

func (t *Toolkit) registerListViews(s *mcp.Server) {
	mcp.AddTool(s, t.tool(ToolListViews,
		"List views in a Hive database. Defaults to the connection's current database.",
		readOnly(),
	), func(ctx context.Context, _ *mcp.CallToolRequest, in listInput) (*mcp.CallToolResult, any, error) {
		names, err := t.client.Views(ctx, in.Database)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(nameListOutput{Names: names, Count: len(names)})
	})
}

func (t *Toolkit) registerDescribeTable(s *mcp.Server) {
	mcp.AddTool(s, t.tool(ToolDescribeTable,
		"Describe the columns of a Hive table (name, type, comment). "+
			"Partition metadata sections are excluded.",
		readOnly(),
	), func(ctx context.Context, _ *mcp.CallToolRequest, in tableInput) (*mcp.CallToolResult, any, error) {
		columns, err := t.client.DescribeTable(ctx, in.Database, in.Table)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(schemaOutput{
			Table:   in.Table,
			Columns: columns,
			Count:   len(columns),
		})
	})
}

func (t *Toolkit) registerShowCreate(s *mcp.Server) {
	mcp.AddTool(s, t.tool(ToolShowCreate,
		"Show the CREATE statement (DDL) for a Hive table or view.",
		readOnly(),
	), func(ctx context.Context, _ *mcp.CallToolRequest, in tableInput) (*mcp.CallToolResult, any, error) {
		ddl, err := t.client.ShowCreate(ctx, in.Database, in.Table)
		if err != nil {
			return errorResult(err)
		}
		return textResult(ddl)
	})
}

func (t *Toolkit) registerSampleRows(s *mcp.Server) {
	mcp.AddTool(s, t.tool(ToolSampleRows,
		"Fetch sample rows (CSV) from one or more Hive tables.",
		readOnly(),
	), func(ctx context.Context, _ *mcp.CallToolRequest, in sampleRowsInput) (*mcp.CallToolResult, any, error) {
		samples, err := t.client.SampleRows(ctx, in.Database, in.Tables, in.Limit)
		if err != nil {
			return errorResult(err)
		}
		return jsonResult(samples)
	})
}

func (t *Toolkit) registerSwitchDatabase(s *mcp.Server) {
	mcp.AddTool(s, t.tool(ToolSwitchDatabase,
		"Switch the connection's current database (USE <database>).",
		&mcp.ToolAnnotations{IdempotentHint: true},
	), func(ctx context.Context, _ *mcp.CallToolRequest, in switchDatabaseInput) (*mcp.CallToolResult, any, error) {
		if err := t.client.UseDatabase(ctx, in.Database); err != nil {
			return errorResult(err)
		}
		return textResult("Switched to database " + in.Database)
	})
}
