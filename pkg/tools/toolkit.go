// Package tools provides the Hive MCP toolkit: metadata-introspection and
// query tools registered on a go-sdk MCP server.
package tools

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-hive/pkg/client"
)

// ToolName identifies a tool provided by this toolkit.
type ToolName string

// Tool names.
const (
	ToolListDatabases  ToolName = "hive_list_databases"
	ToolListTables     ToolName = "hive_list_tables"
	ToolListViews      ToolName = "hive_list_views"
	ToolDescribeTable  ToolName = "hive_describe_table"
	ToolShowCreate     ToolName = "hive_show_create"
	ToolSampleRows     ToolName = "hive_sample_rows"
	ToolQuery          ToolName = "hive_query"
	ToolSwitchDatabase ToolName = "hive_switch_database"
)

const (
	// defaultQueryLimit is the row limit applied to hive_query when the
	// caller does not specify one.
	defaultQueryLimit = 1000

	// defaultMaxLimit caps the rows any single hive_query may return.
	defaultMaxLimit = 10000
)

// Config holds toolkit configuration.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// Toolkit registers Hive tools backed by a client.
type Toolkit struct {
	client       *client.Client
	cfg          Config
	descriptions map[ToolName]string
	annotations  map[ToolName]*mcp.ToolAnnotations
}

// ToolkitOption customizes a Toolkit.
type ToolkitOption func(*Toolkit)

// WithDescriptions overrides tool descriptions by name.
func WithDescriptions(descriptions map[ToolName]string) ToolkitOption {
	return func(t *Toolkit) {
		t.descriptions = descriptions
	}
}

// WithAnnotations overrides tool annotations by name.
func WithAnnotations(annotations map[ToolName]*mcp.ToolAnnotations) ToolkitOption {
	return func(t *Toolkit) {
		t.annotations = annotations
	}
}

// NewToolkit creates a toolkit over the given client.
func NewToolkit(c *client.Client, cfg Config, opts ...ToolkitOption) *Toolkit {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultQueryLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = defaultMaxLimit
	}
	t := &Toolkit{client: c, cfg: cfg}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tools returns the names of all tools this toolkit registers.
func (*Toolkit) Tools() []ToolName {
	return []ToolName{
		ToolListDatabases,
		ToolListTables,
		ToolListViews,
		ToolDescribeTable,
		ToolShowCreate,
		ToolSampleRows,
		ToolQuery,
		ToolSwitchDatabase,
	}
}

// Client returns the underlying Hive client.
func (t *Toolkit) Client() *client.Client {
	return t.client
}

// Close releases the underlying client.
func (t *Toolkit) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// RegisterAll registers every tool with the MCP server.
func (t *Toolkit) RegisterAll(s *mcp.Server) {
	t.registerListDatabases(s)
	t.registerListTables(s)
	t.registerListViews(s)
	t.registerDescribeTable(s)
	t.registerShowCreate(s)
	t.registerSampleRows(s)
	t.registerQuery(s)
	t.registerSwitchDatabase(s)
}

// tool builds the tool descriptor, applying description and annotation
// overrides.
func (t *Toolkit) tool(name ToolName, description string, annotations *mcp.ToolAnnotations) *mcp.Tool {
	if override, ok := t.descriptions[name]; ok {
		description = override
	}
	if override, ok := t.annotations[name]; ok {
		annotations = override
	}
	return &mcp.Tool{
		Name:        string(name),
		Description: description,
		Annotations: annotations,
	}
}

// readOnly is the annotation set shared by all metadata tools.
func readOnly() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{ReadOnlyHint: true}
}

// jsonResult marshals v into a text content result.
func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// errorResult returns a tool error. MCP tool failures travel in
// CallToolResult.IsError, not as Go errors.
func errorResult(err error) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
		IsError: true,
	}, nil, nil
}

// textResult returns plain text content.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}
