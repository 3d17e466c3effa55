// Package server provides a factory for creating the mcp-hive MCP server.
package server

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-hive/pkg/client"
	"github.com/txn2/mcp-hive/pkg/tools"
)

// Version is set at build time.
var Version = "dev"

// New creates an MCP server and its Hive toolkit from a config file.
// The caller owns the toolkit and must Close it on shutdown.
func New(configPath string) (*mcp.Server, *tools.Toolkit, *Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	hiveCfg, err := client.FromCarrierMap(cfg.Properties, cfg.Server.Prefix)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("extracting hive config: %w", err)
	}

	hiveClient, err := client.New(hiveCfg)
	if err != nil {
		return nil, nil, nil, err
	}

	toolkit := tools.NewToolkit(hiveClient, tools.Config{
		DefaultLimit: cfg.Tools.DefaultLimit,
		MaxLimit:     cfg.Tools.MaxLimit,
	})

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: Version,
	}, nil)
	toolkit.RegisterAll(mcpServer)

	return mcpServer, toolkit, cfg, nil
}
