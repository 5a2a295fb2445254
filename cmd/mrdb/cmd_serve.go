package main

import (
	"context"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/david3xu/mining-reliability-db-sub000/internal/logging"
	mcpserver "github.com/david3xu/mining-reliability-db-sub000/internal/mcp"
)

var serveFlags struct {
	config    string
	storePath string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing merge_dataset,
classify_fields, list_runs, and get_report.

The server monitors for parent process death. When the MCP host disconnects
or restarts, the server self-terminates to prevent zombie processes.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVarP(&serveFlags.config, "config", "c", "", "Config YAML file")
	f.StringVar(&serveFlags.storePath, "store", "", "Run store path (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, err := loadConfig(serveFlags.config)
	if err != nil {
		return err
	}
	st, err := openStore(cfgFile, serveFlags.storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := mcpserver.NewServer(cfgFile, st)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting mrdb MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
