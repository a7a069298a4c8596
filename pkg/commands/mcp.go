package commands

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/herbview/pkg/catalog"
	"tableflip.dev/herbview/pkg/commands/options"
	"tableflip.dev/herbview/pkg/logging"
	"tableflip.dev/herbview/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	mo := &options.MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "serve the catalog over the Model Context Protocol",
		Long: `Launch a read-only MCP server exposing catalog items, tags and a search
tool for the configured catalog.`,
		Example: `
herbview mcp
herbview mcp --transport stdio
herbview mcp -f https://example.com/data/herbs.json --http-port 0
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, src, err := resolve()
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogFile)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			path := mo.EndpointPath()
			runner := mcp.Runner{
				Source:           src,
				Loader:           &catalog.Loader{},
				AssetRoot:        cfg.AssetRoot,
				Version:          version,
				Log:              log,
				HTTPEndpointPath: path,
			}

			switch strings.ToLower(strings.TrimSpace(mo.Transport)) {
			case "", string(mcp.TransportHTTP):
				addr, err := mo.Addr()
				if err != nil {
					return err
				}
				runner.Transport = mcp.TransportHTTP
				runner.HTTPListenAddr = addr
				runner.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on http://%s%s\n", a, path)
				}
			case string(mcp.TransportStdio):
				runner.Transport = mcp.TransportStdio
			default:
				return fmt.Errorf("unsupported transport %q (expected http or stdio)", mo.Transport)
			}

			return runner.Do(cmd.Context())
		},
	}

	options.AddMCPArgs(cmd, mo)

	topLevel.AddCommand(cmd)
}
