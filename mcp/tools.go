package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all csim MCP tools with the server
func RegisterTools(s *server.MCPServer, handlers *HandlerSet) {
	// Tool 1: compare_files - Pairwise structural similarity
	s.AddTool(mcp.NewTool("compare_files",
		mcp.WithDescription("Compare two C source files structurally using PDG construction and the Weisfeiler-Lehman graph kernel; returns a similarity score in [0, 1]"),
		mcp.WithString("file1",
			mcp.Required(),
			mcp.Description("Path to the first C source file")),
		mcp.WithString("file2",
			mcp.Required(),
			mcp.Description("Path to the second C source file")),
		mcp.WithNumber("rounds",
			mcp.Description("Number of WL relabeling rounds (default: 3)")),
	), handlers.HandleCompareFiles)

	// Tool 2: scan_directory - All-pairs similarity scan
	s.AddTool(mcp.NewTool("scan_directory",
		mcp.WithDescription("Scan a directory for structurally similar C files; reports all file pairs whose PDG similarity reaches the threshold"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the directory to scan")),
		mcp.WithNumber("threshold",
			mcp.Description("Minimum similarity to report, 0.0-1.0 (default: 0.8)")),
		mcp.WithNumber("rounds",
			mcp.Description("Number of WL relabeling rounds (default: 3)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Scan directories recursively (default: true)")),
	), handlers.HandleScanDirectory)
}
