package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ludo-technologies/csim/internal/config"
	"github.com/ludo-technologies/csim/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "csim"
	serverVersion = "1.0.0"
)

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := config.FindDefaultConfig()
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: failed to load config (%v), using defaults", err)
		cfg = config.DefaultConfig()
	}

	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	handlers := mcp.NewHandlerSet(mcp.NewDependencies(cfg, configPath))
	mcp.RegisterTools(server, handlers)

	log.Printf("Starting %s MCP server v%s\n", serverName, serverVersion)
	log.Println("Registered tools:")
	log.Println("  - compare_files: Pairwise structural similarity")
	log.Println("  - scan_directory: All-pairs similarity scan")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	// Start server with stdio transport; blocks until terminated
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
