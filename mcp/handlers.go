package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ludo-technologies/csim/domain"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleCompareFiles handles the compare_files tool
func (h *HandlerSet) HandleCompareFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	file1, ok := args["file1"].(string)
	if !ok {
		return mcp.NewToolResultError("file1 parameter is required and must be a string"), nil
	}
	file2, ok := args["file2"].(string)
	if !ok {
		return mcp.NewToolResultError("file2 parameter is required and must be a string"), nil
	}

	for _, file := range []string{file1, file2} {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			return mcp.NewToolResultError(fmt.Sprintf("file does not exist: %s", file)), nil
		}
	}

	req := domain.DefaultCompareRequest()
	req.File1 = file1
	req.File2 = file2
	req.Rounds = h.deps.Config().Analysis.Rounds
	if rounds, ok := args["rounds"].(float64); ok {
		if rounds < 0 {
			return mcp.NewToolResultError("rounds must be >= 0"), nil
		}
		req.Rounds = int(rounds)
	}

	response, err := h.deps.comparer.Compare(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleScanDirectory handles the scan_directory tool
func (h *HandlerSet) HandleScanDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	cfg := h.deps.Config()
	req := domain.DefaultScanRequest()
	req.Paths = []string{path}
	req.Rounds = cfg.Analysis.Rounds
	req.SimilarityThreshold = cfg.Scan.Threshold
	req.MinNodes = cfg.Scan.MinNodes
	req.IncludePatterns = cfg.Scan.IncludePatterns
	req.ExcludePatterns = cfg.Scan.ExcludePatterns
	req.Recursive = cfg.Scan.Recursive

	if threshold, ok := args["threshold"].(float64); ok {
		if threshold < 0 || threshold > 1 {
			return mcp.NewToolResultError("threshold must be between 0.0 and 1.0"), nil
		}
		req.SimilarityThreshold = threshold
	}
	if rounds, ok := args["rounds"].(float64); ok {
		if rounds < 0 {
			return mcp.NewToolResultError("rounds must be >= 0"), nil
		}
		req.Rounds = int(rounds)
	}
	if recursive, ok := args["recursive"].(bool); ok {
		req.Recursive = recursive
	}

	response, err := h.deps.scanner.Scan(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	jsonData, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}
