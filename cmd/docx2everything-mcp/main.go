package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sudipnext/docx2everything/config"
	"github.com/sudipnext/docx2everything/converter"
)

// Server identity constants.
const (
	serverName    = "docx2everything"
	serverVersion = "0.1.0"
)

// MCP tool parameter key constants — shared between schema definitions and
// argument extraction so a typo in one place is caught by the other.
const (
	argPath     = "path"
	argImageDir = "image_dir"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	s := server.NewMCPServer(serverName, serverVersion)
	conv := converter.New(cfg, logger)
	registerTools(s, conv)

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("server error: %v\n", err)
	}
}

// registerTools binds MCP tool definitions to their handlers.
func registerTools(s *server.MCPServer, conv *converter.Converter) {
	s.AddTool(
		convertTool("convert_to_markdown",
			"Convert a .docx file to Markdown. Pass an absolute file path. "+
				"Headings, lists, tables, footnotes, comments, images, and charts are preserved."),
		convertHandler(conv, converter.FormatMarkdown),
	)

	s.AddTool(
		convertTool("convert_to_text",
			"Convert a .docx file to plain text. Pass an absolute file path. "+
				"Document structure is flattened; formatting marks are dropped."),
		convertHandler(conv, converter.FormatText),
	)

	s.AddTool(
		mcp.NewTool("get_conversion_info",
			mcp.WithDescription("Return supported formats and active configuration."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(conv.Info()), nil
		},
	)
}

func convertTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString(argPath,
			mcp.Required(),
			mcp.Description("Absolute path of the .docx file to convert"),
		),
		mcp.WithString(argImageDir,
			mcp.Description("Directory to extract embedded images into (optional)"),
		),
	)
}

func convertHandler(conv *converter.Converter, format converter.Format) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path, ok := req.Params.Arguments[argPath].(string)
		if !ok || path == "" {
			return mcp.NewToolResultError(argPath + " is required"), nil
		}
		opts := converter.Options{}
		if dir, ok := req.Params.Arguments[argImageDir].(string); ok && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("create image dir: %v", err)), nil
			}
			opts.ImageDir = dir
		}

		res, err := conv.ConvertFile(ctx, path, format, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out := res.Output
		if len(res.Warnings) > 0 {
			out += "\n\nWarnings:\n- " + strings.Join(res.Warnings, "\n- ")
		}
		return mcp.NewToolResultText(out), nil
	}
}
