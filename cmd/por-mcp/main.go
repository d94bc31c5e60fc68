// Command por-mcp exposes the POR search service as an MCP tool server, in
// teacher's cmd/mcp-server/main.go style: one mark3labs/mcp-go server,
// stdio transport, one tool per core operation, JSON-encoded tool results.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gilby125/por-search/config"
	"github.com/gilby125/por-search/enricher"
	"github.com/gilby125/por-search/interpreter"
	"github.com/gilby125/por-search/pkg/logger"
	"github.com/gilby125/por-search/porindex"
	"github.com/gilby125/por-search/tokenize"
	"github.com/gilby125/por-search/transliterate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{Level: cfg.LoggingConfig.Level, Format: cfg.LoggingConfig.Format})
	log := logger.WithField("component", "por-mcp")

	index, err := porindex.Open(cfg.IndexConfig.Path, porindex.WithMatchExistsFloor(cfg.MatcherConfig.CoMatchFloor))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening index: %v\n", err)
		os.Exit(1)
	}
	defer index.Close()

	tr, err := transliterate.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing transliterator: %v\n", err)
		os.Exit(1)
	}
	filter := tokenize.NewFilter(cfg.MatcherConfig.MinWordLength)

	var enr *enricher.Enricher
	if cfg.PostgresEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		pool, perr := pgxpool.New(ctx, enricher.ConnString(cfg.PostgresConfig))
		cancel()
		if perr != nil {
			log.Warn("postgres enrichment unavailable, continuing without it", "error", perr)
		} else {
			enr = enricher.New(pool)
			defer pool.Close()
		}
	}

	interp := interpreter.New(index, enr, tr, filter, interpreter.WithLogger(log))

	s := server.NewMCPServer(
		"por-search-mcp",
		"1.0.0",
		server.WithLogging(),
	)

	interpretTool := mcp.NewTool("interpret",
		mcp.WithDescription("Interpret a free-text point-of-reference query (city, airport, or place name) and return ranked matching locations"),
		mcp.WithString("query", mcp.Description("The free-text query to interpret, e.g. 'new york jfk' or 'londn'"), mcp.Required()),
	)

	s.AddTool(interpretTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]any)
		if !ok {
			return mcp.NewToolResultError("Invalid arguments format"), nil
		}

		query, _ := argsMap["query"].(string)
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		locations, unmatched, err := interp.Interpret(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("interpret failed: %v", err)), nil
		}

		resp := map[string]any{
			"locations":       locations,
			"unmatched_words": unmatched,
		}

		jsonBytes, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("error marshaling response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	sizeTool := mcp.NewTool("index_size",
		mcp.WithDescription("Return the number of documents in the POR search index"),
	)

	s.AddTool(sizeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		count, err := index.Size()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("size failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(`{"count":%d}`, count)), nil
	})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
