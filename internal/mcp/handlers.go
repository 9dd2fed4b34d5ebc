package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dkeller9/contactlens/internal/config"
	"github.com/dkeller9/contactlens/internal/db"
	"github.com/dkeller9/contactlens/internal/errors"
	"github.com/dkeller9/contactlens/internal/export"
	"github.com/dkeller9/contactlens/internal/features"
	"github.com/dkeller9/contactlens/internal/pipeline"
	"github.com/dkeller9/contactlens/internal/report"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Request types for each tool

// ListRequest represents the arguments for contact_list.
type ListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// AnalyzeRequest represents the arguments for pipeline_analyze.
type AnalyzeRequest struct {
	OutputDir string `json:"output_dir,omitempty"`
	Now       string `json:"now,omitempty"`
}

// ExportRequest represents the arguments for dataset_export.
type ExportRequest struct {
	Dir string `json:"dir"`
}

// Handler implementations

// HandleStats handles the contact_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := db.FetchContacts(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}

	now := time.Now().UTC()
	result := features.Enrich(records, now)
	summary := report.BuildSummary(result.Records, result.Mapping, now)

	return successResult(summary)
}

// HandleList handles the contact_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	limit := input.Limit
	if limit < 1 || limit > 200 {
		limit = 20
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	items, total, err := db.ListContacts(ctx, h.db, limit, offset)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"items": items,
		"pagination": map[string]any{
			"limit":  limit,
			"offset": offset,
			"total":  total,
		},
	})
}

// HandleAnalyze handles the pipeline_analyze tool call.
func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AnalyzeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	opts := pipeline.Options{OutputDir: input.OutputDir}
	if input.Now != "" {
		now, err := time.Parse(time.RFC3339, input.Now)
		if err != nil {
			return errorResult(errors.NewInvalidRequest("now must be RFC 3339")), nil
		}
		opts.Now = now
	}

	result, err := pipeline.Run(ctx, h.db, h.cfg, opts)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the dataset_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Dir == "" {
		return errorResult(errors.NewInvalidRequest("dir is required")), nil
	}

	records, err := db.FetchContacts(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}

	now := time.Now().UTC()
	result := features.Enrich(records, now)

	if err := os.MkdirAll(input.Dir, 0755); err != nil {
		return errorResult(errors.NewOutputWrite(input.Dir, err)), nil
	}

	out, err := export.WriteDatasets(input.Dir, result, now)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(out)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if pErr, ok := err.(*errors.PipelineError); ok {
		errorObj := map[string]any{
			"code":    pErr.Code,
			"message": pErr.Message,
			"status":  pErr.Status,
		}
		if pErr.Code != errors.ErrInternal && pErr.Details != nil {
			errorObj["details"] = pErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
