package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dkeller9/contactlens/internal/config"
	"github.com/dkeller9/contactlens/internal/db"
)

// testSetup creates a temporary database and config for testing.
func testSetup(t *testing.T) (*sql.DB, *config.Config) {
	t.Helper()

	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.OutputDir = filepath.Join(tmpDir, "analysis")

	database, err := db.Open(cfg, tmpDir)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database, cfg
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func seedContact(t *testing.T, database *sql.DB, name, phone string) {
	t.Helper()
	created := "2024-01-05 10:00:00"
	_, err := db.InsertContact(context.Background(), database, db.NewContact{
		Name:      name,
		Phone:     phone,
		CreatedAt: &created,
	})
	if err != nil {
		t.Fatalf("seed contact %q: %v", name, err)
	}
}

// resultText extracts the text payload from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestHandleStats(t *testing.T) {
	database, cfg := testSetup(t)
	seedContact(t, database, "Jane Doe", "+1 (415) 555-0199")
	seedContact(t, database, "Acme Inc", "555-1234")
	h := NewHandlers(database, cfg)

	result, err := h.HandleStats(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleStats: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var summary map[string]any
	if err := json.Unmarshal([]byte(resultText(t, result)), &summary); err != nil {
		t.Fatalf("summary is not JSON: %v", err)
	}
	if summary["total_contacts"] != float64(2) {
		t.Errorf("total_contacts = %v, want 2", summary["total_contacts"])
	}
}

func TestHandleList(t *testing.T) {
	database, cfg := testSetup(t)
	seedContact(t, database, "Jane Doe", "555-0100")
	h := NewHandlers(database, cfg)

	result, err := h.HandleList(context.Background(), makeRequest(map[string]any{"limit": 10}))
	if err != nil {
		t.Fatalf("HandleList: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var payload struct {
		Items []map[string]any `json:"items"`
		Page  map[string]any   `json:"pagination"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if len(payload.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(payload.Items))
	}
	if payload.Items[0]["name"] != "Jane Doe" {
		t.Errorf("item name = %v, want Jane Doe", payload.Items[0]["name"])
	}
}

func TestHandleAnalyze(t *testing.T) {
	database, cfg := testSetup(t)
	seedContact(t, database, "Jane Doe", "555-0100")
	h := NewHandlers(database, cfg)

	result, err := h.HandleAnalyze(context.Background(), makeRequest(map[string]any{
		"now": "2024-03-01T09:30:00Z",
	}))
	if err != nil {
		t.Fatalf("HandleAnalyze: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	runID, _ := out["run_id"].(string)
	if !strings.HasPrefix(runID, "run-20240301_0930-") {
		t.Errorf("run_id = %q, want timestamp prefix", runID)
	}
}

func TestHandleAnalyze_BadNow(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	result, err := h.HandleAnalyze(context.Background(), makeRequest(map[string]any{
		"now": "yesterday",
	}))
	if err != nil {
		t.Fatalf("HandleAnalyze: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for malformed now")
	}
	if !strings.Contains(resultText(t, result), "INVALID_REQUEST") {
		t.Errorf("error payload = %s, want INVALID_REQUEST", resultText(t, result))
	}
}

func TestHandleExport(t *testing.T) {
	database, cfg := testSetup(t)
	seedContact(t, database, "Jane Doe", "555-0100")
	h := NewHandlers(database, cfg)

	dir := filepath.Join(t.TempDir(), "exports")
	result, err := h.HandleExport(context.Background(), makeRequest(map[string]any{"dir": dir}))
	if err != nil {
		t.Fatalf("HandleExport: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if out["rows"] != float64(1) {
		t.Errorf("rows = %v, want 1", out["rows"])
	}
}

func TestHandleExport_MissingDir(t *testing.T) {
	database, cfg := testSetup(t)
	h := NewHandlers(database, cfg)

	result, err := h.HandleExport(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleExport: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result when dir is missing")
	}
}

func TestNewServerSkipsDisabledTools(t *testing.T) {
	database, cfg := testSetup(t)
	cfg.DisabledTools = []string{"dataset_export"}

	s := NewServer(database, cfg, "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"contact_stats", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("unknown = %v, want [bogus_tool]", unknown)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != 4 {
		t.Errorf("got %d tool names, want 4", len(names))
	}
}
