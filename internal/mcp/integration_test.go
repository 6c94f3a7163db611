package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/a3tai/mcp-fer-extract/internal/descriptions"
)

// rpc sends one JSON-RPC message through the protocol server and returns
// the encoded response.
func rpc(t *testing.T, srv *Server, message string) string {
	t.Helper()

	resp := srv.MCPServer().HandleMessage(context.Background(), json.RawMessage(message))
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to encode response: %v", err)
	}
	return string(data)
}

func TestServerIntegration_ToolsList(t *testing.T) {
	srv := newTestServer(t, testConfig(t.TempDir()), zerolog.Nop())

	rpc(t, srv, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`)
	out := rpc(t, srv, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)

	for _, name := range descriptions.GetAllToolNames() {
		if !strings.Contains(out, `"name":"`+name+`"`) {
			t.Errorf("tools/list response missing %s", name)
		}
	}
	if !strings.Contains(out, `"required":["path"]`) {
		t.Error("file tools should require a path argument")
	}
}

func TestServerIntegration_ParseFERFromDOCX(t *testing.T) {
	dir := t.TempDir()
	writeDOCX(t, dir, "fer.docx",
		"FIRST EXAMINATION REPORT",
		"Application No.: 202141012345",
		"D1: US2019123456A1 (12/01/2019)",
		"B. Detailed observations on the requirements under the Act",
		"NOVELTY",
		"Claims 1-3 lack novelty over D1.",
	)
	srv := newTestServer(t, testConfig(dir), zerolog.Nop())

	out := rpc(t, srv, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"fer_parse","arguments":{"path":"fer.docx"}}}`)

	var resp struct {
		Result struct {
			IsError bool `json:"isError"`
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("failed to decode response %s: %v", out, err)
	}
	if resp.Result.IsError || len(resp.Result.Content) == 0 {
		t.Fatalf("unexpected tool result: %s", out)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(resp.Result.Content[0].Text), &parsed); err != nil {
		t.Fatalf("tool text is not JSON: %v", err)
	}
	if parsed["application_no"] != "202141012345" {
		t.Errorf("application_no = %v, want 202141012345", parsed["application_no"])
	}
	for _, key := range []string{"filing_date", "applicant", "title", "prior_arts", "objections", "scanned", "profile"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("result missing key %s", key)
		}
	}
	if objections, ok := parsed["objections"].([]interface{}); !ok || len(objections) != 1 {
		t.Errorf("objections = %v, want one objection", parsed["objections"])
	}
}

func TestServerIntegration_UnknownTool(t *testing.T) {
	srv := newTestServer(t, testConfig(t.TempDir()), zerolog.Nop())

	out := rpc(t, srv, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"pdf_read_file","arguments":{"path":"a.pdf"}}}`)
	if !strings.Contains(out, `"error"`) {
		t.Errorf("expected JSON-RPC error for unknown tool, got %s", out)
	}
}
