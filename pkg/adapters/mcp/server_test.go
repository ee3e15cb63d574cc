package mcp

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/catalog"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	wb := automata.New()
	require.NoError(t, wb.Create(context.Background(), "binary", catalog.BinaryEndingWithOne()))
	return NewServer(wb, WithMaxInputSize(8))
}

func TestRegisteredTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	call := func(msg string) []byte {
		t.Helper()
		resp := s.mcpServer.HandleMessage(ctx, json.RawMessage(msg))
		require.NotNil(t, resp)
		data, err := json.Marshal(resp)
		require.NoError(t, err)
		return data
	}

	call(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0.0.1"}}}`)

	var listed struct {
		Result struct {
			Tools []struct {
				Name        string         `json:"name"`
				InputSchema map[string]any `json:"inputSchema"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(call(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`), &listed))

	names := make([]string, 0, len(listed.Result.Tools))
	schemas := make(map[string]map[string]any)
	for _, tool := range listed.Result.Tools {
		names = append(names, tool.Name)
		schemas[tool.Name] = tool.InputSchema
	}
	sort.Strings(names)
	assert.Equal(t, []string{
		"create_from_example",
		"describe_automaton",
		"enumerate_accepted",
		"evaluate_string",
		"list_automata",
		"validate_automaton",
	}, names)

	required, _ := schemas["evaluate_string"]["required"].([]any)
	assert.ElementsMatch(t, []any{"name", "input"}, required)
	props, _ := schemas["enumerate_accepted"]["properties"].(map[string]any)
	assert.Contains(t, props, "limit")
	assert.Contains(t, props, "include_empty")
}

func TestHandleEvaluate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"name": "binary", "input": "101"})
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Len(t, res.Trace, 3)

	res, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"name": "binary", "input": ""})
	require.NoError(t, err)
	assert.False(t, res.Accepted)

	_, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"name": "binary", "input": "2"})
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)

	_, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"name": "binary", "input": "0\x001"})
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)

	_, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"name": "binary", "input": "0101010101"})
	assert.ErrorContains(t, err, "input rejected")

	_, err = s.handleEvaluate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"name": "nope", "input": "1"})
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestHandleEnumerate(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleEnumerate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"name": "binary", "limit": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "01", "10"}, res.Strings)

	_, err = s.handleEnumerate(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"name": "binary", "limit": float64(-1)})
	assert.Error(t, err)
}

func TestHandleCreateDescribeValidate(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	desc, err := s.handleCreateFromExample(ctx, mcp.CallToolRequest{}, map[string]interface{}{"example": "even_length", "name": "even"})
	require.NoError(t, err)
	assert.Equal(t, "even", desc.Name)
	assert.True(t, desc.Summary.Complete)
	assert.Contains(t, desc.Markdown, "# even")

	_, err = s.handleCreateFromExample(ctx, mcp.CallToolRequest{}, map[string]interface{}{"example": "even_length", "name": "even"})
	assert.ErrorIs(t, err, domain.ErrAutomatonExists)

	_, err = s.handleCreateFromExample(ctx, mcp.CallToolRequest{}, map[string]interface{}{"example": "nope"})
	assert.ErrorIs(t, err, catalog.ErrUnknownExample)

	list, err := s.handleList(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"binary", "even"}, list.Automata)

	val, err := s.handleValidate(ctx, mcp.CallToolRequest{}, map[string]interface{}{"name": "even"})
	require.NoError(t, err)
	assert.True(t, val.Complete)
	assert.Empty(t, val.Problems)

	_, err = s.handleDescribe(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.ErrorContains(t, err, "name is required")
}

func TestExamplesMarkdown(t *testing.T) {
	out := examplesMarkdown()
	for _, name := range catalog.Names() {
		assert.Contains(t, out, "`"+name+"`")
	}
}
