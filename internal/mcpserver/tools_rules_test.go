package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslint/engine"
	"github.com/erraggy/oaslint/linter"
)

func TestListRulesTool(t *testing.T) {
	res, output, err := (&toolset{}).handleListRules(context.Background(), &mcp.CallToolRequest{}, listRulesInput{})
	require.NoError(t, err)
	require.Nil(t, res)
	assert.Equal(t, len(linter.DefaultRules()), output.Count)
	assert.Equal(t, "info-completeness", output.Rules[0].ID)
}

func TestListRulesTool_Filter(t *testing.T) {
	ts := &toolset{base: []engine.Option{engine.WithDisabledRules("operation-summary")}}
	_, output, err := ts.handleListRules(context.Background(), &mcp.CallToolRequest{}, listRulesInput{AppliesTo: "operation"})
	require.NoError(t, err)

	ids := make([]string, 0, output.Count)
	for _, r := range output.Rules {
		assert.Equal(t, "operation", r.AppliesTo)
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"operation-id", "operation-responses", "success-response"}, ids)
}

func TestListRulesTool_UnknownCategory(t *testing.T) {
	res, _, err := (&toolset{}).handleListRules(context.Background(), &mcp.CallToolRequest{}, listRulesInput{AppliesTo: "endpoint"})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}
