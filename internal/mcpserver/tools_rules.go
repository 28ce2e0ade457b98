package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaslint/engine"
	"github.com/erraggy/oaslint/walker"
)

type listRulesInput struct {
	AppliesTo string `json:"applies_to,omitempty" jsonschema:"Only list rules for this object category (e.g. operation\\, schema)"`
}

type ruleSummary struct {
	ID          string `json:"id"`
	AppliesTo   string `json:"applies_to"`
	Description string `json:"description"`
}

type listRulesOutput struct {
	Count int           `json:"count"`
	Rules []ruleSummary `json:"rules,omitempty"`
}

func (ts *toolset) handleListRules(_ context.Context, _ *mcp.CallToolRequest, input listRulesInput) (*mcp.CallToolResult, listRulesOutput, error) {
	var category walker.Category
	if input.AppliesTo != "" {
		c, ok := walker.ParseCategory(input.AppliesTo)
		if !ok {
			return errResult(fmt.Errorf("unknown applies_to %q", input.AppliesTo)), listRulesOutput{}, nil
		}
		category = c
	}

	e, err := engine.New(ts.engineOptions()...)
	if err != nil {
		return errResult(err), listRulesOutput{}, nil
	}

	var output listRulesOutput
	for _, d := range e.Rules() {
		if category != "" && d.AppliesTo != category {
			continue
		}
		output.Rules = append(output.Rules, ruleSummary{
			ID:          d.ID,
			AppliesTo:   string(d.AppliesTo),
			Description: d.Description,
		})
	}
	output.Count = len(output.Rules)
	return nil, output, nil
}
