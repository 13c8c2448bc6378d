package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hubcard/hubcard/internal/cards"
	"github.com/hubcard/hubcard/internal/frontmatter"
	"github.com/hubcard/hubcard/internal/hub"
)

// ListModelsInput is the input for the list_models tool.
type ListModelsInput struct {
	Search      string   `json:"search,omitempty" jsonschema:"free-text search over model names and descriptions"`
	Library     []string `json:"library,omitempty" jsonschema:"filter by libraries, e.g. pytorch or transformers"`
	Tags        []string `json:"tags,omitempty" jsonschema:"filter by repository tags"`
	PipelineTag string   `json:"pipeline_tag,omitempty" jsonschema:"filter by pipeline task, e.g. text-generation"`
	Sort        string   `json:"sort,omitempty" jsonschema:"sort key: trending_score, last_modified, created_at, downloads, or likes"`
	Direction   int      `json:"direction,omitempty" jsonschema:"sort direction: -1 descending (default), 1 ascending"`
	Limit       int      `json:"limit,omitempty" jsonschema:"maximum number of results (default 20)"`
}

// ModelIDInput is the input for tools addressing a single model.
type ModelIDInput struct {
	ModelID string `json:"model_id" jsonschema:"model repository id, e.g. org/model-name"`
}

// GetModelCardInput is the input for the get_model_card tool.
type GetModelCardInput struct {
	ModelID  string `json:"model_id" jsonschema:"model repository id, e.g. org/model-name"`
	Revision string `json:"revision,omitempty" jsonschema:"branch, tag, or commit (default main)"`
	Refresh  bool   `json:"refresh,omitempty" jsonschema:"bypass the local cache and refetch from the Hub"`
}

// UpdateModelCardInput is the input for the update_model_card tool.
type UpdateModelCardInput struct {
	ModelID     string `json:"model_id" jsonschema:"model repository id, e.g. org/model-name"`
	Revision    string `json:"revision,omitempty" jsonschema:"branch to update (default main)"`
	PipelineTag string `json:"pipeline_tag,omitempty" jsonschema:"new pipeline_tag value"`
	LibraryName string `json:"library_name,omitempty" jsonschema:"new library_name value"`
	Summary     string `json:"summary,omitempty" jsonschema:"commit message for the proposal"`
	CreatePR    bool   `json:"create_pr,omitempty" jsonschema:"open a pull request instead of committing directly"`
	DryRun      bool   `json:"dry_run,omitempty" jsonschema:"preview the patched card without writing to the Hub"`
}

// registerTools registers all Hub tools on the MCP server.
func (s *Server) registerTools() error {
	listSchema, err := jsonschema.For[ListModelsInput](nil)
	if err != nil {
		return fmt.Errorf("schema for list_models: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_models",
		Description: "Search models on the Hugging Face Hub with filters for library, task, tags, and sort order.",
		InputSchema: listSchema,
	}, s.ListModels)

	infoSchema, err := jsonschema.For[ModelIDInput](nil)
	if err != nil {
		return fmt.Errorf("schema for get_model_info: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_model_info",
		Description: "Get detailed metadata for one model: downloads, likes, tags, pipeline, license, and files.",
		InputSchema: infoSchema,
	}, s.GetModelInfo)

	cardSchema, err := jsonschema.For[GetModelCardInput](nil)
	if err != nil {
		return fmt.Errorf("schema for get_model_card: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_model_card",
		Description: "Fetch a model's README card as markdown, including its YAML metadata header.",
		InputSchema: cardSchema,
	}, s.GetModelCard)

	updateSchema, err := jsonschema.For[UpdateModelCardInput](nil)
	if err != nil {
		return fmt.Errorf("schema for update_model_card: %w", err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_model_card",
		Description: "Propose a metadata update to a model card's YAML header (pipeline_tag and/or library_name). Everything outside the header is preserved byte for byte.",
		InputSchema: updateSchema,
	}, s.UpdateModelCard)

	return nil
}

// ListModels handles the list_models tool call.
func (s *Server) ListModels(ctx context.Context, req *mcp.CallToolRequest, input ListModelsInput) (*mcp.CallToolResult, any, error) {
	models, err := s.hub.ListModels(ctx, hub.ListModelsOptions{
		Search:      input.Search,
		Library:     input.Library,
		Tags:        input.Tags,
		PipelineTag: input.PipelineTag,
		Sort:        input.Sort,
		Direction:   input.Direction,
		Limit:       input.Limit,
	})
	if err != nil {
		return errorResult(err), nil, nil
	}

	records := make([]map[string]any, 0, len(models))
	for _, model := range models {
		records = append(records, model.Record())
	}
	s.log.Debug("list_models", "count", len(records))
	return jsonResult(records)
}

// GetModelInfo handles the get_model_info tool call.
func (s *Server) GetModelInfo(ctx context.Context, req *mcp.CallToolRequest, input ModelIDInput) (*mcp.CallToolResult, any, error) {
	if input.ModelID == "" {
		return errorResult(errors.New("model_id is required")), nil, nil
	}

	model, err := s.hub.ModelInfo(ctx, input.ModelID)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(model.Record())
}

// GetModelCard handles the get_model_card tool call.
func (s *Server) GetModelCard(ctx context.Context, req *mcp.CallToolRequest, input GetModelCardInput) (*mcp.CallToolResult, any, error) {
	if input.ModelID == "" {
		return errorResult(errors.New("model_id is required")), nil, nil
	}

	content, err := s.cards.Card(ctx, input.ModelID, cards.CardOptions{
		Revision: input.Revision,
		Refresh:  input.Refresh,
	})
	if err != nil {
		return errorResult(err), nil, nil
	}
	return textResult(content), nil, nil
}

// UpdateModelCard handles the update_model_card tool call.
func (s *Server) UpdateModelCard(ctx context.Context, req *mcp.CallToolRequest, input UpdateModelCardInput) (*mcp.CallToolResult, any, error) {
	if input.ModelID == "" {
		return errorResult(errors.New("model_id is required")), nil, nil
	}

	var edits []frontmatter.Edit
	if input.PipelineTag != "" {
		edits = append(edits, frontmatter.Edit{Field: "pipeline_tag", Value: input.PipelineTag})
	}
	if input.LibraryName != "" {
		edits = append(edits, frontmatter.Edit{Field: "library_name", Value: input.LibraryName})
	}

	result, err := s.cards.UpdateMetadata(ctx, cards.UpdateRequest{
		ModelID:  input.ModelID,
		Revision: input.Revision,
		Edits:    edits,
		Summary:  input.Summary,
		CreatePR: input.CreatePR,
		DryRun:   input.DryRun,
	})
	if err != nil {
		return errorResult(err), nil, nil
	}

	if input.DryRun {
		return jsonResult(map[string]any{
			"model_id":    result.ModelID,
			"dry_run":     true,
			"new_content": result.NewContent,
		})
	}
	return jsonResult(map[string]any{
		"model_id":   result.ModelID,
		"change_url": result.ChangeURL,
	})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult converts a failure into a tool error result so the caller
// sees the message instead of a protocol error.
func errorResult(err error) *mcp.CallToolResult {
	msg := err.Error()
	switch {
	case errors.Is(err, hub.ErrNotFound):
		msg = msg + " (check the model id spelling and casing)"
	case errors.Is(err, hub.ErrUnauthorized):
		msg = msg + " (set HF_TOKEN or configure a token)"
	case errors.Is(err, frontmatter.ErrUnclosedHeader):
		msg = msg + " (the card's metadata block has no closing delimiter; fix the card on the Hub first)"
	case errors.Is(err, frontmatter.ErrNoEdits):
		msg = "no fields to update: provide pipeline_tag and/or library_name"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return textResult(strings.TrimSpace(string(data))), nil, nil
}
