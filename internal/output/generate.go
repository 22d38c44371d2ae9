package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"workspace-query/internal/model"
	"workspace-query/pkg/llmprovider"
)

var errNoBlocks = errors.New("completion has no blocks")

type completion struct {
	Blocks            []model.Block `json:"blocks"`
	Suggestions       []string      `json:"suggestions"`
	FollowUpQuestions []string      `json:"followUpQuestions"`
}

// Generate asks the completion service for blocks and falls back to Fallback when that fails.
func (g *LLMGenerator) Generate(ctx context.Context, query string, resp model.QueryResponse, input GenerateInput) model.StructuredResponse {
	meta := metadataFor(resp, input)

	if g.llm == nil {
		return g.OptimizeForRendering(Fallback(resp, meta))
	}

	out, err := g.complete(ctx, query, resp, input)
	if err != nil {
		g.l.Warnf(ctx, "%s: falling back to deterministic rendering: %v", LogPrefixGenerate, err)
		return g.OptimizeForRendering(Fallback(resp, meta))
	}

	meta.Suggestions = nonEmpty(out.Suggestions, meta.Suggestions)
	meta.FollowUpQuestions = out.FollowUpQuestions
	return g.OptimizeForRendering(model.StructuredResponse{Blocks: out.Blocks, Metadata: meta})
}

func (g *LLMGenerator) complete(ctx context.Context, query string, resp model.QueryResponse, input GenerateInput) (completion, error) {
	payload, err := json.Marshal(resp.Data)
	if err != nil {
		return completion{}, fmt.Errorf("marshal payload: %w", err)
	}

	res, err := g.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: PromptGeneratorSystem,
		Messages: []llmprovider.Message{{
			Role: llmprovider.RoleUser,
			Content: fmt.Sprintf(PromptGeneratorUser,
				query,
				input.Classification.Intent,
				input.Classification.SuggestedFormat,
				input.Route.Primary,
				resp.Type,
				truncate(string(payload), MaxPayloadPromptChars),
			),
		}},
		Temperature:    GeneratorTemperature,
		MaxTokens:      GeneratorMaxTokens,
		ResponseFormat: llmprovider.FormatJSONObject,
	})
	if err != nil {
		return completion{}, err
	}

	var out completion
	if err := json.Unmarshal([]byte(stripCodeFence(res.Text())), &out); err != nil {
		return completion{}, fmt.Errorf("parse completion: %w", err)
	}
	if len(out.Blocks) == 0 {
		return completion{}, errNoBlocks
	}
	for i, b := range out.Blocks {
		if err := b.Validate(); err != nil {
			return completion{}, fmt.Errorf("block %d: %w", i, err)
		}
	}
	return out, nil
}

// metadataFor derives the response metadata shared by generated and fallback renderings.
func metadataFor(resp model.QueryResponse, input GenerateInput) model.ResponseMetadata {
	confidence := input.Route.Confidence
	if resp.Metadata.Confidence > 0 && resp.Metadata.Confidence < confidence {
		confidence = resp.Metadata.Confidence
	}

	meta := model.ResponseMetadata{
		Confidence:  confidence,
		DataSources: dataSources(resp, input),
	}
	if fb := input.Route.Parameters.Fallback; fb != nil {
		meta.Suggestions = fb.Suggestions
	}
	return meta
}

func dataSources(resp model.QueryResponse, input GenerateInput) []string {
	var ids []string
	p := input.Route.Parameters
	switch {
	case p.Database != nil:
		ids = p.Database.DatabaseIDs
	case p.Analytics != nil:
		ids = p.Analytics.DatabaseIDs
	case p.Hybrid != nil:
		ids = p.Hybrid.DatabaseIDs
	}

	names := make(map[string]string, len(input.Context.Databases))
	for _, db := range input.Context.Databases {
		names[db.ID] = db.Name
	}

	seen := make(map[string]bool)
	sources := []string{}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			sources = append(sources, s)
		}
	}
	add(resp.Metadata.Source)
	for _, id := range ids {
		if name, ok := names[id]; ok {
			add(name)
		} else {
			add(id)
		}
	}
	if c := resp.Data.Content; c != nil {
		for _, p := range c.Passages {
			add(p.Title)
		}
	}
	return sources
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func nonEmpty(a, b []string) []string {
	if len(a) > 0 {
		return a
	}
	return b
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + TruncationSuffix
}
