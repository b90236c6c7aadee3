package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/voocel/litellm"

	"github.com/lexcodex/finsight/framework"
)

// LiteLLMClient implements framework.ModelClient for OpenAI-compatible
// backends through the litellm client library. Point BaseURL at any
// chat-completions server; an Ollama instance works via its /v1 compatibility
// surface.
type LiteLLMClient struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Debug       bool

	client *litellm.Client
}

// NewLiteLLMClient builds a client for the given OpenAI-compatible backend.
func NewLiteLLMClient(apiKey, baseURL, model string, temperature float64, maxTokens int) *LiteLLMClient {
	var client *litellm.Client
	if baseURL != "" {
		client = litellm.New(
			litellm.WithOpenAI(apiKey, baseURL),
			litellm.WithDefaults(maxTokens, temperature),
		)
	} else {
		client = litellm.New(
			litellm.WithOpenAI(apiKey),
			litellm.WithDefaults(maxTokens, temperature),
		)
	}
	return &LiteLLMClient{
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		client:      client,
	}
}

// Generate performs one blocking chat completion.
func (c *LiteLLMClient) Generate(ctx context.Context, messages []framework.Message, tools []framework.ToolDefinition) (*framework.ModelTurn, error) {
	req := &litellm.Request{
		Model:    c.Model,
		Messages: toLiteLLMMessages(messages),
		Tools:    toLiteLLMTools(tools),
	}
	req.Temperature = litellm.Float64Ptr(c.Temperature)
	if c.MaxTokens > 0 {
		req.MaxTokens = litellm.IntPtr(c.MaxTokens)
	}

	resp, err := c.client.Chat(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", framework.ErrModelUnavailable, err)
	}
	turn := &framework.ModelTurn{Text: resp.Content}
	for _, tc := range resp.ToolCalls {
		turn.Invocations = append(turn.Invocations, framework.ToolInvocation{
			ID:        ensureInvocationID(tc.ID),
			Name:      tc.Function.Name,
			Arguments: parseArguments(json.RawMessage(tc.Function.Arguments)),
		})
	}
	if c.Debug {
		log.Printf("[litellm] tokens: prompt=%d completion=%d", resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
	}
	return turn, nil
}

// GenerateStream satisfies the incremental contract by adapting the blocking
// call: the whole text lands as one fragment, then each invocation follows.
// Aggregation therefore trivially matches Generate. True token streaming is
// the Ollama client's job; this backend exists for compatibility coverage.
func (c *LiteLLMClient) GenerateStream(ctx context.Context, messages []framework.Message, tools []framework.ToolDefinition) (<-chan framework.StreamChunk, error) {
	ch := make(chan framework.StreamChunk, 1)
	go func() {
		defer close(ch)
		turn, err := c.Generate(ctx, messages, tools)
		if err != nil {
			ch <- framework.StreamChunk{Err: err}
			return
		}
		if turn.Text != "" {
			ch <- framework.StreamChunk{Text: turn.Text}
		}
		for _, inv := range turn.Invocations {
			inv := inv
			ch <- framework.StreamChunk{Invocation: &inv}
		}
	}()
	return ch, nil
}

func toLiteLLMMessages(messages []framework.Message) []litellm.Message {
	out := make([]litellm.Message, 0, len(messages))
	for _, msg := range messages {
		m := litellm.Message{
			Role:    msg.Role,
			Content: msg.Content,
		}
		if msg.InvocationID != "" {
			m.ToolCallID = msg.InvocationID
		}
		for _, inv := range msg.Invocations {
			args, _ := json.Marshal(inv.Arguments)
			m.ToolCalls = append(m.ToolCalls, litellm.ToolCall{
				ID:   inv.ID,
				Type: "function",
				Function: litellm.FunctionCall{
					Name:      inv.Name,
					Arguments: string(args),
				},
			})
		}
		out = append(out, m)
	}
	return out
}

func toLiteLLMTools(tools []framework.ToolDefinition) []litellm.Tool {
	if len(tools) == 0 {
		return nil
	}
	out := make([]litellm.Tool, 0, len(tools))
	for _, tool := range tools {
		props := make(map[string]interface{})
		var required []string
		for _, param := range tool.Parameters {
			prop := map[string]interface{}{
				"type":        param.Type,
				"description": param.Description,
			}
			if param.Default != nil {
				prop["default"] = param.Default
			}
			props[param.Name] = prop
			if param.Required {
				required = append(required, param.Name)
			}
		}
		parameters := map[string]interface{}{
			"type":       "object",
			"properties": props,
		}
		if len(required) > 0 {
			parameters["required"] = required
		}
		out = append(out, litellm.Tool{
			Type: "function",
			Function: litellm.FunctionDef{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  parameters,
			},
		})
	}
	return out
}
