package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/lexcodex/finsight/framework"
)

// OllamaClient implements framework.ModelClient against a local Ollama
// server's /api/chat endpoint, including native tool calling and NDJSON
// streaming.
type OllamaClient struct {
	Endpoint    string
	Model       string
	Temperature float64
	MaxTokens   int
	Debug       bool

	client *http.Client
}

type toolFunction struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

type toolDef struct {
	Type     string       `json:"type"`
	Function toolFunction `json:"function"`
}

// ollamaToolCall tolerates both the nested function form Ollama emits and the
// flat name/arguments form some proxies produce.
type ollamaToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	Function  struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	} `json:"function"`
}

type ollamaMessage struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	ToolCalls []ollamaToolCall `json:"tool_calls"`
}

type chatResponse struct {
	Message         *ollamaMessage `json:"message"`
	Done            bool           `json:"done"`
	DoneReason      string         `json:"done_reason"`
	EvalCount       int            `json:"eval_count"`
	PromptEvalCount int            `json:"prompt_eval_count"`
	Error           string         `json:"error"`
}

// NewOllamaClient builds a client for the given endpoint and model. An empty
// endpoint falls back to the local default; an empty model falls back to
// llama3.2.
func NewOllamaClient(endpoint, model string) *OllamaClient {
	if endpoint == "" {
		endpoint = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	return &OllamaClient{
		Endpoint: endpoint,
		Model:    model,
		client: &http.Client{
			Timeout: 3 * time.Minute,
		},
	}
}

// SetDebugLogging enables or disables request/response logging.
func (c *OllamaClient) SetDebugLogging(enabled bool) {
	c.Debug = enabled
}

// Generate performs one blocking chat completion.
func (c *OllamaClient) Generate(ctx context.Context, messages []framework.Message, tools []framework.ToolDefinition) (*framework.ModelTurn, error) {
	body, err := c.doRequest(ctx, c.payload(messages, tools, false))
	if err != nil {
		return nil, err
	}
	defer body.Close()
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", framework.ErrModelUnavailable, err)
	}
	c.logResponse(raw)

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", framework.ErrModelUnavailable, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: ollama error: %s", framework.ErrModelUnavailable, resp.Error)
	}
	turn := &framework.ModelTurn{}
	if resp.Message != nil {
		turn.Text = resp.Message.Content
		turn.Invocations = parseToolCalls(resp.Message.ToolCalls)
	}
	if c.Debug && resp.EvalCount > 0 {
		c.logf("tokens: prompt=%d completion=%d", resp.PromptEvalCount, resp.EvalCount)
	}
	return turn, nil
}

// GenerateStream performs one chat completion with stream=true, emitting text
// fragments as they arrive and tool invocations whole — Ollama delivers a
// tool call as a single NDJSON line, never split across lines.
func (c *OllamaClient) GenerateStream(ctx context.Context, messages []framework.Message, tools []framework.ToolDefinition) (<-chan framework.StreamChunk, error) {
	body, err := c.doRequest(ctx, c.payload(messages, tools, true))
	if err != nil {
		return nil, err
	}

	ch := make(chan framework.StreamChunk)
	go func() {
		defer body.Close()
		defer close(ch)
		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}
			var resp chatResponse
			if err := json.Unmarshal(line, &resp); err != nil {
				ch <- framework.StreamChunk{Err: fmt.Errorf("%w: decode stream: %v", framework.ErrModelUnavailable, err)}
				return
			}
			if resp.Error != "" {
				ch <- framework.StreamChunk{Err: fmt.Errorf("%w: ollama error: %s", framework.ErrModelUnavailable, resp.Error)}
				return
			}
			if resp.Message != nil {
				if resp.Message.Content != "" {
					ch <- framework.StreamChunk{Text: resp.Message.Content}
				}
				for _, inv := range parseToolCalls(resp.Message.ToolCalls) {
					inv := inv
					ch <- framework.StreamChunk{Invocation: &inv}
				}
			}
			if resp.Done {
				if c.Debug && resp.EvalCount > 0 {
					c.logf("tokens: prompt=%d completion=%d", resp.PromptEvalCount, resp.EvalCount)
				}
				return
			}
		}
		if err := scanner.Err(); err != nil {
			ch <- framework.StreamChunk{Err: fmt.Errorf("%w: read stream: %v", framework.ErrModelUnavailable, err)}
		}
	}()
	return ch, nil
}

func (c *OllamaClient) payload(messages []framework.Message, tools []framework.ToolDefinition, stream bool) map[string]interface{} {
	payload := map[string]interface{}{
		"model":    c.Model,
		"messages": convertMessages(messages),
		"stream":   stream,
	}
	if len(tools) > 0 {
		payload["tools"] = convertTools(tools)
	}
	options := map[string]interface{}{
		"temperature": c.Temperature,
	}
	if c.MaxTokens > 0 {
		options["num_predict"] = c.MaxTokens
	}
	payload["options"] = options
	return payload
}

func (c *OllamaClient) doRequest(ctx context.Context, payload map[string]interface{}) (io.ReadCloser, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	c.logPayload(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", framework.ErrModelUnavailable, err)
	}
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		detail := strings.TrimSpace(string(msg))
		if detail != "" {
			return nil, fmt.Errorf("%w: ollama error: %s: %s", framework.ErrModelUnavailable, resp.Status, detail)
		}
		return nil, fmt.Errorf("%w: ollama error: %s", framework.ErrModelUnavailable, resp.Status)
	}
	return resp.Body, nil
}

func (c *OllamaClient) httpClient() *http.Client {
	if c.client != nil {
		return c.client
	}
	c.client = &http.Client{Timeout: 3 * time.Minute}
	return c.client
}

func convertMessages(messages []framework.Message) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(messages))
	for _, msg := range messages {
		m := map[string]interface{}{
			"role":    msg.Role,
			"content": msg.Content,
		}
		if msg.InvocationID != "" {
			m["tool_call_id"] = msg.InvocationID
		}
		if len(msg.Invocations) > 0 {
			calls := make([]map[string]interface{}, 0, len(msg.Invocations))
			for _, inv := range msg.Invocations {
				fn := map[string]interface{}{
					"name": inv.Name,
				}
				if len(inv.Arguments) > 0 {
					fn["arguments"] = inv.Arguments
				} else {
					fn["arguments"] = map[string]interface{}{}
				}
				entry := map[string]interface{}{
					"type":     "function",
					"function": fn,
				}
				if inv.ID != "" {
					entry["id"] = inv.ID
				}
				calls = append(calls, entry)
			}
			m["tool_calls"] = calls
		}
		out = append(out, m)
	}
	return out
}

func convertTools(tools []framework.ToolDefinition) []toolDef {
	res := make([]toolDef, 0, len(tools))
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
		res = append(res, toolDef{
			Type: "function",
			Function: toolFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  parameters,
			},
		})
	}
	return res
}

func parseToolCalls(calls []ollamaToolCall) []framework.ToolInvocation {
	if len(calls) == 0 {
		return nil
	}
	results := make([]framework.ToolInvocation, 0, len(calls))
	for _, call := range calls {
		name := call.Name
		args := call.Arguments
		if call.Function.Name != "" {
			name = call.Function.Name
		}
		if len(call.Function.Arguments) > 0 {
			args = call.Function.Arguments
		}
		results = append(results, framework.ToolInvocation{
			ID:        ensureInvocationID(call.ID),
			Name:      name,
			Arguments: parseArguments(args),
		})
	}
	return results
}

func (c *OllamaClient) logPayload(payload []byte) {
	if !c.Debug {
		return
	}
	c.logf("request /api/chat payload: %s", truncate(string(payload), 2048))
}

func (c *OllamaClient) logResponse(resp []byte) {
	if !c.Debug {
		return
	}
	c.logf("response /api/chat payload: %s", truncate(string(resp), 2048))
}

func (c *OllamaClient) logf(format string, args ...interface{}) {
	log.Printf("[ollama] "+format, args...)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
