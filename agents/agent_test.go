package agents

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/finsight/bank"
	"github.com/lexcodex/finsight/framework"
	"github.com/lexcodex/finsight/tools"
)

// stubModel serves a fixed queue of turns. GenerateStream serves the same
// queue, splitting text into fragments so aggregation gets exercised.
type stubModel struct {
	turns []*framework.ModelTurn
	idx   int
	calls int
	err   error

	lastMessages []framework.Message
}

func (s *stubModel) Generate(ctx context.Context, messages []framework.Message, defs []framework.ToolDefinition) (*framework.ModelTurn, error) {
	s.calls++
	s.lastMessages = messages
	if s.err != nil {
		return nil, s.err
	}
	if s.idx >= len(s.turns) {
		return nil, errors.New("no turn queued")
	}
	turn := s.turns[s.idx]
	s.idx++
	return turn, nil
}

func (s *stubModel) GenerateStream(ctx context.Context, messages []framework.Message, defs []framework.ToolDefinition) (<-chan framework.StreamChunk, error) {
	turn, err := s.Generate(ctx, messages, defs)
	if err != nil {
		return nil, err
	}
	ch := make(chan framework.StreamChunk, len(turn.Invocations)+2)
	if turn.Text != "" {
		half := len(turn.Text) / 2
		if half > 0 {
			ch <- framework.StreamChunk{Text: turn.Text[:half]}
			ch <- framework.StreamChunk{Text: turn.Text[half:]}
		} else {
			ch <- framework.StreamChunk{Text: turn.Text}
		}
	}
	for i := range turn.Invocations {
		inv := turn.Invocations[i]
		ch <- framework.StreamChunk{Invocation: &inv}
	}
	close(ch)
	return ch, nil
}

// toolTurnModel always requests a tool, so the loop can never finish.
type toolTurnModel struct {
	calls int
}

func (m *toolTurnModel) Generate(ctx context.Context, messages []framework.Message, defs []framework.ToolDefinition) (*framework.ModelTurn, error) {
	m.calls++
	return &framework.ModelTurn{
		Invocations: []framework.ToolInvocation{
			{ID: fmt.Sprintf("call-%d", m.calls), Name: "echo", Arguments: map[string]interface{}{"value": "again"}},
		},
	}, nil
}

func (m *toolTurnModel) GenerateStream(ctx context.Context, messages []framework.Message, defs []framework.ToolDefinition) (<-chan framework.StreamChunk, error) {
	turn, _ := m.Generate(ctx, messages, defs)
	ch := make(chan framework.StreamChunk, 1)
	inv := turn.Invocations[0]
	ch <- framework.StreamChunk{Invocation: &inv}
	close(ch)
	return ch, nil
}

type echoTool struct{}

func (echoTool) Name() string        { return "echo" }
func (echoTool) Description() string { return "echoes its value argument" }
func (echoTool) Parameters() []framework.ToolParameter {
	return []framework.ToolParameter{{Name: "value", Type: "string", Description: "value to echo"}}
}
func (echoTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	return fmt.Sprintf("echo: %v", args["value"]), nil
}

func echoRegistry(t *testing.T) *framework.Registry {
	t.Helper()
	registry := framework.NewRegistry()
	require.NoError(t, registry.Register(echoTool{}))
	return registry
}

func quietAgent(model framework.ModelClient, registry *framework.Registry) *Agent {
	agent := New(model, registry)
	agent.Verbose = false
	return agent
}

func TestRunImmediateAnswer(t *testing.T) {
	model := &stubModel{turns: []*framework.ModelTurn{{Text: "42"}}}
	agent := quietAgent(model, echoRegistry(t))

	result, err := agent.Run(context.Background(), "what is the answer?")
	require.NoError(t, err)
	assert.Equal(t, "42", result.Answer)
	assert.Equal(t, 1, result.Iterations)
	assert.False(t, result.Exhausted)
	assert.Equal(t, 1, model.calls)
}

func TestRunSeedsSingleUserMessage(t *testing.T) {
	model := &stubModel{turns: []*framework.ModelTurn{{Text: "done"}}}
	agent := quietAgent(model, echoRegistry(t))
	agent.Persona = BasicPrompt

	_, err := agent.Run(context.Background(), "how much did CUST0001 spend?")
	require.NoError(t, err)
	require.Len(t, model.lastMessages, 1)
	assert.Equal(t, framework.RoleUser, model.lastMessages[0].Role)
	assert.Equal(t, BasicPrompt+"\n\nQuestion: how much did CUST0001 spend?", model.lastMessages[0].Content)
}

// TestRunToolRoundTrip checks numeric fidelity end to end: the dollar figure
// produced by the real spending tool must survive into the final answer
// untouched by the loop.
func TestRunToolRoundTrip(t *testing.T) {
	store := bank.NewMemoryStore([]bank.Transaction{
		{CustomerID: "CUST0001", Indicator: bank.Debit, Date: "2025-01-05", Amount: 400, Mode: "UPI", Category: "Groceries"},
		{CustomerID: "CUST0001", Indicator: bank.Debit, Date: "2025-01-06", Amount: 500, Mode: "Card", Category: "Rent"},
	})
	model := &stubModel{turns: []*framework.ModelTurn{
		{Invocations: []framework.ToolInvocation{
			{ID: "call-1", Name: "get_total_spending", Arguments: map[string]interface{}{"customer_id": "CUST0001"}},
		}},
		{Text: "CUST0001 spent a total of $900.00."},
	}}
	agent := quietAgent(model, tools.BuildRegistry(store))

	result, err := agent.Run(context.Background(), "how much did CUST0001 spend?")
	require.NoError(t, err)
	assert.Contains(t, result.Answer, "$900.00")
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, 2, model.calls)

	// transcript: seed, assistant w/ invocation, tool result, final answer
	require.Len(t, result.Transcript, 4)
	assert.Equal(t, framework.RoleAssistant, result.Transcript[1].Role)
	assert.Equal(t, framework.RoleTool, result.Transcript[2].Role)
	assert.Equal(t, "call-1", result.Transcript[2].InvocationID)
	assert.Equal(t, "Customer CUST0001 total spending: $900.00", result.Transcript[2].Content)
}

// TestRunToolResultsMatchInvocations pins the batch contract: one tool
// result per invocation, contiguous, in invocation order.
func TestRunToolResultsMatchInvocations(t *testing.T) {
	model := &stubModel{turns: []*framework.ModelTurn{
		{Invocations: []framework.ToolInvocation{
			{ID: "call-a", Name: "echo", Arguments: map[string]interface{}{"value": "first"}},
			{ID: "call-b", Name: "echo", Arguments: map[string]interface{}{"value": "second"}},
		}},
		{Text: "both ran"},
	}}
	agent := quietAgent(model, echoRegistry(t))

	result, err := agent.Run(context.Background(), "run both")
	require.NoError(t, err)
	require.Len(t, result.Transcript, 5)
	assert.Len(t, result.Transcript[1].Invocations, 2)
	assert.Equal(t, "call-a", result.Transcript[2].InvocationID)
	assert.Equal(t, "echo: first", result.Transcript[2].Content)
	assert.Equal(t, "call-b", result.Transcript[3].InvocationID)
	assert.Equal(t, "echo: second", result.Transcript[3].Content)
}

func TestRunUnknownToolRecovered(t *testing.T) {
	model := &stubModel{turns: []*framework.ModelTurn{
		{Invocations: []framework.ToolInvocation{
			{ID: "call-1", Name: "get_stock_price", Arguments: map[string]interface{}{}},
		}},
		{Text: "I don't have that tool."},
	}}
	agent := quietAgent(model, echoRegistry(t))

	result, err := agent.Run(context.Background(), "price of ACME?")
	require.NoError(t, err, "an unknown tool must not abort the run")
	assert.Equal(t, "Error: Unknown tool 'get_stock_price'", result.Transcript[2].Content)
	assert.Equal(t, "I don't have that tool.", result.Answer)
}

// TestRunExhausted: a model that never stops calling tools gets exactly
// MaxIterations calls, then the run ends with the sentinel answer.
func TestRunExhausted(t *testing.T) {
	model := &toolTurnModel{}
	agent := quietAgent(model, echoRegistry(t))
	agent.MaxIterations = 3

	result, err := agent.Run(context.Background(), "never ends")
	require.NoError(t, err)
	assert.True(t, result.Exhausted)
	assert.Equal(t, "Max iterations reached without final answer", result.Answer)
	assert.Equal(t, 3, result.Iterations)
	assert.Equal(t, 3, model.calls)
}

func TestRunModelError(t *testing.T) {
	model := &stubModel{err: fmt.Errorf("%w: connection refused", framework.ErrModelUnavailable)}
	agent := quietAgent(model, echoRegistry(t))

	result, err := agent.Run(context.Background(), "anything")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, framework.ErrModelUnavailable)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := &toolTurnModel{}
	agent := quietAgent(model, echoRegistry(t))

	_, err := agent.Run(ctx, "anything")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunZeroMaxIterationsUsesDefault(t *testing.T) {
	model := &stubModel{turns: []*framework.ModelTurn{{Text: "ok"}}}
	agent := quietAgent(model, echoRegistry(t))
	agent.MaxIterations = 0

	result, err := agent.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Answer)
}

func TestRunInjectedTracer(t *testing.T) {
	model := &stubModel{turns: []*framework.ModelTurn{
		{Invocations: []framework.ToolInvocation{
			{ID: "call-1", Name: "echo", Arguments: map[string]interface{}{"value": "hi"}},
		}},
		{Text: "done"},
	}}
	agent := New(model, echoRegistry(t))
	var lines []string
	agent.Trace = func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	_, err := agent.Run(context.Background(), "q")
	require.NoError(t, err)
	joined := fmt.Sprint(lines)
	assert.Contains(t, joined, "iteration 1/10")
	assert.Contains(t, joined, "iteration 2/10")
	assert.Contains(t, joined, "tool echo")
	assert.Contains(t, joined, "final answer after 2 iteration(s)")

	// The tracer goes quiet with Verbose off.
	lines = nil
	model.idx = 0
	agent.Verbose = false
	_, err = agent.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

// TestRunStreamMatchesRun is the delivery-mode equivalence property: the
// streamed fragments of the final turn joined together, and the terminal
// result, must match what the blocking path produces.
func TestRunStreamMatchesRun(t *testing.T) {
	makeModel := func() *stubModel {
		return &stubModel{turns: []*framework.ModelTurn{
			{Invocations: []framework.ToolInvocation{
				{ID: "call-1", Name: "echo", Arguments: map[string]interface{}{"value": "hi"}},
			}},
			{Text: "the echo said hi"},
		}}
	}

	blockingAgent := quietAgent(makeModel(), echoRegistry(t))
	blocking, err := blockingAgent.Run(context.Background(), "echo hi")
	require.NoError(t, err)

	streamAgent := quietAgent(makeModel(), echoRegistry(t))
	var fragments string
	var toolCalls, toolResults int
	var final *Result
	for event := range streamAgent.RunStream(context.Background(), "echo hi") {
		require.NoError(t, event.Err)
		switch event.Kind {
		case EventText:
			fragments += event.Text
		case EventToolCall:
			toolCalls++
			assert.Equal(t, "echo", event.Invocation.Name)
		case EventToolResult:
			toolResults++
			assert.Equal(t, "echo: hi", event.Text)
		case EventAnswer:
			final = event.Result
		}
	}

	require.NotNil(t, final)
	assert.Equal(t, blocking.Answer, final.Answer)
	assert.Equal(t, blocking.Iterations, final.Iterations)
	assert.Equal(t, blocking.Answer, fragments)
	assert.Equal(t, 1, toolCalls)
	assert.Equal(t, 1, toolResults)
}

func TestRunStreamExhausted(t *testing.T) {
	agent := quietAgent(&toolTurnModel{}, echoRegistry(t))
	agent.MaxIterations = 2

	var final *Result
	for event := range agent.RunStream(context.Background(), "never ends") {
		require.NoError(t, event.Err)
		if event.Kind == EventAnswer {
			final = event.Result
		}
	}
	require.NotNil(t, final)
	assert.True(t, final.Exhausted)
	assert.Equal(t, MaxIterationsAnswer, final.Answer)
}

func TestRunStreamModelError(t *testing.T) {
	model := &stubModel{err: errors.New("boom")}
	agent := quietAgent(model, echoRegistry(t))

	var sawErr error
	for event := range agent.RunStream(context.Background(), "anything") {
		if event.Err != nil {
			sawErr = event.Err
		}
	}
	require.Error(t, sawErr)
	assert.Contains(t, sawErr.Error(), "model call 1")
}

func TestSeed(t *testing.T) {
	assert.Equal(t, "just this", Seed("", "just this"))
	assert.Equal(t, BasicPrompt+"\n\nQuestion: hi", Seed(BasicPrompt, "hi"))
}

func TestPersonaPrompt(t *testing.T) {
	assert.Equal(t, BasicPrompt, PersonaPrompt("basic"))
	assert.Equal(t, DetailedPrompt, PersonaPrompt("detailed"))
	assert.Equal(t, AnalystPrompt, PersonaPrompt("analyst"))
	assert.Equal(t, AnalystPrompt, PersonaPrompt("unknown"))
}
