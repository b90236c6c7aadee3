package agents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/finsight/framework"
)

type faultyTool struct{}

func (faultyTool) Name() string                          { return "faulty" }
func (faultyTool) Description() string                   { return "always fails" }
func (faultyTool) Parameters() []framework.ToolParameter { return nil }
func (faultyTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	return "", errors.New("customer_id is required")
}

type panickyTool struct{}

func (panickyTool) Name() string                          { return "panicky" }
func (panickyTool) Description() string                   { return "always panics" }
func (panickyTool) Parameters() []framework.ToolParameter { return nil }
func (panickyTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	panic("index out of range")
}

type slowTool struct {
	name  string
	delay time.Duration
	reply string
}

func (t slowTool) Name() string                          { return t.name }
func (t slowTool) Description() string                   { return "sleeps then answers" }
func (t slowTool) Parameters() []framework.ToolParameter { return nil }
func (t slowTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	time.Sleep(t.delay)
	return t.reply, nil
}

func TestExecuteUnknownTool(t *testing.T) {
	registry := framework.NewRegistry()
	inv := framework.ToolInvocation{ID: "call-1", Name: "missing_tool"}

	msg := Execute(context.Background(), registry, inv)
	assert.Equal(t, framework.RoleTool, msg.Role)
	assert.Equal(t, "call-1", msg.InvocationID)
	assert.Equal(t, "Error: Unknown tool 'missing_tool'", msg.Content)
}

func TestExecuteToolErrorRecovered(t *testing.T) {
	registry := framework.NewRegistry()
	require.NoError(t, registry.Register(faultyTool{}))

	msg := Execute(context.Background(), registry, framework.ToolInvocation{ID: "call-1", Name: "faulty"})
	assert.Equal(t, "Error: customer_id is required", msg.Content)
}

func TestExecuteToolPanicRecovered(t *testing.T) {
	registry := framework.NewRegistry()
	require.NoError(t, registry.Register(panickyTool{}))

	msg := Execute(context.Background(), registry, framework.ToolInvocation{ID: "call-1", Name: "panicky"})
	assert.Contains(t, msg.Content, "Error: tool 'panicky' panicked")
	assert.Contains(t, msg.Content, "index out of range")
}

func TestSerialDispatchOrder(t *testing.T) {
	registry := echoRegistry(t)
	invocations := []framework.ToolInvocation{
		{ID: "call-a", Name: "echo", Arguments: map[string]interface{}{"value": "one"}},
		{ID: "call-b", Name: "echo", Arguments: map[string]interface{}{"value": "two"}},
	}

	results := SerialDispatch(context.Background(), registry, invocations)
	require.Len(t, results, 2)
	assert.Equal(t, "call-a", results[0].InvocationID)
	assert.Equal(t, "echo: one", results[0].Content)
	assert.Equal(t, "call-b", results[1].InvocationID)
	assert.Equal(t, "echo: two", results[1].Content)
}

// TestConcurrentDispatchPreservesOrder makes the slow tool finish last and
// still requires its result first.
func TestConcurrentDispatchPreservesOrder(t *testing.T) {
	registry := framework.NewRegistry()
	require.NoError(t, registry.Register(slowTool{name: "slow", delay: 50 * time.Millisecond, reply: "slow done"}))
	require.NoError(t, registry.Register(slowTool{name: "fast", reply: "fast done"}))

	invocations := []framework.ToolInvocation{
		{ID: "call-a", Name: "slow"},
		{ID: "call-b", Name: "fast"},
	}

	results := ConcurrentDispatch(context.Background(), registry, invocations)
	require.Len(t, results, 2)
	assert.Equal(t, "slow done", results[0].Content)
	assert.Equal(t, "fast done", results[1].Content)
}

func TestDispatchEmptyBatch(t *testing.T) {
	assert.Empty(t, SerialDispatch(context.Background(), framework.NewRegistry(), nil))
	assert.Empty(t, ConcurrentDispatch(context.Background(), framework.NewRegistry(), nil))
}
