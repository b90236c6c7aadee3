package agents

import (
	"context"
	"fmt"
	"sync"

	"github.com/lexcodex/finsight/framework"
)

// DispatchFunc executes one turn's invocations and returns one tool result
// message per invocation, in invocation order.
type DispatchFunc func(ctx context.Context, registry *framework.Registry, invocations []framework.ToolInvocation) []framework.Message

// Execute runs a single invocation against the registry. Failures never
// propagate: an unknown tool name, a tool error, or a tool panic becomes the
// result text, so the model sees what went wrong and can retry.
func Execute(ctx context.Context, registry *framework.Registry, inv framework.ToolInvocation) framework.Message {
	return framework.ToolResultMessage(inv.ID, executeContent(ctx, registry, inv))
}

func executeContent(ctx context.Context, registry *framework.Registry, inv framework.ToolInvocation) (content string) {
	defer func() {
		if r := recover(); r != nil {
			content = fmt.Sprintf("Error: tool '%s' panicked: %v", inv.Name, r)
		}
	}()
	tool, err := registry.Resolve(inv.Name)
	if err != nil {
		return fmt.Sprintf("Error: Unknown tool '%s'", inv.Name)
	}
	out, err := tool.Execute(ctx, inv.Arguments)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return out
}

// SerialDispatch executes invocations one at a time. Invocations within a
// turn are independent, so no result is visible to a later invocation.
func SerialDispatch(ctx context.Context, registry *framework.Registry, invocations []framework.ToolInvocation) []framework.Message {
	results := make([]framework.Message, 0, len(invocations))
	for _, inv := range invocations {
		results = append(results, Execute(ctx, registry, inv))
	}
	return results
}

// maxConcurrentTools bounds one turn's parallel tool executions.
const maxConcurrentTools = 4

// ConcurrentDispatch executes invocations in parallel, at most
// maxConcurrentTools at a time, and joins before returning. Result order
// still follows invocation order.
func ConcurrentDispatch(ctx context.Context, registry *framework.Registry, invocations []framework.ToolInvocation) []framework.Message {
	results := make([]framework.Message, len(invocations))
	sem := make(chan struct{}, maxConcurrentTools)
	var wg sync.WaitGroup
	for i, inv := range invocations {
		wg.Add(1)
		go func(i int, inv framework.ToolInvocation) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = Execute(ctx, registry, inv)
		}(i, inv)
	}
	wg.Wait()
	return results
}
