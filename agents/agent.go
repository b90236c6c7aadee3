// Package agents runs the Reason+Act loop: the model is called with the
// conversation and the tool catalog, requested tools are executed, their
// results are appended, and the cycle repeats until the model answers in
// plain text or the iteration budget runs out.
package agents

import (
	"context"
	"fmt"
	"log"

	"github.com/lexcodex/finsight/framework"
)

// DefaultMaxIterations bounds the loop when no budget is configured.
const DefaultMaxIterations = 10

// MaxIterationsAnswer is returned verbatim as the answer when the model
// keeps requesting tools until the budget runs out. Exhaustion is a
// degradation path, not an error.
const MaxIterationsAnswer = "Max iterations reached without final answer"

// Agent drives one model and one tool registry through the loop. The zero
// value is not useful; construct with New or fill the fields directly.
type Agent struct {
	Model         framework.ModelClient
	Tools         *framework.Registry
	Persona       string
	MaxIterations int
	Verbose       bool

	// Trace receives progress lines when Verbose is set. Nil means the
	// standard logger, tagged [agent].
	Trace framework.Tracer

	// Dispatch executes the invocations of one turn. Nil means
	// SerialDispatch.
	Dispatch DispatchFunc
}

// Result is the terminal outcome of one run.
type Result struct {
	// Answer holds the model's final text, or MaxIterationsAnswer when
	// Exhausted is set.
	Answer     string
	Exhausted  bool
	Iterations int

	// Transcript is the full conversation of the run, for display and
	// debugging.
	Transcript []framework.Message
}

// New builds an agent with the analyst persona and stock limits.
func New(model framework.ModelClient, tools *framework.Registry) *Agent {
	return &Agent{
		Model:         model,
		Tools:         tools,
		Persona:       AnalystPrompt,
		MaxIterations: DefaultMaxIterations,
		Verbose:       true,
	}
}

// Run answers one question. Every call starts a fresh conversation seeded
// with a single user message holding the persona prompt and the question.
// Only backend failures and cancellation return an error; tool-level
// failures are folded into the conversation by the dispatcher.
func (a *Agent) Run(ctx context.Context, question string) (*Result, error) {
	conv := framework.NewConversation(framework.UserMessage(Seed(a.Persona, question)))
	defs := a.Tools.List()
	max := a.maxIterations()
	a.logf("question: %s", question)

	for iteration := 1; iteration <= max; iteration++ {
		a.logf("iteration %d/%d", iteration, max)
		turn, err := a.Model.Generate(ctx, conv.Messages(), defs)
		if err != nil {
			return nil, fmt.Errorf("model call %d: %w", iteration, err)
		}
		conv.Append(framework.AssistantMessage(turn.Text, turn.Invocations))
		if turn.IsFinal() {
			a.logf("final answer after %d iteration(s)", iteration)
			return &Result{Answer: turn.Text, Iterations: iteration, Transcript: conv.Messages()}, nil
		}
		conv.Append(a.runTools(ctx, turn.Invocations)...)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	a.logf("gave up after %d iterations", max)
	return &Result{
		Answer:     MaxIterationsAnswer,
		Exhausted:  true,
		Iterations: max,
		Transcript: conv.Messages(),
	}, nil
}

// EventKind labels the progress events of a streaming run.
type EventKind int

const (
	// EventText is a fragment of assistant text, delivered as it arrives.
	EventText EventKind = iota
	// EventToolCall announces an invocation about to be executed.
	EventToolCall
	// EventToolResult carries one executed invocation's result text.
	EventToolResult
	// EventAnswer is terminal and carries the run's Result.
	EventAnswer
)

// Event is one step of a streaming run. After an EventAnswer or an Err the
// channel closes.
type Event struct {
	Kind       EventKind
	Text       string
	Invocation *framework.ToolInvocation
	Result     *Result
	Err        error
}

// RunStream answers one question, delivering text fragments and tool
// activity as they happen. The loop and its outcomes are the same as Run;
// aggregating every EventText of the final turn reproduces Result.Answer.
func (a *Agent) RunStream(ctx context.Context, question string) <-chan Event {
	events := make(chan Event, 16)
	go func() {
		defer close(events)
		conv := framework.NewConversation(framework.UserMessage(Seed(a.Persona, question)))
		defs := a.Tools.List()
		max := a.maxIterations()
		a.logf("question: %s", question)

		for iteration := 1; iteration <= max; iteration++ {
			a.logf("iteration %d/%d", iteration, max)
			turn, err := a.streamTurn(ctx, conv.Messages(), defs, events)
			if err != nil {
				events <- Event{Err: fmt.Errorf("model call %d: %w", iteration, err)}
				return
			}
			conv.Append(framework.AssistantMessage(turn.Text, turn.Invocations))
			if turn.IsFinal() {
				a.logf("final answer after %d iteration(s)", iteration)
				events <- Event{Kind: EventAnswer, Result: &Result{
					Answer:     turn.Text,
					Iterations: iteration,
					Transcript: conv.Messages(),
				}}
				return
			}
			for i := range turn.Invocations {
				inv := turn.Invocations[i]
				events <- Event{Kind: EventToolCall, Invocation: &inv}
			}
			results := a.runTools(ctx, turn.Invocations)
			for _, msg := range results {
				events <- Event{Kind: EventToolResult, Text: msg.Content}
			}
			conv.Append(results...)
			if err := ctx.Err(); err != nil {
				events <- Event{Err: err}
				return
			}
		}

		a.logf("gave up after %d iterations", max)
		events <- Event{Kind: EventAnswer, Result: &Result{
			Answer:     MaxIterationsAnswer,
			Exhausted:  true,
			Iterations: max,
			Transcript: conv.Messages(),
		}}
	}()
	return events
}

// streamTurn drains one model turn, forwarding text fragments as events and
// folding the fragments into a complete turn. The stream is always drained
// fully, even after a mid-stream error.
func (a *Agent) streamTurn(ctx context.Context, messages []framework.Message, defs []framework.ToolDefinition, events chan<- Event) (*framework.ModelTurn, error) {
	ch, err := a.Model.GenerateStream(ctx, messages, defs)
	if err != nil {
		return nil, err
	}
	turn := &framework.ModelTurn{}
	var failure error
	for chunk := range ch {
		if chunk.Err != nil {
			if failure == nil {
				failure = chunk.Err
			}
			continue
		}
		if failure != nil {
			continue
		}
		if chunk.Text != "" {
			turn.Text += chunk.Text
			events <- Event{Kind: EventText, Text: chunk.Text}
		}
		if chunk.Invocation != nil {
			turn.Invocations = append(turn.Invocations, *chunk.Invocation)
		}
	}
	if failure != nil {
		return nil, failure
	}
	return turn, nil
}

func (a *Agent) runTools(ctx context.Context, invocations []framework.ToolInvocation) []framework.Message {
	for _, inv := range invocations {
		a.logf("tool %s args=%v", inv.Name, inv.Arguments)
	}
	dispatch := a.Dispatch
	if dispatch == nil {
		dispatch = SerialDispatch
	}
	results := dispatch(ctx, a.Tools, invocations)
	for _, msg := range results {
		a.logf("result: %s", msg.Content)
	}
	return results
}

func (a *Agent) maxIterations() int {
	if a.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return a.MaxIterations
}

func (a *Agent) logf(format string, args ...interface{}) {
	if !a.Verbose {
		return
	}
	if a.Trace != nil {
		a.Trace(format, args...)
		return
	}
	log.Printf("[agent] "+format, args...)
}
