package framework

import "context"

// ModelTurn is one complete model response: free text, plus any tool
// invocations the model requested. An empty invocation list signals a final
// answer.
type ModelTurn struct {
	Text        string
	Invocations []ToolInvocation
}

// IsFinal reports whether the turn carries no invocations, i.e. the text is
// the model's final answer.
func (t *ModelTurn) IsFinal() bool {
	return len(t.Invocations) == 0
}

// StreamChunk is one fragment of an incremental model response. Either Text
// holds a fragment to append to the accumulated text, or Invocation holds one
// fully-formed tool invocation to append to the accumulated list. Invocations
// arrive whole; argument payloads are never split across chunks. Err, when
// set, is the terminal chunk: the producer closes the channel immediately
// after sending it.
type StreamChunk struct {
	Text       string
	Invocation *ToolInvocation
	Err        error
}

// ModelClient abstracts a chat-completion backend. Generate blocks until the
// complete turn is available. GenerateStream delivers the same turn as a lazy,
// finite, non-restartable chunk sequence; callers must drain the channel to
// completion before treating the turn as complete, because invocations may
// arrive interleaved with or after text fragments. Aggregating a drained
// stream must yield the same ModelTurn that Generate would have returned.
type ModelClient interface {
	Generate(ctx context.Context, messages []Message, tools []ToolDefinition) (*ModelTurn, error)
	GenerateStream(ctx context.Context, messages []Message, tools []ToolDefinition) (<-chan StreamChunk, error)
}

// AccumulateStream drains a chunk channel to completion and folds it into a
// ModelTurn. A chunk carrying Err aborts accumulation and surfaces that error.
func AccumulateStream(ch <-chan StreamChunk) (*ModelTurn, error) {
	turn := &ModelTurn{}
	for chunk := range ch {
		if chunk.Err != nil {
			return nil, chunk.Err
		}
		turn.Text += chunk.Text
		if chunk.Invocation != nil {
			turn.Invocations = append(turn.Invocations, *chunk.Invocation)
		}
	}
	return turn, nil
}
