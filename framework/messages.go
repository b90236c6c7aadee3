package framework

// Message roles. The wire clients map these onto whatever role vocabulary the
// backend expects; inside the framework they are the only three that exist.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolInvocation encodes a function call requested by the model. The ID is an
// opaque token unique within a turn; it correlates the invocation with the
// ToolResult message that answers it.
type ToolInvocation struct {
	ID        string                 `json:"id,omitempty"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// Message is one entry in a conversation. Exactly one shape per role:
// user and assistant messages carry Content, assistant messages may add
// Invocations, and tool messages carry Content plus the InvocationID they
// answer.
type Message struct {
	Role         string           `json:"role"`
	Content      string           `json:"content"`
	Invocations  []ToolInvocation `json:"tool_calls,omitempty"`
	InvocationID string           `json:"tool_call_id,omitempty"`
}

// UserMessage builds a user-role message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// AssistantMessage builds an assistant-role message with any invocations the
// model requested alongside its text.
func AssistantMessage(text string, invocations []ToolInvocation) Message {
	return Message{Role: RoleAssistant, Content: text, Invocations: invocations}
}

// ToolResultMessage builds a tool-role message answering one invocation.
func ToolResultMessage(invocationID, text string) Message {
	return Message{Role: RoleTool, Content: text, InvocationID: invocationID}
}

// Conversation owns the ordered, append-only message sequence threading
// through one loop execution. One run owns one conversation; it is never
// shared between runs and never mutated except by Append.
type Conversation struct {
	messages []Message
}

// NewConversation starts a conversation with the given seed messages.
func NewConversation(seed ...Message) *Conversation {
	c := &Conversation{}
	c.messages = append(c.messages, seed...)
	return c
}

// Append adds messages to the end of the conversation.
func (c *Conversation) Append(msgs ...Message) {
	c.messages = append(c.messages, msgs...)
}

// Messages returns a copy of the conversation so callers cannot reorder or
// mutate history out from under the loop.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len reports the number of messages appended so far.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message and true, or a zero message and false
// when the conversation is empty.
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}
