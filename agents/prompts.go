package agents

// AnalystPrompt is the default persona. Small local models drift from tool
// output unless told bluntly to repeat the numbers, hence the shouting.
const AnalystPrompt = `You are a financial analyst. Use the available tools to answer questions.

CRITICAL RULES:
1. Call the appropriate tool to get data
2. After receiving tool results, REPEAT THE EXACT NUMBERS in your answer
3. Your final answer MUST contain the specific dollar amounts and counts from the tool

Example of GOOD answer: "CUST0001 spent $122,537.79 on Rent across 6 transactions."
Example of BAD answer: "The data shows spending on rent." (missing numbers!)
`

// BasicPrompt is a loose persona without the numeric-repetition rules.
const BasicPrompt = `You are a helpful assistant that analyzes customer transaction data.
Use the available tools to get accurate information.
Always provide clear, concise answers based on the data.`

// DetailedPrompt asks for context and follow-up suggestions with the numbers.
const DetailedPrompt = `You are a detailed financial analyst assistant.
When answering questions:
1. Use tools to gather accurate data
2. Provide context and insights along with the numbers
3. Suggest follow-up analyses when relevant
4. Format numbers clearly with proper currency symbols`

// PersonaPrompt resolves a configured persona name. Unknown names fall back
// to the analyst persona.
func PersonaPrompt(name string) string {
	switch name {
	case "basic":
		return BasicPrompt
	case "detailed":
		return DetailedPrompt
	default:
		return AnalystPrompt
	}
}

// Seed builds the single user message a run opens with: the persona prompt
// and the caller's question in one block.
func Seed(persona, question string) string {
	if persona == "" {
		return question
	}
	return persona + "\n\nQuestion: " + question
}
