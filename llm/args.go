package llm

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/kaptinlin/jsonrepair"
)

// parseArguments turns a raw tool-call argument payload into a map. Backends
// disagree about the shape: usually a JSON object, sometimes a string
// containing JSON, and small models occasionally emit JSON that is slightly
// broken (single quotes, trailing commas). Broken payloads go through a
// repair pass before giving up.
func parseArguments(raw json.RawMessage) map[string]interface{} {
	if len(raw) == 0 {
		return map[string]interface{}{}
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if nested, ok := unmarshalWithRepair(str); ok {
			return nested
		}
		return map[string]interface{}{"value": str}
	}
	if repaired, ok := unmarshalWithRepair(string(raw)); ok {
		return repaired
	}
	return map[string]interface{}{"_raw": string(raw)}
}

// unmarshalWithRepair tries a strict parse, then a jsonrepair pass.
func unmarshalWithRepair(content string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		return obj, true
	}
	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// ensureInvocationID keeps a backend-provided id or mints one. Ollama omits
// tool-call ids entirely, and the loop needs them to correlate results.
func ensureInvocationID(id string) string {
	if id != "" {
		return id
	}
	return "call-" + uuid.New().String()
}
