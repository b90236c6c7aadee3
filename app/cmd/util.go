package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lexcodex/finsight/agents"
	"github.com/lexcodex/finsight/bank"
	"github.com/lexcodex/finsight/framework"
	"github.com/lexcodex/finsight/llm"
	"github.com/lexcodex/finsight/tools"
)

// openStore opens the configured dataset. SQLite wins over CSV when both
// are set. The returned cleanup closes whatever was opened.
func openStore() (bank.Store, func(), error) {
	if cfg.Data.SQLite != "" {
		store, err := bank.OpenSQLite(cfg.Data.SQLite)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", cfg.Data.SQLite, err)
		}
		return store, func() { store.Close() }, nil
	}
	store, err := bank.OpenCSV(cfg.Data.CSV)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (run 'finsight generate' to create sample data)", err)
	}
	return store, func() {}, nil
}

// buildModel constructs the configured model client.
func buildModel() (framework.ModelClient, error) {
	endpoint := cfg.Model.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv("OLLAMA_HOST")
	}
	switch cfg.Model.Provider {
	case "", "ollama":
		client := llm.NewOllamaClient(endpoint, cfg.Model.Name)
		client.Temperature = cfg.Model.Temperature
		client.MaxTokens = cfg.Model.MaxTokens
		client.SetDebugLogging(cfg.Logging.LLM)
		return client, nil
	case "openai":
		apiKey := cfg.Model.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		client := llm.NewLiteLLMClient(apiKey, cfg.Model.Endpoint, cfg.Model.Name, cfg.Model.Temperature, cfg.Model.MaxTokens)
		client.Debug = cfg.Logging.LLM
		return client, nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}
}

// buildAgent assembles the loop: data store, tool registry, model client.
func buildAgent() (*agents.Agent, func(), error) {
	store, cleanup, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	model, err := buildModel()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	agent := agents.New(model, tools.BuildRegistry(store))
	agent.Persona = agents.PersonaPrompt(cfg.Agent.Persona)
	agent.MaxIterations = cfg.Agent.MaxIterations
	agent.Verbose = cfg.Agent.Verbose || cfg.Logging.Agent
	if cfg.Agent.ConcurrentTools {
		agent.Dispatch = agents.ConcurrentDispatch
	}
	return agent, cleanup, nil
}

// backendHint decorates a model failure with the usual fix.
func backendHint(err error) error {
	return fmt.Errorf("%w (is the model backend running and %q installed?)", err, cfg.Model.Name)
}

// readConfigMap deserializes config.yaml into a generic map for dotted lookups.
func readConfigMap(path string) (map[string]interface{}, error) {
	data := map[string]interface{}{}
	bytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// writeConfigMap persists the config map back to YAML, creating directories.
func writeConfigMap(path string, data map[string]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	bytes, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0o644)
}

// getConfigValue traverses a nested map using dotted notation.
func getConfigValue(data map[string]interface{}, key string) (interface{}, bool) {
	parts := strings.Split(key, ".")
	var current interface{} = data
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		value, ok := m[part]
		if !ok {
			return nil, false
		}
		current = value
	}
	return current, true
}

// setConfigValue mutates/creates nested keys referenced via dotted notation.
func setConfigValue(data map[string]interface{}, key string, value interface{}) error {
	parts := strings.Split(key, ".")
	current := data
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value
			return nil
		}
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			current[part] = next
		}
		current = next
	}
	return nil
}

// parseValue attempts to coerce CLI input into bool/int/float before storing.
func parseValue(input string) interface{} {
	if b, err := strconv.ParseBool(input); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(input, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(input, 64); err == nil {
		return f
	}
	return input
}

// prettyValue renders nested values in a human-readable one-line format.
func prettyValue(v interface{}) string {
	switch value := v.(type) {
	case []interface{}:
		var parts []string
		for _, item := range value {
			parts = append(parts, prettyValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]interface{}:
		b, _ := yaml.Marshal(value)
		return strings.TrimSpace(string(b))
	default:
		return fmt.Sprint(value)
	}
}
