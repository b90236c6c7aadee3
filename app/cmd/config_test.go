package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigHelpers(t *testing.T) {
	data := map[string]interface{}{
		"model": map[string]interface{}{
			"name": "llama3.2",
		},
	}
	value, ok := getConfigValue(data, "model.name")
	require.True(t, ok)
	require.Equal(t, "llama3.2", value)

	require.NoError(t, setConfigValue(data, "model.name", "qwen2.5"))
	value, ok = getConfigValue(data, "model.name")
	require.True(t, ok)
	require.Equal(t, "qwen2.5", value)

	require.NoError(t, setConfigValue(data, "agent.max_iterations", 15))
	value, ok = getConfigValue(data, "agent.max_iterations")
	require.True(t, ok)
	require.Equal(t, 15, value)

	_, ok = getConfigValue(data, "agent.missing")
	require.False(t, ok)
}

func TestConfigMapRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	data, err := readConfigMap(path)
	require.NoError(t, err, "a missing file reads as an empty map")
	require.NoError(t, setConfigValue(data, "agent.verbose", true))
	require.NoError(t, writeConfigMap(path, data))

	reread, err := readConfigMap(path)
	require.NoError(t, err)
	value, ok := getConfigValue(reread, "agent.verbose")
	require.True(t, ok)
	require.Equal(t, true, value)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, int64(12), parseValue("12"))
	assert.Equal(t, 0.7, parseValue("0.7"))
	assert.Equal(t, "llama3.2", parseValue("llama3.2"))
}

func TestPrettyValue(t *testing.T) {
	assert.Equal(t, "15", prettyValue(15))
	assert.Equal(t, "[a, b]", prettyValue([]interface{}{"a", "b"}))
	assert.Equal(t, "name: llama3.2", prettyValue(map[string]interface{}{"name": "llama3.2"}))
}
