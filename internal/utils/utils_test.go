package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestParseTOMLWithRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[store]
backend = "redis"
memory_size = 42
ttl = "90s"

[kafka]
brokers = ["a:9092", "b:9092"]

[metrics]
enabled = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)

	store, ok := ExtractSection(data, "store")
	require.True(t, ok)

	backend, ok := ExtractString(store, "backend")
	assert.True(t, ok)
	assert.Equal(t, "redis", backend)

	size, ok := ExtractInt64(store, "memory_size")
	assert.True(t, ok)
	assert.Equal(t, 42, size)

	ttl, ok := ExtractDuration(store, "ttl")
	assert.True(t, ok)
	assert.Equal(t, 90*time.Second, ttl)

	_, ok = ExtractInt64(store, "backend")
	assert.False(t, ok)

	kafka, ok := ExtractSection(data, "kafka")
	require.True(t, ok)
	brokers, ok := ExtractStrings(kafka, "brokers")
	assert.True(t, ok)
	assert.Equal(t, []string{"a:9092", "b:9092"}, brokers)

	metrics, ok := ExtractSection(data, "metrics")
	require.True(t, ok)
	enabled, ok := ExtractBool(metrics, "enabled")
	assert.True(t, ok)
	assert.True(t, enabled)

	_, ok = ExtractSection(data, "missing")
	assert.False(t, ok)
}

func TestExtractRejectsWrongTypes(t *testing.T) {
	data := map[string]any{
		"mixed":   []any{"a", int64(1)},
		"badttl":  "soon",
		"notlist": "a",
	}

	_, ok := ExtractStrings(data, "mixed")
	assert.False(t, ok)
	_, ok = ExtractStrings(data, "notlist")
	assert.False(t, ok)
	_, ok = ExtractDuration(data, "badttl")
	assert.False(t, ok)
	_, ok = ExtractString(data, "absent")
	assert.False(t, ok)
}

func TestSaveTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	in := struct {
		Name string `toml:"name"`
	}{Name: "vanity"}

	require.NoError(t, SaveTOMLFile(in, path))
	assert.True(t, FileExists(path))

	var out struct {
		Name string `toml:"name"`
	}
	require.NoError(t, LoadTOMLFile(path, &out))
	assert.Equal(t, "vanity", out.Name)
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	result := CheckDirStatus(dir)
	assert.NoError(t, result.Error)
	assert.True(t, result.Exists)
	assert.True(t, result.Writable)
	assert.False(t, FileExists(filepath.Join(dir, ".write_test")))
}

func TestStripDialChars(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(866) 266-5233", "8662665233"},
		{"866.266.5233", "8662665233"},
		{"866-26x-5233", "86626x5233"},
		{"+1 866", "+1866"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripDialChars(tt.input))
		})
	}
}

func TestFormatWithCommas(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{234567, "234,567"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatWithCommas(tt.input))
		})
	}
}

func TestResolveDictPath(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "words.txt"), []byte("cool\n"), 0644))

	pr, err := NewPathResolver(configDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(configDir, "words.txt"), pr.ResolveDictPath("words.txt"))
	assert.Equal(t, "/abs/words.txt", pr.ResolveDictPath("/abs/words.txt"))
	assert.Equal(t, "", pr.ResolveDictPath(""))
	assert.Equal(t, "missing-words.txt", pr.ResolveDictPath("missing-words.txt"))
}
