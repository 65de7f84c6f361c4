package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, env := range []string{configPathEnv, openAIKeyEnv, openAIModelEnv, judgeProviderEnv} {
		t.Setenv(env, "")
	}

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.Fetcher.Timeout)
	assert.Contains(t, cfg.Fetcher.UserAgent, "Chrome/118.0.0.0")
	assert.Equal(t, ProviderOpenAI, cfg.Judge.Provider)
	assert.Equal(t, "gpt-5-mini", cfg.OpenAI.Model)
	assert.Empty(t, cfg.OpenAI.APIKey)
}

func TestLoadMergesFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doclens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: info
fetcher:
  timeout: 5s
judge:
  provider: HTTP
  maxDocumentTokens: 4000
openai:
  model: gpt-4o-mini
service:
  inferenceUrl: http://judge.internal:9000
`), 0o600))

	t.Setenv(configPathEnv, path)
	t.Setenv(openAIKeyEnv, "sk-test")
	t.Setenv(openAIModelEnv, "gpt-4.1")
	t.Setenv(judgeProviderEnv, "")

	cfg := Load()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, defaultAccept, cfg.Fetcher.Accept)
	assert.Equal(t, ProviderHTTP, cfg.Judge.Provider)
	assert.Equal(t, 4000, cfg.Judge.MaxDocumentTokens)
	assert.Equal(t, 2*time.Minute, cfg.Judge.Timeout)
	assert.Equal(t, "gpt-4.1", cfg.OpenAI.Model)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "http://judge.internal:9000", cfg.Service.InferenceURL)
}

func TestLoadFallsBackOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetcher: [unterminated"), 0o600))

	t.Setenv(configPathEnv, path)
	t.Setenv(judgeProviderEnv, "carrier-pigeon")

	cfg := Load()

	assert.Equal(t, Default().Fetcher, cfg.Fetcher)
	assert.Equal(t, ProviderOpenAI, cfg.Judge.Provider)
}
