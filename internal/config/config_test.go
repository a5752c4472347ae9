package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Dictionary: DictionaryConfig{
			Source:         SourceWiktionary,
			TimeoutSeconds: 10,
			Wiktionary:     WiktionaryConfig{BaseURL: "https://en.wiktionary.org"},
			FreeDictionary: FreeDictionaryConfig{BaseURL: "https://api.dictionaryapi.dev/api/v2/entries/en"},
		},
		Cache: CacheConfig{
			Backend:        BackendFile,
			File:           filepath.Join("dictionaries", "dictionary.json"),
			LockAttempts:   10,
			RedisKeyPrefix: "lookword:",
		},
		Render:  RenderConfig{Color: ColorAuto},
		Outputs: OutputsConfig{PDFDirectory: filepath.Join("outputs", "pdf")},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     3306,
			Database: "local",
			Username: "user",
		},
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RAPID_API_HOST", "RAPID_API_KEY", "DB_PASSWORD", "LOOKWORD_REDIS_URL"} {
		t.Setenv(key, "")
	}
}

func TestConfigLoader_Load(t *testing.T) {
	templateFile := filepath.Join(t.TempDir(), "entry.md.go.tmpl")
	require.NoError(t, os.WriteFile(templateFile, []byte("{{ .Word }}"), 0644))

	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		env               map[string]string
		want              func() *Config
		wantErrorContains []string
	}{
		{
			name:          "no config file uses defaults",
			configContent: "",
			want:          defaultConfig,
		},
		{
			name: "custom values",
			configContent: `dictionary:
  source: free_dictionary
  timeout_seconds: 3
cache:
  file: custom/dictionary.json
  require_existing: true
  lock_attempts: 2
render:
  color: never
templates:
  entry_template: ` + templateFile + `
outputs:
  pdf_directory: custom/pdf
`,
			useExplicitPath: true,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Dictionary.Source = SourceFreeDictionary
				cfg.Dictionary.TimeoutSeconds = 3
				cfg.Cache.File = "custom/dictionary.json"
				cfg.Cache.RequireExisting = true
				cfg.Cache.LockAttempts = 2
				cfg.Render.Color = ColorNever
				cfg.Templates.EntryTemplate = templateFile
				cfg.Outputs.PDFDirectory = "custom/pdf"
				return cfg
			},
		},
		{
			name: "secrets come from the environment",
			configContent: `cache:
  backend: redis
`,
			env: map[string]string{
				"RAPID_API_HOST":     "wordsapiv1.p.rapidapi.com",
				"RAPID_API_KEY":      "secret",
				"DB_PASSWORD":        "password",
				"LOOKWORD_REDIS_URL": "redis://localhost:6379/0",
			},
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Dictionary.RapidAPI = RapidAPIConfig{Host: "wordsapiv1.p.rapidapi.com", Key: "secret"}
				cfg.Database.Password = "password"
				cfg.Cache.Backend = BackendRedis
				cfg.Cache.RedisURL = "redis://localhost:6379/0"
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `dictionary:
  source: wiktionary
  invalid yaml format here [[[
`,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "unknown source",
			configContent: `dictionary:
  source: merriam_webster
`,
			wantErrorContains: []string{
				"invalid configuration",
				"source must be one of [wiktionary free_dictionary words_api]",
			},
		},
		{
			name: "redis backend without a url",
			configContent: `cache:
  backend: redis
`,
			wantErrorContains: []string{"invalid configuration", "redis_url"},
		},
		{
			name: "redis backend with a url",
			configContent: `cache:
  backend: redis
  redis_url: redis://localhost:6379/0
`,
			want: func() *Config {
				cfg := defaultConfig()
				cfg.Cache.Backend = BackendRedis
				cfg.Cache.RedisURL = "redis://localhost:6379/0"
				return cfg
			},
		},
		{
			name: "redis url with another scheme",
			configContent: `cache:
  backend: redis
  redis_url: http://localhost:6379
`,
			wantErrorContains: []string{"cache.redis_url must be a redis:// or rediss:// URL"},
		},
		{
			name: "missing entry template",
			configContent: `templates:
  entry_template: /nonexistent/entry.md.go.tmpl
`,
			wantErrorContains: []string{"templates.entry_template must be an existing and readable file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			tempDir := t.TempDir()

			var configPath string
			if tt.useExplicitPath {
				configPath = filepath.Join(tempDir, "lookword.yml")
				require.NoError(t, os.WriteFile(configPath, []byte(tt.configContent), 0644))
			} else {
				if tt.configContent != "" {
					require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(tt.configContent), 0644))
				}
				t.Chdir(tempDir)
			}

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if len(tt.wantErrorContains) > 0 {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestDictionaryConfig_Timeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, DictionaryConfig{TimeoutSeconds: 10}.Timeout())
}
