package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Nithin345256/LLM-based-java-chatbot/internal/domain"
)

// EnvPrefix prefixes environment overrides, e.g. RAG_RETRIEVAL_TOP_K.
const EnvPrefix = "RAG"

// DataConfig locates the persisted chunk store.
type DataConfig struct {
	ChunksPath     string `yaml:"chunks_path" mapstructure:"chunks_path" validate:"required"`
	EmbeddingsPath string `yaml:"embeddings_path" mapstructure:"embeddings_path" validate:"required"`
}

// CacheConfig configures the optional redis embedding cache.
// The cache is disabled when RedisAddr is empty.
type CacheConfig struct {
	RedisAddr string `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisDB   int    `yaml:"redis_db" mapstructure:"redis_db" validate:"gte=0"`
	TTLSecs   int    `yaml:"ttl_secs" mapstructure:"ttl_secs" validate:"gte=0"`
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type        string      `yaml:"type" mapstructure:"type" validate:"oneof=hashing huggingface openai gemini"`
	Model       string      `yaml:"model" mapstructure:"model"`
	BaseURL     string      `yaml:"base_url" mapstructure:"base_url"`
	APIKeyEnv   string      `yaml:"api_key_env" mapstructure:"api_key_env"`
	Dimension   int         `yaml:"dimension" mapstructure:"dimension" validate:"gt=0"`
	TimeoutSecs int         `yaml:"timeout_secs" mapstructure:"timeout_secs" validate:"gte=0"`
	BatchSize   int         `yaml:"batch_size" mapstructure:"batch_size" validate:"gt=0"`
	Cache       CacheConfig `yaml:"cache" mapstructure:"cache"`
}

// GeneratorConfig selects and configures the answer generation endpoint.
type GeneratorConfig struct {
	Type            string  `yaml:"type" mapstructure:"type" validate:"oneof=gemini openai"`
	Model           string  `yaml:"model" mapstructure:"model"`
	BaseURL         string  `yaml:"base_url" mapstructure:"base_url"`
	APIKeyEnv       string  `yaml:"api_key_env" mapstructure:"api_key_env"`
	Temperature     float32 `yaml:"temperature" mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxOutputTokens int     `yaml:"max_output_tokens" mapstructure:"max_output_tokens" validate:"gt=0"`
	TimeoutSecs     int     `yaml:"timeout_secs" mapstructure:"timeout_secs" validate:"gte=0"`
}

// RetrievalConfig controls how much context reaches the prompt.
type RetrievalConfig struct {
	TopK               int `yaml:"top_k" mapstructure:"top_k" validate:"gt=0"`
	ContextBudgetChars int `yaml:"context_budget_chars" mapstructure:"context_budget_chars" validate:"gt=0"`
}

// PromptConfig holds the fixed parts of the prompt.
type PromptConfig struct {
	Instruction string   `yaml:"instruction" mapstructure:"instruction" validate:"required"`
	Guidelines  []string `yaml:"guidelines" mapstructure:"guidelines"`
}

// ChunkerConfig configures how pages are split into chunks.
type ChunkerConfig struct {
	Type              string `yaml:"type" mapstructure:"type" validate:"oneof=sentence"`
	SentencesPerChunk int    `yaml:"sentences_per_chunk" mapstructure:"sentences_per_chunk" validate:"gt=0"`
	OverlapSentences  int    `yaml:"overlap_sentences" mapstructure:"overlap_sentences" validate:"gte=0,ltfield=SentencesPerChunk"`
}

// IngestConfig configures the offline preprocessing step.
type IngestConfig struct {
	Workers       int `yaml:"workers" mapstructure:"workers" validate:"gt=0"`
	MinChunkChars int `yaml:"min_chunk_chars" mapstructure:"min_chunk_chars" validate:"gte=0"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	File       string `yaml:"file" mapstructure:"file" validate:"required"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days" validate:"gte=0"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Embedder  EmbedderConfig  `yaml:"embedder" mapstructure:"embedder"`
	Generator GeneratorConfig `yaml:"generator" mapstructure:"generator"`
	Retrieval RetrievalConfig `yaml:"retrieval" mapstructure:"retrieval"`
	Prompt    PromptConfig    `yaml:"prompt" mapstructure:"prompt"`
	Chunker   ChunkerConfig   `yaml:"chunker" mapstructure:"chunker"`
	Ingest    IngestConfig    `yaml:"ingest" mapstructure:"ingest"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DefaultInstruction is the system instruction of the textbook tutor.
const DefaultInstruction = "You are an expert Java programming tutor. Answer the following question based ONLY on the provided context from the Java textbook."

// DefaultGuidelines are appended after the question.
var DefaultGuidelines = []string{
	"Provide a comprehensive answer based solely on the context",
	"Include code examples in markdown format if present",
	"If the context lacks sufficient information, clearly state this",
	"Structure the answer with clear explanations and examples",
	"Use proper Java terminology",
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Every key may be overridden by an environment variable, see EnvPrefix.
func Load(path string) (*AppConfig, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, domain.NewConfigError("read "+path, err)
			}
		}
	}
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, domain.NewConfigError("decode config", err)
	}
	applyConfigDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/rag/config.yaml.
// If neither exists, it writes defaults to ~/.config/rag/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := DefaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	if err := Save(userPath, Default()); err != nil {
		return nil, "", err
	}
	cfg, err := Load(userPath)
	return cfg, userPath, err
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks struct constraints and returns a ConfigError describing
// every violated field.
func Validate(cfg *AppConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewConfigError("validate", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return domain.NewConfigError("validate", errors.New(strings.Join(msgs, "; ")))
}

// LookupAPIKey reads the API key from the named environment variable.
func LookupAPIKey(envName string) (string, error) {
	if envName == "" {
		return "", fmt.Errorf("%w: no api_key_env configured", domain.ErrMissingAPIKey)
	}
	key := strings.TrimSpace(os.Getenv(envName))
	if key == "" {
		return "", fmt.Errorf("%w: set %s in the environment or .env file", domain.ErrMissingAPIKey, envName)
	}
	return key, nil
}

// DefaultUserConfigPath returns ~/.config/rag/config.yaml.
func DefaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rag", "config.yaml"), nil
}

// Default returns the complete default configuration.
func Default() *AppConfig {
	cfg := baseConfig()
	applyConfigDefaults(cfg)
	return cfg
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// newViper seeds a viper instance with the base config so that every key is
// known and therefore reachable by environment overrides.
func newViper() (*viper.Viper, error) {
	base, err := yaml.Marshal(baseConfig())
	if err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(base)); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

// baseConfig leaves provider specific fields empty; applyConfigDefaults fills
// them according to the selected provider type.
func baseConfig() *AppConfig {
	return &AppConfig{
		Data:      DataConfig{ChunksPath: "chunks.json", EmbeddingsPath: "embeddings.json"},
		Embedder:  EmbedderConfig{Type: "huggingface", BatchSize: 32, Cache: CacheConfig{TTLSecs: 86400, KeyPrefix: "emb:"}},
		Generator: GeneratorConfig{Type: "gemini", Temperature: 0.2, MaxOutputTokens: 1024},
		Retrieval: RetrievalConfig{TopK: 5, ContextBudgetChars: 6000},
		Prompt:    PromptConfig{Instruction: DefaultInstruction, Guidelines: DefaultGuidelines},
		Chunker:   ChunkerConfig{Type: "sentence", SentencesPerChunk: 8, OverlapSentences: 1},
		Ingest:    IngestConfig{Workers: 4, MinChunkChars: 40},
		Log:       LogConfig{Level: "info", File: "rag.log", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Chunker.Type == "" {
		cfg.Chunker.Type = "sentence"
	}
	if cfg.Chunker.SentencesPerChunk == 0 {
		cfg.Chunker.SentencesPerChunk = 8
	}
	e := &cfg.Embedder
	switch e.Type {
	case "huggingface":
		setDefault(&e.BaseURL, "https://api-inference.huggingface.co")
		setDefault(&e.Model, "sentence-transformers/all-MiniLM-L6-v2")
		setDefault(&e.APIKeyEnv, "HF_API_TOKEN")
		setDefaultInt(&e.Dimension, 384)
		setDefaultInt(&e.TimeoutSecs, 60)
	case "openai":
		setDefault(&e.BaseURL, "https://api.openai.com/v1")
		setDefault(&e.Model, "text-embedding-3-small")
		setDefault(&e.APIKeyEnv, "OPENAI_API_KEY")
		setDefaultInt(&e.Dimension, 1536)
		setDefaultInt(&e.TimeoutSecs, 30)
	case "gemini":
		setDefault(&e.Model, "text-embedding-004")
		setDefault(&e.APIKeyEnv, "GOOGLE_API_KEY")
		setDefaultInt(&e.Dimension, 768)
		setDefaultInt(&e.TimeoutSecs, 30)
	case "hashing":
		setDefaultInt(&e.Dimension, 384)
	}
	if e.BatchSize == 0 {
		e.BatchSize = 32
	}
	g := &cfg.Generator
	switch g.Type {
	case "gemini":
		setDefault(&g.Model, "gemini-1.5-flash")
		setDefault(&g.APIKeyEnv, "GOOGLE_API_KEY")
		setDefaultInt(&g.TimeoutSecs, 30)
	case "openai":
		setDefault(&g.BaseURL, "https://api.openai.com/v1")
		setDefault(&g.Model, "gpt-4o-mini")
		setDefault(&g.APIKeyEnv, "OPENAI_API_KEY")
		setDefaultInt(&g.TimeoutSecs, 30)
	}
	if g.MaxOutputTokens == 0 {
		g.MaxOutputTokens = 1024
	}
	if len(cfg.Prompt.Guidelines) == 0 {
		cfg.Prompt.Guidelines = DefaultGuidelines
	}
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func setDefaultInt(field *int, value int) {
	if *field == 0 {
		*field = value
	}
}
