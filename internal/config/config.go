package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EngineConfig selects and parameterizes one model backend.
type EngineConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

// KnowledgeConfig controls knowledge augmentation. Enabled defaults to false
// when the persisted store is absent; there is no interactive prompt.
type KnowledgeConfig struct {
	Path                 string `toml:"path"`
	Enabled              bool   `toml:"enabled"`
	MaxTripletsPerEntity int    `toml:"max_triplets_per_entity"`
}

// PipelineConfig controls the outer answering loop.
type PipelineConfig struct {
	MaxRetries int    `toml:"max_retries"`
	Verbose    bool   `toml:"verbose"`
	OutputDir  string `toml:"output_dir"`
}

// GraphConfig points at a Memgraph/Neo4j instance for triplet export.
type GraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// ServerConfig parameterizes the knowledge query service.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

type Config struct {
	LanguageModel EngineConfig    `toml:"language_model"`
	VisionModel   EngineConfig    `toml:"vision_model"`
	Knowledge     KnowledgeConfig `toml:"knowledge"`
	Pipeline      PipelineConfig  `toml:"pipeline"`
	Graph         GraphConfig     `toml:"graph"`
	Server        ServerConfig    `toml:"server"`
}

// Load reads a TOML config file, applies environment overrides and fills in
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	overrideBool := func(dst *bool, key string) {
		if v := os.Getenv(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}
	overrideInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	override(&c.LanguageModel.Provider, "SMRA_LANGUAGE_PROVIDER")
	override(&c.LanguageModel.Model, "SMRA_LANGUAGE_MODEL")
	override(&c.LanguageModel.APIKey, "SMRA_LANGUAGE_API_KEY")
	override(&c.LanguageModel.BaseURL, "SMRA_LANGUAGE_BASE_URL")
	override(&c.VisionModel.Provider, "SMRA_VISION_PROVIDER")
	override(&c.VisionModel.Model, "SMRA_VISION_MODEL")
	override(&c.VisionModel.APIKey, "SMRA_VISION_API_KEY")
	override(&c.VisionModel.BaseURL, "SMRA_VISION_BASE_URL")
	override(&c.Knowledge.Path, "SMRA_KNOWLEDGE_PATH")
	overrideBool(&c.Knowledge.Enabled, "SMRA_KNOWLEDGE_ENABLED")
	override(&c.Pipeline.OutputDir, "SMRA_OUTPUT_DIR")
	overrideBool(&c.Pipeline.Verbose, "SMRA_VERBOSE")
	overrideInt(&c.Pipeline.MaxRetries, "SMRA_MAX_RETRIES")
	override(&c.Graph.URI, "SMRA_GRAPH_URI")
	override(&c.Graph.User, "SMRA_GRAPH_USER")
	override(&c.Graph.Password, "SMRA_GRAPH_PASSWORD")
}

func (c *Config) applyDefaults() {
	if c.Pipeline.MaxRetries == 0 {
		c.Pipeline.MaxRetries = 3
	}
	if c.Pipeline.OutputDir == "" {
		c.Pipeline.OutputDir = "outputs"
	}
	if c.Knowledge.MaxTripletsPerEntity == 0 {
		c.Knowledge.MaxTripletsPerEntity = 5
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}
