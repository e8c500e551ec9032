package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting that shapes a scan, independent of any one
// subcommand's flags.
type Config struct {
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Sink   SinkConfig   `yaml:"sink" mapstructure:"sink"`
	GitHub GitHubConfig `yaml:"github" mapstructure:"github"`
}

// ScanConfig controls the discovery+extraction+bridge pipeline.
type ScanConfig struct {
	PruneDirs        []string `yaml:"prune_dirs" mapstructure:"prune_dirs"`
	MaxSubgraphDepth int      `yaml:"max_subgraph_depth" mapstructure:"max_subgraph_depth"`
	MinClusterSize   int      `yaml:"min_cluster_size" mapstructure:"min_cluster_size"`
	OutputFormat     string   `yaml:"output_format" mapstructure:"output_format"` // "json" is the only normative form
}

// CacheConfig controls the incremental bbolt cache.
type CacheConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Directory string `yaml:"directory" mapstructure:"directory"`
}

// SinkConfig selects and configures the optional persistence backend.
type SinkConfig struct {
	Type        string `yaml:"type" mapstructure:"type"` // "", "sqlite", "postgres", "neo4j"
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn" mapstructure:"postgres_dsn"`
	Neo4jURI    string `yaml:"neo4j_uri" mapstructure:"neo4j_uri"`
	Neo4jUser   string `yaml:"neo4j_user" mapstructure:"neo4j_user"`
	Neo4jPass   string `yaml:"neo4j_pass" mapstructure:"neo4j_pass"`
}

// GitHubConfig controls the `fetch` subcommand.
type GitHubConfig struct {
	Token     string `yaml:"token" mapstructure:"token"`
	RateLimit int    `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// Default returns the baseline configuration applied before any file,
// env, or flag override.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Scan: ScanConfig{
			PruneDirs:        nil,
			MaxSubgraphDepth: 3,
			MinClusterSize:   2,
			OutputFormat:     "json",
		},
		Cache: CacheConfig{
			Enabled:   false,
			Directory: filepath.Join(homeDir, ".codegraph", "cache"),
		},
		Sink: SinkConfig{
			Type:       "sqlite",
			SQLitePath: filepath.Join(homeDir, ".codegraph", "graph.db"),
		},
		GitHub: GitHubConfig{
			RateLimit: 10,
		},
	}
}

// Load builds a Config from, in ascending precedence: built-in defaults,
// a YAML config file (explicit path, or the first of ./codegraph.yaml,
// ~/.codegraph/codegraph.yaml found), CODEGRAPH_*
// environment variables, and .env files loaded beforehand so local runs
// can set GITHUB_TOKEN without exporting it into the shell.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("scan", cfg.Scan)
	v.SetDefault("cache", cfg.Cache)
	v.SetDefault("sink", cfg.Sink)
	v.SetDefault("github", cfg.GitHub)

	v.SetEnvPrefix("CODEGRAPH")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("codegraph")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".codegraph"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func loadEnvFiles() {
	envFiles := []string{".env.local", ".env"}
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			_ = godotenv.Load(file)
		}
	}
	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".codegraph", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		_ = godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides lets a small set of well-known environment variables
// win over both the config file and viper's own CODEGRAPH_* binding,
// since tokens and DSNs are more often set directly than nested under a
// prefixed key.
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		cfg.Sink.PostgresDSN = dsn
	}
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		cfg.Sink.Neo4jURI = uri
	}
}

// Save writes cfg as YAML to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("scan", c.Scan)
	v.Set("cache", c.Cache)
	v.Set("sink", c.Sink)
	v.Set("github", c.GitHub)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
