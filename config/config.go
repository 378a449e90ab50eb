package config

// OracleConfig configures the LLM oracle endpoint.
type OracleConfig struct {
	// Host is the base URL for the OpenAI-compatible chat API.
	Host string `koanf:"host"`

	// Model is the model identifier used for all oracle calls.
	Model string `koanf:"model"`

	// APIKey authenticates against hosted endpoints.
	APIKey string `koanf:"api_key"`

	// MinConfidence drops extracted candidates below this threshold.
	MinConfidence float64 `koanf:"min_confidence"`

	// UnlockThreshold is the confidence at which a skill counts as unlocked.
	UnlockThreshold float64 `koanf:"unlock_threshold"`
}

// GitHubConfig configures the GitHub source adapter.
type GitHubConfig struct {
	// RequestsPerSecond throttles calls to the GitHub API.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	// Burst is the rate limiter burst size.
	Burst int `koanf:"burst"`

	// CacheTTLSeconds is how long per-user digests are cached.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBBackend selects the storage backend: "badger" or "postgres".
	DBBackend string `koanf:"db_backend"`

	// DBPath is the badger database directory.
	DBPath string `koanf:"db_path"`

	// DatabaseURL is the postgres connection string, used when
	// DBBackend is "postgres".
	DatabaseURL string `koanf:"database_url"`

	// PoolSize bounds concurrently executing extraction runs.
	PoolSize int `koanf:"pool_size"`

	// MaxDocumentBytes caps uploaded document size.
	MaxDocumentBytes int `koanf:"max_document_bytes"`

	Oracle OracleConfig `koanf:"oracle"`

	GitHub GitHubConfig `koanf:"github"`
}

// New returns a Config populated with defaults. Load layers file and
// environment values on top of these.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		DBBackend:        "badger",
		DBPath:           "skillmap.db",
		PoolSize:         4,
		MaxDocumentBytes: 1 << 20,
		Oracle: OracleConfig{
			Host:            "http://localhost:11434/v1",
			Model:           "qwen2.5:3b",
			APIKey:          "unused",
			MinConfidence:   0.05,
			UnlockThreshold: 0.7,
		},
		GitHub: GitHubConfig{
			RequestsPerSecond: 1,
			Burst:             3,
			CacheTTLSeconds:   600,
		},
	}
}
