package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int        `yaml:"port"`
	Env            string     `yaml:"env"` // "development" | "production"
	DSN            string     `yaml:"dsn"` // MySQL DSN for the principal store, optional
	MongoURL       string     `yaml:"mongo_url"`
	MongoDatabase  string     `yaml:"mongo_database"`
	RedisURL       string     `yaml:"redis_url"`
	JWTSecret      string     `yaml:"jwt_secret"`
	AllowedOrigins []string   `yaml:"allowed_origins"`
	AI             AIConfig   `yaml:"ai"`
	Plan           PlanConfig `yaml:"plan"`
}

// AIConfig lists the configured completion providers.
type AIConfig struct {
	Providers []AIProvider `yaml:"providers"`
}

// AIProvider describes one completion provider endpoint.
type AIProvider struct {
	ID           string `yaml:"id"`
	Type         string `yaml:"type"` // openai | openai-compatible | anthropic
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// PlanConfig controls plan generation routing.
type PlanConfig struct {
	// ForceMock routes every generation through the deterministic fallback
	// generator. Also settable via RUTA_MOCK_PLAN.
	ForceMock bool `yaml:"force_mock"`
}
