package config

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"division"`
	Password string `env:"PASSWORD" envDefault:"division"`
	Name     string `env:"NAME"     envDefault:"division"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for sessions and challenges.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}
