// Package config provides configuration management for minedb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation failures are reported via slog warnings.
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with a warning - config remains valid
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - API: base_url, token, timeout_sec
//   - Database: host, port, user, password, database, ssl_mode
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Import.VocFile, Import.LabelsFile, Import.FailFast
//   - Log.File (from --log-file)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use MINEDB_ prefix with underscores for nesting:
//
//	MINEDB_API_BASE_URL=https://mine.acdh-ch-dev.oeaw.ac.at
//	MINEDB_API_TOKEN=...
//	MINEDB_DATABASE_HOST=localhost
//	MINEDB_LOG_LEVEL=info
package config

// Config represents the complete minedb configuration.
type Config struct {
	// API contains settings for the legacy APIS REST API.
	API APIConfig `mapstructure:"api" yaml:"api"`

	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings specific to the import command.
	Import ImportConfig `mapstructure:"-" yaml:"-"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by the CLI during init, there is no default for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// APIConfig contains connection parameters for the legacy APIS API.
type APIConfig struct {
	// BaseURL is the root URL of the legacy APIS installation.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Token is the bearer token used for API authentication.
	Token string `mapstructure:"token" yaml:"token"`

	// TimeoutSec is the per-request timeout in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ImportConfig contains runtime settings for the import command.
// These come from CLI flags and are not persisted in config.yaml.
type ImportConfig struct {
	// VocFile is the path to the CSV mapping legacy relation-type ids
	// to target relation kinds.
	VocFile string

	// LabelsFile is the path to the CSV with alternate labels and
	// images keyed by legacy entity id.
	LabelsFile string

	// FailFast aborts the run on the first record that fails to import.
	// The default is to log, count and continue.
	FailFast bool
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format" yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level" yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT.
	Destination string `mapstructure:"destination" yaml:"destination"`
	// File overrides the default log file location when Destination
	// is "file". Set from the --log-file flag.
	File string `mapstructure:"-" yaml:"-"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		API: APIConfig{
			BaseURL:    "https://mine.acdh-ch-dev.oeaw.ac.at",
			TimeoutSec: 30,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "minedb",
			SSLMode:  "disable",
		},
		Import: ImportConfig{
			VocFile:    "resources/combined_relations.csv",
			LabelsFile: "resources/labels_mine_export.csv",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now the file is rewritten every time the run starts
			Destination: "file",
		},
	}
	return res
}
