package config

import (
	"log/slog"
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

func isValidString(field, s string) bool {
	if s == "" {
		slog.Warn("Ignoring empty value", "field", field)
		return false
	}
	return true
}

func isValidInt(field string, i int) bool {
	if i <= 0 {
		slog.Warn("Ignoring non-positive value", "field", field, "value", i)
		return false
	}
	return true
}

// OptAPIBaseURL sets the root URL of the legacy APIS installation.
func OptAPIBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "/")
	return func(c *Config) {
		if isValidString("API BaseURL", s) {
			c.API.BaseURL = s
		}
	}
}

// OptAPIToken sets the bearer token for API authentication.
func OptAPIToken(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("API Token", s) {
			c.API.Token = s
		}
	}
}

// OptAPITimeoutSec sets the per-request timeout in seconds.
func OptAPITimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("API TimeoutSec", i) {
			c.API.TimeoutSec = i
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	valid := map[string]bool{
		"disable": true, "require": true,
		"verify-ca": true, "verify-full": true,
	}
	return func(c *Config) {
		if !valid[s] {
			slog.Warn("Ignoring invalid SSL mode", "value", s)
			return
		}
		c.Database.SSLMode = s
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	valid := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	return func(c *Config) {
		if !valid[s] {
			slog.Warn("Ignoring invalid log level", "value", s)
			return
		}
		c.Log.Level = s
	}
}

// OptLogFormat sets the log output format ("json" or "text").
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if s != "json" && s != "text" {
			slog.Warn("Ignoring invalid log format", "value", s)
			return
		}
		c.Log.Format = s
	}
}

// OptLogDestination sets the log destination
// ("file", "stdout" or "stderr").
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	valid := map[string]bool{"file": true, "stdout": true, "stderr": true}
	return func(c *Config) {
		if !valid[s] {
			slog.Warn("Ignoring invalid log destination", "value", s)
			return
		}
		c.Log.Destination = s
	}
}

// OptLogFile overrides the log file location and switches the
// destination to "file".
func OptLogFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s == "" {
			return
		}
		c.Log.Destination = "file"
		c.Log.File = s
	}
}

// OptHomeDir sets the home directory used to derive config and log paths.
func OptHomeDir(s string) Option {
	return func(c *Config) {
		if isValidString("HomeDir", s) {
			c.HomeDir = s
		}
	}
}

// OptVocFile sets the vocabulary matching CSV location.
func OptVocFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("VocFile", s) {
			c.Import.VocFile = s
		}
	}
}

// OptLabelsFile sets the alternate labels CSV location.
func OptLabelsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("LabelsFile", s) {
			c.Import.LabelsFile = s
		}
	}
}

// OptFailFast aborts the import run on the first record failure.
func OptFailFast(b bool) Option {
	return func(c *Config) {
		c.Import.FailFast = b
	}
}
