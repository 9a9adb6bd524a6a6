package config

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains valid.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Import.*, Log.File).
// Used for round-tripping config.yaml <-> Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option

	if s := c.API.BaseURL; s != "" {
		res = append(res, OptAPIBaseURL(s))
	}
	if s := c.API.Token; s != "" {
		res = append(res, OptAPIToken(s))
	}
	if i := c.API.TimeoutSec; i > 0 {
		res = append(res, OptAPITimeoutSec(i))
	}

	if s := c.Database.Host; s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	if i := c.Database.Port; i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	if s := c.Database.User; s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	if s := c.Database.Password; s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	if s := c.Database.Database; s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	if s := c.Database.SSLMode; s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}

	if s := c.Log.Level; s != "" {
		res = append(res, OptLogLevel(s))
	}
	if s := c.Log.Format; s != "" {
		res = append(res, OptLogFormat(s))
	}
	if s := c.Log.Destination; s != "" {
		res = append(res, OptLogDestination(s))
	}

	return res
}
