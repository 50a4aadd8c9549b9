package cache

// Config holds configuration for the Redis connection.
type Config struct {
	// Enabled turns the Redis-backed features on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Addr is the Redis host:port.
	Addr string `mapstructure:"addr" default:"127.0.0.1:6379"`
	// Password authenticates against Redis.
	Password string `mapstructure:"password" default:""`
	// DB selects the Redis logical database.
	DB int `mapstructure:"db" default:"0"`
	// MarkerTTLSeconds is how long a tool stays flagged as recently corrected.
	MarkerTTLSeconds int `mapstructure:"marker_ttl_seconds" default:"30"`
}
