package auth

// Config holds token verification settings.
type Config struct {
	// JWTSecret signs and verifies bearer tokens.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// Issuer is written into issued tokens.
	Issuer string `mapstructure:"issuer" default:"stocktake"`
	// TokenTTLMinutes is the lifetime of tokens issued by the CLI.
	TokenTTLMinutes int `mapstructure:"token_ttl_minutes" default:"480"`
}
