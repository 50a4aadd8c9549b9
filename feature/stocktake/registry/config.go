package registry

// Backend modes.
const (
	ModeGorm = "gorm"
	ModeHTTP = "http"
)

// Config selects and configures the tool registry backend.
type Config struct {
	// Mode is "gorm" (tools table in the service database) or "http" (REST registry).
	Mode string `mapstructure:"mode" default:"gorm"`
	// BaseURL is the REST registry root, e.g. https://tools.example.com/api.
	BaseURL string `mapstructure:"base_url" default:""`
	// Token is sent as a bearer token to the REST registry.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds each REST call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// Concurrency bounds parallel lookups of GetMany against the REST registry.
	Concurrency int `mapstructure:"concurrency" default:"8"`
}
