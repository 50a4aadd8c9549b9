package server

// Config holds configuration for the HTTP server and engine policies.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// CountingMode selects what the counted quantity is compared against (on_hand, available).
	CountingMode string `mapstructure:"counting_mode" default:"on_hand"`
	// ExportDelimiter is the CSV field delimiter (";" or ",").
	ExportDelimiter string `mapstructure:"export_delimiter" default:";"`
}

const (
	// CountingOnHand compares counts against the registry quantity.
	CountingOnHand = "on_hand"
	// CountingAvailable compares counts against quantity minus issued quantity.
	CountingAvailable = "available"
)

// IsValidCountingMode checks if the configured counting mode is known.
func (c Config) IsValidCountingMode() bool {
	switch c.CountingMode {
	case CountingOnHand, CountingAvailable:
		return true
	default:
		return false
	}
}

// Delimiter returns the configured export delimiter as a rune, defaulting to ';'.
func (c Config) Delimiter() rune {
	if c.ExportDelimiter == "," {
		return ','
	}
	return ';'
}
