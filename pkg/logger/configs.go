package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level that gets emitted.
	// Unknown values fall back to "info".
	Level string `yaml:"level" env:"LOG_LEVEL"`

	// ServiceName is attached as a default field to every entry so log
	// aggregation can tell services apart.
	ServiceName string `yaml:"service_name" env:"LOG_SERVICE_NAME"`
}
