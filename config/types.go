package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int   `yaml:"port" validate:"gt=0"`
	MaxRequestBytes int64 `yaml:"maxRequestBytes" validate:"gte=0"`
}

// InputConfig points at the default search parameter file for oneshot runs
type InputConfig struct {
	Path string `yaml:"path"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	Input  InputConfig  `yaml:"input"`
}
