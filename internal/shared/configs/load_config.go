package configs

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// LoadConfig reads configuration from file and validates it. A missing config
// file is not an error: the monitor is designed to run on defaults alone, with
// the file overriding individual settings.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	// Read from file, tolerating absence
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	if cfg.Monitor.DefaultTop > cfg.Monitor.MaxTop {
		return nil, fmt.Errorf("config validation failed: monitor.default_top (%d) exceeds monitor.max_top (%d)",
			cfg.Monitor.DefaultTop, cfg.Monitor.MaxTop)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("monitor.access_log", "access.log")
	v.SetDefault("monitor.poll_interval", 3)
	v.SetDefault("monitor.default_top", 10)
	v.SetDefault("monitor.max_top", 100)
	v.SetDefault("display.paths_per_client", 3)
	v.SetDefault("display.path_width", 55)
	v.SetDefault("display.top_agents", 5)
	v.SetDefault("ops.enabled", false)
	v.SetDefault("ops.port", 9924)
	v.SetDefault("snapshot.enabled", false)
	v.SetDefault("snapshot.root_dir", "./data")
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validator.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "monitor.poll_interval")
	if e.StructNamespace() != "" {
		// Extract nested field path (e.g., "Config.Monitor.PollInterval" -> "monitor.pollinterval")
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			// Skip "Config" prefix, convert to lowercase with dots
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "required_if":
		msg = fmt.Sprintf("%s (required when %s)", field, e.Param())
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
