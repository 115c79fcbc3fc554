package configs

// Config holds all configuration for the monitor.
type Config struct {
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Monitor  MonitorConfig  `mapstructure:"monitor" validate:"required"`
	Display  DisplayConfig  `mapstructure:"display" validate:"required"`
	Ops      OpsConfig      `mapstructure:"ops"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// MonitorConfig holds the poll loop configuration.
type MonitorConfig struct {
	AccessLog    string `mapstructure:"access_log" validate:"required"`
	PollInterval int    `mapstructure:"poll_interval" validate:"required,min=1"` // seconds
	DefaultTop   int    `mapstructure:"default_top" validate:"required,min=1"`
	MaxTop       int    `mapstructure:"max_top" validate:"required,min=1,max=1000"`
}

// DisplayConfig holds dashboard rendering configuration.
type DisplayConfig struct {
	PathsPerClient int `mapstructure:"paths_per_client" validate:"required,min=1,max=10"`
	PathWidth      int `mapstructure:"path_width" validate:"required,min=10"`
	TopAgents      int `mapstructure:"top_agents" validate:"min=0,max=20"`
}

// OpsConfig holds the optional operational HTTP server configuration.
type OpsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}

// SnapshotConfig holds the optional snapshot file export configuration.
type SnapshotConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	RootDir string `mapstructure:"root_dir" validate:"required_if=Enabled true"`
}
