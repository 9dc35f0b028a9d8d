package config

const (
	defaultDatasetDir           = "~/.local/share/furrow/plots"
	defaultLogDir               = "~/.local/share/furrow/logs"
	defaultBind                 = "127.0.0.1:7643"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultNotifyRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DatasetDir: defaultDatasetDir,
			LogDir:     defaultLogDir,
		},
		Server: Server{
			Bind: defaultBind,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Allocation:     true,
			QueueCompleted: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
