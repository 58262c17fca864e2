package config

const (
	defaultBroadcastBind = "tcp://*:3781"
	defaultRequestBind   = "tcp://*:3782"
	defaultRuntimeDir    = "~/.local/state/pitopd"
	defaultDeviceID      = "pi-top[4]"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			BroadcastBind: defaultBroadcastBind,
			RequestBind:   defaultRequestBind,
		},
		Daemon: Daemon{
			RuntimeDir: defaultRuntimeDir,
			DeviceID:   defaultDeviceID,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
