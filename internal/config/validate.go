package config

import (
	"fmt"
	"strings"
)

func (c *Config) validate() error {
	if err := validateBind("server.broadcast_bind", c.Server.BroadcastBind); err != nil {
		return err
	}
	if err := validateBind("server.request_bind", c.Server.RequestBind); err != nil {
		return err
	}
	if c.Server.BroadcastBind == c.Server.RequestBind {
		return fmt.Errorf("server.broadcast_bind and server.request_bind must differ")
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func validateBind(field, endpoint string) error {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if !strings.HasPrefix(trimmed, "tcp://") && !strings.HasPrefix(trimmed, "ipc://") {
		return fmt.Errorf("%s: endpoint %q must use the tcp:// or ipc:// scheme", field, endpoint)
	}
	return nil
}
