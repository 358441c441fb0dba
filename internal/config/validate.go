package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateProtocol(); err != nil {
		return err
	}
	if err := c.validateWordFrequency(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case "file", "sqlite":
		return nil
	default:
		return fmt.Errorf("store.backend: unsupported value %q (use \"file\" or \"sqlite\")", c.Store.Backend)
	}
}

func (c *Config) validateProtocol() error {
	if c.Protocol.PollIntervalMillis <= 0 {
		return errors.New("protocol.poll_interval_ms must be positive")
	}
	if c.Protocol.TimeoutSeconds <= 0 {
		return errors.New("protocol.timeout_seconds must be positive")
	}
	if c.ExchangeTimeout() < c.PollInterval() {
		return errors.New("protocol.timeout_seconds must cover at least one poll interval")
	}
	return nil
}

func (c *Config) validateWordFrequency() error {
	if c.WordFrequency.TopN <= 0 {
		return errors.New("word_frequency.top_n must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
