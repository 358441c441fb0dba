package main

import (
	"strings"
	"sync"

	"shuttle/internal/client"
	"shuttle/internal/config"
	"shuttle/internal/slot"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withClient opens the configured slot store, runs fn with a client over it,
// and closes the store afterwards.
func (c *commandContext) withClient(fn func(*client.Client) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := slot.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := client.Options{
		Timeout:      cfg.ExchangeTimeout(),
		PollInterval: cfg.PollInterval(),
	}
	if cfg.Protocol.ChannelLocking && cfg.Store.Backend == "file" {
		opts.LockDir = cfg.Paths.DataDir
	}
	return fn(client.New(store, opts))
}
