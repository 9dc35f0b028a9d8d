package main

import (
	"strings"
	"sync"

	"furrow/internal/assignment"
	"furrow/internal/catalog"
	"furrow/internal/config"
	"furrow/internal/identity"
)

// commandContext shares lazily-loaded config and store access between
// commands. The CLI opens the SQLite database directly; WAL mode keeps this
// safe alongside a running furrowd.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
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

// withStore opens the assignment store for the duration of fn.
func (c *commandContext) withStore(fn func(*config.Config, *assignment.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := assignment.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

func (c *commandContext) catalogProvider() (catalog.Provider, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return catalog.NewFS(cfg.Paths.DatasetDir), nil
}

func (c *commandContext) rosterProvider() (identity.Provider, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return identity.FromConfig(cfg), nil
}
