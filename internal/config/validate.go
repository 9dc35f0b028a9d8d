package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateAnnotators(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Bind == "" {
		return errors.New("server.bind must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateAnnotators() error {
	seenIDs := make(map[string]struct{}, len(c.Annotators))
	seenTokens := make(map[string]struct{}, len(c.Annotators))
	for i, a := range c.Annotators {
		if a.ID == "" {
			return fmt.Errorf("annotators[%d].id must be set", i)
		}
		if _, ok := seenIDs[a.ID]; ok {
			return fmt.Errorf("annotators: duplicate id %q", a.ID)
		}
		seenIDs[a.ID] = struct{}{}
		switch a.Role {
		case "admin", "annotator":
		default:
			return fmt.Errorf("annotators[%d].role must be admin or annotator, got %q", i, a.Role)
		}
		if a.Token == "" {
			return fmt.Errorf("annotators[%d].token must be set", i)
		}
		if _, ok := seenTokens[a.Token]; ok {
			return fmt.Errorf("annotators: duplicate token for id %q", a.ID)
		}
		seenTokens[a.Token] = struct{}{}
	}
	return nil
}
