package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validate checks the loaded values that the services cannot start without.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "config")
	}

	return nil
}
