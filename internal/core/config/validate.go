package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/tasklist/internal/core/theme"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, dataDirValid),
		criterio.Run("storage.backend", string(c.Storage.Backend), backendValid),
		criterio.Run("theme.default", string(c.Theme.Default), themeValid),
		c.validateDatabase(),
		c.validateKeys(),
	)
}

func dataDirValid(path string) error {
	if path == "" {
		return errors.New("cannot be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return errors.New("exists but is not a directory")
	}
	return nil
}

func backendValid(b string) error {
	if !Backend(b).IsValid() {
		return fmt.Errorf("unsupported backend %q: must be one of sqlite, file, memory", b)
	}
	return nil
}

func themeValid(name string) error {
	if _, err := theme.Parse(name); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDatabase() error {
	var errs criterio.FieldErrorsBuilder
	if c.Database.MaxOpenConns < 1 {
		errs = errs.Append("database.max_open_conns", errors.New("must be at least 1"))
	}
	if c.Database.MaxIdleConns < 0 {
		errs = errs.Append("database.max_idle_conns", errors.New("cannot be negative"))
	}
	if c.Database.BusyTimeout < 0 {
		errs = errs.Append("database.busy_timeout", errors.New("cannot be negative"))
	}
	return errs.ToError()
}

func (c *Config) validateKeys() error {
	if c.Keys.Tasks != "" && c.Keys.Tasks == c.Keys.Theme {
		return criterio.NewFieldErrors("keys.theme", fmt.Errorf("must differ from keys.tasks (%q)", c.Keys.Tasks))
	}
	return nil
}
