// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes the optional defaults for fwdig's command line flags. Keys
// not present in a configuration file are nil and thus leave the
// corresponding flag defaults untouched.
type Config struct {
	Workers    *uint          `yaml:"workers"`
	Timeout    *time.Duration `yaml:"timeout"`
	Deadline   *time.Duration `yaml:"deadline"`
	HTTPFirst  *bool          `yaml:"http-first"`
	Insecure   *bool          `yaml:"insecure"`
	StrictCIDR *bool          `yaml:"strict-cidr"`
	Extract    []string       `yaml:"extract"`
	Quiet      *bool          `yaml:"quiet"`
	Live       *bool          `yaml:"live"`
	Ping       *bool          `yaml:"ping"`
	Resolver   *string        `yaml:"resolver"`
	Debug      *bool          `yaml:"debug"`
}

// Load the configuration from the YAML file at the specified path. Unknown
// keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse configuration %q: %w", path, err)
	}
	return cfg, nil
}

// Parse the YAML configuration data. Empty data results in an empty
// configuration.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// Settings returns the configured values in their textual flag
// representation, keyed by flag name.
func (c *Config) Settings() map[string]string {
	settings := map[string]string{}
	if c.Workers != nil {
		settings["workers"] = strconv.FormatUint(uint64(*c.Workers), 10)
	}
	if c.Timeout != nil {
		settings["timeout"] = c.Timeout.String()
	}
	if c.Deadline != nil {
		settings["deadline"] = c.Deadline.String()
	}
	if c.Extract != nil {
		settings["extract"] = strings.Join(c.Extract, ",")
	}
	if c.Resolver != nil {
		settings["resolver"] = *c.Resolver
	}
	for name, b := range map[string]*bool{
		"http-first":  c.HTTPFirst,
		"insecure":    c.Insecure,
		"strict-cidr": c.StrictCIDR,
		"quiet":       c.Quiet,
		"live":        c.Live,
		"ping":        c.Ping,
		"debug":       c.Debug,
	} {
		if b != nil {
			settings[name] = strconv.FormatBool(*b)
		}
	}
	return settings
}

// FlagSetter is the part of a flag set needed to apply configured defaults.
type FlagSetter interface {
	Changed(name string) bool
	Set(name, value string) error
}

// Apply the configured values to those flags that haven't been explicitly set
// on the command line.
func (c *Config) Apply(flags FlagSetter) error {
	for name, value := range c.Settings() {
		if flags.Changed(name) {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("invalid configuration value for %q: %w", name, err)
		}
	}
	return nil
}
