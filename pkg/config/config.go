// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/consensys/go-fprop/pkg/float/kernel"
	"github.com/consensys/go-fprop/pkg/float/round"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Backends names the available transcendental backends.
var Backends = []string{"extended", "libm"}

// Config determines how intervals are rounded and how far propagation is
// allowed to run.
type Config struct {
	Rounding    RoundingConfig    `yaml:"rounding"`
	Propagation PropagationConfig `yaml:"propagation"`
	Log         LogConfig         `yaml:"log"`
}

// RoundingConfig selects the transcendental backend.
type RoundingConfig struct {
	// Backend is either "extended" or "libm".
	Backend string `yaml:"backend"`
	// Ulps by which libm results are widened.
	Ulps uint `yaml:"ulps"`
	// Digits of working precision for the extended backend.
	Digits uint32 `yaml:"digits"`
}

// PropagationConfig bounds the work done computing a fixpoint.
type PropagationConfig struct {
	// MaxSteps is the number of propagator executions allowed, where zero
	// means unlimited.
	MaxSteps uint `yaml:"max_steps"`
}

// LogConfig determines the level of logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Rounding:    RoundingConfig{Backend: "extended", Ulps: 2, Digits: kernel.DefaultDigits},
		Propagation: PropagationConfig{MaxSteps: 100000},
		Log:         LogConfig{Level: "info"},
	}
}

// Load reads a configuration file, where settings not given in the file take
// their default values.  An empty path gives the default configuration.
// Environment variables FPROP_BACKEND and FPROP_LOG_LEVEL override the file.
func Load(path string) (Config, error) {
	config := Default()
	//
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
		//
		if config, err = Parse(data); err != nil {
			return config, fmt.Errorf("%s: %w", path, err)
		}
	}
	//
	loadFromEnv(&config)
	//
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	//
	return config, nil
}

// Parse a configuration from YAML, where settings not given take their default
// values.
func Parse(data []byte) (Config, error) {
	config := Default()
	//
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config: %w", err)
	}
	//
	return config, nil
}

func loadFromEnv(config *Config) {
	if v := os.Getenv("FPROP_BACKEND"); v != "" {
		config.Rounding.Backend = v
	}
	//
	if v := os.Getenv("FPROP_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	//
	if v := os.Getenv("FPROP_MAX_STEPS"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 0); err == nil {
			config.Propagation.MaxSteps = uint(n)
		}
	}
}

// Validate checks that the configuration is valid.
func (c Config) Validate() error {
	switch {
	case c.Rounding.Backend != "extended" && c.Rounding.Backend != "libm":
		return fmt.Errorf("unknown backend %q (expected one of %v)", c.Rounding.Backend, Backends)
	case c.Rounding.Backend == "extended" && c.Rounding.Digits < kernel.MinDigits:
		return fmt.Errorf("digits must be >= %d", kernel.MinDigits)
	case c.Rounding.Backend == "libm" && c.Rounding.Ulps < 1:
		return errors.New("ulps must be >= 1")
	}
	//
	if _, err := c.Level(); err != nil {
		return err
	}
	//
	return nil
}

// Level returns the configured logging level.
func (c Config) Level() (log.Level, error) {
	return log.ParseLevel(c.Log.Level)
}

// Backend constructs the configured transcendental backend.
func (c Config) Backend() round.Backend {
	if c.Rounding.Backend == "libm" {
		return round.NewLibm(c.Rounding.Ulps)
	}
	//
	return kernel.New(c.Rounding.Digits)
}

// Policy constructs a rounding policy over the configured backend, failing if
// directed rounding is unavailable.
func (c Config) Policy() (*round.Policy, error) {
	return round.New(c.Backend())
}
