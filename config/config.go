// Copyright 2025 XcodeMCP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xcodemcp/xcodemcp/preview"
)

// Config is the server's optional yaml configuration. Every field has a
// compiled-in default so a missing file is fine.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Preview  PreviewConfig `yaml:"preview"`
}

// PreviewConfig tunes the snapshot pipeline. The poll parameters are
// server-side settings, not caller-tunable request fields.
type PreviewConfig struct {
	ArtifactDir  string   `yaml:"artifact_dir"`
	PollInterval Duration `yaml:"poll_interval"`
	MaxAttempts  int      `yaml:"max_attempts"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Preview: PreviewConfig{
			ArtifactDir:  preview.DefaultArtifactDir,
			PollInterval: Duration(preview.DefaultPollInterval),
			MaxAttempts:  preview.DefaultMaxAttempts,
		},
	}
}

// Load reads the yaml file at path over the defaults. An empty path means
// defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	if cfg.Preview.MaxAttempts <= 0 {
		return cfg, errors.New("preview.max_attempts must be positive")
	}
	if cfg.Preview.PollInterval <= 0 {
		return cfg, errors.New("preview.poll_interval must be positive")
	}
	return cfg, nil
}
