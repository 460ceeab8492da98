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

// Package fsx abstracts the few filesystem operations the server needs, so
// tests can script artifact appearance without touching disk.
package fsx

import (
	"os"

	"github.com/pkg/errors"
)

// Probe is the filesystem surface the preview pipeline depends on.
type Probe interface {
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
	// Remove deletes the file if present. A missing file is not an error.
	Remove(path string) error
}

// OSProbe is the real-filesystem Probe.
type OSProbe struct{}

func (OSProbe) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSProbe) ReadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return b, nil
}

func (OSProbe) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", path)
	}
	return nil
}
