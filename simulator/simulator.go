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

// Package simulator wraps the simctl operations the server exposes as
// tools: enumeration, boot, app install and launch.
package simulator

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/xcodemcp/xcodemcp/xcode"
)

// Device is one simulator from `simctl list devices`.
type Device struct {
	UDID        string `json:"udid"`
	Name        string `json:"name"`
	State       string `json:"state"`
	IsAvailable bool   `json:"isAvailable"`
	Runtime     string `json:"runtime"`
}

// simctlList mirrors the JSON shape of `simctl list devices --json`:
// devices keyed by runtime identifier.
type simctlList struct {
	Devices map[string][]Device `json:"devices"`
}

// Service issues simctl commands through the shared runner.
type Service struct {
	Runner xcode.Runner
	Log    *logrus.Entry
}

func NewService(runner xcode.Runner, log *logrus.Entry) *Service {
	return &Service{Runner: runner, Log: log}
}

func (s *Service) run(ctx context.Context, args ...string) (xcode.Result, error) {
	res, err := s.Runner.Run(ctx, xcode.Command{Args: args})
	if err != nil {
		return res, err
	}
	if !res.Success() {
		return res, errors.Errorf("%s exited %d: %s", strings.Join(args, " "), res.ExitCode, res.Output())
	}
	return res, nil
}

// List enumerates simulators, flattening the runtime-keyed simctl output.
func (s *Service) List(ctx context.Context) ([]Device, error) {
	res, err := s.run(ctx, "xcrun", "simctl", "list", "devices", "--json")
	if err != nil {
		return nil, errors.Wrap(err, "list simulators")
	}
	var parsed simctlList
	if err := json.Unmarshal([]byte(res.Stdout), &parsed); err != nil {
		return nil, errors.Wrap(err, "parse simctl output")
	}
	var devices []Device
	for runtime, devs := range parsed.Devices {
		for _, d := range devs {
			d.Runtime = runtime
			devices = append(devices, d)
		}
	}
	if s.Log != nil {
		s.Log.WithField("count", len(devices)).Debug("enumerated simulators")
	}
	return devices, nil
}

// Boot boots the simulator. An already-booted device is not an error:
// simctl reports it as "Unable to boot device in current state: Booted".
func (s *Service) Boot(ctx context.Context, udid string) error {
	res, err := s.Runner.Run(ctx, xcode.Command{Args: []string{"xcrun", "simctl", "boot", udid}})
	if err != nil {
		return errors.Wrap(err, "boot simulator")
	}
	if !res.Success() && !strings.Contains(res.Output(), "current state: Booted") {
		return errors.Errorf("boot simulator exited %d: %s", res.ExitCode, res.Output())
	}
	return nil
}

// OpenApp brings up the Simulator application so a booted device is
// visible on screen.
func (s *Service) OpenApp(ctx context.Context) error {
	_, err := s.run(ctx, "open", "-a", "Simulator")
	return errors.Wrap(err, "open Simulator.app")
}

// Install installs a built .app bundle on the simulator.
func (s *Service) Install(ctx context.Context, udid, appPath string) error {
	if appPath == "" {
		return errors.New("app_path is required")
	}
	_, err := s.run(ctx, "xcrun", "simctl", "install", udid, appPath)
	return errors.Wrap(err, "install app")
}

// Launch launches an installed app by bundle id, passing args through to
// the process verbatim.
func (s *Service) Launch(ctx context.Context, udid, bundleID string, args []string) error {
	if bundleID == "" {
		return errors.New("bundle_id is required")
	}
	argv := append([]string{"xcrun", "simctl", "launch", udid, bundleID}, args...)
	_, err := s.run(ctx, argv...)
	return errors.Wrap(err, "launch app")
}
