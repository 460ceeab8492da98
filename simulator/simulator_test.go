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

package simulator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xcodemcp/xcodemcp/xcode"
)

type fakeRunner struct {
	result xcode.Result
	calls  []xcode.Command
}

func (f *fakeRunner) Run(ctx context.Context, cmd xcode.Command) (xcode.Result, error) {
	f.calls = append(f.calls, cmd)
	return f.result, nil
}

const listJSON = `{
  "devices": {
    "com.apple.CoreSimulator.SimRuntime.iOS-18-0": [
      {"udid": "AAA-111", "name": "iPhone 16", "state": "Booted", "isAvailable": true},
      {"udid": "BBB-222", "name": "iPhone 16 Pro", "state": "Shutdown", "isAvailable": true}
    ],
    "com.apple.CoreSimulator.SimRuntime.iOS-17-5": [
      {"udid": "CCC-333", "name": "iPhone 15", "state": "Shutdown", "isAvailable": false}
    ]
  }
}`

func TestListFlattensRuntimes(t *testing.T) {
	runner := &fakeRunner{result: xcode.Result{Stdout: listJSON}}
	svc := NewService(runner, nil)

	devices, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 3)

	byUDID := map[string]Device{}
	for _, d := range devices {
		byUDID[d.UDID] = d
	}
	assert.Equal(t, "iPhone 16", byUDID["AAA-111"].Name)
	assert.Equal(t, "Booted", byUDID["AAA-111"].State)
	assert.Equal(t, "com.apple.CoreSimulator.SimRuntime.iOS-17-5", byUDID["CCC-333"].Runtime)
	assert.False(t, byUDID["CCC-333"].IsAvailable)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"xcrun", "simctl", "list", "devices", "--json"}, runner.calls[0].Args)
}

func TestBootAlreadyBootedIsNotAnError(t *testing.T) {
	runner := &fakeRunner{result: xcode.Result{
		ExitCode: 164,
		Stderr:   "Unable to boot device in current state: Booted",
	}}
	err := NewService(runner, nil).Boot(context.Background(), "AAA-111")
	assert.NoError(t, err)
}

func TestBootFailure(t *testing.T) {
	runner := &fakeRunner{result: xcode.Result{ExitCode: 2, Stderr: "Invalid device: nope"}}
	err := NewService(runner, nil).Boot(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid device")
}

func TestLaunchPassesArgsVerbatim(t *testing.T) {
	runner := &fakeRunner{}
	err := NewService(runner, nil).Launch(context.Background(), "AAA-111", "com.example.App",
		[]string{"-capture-preview-snapshot", "--verbose"})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t,
		[]string{"xcrun", "simctl", "launch", "AAA-111", "com.example.App", "-capture-preview-snapshot", "--verbose"},
		runner.calls[0].Args)
}

func TestInstallRequiresAppPath(t *testing.T) {
	err := NewService(&fakeRunner{}, nil).Install(context.Background(), "AAA-111", "")
	assert.Error(t, err)
}
