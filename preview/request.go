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

package preview

import (
	"github.com/pkg/errors"

	"github.com/xcodemcp/xcodemcp/xcode"
)

// Request is the immutable input of one preview capture. Exactly one of
// ProjectPath/WorkspacePath and exactly one of SimulatorID/SimulatorName
// must be set. Validated once at ingress, before any external command runs.
type Request struct {
	ProjectPath   string   `json:"project_path,omitempty" jsonschema:"description=path to the .xcodeproj (mutually exclusive with workspace_path)"`
	WorkspacePath string   `json:"workspace_path,omitempty" jsonschema:"description=path to the .xcworkspace (mutually exclusive with project_path)"`
	Scheme        string   `json:"scheme" jsonschema:"description=the scheme to build"`
	SimulatorID   string   `json:"simulator_id,omitempty" jsonschema:"description=simulator UDID (mutually exclusive with simulator_name)"`
	SimulatorName string   `json:"simulator_name,omitempty" jsonschema:"description=simulator device name e.g. iPhone 16 (mutually exclusive with simulator_id)"`
	Configuration string   `json:"configuration,omitempty" jsonschema:"description=build configuration when unset defaults to Debug"`
	DerivedData   string   `json:"derived_data_path,omitempty" jsonschema:"description=custom derived data path"`
	ExtraArgs     []string `json:"extra_args,omitempty" jsonschema:"description=additional xcodebuild arguments appended verbatim"`
	UseLatestOS   bool     `json:"use_latest_os,omitempty" jsonschema:"description=pin a simulator_name destination to the newest installed OS"`
	LegacyBuild   bool     `json:"prefer_xcodebuild_legacy,omitempty" jsonschema:"description=use the legacy build system"`
	ArtifactName  string   `json:"snapshot_name,omitempty" jsonschema:"description=override the expected snapshot file name (defaults to the resolved product name)"`
}

// Validate enforces the two mutually-exclusive selector pairs and required
// fields.
func (r Request) Validate() error {
	if r.ProjectPath == "" && r.WorkspacePath == "" {
		return errors.New("one of project_path or workspace_path is required")
	}
	if r.ProjectPath != "" && r.WorkspacePath != "" {
		return errors.New("project_path and workspace_path are mutually exclusive")
	}
	if r.Scheme == "" {
		return errors.New("scheme is required")
	}
	if r.SimulatorID == "" && r.SimulatorName == "" {
		return errors.New("one of simulator_id or simulator_name is required")
	}
	if r.SimulatorID != "" && r.SimulatorName != "" {
		return errors.New("simulator_id and simulator_name are mutually exclusive")
	}
	return nil
}

// Target maps the request onto an xcodebuild target selector.
func (r Request) Target() xcode.Target {
	return xcode.Target{
		ProjectPath:       r.ProjectPath,
		WorkspacePath:     r.WorkspacePath,
		Scheme:            r.Scheme,
		Configuration:     r.Configuration,
		DerivedDataPath:   r.DerivedData,
		ExtraArgs:         r.ExtraArgs,
		LegacyBuildSystem: r.LegacyBuild,
	}
}

// Destination maps the simulator selector pair onto a destination value.
func (r Request) Destination() xcode.Destination {
	if r.SimulatorID != "" {
		return xcode.DestinationByID(r.SimulatorID)
	}
	return xcode.DestinationByName(r.SimulatorName, r.UseLatestOS)
}
