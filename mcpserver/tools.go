/**
 * Copyright 2025 XcodeMCP Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"

	"github.com/xcodemcp/xcodemcp/logcapture"
	"github.com/xcodemcp/xcodemcp/preview"
	"github.com/xcodemcp/xcodemcp/simulator"
	"github.com/xcodemcp/xcodemcp/xcode"
)

const (
	ToolPreviewSnapshot = "preview_snapshot"
	DescPreviewSnapshot = "build the scheme with the snapshot sentinel flag and capture the SwiftUI preview the app renders, returned as a base64 PNG"
	ToolBuildSim        = "build_sim"
	DescBuildSim        = "build the scheme for a simulator destination"
	ToolTestSim         = "test_sim"
	DescTestSim         = "run the scheme's tests on a simulator destination"
	ToolShowSettings    = "show_build_settings"
	DescShowSettings    = "show the xcodebuild settings for the scheme, including PRODUCT_NAME"
	ToolListSimulators  = "list_simulators"
	DescListSimulators  = "list available simulators with their UDID, name, state and runtime"
	ToolBootSimulator   = "boot_simulator"
	DescBootSimulator   = "boot a simulator by UDID (already booted is fine)"
	ToolOpenSimulator   = "open_simulator"
	DescOpenSimulator   = "open the Simulator app so booted devices are visible"
	ToolInstallApp      = "install_app"
	DescInstallApp      = "install a built .app bundle on a simulator"
	ToolLaunchApp       = "launch_app"
	DescLaunchApp       = "launch an installed app on a simulator by bundle id"
	ToolStartLogCapture = "start_log_capture"
	DescStartLogCapture = "start capturing a simulator's log stream; returns a session id"
	ToolStopLogCapture  = "stop_log_capture"
	DescStopLogCapture  = "stop a log capture session and return the captured text"
)

var (
	SchemaPreviewSnapshot = GetJSONSchema(preview.Request{})
	SchemaBuildSim        = GetJSONSchema(BuildReq{})
	SchemaTestSim         = GetJSONSchema(BuildReq{})
	SchemaShowSettings    = GetJSONSchema(BuildReq{})
	SchemaListSimulators  = GetJSONSchema(ListSimulatorsReq{})
	SchemaBootSimulator   = GetJSONSchema(SimulatorReq{})
	SchemaOpenSimulator   = GetJSONSchema(OpenSimulatorReq{})
	SchemaInstallApp      = GetJSONSchema(InstallAppReq{})
	SchemaLaunchApp       = GetJSONSchema(LaunchAppReq{})
	SchemaStartLogCapture = GetJSONSchema(StartLogCaptureReq{})
	SchemaStopLogCapture  = GetJSONSchema(StopLogCaptureReq{})
)

// GetJSONSchema reflects a request struct into a raw JSON schema for tool
// registration.
func GetJSONSchema(v any) json.RawMessage {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
	js, err := json.Marshal(r.Reflect(v))
	if err != nil {
		panic(err)
	}
	return js
}

// BuildReq selects a target and simulator for build/test/settings tools.
type BuildReq struct {
	ProjectPath   string   `json:"project_path,omitempty" jsonschema:"description=path to the .xcodeproj (mutually exclusive with workspace_path)"`
	WorkspacePath string   `json:"workspace_path,omitempty" jsonschema:"description=path to the .xcworkspace (mutually exclusive with project_path)"`
	Scheme        string   `json:"scheme" jsonschema:"description=the scheme to build"`
	SimulatorID   string   `json:"simulator_id,omitempty" jsonschema:"description=simulator UDID (mutually exclusive with simulator_name)"`
	SimulatorName string   `json:"simulator_name,omitempty" jsonschema:"description=simulator device name (mutually exclusive with simulator_id)"`
	Configuration string   `json:"configuration,omitempty" jsonschema:"description=build configuration when unset defaults to Debug"`
	DerivedData   string   `json:"derived_data_path,omitempty" jsonschema:"description=custom derived data path"`
	ExtraArgs     []string `json:"extra_args,omitempty" jsonschema:"description=additional xcodebuild arguments"`
	UseLatestOS   bool     `json:"use_latest_os,omitempty" jsonschema:"description=pin a simulator_name destination to the newest installed OS"`
	LegacyBuild   bool     `json:"prefer_xcodebuild_legacy,omitempty" jsonschema:"description=use the legacy build system"`
}

func (r BuildReq) target() xcode.Target {
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

func (r BuildReq) destination() (xcode.Destination, error) {
	if r.SimulatorID != "" && r.SimulatorName != "" {
		return xcode.Destination{}, errors.New("simulator_id and simulator_name are mutually exclusive")
	}
	if r.SimulatorID != "" {
		return xcode.DestinationByID(r.SimulatorID), nil
	}
	if r.SimulatorName != "" {
		return xcode.DestinationByName(r.SimulatorName, r.UseLatestOS), nil
	}
	return xcode.Destination{}, nil
}

// BuildResp carries the outcome of a build or test run.
type BuildResp struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
}

type ListSimulatorsReq struct{}

type ListSimulatorsResp struct {
	Devices []simulator.Device `json:"devices"`
}

type SimulatorReq struct {
	SimulatorID string `json:"simulator_id" jsonschema:"description=simulator UDID"`
}

type OpenSimulatorReq struct{}

type InstallAppReq struct {
	SimulatorID string `json:"simulator_id" jsonschema:"description=simulator UDID"`
	AppPath     string `json:"app_path" jsonschema:"description=path to the built .app bundle"`
}

type LaunchAppReq struct {
	SimulatorID string   `json:"simulator_id" jsonschema:"description=simulator UDID"`
	BundleID    string   `json:"bundle_id" jsonschema:"description=bundle identifier of the installed app"`
	Args        []string `json:"args,omitempty" jsonschema:"description=launch arguments passed to the process verbatim"`
}

type StartLogCaptureReq struct {
	SimulatorID string `json:"simulator_id" jsonschema:"description=simulator UDID"`
	Predicate   string `json:"predicate,omitempty" jsonschema:"description=optional log stream predicate expression"`
}

type StartLogCaptureResp struct {
	SessionID string `json:"session_id"`
}

type StopLogCaptureReq struct {
	SessionID string `json:"session_id" jsonschema:"description=session id returned by start_log_capture"`
}

type StopLogCaptureResp struct {
	Output string `json:"output"`
}

// OKResp is the generic acknowledgment for side-effect-only tools.
type OKResp struct {
	Message string `json:"message"`
}

// Toolset binds the tool handlers to the server's collaborators.
type Toolset struct {
	Runner       xcode.Runner
	Orchestrator *preview.Orchestrator
	Simulators   *simulator.Service
	Logs         *logcapture.Registry
}

func (t *Toolset) BuildSim(ctx context.Context, req BuildReq) (*BuildResp, error) {
	return t.runBuildAction(ctx, req, xcode.BuildArgs)
}

func (t *Toolset) TestSim(ctx context.Context, req BuildReq) (*BuildResp, error) {
	return t.runBuildAction(ctx, req, func(target xcode.Target, dest xcode.Destination, _ ...string) []string {
		return xcode.TestArgs(target, dest)
	})
}

func (t *Toolset) runBuildAction(ctx context.Context, req BuildReq, argsFor func(xcode.Target, xcode.Destination, ...string) []string) (*BuildResp, error) {
	target := req.target()
	if err := target.Validate(); err != nil {
		return nil, err
	}
	dest, err := req.destination()
	if err != nil {
		return nil, err
	}
	res, err := t.Runner.Run(ctx, xcode.Command{Args: argsFor(target, dest)})
	if err != nil {
		return nil, err
	}
	return &BuildResp{Success: res.Success(), Output: res.Output()}, nil
}

func (t *Toolset) ShowBuildSettings(ctx context.Context, req BuildReq) (*BuildResp, error) {
	target := req.target()
	if err := target.Validate(); err != nil {
		return nil, err
	}
	dest, err := req.destination()
	if err != nil {
		return nil, err
	}
	res, err := t.Runner.Run(ctx, xcode.Command{Args: xcode.ShowBuildSettingsArgs(target, dest)})
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, errors.Errorf("show build settings exited %d: %s", res.ExitCode, res.Output())
	}
	return &BuildResp{Success: true, Output: res.Stdout}, nil
}

func (t *Toolset) ListSimulators(ctx context.Context, _ ListSimulatorsReq) (*ListSimulatorsResp, error) {
	devices, err := t.Simulators.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListSimulatorsResp{Devices: devices}, nil
}

func (t *Toolset) BootSimulator(ctx context.Context, req SimulatorReq) (*OKResp, error) {
	if req.SimulatorID == "" {
		return nil, errors.New("simulator_id is required")
	}
	if err := t.Simulators.Boot(ctx, req.SimulatorID); err != nil {
		return nil, err
	}
	return &OKResp{Message: "simulator booted"}, nil
}

func (t *Toolset) OpenSimulator(ctx context.Context, _ OpenSimulatorReq) (*OKResp, error) {
	if err := t.Simulators.OpenApp(ctx); err != nil {
		return nil, err
	}
	return &OKResp{Message: "Simulator app opened"}, nil
}

func (t *Toolset) InstallApp(ctx context.Context, req InstallAppReq) (*OKResp, error) {
	if req.SimulatorID == "" {
		return nil, errors.New("simulator_id is required")
	}
	if err := t.Simulators.Install(ctx, req.SimulatorID, req.AppPath); err != nil {
		return nil, err
	}
	return &OKResp{Message: "app installed"}, nil
}

func (t *Toolset) LaunchApp(ctx context.Context, req LaunchAppReq) (*OKResp, error) {
	if req.SimulatorID == "" {
		return nil, errors.New("simulator_id is required")
	}
	if err := t.Simulators.Launch(ctx, req.SimulatorID, req.BundleID, req.Args); err != nil {
		return nil, err
	}
	return &OKResp{Message: "app launched"}, nil
}

func (t *Toolset) StartLogCapture(ctx context.Context, req StartLogCaptureReq) (*StartLogCaptureResp, error) {
	id, err := t.Logs.Start(req.SimulatorID, req.Predicate)
	if err != nil {
		return nil, err
	}
	return &StartLogCaptureResp{SessionID: id}, nil
}

func (t *Toolset) StopLogCapture(ctx context.Context, req StopLogCaptureReq) (*StopLogCaptureResp, error) {
	out, err := t.Logs.Stop(req.SessionID)
	if err != nil {
		return nil, err
	}
	return &StopLogCaptureResp{Output: out}, nil
}
