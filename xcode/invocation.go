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

package xcode

import "github.com/pkg/errors"

// Target identifies what xcodebuild operates on. Exactly one of ProjectPath
// or WorkspacePath must be set.
type Target struct {
	ProjectPath       string
	WorkspacePath     string
	Scheme            string
	Configuration     string
	DerivedDataPath   string
	ExtraArgs         []string
	LegacyBuildSystem bool
}

// Validate checks the project/workspace exclusivity and required fields.
func (t Target) Validate() error {
	if t.ProjectPath == "" && t.WorkspacePath == "" {
		return errors.New("one of project_path or workspace_path is required")
	}
	if t.ProjectPath != "" && t.WorkspacePath != "" {
		return errors.New("project_path and workspace_path are mutually exclusive")
	}
	if t.Scheme == "" {
		return errors.New("scheme is required")
	}
	return nil
}

// selectorArgs renders the target selection flags shared by every
// xcodebuild action.
func (t Target) selectorArgs(dest Destination) []string {
	args := make([]string, 0, 12)
	if t.WorkspacePath != "" {
		args = append(args, "-workspace", t.WorkspacePath)
	} else {
		args = append(args, "-project", t.ProjectPath)
	}
	args = append(args, "-scheme", t.Scheme)
	cfg := t.Configuration
	if cfg == "" {
		cfg = "Debug"
	}
	args = append(args, "-configuration", cfg)
	if !dest.IsZero() {
		args = append(args, "-destination", dest.String())
	}
	if t.DerivedDataPath != "" {
		args = append(args, "-derivedDataPath", t.DerivedDataPath)
	}
	if t.LegacyBuildSystem {
		args = append(args, "-UseModernBuildSystem=NO")
	}
	return args
}

// BuildArgs assembles the argument vector for an xcodebuild build action.
// extra arguments are appended verbatim after the caller's ExtraArgs.
func BuildArgs(t Target, dest Destination, extra ...string) []string {
	args := append([]string{"xcodebuild"}, t.selectorArgs(dest)...)
	args = append(args, "build")
	args = append(args, t.ExtraArgs...)
	args = append(args, extra...)
	return args
}

// TestArgs assembles the argument vector for an xcodebuild test action.
func TestArgs(t Target, dest Destination) []string {
	args := append([]string{"xcodebuild"}, t.selectorArgs(dest)...)
	args = append(args, "test")
	args = append(args, t.ExtraArgs...)
	return args
}

// ShowBuildSettingsArgs assembles the argument vector for a settings
// introspection, which never mutates build state.
func ShowBuildSettingsArgs(t Target, dest Destination) []string {
	args := append([]string{"xcodebuild", "-showBuildSettings"}, t.selectorArgs(dest)...)
	return args
}
