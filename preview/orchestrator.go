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

// Package preview implements the SwiftUI preview snapshot pipeline: resolve
// the product name from build settings, build with the capture sentinel
// flag, poll for the snapshot file the launched app writes, then read,
// encode and clean it up. The snapshot file is the entire IPC contract with
// the launched app; there is no other channel.
package preview

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xcodemcp/xcodemcp/fsx"
	"github.com/xcodemcp/xcodemcp/xcode"
)

const (
	// SentinelFlag is appended verbatim to the build invocation. The target
	// app must recognize it at launch and write its rendered snapshot to
	// the well-known artifact path.
	SentinelFlag = "-capture-preview-snapshot"

	// DefaultArtifactDir is where the launched app is expected to write
	// <name>.png.
	DefaultArtifactDir = "/tmp/xcodemcp_previews"

	DefaultPollInterval = 200 * time.Millisecond
	DefaultMaxAttempts  = 150
)

// timeoutChecklist tells the caller what their app must do for the
// snapshot to ever appear.
const timeoutChecklist = `the snapshot file never appeared. Check that the previewed app:
  1. parses its launch arguments and recognizes ` + SentinelFlag + `,
  2. renders the preview and writes it as PNG to the expected path,
  3. has sandbox entitlements permitting writes to that directory`

// Orchestrator runs one capture per call. It owns the full
// request-to-result lifecycle and shares no state across invocations;
// concurrent captures of the same product race on the artifact path.
type Orchestrator struct {
	Runner      xcode.Runner
	Probe       fsx.Probe
	Poller      Poller
	ArtifactDir string
	Log         *logrus.Entry
}

// NewOrchestrator wires an orchestrator with production defaults.
func NewOrchestrator(runner xcode.Runner, probe fsx.Probe, log *logrus.Entry) *Orchestrator {
	return &Orchestrator{
		Runner:      runner,
		Probe:       probe,
		Poller:      Poller{Interval: DefaultPollInterval, MaxAttempts: DefaultMaxAttempts},
		ArtifactDir: DefaultArtifactDir,
		Log:         log,
	}
}

// captureState carries the values derived while phases advance.
type captureState struct {
	req          Request
	productName  string
	artifactPath string
	imageBase64  string
}

// Run executes the capture pipeline to exactly one terminal state. Every
// failure is returned as a structured Result, never an error; the caller
// always gets a well-formed outcome. There is no whole-pipeline retry and
// no cancellation once started beyond ctx reaching the subprocesses.
func (o *Orchestrator) Run(ctx context.Context, req Request) *Result {
	if err := req.Validate(); err != nil {
		return failure(ValidationFailed, "%v", err)
	}
	st := &captureState{req: req}
	for ph := PhaseResolveProduct; ; {
		o.log(ph, st)
		next, res := o.step(ctx, ph, st)
		if res != nil {
			return res
		}
		ph = next
	}
}

// step runs one phase and returns either the next phase or a terminal
// result. The switch is exhaustive over Phase; each failure kind belongs
// to exactly one phase.
func (o *Orchestrator) step(ctx context.Context, ph Phase, st *captureState) (Phase, *Result) {
	switch ph {
	case PhaseResolveProduct:
		name, err := xcode.ResolveProductName(ctx, o.Runner, st.req.Target(), st.req.Destination())
		if err != nil {
			return 0, failure(ProductNameUnresolved, "could not resolve PRODUCT_NAME: %v", err)
		}
		st.productName = name
		artifact := st.req.ArtifactName
		if artifact == "" {
			artifact = name
		}
		st.artifactPath = filepath.Join(o.ArtifactDir, artifact+".png")
		return PhaseBuild, nil

	case PhaseBuild:
		args := xcode.BuildArgs(st.req.Target(), st.req.Destination(), SentinelFlag)
		res, err := o.Runner.Run(ctx, xcode.Command{Args: args})
		if err != nil {
			return 0, failure(BuildFailed, "build did not run: %v", err)
		}
		if !res.Success() {
			return 0, failure(BuildFailed, "build exited %d:\n%s", res.ExitCode, res.Output())
		}
		return PhaseAwaitSnapshot, nil

	case PhaseAwaitSnapshot:
		if !o.Poller.Wait(o.Probe.Exists, st.artifactPath) {
			return 0, failure(SnapshotTimeout, "no snapshot at %s after %s; %s",
				st.artifactPath, o.Poller.Budget(), timeoutChecklist)
		}
		return PhaseReadArtifact, nil

	case PhaseReadArtifact:
		data, err := o.Probe.ReadFile(st.artifactPath)
		if err != nil {
			return 0, failure(ArtifactReadFailed, "snapshot present but unreadable: %v", err)
		}
		st.imageBase64 = base64.StdEncoding.EncodeToString(data)
		return PhaseCleanup, nil

	case PhaseCleanup:
		// Best effort: the caller already has the bytes, a leftover file
		// is only a warning.
		if err := o.Probe.Remove(st.artifactPath); err != nil {
			o.logger().WithField("path", st.artifactPath).Warnf("snapshot cleanup failed: %v", err)
		}
		return PhaseDone, nil

	case PhaseDone:
		return 0, success(st.productName, st.imageBase64)
	}
	return 0, failure(ArtifactReadFailed, "invalid phase %d", ph)
}

func (o *Orchestrator) log(ph Phase, st *captureState) {
	l := o.logger().WithField("phase", ph.String())
	if st.productName != "" {
		l = l.WithField("product", st.productName)
	}
	l.Debug("entering phase")
}

func (o *Orchestrator) logger() *logrus.Entry {
	if o.Log != nil {
		return o.Log
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
