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

// Phase is one step of the capture pipeline. Phases advance strictly
// forward; there are no back transitions and no whole-pipeline retry.
type Phase int

const (
	PhaseResolveProduct Phase = iota
	PhaseBuild
	PhaseAwaitSnapshot
	PhaseReadArtifact
	PhaseCleanup
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseResolveProduct:
		return "resolve-product"
	case PhaseBuild:
		return "build"
	case PhaseAwaitSnapshot:
		return "await-snapshot"
	case PhaseReadArtifact:
		return "read-artifact"
	case PhaseCleanup:
		return "cleanup"
	case PhaseDone:
		return "done"
	}
	return "unknown"
}

// FailureKind classifies how a capture terminated short of success.
type FailureKind string

const (
	ValidationFailed      FailureKind = "validation_failed"
	ProductNameUnresolved FailureKind = "product_name_unresolved"
	BuildFailed           FailureKind = "build_failed"
	SnapshotTimeout       FailureKind = "snapshot_timeout"
	ArtifactReadFailed    FailureKind = "artifact_read_failed"
)
