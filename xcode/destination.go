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

// Destination selects the simulator a build or settings query targets.
// Exactly one of the two constructors applies: by UDID, or by device name
// with an optional latest-OS qualifier.
type Destination struct {
	id       string
	name     string
	latestOS bool
}

// DestinationByID targets a simulator by its UDID.
func DestinationByID(id string) Destination {
	return Destination{id: id}
}

// DestinationByName targets a simulator by device name, optionally pinning
// to the newest installed runtime.
func DestinationByName(name string, latestOS bool) Destination {
	return Destination{name: name, latestOS: latestOS}
}

// IsZero reports whether no selector was set.
func (d Destination) IsZero() bool { return d.id == "" && d.name == "" }

// String renders the xcodebuild -destination expression.
func (d Destination) String() string {
	if d.id != "" {
		return "platform=iOS Simulator,id=" + d.id
	}
	s := "platform=iOS Simulator,name=" + d.name
	if d.latestOS {
		s += ",OS=latest"
	}
	return s
}
