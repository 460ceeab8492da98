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

import "time"

// Poller waits for an externally-produced file with fixed-delay polling.
// The produced-by-another-process event has no natural backoff curve, so a
// short fixed interval under a bounded attempt budget is sufficient.
type Poller struct {
	Interval    time.Duration
	MaxAttempts int

	// Sleep is injectable for tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// Wait checks existence immediately, then once per interval, up to
// MaxAttempts checks total. Returns true as soon as the path exists and
// false once the budget is exhausted. It never reads or locks the file.
func (p Poller) Wait(exists func(string) bool, path string) bool {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			sleep(p.Interval)
		}
		if exists(path) {
			return true
		}
	}
	return false
}

// Budget is the maximum wall-clock wait.
func (p Poller) Budget() time.Duration {
	return p.Interval * time.Duration(p.MaxAttempts)
}
