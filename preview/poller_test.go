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
	"testing"
	"time"
)

// fakeClock records sleeps instead of waiting.
type fakeClock struct {
	slept []time.Duration
}

func (c *fakeClock) sleep(d time.Duration) { c.slept = append(c.slept, d) }

func TestPollerExhaustsBudget(t *testing.T) {
	clock := &fakeClock{}
	p := Poller{Interval: 200 * time.Millisecond, MaxAttempts: 5, Sleep: clock.sleep}

	checks := 0
	found := p.Wait(func(string) bool {
		checks++
		return false
	}, "/tmp/never.png")

	if found {
		t.Fatal("want absence after budget exhaustion")
	}
	if checks != 5 {
		t.Errorf("want exactly 5 existence checks, got %d", checks)
	}
	// first check is immediate, then one interval per further check
	if len(clock.slept) != 4 {
		t.Errorf("want 4 sleeps, got %d", len(clock.slept))
	}
	for _, d := range clock.slept {
		if d != 200*time.Millisecond {
			t.Errorf("want fixed 200ms interval, got %v", d)
		}
	}
}

func TestPollerReturnsImmediatelyOnHit(t *testing.T) {
	clock := &fakeClock{}
	p := Poller{Interval: 100 * time.Millisecond, MaxAttempts: 10, Sleep: clock.sleep}

	checks := 0
	found := p.Wait(func(string) bool {
		checks++
		return checks == 3
	}, "/tmp/late.png")

	if !found {
		t.Fatal("want hit on third check")
	}
	if checks != 3 {
		t.Errorf("want 3 checks, got %d", checks)
	}
	if len(clock.slept) != 2 {
		t.Errorf("want no waiting after the hit, got %d sleeps", len(clock.slept))
	}
}

func TestPollerFirstCheckIsImmediate(t *testing.T) {
	clock := &fakeClock{}
	p := Poller{Interval: time.Second, MaxAttempts: 3, Sleep: clock.sleep}

	found := p.Wait(func(string) bool { return true }, "/tmp/now.png")
	if !found {
		t.Fatal("want immediate hit")
	}
	if len(clock.slept) != 0 {
		t.Errorf("want zero sleeps before first check, got %d", len(clock.slept))
	}
}

func TestPollerBudget(t *testing.T) {
	p := Poller{Interval: 200 * time.Millisecond, MaxAttempts: 150}
	if p.Budget() != 30*time.Second {
		t.Errorf("got %v, want 30s", p.Budget())
	}
}
