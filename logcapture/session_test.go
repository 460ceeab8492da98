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

package logcapture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionDrainAccumulatesAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.log")
	require.NoError(t, os.WriteFile(path, []byte("first line\n"), 0o644))

	sess := &Session{ID: "s1", path: path}
	sess.drain()
	assert.Equal(t, "first line\n", sess.text())

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("second line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	sess.drain()
	assert.Equal(t, "first line\nsecond line\n", sess.text())

	// draining again without new writes is a no-op
	sess.drain()
	assert.Equal(t, "first line\nsecond line\n", sess.text())
}

func TestSessionDrainSurvivesFileRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.log")
	require.NoError(t, os.WriteFile(path, []byte("kept\n"), 0o644))

	sess := &Session{ID: "s2", path: path}
	sess.drain()
	require.NoError(t, os.Remove(path))

	sess.drain()
	assert.Equal(t, "kept\n", sess.text())
}

func TestRegistryStopUnknownSession(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Stop("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestRegistryStartRequiresUDID(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Start("", "")
	assert.Error(t, err)
	assert.Empty(t, r.Active())
}
