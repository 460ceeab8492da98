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

// Package logcapture manages simulator log-capture sessions. A session
// spawns `simctl log stream` writing into a temp file and tails that file
// with fsnotify, so the accumulated text survives even if the file is
// rotated away before Stop.
package logcapture

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/xcodemcp/xcodemcp/internal/utils"
)

// Session is one running capture.
type Session struct {
	ID   string
	UDID string

	path    string
	cmd     *exec.Cmd
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	buf    bytes.Buffer
	offset int64
}

// drain appends any bytes written to the capture file since the last call.
func (s *Session) drain() {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := f.Seek(s.offset, io.SeekStart); err != nil {
		return
	}
	n, _ := io.Copy(&s.buf, f)
	s.offset += n
}

func (s *Session) text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// Registry tracks live sessions by id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	log      *logrus.Entry
}

func NewRegistry(log *logrus.Entry) *Registry {
	return &Registry{sessions: make(map[string]*Session), log: log}
}

// Start begins streaming the simulator's log into a session buffer and
// returns the session id. predicate is an optional `log stream` predicate
// expression.
func (r *Registry) Start(udid, predicate string) (string, error) {
	if udid == "" {
		return "", errors.New("simulator_id is required")
	}
	id := uuid.NewString()
	path := filepath.Join(os.TempDir(), "xcodemcp_log_"+id+".log")
	out, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create capture file")
	}

	args := []string{"simctl", "spawn", udid, "log", "stream", "--style", "compact"}
	if predicate != "" {
		args = append(args, "--predicate", predicate)
	}
	cmd := exec.Command("xcrun", args...)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Start(); err != nil {
		out.Close()
		os.Remove(path)
		return "", errors.Wrap(err, "start log stream")
	}
	out.Close()

	sess := &Session{ID: id, UDID: udid, path: path, cmd: cmd}
	watcher, err := utils.WatchDir(filepath.Dir(path), func(op fsnotify.Op, file string) {
		if file == path && op&fsnotify.Write != 0 {
			sess.drain()
		}
	})
	if err != nil {
		_ = cmd.Process.Kill()
		os.Remove(path)
		return "", errors.Wrap(err, "watch capture file")
	}
	sess.watcher = watcher

	r.mu.Lock()
	r.sessions[id] = sess
	r.mu.Unlock()

	if r.log != nil {
		r.log.WithField("session", id).WithField("udid", udid).Info("log capture started")
	}
	return id, nil
}

// Stop terminates the session's stream process and returns everything
// captured so far. The session and its temp file are gone afterwards.
func (r *Registry) Stop(id string) (string, error) {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return "", errors.Errorf("no log capture session %q", id)
	}

	_ = sess.cmd.Process.Kill()
	_ = sess.cmd.Wait()
	sess.watcher.Close()
	sess.drain()

	text := sess.text()
	if err := os.Remove(sess.path); err != nil && !os.IsNotExist(err) && r.log != nil {
		r.log.WithField("session", id).Warnf("capture file cleanup failed: %v", err)
	}
	if r.log != nil {
		r.log.WithField("session", id).Info("log capture stopped")
	}
	return text, nil
}

// Active lists the ids of running sessions.
func (r *Registry) Active() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}
