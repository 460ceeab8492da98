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

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrProductNameNotFound means the settings output carried no PRODUCT_NAME
// line.
var ErrProductNameNotFound = errors.New("PRODUCT_NAME not found in build settings")

var productNameRE = regexp.MustCompile(`(?m)^\s*PRODUCT_NAME\s*=\s*(.+)$`)

// ResolveProductName runs -showBuildSettings for the target and extracts
// the product name. First match wins; surrounding whitespace is trimmed.
func ResolveProductName(ctx context.Context, runner Runner, t Target, dest Destination) (string, error) {
	res, err := runner.Run(ctx, Command{Args: ShowBuildSettingsArgs(t, dest)})
	if err != nil {
		return "", errors.Wrap(err, "show build settings")
	}
	if !res.Success() {
		return "", errors.Errorf("show build settings exited %d: %s", res.ExitCode, res.Output())
	}
	return ParseProductName(res.Stdout)
}

// ParseProductName extracts the first PRODUCT_NAME value from raw
// -showBuildSettings output.
func ParseProductName(out string) (string, error) {
	m := productNameRE.FindStringSubmatch(out)
	if m == nil {
		return "", ErrProductNameNotFound
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", ErrProductNameNotFound
	}
	return name, nil
}
