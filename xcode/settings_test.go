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
	"testing"

	"github.com/pkg/errors"
)

// fakeRunner returns a scripted result and records every invocation.
type fakeRunner struct {
	result Result
	err    error
	calls  []Command
}

func (f *fakeRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	f.calls = append(f.calls, cmd)
	return f.result, f.err
}

func TestParseProductName(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{
			name: "indented line",
			out:  "Build settings for action build\n    PRODUCT_NAME = MyApp\n    OTHER = x\n",
			want: "MyApp",
		},
		{
			name: "first match wins",
			out:  "PRODUCT_NAME = First\nPRODUCT_NAME = Second\n",
			want: "First",
		},
		{
			name: "trailing whitespace trimmed",
			out:  "\tPRODUCT_NAME =   Spaced App  \n",
			want: "Spaced App",
		},
		{
			name:    "missing key",
			out:     "PRODUCT_MODULE_NAME = MyApp\n",
			wantErr: true,
		},
		{
			name:    "empty value",
			out:     "PRODUCT_NAME =   \n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProductName(tt.out)
			if tt.wantErr {
				if !errors.Is(err, ErrProductNameNotFound) {
					t.Fatalf("want ErrProductNameNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveProductName(t *testing.T) {
	target := Target{WorkspacePath: "App.xcworkspace", Scheme: "MyScheme"}
	dest := DestinationByName("iPhone 16", false)

	runner := &fakeRunner{result: Result{Stdout: "    PRODUCT_NAME = MyApp\n"}}
	name, err := ResolveProductName(context.Background(), runner, target, dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "MyApp" {
		t.Errorf("got %q, want MyApp", name)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("want 1 invocation, got %d", len(runner.calls))
	}
	args := runner.calls[0].Args
	if args[0] != "xcodebuild" || args[1] != "-showBuildSettings" {
		t.Errorf("unexpected argv prefix: %v", args[:2])
	}
}

func TestResolveProductNameCommandFailed(t *testing.T) {
	runner := &fakeRunner{result: Result{ExitCode: 65, Stderr: "no scheme"}}
	_, err := ResolveProductName(context.Background(), runner,
		Target{ProjectPath: "App.xcodeproj", Scheme: "S"}, DestinationByID("ABC"))
	if err == nil {
		t.Fatal("want error for failed settings command")
	}
}
