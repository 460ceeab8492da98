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

import "fmt"

// PNGMIMEType tags the snapshot payload. The capture convention produces
// PNG only.
const PNGMIMEType = "image/png"

// Failure is the structured terminal error of a capture. Message is
// human-readable and carries remediation guidance where one exists.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Result is the discriminated outcome of one capture: either a success
// carrying the product name and the base64 PNG payload, or a Failure.
// Constructed once at pipeline end and never mutated.
type Result struct {
	ProductName string
	ImageBase64 string
	MIMEType    string
	Failure     *Failure
}

// OK reports whether the capture succeeded.
func (r *Result) OK() bool { return r.Failure == nil }

func success(product, imageBase64 string) *Result {
	return &Result{ProductName: product, ImageBase64: imageBase64, MIMEType: PNGMIMEType}
}

func failure(kind FailureKind, format string, args ...any) *Result {
	return &Result{Failure: &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}}
}
