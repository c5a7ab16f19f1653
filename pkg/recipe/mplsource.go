// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recipe

import "github.com/madgoathaz/goatd/pkg/templates"

const mplSourceSentinel = "END MPL SOURCE BLOCK"

// applyMPLSourcing inserts a block sourcing the MPL metadata file,
// addressed by its literal absolute path captured at patch time, into
// every packaging function — making it invariant to chroot/fakeroot
// sub-environments the packager may run those functions under.
func applyMPLSourcing(content, workspaceRoot string) (string, error) {
	if hasSentinel(content, mplSourceSentinel) {
		return content, nil
	}

	block, err := templates.MPLSource(templates.MPLSourceData{WorkspaceRoot: workspaceRoot})
	if err != nil {
		return "", err
	}

	points := functionBraceInsertPoints(content, packagingFunctionPattern)
	return insertAtAll(content, points, block), nil
}
