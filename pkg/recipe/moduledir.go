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

import (
	"regexp"
	"strings"

	"github.com/madgoathaz/goatd/pkg/templates"
)

const moduleDirSentinel = "END MODULE PATH BRIDGE BLOCK"

var packagingFunctionHeaderPattern = regexp.MustCompile(
	`(?m)^\s*((?:` + packagingFunctionPattern + `))\s*\(\)\s*\{\s*$`,
)

// applyModuleDirCreation inserts, after the opening brace of every
// packaging function, a block that resolves the kernel release string
// (preferring the literal value known at patch time — the Priority-0
// version injection — over runtime discovery) and creates
// usr/lib/modules/<release>. Functions whose name contains "headers"
// additionally get the usr/src symlink bridging the pretty and actual
// release strings.
func applyModuleDirCreation(content, literalRelease, pkgVer, pkgRel, suffix string) (string, error) {
	if hasSentinel(content, moduleDirSentinel) {
		return content, nil
	}

	matches := packagingFunctionHeaderPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	type insertion struct {
		at      int
		headers bool
	}
	insertions := make([]insertion, 0, len(matches))
	for _, m := range matches {
		name := content[m[2]:m[3]]
		insertions = append(insertions, insertion{at: m[1], headers: strings.Contains(name, "headers")})
	}

	for i := len(insertions) - 1; i >= 0; i-- {
		ins := insertions[i]
		block, err := templates.ModulePathBridge(templates.ModulePathBridgeData{
			LiteralRelease: literalRelease,
			Headers:        ins.headers,
			PkgVer:         pkgVer,
			PkgRel:         pkgRel,
			Suffix:         suffix,
		})
		if err != nil {
			return "", err
		}
		content = content[:ins.at] + "\n" + block + content[ins.at:]
	}

	return content, nil
}
